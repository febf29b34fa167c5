package handler

import (
	"log"
	"space_manager/constants"
	"space_manager/database"
	"space_manager/helper"
	"space_manager/model"
	"space_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func GetSpaces(c *fiber.Ctx) error {
	filterInput := new(model.FilterSpace)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Space{})

	if filterInput.SearchKey != "" {
		like := "%" + filterInput.SearchKey + "%"
		condition = condition.Where("name ILIKE ? OR location ILIKE ?", like, like)
	}
	if filterInput.SpaceType != nil {
		condition = condition.Where("space_type = ?", *filterInput.SpaceType)
	}
	if filterInput.Available != nil {
		condition = condition.Where("is_available = ?", *filterInput.Available)
	}

	var totalCount int64
	condition.Count(&totalCount)

	var spaces []model.Space
	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Order("name ASC").Find(&spaces).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch spaces", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, &model.ResponseCustom{
		Rows:       spaces,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	})
}

func GetSpaceById(c *fiber.Ctx) error {
	spaceId := c.Locals("inputId").(int)

	var space model.Space
	if err := database.DB.First(&space, spaceId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SPACE_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, space)
}

func GetSpaceBySlug(c *fiber.Ctx) error {
	slugParam := c.Params("slug")

	var space model.Space
	if err := database.DB.Where("slug = ?", slugParam).First(&space).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SPACE_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, space)
}

func CreateSpace(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateSpaceInput)

	newSpace := new(model.Space)
	copier.Copy(&newSpace, input)
	newSpace.SpaceType = model.SpaceType(input.SpaceType)
	newSpace.Slug = helper.GenerateUniqueSpaceSlug(database.DB, input.Name)
	if input.IsAvailable == nil {
		newSpace.IsAvailable = true
	}

	// Image is optional on create.
	if file, err := c.FormFile("image"); err == nil && file != nil {
		publicID, err := helper.UploadSpaceImage(c.Context(), file)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to upload space image", err)
		}
		newSpace.ImageFilename = &publicID
	}

	if err := database.DB.Create(&newSpace).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create space", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, newSpace)
}

func UpdateSpace(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdateSpaceInput)
	space := c.Locals("space").(model.Space)

	if input.Name != nil && *input.Name != space.Name {
		space.Slug = helper.GenerateUniqueSpaceSlug(database.DB, *input.Name)
	}
	copier.CopyWithOption(&space, input, copier.Option{IgnoreEmpty: true})
	if input.SpaceType != nil {
		space.SpaceType = model.SpaceType(*input.SpaceType)
	}
	if input.IsAvailable != nil {
		space.IsAvailable = *input.IsAvailable
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		if space.ImageFilename != nil {
			if err := helper.DeleteSpaceImage(c.Context(), *space.ImageFilename); err != nil {
				log.Printf("failed to delete old image %s: %v", *space.ImageFilename, err)
			}
		}
		publicID, err := helper.UploadSpaceImage(c.Context(), file)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to upload space image", err)
		}
		space.ImageFilename = &publicID
	}

	if err := database.DB.Save(&space).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update space", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, space)
}

// DeleteSpace removes a space. Bookings that reference it keep their
// rows; the FK nulls out and listings report the space as deleted.
func DeleteSpace(c *fiber.Ctx) error {
	space := c.Locals("space").(model.Space)

	if err := database.DB.Delete(&space).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete space", err)
	}

	if space.ImageFilename != nil {
		if err := helper.DeleteSpaceImage(c.Context(), *space.ImageFilename); err != nil {
			log.Printf("failed to delete image %s: %v", *space.ImageFilename, err)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Space successfully deleted",
	})
}
