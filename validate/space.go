package validate

import (
	"errors"
	"space_manager/constants"
	"space_manager/database"
	"space_manager/helper"
	"space_manager/model"
	"space_manager/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// CreateSpace decodes the multipart form fields of a new space. The
// image file itself is handled by the handler.
func CreateSpace() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, isAdmin, _ := helper.GetInfoUserFromToken(c)
		if !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
		}

		var input model.CreateSpaceInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func UpdateSpace(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, isAdmin, _ := helper.GetInfoUserFromToken(c)
		if !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
		}

		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var space model.Space
		if err := database.DB.First(&space, valueKey).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SPACE_NOT_FOUND, err)
		}

		var input model.UpdateSpaceInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
		}

		c.Locals("inputId", valueKey)
		c.Locals("input", input)
		c.Locals("space", space)
		return c.Next()
	}
}

func DeleteSpace(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, isAdmin, _ := helper.GetInfoUserFromToken(c)
		if !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
		}

		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var space model.Space
		if err := database.DB.First(&space, valueKey).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SPACE_NOT_FOUND, err)
		}

		c.Locals("inputId", valueKey)
		c.Locals("space", space)
		return c.Next()
	}
}
