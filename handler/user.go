package handler

import (
	"space_manager/constants"
	"space_manager/database"
	"space_manager/helper"
	"space_manager/model"
	"space_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func CreateUser(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateUserInput)

	hashed, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to hash password", err)
	}

	newUser := new(model.User)
	copier.Copy(&newUser, input)
	newUser.Password = hashed
	newUser.Role = constants.ROLE_USER
	if input.Role != nil {
		// Only a signed-in admin may create another admin.
		if _, isAdmin, err := helper.GetInfoUserFromToken(c); err == nil && isAdmin {
			newUser.Role = *input.Role
		}
	}

	if err := database.DB.Create(&newUser).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create user", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, newUser)
}

func GetUsers(c *fiber.Ctx) error {
	filterInput := new(model.FilterUser)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.User{})

	if filterInput.SearchKey != "" {
		like := "%" + filterInput.SearchKey + "%"
		condition = condition.Where("email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?", like, like, like)
	}
	if filterInput.Role != nil {
		condition = condition.Where("role = ?", *filterInput.Role)
	}
	if filterInput.Active != nil {
		condition = condition.Where("is_active = ?", *filterInput.Active)
	}

	var totalCount int64
	condition.Count(&totalCount)

	var users []model.User
	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Order("id ASC").Find(&users).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch users", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, &model.ResponseCustom{
		Rows:       users,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	})
}

func GetMe(c *fiber.Ctx) error {
	info, _, err := helper.GetInfoUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", err)
	}

	var user model.User
	if err := database.DB.First(&user, info.UserId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.USER_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

func UpdateUser(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdateUserInput)
	user := c.Locals("user_record").(model.User)

	copier.CopyWithOption(&user, input, copier.Option{IgnoreEmpty: true})
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update user", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

func DeleteUser(c *fiber.Ctx) error {
	userId := c.Locals("inputId").(int)

	var user model.User
	if err := database.DB.First(&user, userId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.USER_NOT_FOUND, err)
	}

	if err := database.DB.Delete(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete user", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "User successfully deleted",
	})
}

func CheckEmailExists(c *fiber.Ctx) error {
	email := c.Query("email")
	if !helper.ValidEmail(email) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, nil)
	}

	user, err := helper.GetUserByEmail(email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"exists": user != nil,
	})
}
