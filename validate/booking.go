package validate

import (
	"errors"
	"fmt"
	"space_manager/constants"
	"space_manager/database"
	"space_manager/helper"
	"space_manager/model"
	"space_manager/utils"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CreateBooking decodes and checks a booking request. The referenced
// user and space must exist (404); lenient status parsing happens here,
// at the boundary, so the domain type stays closed.
func CreateBooking() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateBookingInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
		}

		var user model.User
		if err := database.DB.First(&user, input.UserId).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound,
				fmt.Sprintf("User not found with ID: %d", input.UserId), err)
		}

		var space model.Space
		if err := database.DB.First(&space, input.SpaceId).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound,
				fmt.Sprintf("Space not found with ID: %d", input.SpaceId), err)
		}

		if input.NumberOfPeople > space.Capacity {
			return utils.ErrorResponse(c, fiber.StatusBadRequest,
				fmt.Sprintf("Number of participants (%d) exceeds space capacity (%d)", input.NumberOfPeople, space.Capacity), nil)
		}

		c.Locals("input", input)
		c.Locals("bookingUser", user)
		c.Locals("bookingSpace", space)
		return c.Next()
	}
}

// CancelBooking accepts an optional {reason} body.
func CancelBooking(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.CancelBookingInput
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&input); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
			}
		}

		c.Locals("inputId", valueKey)
		c.Locals("cancelReason", input.Reason)
		return c.Next()
	}
}

func AdminUpdateBooking(key string) fiber.Handler {
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

		var input model.AdminUpdateBookingInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
		}

		c.Locals("inputId", valueKey)
		c.Locals("input", input)
		return c.Next()
	}
}

func CheckAvailability() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.AvailabilityInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest,
				"Missing required fields: spaceId, startTime, endTime", err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

// BookingsForSpaceOnDate parses the spaceId and YYYY-MM-DD date params.
func BookingsForSpaceOnDate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		spaceId, err := strconv.Atoi(c.Params("spaceId"))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		date, err := time.ParseInLocation("2006-01-02", c.Params("date"), time.Local)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid date format. Please use YYYY-MM-DD.", err)
		}

		c.Locals("spaceId", uint(spaceId))
		c.Locals("date", date)
		return c.Next()
	}
}

func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, isAdmin, _ := helper.GetInfoUserFromToken(c)
		if !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
		}
		return c.Next()
	}
}
