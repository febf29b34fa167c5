package handler

import (
	"errors"
	"fmt"
	"log"
	"space_manager/constants"
	"space_manager/database"
	"space_manager/helper"
	"space_manager/model"
	"space_manager/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

func CreateBooking(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateBookingInput)
	user := c.Locals("bookingUser").(model.User)
	space := c.Locals("bookingSpace").(model.Space)

	booking, err := helper.CreateBooking(database.DB, &user, &space, input)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrSlotUnavailable):
			return utils.ErrorResponse(c, fiber.StatusConflict, err.Error(), nil)
		case errors.Is(err, helper.ErrSpaceMisconfigured):
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, err.Error(), nil)
		case errors.Is(err, helper.ErrMissingFields),
			errors.Is(err, helper.ErrInvalidInterval),
			errors.Is(err, helper.ErrPastStartTime),
			errors.Is(err, helper.ErrExceedsClosingTime):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create booking", err)
		}
	}

	resp := booking.ToResponse()

	totalPrice := ""
	if booking.TotalPrice != nil {
		totalPrice = fmt.Sprintf("%.2f", *booking.TotalPrice)
	}
	utils.SendBookingConfirmationEmail(user.Email, utils.BookingConfirmationData{
		BookingCode: booking.PublicCode,
		SpaceName:   space.Name,
		Location:    space.Location,
		StartTime:   booking.StartTime.Format("02/01/2006 15:04"),
		EndTime:     booking.EndTime.Format("02/01/2006 15:04"),
		People:      booking.NumberOfPeople,
		TotalPrice:  totalPrice,
	})

	PublishBookingEvent(space.ID, "booking.created", resp)

	return utils.SuccessResponse(c, fiber.StatusOK, resp)
}

func CancelBooking(c *fiber.Ctx) error {
	bookingId := c.Locals("inputId").(int)
	reason := c.Locals("cancelReason").(string)

	booking, err := helper.CancelBooking(database.DB, uint(bookingId), reason)
	if err != nil {
		if errors.Is(err, helper.ErrBookingNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, nil)
		}
		if errors.Is(err, helper.ErrInvalidStateTransition) {
			return utils.ErrorResponse(c, fiber.StatusConflict, err.Error(), nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to cancel booking", err)
	}

	resp := booking.ToResponse()
	if booking.SpaceId != nil {
		PublishBookingEvent(*booking.SpaceId, "booking.cancelled", resp)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, resp)
}

func GetBookingsByUser(c *fiber.Ctx) error {
	userId := c.Locals("inputId").(int)

	var user model.User
	if err := database.DB.First(&user, userId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.USER_NOT_FOUND, err)
	}

	bookings, err := helper.GetBookingsByUserId(database.DB, uint(userId))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch bookings", err)
	}

	responses := make([]model.BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookings[i].ToResponse())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, responses)
}

func GetBookingsForSpaceOnDate(c *fiber.Ctx) error {
	spaceId := c.Locals("spaceId").(uint)
	date := c.Locals("date").(time.Time)

	bookings, err := helper.GetBookingsForSpaceOnDate(database.DB, spaceId, date)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch bookings for the specified space and date.", err)
	}

	responses := make([]model.BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookings[i].ToResponse())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, responses)
}

func CheckAvailability(c *fiber.Ctx) error {
	input := c.Locals("input").(model.AvailabilityInput)

	available, err := helper.IsTimeSlotAvailable(database.DB, input.SpaceId, input.StartTime, input.EndTime)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to check availability", err)
	}

	if !available {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"available": false})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"available": true})
}

func UpdateBookingByAdmin(c *fiber.Ctx) error {
	bookingId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.AdminUpdateBookingInput)

	booking, err := helper.UpdateBookingByAdmin(database.DB, uint(bookingId), input)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrBookingNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, nil)
		case errors.Is(err, helper.ErrCapacityExceeded),
			errors.Is(err, helper.ErrInvalidParticipantCount),
			errors.Is(err, helper.ErrNegativePrice):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update booking", err)
		}
	}

	resp := booking.ToResponse()
	if booking.SpaceId != nil {
		PublishBookingEvent(*booking.SpaceId, "booking.updated", resp)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, resp)
}

// UpdateCompletedBookings triggers the completion sweep on demand. The
// hourly scheduler calls the same helper.
func UpdateCompletedBookings(c *fiber.Ctx) error {
	n, err := helper.UpdateCompletedBookings(database.DB)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update completed bookings", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Completed bookings have been updated",
		"updated": n,
	})
}

// GetBookingsDetailed lists every booking with user and space details
// for the admin panel.
func GetBookingsDetailed(c *fiber.Ctx) error {
	filter := new(model.Pagination)
	if err := c.QueryParser(filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Booking{}).Preload("User").Preload("Space")

	var totalCount int64
	if err := condition.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch bookings", err)
	}

	var bookings []model.Booking
	condition = utils.ApplyPagination(condition, filter.Limit, filter.Page)
	if err := condition.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch bookings", err)
	}

	responses := make([]model.BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookings[i].ToResponse())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, &model.ResponseCustom{
		Rows:       responses,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

func DeleteBooking(c *fiber.Ctx) error {
	bookingId := c.Locals("inputId").(int)

	var booking model.Booking
	if err := database.DB.First(&booking, bookingId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err)
	}

	if err := database.DB.Delete(&booking).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete booking", err)
	}

	log.Printf("booking %d deleted by admin", booking.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Booking record successfully deleted!",
	})
}
