package helper

import (
	"errors"
	"log"
	"math"
	"space_manager/database"
	"space_manager/model"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrMissingFields           = errors.New("missing required booking details")
	ErrInvalidInterval         = errors.New("end time cannot be before start time")
	ErrPastStartTime           = errors.New("booking start time cannot be in the past")
	ErrExceedsClosingTime      = errors.New("booking duration exceeds space closing time")
	ErrSpaceMisconfigured      = errors.New("closing time not configured for the space")
	ErrSlotUnavailable         = errors.New("the selected time slot is no longer available")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrInvalidStateTransition  = errors.New("booking cannot be cancelled in its current state")
	ErrCapacityExceeded        = errors.New("number of participants exceeds space capacity")
	ErrInvalidParticipantCount = errors.New("number of participants must be positive")
	ErrNegativePrice           = errors.New("total price cannot be negative")
)

// overlapScope selects BOOKED bookings of a space that overlap the
// half-open interval [start, end). Touching endpoints do not overlap.
func overlapScope(tx *gorm.DB, spaceId uint, start, end time.Time) *gorm.DB {
	return tx.Model(&model.Booking{}).
		Where("space_id = ? AND status = ?", spaceId, model.BookingBooked).
		Where("start_time < ? AND end_time > ?", end, start)
}

// IsTimeSlotAvailable reports whether no BOOKED booking overlaps the
// candidate slot. This is an early-reject check only; CreateBooking
// re-verifies under a row lock inside the insert transaction.
func IsTimeSlotAvailable(db *gorm.DB, spaceId uint, start, end time.Time) (bool, error) {
	var count int64
	if err := overlapScope(db, spaceId, start, end).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// CalculateTotalPrice charges the space price per started hour.
func CalculateTotalPrice(space *model.Space, start, end time.Time) float64 {
	hours := math.Ceil(end.Sub(start).Hours())
	if hours < 1 {
		hours = 1
	}
	return space.Price * hours
}

// CreateBooking validates and persists a booking for user in space.
// Validation order is fixed: missing fields, inverted interval, past
// start, closing time, then the overlap check. The overlap check runs
// again inside the transaction with the candidate rows locked, so two
// concurrent requests for the same slot cannot both insert.
func CreateBooking(db *gorm.DB, user *model.User, space *model.Space, input model.CreateBookingInput) (*model.Booking, error) {
	if space == nil || input.StartTime.IsZero() || input.EndTime.IsZero() {
		return nil, ErrMissingFields
	}
	if input.EndTime.Before(input.StartTime) {
		return nil, ErrInvalidInterval
	}
	if input.StartTime.Before(time.Now()) {
		return nil, ErrPastStartTime
	}

	if space.ClosingTime == "" {
		return nil, ErrSpaceMisconfigured
	}
	closingMinutes, err := ParseClockTime(space.ClosingTime)
	if err != nil {
		log.Printf("could not parse closing time for space %d: %q", space.ID, space.ClosingTime)
		return nil, ErrSpaceMisconfigured
	}
	if MinutesOfDay(input.EndTime) > closingMinutes {
		return nil, ErrExceedsClosingTime
	}

	totalPrice := input.TotalPrice
	if totalPrice == nil {
		computed := CalculateTotalPrice(space, input.StartTime, input.EndTime)
		totalPrice = &computed
	}

	booking := model.Booking{
		PublicCode:     "BKG-" + uuid.New().String()[:8],
		UserId:         user.ID,
		SpaceId:        &space.ID,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		NumberOfPeople: input.NumberOfPeople,
		TotalPrice:     totalPrice,
		Status:         model.ParseBookingStatus(input.Status),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// Lock candidate rows so a concurrent create for the same slot
		// blocks until this transaction settles. Sqlite (tests) has no
		// FOR UPDATE; its single-writer model covers the race instead.
		scope := overlapScope(tx, space.ID, input.StartTime, input.EndTime)
		if tx.Dialector.Name() == "postgres" {
			scope = scope.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var conflict model.Booking
		err := scope.Take(&conflict).Error
		if err == nil {
			return ErrSlotUnavailable
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	booking.User = *user
	booking.Space = space

	// Calendar sync is best effort: a failure is logged and never rolls
	// back the booking.
	SyncCalendarEvent(&booking)

	return &booking, nil
}

// CancelBooking moves a BOOKED booking to CANCELLED. Any other current
// status is rejected.
func CancelBooking(db *gorm.DB, bookingId uint, reason string) (*model.Booking, error) {
	var booking model.Booking
	if err := db.Preload("User").Preload("Space").First(&booking, bookingId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if booking.Status != model.BookingBooked {
		return nil, ErrInvalidStateTransition
	}

	now := time.Now()
	booking.Status = model.BookingCancelled
	booking.CancelledAt = &now
	if trimmed := strings.TrimSpace(reason); trimmed != "" {
		booking.CancellationReason = &trimmed
	}

	if err := db.Save(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateCompletedBookings transitions every BOOKED booking whose end time
// has passed to COMPLETED. Safe to run repeatedly and concurrently.
func UpdateCompletedBookings(db *gorm.DB) (int64, error) {
	result := db.Model(&model.Booking{}).
		Where("status = ? AND end_time < ?", model.BookingBooked, time.Now()).
		Update("status", model.BookingCompleted)
	return result.RowsAffected, result.Error
}

// GetBookingsForSpaceOnDate returns the BOOKED bookings of a space whose
// interval intersects the given calendar day. Day boundaries follow the
// server's local clock.
func GetBookingsForSpaceOnDate(db *gorm.DB, spaceId uint, date time.Time) ([]model.Booking, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Microsecond)

	var bookings []model.Booking
	err := db.Preload("User").Preload("Space").
		Where("space_id = ? AND status = ?", spaceId, model.BookingBooked).
		Where("start_time <= ? AND end_time >= ?", dayEnd, dayStart).
		Order("start_time ASC").
		Find(&bookings).Error
	return bookings, err
}

// GetBookingsByUserId returns all bookings of a user, newest first.
func GetBookingsByUserId(db *gorm.DB, userId uint) ([]model.Booking, error) {
	var bookings []model.Booking
	err := db.Preload("User").Preload("Space").
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// UpdateBookingByAdmin applies the admin override: each field is updated
// only when provided and different. Status overrides are intentionally
// unrestricted here, unlike the user-facing cancel path.
func UpdateBookingByAdmin(db *gorm.DB, bookingId uint, input model.AdminUpdateBookingInput) (*model.Booking, error) {
	var booking model.Booking
	if err := db.Preload("User").Preload("Space").First(&booking, bookingId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	updated := false

	if input.Status != nil {
		newStatus := model.BookingStatus(*input.Status)
		if newStatus != booking.Status {
			booking.Status = newStatus
			if newStatus == model.BookingCancelled {
				if booking.CancelledAt == nil {
					now := time.Now()
					booking.CancelledAt = &now
				}
			} else {
				booking.CancelledAt = nil
				booking.CancellationReason = nil
			}
			updated = true
		}
	}

	if input.NumberOfPeople != nil && *input.NumberOfPeople != booking.NumberOfPeople {
		if *input.NumberOfPeople <= 0 {
			return nil, ErrInvalidParticipantCount
		}
		if booking.Space != nil && booking.Space.ID != 0 && *input.NumberOfPeople > booking.Space.Capacity {
			return nil, ErrCapacityExceeded
		}
		booking.NumberOfPeople = *input.NumberOfPeople
		updated = true
	}

	if input.TotalPrice != nil {
		priceChanged := booking.TotalPrice == nil || *booking.TotalPrice != *input.TotalPrice
		if priceChanged {
			if *input.TotalPrice < 0 {
				return nil, ErrNegativePrice
			}
			booking.TotalPrice = input.TotalPrice
			updated = true
		}
	}

	if !updated {
		return &booking, nil
	}

	if err := db.Save(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

var bookingScheduler *cron.Cron

// StartBookingScheduler runs the completion sweep at the top of every
// hour. The same sweep is exposed for manual triggering over HTTP.
func StartBookingScheduler() {
	bookingScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := bookingScheduler.AddFunc("0 * * * *", runCompletionSweep)
	if err != nil {
		log.Printf("failed to start booking scheduler: %v", err)
		return
	}

	bookingScheduler.Start()
	log.Println("Booking completion scheduler started (hourly)")
}

func runCompletionSweep() {
	n, err := UpdateCompletedBookings(database.DB)
	if err != nil {
		log.Printf("completion sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("completion sweep marked %d bookings COMPLETED", n)
	}
}

func StopBookingScheduler() {
	if bookingScheduler != nil {
		bookingScheduler.Stop()
		log.Println("Booking completion scheduler stopped")
	}
}
