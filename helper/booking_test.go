package helper

import (
	"errors"
	"testing"
	"time"

	"space_manager/model"
	"space_manager/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Space{}, &model.Booking{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUserAndSpace(t *testing.T, db *gorm.DB) (*model.User, *model.Space) {
	t.Helper()

	user := &model.User{
		Email:     "alice@example.com",
		Password:  "irrelevant",
		FirstName: utils.StringPtr("Alice"),
		LastName:  utils.StringPtr("Nguyen"),
		Role:      "USER",
		IsActive:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	space := &model.Space{
		Name:        "Boardroom One",
		Slug:        "boardroom-one",
		Location:    "Floor 2",
		Capacity:    10,
		SpaceType:   model.MeetingRoom,
		OpeningTime: "08:00",
		ClosingTime: "20:00",
		Price:       25,
		IsAvailable: true,
	}
	if err := db.Create(space).Error; err != nil {
		t.Fatalf("create space: %v", err)
	}
	return user, space
}

// tomorrowAt returns tomorrow's date at the given local wall-clock hour,
// keeping every test slot in the future.
func tomorrowAt(hour, min int) time.Time {
	d := time.Now().AddDate(0, 0, 1)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, time.Local)
}

func mustCreateBooking(t *testing.T, db *gorm.DB, user *model.User, space *model.Space, start, end time.Time) *model.Booking {
	t.Helper()

	booking, err := CreateBooking(db, user, space, model.CreateBookingInput{
		UserId:         user.ID,
		SpaceId:        space.ID,
		StartTime:      start,
		EndTime:        end,
		NumberOfPeople: 2,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return booking
}

func TestCreateBooking_ValidationOrder(t *testing.T) {
	db := openTestDB(t)
	user, space := seedUserAndSpace(t, db)

	cases := []struct {
		name    string
		space   *model.Space
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"missing start", space, time.Time{}, tomorrowAt(11, 0), ErrMissingFields},
		{"missing end", space, tomorrowAt(10, 0), time.Time{}, ErrMissingFields},
		{"nil space", nil, tomorrowAt(10, 0), tomorrowAt(11, 0), ErrMissingFields},
		{"end before start", space, tomorrowAt(11, 0), tomorrowAt(10, 0), ErrInvalidInterval},
		{"past start", space, time.Now().Add(-2 * time.Hour), time.Now().Add(-1 * time.Hour), ErrPastStartTime},
		{"past closing", space, tomorrowAt(18, 0), tomorrowAt(21, 0), ErrExceedsClosingTime},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CreateBooking(db, user, tc.space, model.CreateBookingInput{
				UserId:         user.ID,
				StartTime:      tc.start,
				EndTime:        tc.end,
				NumberOfPeople: 2,
			})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateBooking_MisconfiguredClosingTime(t *testing.T) {
	db := openTestDB(t)
	user, space := seedUserAndSpace(t, db)

	for _, closing := range []string{"", "not-a-time"} {
		space.ClosingTime = closing
		_, err := CreateBooking(db, user, space, model.CreateBookingInput{
			UserId:         user.ID,
			SpaceId:        space.ID,
			StartTime:      tomorrowAt(10, 0),
			EndTime:        tomorrowAt(11, 0),
			NumberOfPeople: 2,
		})
		if !errors.Is(err, ErrSpaceMisconfigured) {
			t.Fatalf("closing %q: expected ErrSpaceMisconfigured, got %v", closing, err)
		}
	}
}

func TestCreateBooking_OverlapIsHalfOpen(t *testing.T) {
	db := openTestDB(t)
	user, space := seedUserAndSpace(t, db)

	mustCreateBooking(t, db, user, space, tomorrowAt(10, 0), tomorrowAt(12, 0))

	// Straddling the existing slot conflicts.
	_, err := CreateBooking(db, user, space, model.CreateBookingInput{
		UserId:         user.ID,
		SpaceId:        space.ID,
		StartTime:      tomorrowAt(11, 0),
		EndTime:        tomorrowAt(13, 0),
		NumberOfPeople: 2,
	})
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}

	// Touching end-to-start does not conflict.
	mustCreateBooking(t, db, user, space, tomorrowAt(12, 0), tomorrowAt(13, 0))

	// Neither does touching start-to-end.
	mustCreateBooking(t, db, user, space, tomorrowAt(9, 0), tomorrowAt(10, 0))
}

func TestCreateBooking_CancelledSlotFreesTheInterval(t *testing.T) {
	db := openTestDB(t)
	user, space := seedUserAndSpace(t, db)

	booking := mustCreateBooking(t, db, user, space, tomorrowAt(10, 0), tomorrowAt(12, 0))

	if _, err := CancelBooking(db, booking.ID, "plans changed"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// The cancelled interval no longer blocks new bookings.
	mustCreateBooking(t, db, user, space, tomorrowAt(10, 0), tomorrowAt(12, 0))
}

func TestCreateBooking_ComputesPriceAndDefaults(t *testing.T) {
	db := openTestDB(t)
	user, space := seedUserAndSpace(t, db)

	booking, err := CreateBooking(db, user, space, model.CreateBookingInput{
		UserId:         user.ID,
		SpaceId:        space.ID,
		StartTime:      tomorrowAt(10, 0),
		EndTime:        tomorrowAt(11, 30),
		NumberOfPeople: 4,
		Status:         "definitely-not-a-status",
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if booking.Status != model.BookingBooked {
		t.Fatalf("expected unknown status to decode as BOOKED, got %s", booking.Status)
	}
	if booking.TotalPrice == nil || *booking.TotalPrice != 50 {
		t.Fatalf("expected 90 minutes to bill as 2 hours (50), got %v", booking.TotalPrice)
	}
	if booking.PublicCode == "" {
		t.Fatalf("expected a public code")
	}
}

func TestCreateBooking_KeepsCallerPrice(t *testing.T) {
	db := openTestDB(t)
	user, space := seedUserAndSpace(t, db)

	price := 12.5
	booking, err := CreateBooking(db, user, space, model.CreateBookingInput{
		UserId:         user.ID,
		SpaceId:        space.ID,
		StartTime:      tomorrowAt(10, 0),
		EndTime:        tomorrowAt(12, 0),
		NumberOfPeople: 2,
		TotalPrice:     &price,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if booking.TotalPrice == nil || *booking.TotalPrice != 12.5 {
		t.Fatalf("expected caller price kept, got %v", booking.TotalPrice)
	}
}

func TestCalculateTotalPrice(t *testing.T) {
	space := &model.Space{Price: 25}

	start := tomorrowAt(10, 0)
	cases := []struct {
		end  time.Time
		want float64
	}{
		{start.Add(30 * time.Minute), 25},  // sub-hour bills one hour
		{start.Add(time.Hour), 25},
		{start.Add(90 * time.Minute), 50},  // started hour rounds up
		{start.Add(3 * time.Hour), 75},
	}
	for _, tc := range cases {
		if got := CalculateTotalPrice(space, start, tc.end); got != tc.want {
			t.Fatalf("duration %v: expected %v, got %v", tc.end.Sub(start), tc.want, got)
		}
	}
}

func TestCancelBooking_Transitions(t *testing.T) {
	db := openTestDB(t)
	user, space := seedUserAndSpace(t, db)

	booking := mustCreateBooking(t, db, user, space, tomorrowAt(10, 0), tomorrowAt(11, 0))

	cancelled, err := CancelBooking(db, booking.ID, "  meeting moved  ")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != model.BookingCancelled {
		t.Fatalf("expected CANCELLED, got %s", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelledAt to be set")
	}
	if cancelled.CancellationReason == nil || *cancelled.CancellationReason != "meeting moved" {
		t.Fatalf("expected trimmed reason, got %v", cancelled.CancellationReason)
	}

	// Cancelling twice is rejected.
	if _, err := CancelBooking(db, booking.ID, ""); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected ErrInvalidStateTransition, got %v", err)
	}

	if _, err := CancelBooking(db, 9999, ""); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestCancelBooking_RejectsCompleted(t *testing.T) {
	db := openTestDB(t)
	user, space := seedUserAndSpace(t, db)

	booking := mustCreateBooking(t, db, user, space, tomorrowAt(10, 0), tomorrowAt(11, 0))
	if err := db.Model(booking).Update("status", model.BookingCompleted).Error; err != nil {
		t.Fatalf("force complete: %v", err)
	}

	if _, err := CancelBooking(db, booking.ID, ""); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected ErrInvalidStateTransition, got %v", err)
	}
}

func TestUpdateCompletedBookings_SweepIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	user, space := seedUserAndSpace(t, db)

	// Elapsed bookings go in directly; CreateBooking rejects past slots.
	past := model.Booking{
		PublicCode: "BKG-past0001",
		UserId:     user.ID,
		SpaceId:    &space.ID,
		StartTime:  time.Now().Add(-3 * time.Hour),
		EndTime:    time.Now().Add(-2 * time.Hour),
		Status:     model.BookingBooked,
	}
	if err := db.Create(&past).Error; err != nil {
		t.Fatalf("seed past booking: %v", err)
	}
	cancelled := model.Booking{
		PublicCode: "BKG-past0002",
		UserId:     user.ID,
		SpaceId:    &space.ID,
		StartTime:  time.Now().Add(-3 * time.Hour),
		EndTime:    time.Now().Add(-2 * time.Hour),
		Status:     model.BookingCancelled,
	}
	if err := db.Create(&cancelled).Error; err != nil {
		t.Fatalf("seed cancelled booking: %v", err)
	}
	future := mustCreateBooking(t, db, user, space, tomorrowAt(10, 0), tomorrowAt(11, 0))

	n, err := UpdateCompletedBookings(db)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 booking swept, got %d", n)
	}

	var check model.Booking
	if err := db.First(&check, past.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if check.Status != model.BookingCompleted {
		t.Fatalf("expected COMPLETED, got %s", check.Status)
	}

	// Second run finds nothing left to do.
	n, err = UpdateCompletedBookings(db)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected idempotent sweep, got %d rows", n)
	}

	// Cancelled and future bookings are untouched.
	check = model.Booking{}
	if err := db.First(&check, cancelled.ID).Error; err != nil {
		t.Fatalf("reload cancelled: %v", err)
	}
	if check.Status != model.BookingCancelled {
		t.Fatalf("cancelled booking was swept to %s", check.Status)
	}
	check = model.Booking{}
	if err := db.First(&check, future.ID).Error; err != nil {
		t.Fatalf("reload future: %v", err)
	}
	if check.Status != model.BookingBooked {
		t.Fatalf("future booking was swept to %s", check.Status)
	}
}

func TestUpdateBookingByAdmin(t *testing.T) {
	db := openTestDB(t)
	user, space := seedUserAndSpace(t, db)

	booking := mustCreateBooking(t, db, user, space, tomorrowAt(10, 0), tomorrowAt(11, 0))

	t.Run("capacity enforced", func(t *testing.T) {
		people := 15 // space capacity is 10
		_, err := UpdateBookingByAdmin(db, booking.ID, model.AdminUpdateBookingInput{NumberOfPeople: &people})
		if !errors.Is(err, ErrCapacityExceeded) {
			t.Fatalf("expected ErrCapacityExceeded, got %v", err)
		}
	})

	t.Run("participant count must be positive", func(t *testing.T) {
		people := 0
		_, err := UpdateBookingByAdmin(db, booking.ID, model.AdminUpdateBookingInput{NumberOfPeople: &people})
		if !errors.Is(err, ErrInvalidParticipantCount) {
			t.Fatalf("expected ErrInvalidParticipantCount, got %v", err)
		}
	})

	t.Run("negative price rejected", func(t *testing.T) {
		price := -1.0
		_, err := UpdateBookingByAdmin(db, booking.ID, model.AdminUpdateBookingInput{TotalPrice: &price})
		if !errors.Is(err, ErrNegativePrice) {
			t.Fatalf("expected ErrNegativePrice, got %v", err)
		}
	})

	t.Run("no-op keeps record unchanged", func(t *testing.T) {
		before := booking.UpdatedAt
		same, err := UpdateBookingByAdmin(db, booking.ID, model.AdminUpdateBookingInput{})
		if err != nil {
			t.Fatalf("no-op update: %v", err)
		}
		if !same.UpdatedAt.Equal(before) {
			t.Fatalf("no-op update touched the record")
		}
	})

	t.Run("cancel override stamps cancelledAt", func(t *testing.T) {
		status := string(model.BookingCancelled)
		updated, err := UpdateBookingByAdmin(db, booking.ID, model.AdminUpdateBookingInput{Status: &status})
		if err != nil {
			t.Fatalf("override: %v", err)
		}
		if updated.Status != model.BookingCancelled || updated.CancelledAt == nil {
			t.Fatalf("expected CANCELLED with timestamp, got %s / %v", updated.Status, updated.CancelledAt)
		}

		// Admin may also move it back, clearing the cancellation fields.
		// The user-facing path never allows this.
		status = string(model.BookingBooked)
		updated, err = UpdateBookingByAdmin(db, booking.ID, model.AdminUpdateBookingInput{Status: &status})
		if err != nil {
			t.Fatalf("revert: %v", err)
		}
		if updated.Status != model.BookingBooked || updated.CancelledAt != nil || updated.CancellationReason != nil {
			t.Fatalf("expected cancellation fields cleared, got %v / %v", updated.CancelledAt, updated.CancellationReason)
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := UpdateBookingByAdmin(db, 9999, model.AdminUpdateBookingInput{})
		if !errors.Is(err, ErrBookingNotFound) {
			t.Fatalf("expected ErrBookingNotFound, got %v", err)
		}
	})
}

func TestGetBookingsForSpaceOnDate(t *testing.T) {
	db := openTestDB(t)
	user, space := seedUserAndSpace(t, db)

	onDay := mustCreateBooking(t, db, user, space, tomorrowAt(10, 0), tomorrowAt(11, 0))
	later := mustCreateBooking(t, db, user, space, tomorrowAt(14, 0), tomorrowAt(15, 0))

	dayAfter := time.Now().AddDate(0, 0, 2)
	otherDay := mustCreateBooking(t, db, user, space,
		time.Date(dayAfter.Year(), dayAfter.Month(), dayAfter.Day(), 10, 0, 0, 0, time.Local),
		time.Date(dayAfter.Year(), dayAfter.Month(), dayAfter.Day(), 11, 0, 0, 0, time.Local))

	cancelled := mustCreateBooking(t, db, user, space, tomorrowAt(16, 0), tomorrowAt(17, 0))
	if _, err := CancelBooking(db, cancelled.ID, ""); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	bookings, err := GetBookingsForSpaceOnDate(db, space.ID, tomorrowAt(0, 0))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings on the day, got %d", len(bookings))
	}
	if bookings[0].ID != onDay.ID || bookings[1].ID != later.ID {
		t.Fatalf("expected chronological order %d,%d, got %d,%d",
			onDay.ID, later.ID, bookings[0].ID, bookings[1].ID)
	}
	_ = otherDay
}

func TestGetBookingsByUserId(t *testing.T) {
	db := openTestDB(t)
	user, space := seedUserAndSpace(t, db)

	other := &model.User{Email: "bob@example.com", Password: "x", Role: "USER", IsActive: true}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	mustCreateBooking(t, db, user, space, tomorrowAt(10, 0), tomorrowAt(11, 0))
	mustCreateBooking(t, db, other, space, tomorrowAt(12, 0), tomorrowAt(13, 0))

	bookings, err := GetBookingsByUserId(db, user.ID)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("expected 1 booking for user, got %d", len(bookings))
	}
	if bookings[0].UserId != user.ID {
		t.Fatalf("got booking of user %d", bookings[0].UserId)
	}
}

func TestBookingResponse_SpaceDeleted(t *testing.T) {
	db := openTestDB(t)
	user, space := seedUserAndSpace(t, db)

	booking := mustCreateBooking(t, db, user, space, tomorrowAt(10, 0), tomorrowAt(11, 0))

	resp := booking.ToResponse()
	if resp.SpaceDeleted {
		t.Fatalf("space still exists")
	}
	if resp.SpaceName != space.Name {
		t.Fatalf("expected space name %q, got %q", space.Name, resp.SpaceName)
	}
	if resp.UserName != "Alice Nguyen" {
		t.Fatalf("expected joined name, got %q", resp.UserName)
	}

	// A removed space leaves the booking readable with the flag set.
	booking.SpaceId = nil
	booking.Space = nil
	resp = booking.ToResponse()
	if !resp.SpaceDeleted {
		t.Fatalf("expected SpaceDeleted")
	}
	if resp.SpaceName != "" || resp.SpaceId != nil {
		t.Fatalf("expected empty space fields, got %q / %v", resp.SpaceName, resp.SpaceId)
	}
}

func TestIsTimeSlotAvailable(t *testing.T) {
	db := openTestDB(t)
	user, space := seedUserAndSpace(t, db)

	mustCreateBooking(t, db, user, space, tomorrowAt(10, 0), tomorrowAt(12, 0))

	free, err := IsTimeSlotAvailable(db, space.ID, tomorrowAt(11, 0), tomorrowAt(13, 0))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if free {
		t.Fatalf("expected overlap to report unavailable")
	}

	free, err = IsTimeSlotAvailable(db, space.ID, tomorrowAt(12, 0), tomorrowAt(13, 0))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !free {
		t.Fatalf("touching slots must not conflict")
	}
}
