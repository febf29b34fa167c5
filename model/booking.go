package model

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingBooked    BookingStatus = "BOOKED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// ParseBookingStatus decodes a client-supplied status string. Unknown or
// empty values fall back to BOOKED; the domain type itself stays closed.
func ParseBookingStatus(s string) BookingStatus {
	switch BookingStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case BookingCancelled:
		return BookingCancelled
	case BookingCompleted:
		return BookingCompleted
	default:
		return BookingBooked
	}
}

type Booking struct {
	DTO
	PublicCode string `gorm:"size:16;uniqueIndex" json:"publicCode"`

	UserId uint  `gorm:"not null" json:"userId"`
	User   User  `gorm:"foreignKey:UserId" json:"user"`
	// Nullable on purpose: deleting a space must not delete its bookings.
	SpaceId *uint  `json:"spaceId"`
	Space   *Space `gorm:"foreignKey:SpaceId;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"space"`

	StartTime time.Time `gorm:"not null" json:"startTime"`
	EndTime   time.Time `gorm:"not null" json:"endTime"`

	NumberOfPeople int           `gorm:"not null" json:"numberOfPeople"`
	TotalPrice     *float64      `json:"totalPrice"`
	Status         BookingStatus `gorm:"size:20;not null" json:"status"`

	CancelledAt        *time.Time `json:"cancelledAt"`
	CancellationReason *string    `json:"cancellationReason"`
}

type Bookings []Booking

type CreateBookingInput struct {
	UserId         uint      `json:"userId" validate:"required"`
	SpaceId        uint      `json:"spaceId" validate:"required"`
	StartTime      time.Time `json:"startTime" validate:"required"`
	EndTime        time.Time `json:"endTime" validate:"required"`
	NumberOfPeople int       `json:"numberOfPeople" validate:"required,gt=0"`
	TotalPrice     *float64  `json:"totalPrice" validate:"omitempty,gte=0"`
	Status         string    `json:"status"`
}

type CancelBookingInput struct {
	Reason string `json:"reason"`
}

type AdminUpdateBookingInput struct {
	Status         *string  `json:"status" validate:"omitempty,oneof=BOOKED CANCELLED COMPLETED"`
	NumberOfPeople *int     `json:"numberOfPeople"`
	TotalPrice     *float64 `json:"totalPrice"`
}

type AvailabilityInput struct {
	SpaceId   uint      `json:"spaceId" validate:"required"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required"`
}

// BookingResponse is the denormalized read shape used by listings. The
// referenced space may have been deleted; SpaceDeleted makes that case
// explicit instead of leaving the caller to null-check.
type BookingResponse struct {
	ID             uint          `json:"id"`
	PublicCode     string        `json:"publicCode"`
	StartTime      time.Time     `json:"startTime"`
	EndTime        time.Time     `json:"endTime"`
	NumberOfPeople int           `json:"numberOfPeople"`
	TotalPrice     *float64      `json:"totalPrice"`
	Status         BookingStatus `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`

	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`

	SpaceDeleted       bool    `json:"spaceDeleted"`
	SpaceId            *uint   `json:"spaceId"`
	SpaceName          string  `json:"spaceName"`
	SpaceLocation      string  `json:"spaceLocation"`
	SpaceImageFilename *string `json:"spaceImageFilename"`

	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

// ToResponse flattens a booking for display, tolerating a removed space.
func (b *Booking) ToResponse() BookingResponse {
	resp := BookingResponse{
		ID:                 b.ID,
		PublicCode:         b.PublicCode,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		NumberOfPeople:     b.NumberOfPeople,
		TotalPrice:         b.TotalPrice,
		Status:             b.Status,
		CreatedAt:          b.CreatedAt,
		CancelledAt:        b.CancelledAt,
		CancellationReason: b.CancellationReason,
	}

	if b.SpaceId != nil && b.Space != nil && b.Space.ID != 0 {
		resp.SpaceId = b.SpaceId
		resp.SpaceName = b.Space.Name
		resp.SpaceLocation = b.Space.Location
		resp.SpaceImageFilename = b.Space.ImageFilename
	} else {
		resp.SpaceDeleted = true
	}

	name := []string{}
	if b.User.FirstName != nil {
		name = append(name, *b.User.FirstName)
	}
	if b.User.LastName != nil {
		name = append(name, *b.User.LastName)
	}
	resp.UserName = strings.Join(name, " ")
	resp.UserEmail = b.User.Email

	return resp
}
