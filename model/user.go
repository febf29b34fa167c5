package model

import "time"

type User struct {
	DTO
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Phone    string `json:"phone"`

	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`

	Role     string `gorm:"size:20;not null;default:USER" json:"role"` // USER / ADMIN
	IsActive bool   `gorm:"default:true" json:"isActive"`
}

type Users []User

type CreateUserInput struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6"`
	Phone     string  `json:"phone"`
	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`
	Role      *string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

type UpdateUserInput struct {
	Phone     *string `json:"phone"`
	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`
	Role      *string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
	IsActive  *bool   `json:"isActive"`
}

type FilterUser struct {
	Pagination
	SearchKey string `query:"searchKey"`
	Role      *string `query:"role"`
	Active    *bool   `query:"active"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetToken struct {
	DTO
	UserId    uint      `gorm:"not null" json:"userId"`
	Token     string    `gorm:"type:varchar(255);not null;unique" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	User      User      `gorm:"foreignKey:UserId" json:"user"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}
