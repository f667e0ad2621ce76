package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAccountRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"required,email"`
	ContactNo string `json:"contact_no"`
	Role      string `json:"role" validate:"required,oneof=Admin Staff Client"`
	Password  string `json:"password" validate:"required,min=8"`
}

type UpdateAccountRequest struct {
	Id        uuid.UUID
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"required,email"`
	ContactNo string `json:"contact_no"`
}

type ToggleAccountStatusRequest struct {
	Id       uuid.UUID
	IsActive *bool `json:"is_active" validate:"required"`
}

type ChangePasswordRequest struct {
	Id       uuid.UUID
	Password string `json:"password" validate:"required,min=8"`
}

type UserResponse struct {
	Id        uuid.UUID  `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	ContactNo string     `json:"contact_no"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// UserSummary is the short form embedded in appointment and history views.
type UserSummary struct {
	Id        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email,omitempty"`
	ContactNo string    `json:"contact_no,omitempty"`
}
