package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleAdmin  UserRole = "Admin"
	UserRoleStaff  UserRole = "Staff"
	UserRoleClient UserRole = "Client"
)

// ParseUserRole rejects any role string outside the known set.
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case UserRoleAdmin, UserRoleStaff, UserRoleClient:
		return UserRole(s), nil
	}
	return "", fmt.Errorf("unknown user role: %q", s)
}

type User struct {
	Id           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	ContactNo    string
	Role         UserRole
	PasswordHash *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
