package service

import (
	"time"

	"github.com/lindo/claim-system-api/internal/domain"
)

// AuthResponse is the result shape shared by every auth operation: a
// success flag with a human-readable message, plus the payload on success.
type AuthResponse struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	SessionID string   `json:"sessionId,omitempty"`
	User      *UserDTO `json:"user,omitempty"`
}

// UserDTO is the outward projection of a user, with resolved role names and
// without the password hash.
type UserDTO struct {
	UserID        uint      `json:"userId"`
	Username      string    `json:"userName"`
	Email         string    `json:"email"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	ContactNumber string    `json:"contactNumber"`
	Address       string    `json:"address"`
	Faculty       *string   `json:"faculty"`
	HourlyRate    *float64  `json:"hourlyRate"`
	MaxHours      *int      `json:"maxHours"`
	IsActive      bool      `json:"isActive"`
	CreatedDate   time.Time `json:"createdDate"`
	Roles         []string  `json:"roles"`
}

func newUserDTO(user *domain.User, roles []string) *UserDTO {
	if roles == nil {
		roles = []string{}
	}
	return &UserDTO{
		UserID:        user.ID,
		Username:      user.Username,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		ContactNumber: user.ContactNumber,
		Address:       user.Address,
		Faculty:       user.Faculty,
		HourlyRate:    user.HourlyRate,
		MaxHours:      user.MaxHours,
		IsActive:      user.IsActive,
		CreatedDate:   user.CreatedDate,
		Roles:         roles,
	}
}

type LoginInput struct {
	Username  string
	Password  string
	IPAddress string
	UserAgent string
}

type CreateUserInput struct {
	Username      string
	Email         string
	Password      string
	FirstName     string
	LastName      string
	ContactNumber string
	Address       string
	Faculty       *string
	HourlyRate    *float64
	MaxHours      *int
	RoleIDs       []uint
}

type UpdateUserInput struct {
	UserID        uint
	Username      string
	Email         string
	FirstName     string
	LastName      string
	ContactNumber string
	Address       string
	Faculty       *string
	HourlyRate    *float64
	MaxHours      *int
	IsActive      bool
	RoleIDs       []uint
}

type ChangePasswordInput struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
}
