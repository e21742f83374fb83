package domain

import (
	"time"
)

type User struct {
	ID            uint      `json:"userId" gorm:"primaryKey"`
	Username      string    `json:"userName" gorm:"size:100;uniqueIndex;not null"`
	Email         string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash  string    `json:"-" gorm:"not null"`
	FirstName     string    `json:"firstName" gorm:"size:100;not null"`
	LastName      string    `json:"lastName" gorm:"size:100;not null"`
	ContactNumber string    `json:"contactNumber" gorm:"size:50"`
	Address       string    `json:"address" gorm:"size:255"`
	Faculty       *string   `json:"faculty" gorm:"size:100"`
	HourlyRate    *float64  `json:"hourlyRate" gorm:"type:numeric(10,2)"`
	MaxHours      *int      `json:"maxHours"`
	// No gorm default: a false value must be written as-is, not swallowed
	// as "unset". Callers always assign the flag explicitly.
	IsActive    bool      `json:"isActive" gorm:"not null"`
	CreatedDate time.Time `json:"createdDate"`
}

// Role is reference data: this service reads roles but never creates,
// updates or deletes them.
type Role struct {
	ID          uint    `json:"roleId" gorm:"primaryKey"`
	Name        string  `json:"roleName" gorm:"size:50;uniqueIndex;not null"`
	Description *string `json:"description" gorm:"size:255"`
}

// UserRole joins users to roles. Duplicate (user, role) pairs are not
// prevented; role resolution surfaces them as-is.
type UserRole struct {
	ID     uint `json:"userRoleId" gorm:"primaryKey"`
	UserID uint `json:"userId" gorm:"not null;index"`
	RoleID uint `json:"roleId" gorm:"not null;index"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Role *Role `json:"-" gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
}
