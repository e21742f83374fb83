package domain

import (
	"time"
)

// Session is the server-side proof of a login. A session is usable only
// while IsActive is true and ExpiryDate has not passed; expiry is checked
// lazily at validation time, rows are never swept or deleted.
type Session struct {
	ID          string    `json:"sessionId" gorm:"primaryKey;size:255"`
	UserID      uint      `json:"userId" gorm:"not null;index"`
	CreatedDate time.Time `json:"createdDate"`
	ExpiryDate  time.Time `json:"expiryDate" gorm:"not null"`
	IsActive    bool      `json:"isActive" gorm:"not null"`
	IPAddress   *string   `json:"ipAddress" gorm:"size:50"`
	UserAgent   *string   `json:"userAgent" gorm:"size:500"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Expired reports whether the session's expiry has passed at t.
func (s *Session) Expired(t time.Time) bool {
	return s.ExpiryDate.Before(t)
}
