package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lindo/claim-system-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	password string
	active   bool
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
		active:   true,
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Inactive marks the user as deactivated
func (b *UserBuilder) Inactive() *UserBuilder {
	b.active = false
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		Username:      b.username,
		Email:         b.email,
		PasswordHash:  string(hashedPassword),
		FirstName:     "Test",
		LastName:      "User",
		ContactNumber: "0110000000",
		Address:       "1 Test Street",
		IsActive:      b.active,
		CreatedDate:   time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// CreateRole inserts a role and returns it
func CreateRole(t *testing.T, db *gorm.DB, name string) *domain.Role {
	t.Helper()

	role := &domain.Role{Name: name}
	if err := db.Create(role).Error; err != nil {
		t.Fatalf("failed to create role %q: %v", name, err)
	}
	return role
}

// AssignRoles attaches the given roles to a user
func AssignRoles(t *testing.T, db *gorm.DB, userID uint, roleIDs ...uint) {
	t.Helper()

	for _, roleID := range roleIDs {
		if err := db.Create(&domain.UserRole{UserID: userID, RoleID: roleID}).Error; err != nil {
			t.Fatalf("failed to assign role %d to user %d: %v", roleID, userID, err)
		}
	}
}

// SessionBuilder creates test sessions
type SessionBuilder struct {
	userID   uint
	expiry   time.Time
	inactive bool
}

// NewSessionBuilder creates a SessionBuilder for the given user with a
// 20-hour validity window
func NewSessionBuilder(userID uint) *SessionBuilder {
	return &SessionBuilder{
		userID: userID,
		expiry: time.Now().Add(20 * time.Hour),
	}
}

// Expired backdates the expiry
func (b *SessionBuilder) Expired() *SessionBuilder {
	b.expiry = time.Now().Add(-time.Hour)
	return b
}

// Inactive marks the session as logged out
func (b *SessionBuilder) Inactive() *SessionBuilder {
	b.inactive = true
	return b
}

// Build creates the session in the database
func (b *SessionBuilder) Build(t *testing.T, db *gorm.DB) *domain.Session {
	t.Helper()

	session := &domain.Session{
		ID:          strings.ReplaceAll(uuid.NewString(), "-", ""),
		UserID:      b.userID,
		CreatedDate: time.Now(),
		ExpiryDate:  b.expiry,
		IsActive:    !b.inactive,
	}

	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	return session
}

// AuthResponse matches the API auth response envelope
type AuthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
	User      *struct {
		UserID   uint     `json:"userId"`
		Username string   `json:"userName"`
		Email    string   `json:"email"`
		IsActive bool     `json:"isActive"`
		Roles    []string `json:"roles"`
	} `json:"user"`
}

// LoginSession logs a user in through the API and returns the session id
func LoginSession(t *testing.T, ts *TestServer, username, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"userName": username,
		"password": password,
	})

	resp, err := http.Post(ts.APIURL("/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}

	if authResp.SessionID == "" {
		t.Fatal("login response has no session id")
	}

	return authResp.SessionID
}
