package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lindo/claim-system-api/internal/config"
	"github.com/lindo/claim-system-api/internal/domain"
	"github.com/lindo/claim-system-api/internal/repository"
	"gorm.io/gorm"
)

// AuthService orchestrates credential verification, session lifecycle and
// user/role management. Business-rule failures come back as an AuthResponse
// with Success=false; only unexpected store errors are returned as errors.
type AuthService struct {
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	userRoleRepo repository.UserRoleRepository
	sessionRepo  repository.SessionRepository
	hasher       PasswordHasher
	resolver     *RoleResolver
	cfg          *config.Config
}

func NewAuthService(repos *repository.Repositories, hasher PasswordHasher, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:     repos.User,
		roleRepo:     repos.Role,
		userRoleRepo: repos.UserRole,
		sessionRepo:  repos.Session,
		hasher:       hasher,
		resolver:     NewRoleResolver(repos.UserRole),
		cfg:          cfg,
	}
}

func failed(message string) *AuthResponse {
	return &AuthResponse{Success: false, Message: message}
}

// newSessionID returns an opaque 32-character hex token.
func newSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Login verifies credentials against the active user with the given
// username, then issues a fresh session valid for the configured window.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetActiveByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return failed("Username is invalid"), nil
		}
		return nil, err
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return failed("Password is invalid"), nil
	}

	roles, err := s.resolver.RolesForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &domain.Session{
		ID:          newSessionID(),
		UserID:      user.ID,
		CreatedDate: now,
		ExpiryDate:  now.Add(s.cfg.SessionValidity),
		IsActive:    true,
	}
	if input.IPAddress != "" {
		session.IPAddress = &input.IPAddress
	}
	if input.UserAgent != "" {
		session.UserAgent = &input.UserAgent
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &AuthResponse{
		Success:   true,
		Message:   "Login successful",
		SessionID: session.ID,
		User:      newUserDTO(user, roles),
	}, nil
}

// ValidateSession checks that a session exists, is active and has not
// expired. Absence is an explicit failure, never a dereference; expired
// sessions are left as-is (lazy expiry).
func (s *AuthService) ValidateSession(ctx context.Context, sessionID string) (*AuthResponse, error) {
	session, err := s.sessionRepo.GetActiveByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return failed("Session not found"), nil
		}
		return nil, err
	}

	if session.Expired(time.Now()) {
		return failed("Session has expired"), nil
	}

	user := session.User
	if user == nil {
		user, err = s.userRepo.GetByID(ctx, session.UserID)
		if err != nil {
			return nil, err
		}
	}

	roles, err := s.resolver.RolesForUser(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Success:   true,
		Message:   "Session is valid",
		SessionID: session.ID,
		User:      newUserDTO(user, roles),
	}, nil
}

// Logout deactivates an active session. Returns false when no active
// session matched the id.
func (s *AuthService) Logout(ctx context.Context, sessionID string) (bool, error) {
	return s.sessionRepo.Deactivate(ctx, sessionID)
}

// CreateUser inserts a user plus one role association per requested role id.
// The username/email pre-check gives a friendly message; the unique indexes
// on users are the actual guarantee under concurrent creates.
func (s *AuthService) CreateUser(ctx context.Context, input CreateUserInput) (*AuthResponse, error) {
	_, err := s.userRepo.GetByUsernameOrEmail(ctx, input.Username, input.Email)
	if err == nil {
		return failed("Username or email already exists"), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	validRoles, err := s.roleRepo.GetByIDs(ctx, input.RoleIDs)
	if err != nil {
		return nil, err
	}
	if len(validRoles) != len(input.RoleIDs) {
		return failed("One or more invalid role IDs"), nil
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:      input.Username,
		Email:         input.Email,
		PasswordHash:  hash,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		ContactNumber: input.ContactNumber,
		Address:       input.Address,
		Faculty:       input.Faculty,
		HourlyRate:    input.HourlyRate,
		MaxHours:      input.MaxHours,
		IsActive:      true,
		CreatedDate:   time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.userRoleRepo.CreateForUser(ctx, user.ID, input.RoleIDs); err != nil {
		return nil, err
	}

	roleNames := make([]string, len(validRoles))
	for i, role := range validRoles {
		roleNames[i] = role.Name
	}

	return &AuthResponse{
		Success: true,
		Message: "User created successfully",
		User:    newUserDTO(user, roleNames),
	}, nil
}

// UpdateUser applies identity-field changes and, when the request names any
// role ids, fully replaces the user's role associations. An empty role list
// leaves roles untouched. The save and the role replacement commit together
// or not at all. The password hash is never modified here.
func (s *AuthService) UpdateUser(ctx context.Context, input UpdateUserInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return failed("User not found"), nil
		}
		return nil, err
	}

	_, err = s.userRepo.GetConflicting(ctx, input.UserID, input.Username, input.Email)
	if err == nil {
		return failed("Username or email already in use by another user"), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user.Username = input.Username
	user.Email = input.Email
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.ContactNumber = input.ContactNumber
	user.Address = input.Address
	user.Faculty = input.Faculty
	user.HourlyRate = input.HourlyRate
	user.MaxHours = input.MaxHours
	user.IsActive = input.IsActive

	if err := s.userRepo.UpdateWithRoles(ctx, user, input.RoleIDs); err != nil {
		return nil, err
	}

	roles, err := s.resolver.RolesForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Success: true,
		Message: "User updated successfully",
		User:    newUserDTO(user, roles),
	}, nil
}

// ChangePassword swaps the stored hash after verifying the current
// password. Role resolution is intentionally skipped on this path.
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return failed("User not found"), nil
		}
		return nil, err
	}

	if !s.hasher.Verify(input.CurrentPassword, user.PasswordHash) {
		return failed("Current password is incorrect"), nil
	}

	hash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return &AuthResponse{
		Success: true,
		Message: "Password changed successfully",
		User:    newUserDTO(user, nil),
	}, nil
}

// GetUserByID projects a single user with resolved roles. Absence surfaces
// as domain.ErrUserNotFound rather than a failure response.
func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	roles, err := s.resolver.RolesForUser(ctx, id)
	if err != nil {
		return nil, err
	}

	return newUserDTO(user, roles), nil
}

// ListUsers projects every user with their resolved roles, batching role
// resolution into a single join.
func (s *AuthService) ListUsers(ctx context.Context) ([]*UserDTO, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(users))
	for i, user := range users {
		ids[i] = user.ID
	}

	rolesByUser, err := s.resolver.RolesForUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	dtos := make([]*UserDTO, len(users))
	for i, user := range users {
		dtos[i] = newUserDTO(user, rolesByUser[user.ID])
	}
	return dtos, nil
}

// ListRoles returns all role records verbatim.
func (s *AuthService) ListRoles(ctx context.Context) ([]*domain.Role, error) {
	return s.roleRepo.List(ctx)
}
