package repository

import (
	"context"

	"github.com/lindo/claim-system-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetActiveByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	GetConflicting(ctx context.Context, excludeID uint, username, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateWithRoles(ctx context.Context, user *domain.User, roleIDs []uint) error
	List(ctx context.Context) ([]*domain.User, error)
}

type RoleRepository interface {
	GetByIDs(ctx context.Context, ids []uint) ([]*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
}

type UserRoleRepository interface {
	CreateForUser(ctx context.Context, userID uint, roleIDs []uint) error
	RoleNamesByUserID(ctx context.Context, userID uint) ([]string, error)
	RoleNamesByUserIDs(ctx context.Context, userIDs []uint) (map[uint][]string, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetActiveByID(ctx context.Context, id string) (*domain.Session, error)
	Deactivate(ctx context.Context, id string) (bool, error)
}

type Repositories struct {
	User     UserRepository
	Role     RoleRepository
	UserRole UserRoleRepository
	Session  SessionRepository
}
