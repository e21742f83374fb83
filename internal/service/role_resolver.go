package service

import (
	"context"

	"github.com/lindo/claim-system-api/internal/repository"
)

// RoleResolver derives the role names attached to a user by joining their
// role associations to the roles table.
type RoleResolver struct {
	userRoleRepo repository.UserRoleRepository
}

func NewRoleResolver(userRoleRepo repository.UserRoleRepository) *RoleResolver {
	return &RoleResolver{userRoleRepo: userRoleRepo}
}

func (r *RoleResolver) RolesForUser(ctx context.Context, userID uint) ([]string, error) {
	return r.userRoleRepo.RoleNamesByUserID(ctx, userID)
}

// RolesForUsers resolves role names for many users in one query.
func (r *RoleResolver) RolesForUsers(ctx context.Context, userIDs []uint) (map[uint][]string, error) {
	return r.userRoleRepo.RoleNamesByUserIDs(ctx, userIDs)
}
