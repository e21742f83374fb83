package postgres

import (
	"context"

	"github.com/lindo/claim-system-api/internal/domain"
	"gorm.io/gorm"
)

type userRoleRepository struct {
	db *gorm.DB
}

func NewUserRoleRepository(db *gorm.DB) *userRoleRepository {
	return &userRoleRepository{db: db}
}

func (r *userRoleRepository) CreateForUser(ctx context.Context, userID uint, roleIDs []uint) error {
	if len(roleIDs) == 0 {
		return nil
	}
	rows := make([]*domain.UserRole, len(roleIDs))
	for i, roleID := range roleIDs {
		rows[i] = &domain.UserRole{UserID: userID, RoleID: roleID}
	}
	return r.db.WithContext(ctx).Create(rows).Error
}

// RoleNamesByUserID joins user_roles to roles. Duplicate associations come
// back duplicated; ordering is stable by association id.
func (r *userRoleRepository) RoleNamesByUserID(ctx context.Context, userID uint) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&domain.UserRole{}).
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ?", userID).
		Order("user_roles.id").
		Pluck("roles.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *userRoleRepository) RoleNamesByUserIDs(ctx context.Context, userIDs []uint) (map[uint][]string, error) {
	result := make(map[uint][]string)
	if len(userIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		UserID uint
		Name   string
	}
	err := r.db.WithContext(ctx).
		Model(&domain.UserRole{}).
		Select("user_roles.user_id AS user_id, roles.name AS name").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id IN ?", userIDs).
		Order("user_roles.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.UserID] = append(result[row.UserID], row.Name)
	}
	return result, nil
}
