package postgres

import (
	"context"

	"github.com/lindo/claim-system-api/internal/domain"
	"gorm.io/gorm"
)

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *roleRepository {
	return &roleRepository{db: db}
}

// GetByIDs returns the subset of the requested roles that exist.
func (r *roleRepository) GetByIDs(ctx context.Context, ids []uint) ([]*domain.Role, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var roles []*domain.Role
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	var roles []*domain.Role
	err := r.db.WithContext(ctx).Order("id").Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}
