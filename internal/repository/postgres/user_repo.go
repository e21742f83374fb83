package postgres

import (
	"context"

	"github.com/lindo/claim-system-api/internal/domain"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetActiveByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "username = ? AND is_active = ?", username, true).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "username = ? OR email = ?", username, email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetConflicting returns a user other than excludeID already holding the
// given username or email.
func (r *userRepository) GetConflicting(ctx context.Context, excludeID uint, username, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		First(&user, "id <> ? AND (username = ? OR email = ?)", excludeID, username, email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// UpdateWithRoles saves the user and, when roleIDs is non-empty, replaces
// the user's role associations, all in one transaction. A failed save rolls
// the role replacement back.
func (r *userRepository) UpdateWithRoles(ctx context.Context, user *domain.User, roleIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(roleIDs) > 0 {
			if err := tx.Delete(&domain.UserRole{}, "user_id = ?", user.ID).Error; err != nil {
				return err
			}
			rows := make([]*domain.UserRole, len(roleIDs))
			for i, roleID := range roleIDs {
				rows[i] = &domain.UserRole{UserID: user.ID, RoleID: roleID}
			}
			if err := tx.Create(rows).Error; err != nil {
				return err
			}
		}
		return tx.Save(user).Error
	})
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	err := r.db.WithContext(ctx).Order("id").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
