package postgres

import (
	"context"

	"github.com/lindo/claim-system-api/internal/domain"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetActiveByID returns the active session with the given id, preloading the
// owning user. Expired sessions are still returned; expiry is the service's
// call.
func (r *sessionRepository) GetActiveByID(ctx context.Context, id string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&session, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Deactivate flips an active session to inactive and reports whether a
// matching active row existed. Rows are never deleted.
func (r *sessionRepository) Deactivate(ctx context.Context, id string) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
