package postgres

import (
	"time"

	"github.com/lindo/claim-system-api/internal/domain"
	"github.com/lindo/claim-system-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Role{},
		&domain.UserRole{},
		&domain.Session{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:     NewUserRepository(db),
		Role:     NewRoleRepository(db),
		UserRole: NewUserRoleRepository(db),
		Session:  NewSessionRepository(db),
	}
}

// SeedDefaultRoles inserts the claim-system reference roles if they are
// missing. Called from the server entrypoint only.
func SeedDefaultRoles(db *gorm.DB) error {
	describe := func(s string) *string { return &s }

	roles := []domain.Role{
		{Name: "Lecturer", Description: describe("Submits monthly claims for contract hours")},
		{Name: "Programme Coordinator", Description: describe("First-line verification of submitted claims")},
		{Name: "Academic Manager", Description: describe("Final approval of verified claims")},
		{Name: "HR", Description: describe("Processes approved claims and manages users")},
	}

	for i := range roles {
		if err := db.Where("name = ?", roles[i].Name).FirstOrCreate(&roles[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedBootstrapUser inserts an initial HR administrator when the users table
// is empty, so a fresh deployment can log in and create further users.
// Existing users make this a no-op; the bootstrap credentials are meant to
// be rotated right after first login.
func SeedBootstrapUser(db *gorm.DB, username, email, password string) error {
	var count int64
	if err := db.Model(&domain.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var hr domain.Role
		if err := tx.First(&hr, "name = ?", "HR").Error; err != nil {
			return err
		}

		admin := &domain.User{
			Username:     username,
			Email:        email,
			PasswordHash: string(hash),
			FirstName:    "System",
			LastName:     "Administrator",
			IsActive:     true,
			CreatedDate:  time.Now(),
		}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}

		return tx.Create(&domain.UserRole{UserID: admin.ID, RoleID: hr.ID}).Error
	})
}
