package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/lindo/claim-system-api/internal/domain"
	"github.com/lindo/claim-system-api/internal/repository/postgres"
	"github.com/lindo/claim-system-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	tests := []struct {
		name    string
		user    *domain.User
		wantErr bool
	}{
		{
			name: "successful creation",
			user: &domain.User{
				Username:     "testuser",
				Email:        "testuser@example.com",
				PasswordHash: "hashedpassword",
				FirstName:    "Test",
				LastName:     "User",
				IsActive:     true,
				CreatedDate:  time.Now(),
			},
			wantErr: false,
		},
		{
			name: "duplicate username",
			user: &domain.User{
				Username:     "testuser", // Same as above
				Email:        "other@example.com",
				PasswordHash: "hashedpassword2",
				FirstName:    "Other",
				LastName:     "User",
				IsActive:     true,
				CreatedDate:  time.Now(),
			},
			wantErr: true,
		},
		{
			name: "duplicate email",
			user: &domain.User{
				Username:     "otheruser",
				Email:        "testuser@example.com", // Same as first
				PasswordHash: "hashedpassword3",
				FirstName:    "Other",
				LastName:     "User",
				IsActive:     true,
				CreatedDate:  time.Now(),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotZero(t, tt.user.ID)
			}
		})
	}
}

func TestUserRepository_GetActiveByUsername(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	active, _ := testutil.NewUserBuilder().WithUsername("activeuser").Build(t, testDB.DB)
	testutil.NewUserBuilder().WithUsername("inactiveuser").Inactive().Build(t, testDB.DB)

	found, err := repo.GetActiveByUsername(ctx, "activeuser")
	require.NoError(t, err)
	assert.Equal(t, active.ID, found.ID)

	_, err = repo.GetActiveByUsername(ctx, "inactiveuser")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.GetActiveByUsername(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_GetByUsernameOrEmail(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithUsername("someone").
		WithEmail("someone@example.com").
		Build(t, testDB.DB)

	byUsername, err := repo.GetByUsernameOrEmail(ctx, "someone", "unused@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUsername.ID)

	byEmail, err := repo.GetByUsernameOrEmail(ctx, "unused", "someone@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByUsernameOrEmail(ctx, "unused", "unused@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_GetConflicting(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	target, _ := testutil.NewUserBuilder().
		WithUsername("target").
		WithEmail("target@example.com").
		Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().
		WithUsername("other").
		WithEmail("other@example.com").
		Build(t, testDB.DB)

	// A user's own identity never conflicts with itself.
	_, err := repo.GetConflicting(ctx, target.ID, "target", "target@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	conflict, err := repo.GetConflicting(ctx, target.ID, "other", "target@example.com")
	require.NoError(t, err)
	assert.Equal(t, other.ID, conflict.ID)

	conflict, err = repo.GetConflicting(ctx, target.ID, "target", "other@example.com")
	require.NoError(t, err)
	assert.Equal(t, other.ID, conflict.ID)
}

func TestUserRepository_UpdateWithRoles(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	roleRepo := postgres.NewUserRoleRepository(testDB.DB)
	ctx := context.Background()

	t.Run("saves fields and replaces roles together", func(t *testing.T) {
		testDB.Truncate(t)
		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		lecturer := testutil.CreateRole(t, testDB.DB, "Lecturer")
		coordinator := testutil.CreateRole(t, testDB.DB, "Programme Coordinator")
		manager := testutil.CreateRole(t, testDB.DB, "Academic Manager")

		testutil.AssignRoles(t, testDB.DB, user.ID, lecturer.ID)
		testutil.AssignRoles(t, testDB.DB, other.ID, lecturer.ID)

		user.FirstName = "Renamed"
		require.NoError(t, repo.UpdateWithRoles(ctx, user, []uint{coordinator.ID, manager.ID}))

		saved, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", saved.FirstName)

		names, err := roleRepo.RoleNamesByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Programme Coordinator", "Academic Manager"}, names)

		// Other users' associations are untouched.
		otherNames, err := roleRepo.RoleNamesByUserID(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Lecturer"}, otherNames)
	})

	t.Run("empty role list leaves associations alone", func(t *testing.T) {
		testDB.Truncate(t)
		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		lecturer := testutil.CreateRole(t, testDB.DB, "Lecturer")
		testutil.AssignRoles(t, testDB.DB, user.ID, lecturer.ID)

		user.LastName = "Changed"
		require.NoError(t, repo.UpdateWithRoles(ctx, user, nil))

		names, err := roleRepo.RoleNamesByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Lecturer"}, names)
	})

	t.Run("failed save rolls the role replacement back", func(t *testing.T) {
		testDB.Truncate(t)
		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		lecturer := testutil.CreateRole(t, testDB.DB, "Lecturer")
		hr := testutil.CreateRole(t, testDB.DB, "HR")
		testutil.AssignRoles(t, testDB.DB, user.ID, lecturer.ID)

		// The unique index on email rejects the save after the roles were
		// already swapped inside the transaction.
		user.Email = other.Email
		err := repo.UpdateWithRoles(ctx, user, []uint{hr.ID})
		require.Error(t, err)

		names, err := roleRepo.RoleNamesByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Lecturer"}, names)
	})
}

func TestUserRepository_List(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	testutil.NewUserBuilder().WithUsername("alpha").Build(t, testDB.DB)
	testutil.NewUserBuilder().WithUsername("beta").Inactive().Build(t, testDB.DB)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	// Listing includes deactivated users, ordered by id.
	assert.Equal(t, "alpha", users[0].Username)
	assert.Equal(t, "beta", users[1].Username)
	assert.False(t, users[1].IsActive)
}
