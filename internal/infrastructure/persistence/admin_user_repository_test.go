package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verdantia/storefront/internal/domain/identity"
	"github.com/verdantia/storefront/internal/domain/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupAdminUserTestDB creates an in-memory SQLite database for testing
func setupAdminUserTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&identity.AdminUser{})
	require.NoError(t, err)

	return db
}

func TestGormAdminUserRepository_SaveAndFindByID(t *testing.T) {
	db := setupAdminUserTestDB(t)
	repo := NewGormAdminUserRepository(db)
	ctx := context.Background()

	user, err := identity.NewAdminUser("maya@verdantia.example", "correct-horse-battery", "Maya", identity.AdminRoleAdmin)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))

	loaded, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "maya@verdantia.example", loaded.Email)
	assert.Equal(t, identity.AdminRoleAdmin, loaded.Role)
	assert.True(t, loaded.VerifyPassword("correct-horse-battery"))
}

func TestGormAdminUserRepository_FindByEmail(t *testing.T) {
	db := setupAdminUserTestDB(t)
	repo := NewGormAdminUserRepository(db)
	ctx := context.Background()

	user, err := identity.NewAdminUser("maya@verdantia.example", "correct-horse-battery", "Maya", identity.AdminRoleEditor)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))

	// lookup normalizes case and padding
	loaded, err := repo.FindByEmail(ctx, "  Maya@Verdantia.Example ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loaded.ID)

	_, err = repo.FindByEmail(ctx, "nobody@verdantia.example")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormAdminUserRepository_ExistsByEmail(t *testing.T) {
	db := setupAdminUserTestDB(t)
	repo := NewGormAdminUserRepository(db)
	ctx := context.Background()

	user, err := identity.NewAdminUser("maya@verdantia.example", "correct-horse-battery", "Maya", identity.AdminRoleEditor)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))

	exists, err := repo.ExistsByEmail(ctx, "MAYA@verdantia.example")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "nobody@verdantia.example")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormAdminUserRepository_FindAll(t *testing.T) {
	db := setupAdminUserTestDB(t)
	repo := NewGormAdminUserRepository(db)
	ctx := context.Background()

	for _, email := range []string{"a@verdantia.example", "b@verdantia.example", "c@verdantia.example"} {
		user, err := identity.NewAdminUser(email, "correct-horse-battery", "Staff", identity.AdminRoleEditor)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, user))
	}

	users, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 2, OrderBy: "email", OrderDir: "asc"})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@verdantia.example", users[0].Email)

	count, err := repo.Count(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestGormAdminUserRepository_Delete(t *testing.T) {
	db := setupAdminUserTestDB(t)
	repo := NewGormAdminUserRepository(db)
	ctx := context.Background()

	user, err := identity.NewAdminUser("maya@verdantia.example", "correct-horse-battery", "Maya", identity.AdminRoleEditor)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))

	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err = repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
