package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verdantia/storefront/internal/domain/cart"
	"github.com/verdantia/storefront/internal/domain/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupCartTestDB creates an in-memory SQLite database for testing
func setupCartTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&cart.Cart{}, &cart.CartItem{})
	require.NoError(t, err)

	return db
}

func snapshot(name string, price int64) cart.ProductSnapshot {
	return cart.ProductSnapshot{
		ProductID: uuid.New(),
		Name:      name,
		UnitPrice: decimal.NewFromInt(price),
		ImageURL:  "https://cdn.example.com/" + name + ".jpg",
	}
}

func TestGormCartRepository_SaveAndFindByID(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	c, err := cart.NewCart("ct-1234")
	require.NoError(t, err)
	require.NoError(t, c.AddItem(snapshot("tee", 45), 2))
	require.NoError(t, c.AddItem(snapshot("scarf", 38), 1))

	require.NoError(t, repo.Save(ctx, c))

	loaded, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, loaded.ID)
	assert.Equal(t, "ct-1234", loaded.ClientToken)
	assert.Equal(t, 3, loaded.ItemCount)
	require.Len(t, loaded.Items, 2)
	// insertion order survives the round trip
	assert.Equal(t, "tee", loaded.Items[0].Name)
	assert.Equal(t, "scarf", loaded.Items[1].Name)
}

func TestGormCartRepository_FindByID_NotFound(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCartRepository_FindByClientToken(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	c, err := cart.NewCart("ct-active")
	require.NoError(t, err)
	require.NoError(t, c.AddItem(snapshot("tee", 45), 1))
	require.NoError(t, repo.Save(ctx, c))

	loaded, err := repo.FindByClientToken(ctx, "ct-active")
	require.NoError(t, err)
	assert.Equal(t, c.ID, loaded.ID)
	assert.Len(t, loaded.Items, 1)
}

func TestGormCartRepository_FindByClientToken_IgnoresConverted(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	c, err := cart.NewCart("ct-done")
	require.NoError(t, err)
	require.NoError(t, c.AddItem(snapshot("tee", 45), 1))
	require.NoError(t, c.MarkConverted())
	require.NoError(t, repo.Save(ctx, c))

	_, err = repo.FindByClientToken(ctx, "ct-done")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCartRepository_FindByCustomer(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	customerID := uuid.New()

	c, err := cart.NewCart("ct-cust")
	require.NoError(t, err)
	require.NoError(t, c.AssignCustomer(customerID))
	require.NoError(t, repo.Save(ctx, c))

	loaded, err := repo.FindByCustomer(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, loaded.ID)

	_, err = repo.FindByCustomer(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCartRepository_Save_DeletesRemovedLines(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	first := snapshot("tee", 45)
	second := snapshot("scarf", 38)

	c, err := cart.NewCart("ct-trim")
	require.NoError(t, err)
	require.NoError(t, c.AddItem(first, 2))
	require.NoError(t, c.AddItem(second, 1))
	require.NoError(t, repo.Save(ctx, c))

	require.NoError(t, c.RemoveItem(first.ProductID))
	require.NoError(t, repo.Save(ctx, c))

	loaded, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, second.ProductID, loaded.Items[0].ProductID)
	assert.Equal(t, 1, loaded.ItemCount)

	// the removed line is gone from storage, not just from the aggregate
	var orphans int64
	require.NoError(t, db.Model(&cart.CartItem{}).Where("cart_id = ?", c.ID).Count(&orphans).Error)
	assert.Equal(t, int64(1), orphans)
}

func TestGormCartRepository_Save_ClearedCartHasNoLines(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	c, err := cart.NewCart("ct-clear")
	require.NoError(t, err)
	require.NoError(t, c.AddItem(snapshot("tee", 45), 2))
	require.NoError(t, repo.Save(ctx, c))

	require.NoError(t, c.Clear())
	require.NoError(t, repo.Save(ctx, c))

	loaded, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Items)
	assert.Equal(t, 0, loaded.ItemCount)
}

func TestGormCartRepository_Delete(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	c, err := cart.NewCart("ct-del")
	require.NoError(t, err)
	require.NoError(t, c.AddItem(snapshot("tee", 45), 1))
	require.NoError(t, repo.Save(ctx, c))

	require.NoError(t, repo.Delete(ctx, c.ID))

	_, err = repo.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var lines int64
	require.NoError(t, db.Model(&cart.CartItem{}).Where("cart_id = ?", c.ID).Count(&lines).Error)
	assert.Equal(t, int64(0), lines)
}

func TestGormCartRepository_Delete_NotFound(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCartRepository_FindStale(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	stale, err := cart.NewCart("ct-old")
	require.NoError(t, err)
	stale.UpdatedAt = time.Now().Add(-72 * time.Hour)
	require.NoError(t, repo.Save(ctx, stale))
	// Save touches updated_at via gorm, so backdate it directly
	require.NoError(t, db.Model(&cart.Cart{}).Where("id = ?", stale.ID).
		Update("updated_at", time.Now().Add(-72*time.Hour)).Error)

	fresh, err := cart.NewCart("ct-new")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, fresh))

	carts, err := repo.FindStale(ctx, time.Now().Add(-48*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, carts, 1)
	assert.Equal(t, stale.ID, carts[0].ID)
}

func TestGormCartRepository_FindStale_RespectsLimit(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	for _, token := range []string{"ct-a", "ct-b", "ct-c"} {
		c, err := cart.NewCart(token)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, c))
		require.NoError(t, db.Model(&cart.Cart{}).Where("id = ?", c.ID).
			Update("updated_at", time.Now().Add(-72*time.Hour)).Error)
	}

	carts, err := repo.FindStale(ctx, time.Now().Add(-48*time.Hour), 2)
	require.NoError(t, err)
	assert.Len(t, carts, 2)
}
