package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verdantia/storefront/internal/domain/coupon"
	"github.com/verdantia/storefront/internal/domain/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupCouponTestDB creates an in-memory SQLite database for testing
func setupCouponTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&coupon.Coupon{})
	require.NoError(t, err)

	return db
}

func TestGormCouponRepository_SaveAndFindByID(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewGormCouponRepository(db)
	ctx := context.Background()

	cp, err := coupon.NewCoupon("WELCOME10", coupon.DiscountTypePercent, decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, cp))

	loaded, err := repo.FindByID(ctx, cp.ID)
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", loaded.Code)
	assert.Equal(t, coupon.DiscountTypePercent, loaded.Type)
}

func TestGormCouponRepository_FindByID_NotFound(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewGormCouponRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCouponRepository_FindByCode(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewGormCouponRepository(db)
	ctx := context.Background()

	cp, err := coupon.NewCoupon("SAVE15", coupon.DiscountTypeFixed, decimal.NewFromInt(15))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, cp))

	// lookup is case-insensitive
	loaded, err := repo.FindByCode(ctx, "  save15 ")
	require.NoError(t, err)
	assert.Equal(t, cp.ID, loaded.ID)

	_, err = repo.FindByCode(ctx, "MISSING")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCouponRepository_ExistsByCode(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewGormCouponRepository(db)
	ctx := context.Background()

	cp, err := coupon.NewCoupon("SPRING", coupon.DiscountTypePercent, decimal.NewFromInt(20))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, cp))

	exists, err := repo.ExistsByCode(ctx, "spring")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCode(ctx, "WINTER")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormCouponRepository_Save_PersistsRedemption(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewGormCouponRepository(db)
	ctx := context.Background()

	cp, err := coupon.NewCoupon("ONCE", coupon.DiscountTypeFixed, decimal.NewFromInt(5))
	require.NoError(t, err)
	require.NoError(t, cp.SetUsageLimit(1))
	require.NoError(t, repo.Save(ctx, cp))

	require.NoError(t, cp.Redeem())
	require.NoError(t, repo.Save(ctx, cp))

	loaded, err := repo.FindByID(ctx, cp.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.UsedCount)
}

func TestGormCouponRepository_FindAll_Pagination(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewGormCouponRepository(db)
	ctx := context.Background()

	for _, code := range []string{"A1", "B2", "C3"} {
		cp, err := coupon.NewCoupon(code, coupon.DiscountTypePercent, decimal.NewFromInt(5))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, cp))
	}

	coupons, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 2, OrderBy: "code", OrderDir: "asc"})
	require.NoError(t, err)
	require.Len(t, coupons, 2)
	assert.Equal(t, "A1", coupons[0].Code)
	assert.Equal(t, "B2", coupons[1].Code)

	count, err := repo.Count(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestGormCouponRepository_Delete(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewGormCouponRepository(db)
	ctx := context.Background()

	cp, err := coupon.NewCoupon("GONE", coupon.DiscountTypeFixed, decimal.NewFromInt(5))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, cp))

	require.NoError(t, repo.Delete(ctx, cp.ID))

	_, err = repo.FindByID(ctx, cp.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Delete(ctx, cp.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
