package coupons

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mapcocoro/soleil-backend/pkg/db/models"
	"github.com/mapcocoro/soleil-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCouponsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	coupons := `
CREATE TABLE IF NOT EXISTS coupons (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  description TEXT,
  discount_type TEXT NOT NULL,
  discount_value INTEGER NOT NULL,
  min_purchase INTEGER,
  valid_from DATETIME NOT NULL,
  valid_until DATETIME NOT NULL,
  conditions TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME
);`
	userCoupons := `
CREATE TABLE IF NOT EXISTS user_coupons (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  coupon_id TEXT NOT NULL,
  is_used INTEGER NOT NULL DEFAULT 0,
  used_at DATETIME,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(coupons).Error)
	require.NoError(t, db.Exec(userCoupons).Error)
	return db
}

func seedCoupon(t *testing.T, db *gorm.DB, code string, from, until time.Time, active bool) models.Coupon {
	t.Helper()
	coupon := models.Coupon{
		ID:            uuid.New(),
		Code:          code,
		Name:          code,
		DiscountType:  enums.DiscountTypeFixed,
		DiscountValue: 100,
		ValidFrom:     from,
		ValidUntil:    until,
		IsActive:      active,
	}
	require.NoError(t, db.Create(&coupon).Error)
	return coupon
}

func TestRepository_ListActiveExcludesExpiredAndInactive(t *testing.T) {
	db := setupCouponsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)

	seedCoupon(t, db, "CURRENT", now.AddDate(0, 0, -5), now.AddDate(0, 0, 5), true)
	seedCoupon(t, db, "EXPIRED", now.AddDate(0, -1, 0), now.AddDate(0, 0, -1), true)
	seedCoupon(t, db, "FUTURE", now.AddDate(0, 0, 1), now.AddDate(0, 1, 0), true)
	seedCoupon(t, db, "DISABLED", now.AddDate(0, 0, -5), now.AddDate(0, 0, 5), false)

	coupons, err := repo.ListActive(ctx, now)
	require.NoError(t, err)
	require.Len(t, coupons, 1)
	assert.Equal(t, "CURRENT", coupons[0].Code)
}

func TestRepository_ListActiveOrdersBySoonestExpiry(t *testing.T) {
	db := setupCouponsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)

	seedCoupon(t, db, "LATER", now.AddDate(0, 0, -1), now.AddDate(0, 1, 0), true)
	seedCoupon(t, db, "SOON", now.AddDate(0, 0, -1), now.AddDate(0, 0, 2), true)

	coupons, err := repo.ListActive(ctx, now)
	require.NoError(t, err)
	require.Len(t, coupons, 2)
	assert.Equal(t, "SOON", coupons[0].Code)
	assert.Equal(t, "LATER", coupons[1].Code)
}

func TestRepository_ListUserCouponsSkipsUsed(t *testing.T) {
	db := setupCouponsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	coupon := seedCoupon(t, db, "WELCOME", now.AddDate(0, 0, -5), now.AddDate(0, 0, 5), true)
	fresh := models.UserCoupon{ID: uuid.New(), UserID: userID, CouponID: coupon.ID}
	used := models.UserCoupon{ID: uuid.New(), UserID: userID, CouponID: coupon.ID, IsUsed: true}
	require.NoError(t, db.Create(&fresh).Error)
	require.NoError(t, db.Create(&used).Error)

	userCoupons, err := repo.ListUserCoupons(ctx, userID, now)
	require.NoError(t, err)
	require.Len(t, userCoupons, 1)
	assert.Equal(t, fresh.ID, userCoupons[0].ID)
	require.NotNil(t, userCoupons[0].Coupon)
	assert.Equal(t, "WELCOME", userCoupons[0].Coupon.Code)
}

func TestRepository_FindActiveByConditionSkipsInactive(t *testing.T) {
	db := setupCouponsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)

	condition := "first_visit"
	retired := seedCoupon(t, db, "OLD-WELCOME", now.AddDate(0, -2, 0), now.AddDate(0, 2, 0), false)
	retired.Conditions = &condition
	require.NoError(t, db.Save(&retired).Error)
	current := seedCoupon(t, db, "WELCOME500", now.AddDate(0, 0, -1), now.AddDate(0, 2, 0), true)
	current.Conditions = &condition
	require.NoError(t, db.Save(&current).Error)

	coupon, err := repo.FindActiveByCondition(ctx, condition)
	require.NoError(t, err)
	assert.Equal(t, "WELCOME500", coupon.Code)

	_, err = repo.FindActiveByCondition(ctx, "rain")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_RedeemIsIdempotentGuarded(t *testing.T) {
	db := setupCouponsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)

	coupon := seedCoupon(t, db, "ONCE", now.AddDate(0, 0, -5), now.AddDate(0, 0, 5), true)
	instance := models.UserCoupon{ID: uuid.New(), UserID: uuid.New(), CouponID: coupon.ID}
	require.NoError(t, db.Create(&instance).Error)

	first, err := repo.Redeem(ctx, instance.ID, now)
	require.NoError(t, err)
	assert.True(t, first, "first redeem should win")

	second, err := repo.Redeem(ctx, instance.ID, now)
	require.NoError(t, err)
	assert.False(t, second, "second redeem must not double spend")

	var stored models.UserCoupon
	require.NoError(t, db.Where("id = ?", instance.ID).First(&stored).Error)
	assert.True(t, stored.IsUsed)
	require.NotNil(t, stored.UsedAt)
}
