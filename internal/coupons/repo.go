package coupons

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mapcocoro/soleil-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository manages persistence for coupons and the per-user instances.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListActive(ctx context.Context, now time.Time) ([]models.Coupon, error)
	ListUserCoupons(ctx context.Context, userID uuid.UUID, now time.Time) ([]models.UserCoupon, error)
	GetUserCoupon(ctx context.Context, id uuid.UUID) (*models.UserCoupon, error)
	Redeem(ctx context.Context, userCouponID uuid.UUID, usedAt time.Time) (bool, error)
	FindActiveByCondition(ctx context.Context, condition string) (*models.Coupon, error)
	Grant(ctx context.Context, userCoupon *models.UserCoupon) error
	CreateCoupon(ctx context.Context, coupon *models.Coupon) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a coupon repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListActive(ctx context.Context, now time.Time) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND valid_from <= ? AND valid_until >= ?", true, now, now).
		Order("valid_until ASC").
		Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *repository) ListUserCoupons(ctx context.Context, userID uuid.UUID, now time.Time) ([]models.UserCoupon, error) {
	var userCoupons []models.UserCoupon
	if err := r.db.WithContext(ctx).
		Preload("Coupon").
		Joins("JOIN coupons ON coupons.id = user_coupons.coupon_id").
		Where("user_coupons.user_id = ? AND user_coupons.is_used = ?", userID, false).
		Where("coupons.is_active = ? AND coupons.valid_from <= ? AND coupons.valid_until >= ?", true, now, now).
		Order("coupons.valid_until ASC").
		Find(&userCoupons).Error; err != nil {
		return nil, err
	}
	return userCoupons, nil
}

func (r *repository) GetUserCoupon(ctx context.Context, id uuid.UUID) (*models.UserCoupon, error) {
	var userCoupon models.UserCoupon
	if err := r.db.WithContext(ctx).
		Preload("Coupon").
		Where("id = ?", id).
		First(&userCoupon).Error; err != nil {
		return nil, err
	}
	return &userCoupon, nil
}

// Redeem marks the instance used exactly once. The guard on is_used makes a
// second redeem report false instead of double spending.
func (r *repository) Redeem(ctx context.Context, userCouponID uuid.UUID, usedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.UserCoupon{}).
		Where("id = ? AND is_used = ?", userCouponID, false).
		Updates(map[string]any{
			"is_used": true,
			"used_at": usedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) FindActiveByCondition(ctx context.Context, condition string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.WithContext(ctx).
		Where("conditions = ? AND is_active = ?", condition, true).
		First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *repository) Grant(ctx context.Context, userCoupon *models.UserCoupon) error {
	return r.db.WithContext(ctx).Create(userCoupon).Error
}

func (r *repository) CreateCoupon(ctx context.Context, coupon *models.Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}
