package coupons

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mapcocoro/soleil-backend/pkg/db/models"
	"github.com/mapcocoro/soleil-backend/pkg/errors"
	"gorm.io/gorm"
)

// welcomeCondition tags the coupon handed to first-time customers.
const welcomeCondition = "first_visit"

// Service exposes coupon listing and redemption.
type Service interface {
	ListActive(ctx context.Context, now time.Time) ([]models.Coupon, error)
	ListForUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]models.UserCoupon, error)
	GrantWelcome(ctx context.Context, userID uuid.UUID) error
	Applier
}

// Applier redeems a user's coupon against a subtotal. Implementations mark
// the instance used in the caller's transaction so a rolled-back reservation
// never burns the coupon.
type Applier interface {
	Apply(ctx context.Context, tx *gorm.DB, input ApplyInput) (*Application, error)
}

// ApplyInput identifies the coupon instance being spent and the order it
// discounts.
type ApplyInput struct {
	UserCouponID uuid.UUID
	UserID       uuid.UUID
	Subtotal     int
	Now          time.Time
}

// Application reports the redeemed instance and the computed discount.
type Application struct {
	UserCoupon *models.UserCoupon
	Discount   int
}

type service struct {
	repo Repository
}

// NewService wires a coupon service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coupon repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListActive(ctx context.Context, now time.Time) ([]models.Coupon, error) {
	coupons, err := s.repo.ListActive(ctx, now)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing coupons")
	}
	return coupons, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]models.UserCoupon, error) {
	if userID == uuid.Nil {
		return nil, errors.New(errors.CodeValidation, "user id is required")
	}
	userCoupons, err := s.repo.ListUserCoupons(ctx, userID, now)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing user coupons")
	}
	return userCoupons, nil
}

// GrantWelcome hands the first-visit coupon to a newly created customer.
// A shop without an active first-visit coupon grants nothing.
func (s *service) GrantWelcome(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return errors.New(errors.CodeValidation, "user id is required")
	}
	coupon, err := s.repo.FindActiveByCondition(ctx, welcomeCondition)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return errors.Wrap(errors.CodeInternal, err, "loading welcome coupon")
	}
	instance := &models.UserCoupon{
		ID:       uuid.New(),
		UserID:   userID,
		CouponID: coupon.ID,
	}
	if err := s.repo.Grant(ctx, instance); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "granting welcome coupon")
	}
	return nil
}

// Apply validates ownership, the validity window, and the minimum purchase,
// computes the discount, and marks the instance used via the guarded update.
func (s *service) Apply(ctx context.Context, tx *gorm.DB, input ApplyInput) (*Application, error) {
	if input.UserCouponID == uuid.Nil {
		return nil, errors.New(errors.CodeValidation, "user coupon id is required")
	}
	if input.UserID == uuid.Nil {
		return nil, errors.New(errors.CodeValidation, "user id is required")
	}

	repo := s.repo.WithTx(tx)
	userCoupon, err := repo.GetUserCoupon(ctx, input.UserCouponID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "coupon not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading coupon")
	}
	if userCoupon.UserID != input.UserID {
		return nil, errors.New(errors.CodeForbidden, "coupon belongs to another user")
	}
	if userCoupon.Coupon == nil {
		return nil, errors.New(errors.CodeInternal, "user coupon missing coupon")
	}
	if !Redeemable(*userCoupon, input.Now) {
		return nil, errors.New(errors.CodeConflict, "coupon is not redeemable")
	}
	if !MeetsMinPurchase(*userCoupon.Coupon, input.Subtotal) {
		return nil, errors.New(errors.CodeValidation, "subtotal below coupon minimum purchase").
			WithDetails(map[string]any{
				"min_purchase": *userCoupon.Coupon.MinPurchase,
				"subtotal":     input.Subtotal,
			})
	}

	redeemed, err := repo.Redeem(ctx, userCoupon.ID, input.Now)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "redeeming coupon")
	}
	if !redeemed {
		return nil, errors.New(errors.CodeConflict, "coupon already used")
	}

	usedAt := input.Now
	userCoupon.IsUsed = true
	userCoupon.UsedAt = &usedAt

	return &Application{
		UserCoupon: userCoupon,
		Discount:   Discount(*userCoupon.Coupon, input.Subtotal),
	}, nil
}
