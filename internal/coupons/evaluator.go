package coupons

import (
	"time"

	"github.com/mapcocoro/soleil-backend/pkg/db/models"
	"github.com/mapcocoro/soleil-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Eligible reports whether the coupon itself can currently be redeemed. The
// validity window is inclusive at both ends.
func Eligible(coupon models.Coupon, now time.Time) bool {
	if !coupon.IsActive {
		return false
	}
	if now.Before(coupon.ValidFrom) {
		return false
	}
	if now.After(coupon.ValidUntil) {
		return false
	}
	return true
}

// Redeemable reports whether the user's coupon instance can be spent now.
func Redeemable(userCoupon models.UserCoupon, now time.Time) bool {
	if userCoupon.IsUsed {
		return false
	}
	if userCoupon.Coupon == nil {
		return false
	}
	return Eligible(*userCoupon.Coupon, now)
}

// MeetsMinPurchase reports whether subtotal satisfies the coupon's minimum
// purchase requirement, if any.
func MeetsMinPurchase(coupon models.Coupon, subtotal int) bool {
	if coupon.MinPurchase == nil {
		return true
	}
	return subtotal >= *coupon.MinPurchase
}

// Discount computes the yen discount the coupon grants against subtotal.
// Percentage discounts round down to a whole yen; fixed discounts never
// exceed the subtotal.
func Discount(coupon models.Coupon, subtotal int) int {
	if subtotal <= 0 || coupon.DiscountValue <= 0 {
		return 0
	}
	switch coupon.DiscountType {
	case enums.DiscountTypePercentage:
		rate := decimal.NewFromInt(int64(coupon.DiscountValue)).Div(decimal.NewFromInt(100))
		discount := decimal.NewFromInt(int64(subtotal)).Mul(rate).Floor()
		if discount.IsNegative() {
			return 0
		}
		value := int(discount.IntPart())
		if value > subtotal {
			return subtotal
		}
		return value
	case enums.DiscountTypeFixed:
		if coupon.DiscountValue > subtotal {
			return subtotal
		}
		return coupon.DiscountValue
	default:
		return 0
	}
}
