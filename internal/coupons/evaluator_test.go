package coupons

import (
	"testing"
	"time"

	"github.com/mapcocoro/soleil-backend/pkg/db/models"
	"github.com/mapcocoro/soleil-backend/pkg/enums"
)

func intPtr(v int) *int { return &v }

func windowCoupon(from, until time.Time) models.Coupon {
	return models.Coupon{
		Code:          "SUMMER10",
		Name:          "夏の10%OFF",
		DiscountType:  enums.DiscountTypePercentage,
		DiscountValue: 10,
		ValidFrom:     from,
		ValidUntil:    until,
		IsActive:      true,
	}
}

func TestEligibleWindowIsInclusive(t *testing.T) {
	from := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 9, 30, 23, 59, 59, 0, time.UTC)
	coupon := windowCoupon(from, until)

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "before window", now: from.Add(-time.Second), want: false},
		{name: "at valid_from", now: from, want: true},
		{name: "mid window", now: from.AddDate(0, 0, 14), want: true},
		{name: "at valid_until", now: until, want: true},
		{name: "after window", now: until.Add(time.Second), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Eligible(coupon, tc.now); got != tc.want {
				t.Fatalf("Eligible(%s) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}

func TestEligibleInactiveCoupon(t *testing.T) {
	from := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	coupon := windowCoupon(from, from.AddDate(0, 1, 0))
	coupon.IsActive = false

	if Eligible(coupon, from.AddDate(0, 0, 5)) {
		t.Fatalf("inactive coupon must not be eligible")
	}
}

func TestRedeemableUsedInstance(t *testing.T) {
	from := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	coupon := windowCoupon(from, from.AddDate(0, 1, 0))
	now := from.AddDate(0, 0, 5)

	fresh := models.UserCoupon{Coupon: &coupon}
	if !Redeemable(fresh, now) {
		t.Fatalf("unused instance in window should be redeemable")
	}

	used := models.UserCoupon{Coupon: &coupon, IsUsed: true}
	if Redeemable(used, now) {
		t.Fatalf("used instance must never be redeemable")
	}
}

func TestDiscountPercentageFloorsToYen(t *testing.T) {
	coupon := models.Coupon{
		DiscountType:  enums.DiscountTypePercentage,
		DiscountValue: 10,
	}

	cases := []struct {
		subtotal int
		want     int
	}{
		{subtotal: 1000, want: 100},
		{subtotal: 1255, want: 125}, // 125.5 floors
		{subtotal: 99, want: 9},     // 9.9 floors
		{subtotal: 5, want: 0},      // 0.5 floors
		{subtotal: 0, want: 0},
	}
	for _, tc := range cases {
		if got := Discount(coupon, tc.subtotal); got != tc.want {
			t.Fatalf("Discount(10%%, %d) = %d, want %d", tc.subtotal, got, tc.want)
		}
	}
}

func TestDiscountFixedCappedAtSubtotal(t *testing.T) {
	coupon := models.Coupon{
		DiscountType:  enums.DiscountTypeFixed,
		DiscountValue: 300,
	}
	if got := Discount(coupon, 1000); got != 300 {
		t.Fatalf("expected 300, got %d", got)
	}
	if got := Discount(coupon, 200); got != 200 {
		t.Fatalf("fixed discount must be capped at subtotal, got %d", got)
	}
}

func TestMeetsMinPurchase(t *testing.T) {
	coupon := models.Coupon{MinPurchase: intPtr(1000)}
	if MeetsMinPurchase(coupon, 999) {
		t.Fatalf("subtotal below minimum must not qualify")
	}
	if !MeetsMinPurchase(coupon, 1000) {
		t.Fatalf("subtotal at minimum qualifies")
	}
	unconditional := models.Coupon{}
	if !MeetsMinPurchase(unconditional, 1) {
		t.Fatalf("coupon without minimum always qualifies")
	}
}
