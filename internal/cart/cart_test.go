package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mapcocoro/soleil-backend/pkg/db/models"
)

func bakeryProduct(stock, maxReserveQty, price int) models.Product {
	return models.Product{
		ID:            uuid.New(),
		Name:          "クロワッサン",
		Price:         price,
		Stock:         stock,
		MaxReserveQty: maxReserveQty,
		IsActive:      true,
	}
}

func TestCart_AddClampsToStockAndReserveCap(t *testing.T) {
	cases := []struct {
		name  string
		stock int
		cap   int
		qty   int
		want  int
	}{
		{name: "within limits", stock: 10, cap: 3, qty: 2, want: 2},
		{name: "capped by max reserve", stock: 10, cap: 3, qty: 5, want: 3},
		{name: "capped by stock", stock: 2, cap: 3, qty: 5, want: 2},
		{name: "zero stock stages nothing", stock: 0, cap: 3, qty: 1, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			product := bakeryProduct(tc.stock, tc.cap, 280)
			c := New(uuid.New())
			c.Add(product, tc.qty)

			got := 0
			if len(c.Lines) == 1 {
				got = c.Lines[0].Quantity
			}
			if got != tc.want {
				t.Fatalf("expected quantity %d, got %d", tc.want, got)
			}
		})
	}
}

func TestCart_AddMergesExistingLine(t *testing.T) {
	product := bakeryProduct(10, 3, 280)
	c := New(uuid.New())

	c.Add(product, 2)
	c.Add(product, 2)

	if len(c.Lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(c.Lines))
	}
	if c.Lines[0].Quantity != 3 {
		t.Fatalf("expected merged quantity clamped to 3, got %d", c.Lines[0].Quantity)
	}
}

func TestCart_SetQuantityZeroRemovesLine(t *testing.T) {
	product := bakeryProduct(10, 3, 280)
	c := New(uuid.New())
	c.Add(product, 2)

	c.SetQuantity(product.ID, 0)
	if !c.IsEmpty() {
		t.Fatalf("expected empty cart after zeroing the only line")
	}
}

func TestCart_SetQuantityClampsUpward(t *testing.T) {
	product := bakeryProduct(5, 3, 280)
	c := New(uuid.New())
	c.Add(product, 1)

	c.SetQuantity(product.ID, 99)
	if c.Lines[0].Quantity != 3 {
		t.Fatalf("expected quantity clamped to 3, got %d", c.Lines[0].Quantity)
	}
}

func TestCart_TotalAmount(t *testing.T) {
	c := New(uuid.New())
	croissant := bakeryProduct(10, 5, 280)
	baguette := bakeryProduct(10, 5, 320)

	c.Add(croissant, 2)
	c.Add(baguette, 3)

	if got := c.TotalAmount(); got != 2*280+3*320 {
		t.Fatalf("unexpected total %d", got)
	}
	if got := c.TotalQuantity(); got != 5 {
		t.Fatalf("unexpected quantity %d", got)
	}
}

func TestCart_RemoveUnknownProductIsNoop(t *testing.T) {
	product := bakeryProduct(10, 3, 280)
	c := New(uuid.New())
	c.Add(product, 1)

	c.Remove(uuid.New())
	if len(c.Lines) != 1 {
		t.Fatalf("expected untouched cart, got %d lines", len(c.Lines))
	}
}
