package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/mapcocoro/soleil-backend/pkg/db/models"
)

// Line is one staged product in a customer's cart. Price, Stock, and
// MaxReserveQty are snapshots from staging time; the reservation engine
// re-reads the authoritative rows and never trusts them.
type Line struct {
	ProductID     uuid.UUID `json:"product_id"`
	Name          string    `json:"name"`
	Price         int       `json:"price"`
	ImageURL      *string   `json:"image_url,omitempty"`
	Quantity      int       `json:"quantity"`
	Stock         int       `json:"stock"`
	MaxReserveQty int       `json:"max_reserve_qty"`
}

// Cart is a session-scoped staging area for one customer.
type Cart struct {
	UserID    uuid.UUID `json:"user_id"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns an empty cart for the user.
func New(userID uuid.UUID) *Cart {
	return &Cart{UserID: userID}
}

// maxQuantity is the per-line ceiling: never more than remaining stock, never
// more than the product's per-reservation cap.
func maxQuantity(stock, maxReserveQty int) int {
	limit := stock
	if maxReserveQty < limit {
		limit = maxReserveQty
	}
	if limit < 0 {
		return 0
	}
	return limit
}

func clamp(qty, stock, maxReserveQty int) int {
	limit := maxQuantity(stock, maxReserveQty)
	if qty > limit {
		return limit
	}
	if qty < 0 {
		return 0
	}
	return qty
}

// Add stages qty units of product, merging with an existing line. The stored
// quantity is clamped to the product's stock and per-reservation cap.
func (c *Cart) Add(product models.Product, qty int) {
	if qty <= 0 {
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == product.ID {
			c.Lines[i].Quantity = clamp(c.Lines[i].Quantity+qty, product.Stock, product.MaxReserveQty)
			c.Lines[i].Price = product.Price
			c.Lines[i].Stock = product.Stock
			c.Lines[i].MaxReserveQty = product.MaxReserveQty
			c.dropEmpty()
			return
		}
	}
	line := Line{
		ProductID:     product.ID,
		Name:          product.Name,
		Price:         product.Price,
		ImageURL:      product.ImageURL,
		Quantity:      clamp(qty, product.Stock, product.MaxReserveQty),
		Stock:         product.Stock,
		MaxReserveQty: product.MaxReserveQty,
	}
	if line.Quantity > 0 {
		c.Lines = append(c.Lines, line)
	}
}

// SetQuantity replaces a line's quantity, clamped to the product's limits.
// Zero removes the line.
func (c *Cart) SetQuantity(productID uuid.UUID, qty int) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = clamp(qty, c.Lines[i].Stock, c.Lines[i].MaxReserveQty)
			c.dropEmpty()
			return
		}
	}
}

// Remove deletes the line for productID if present.
func (c *Cart) Remove(productID uuid.UUID) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// TotalAmount is the sum of the staged price snapshots.
func (c *Cart) TotalAmount() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Price * line.Quantity
	}
	return total
}

// TotalQuantity is the number of staged units across all lines.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// IsEmpty reports whether no lines are staged.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) dropEmpty() {
	kept := c.Lines[:0]
	for _, line := range c.Lines {
		if line.Quantity > 0 {
			kept = append(kept, line)
		}
	}
	c.Lines = kept
}
