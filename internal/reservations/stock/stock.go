// Package stock holds the conditional inventory mutations the reservation
// engine runs. Every decrement is guarded in SQL so two concurrent
// reservations can never oversell a product.
package stock

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DecrementRequest asks for qty units of one product.
type DecrementRequest struct {
	ProductID uuid.UUID
	Quantity  int
}

// ErrInsufficient reports the first product whose guarded decrement matched
// zero rows. The caller rolls the whole transaction back.
type ErrInsufficient struct {
	ProductID uuid.UUID
}

func (e *ErrInsufficient) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductID)
}

// Decrement reserves stock for every request or none. Each line runs
// `stock = stock - qty` guarded on `is_active AND stock >= qty`; a zero-row
// update means the product is inactive, missing, or short, and the error
// names it so the transaction can abort.
func Decrement(ctx context.Context, tx *gorm.DB, requests []DecrementRequest) error {
	for _, req := range requests {
		if req.Quantity <= 0 {
			return fmt.Errorf("quantity must be positive for product %s", req.ProductID)
		}
		result := tx.WithContext(ctx).Exec(
			`UPDATE products SET stock = stock - ? WHERE id = ? AND is_active AND stock >= ?`,
			req.Quantity, req.ProductID, req.Quantity,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &ErrInsufficient{ProductID: req.ProductID}
		}
	}
	return nil
}

// Restore returns previously reserved units, used when a reservation is
// cancelled. Restores are unconditional; a cancelled line always comes back.
func Restore(ctx context.Context, tx *gorm.DB, requests []DecrementRequest) error {
	for _, req := range requests {
		if req.Quantity <= 0 {
			return fmt.Errorf("quantity must be positive for product %s", req.ProductID)
		}
		result := tx.WithContext(ctx).Exec(
			`UPDATE products SET stock = stock + ? WHERE id = ?`,
			req.Quantity, req.ProductID,
		)
		if result.Error != nil {
			return result.Error
		}
	}
	return nil
}
