package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mapcocoro/soleil-backend/internal/catalog"
	"github.com/mapcocoro/soleil-backend/pkg/errors"
)

// Service manages the per-customer staging cart.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*Cart, error)
	Add(ctx context.Context, userID, productID uuid.UUID, qty int) (*Cart, error)
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) (*Cart, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) (*Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	store   Store
	catalog catalog.Service
}

// NewService wires a cart service with the provided store and catalog.
func NewService(store Store, catalogSvc catalog.Service) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	return &service{store: store, catalog: catalogSvc}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, errors.New(errors.CodeValidation, "user id is required")
	}
	cart, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "loading cart")
	}
	return cart, nil
}

func (s *service) Add(ctx context.Context, userID, productID uuid.UUID, qty int) (*Cart, error) {
	if qty <= 0 {
		return nil, errors.New(errors.CodeValidation, "quantity must be positive")
	}
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, errors.New(errors.CodeConflict, "product is no longer available")
	}

	cart.Add(*product, qty)
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "saving cart")
	}
	return cart, nil
}

func (s *service) SetQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) (*Cart, error) {
	if qty < 0 {
		return nil, errors.New(errors.CodeValidation, "quantity must not be negative")
	}
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.SetQuantity(productID, qty)
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "saving cart")
	}
	return cart, nil
}

func (s *service) Remove(ctx context.Context, userID, productID uuid.UUID) (*Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Remove(productID)
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "saving cart")
	}
	return cart, nil
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return errors.New(errors.CodeValidation, "user id is required")
	}
	if err := s.store.Clear(ctx, userID); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "clearing cart")
	}
	return nil
}
