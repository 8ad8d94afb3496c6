package reservations

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mapcocoro/soleil-backend/internal/calendar"
	"github.com/mapcocoro/soleil-backend/internal/catalog"
	"github.com/mapcocoro/soleil-backend/internal/coupons"
	"github.com/mapcocoro/soleil-backend/internal/points"
	"github.com/mapcocoro/soleil-backend/internal/reservations/stock"
	"github.com/mapcocoro/soleil-backend/pkg/config"
	"github.com/mapcocoro/soleil-backend/pkg/db/models"
	"github.com/mapcocoro/soleil-backend/pkg/enums"
	"github.com/mapcocoro/soleil-backend/pkg/errors"
	"github.com/mapcocoro/soleil-backend/pkg/logger"
	"github.com/mapcocoro/soleil-backend/pkg/metrics"
	"github.com/mapcocoro/soleil-backend/pkg/pagination"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type dayResolver interface {
	ResolveDay(ctx context.Context, date time.Time) (calendar.DayStatus, error)
}

// Service is the reservation engine: atomic creation plus the operator
// lifecycle transitions.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Reservation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (*HistoryPage, error)
	ListAll(ctx context.Context) (*AdminListing, error)
	Confirm(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	Cancel(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	Complete(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
}

// CreateInput is a reservation request. Item prices are never taken from the
// caller; totals are recomputed from the product rows inside the transaction.
type CreateInput struct {
	UserID         uuid.UUID      `json:"user_id"`
	PickupDate     time.Time      `json:"pickup_date"`
	PickupTimeSlot enums.TimeSlot `json:"pickup_time_slot"`
	Items          []ItemInput    `json:"items"`
	Note           *string        `json:"note"`
	UserCouponID   *uuid.UUID     `json:"user_coupon_id"`
}

// ItemInput is one requested product line.
type ItemInput struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// AdminListing is the operator dashboard view.
type AdminListing struct {
	Reservations []models.Reservation `json:"reservations"`
	PendingCount int64                `json:"pending_count"`
}

// HistoryPage is one page of a customer's reservation history, newest first.
type HistoryPage struct {
	Reservations []models.Reservation `json:"reservations"`
	NextCursor   string               `json:"next_cursor,omitempty"`
}

type service struct {
	tx          txRunner
	repo        Repository
	catalogRepo catalog.Repository
	pointsRepo  points.Repository
	calendar    dayResolver
	coupons     coupons.Applier
	shop        config.ShopConfig
	metrics     *metrics.ReservationMetrics
	logger      *logger.Logger
	now         func() time.Time
}

// NewService builds the reservation engine.
func NewService(
	tx txRunner,
	repo Repository,
	catalogRepo catalog.Repository,
	pointsRepo points.Repository,
	calendarSvc dayResolver,
	couponApplier coupons.Applier,
	shop config.ShopConfig,
	reservationMetrics *metrics.ReservationMetrics,
	logg *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("reservation repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if pointsRepo == nil {
		return nil, fmt.Errorf("point repository required")
	}
	if calendarSvc == nil {
		return nil, fmt.Errorf("calendar service required")
	}
	if couponApplier == nil {
		return nil, fmt.Errorf("coupon applier required")
	}
	return &service{
		tx:          tx,
		repo:        repo,
		catalogRepo: catalogRepo,
		pointsRepo:  pointsRepo,
		calendar:    calendarSvc,
		coupons:     couponApplier,
		shop:        shop,
		metrics:     reservationMetrics,
		logger:      logg,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Reservation, error) {
	started := time.Now()
	reservation, err := s.create(ctx, input)
	s.observe("create", started, err)
	return reservation, err
}

func (s *service) create(ctx context.Context, input CreateInput) (*models.Reservation, error) {
	if input.UserID == uuid.Nil {
		return nil, errors.New(errors.CodeValidation, "user id is required")
	}
	if len(input.Items) == 0 {
		return nil, errors.New(errors.CodeValidation, "reservation requires at least one item")
	}
	seen := map[uuid.UUID]bool{}
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil {
			return nil, errors.New(errors.CodeValidation, "product id is required")
		}
		if item.Quantity < 1 {
			return nil, errors.New(errors.CodeValidation, "quantity must be at least 1").
				WithDetails(map[string]any{"product_id": item.ProductID})
		}
		if seen[item.ProductID] {
			return nil, errors.New(errors.CodeValidation, "duplicate product line").
				WithDetails(map[string]any{"product_id": item.ProductID})
		}
		seen[item.ProductID] = true
	}
	if input.PickupDate.IsZero() {
		return nil, errors.New(errors.CodeValidation, "pickup date is required")
	}

	day, err := s.calendar.ResolveDay(ctx, input.PickupDate)
	if err != nil {
		return nil, err
	}
	if !day.IsOpen {
		return nil, errors.New(errors.CodeShopClosed, "shop is closed on the requested date").
			WithDetails(map[string]any{"date": day.Date.Format("2006-01-02"), "note": day.Note})
	}

	if !input.PickupTimeSlot.IsValid() {
		return nil, errors.New(errors.CodeValidation, fmt.Sprintf("invalid pickup time slot %q", input.PickupTimeSlot))
	}

	var reservation *models.Reservation
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		byID, err := s.loadProducts(ctx, tx, input.Items)
		if err != nil {
			return err
		}

		requests := make([]stock.DecrementRequest, 0, len(input.Items))
		for _, item := range input.Items {
			requests = append(requests, stock.DecrementRequest{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
		if err := stock.Decrement(ctx, tx, requests); err != nil {
			var insufficient *stock.ErrInsufficient
			if stderrors.As(err, &insufficient) {
				name := ""
				if product, ok := byID[insufficient.ProductID]; ok {
					name = product.Name
				}
				return errors.New(errors.CodeOutOfStock, "insufficient stock").
					WithDetails(map[string]any{
						"product_id":   insufficient.ProductID,
						"product_name": name,
					})
			}
			return errors.Wrap(errors.CodeInternal, err, "reserving stock")
		}

		subtotal := 0
		items := make([]models.ReservationItem, 0, len(input.Items))
		for _, item := range input.Items {
			product := byID[item.ProductID]
			subtotal += product.Price * item.Quantity
			items = append(items, models.ReservationItem{
				ID:        uuid.New(),
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     product.Price,
			})
		}

		total := subtotal
		if input.UserCouponID != nil {
			application, err := s.coupons.Apply(ctx, tx, coupons.ApplyInput{
				UserCouponID: *input.UserCouponID,
				UserID:       input.UserID,
				Subtotal:     subtotal,
				Now:          s.now(),
			})
			if err != nil {
				return err
			}
			total = subtotal - application.Discount
			if total < 0 {
				total = 0
			}
		}

		reservation = &models.Reservation{
			ID:             uuid.New(),
			UserID:         input.UserID,
			PickupDate:     input.PickupDate,
			PickupTimeSlot: input.PickupTimeSlot,
			Status:         enums.ReservationStatusPending,
			TotalAmount:    total,
			Note:           input.Note,
			Items:          items,
		}
		if err := s.repo.WithTx(tx).Create(ctx, reservation); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "creating reservation")
		}

		earned := points.EarnedFromReservation(input.UserID, reservation.ID, total, s.shop.PointYenPerUnit)
		if earned.Points > 0 {
			if err := s.pointsRepo.WithTx(tx).Credit(ctx, earned); err != nil {
				return errors.Wrap(errors.CodeInternal, err, "crediting points")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		logCtx := s.logger.WithFields(ctx, map[string]any{
			"reservation_id": reservation.ID.String(),
			"user_id":        input.UserID.String(),
			"total_amount":   reservation.TotalAmount,
		})
		s.logger.Info(logCtx, "reservation created")
	}
	return reservation, nil
}

// loadProducts reads the authoritative product rows for every requested line.
// A missing or inactive product is a not-found, named for the caller.
func (s *service) loadProducts(ctx context.Context, tx *gorm.DB, items []ItemInput) (map[uuid.UUID]models.Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.catalogRepo.WithTx(tx).GetActiveProducts(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading products")
	}
	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}
	for _, item := range items {
		if _, ok := byID[item.ProductID]; !ok {
			return nil, errors.New(errors.CodeNotFound, "product not found").
				WithDetails(map[string]any{"product_id": item.ProductID})
		}
	}
	return byID, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	if id == uuid.Nil {
		return nil, errors.New(errors.CodeValidation, "reservation id is required")
	}
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "reservation not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading reservation")
	}
	return reservation, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (*HistoryPage, error) {
	if userID == uuid.Nil {
		return nil, errors.New(errors.CodeValidation, "user id is required")
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, errors.Wrap(errors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	reservations, err := s.repo.ListByUser(ctx, userID, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing reservations")
	}

	page := &HistoryPage{Reservations: reservations}
	if len(reservations) > limit {
		page.Reservations = reservations[:limit]
		last := page.Reservations[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return page, nil
}

func (s *service) ListAll(ctx context.Context) (*AdminListing, error) {
	reservations, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing reservations")
	}
	pending, err := s.repo.CountByStatus(ctx, enums.ReservationStatusPending)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "counting pending reservations")
	}
	return &AdminListing{Reservations: reservations, PendingCount: pending}, nil
}

func (s *service) Confirm(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	started := time.Now()
	reservation, err := s.transition(ctx, id, enums.ReservationStatusConfirmed, false)
	s.observe("confirm", started, err)
	return reservation, err
}

// Cancel releases the reservation's stock. Already-credited points are kept;
// the shop treats them as goodwill rather than clawing them back.
func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	started := time.Now()
	reservation, err := s.transition(ctx, id, enums.ReservationStatusCancelled, true)
	s.observe("cancel", started, err)
	return reservation, err
}

func (s *service) Complete(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	started := time.Now()
	reservation, err := s.transition(ctx, id, enums.ReservationStatusCompleted, false)
	s.observe("complete", started, err)
	return reservation, err
}

func (s *service) transition(ctx context.Context, id uuid.UUID, target enums.ReservationStatus, restoreStock bool) (*models.Reservation, error) {
	if id == uuid.Nil {
		return nil, errors.New(errors.CodeValidation, "reservation id is required")
	}

	var reservation *models.Reservation
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New(errors.CodeNotFound, "reservation not found")
			}
			return errors.Wrap(errors.CodeInternal, err, "loading reservation")
		}
		if !current.Status.CanTransitionTo(target) {
			return errors.New(errors.CodeStateConflict, fmt.Sprintf("cannot %s a %s reservation", verbFor(target), current.Status)).
				WithDetails(map[string]any{
					"status": current.Status,
					"target": target,
				})
		}

		// A writer that lost the race gets zero rows here and rolls back
		// before touching stock.
		changed, err := repo.UpdateStatusFrom(ctx, id, current.Status, target)
		if err != nil {
			return errors.Wrap(errors.CodeInternal, err, "updating reservation status")
		}
		if !changed {
			return errors.New(errors.CodeStateConflict, fmt.Sprintf("cannot %s a %s reservation", verbFor(target), current.Status)).
				WithDetails(map[string]any{
					"status": current.Status,
					"target": target,
				})
		}

		if restoreStock {
			requests := make([]stock.DecrementRequest, 0, len(current.Items))
			for _, item := range current.Items {
				requests = append(requests, stock.DecrementRequest{
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
				})
			}
			if err := stock.Restore(ctx, tx, requests); err != nil {
				return errors.Wrap(errors.CodeInternal, err, "restoring stock")
			}
		}
		current.Status = target
		reservation = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		logCtx := s.logger.WithReservationID(ctx, reservation.ID.String())
		s.logger.Info(logCtx, fmt.Sprintf("reservation %s", target))
	}
	return reservation, nil
}

func (s *service) observe(operation string, started time.Time, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveDuration(operation, time.Since(started))
	if err == nil {
		s.metrics.IncSuccess(operation)
		return
	}
	reason := "error"
	if appErr := errors.As(err); appErr != nil {
		reason = string(appErr.Code())
	}
	s.metrics.IncRejected(operation, reason)
}

func verbFor(target enums.ReservationStatus) string {
	switch target {
	case enums.ReservationStatusConfirmed:
		return "confirm"
	case enums.ReservationStatusCancelled:
		return "cancel"
	case enums.ReservationStatusCompleted:
		return "complete"
	default:
		return "transition"
	}
}
