package points

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mapcocoro/soleil-backend/pkg/db/models"
	"github.com/mapcocoro/soleil-backend/pkg/enums"
	apperrors "github.com/mapcocoro/soleil-backend/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the point ledger to the API layer.
type Service interface {
	History(ctx context.Context, userID uuid.UUID, limit int) ([]models.PointHistory, error)
	Balance(ctx context.Context, userID uuid.UUID) (int, error)
	Redeem(ctx context.Context, input RedeemInput) (*models.PointHistory, error)
	GrantBonus(ctx context.Context, input GrantBonusInput) (*models.PointHistory, error)
}

// RedeemInput spends points from a customer's balance.
type RedeemInput struct {
	UserID      uuid.UUID `json:"user_id"`
	Points      int       `json:"points"`
	Description *string   `json:"description"`
}

// GrantBonusInput credits promotional points outside the reservation flow.
type GrantBonusInput struct {
	UserID      uuid.UUID `json:"user_id"`
	Points      int       `json:"points"`
	Description *string   `json:"description"`
}

type service struct {
	tx   txRunner
	repo Repository
}

// NewService wires a point service with the provided transaction runner and
// repository.
func NewService(tx txRunner, repo Repository) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("point repository required")
	}
	return &service{tx: tx, repo: repo}, nil
}

// EarnedFromReservation builds the ledger entry credited when a reservation
// is accepted. Points accrue at one per yenPerPoint of the reservation total,
// rounded down.
func EarnedFromReservation(userID, reservationID uuid.UUID, totalAmount, yenPerPoint int) *models.PointHistory {
	if yenPerPoint <= 0 {
		yenPerPoint = 100
	}
	earned := totalAmount / yenPerPoint
	description := fmt.Sprintf("取り置き予約 #%s", shortReservationRef(reservationID))
	return &models.PointHistory{
		ID:          uuid.New(),
		UserID:      userID,
		Points:      earned,
		Type:        enums.PointEventTypeEarned,
		Description: &description,
	}
}

// shortReservationRef is the customer-facing reservation reference, the last
// six characters of the reservation id.
func shortReservationRef(id uuid.UUID) string {
	s := id.String()
	return s[len(s)-6:]
}

func (s *service) History(ctx context.Context, userID uuid.UUID, limit int) ([]models.PointHistory, error) {
	if userID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "user id is required")
	}
	entries, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing point history")
	}
	return entries, nil
}

func (s *service) Balance(ctx context.Context, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, apperrors.New(apperrors.CodeValidation, "user id is required")
	}
	balance, err := s.repo.Balance(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.New(apperrors.CodeNotFound, "user not found")
		}
		return 0, apperrors.Wrap(apperrors.CodeInternal, err, "loading point balance")
	}
	return balance, nil
}

func (s *service) Redeem(ctx context.Context, input RedeemInput) (*models.PointHistory, error) {
	if input.UserID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "user id is required")
	}
	if input.Points <= 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "points must be positive")
	}

	entry := &models.PointHistory{
		ID:          uuid.New(),
		UserID:      input.UserID,
		Points:      -input.Points,
		Type:        enums.PointEventTypeUsed,
		Description: input.Description,
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Debit(ctx, entry)
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientBalance) {
			return nil, apperrors.New(apperrors.CodeConflict, "insufficient point balance")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "redeeming points")
	}
	return entry, nil
}

func (s *service) GrantBonus(ctx context.Context, input GrantBonusInput) (*models.PointHistory, error) {
	if input.UserID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "user id is required")
	}
	if input.Points <= 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "points must be positive")
	}

	entry := &models.PointHistory{
		ID:          uuid.New(),
		UserID:      input.UserID,
		Points:      input.Points,
		Type:        enums.PointEventTypeBonus,
		Description: input.Description,
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Credit(ctx, entry)
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "granting bonus points")
	}
	return entry, nil
}
