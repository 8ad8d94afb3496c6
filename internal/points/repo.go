package points

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mapcocoro/soleil-backend/pkg/db/models"
	"gorm.io/gorm"
)

// ErrInsufficientBalance is returned when a debit would drive a balance
// negative. The guarded UPDATE never applies a partial debit.
var ErrInsufficientBalance = fmt.Errorf("insufficient point balance")

// Repository appends ledger entries and maintains the denormalized balance.
// Credit and Debit write the ledger row and the balance update together, so
// callers running inside a transaction keep the two in lockstep.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Credit(ctx context.Context, entry *models.PointHistory) error
	Debit(ctx context.Context, entry *models.PointHistory) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.PointHistory, error)
	Balance(ctx context.Context, userID uuid.UUID) (int, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a point ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Credit(ctx context.Context, entry *models.PointHistory) error {
	if entry.Points <= 0 {
		return fmt.Errorf("credit requires a positive delta, got %d", entry.Points)
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", entry.UserID).
		Update("total_points", gorm.Expr("total_points + ?", entry.Points)).Error
}

func (r *repository) Debit(ctx context.Context, entry *models.PointHistory) error {
	if entry.Points >= 0 {
		return fmt.Errorf("debit requires a negative delta, got %d", entry.Points)
	}
	amount := -entry.Points
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND total_points >= ?", entry.UserID, amount).
		Update("total_points", gorm.Expr("total_points - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientBalance
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.PointHistory, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var entries []models.PointHistory
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) Balance(ctx context.Context, userID uuid.UUID) (int, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Select("total_points").
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		return 0, err
	}
	return user.TotalPoints, nil
}
