package points

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mapcocoro/soleil-backend/pkg/enums"
	apperrors "github.com/mapcocoro/soleil-backend/pkg/errors"
)

type sqliteTxRunner struct {
	db *gorm.DB
}

func (r sqliteTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})
}

func newPointsService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := setupPointsTestDB(t)
	svc, err := NewService(sqliteTxRunner{db: db}, NewRepository(db))
	require.NoError(t, err)
	return svc, db
}

func TestService_RedeemDebitsBalance(t *testing.T) {
	svc, db := newPointsService(t)
	ctx := context.Background()
	user := seedUser(t, db, 200)
	note := "店頭利用"

	entry, err := svc.Redeem(ctx, RedeemInput{UserID: user.ID, Points: 150, Description: &note})
	require.NoError(t, err)
	assert.Equal(t, -150, entry.Points)
	assert.Equal(t, enums.PointEventTypeUsed, entry.Type)

	balance, err := svc.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, balance)
}

func TestService_RedeemInsufficientBalance(t *testing.T) {
	svc, db := newPointsService(t)
	ctx := context.Background()
	user := seedUser(t, db, 100)

	_, err := svc.Redeem(ctx, RedeemInput{UserID: user.ID, Points: 101})
	require.Error(t, err)
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code())

	balance, err := svc.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, balance)

	history, err := svc.History(ctx, user.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestService_GrantBonusCredits(t *testing.T) {
	svc, db := newPointsService(t)
	ctx := context.Background()
	user := seedUser(t, db, 10)

	entry, err := svc.GrantBonus(ctx, GrantBonusInput{UserID: user.ID, Points: 30})
	require.NoError(t, err)
	assert.Equal(t, 30, entry.Points)
	assert.Equal(t, enums.PointEventTypeBonus, entry.Type)

	balance, err := svc.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, balance)
}

func TestService_RejectsNonPositiveAmounts(t *testing.T) {
	svc, db := newPointsService(t)
	ctx := context.Background()
	user := seedUser(t, db, 50)

	for _, points := range []int{0, -5} {
		_, err := svc.Redeem(ctx, RedeemInput{UserID: user.ID, Points: points})
		require.Error(t, err)
		_, err = svc.GrantBonus(ctx, GrantBonusInput{UserID: user.ID, Points: points})
		require.Error(t, err)
	}
}
