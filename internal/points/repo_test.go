package points

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mapcocoro/soleil-backend/pkg/db/models"
	"github.com/mapcocoro/soleil-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPointsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  line_user_id TEXT NOT NULL UNIQUE,
  display_name TEXT,
  picture_url TEXT,
  total_points INTEGER NOT NULL DEFAULT 0 CHECK (total_points >= 0),
  created_at DATETIME,
  updated_at DATETIME
);`
	histories := `
CREATE TABLE IF NOT EXISTS point_histories (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  points INTEGER NOT NULL,
  type TEXT NOT NULL,
  description TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(users).Error)
	require.NoError(t, db.Exec(histories).Error)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, points int) models.User {
	t.Helper()
	user := models.User{
		ID:          uuid.New(),
		LineUserID:  "U" + uuid.NewString(),
		TotalPoints: points,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestRepository_CreditAppendsEntryAndBalance(t *testing.T) {
	db := setupPointsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, 0)

	entry := &models.PointHistory{
		ID:     uuid.New(),
		UserID: user.ID,
		Points: 15,
		Type:   enums.PointEventTypeEarned,
	}
	require.NoError(t, repo.Credit(ctx, entry))

	balance, err := repo.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, balance)

	entries, err := repo.ListByUser(ctx, user.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 15, entries[0].Points)
}

func TestRepository_BalanceEqualsSumOfDeltas(t *testing.T) {
	db := setupPointsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, 0)

	deltas := []int{12, 8, -5, 30, -10}
	for _, delta := range deltas {
		entry := &models.PointHistory{
			ID:     uuid.New(),
			UserID: user.ID,
			Points: delta,
		}
		if delta > 0 {
			entry.Type = enums.PointEventTypeEarned
			require.NoError(t, repo.Credit(ctx, entry))
		} else {
			entry.Type = enums.PointEventTypeUsed
			require.NoError(t, repo.Debit(ctx, entry))
		}
	}

	sum := 0
	for _, delta := range deltas {
		sum += delta
	}
	balance, err := repo.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, sum, balance)

	entries, err := repo.ListByUser(ctx, user.ID, 0)
	require.NoError(t, err)
	assert.Len(t, entries, len(deltas))
}

func TestRepository_DebitBelowBalanceRejectedUnchanged(t *testing.T) {
	db := setupPointsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, 20)

	entry := &models.PointHistory{
		ID:     uuid.New(),
		UserID: user.ID,
		Points: -30,
		Type:   enums.PointEventTypeUsed,
	}
	err := repo.Debit(ctx, entry)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	balance, err := repo.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, balance, "failed debit must leave balance untouched")

	entries, err := repo.ListByUser(ctx, user.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed debit must not append a ledger entry")
}

func TestRepository_CreditRejectsNonPositiveDelta(t *testing.T) {
	db := setupPointsTestDB(t)
	repo := NewRepository(db)
	user := seedUser(t, db, 0)

	err := repo.Credit(context.Background(), &models.PointHistory{
		ID:     uuid.New(),
		UserID: user.ID,
		Points: -5,
		Type:   enums.PointEventTypeEarned,
	})
	assert.Error(t, err)
}
