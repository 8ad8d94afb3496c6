package users

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mapcocoro/soleil-backend/pkg/db/models"
	"gorm.io/gorm"
)

type fakeRepository struct {
	byLine      map[string]*models.User
	byID        map[uuid.UUID]*models.User
	afterCreate map[string]*models.User
	createErr   error
	createCalls int
	created     []*models.User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byLine:      map[string]*models.User{},
		byID:        map[uuid.UUID]*models.User{},
		afterCreate: map[string]*models.User{},
	}
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := f.byID[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) GetByLineUserID(ctx context.Context, lineUserID string) (*models.User, error) {
	if user, ok := f.byLine[lineUserID]; ok {
		return user, nil
	}
	// Rows inserted by a concurrent writer surface only after an insert attempt.
	if f.createCalls > 0 {
		if user, ok := f.afterCreate[lineUserID]; ok {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) Create(ctx context.Context, user *models.User) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = uuid.New()
	f.byLine[user.LineUserID] = user
	f.byID[user.ID] = user
	f.created = append(f.created, user)
	return nil
}

func (f *fakeRepository) UpdateProfile(ctx context.Context, id uuid.UUID, displayName, pictureURL *string) error {
	return nil
}

type fakeWelcomeGranter struct {
	granted []uuid.UUID
	err     error
}

func (f *fakeWelcomeGranter) GrantWelcome(ctx context.Context, userID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.granted = append(f.granted, userID)
	return nil
}

func TestService_FindOrCreateCreatesNewUser(t *testing.T) {
	repo := newFakeRepository()
	welcome := &fakeWelcomeGranter{}
	svc, err := NewService(repo, welcome)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	name := "ココロ"
	user, err := svc.FindOrCreate(context.Background(), FindOrCreateInput{
		LineUserID:  "U1234567890",
		DisplayName: &name,
	})
	if err != nil {
		t.Fatalf("FindOrCreate error: %v", err)
	}
	if user.ID == uuid.Nil {
		t.Fatalf("expected assigned user id")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created user, got %d", len(repo.created))
	}
	if user.TotalPoints != 0 {
		t.Fatalf("new user should start with zero points, got %d", user.TotalPoints)
	}
	if len(welcome.granted) != 1 || welcome.granted[0] != user.ID {
		t.Fatalf("expected welcome coupon granted to %s, got %v", user.ID, welcome.granted)
	}
}

func TestService_FindOrCreateReturnsExisting(t *testing.T) {
	repo := newFakeRepository()
	existing := &models.User{ID: uuid.New(), LineUserID: "U999", TotalPoints: 120}
	repo.byLine[existing.LineUserID] = existing
	repo.byID[existing.ID] = existing

	welcome := &fakeWelcomeGranter{}
	svc, err := NewService(repo, welcome)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	user, err := svc.FindOrCreate(context.Background(), FindOrCreateInput{LineUserID: "U999"})
	if err != nil {
		t.Fatalf("FindOrCreate error: %v", err)
	}
	if user.ID != existing.ID {
		t.Fatalf("expected existing user, got %s", user.ID)
	}
	if len(repo.created) != 0 {
		t.Fatalf("expected no new user created")
	}
	if len(welcome.granted) != 0 {
		t.Fatalf("returning customer must not receive another welcome coupon")
	}
}

func TestService_FindOrCreateRaceLoserSkipsWelcome(t *testing.T) {
	repo := newFakeRepository()
	winner := &models.User{ID: uuid.New(), LineUserID: "U777"}
	repo.byID[winner.ID] = winner
	repo.createErr = errors.New(`duplicate key value violates unique constraint "users_line_user_id_key"`)

	welcome := &fakeWelcomeGranter{}
	svc, err := NewService(repo, welcome)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	// The winner's row lands between the loser's read and insert.
	repo.afterCreate[winner.LineUserID] = winner

	user, err := svc.FindOrCreate(context.Background(), FindOrCreateInput{LineUserID: "U777"})
	if err != nil {
		t.Fatalf("FindOrCreate error: %v", err)
	}
	if user.ID != winner.ID {
		t.Fatalf("expected winner's row, got %s", user.ID)
	}
	if len(welcome.granted) != 0 {
		t.Fatalf("race loser must not grant a second welcome coupon")
	}
}

func TestService_FindOrCreateRequiresLineUserID(t *testing.T) {
	repo := newFakeRepository()
	svc, err := NewService(repo, &fakeWelcomeGranter{})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	if _, err := svc.FindOrCreate(context.Background(), FindOrCreateInput{LineUserID: "   "}); err == nil {
		t.Fatalf("expected validation error for blank line user id")
	}
}
