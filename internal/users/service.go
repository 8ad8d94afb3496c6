package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mapcocoro/soleil-backend/pkg/db"
	"github.com/mapcocoro/soleil-backend/pkg/db/models"
	"github.com/mapcocoro/soleil-backend/pkg/errors"
)

// Service resolves customer identities from the LINE mini app.
type Service interface {
	FindOrCreate(ctx context.Context, input FindOrCreateInput) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// FindOrCreateInput carries the LINE profile used to resolve a customer.
type FindOrCreateInput struct {
	LineUserID  string  `json:"line_user_id"`
	DisplayName *string `json:"display_name"`
	PictureURL  *string `json:"picture_url"`
}

// welcomeGranter hands a first-visit coupon to a freshly created customer.
type welcomeGranter interface {
	GrantWelcome(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo    Repository
	welcome welcomeGranter
}

// NewService wires a user service with the provided repository and
// welcome-coupon granter.
func NewService(repo Repository, welcome welcomeGranter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if welcome == nil {
		return nil, fmt.Errorf("welcome granter required")
	}
	return &service{repo: repo, welcome: welcome}, nil
}

func (s *service) FindOrCreate(ctx context.Context, input FindOrCreateInput) (*models.User, error) {
	lineUserID := strings.TrimSpace(input.LineUserID)
	if lineUserID == "" {
		return nil, errors.New(errors.CodeValidation, "line user id is required")
	}

	user, err := s.repo.GetByLineUserID(ctx, lineUserID)
	if err == nil {
		if input.DisplayName != nil || input.PictureURL != nil {
			if err := s.repo.UpdateProfile(ctx, user.ID, input.DisplayName, input.PictureURL); err != nil {
				return nil, errors.Wrap(errors.CodeInternal, err, "updating profile")
			}
			if input.DisplayName != nil {
				user.DisplayName = input.DisplayName
			}
			if input.PictureURL != nil {
				user.PictureURL = input.PictureURL
			}
		}
		return user, nil
	}
	if !IsNotFound(err) {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading user")
	}

	user = &models.User{
		LineUserID:  lineUserID,
		DisplayName: input.DisplayName,
		PictureURL:  input.PictureURL,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// Two first-time requests can race on the unique line_user_id; the
		// loser re-reads the winner's row.
		if db.IsUniqueViolation(err, "") {
			existing, lookupErr := s.repo.GetByLineUserID(ctx, lineUserID)
			if lookupErr != nil {
				return nil, errors.Wrap(errors.CodeInternal, lookupErr, "loading user after conflict")
			}
			return existing, nil
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "creating user")
	}

	// First visit: the welcome coupon rides along with account creation.
	if err := s.welcome.GrantWelcome(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if id == uuid.Nil {
		return nil, errors.New(errors.CodeValidation, "user id is required")
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.New(errors.CodeNotFound, "user not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading user")
	}
	return user, nil
}
