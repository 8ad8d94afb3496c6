package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mapcocoro/soleil-backend/api/responses"
	"github.com/mapcocoro/soleil-backend/api/validators"
	"github.com/mapcocoro/soleil-backend/internal/reservations"
	"github.com/mapcocoro/soleil-backend/pkg/db/models"
	"github.com/mapcocoro/soleil-backend/pkg/logger"
)

// AdminListReservations returns every reservation ordered by pickup date with
// the pending count for the dashboard badge.
func AdminListReservations(svc reservations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		listing, err := svc.ListAll(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, listing)
	}
}

// AdminGetReservation returns one reservation with items, products, and the
// customer attached.
func AdminGetReservation(svc reservations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		reservation, err := svc.GetByID(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, reservation)
	}
}

type transitionFunc func(r *http.Request, id uuid.UUID) (*models.Reservation, error)

func adminTransition(logg *logger.Logger, transition transitionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		reservation, err := transition(r, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, reservation)
	}
}

// AdminConfirmReservation moves a pending reservation to confirmed.
func AdminConfirmReservation(svc reservations.Service, logg *logger.Logger) http.HandlerFunc {
	return adminTransition(logg, func(r *http.Request, id uuid.UUID) (*models.Reservation, error) {
		return svc.Confirm(r.Context(), id)
	})
}

// AdminCancelReservation cancels a pending or confirmed reservation and
// restores its stock.
func AdminCancelReservation(svc reservations.Service, logg *logger.Logger) http.HandlerFunc {
	return adminTransition(logg, func(r *http.Request, id uuid.UUID) (*models.Reservation, error) {
		return svc.Cancel(r.Context(), id)
	})
}

// AdminCompleteReservation marks a confirmed reservation as picked up.
func AdminCompleteReservation(svc reservations.Service, logg *logger.Logger) http.HandlerFunc {
	return adminTransition(logg, func(r *http.Request, id uuid.UUID) (*models.Reservation, error) {
		return svc.Complete(r.Context(), id)
	})
}
