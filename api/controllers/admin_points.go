package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mapcocoro/soleil-backend/api/responses"
	"github.com/mapcocoro/soleil-backend/api/validators"
	"github.com/mapcocoro/soleil-backend/internal/points"
	"github.com/mapcocoro/soleil-backend/pkg/logger"
)

type pointAdjustmentPayload struct {
	Points      int     `json:"points" validate:"required,min=1"`
	Description *string `json:"description"`
}

// AdminRedeemPoints records points spent by a customer at the register.
func AdminRedeemPoints(svc points.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload pointAdjustmentPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		entry, err := svc.Redeem(ctx, points.RedeemInput{
			UserID:      userID,
			Points:      payload.Points,
			Description: payload.Description,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}

// AdminGrantPoints credits promotional points to a customer.
func AdminGrantPoints(svc points.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload pointAdjustmentPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		entry, err := svc.GrantBonus(ctx, points.GrantBonusInput{
			UserID:      userID,
			Points:      payload.Points,
			Description: payload.Description,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}
