package controllers

import (
	"net/http"
	"time"

	"github.com/mapcocoro/soleil-backend/api/responses"
	"github.com/mapcocoro/soleil-backend/api/validators"
	"github.com/mapcocoro/soleil-backend/internal/calendar"
	"github.com/mapcocoro/soleil-backend/pkg/logger"
)

// GetCalendar resolves the shop's availability from today forward.
func GetCalendar(svc calendar.Service, maxDays int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		days, err := validators.ParseQueryInt(r, "days", maxDays, 1, maxDays)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		statuses, err := svc.Calendar(ctx, time.Now().UTC(), days)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"days": statuses})
	}
}
