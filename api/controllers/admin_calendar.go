package controllers

import (
	"net/http"
	"time"

	"github.com/mapcocoro/soleil-backend/api/responses"
	"github.com/mapcocoro/soleil-backend/api/validators"
	"github.com/mapcocoro/soleil-backend/internal/calendar"
	pkgerrors "github.com/mapcocoro/soleil-backend/pkg/errors"
	"github.com/mapcocoro/soleil-backend/pkg/logger"
)

type setOverridePayload struct {
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	IsOpen    bool    `json:"is_open"`
	OpenTime  *string `json:"open_time"`
	CloseTime *string `json:"close_time"`
	Note      *string `json:"note"`
}

type setHolidaysPayload struct {
	Weekdays []int `json:"weekdays" validate:"required,dive,min=0,max=6"`
}

// AdminSetCalendarOverride creates or replaces the schedule for one date.
func AdminSetCalendarOverride(svc calendar.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload setOverridePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		date, err := time.Parse("2006-01-02", payload.Date)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date"))
			return
		}

		day, err := svc.SetOverride(ctx, calendar.SetOverrideInput{
			Date:      date,
			IsOpen:    payload.IsOpen,
			OpenTime:  payload.OpenTime,
			CloseTime: payload.CloseTime,
			Note:      payload.Note,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, day)
	}
}

// AdminSetRegularHolidays replaces the weekly closed-day schedule.
func AdminSetRegularHolidays(svc calendar.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload setHolidaysPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		weekdays := make([]time.Weekday, 0, len(payload.Weekdays))
		for _, wd := range payload.Weekdays {
			weekdays = append(weekdays, time.Weekday(wd))
		}
		if err := svc.SetRegularHolidays(ctx, weekdays); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"weekdays": payload.Weekdays})
	}
}
