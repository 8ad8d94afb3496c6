package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mapcocoro/soleil-backend/api/middleware"
	"github.com/mapcocoro/soleil-backend/api/responses"
	"github.com/mapcocoro/soleil-backend/api/validators"
	"github.com/mapcocoro/soleil-backend/internal/reservations"
	"github.com/mapcocoro/soleil-backend/pkg/enums"
	pkgerrors "github.com/mapcocoro/soleil-backend/pkg/errors"
	"github.com/mapcocoro/soleil-backend/pkg/logger"
	"github.com/mapcocoro/soleil-backend/pkg/pagination"
)

type reservationItemPayload struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type createReservationPayload struct {
	PickupDate     string                   `json:"pickup_date" validate:"required,datetime=2006-01-02"`
	PickupTimeSlot string                   `json:"pickup_time_slot" validate:"required"`
	Items          []reservationItemPayload `json:"items" validate:"required,min=1,dive"`
	Note           *string                  `json:"note"`
	UserCouponID   *string                  `json:"user_coupon_id" validate:"omitempty,uuid"`
}

func contextUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user identity")
	}
	return id, nil
}

// CreateReservation stages a pickup reservation for the calling customer.
func CreateReservation(svc reservations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := contextUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload createReservationPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		pickupDate, err := time.Parse("2006-01-02", payload.PickupDate)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid pickup date"))
			return
		}

		input := reservations.CreateInput{
			UserID:         userID,
			PickupDate:     pickupDate,
			PickupTimeSlot: enums.TimeSlot(payload.PickupTimeSlot),
			Note:           payload.Note,
		}
		for _, item := range payload.Items {
			productID, err := uuid.Parse(item.ProductID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
				return
			}
			input.Items = append(input.Items, reservations.ItemInput{
				ProductID: productID,
				Quantity:  item.Quantity,
			})
		}
		if payload.UserCouponID != nil {
			couponID, err := uuid.Parse(*payload.UserCouponID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user coupon id"))
				return
			}
			input.UserCouponID = &couponID
		}

		reservation, err := svc.Create(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, reservation)
	}
}

// ListMyReservations returns the caller's reservation history, newest first,
// as a cursor-paginated page.
func ListMyReservations(svc reservations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := contextUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		page, err := svc.ListByUser(ctx, userID, pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}
