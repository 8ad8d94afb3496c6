package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mapcocoro/soleil-backend/api/responses"
	"github.com/mapcocoro/soleil-backend/internal/users"
	pkgerrors "github.com/mapcocoro/soleil-backend/pkg/errors"
	"github.com/mapcocoro/soleil-backend/pkg/logger"
)

const (
	lineUserIDHeader  = "X-Line-UserId"
	displayNameHeader = "X-Line-DisplayName"
)

const ctxUserID contextKey = "user_id"

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// LineUser resolves the customer behind the LINE mini app headers, creating
// the account on first contact, and seeds the request context with the
// internal user id.
func LineUser(userSvc users.Service, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lineUserID := strings.TrimSpace(r.Header.Get(lineUserIDHeader))
			if lineUserID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing line user id"))
				return
			}

			input := users.FindOrCreateInput{LineUserID: lineUserID}
			if name := strings.TrimSpace(r.Header.Get(displayNameHeader)); name != "" {
				input.DisplayName = &name
			}

			user, err := userSvc.FindOrCreate(r.Context(), input)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithUserID(r.Context(), user.ID.String())
			if logg != nil {
				ctx = logg.WithUserID(ctx, user.ID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
