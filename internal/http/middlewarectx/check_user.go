package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-tracker/internal/http/response"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

// AccessChecker сообщает, есть ли у пользователя действующая подписка или пробный период.
type AccessChecker interface {
	IsActive(ctx context.Context, userUID string) (bool, error)
}

// SubscriptionStatusMiddleware пропускает к финансовым данным только пользователей
// с действующей подпиской. Иначе отвечает 403.
func SubscriptionStatusMiddleware(log *slog.Logger, checker AccessChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SubscriptionStatusMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			userUID, ok := UserUIDFrom(r.Context())
			if !ok {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			active, err := checker.IsActive(r.Context(), userUID)
			if errors.Is(err, models.ErrNotFound) {
				log.Error("user from token not found", slog.String("user_uid", userUID))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user not found"))
				return
			}
			if err != nil {
				log.Error("failed to get subscription status", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if !active {
				log.Info("subscription inactive, access denied", slog.String("user_uid", userUID))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("subscription inactive, choose a plan to continue"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
