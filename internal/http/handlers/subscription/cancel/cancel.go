// Package cancel реализует HTTP-обработчик отмены подписки.
package cancel

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-tracker/internal/http/response"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает отмену подписки.
type Service interface {
	Cancel(ctx context.Context, userUID string) (bool, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отменить подписку
// @Description Отменяет активную подписку, доступ к финансовым данным теряется сразу. Для неактивной подписки ничего не меняет.
// @Tags Subscription
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "cancelled: была ли подписка отменена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscription/cancel [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.cancel"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := middlewarectx.UserUIDFrom(r.Context())
	if !ok {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	cancelled, err := h.service.Cancel(r.Context(), userUID)
	if err != nil {
		status, body := response.FromError(err, "could not cancel subscription")
		log.Error("cancel failed", sl.Err(err))
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("cancel processed", slog.Bool("cancelled", cancelled))
	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"cancelled": cancelled,
	}))
}
