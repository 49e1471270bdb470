// Package status реализует HTTP-обработчик текущего состояния подписки.
package status

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-tracker/internal/http/response"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/finance-tracker/internal/services/subscription"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает получение состояния подписки.
type Service interface {
	Status(ctx context.Context, userUID string) (subscription.Status, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Состояние подписки
// @Description План, статус, признак активности, возможности плана и остаток пробного периода.
// @Tags Subscription
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=subscription.Status}
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscription [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.status"
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

	st, err := h.service.Status(r.Context(), userUID)
	if err != nil {
		status, body := response.FromError(err, "could not get subscription status")
		log.Error("failed to get subscription status", sl.Err(err))
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(st))
}
