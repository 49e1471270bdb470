// Package overview реализует HTTP-обработчик сводки пользователя за текущий месяц.
package overview

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-tracker/internal/http/response"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/finance-tracker/internal/services/aggregation"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает построение сводки.
type Service interface {
	Dashboard(ctx context.Context, userUID string) (*aggregation.Dashboard, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка за текущий месяц
// @Description Доходы, расходы и баланс месяца по времени Бразилиа, последние транзакции, ожидающие счета, открытые цели, уровень и статус подписки.
// @Tags Dashboard
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=aggregation.Dashboard}
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.overview"
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

	res, err := h.service.Dashboard(r.Context(), userUID)
	if err != nil {
		status, body := response.FromError(err, "could not build dashboard")
		log.Error("failed to build dashboard", sl.Err(err))
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(res))
}
