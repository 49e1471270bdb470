// Package chart реализует HTTP-обработчик данных для графика доходов и расходов
// за последние шесть месяцев.
package chart

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

// Service описывает построение ряда для графика.
type Service interface {
	Chart(ctx context.Context, userUID string) (aggregation.ChartData, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Данные графика
// @Description Доходы и расходы по календарным месяцам, от старого к новому. Ответ не оборачивается в Response.
// @Tags Dashboard
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} aggregation.ChartData
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dashboard/chart-data [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.chart"
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

	data, err := h.service.Chart(r.Context(), userUID)
	if err != nil {
		log.Error("failed to build chart data", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build chart data"))
		return
	}

	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, data)
}
