// Package list реализует HTTP-обработчик просмотра движения денежных средств.
//
// Просмотр доступен и после исчерпания лимита плана, в ответе при этом выставлен limit_reached.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-tracker/internal/http/response"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

// Handler обрабатывает запросы на получение списка транзакций.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает бизнес-логику получения транзакций.
type Service interface {
	ListTransactions(ctx context.Context, userUID string) (*models.TransactionList, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список транзакций
// @Description Возвращает все транзакции пользователя, итоги по доходам и расходам и признак достижения лимита.
// @Tags Transactions
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.TransactionList}
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /transactions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.transactions.list"
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

	res, err := h.service.ListTransactions(r.Context(), userUID)
	if err != nil {
		status, body := response.FromError(err, "could not list transactions")
		log.Error("failed to list transactions", sl.Err(err))
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}
	if res.LimitReached {
		log.Warn("plan transaction limit reached", slog.String("user_uid", userUID))
	}

	log.Info("transactions listed", slog.Int("count", len(res.Transactions)))
	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(res))
}
