// Package markpaid реализует HTTP-обработчик оплаты счёта.
//
// Оплата переводит счёт в статус paid и в той же транзакции БД создаёт
// соответствующий доход или расход. Повторная оплата возвращает 409.
package markpaid

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-tracker/internal/http/response"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает бизнес-логику оплаты счёта.
type Service interface {
	MarkPaid(ctx context.Context, userUID string, accountID int) (*models.Transaction, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отметить счёт оплаченным
// @Description Переводит счёт в статус paid и создаёт транзакцию: доход для счёта к получению, расход для счёта к оплате.
// @Tags Accounts
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID счёта"
// @Success 200 {object} response.Response{data=models.Transaction}
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Счёт не найден"
// @Failure 409 {object} response.ErrorResponse "Счёт уже оплачен"
// @Failure 422 {object} response.ErrorResponse "Банковский счёт нельзя оплатить"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /accounts/{id}/pay [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.accounts.markpaid"
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

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	tx, err := h.service.MarkPaid(r.Context(), userUID, id)
	if err != nil {
		status, body := response.FromError(err, "could not settle account")
		log.Error("failed to settle account", sl.Err(err), slog.Int("account_id", id))
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("account settled", slog.Int("account_id", id), slog.Int("transaction_id", tx.ID))
	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(tx))
}
