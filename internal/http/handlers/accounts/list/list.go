// Package list реализует HTTP-обработчик просмотра счетов пользователя.
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

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает бизнес-логику получения счетов.
type Service interface {
	ListAccounts(ctx context.Context, userUID string) (*models.AccountsSummary, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список счетов
// @Description Счета к получению, к оплате и банковские со суммами ожидающих оплаты и признаком просрочки.
// @Tags Accounts
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.AccountsSummary}
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /accounts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.accounts.list"
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

	res, err := h.service.ListAccounts(r.Context(), userUID)
	if err != nil {
		status, body := response.FromError(err, "could not list accounts")
		log.Error("failed to list accounts", sl.Err(err))
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(res))
}
