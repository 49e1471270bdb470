// Package checkout реализует HTTP-обработчик страницы оформления платного плана.
//
// Ответ только информирует о цене плана, состояние подписки не меняется.
package checkout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
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

// Service описывает оформление плана.
type Service interface {
	Checkout(ctx context.Context, userUID, planID string) (subscription.CheckoutInfo, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Оформление плана
// @Tags Subscription
// @Produce  json
// @Security BearerAuth
// @Param plan path string true "Идентификатор плана: mei, professional или enterprise"
// @Success 200 {object} response.Response{data=subscription.CheckoutInfo}
// @Failure 400 {object} response.ErrorResponse "Неизвестный или бесплатный план"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscription/checkout/{plan} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.checkout"
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

	planID := chi.URLParam(r, "plan")
	info, err := h.service.Checkout(r.Context(), userUID, planID)
	if err != nil {
		status, body := response.FromError(err, "could not prepare checkout")
		log.Error("checkout failed", sl.Err(err), slog.String("plan", planID))
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(info))
}
