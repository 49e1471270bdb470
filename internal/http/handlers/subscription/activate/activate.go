// Package activate реализует HTTP-обработчик активации платного плана.
//
// Перед сменой плана оплата по payment_ref подтверждается у платёжного провайдера.
// Неподтверждённая оплата возвращает 402 и не меняет подписку.
package activate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/finance-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-tracker/internal/http/response"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

// Request тело запроса активации.
type Request struct {
	PaymentRef string `json:"payment_ref" validate:"required,max=100"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает активацию плана.
type Service interface {
	Activate(ctx context.Context, userUID, planID, paymentRef string) (*models.User, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Активировать платный план
// @Description Подписка становится активной на 30 дней после подтверждения оплаты.
// @Tags Subscription
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param plan path string true "Идентификатор плана: mei, professional или enterprise"
// @Param request body Request true "Ссылка на платёж"
// @Success 200 {object} response.Response{data=models.User}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или неизвестный план"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 402 {object} response.ErrorResponse "Оплата не подтверждена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscription/activate/{plan} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.activate"
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	planID := chi.URLParam(r, "plan")
	user, err := h.service.Activate(r.Context(), userUID, planID, req.PaymentRef)
	if err != nil {
		status, body := response.FromError(err, "could not activate subscription")
		log.Error("activation failed", sl.Err(err), slog.String("plan", planID))
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("subscription activated", slog.String("plan", planID))
	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(user))
}
