// Package create реализует HTTP-обработчик добавления счёта к оплате, к получению или банковского счёта.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/finance-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-tracker/internal/http/response"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

// Handler управляет HTTP-запросами на создание счетов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает бизнес-логику создания счёта.
type Service interface {
	AddAccount(ctx context.Context, userUID string, req models.DummyAccount) (*models.Account, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить счёт
// @Description Создаёт счёт в статусе pending. Срок оплаты указывается по времени Бразилиа.
// @Tags Accounts
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyAccount true "Данные счёта"
// @Success 201 {object} response.Response{data=models.Account}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, сумма или дата"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /accounts [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.accounts.create"
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

	var req models.DummyAccount
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

	acc, err := h.service.AddAccount(r.Context(), userUID, req)
	if err != nil {
		status, body := response.FromError(err, "could not create account")
		log.Error("failed to create account", sl.Err(err))
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("account created", slog.Int("id", acc.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(acc))
}
