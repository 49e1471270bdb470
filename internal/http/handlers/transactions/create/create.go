// Package create реализует HTTP-обработчик добавления транзакции.
//
// Перед сохранением сервис проверяет лимит транзакций тарифного плана:
// при исчерпании лимита возвращается 402 и ничего не сохраняется.
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

// Handler управляет HTTP-запросами на создание транзакций.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис финансовых операций
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает бизнес-логику создания транзакции.
type Service interface {
	AddTransaction(ctx context.Context, userUID string, req models.DummyTransaction) (*models.Transaction, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить транзакцию
// @Description Создаёт доход или расход. Дата указывается по времени Бразилиа, без даты берётся текущий момент.
// @Tags Transactions
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyTransaction true "Данные транзакции"
// @Success 201 {object} response.Response "Транзакция создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, сумма или дата"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 402 {object} response.ErrorResponse "Исчерпан лимит тарифного плана"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /transactions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.transactions.create"
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

	var req models.DummyTransaction
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

	tx, err := h.service.AddTransaction(r.Context(), userUID, req)
	if err != nil {
		status, body := response.FromError(err, "could not create transaction")
		log.Error("failed to create transaction", sl.Err(err), slog.Int("status", status))
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("transaction created", slog.Int("id", tx.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(tx))
}
