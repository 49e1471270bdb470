// Package contribute реализует HTTP-обработчик взноса в финансовую цель.
//
// Цель считается выполненной, когда накопленная сумма достигает целевой.
package contribute

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/finance-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-tracker/internal/http/response"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает бизнес-логику пополнения цели.
type Service interface {
	ContributeToGoal(ctx context.Context, userUID string, goalID int, req models.DummyContribution) (*models.GoalView, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Пополнить цель
// @Tags Goals
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID цели"
// @Param request body models.DummyContribution true "Сумма взноса"
// @Success 200 {object} response.Response{data=models.GoalView}
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или сумма"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Цель не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /goals/{id}/contribute [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.goals.contribute"
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

	var req models.DummyContribution
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

	goal, err := h.service.ContributeToGoal(r.Context(), userUID, id, req)
	if err != nil {
		status, body := response.FromError(err, "could not update goal")
		log.Error("failed to contribute to goal", sl.Err(err), slog.Int("goal_id", id))
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("goal updated", slog.Int("goal_id", id), slog.Bool("completed", goal.IsCompleted))
	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(goal))
}
