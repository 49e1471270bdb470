// Package offers реализует HTTP-обработчик каталога платных планов.
package offers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-tracker/internal/http/response"
	"github.com/magabrotheeeer/finance-tracker/internal/plans"
)

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Платные планы
// @Description Предложения в порядке показа: цена, валюта, описание и возможности.
// @Tags Subscription
// @Produce  json
// @Success 200 {object} response.Response{data=[]plans.Offer}
// @Router /plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(plans.PaidPlans()))
}
