// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, ошибок и сообщений валидации в едином формате.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status: статус запроса ("OK" или "Error").
// Поле Error: текст ошибки (опционально, при неуспехе).
// Поле Data: данные ответа (опционально, при успехе).
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse: структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK: значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError: значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// FromError сопоставляет доменную ошибку HTTP-статусу и сообщению для клиента.
// Неизвестные ошибки превращаются в 500 с fallback-сообщением, детали клиенту не отдаются.
func FromError(err error, fallback string) (int, ErrorResponse) {
	switch {
	case errors.Is(err, models.ErrInvalidPlan):
		return http.StatusBadRequest, Error("invalid plan")
	case errors.Is(err, models.ErrInvalidAmount):
		return http.StatusBadRequest, Error("invalid amount")
	case errors.Is(err, models.ErrInvalidDate):
		return http.StatusBadRequest, Error("invalid date, expected format 2006-01-02")
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized, Error("invalid credentials")
	case errors.Is(err, models.ErrPlanLimitExceeded):
		return http.StatusPaymentRequired, Error("plan transaction limit reached, upgrade your plan")
	case errors.Is(err, models.ErrPaymentNotConfirmed):
		return http.StatusPaymentRequired, Error("payment not confirmed")
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, Error("not found")
	case errors.Is(err, models.ErrAlreadyPaid):
		return http.StatusConflict, Error("account already paid")
	case errors.Is(err, models.ErrUserExists):
		return http.StatusConflict, Error("user already exists")
	case errors.Is(err, models.ErrNotSettleable):
		return http.StatusUnprocessableEntity, Error("account type cannot be settled")
	default:
		return http.StatusInternalServerError, Error(fallback)
	}
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "alphanum":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers and letters", err.Field()))
		case "numeric":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}
