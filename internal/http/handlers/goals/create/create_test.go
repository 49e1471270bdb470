package create

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) AddGoal(ctx context.Context, userUID string, req models.DummyGoal) (*models.FinancialGoal, error) {
	args := m.Called(ctx, userUID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FinancialGoal), args.Error(1)
}

func TestCreateGoalHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	const body = `{"title":"Reserva","target_amount":"10000","current_amount":"2500"}`
	valid := models.DummyGoal{Title: "Reserva", TargetAmount: "10000", CurrentAmount: "2500"}

	tests := []struct {
		name       string
		body       string
		withUser   bool
		callSvc    bool
		mockGoal   *models.FinancialGoal
		mockErr    error
		wantStatus int
		wantError  string
	}{
		{
			name:     "created",
			body:     body,
			withUser: true,
			callSvc:  true,
			mockGoal: &models.FinancialGoal{
				ID: 5, UserUID: "uid-1", Title: "Reserva",
				TargetAmount: decimal.NewFromInt(10000), CurrentAmount: decimal.NewFromInt(2500),
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "negative amount",
			body:       body,
			withUser:   true,
			callSvc:    true,
			mockErr:    models.ErrInvalidAmount,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid amount",
		},
		{
			name:       "service error",
			body:       body,
			withUser:   true,
			callSvc:    true,
			mockErr:    errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "could not create goal",
		},
		{
			name:       "invalid json",
			body:       `[]`,
			withUser:   true,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "missing title",
			body:       `{"target_amount":"10000"}`,
			withUser:   true,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "field Title is a required field",
		},
		{
			name:       "missing user",
			body:       body,
			wantStatus: http.StatusUnauthorized,
			wantError:  "unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.callSvc {
				svc.On("AddGoal", mock.Anything, "uid-1", valid).Return(tt.mockGoal, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/goals", strings.NewReader(tt.body))
			if tt.withUser {
				req = req.WithContext(middlewarectx.WithUser(req.Context(), "uid-1", "maria", "user"))
			}
			rec := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				data := got["data"].(map[string]any)
				assert.Equal(t, float64(5), data["id"])
				assert.Equal(t, "10000", data["target_amount"])
				assert.Equal(t, false, data["is_completed"])
			}
			svc.AssertExpectations(t)
		})
	}
}
