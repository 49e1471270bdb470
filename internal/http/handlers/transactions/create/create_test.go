package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
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

func (m *ServiceMock) AddTransaction(ctx context.Context, userUID string, req models.DummyTransaction) (*models.Transaction, error) {
	args := m.Called(ctx, userUID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	valid := models.DummyTransaction{Description: "Salário", Amount: "1500.50", Type: "income", Category: "salario", Date: "2025-03-05"}

	tests := []struct {
		name       string
		body       any
		userUID    string
		mockTx     *models.Transaction
		mockErr    error
		callSvc    bool
		wantStatus int
		wantError  string
	}{
		{
			name:       "created",
			body:       valid,
			userUID:    "uid-1",
			mockTx:     &models.Transaction{ID: 10, UserUID: "uid-1", Amount: decimal.RequireFromString("1500.50"), Type: "income"},
			callSvc:    true,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "plan limit reached",
			body:       valid,
			userUID:    "uid-1",
			mockErr:    fmt.Errorf("services.finance.AddTransaction: %w", models.ErrPlanLimitExceeded),
			callSvc:    true,
			wantStatus: http.StatusPaymentRequired,
			wantError:  "plan transaction limit reached, upgrade your plan",
		},
		{
			name:       "bad date",
			body:       valid,
			userUID:    "uid-1",
			mockErr:    models.ErrInvalidDate,
			callSvc:    true,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid date, expected format 2006-01-02",
		},
		{
			name:       "storage error",
			body:       valid,
			userUID:    "uid-1",
			mockErr:    errors.New("db down"),
			callSvc:    true,
			wantStatus: http.StatusInternalServerError,
			wantError:  "could not create transaction",
		},
		{
			name:       "wrong transaction type",
			body:       models.DummyTransaction{Description: "x", Amount: "1", Type: "gift"},
			userUID:    "uid-1",
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "field Type must be one of: income expense",
		},
		{
			name:       "invalid json",
			body:       "{",
			userUID:    "uid-1",
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "no user",
			body:       valid,
			wantStatus: http.StatusUnauthorized,
			wantError:  "unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.callSvc {
				svc.On("AddTransaction", mock.Anything, tt.userUID, tt.body.(models.DummyTransaction)).Return(tt.mockTx, tt.mockErr).Once()
			}

			var raw []byte
			if s, ok := tt.body.(string); ok {
				raw = []byte(s)
			} else {
				var err error
				raw, err = json.Marshal(tt.body)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(raw))
			if tt.userUID != "" {
				req = req.WithContext(middlewarectx.WithUser(req.Context(), tt.userUID, "maria", "user"))
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
				assert.Equal(t, float64(10), data["id"])
			}
			svc.AssertExpectations(t)
		})
	}
}
