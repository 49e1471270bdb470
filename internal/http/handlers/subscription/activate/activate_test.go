package activate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Activate(ctx context.Context, userUID, planID, paymentRef string) (*models.User, error) {
	args := m.Called(ctx, userUID, planID, paymentRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestActivateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		plan       string
		body       any
		mockUser   *models.User
		mockErr    error
		callSvc    bool
		wantStatus int
	}{
		{
			name:       "activated",
			plan:       models.PlanProfessional,
			body:       Request{PaymentRef: "pay-1"},
			mockUser:   &models.User{UUID: "uid-1", SubscriptionPlan: models.PlanProfessional, SubscriptionStatus: models.StatusActive},
			callSvc:    true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "free plan",
			plan:       models.PlanTrial,
			body:       Request{PaymentRef: "pay-1"},
			mockErr:    fmt.Errorf("services.subscription.Activate: %w", models.ErrInvalidPlan),
			callSvc:    true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "payment not confirmed",
			plan:       models.PlanMEI,
			body:       Request{PaymentRef: "pay-2"},
			mockErr:    models.ErrPaymentNotConfirmed,
			callSvc:    true,
			wantStatus: http.StatusPaymentRequired,
		},
		{
			name:       "missing payment ref",
			plan:       models.PlanMEI,
			body:       Request{},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "invalid json",
			plan:       models.PlanMEI,
			body:       "{",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.callSvc {
				svc.On("Activate", mock.Anything, "uid-1", tt.plan, tt.body.(Request).PaymentRef).Return(tt.mockUser, tt.mockErr).Once()
			}

			var raw []byte
			if s, ok := tt.body.(string); ok {
				raw = []byte(s)
			} else {
				var err error
				raw, err = json.Marshal(tt.body)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/subscription/activate/"+tt.plan, bytes.NewReader(raw))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("plan", tt.plan)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			req = req.WithContext(middlewarectx.WithUser(ctx, "uid-1", "maria", "user"))

			rec := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.mockUser != nil {
				var got map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				data := got["data"].(map[string]any)
				assert.Equal(t, models.StatusActive, data["subscription_status"])
				_, leaked := data["password_hash"]
				assert.False(t, leaked)
			}
			svc.AssertExpectations(t)
		})
	}
}
