package middlewarectx

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/finance-tracker/internal/lib/jwt"
)

type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(token string) (*jwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.CustomClaims), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		setupMocks     func(*MockTokenValidator)
		expectedStatus int
		expectedCtx    map[Key]interface{}
	}{
		{
			name:       "success - valid token",
			authHeader: "Bearer valid_token_123",
			setupMocks: func(v *MockTokenValidator) {
				v.On("ValidateToken", "valid_token_123").Return(&jwt.CustomClaims{
					Username: "testuser",
					Role:     "user",
					UserUID:  "user123",
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedCtx: map[Key]interface{}{
				User:    "testuser",
				Role:    "user",
				UserUID: "user123",
			},
		},
		{
			name:           "missing authorization header",
			setupMocks:     func(*MockTokenValidator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			setupMocks:     func(*MockTokenValidator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer broken",
			setupMocks: func(v *MockTokenValidator) {
				v.On("ValidateToken", "broken").Return(nil, errors.New("token is expired")).Once()
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := new(MockTokenValidator)
			tt.setupMocks(validator)

			var nextCalled bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				for k, v := range tt.expectedCtx {
					assert.Equal(t, v, r.Context().Value(k))
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			JWTMiddleware(validator, newNoopLogger())(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectedStatus == http.StatusOK, nextCalled)
			validator.AssertExpectations(t)
		})
	}
}

func TestUserUIDFrom(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := UserUIDFrom(req.Context())
	assert.False(t, ok)

	ctx := WithUser(req.Context(), "uid-1", "alice", "user")
	uid, ok := UserUIDFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, "uid-1", uid)
	assert.Equal(t, "alice", ctx.Value(User))
}
