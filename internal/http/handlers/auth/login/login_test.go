package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		requestBody    any
		mockToken      string
		mockErr        error
		callService    bool
		wantStatusCode int
		wantStatus     string
		wantError      string
		wantToken      string
	}{
		{
			name:           "success",
			requestBody:    models.DummyLogin{Username: "user1", Password: "password123"},
			mockToken:      "jwt-token",
			callService:    true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
			wantToken:      "jwt-token",
		},
		{
			name:           "invalid json",
			requestBody:    "{bad json",
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
			wantError:      "invalid request body",
		},
		{
			name:           "validation error - missing password",
			requestBody:    models.DummyLogin{Username: "user1"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantStatus:     "Error",
			wantError:      "field Password is a required field",
		},
		{
			name:           "invalid credentials",
			requestBody:    models.DummyLogin{Username: "user1", Password: "wrong"},
			mockErr:        models.ErrInvalidCredentials,
			callService:    true,
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     "Error",
			wantError:      "invalid credentials",
		},
		{
			name:           "storage error",
			requestBody:    models.DummyLogin{Username: "user1", Password: "password123"},
			mockErr:        errors.New("db down"),
			callService:    true,
			wantStatusCode: http.StatusInternalServerError,
			wantStatus:     "Error",
			wantError:      "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			handler := New(logger, authMock)

			if tt.callService {
				in := tt.requestBody.(models.DummyLogin)
				authMock.On("Login", mock.Anything, in.Username, in.Password).Return(tt.mockToken, tt.mockErr).Once()
			}

			var body []byte
			switch v := tt.requestBody.(type) {
			case string:
				body = []byte(v)
			default:
				var err error
				body, err = json.Marshal(v)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantStatus, got["status"])
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
			}
			if tt.wantToken != "" {
				data, ok := got["data"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, tt.wantToken, data["token"])
			}
			authMock.AssertExpectations(t)
		})
	}
}
