package chart

import (
	"context"
	"encoding/json"
	"errors"
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
	"github.com/magabrotheeeer/finance-tracker/internal/services/aggregation"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Chart(ctx context.Context, userUID string) (aggregation.ChartData, error) {
	args := m.Called(ctx, userUID)
	return args.Get(0).(aggregation.ChartData), args.Error(1)
}

func TestChartHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("plain chart payload", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Chart", mock.Anything, "uid-1").Return(aggregation.ChartData{
			Months:   []string{"Feb", "Mar"},
			Income:   []decimal.Decimal{decimal.Zero, decimal.NewFromInt(200)},
			Expenses: []decimal.Decimal{decimal.NewFromInt(50), decimal.Zero},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/dashboard/chart-data", nil)
		req = req.WithContext(middlewarectx.WithUser(req.Context(), "uid-1", "maria", "user"))
		rec := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got map[string][]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, []any{"Feb", "Mar"}, got["months"])
		assert.Equal(t, []any{"0", "200"}, got["income"])
		assert.Equal(t, []any{"50", "0"}, got["expenses"])
	})

	t.Run("service error", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Chart", mock.Anything, "uid-1").Return(aggregation.ChartData{}, errors.New("db down")).Once()

		req := httptest.NewRequest(http.MethodGet, "/dashboard/chart-data", nil)
		req = req.WithContext(middlewarectx.WithUser(req.Context(), "uid-1", "maria", "user"))
		rec := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
