package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	err error
}

func (f fakePublisher) Publish(context.Context, string, any) error {
	return f.err
}

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/accounts/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/accounts/1", "/accounts/2"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusNotFound, rr.Code)
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/accounts/{id}", "404"))
	assert.Equal(t, float64(2), got)
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestCountingPublisher(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	ok := m.WrapPublisher(fakePublisher{})
	require.NoError(t, ok.Publish(context.Background(), "account.settled", nil))
	require.NoError(t, ok.Publish(context.Background(), "account.settled", nil))

	failing := m.WrapPublisher(fakePublisher{err: errors.New("channel closed")})
	require.Error(t, failing.Publish(context.Background(), "subscription.activated", nil))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.eventsPublished.WithLabelValues("account.settled", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.eventsPublished.WithLabelValues("subscription.activated", "error")))
}
