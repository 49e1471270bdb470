package paymentprovider

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "shop", "secret", time.Second)
}

func TestClient_Confirm(t *testing.T) {
	conf := Confirmation{
		UserUID:    "u1",
		PlanID:     "mei",
		Price:      decimal.NewFromInt(49),
		Currency:   "BRL",
		PaymentRef: "pay-1",
	}

	tests := []struct {
		name    string
		status  int
		body    string
		ref     string
		want    bool
		wantErr bool
	}{
		{
			name:   "succeeded with full amount",
			status: http.StatusOK,
			body:   `{"id":"pay-1","status":"succeeded","paid":true,"amount":{"value":"49.00","currency":"BRL"},"metadata":{"user_uid":"u1","plan_id":"mei"}}`,
			ref:    "pay-1",
			want:   true,
		},
		{
			name:   "approved status",
			status: http.StatusOK,
			body:   `{"id":"pay-1","status":"approved","amount":{"value":"50.00","currency":"brl"},"metadata":{"user_uid":"u1","plan_id":"mei"}}`,
			ref:    "pay-1",
			want:   true,
		},
		{
			name:   "pending payment",
			status: http.StatusOK,
			body:   `{"id":"pay-1","status":"pending","amount":{"value":"49.00","currency":"BRL"}}`,
			ref:    "pay-1",
			want:   false,
		},
		{
			name:   "amount below price",
			status: http.StatusOK,
			body:   `{"id":"pay-1","status":"succeeded","amount":{"value":"48.99","currency":"BRL"},"metadata":{"user_uid":"u1","plan_id":"mei"}}`,
			ref:    "pay-1",
			want:   false,
		},
		{
			name:   "other currency",
			status: http.StatusOK,
			body:   `{"id":"pay-1","status":"succeeded","amount":{"value":"49.00","currency":"USD"},"metadata":{"user_uid":"u1","plan_id":"mei"}}`,
			ref:    "pay-1",
			want:   false,
		},
		{
			name:   "payment of another user",
			status: http.StatusOK,
			body:   `{"id":"pay-1","status":"succeeded","amount":{"value":"49.00","currency":"BRL"},"metadata":{"user_uid":"u2","plan_id":"mei"}}`,
			ref:    "pay-1",
			want:   false,
		},
		{
			name:   "payment for another plan",
			status: http.StatusOK,
			body:   `{"id":"pay-1","status":"succeeded","amount":{"value":"199.00","currency":"BRL"},"metadata":{"user_uid":"u1","plan_id":"enterprise"}}`,
			ref:    "pay-1",
			want:   false,
		},
		{
			name:   "payment without metadata",
			status: http.StatusOK,
			body:   `{"id":"pay-1","status":"succeeded","amount":{"value":"49.00","currency":"BRL"}}`,
			ref:    "pay-1",
			want:   false,
		},
		{
			name:   "unknown payment",
			status: http.StatusNotFound,
			body:   `{}`,
			ref:    "pay-1",
			want:   false,
		},
		{
			name:   "empty reference",
			status: http.StatusOK,
			body:   `{}`,
			ref:    "",
			want:   false,
		},
		{
			name:    "provider error",
			status:  http.StatusInternalServerError,
			body:    `{}`,
			ref:     "pay-1",
			wantErr: true,
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `not-json`,
			ref:     "pay-1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/payments/pay-1", r.URL.Path)
				wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("shop:secret"))
				assert.Equal(t, wantAuth, r.Header.Get("Authorization"))
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			c := conf
			c.PaymentRef = tt.ref
			got, err := client.Confirm(context.Background(), c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_Confirm_BoundToPayer(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"id":"pay-1","status":"succeeded","amount":{"value":"199.00","currency":"BRL"},`+
			`"metadata":{"user_uid":"alice","plan_id":"enterprise"}}`)
	})
	price := decimal.NewFromInt(199)

	tests := []struct {
		name   string
		userID string
		planID string
		want   bool
	}{
		{name: "payer and paid plan", userID: "alice", planID: "enterprise", want: true},
		{name: "payer with cheaper plan", userID: "alice", planID: "mei", want: false},
		{name: "other user", userID: "bob", planID: "enterprise", want: false},
		{name: "other user with cheaper plan", userID: "carol", planID: "mei", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := client.Confirm(context.Background(), Confirmation{
				UserUID:    tt.userID,
				PlanID:     tt.planID,
				Price:      price,
				Currency:   "BRL",
				PaymentRef: "pay-1",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStub_Confirm(t *testing.T) {
	stub := NewStub(slog.New(slog.NewTextHandler(io.Discard, nil)))

	ok, err := stub.Confirm(context.Background(), Confirmation{PlanID: "mei", PaymentRef: "anything"})
	require.NoError(t, err)
	assert.True(t, ok)
}
