// Package paymentprovider подтверждает оплату тарифа перед активацией подписки.
package paymentprovider

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Confirmer проверяет, что платёж с данным идентификатором действительно прошёл.
type Confirmer interface {
	Confirm(ctx context.Context, c Confirmation) (bool, error)
}

// Client обращается к HTTP API платёжного провайдера.
type Client struct {
	shopID     string
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент API провайдера.
func NewClient(apiURL, shopID, secretKey string, timeout time.Duration) *Client {
	return &Client{
		shopID:     shopID,
		secretKey:  secretKey,
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, nil)
	if err != nil {
		return nil, err
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.shopID + ":" + c.secretKey))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// GetPayment запрашивает платёж по идентификатору. Для неизвестного платежа возвращает nil без ошибки.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*PaymentResponse, error) {
	const op = "paymentprovider.GetPayment"
	req, err := c.newRequest(ctx, http.MethodGet, "/payments/"+url.PathEscape(paymentID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w", op, errors.New("unexpected status: "+resp.Status))
	}

	var payment PaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &payment, nil
}

// Confirm подтверждает оплату, если платёж прошёл на сумму не меньше цены тарифа в той же валюте
// и в metadata платежа указаны тот же пользователь и тот же тариф.
func (c *Client) Confirm(ctx context.Context, conf Confirmation) (bool, error) {
	const op = "paymentprovider.Confirm"
	if conf.PaymentRef == "" {
		return false, nil
	}

	payment, err := c.GetPayment(ctx, conf.PaymentRef)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if payment == nil {
		return false, nil
	}
	if payment.Status != StatusSucceeded && payment.Status != StatusApproved {
		return false, nil
	}
	if payment.Metadata[MetadataUserUID] != conf.UserUID || payment.Metadata[MetadataPlanID] != conf.PlanID {
		return false, nil
	}
	if !strings.EqualFold(payment.Amount.Currency, conf.Currency) {
		return false, nil
	}
	paid, err := decimal.NewFromString(payment.Amount.Value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return paid.GreaterThanOrEqual(conf.Price), nil
}

// Stub подтверждает любой платёж. Используется, пока провайдер не подключён.
type Stub struct {
	log *slog.Logger
}

// NewStub создаёт заглушку подтверждения оплаты.
func NewStub(log *slog.Logger) *Stub {
	return &Stub{log: log}
}

// Confirm всегда подтверждает платёж и пишет предупреждение в лог.
func (s *Stub) Confirm(_ context.Context, conf Confirmation) (bool, error) {
	s.log.Warn("payment confirmed without provider check",
		slog.String("user_uid", conf.UserUID),
		slog.String("plan", conf.PlanID),
		slog.String("payment_ref", conf.PaymentRef),
	)
	return true, nil
}
