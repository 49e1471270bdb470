package paymentprovider

import "github.com/shopspring/decimal"

// Статусы платежа, означающие успешное списание.
const (
	StatusSucceeded = "succeeded"
	StatusApproved  = "approved"
)

// Ключи metadata, которыми платёж привязывается к пользователю и тарифу.
const (
	MetadataUserUID = "user_uid"
	MetadataPlanID  = "plan_id"
)

// Amount денежная сумма в ответе провайдера.
type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// PaymentResponse ответ провайдера на запрос платежа.
type PaymentResponse struct {
	ID       string            `json:"id"`
	Status   string            `json:"status"`
	Paid     bool              `json:"paid"`
	Amount   Amount            `json:"amount"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Confirmation ожидаемые параметры оплаты тарифа.
type Confirmation struct {
	UserUID    string
	PlanID     string
	Price      decimal.Decimal
	Currency   string
	PaymentRef string
}
