package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ключи маршрутизации доменных событий.
const (
	EventSubscriptionActivated = "subscription.activated"
	EventSubscriptionCancelled = "subscription.cancelled"
	EventAccountSettled        = "account.settled"
)

// Event сообщение, публикуемое в брокер после изменения состояния.
type Event struct {
	Type          string           `json:"type"`
	UserUID       string           `json:"user_uid"`
	PlanID        string           `json:"plan_id,omitempty"`
	AccountID     int              `json:"account_id,omitempty"`
	TransactionID int              `json:"transaction_id,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	OccurredAt    time.Time        `json:"occurred_at"`
}
