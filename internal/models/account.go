package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/finance-tracker/internal/lib/clock"
)

// Типы счетов.
const (
	AccountPayable    = "payable"
	AccountReceivable = "receivable"
	AccountBank       = "bank"
)

// Статусы счетов.
const (
	AccountPending = "pending"
	AccountPaid    = "paid"
	AccountOverdue = "overdue"
)

// SettlementCategory категория транзакций, созданных оплатой счёта.
const SettlementCategory = "pagamentos"

// Account счёт к оплате, к получению или банковский счёт пользователя.
type Account struct {
	ID        int             `json:"id"`
	UserUID   string          `json:"user_uid"`
	Name      string          `json:"name"`
	Type      string          `json:"account_type"`
	Amount    decimal.Decimal `json:"amount"`
	DueDate   *time.Time      `json:"due_date,omitempty"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// IsOverdue сообщает, просрочен ли ожидающий оплаты счёт на момент now.
// Сохранённый статус при этом не меняется.
func (a Account) IsOverdue(now time.Time) bool {
	if a.Status == AccountOverdue {
		return true
	}
	return a.Status == AccountPending && a.DueDate != nil && now.After(*a.DueDate)
}

// Local возвращает копию счёта с датами в поясе Бразилиа.
func (a Account) Local() *Account {
	a.DueDate = clock.ToLocalPtr(a.DueDate)
	a.CreatedAt = clock.ToLocal(a.CreatedAt)
	return &a
}

// SettlementType возвращает тип транзакции, которую порождает оплата счёта.
func (a Account) SettlementType() (string, bool) {
	switch a.Type {
	case AccountReceivable:
		return TransactionIncome, true
	case AccountPayable:
		return TransactionExpense, true
	default:
		return "", false
	}
}

// DummyAccount используется для приёма счёта из JSON-запроса.
type DummyAccount struct {
	Name    string `json:"name" validate:"required,max=100"`
	Type    string `json:"account_type" validate:"required,oneof=payable receivable bank"`
	Amount  string `json:"amount" validate:"required,numeric"`
	DueDate string `json:"due_date,omitempty"` // локальная дата в формате 2006-01-02
}

// AccountView счёт вместе с признаком просрочки, вычисленным при чтении.
type AccountView struct {
	*Account
	Overdue bool `json:"overdue"`
}

// AccountsSummary сгруппированные счета пользователя и суммы ожидающих оплаты.
type AccountsSummary struct {
	Receivables      []AccountView   `json:"receivables"`
	Payables         []AccountView   `json:"payables"`
	Bank             []AccountView   `json:"bank"`
	TotalReceivables decimal.Decimal `json:"total_receivables"`
	TotalPayables    decimal.Decimal `json:"total_payables"`
}
