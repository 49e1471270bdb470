package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/finance-tracker/internal/lib/clock"
)

// Типы транзакций.
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Transaction представляет доход или расход пользователя.
// Date: экономическая дата операции, отличная от CreatedAt. Хранится в UTC.
type Transaction struct {
	ID             int             `json:"id"`
	UserUID        string          `json:"user_uid"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	Type           string          `json:"transaction_type"`
	Category       string          `json:"category"`
	Date           time.Time       `json:"date"`
	CreatedAt      time.Time       `json:"created_at"`
	IsRecurring    bool            `json:"is_recurring"`
	RecurrenceType string          `json:"recurrence_type,omitempty"` // monthly, weekly, yearly
	AccountID      *int            `json:"account_id,omitempty"`      // заполнено, если транзакция появилась при оплате счёта
}

// Local возвращает копию транзакции с датами в поясе Бразилиа для ответа клиенту.
func (t Transaction) Local() *Transaction {
	t.Date = clock.ToLocal(t.Date)
	t.CreatedAt = clock.ToLocal(t.CreatedAt)
	return &t
}

// DummyTransaction используется для приёма транзакции из JSON-запроса.
// Сумма и дата приходят строками и разбираются в сервисе.
type DummyTransaction struct {
	Description    string `json:"description" validate:"required,max=200"`
	Amount         string `json:"amount" validate:"required,numeric"`
	Type           string `json:"transaction_type" validate:"required,oneof=income expense"`
	Category       string `json:"category" validate:"max=100"`
	Date           string `json:"date,omitempty"` // локальная дата в формате 2006-01-02
	IsRecurring    bool   `json:"is_recurring"`
	RecurrenceType string `json:"recurrence_type,omitempty" validate:"omitempty,oneof=monthly weekly yearly"`
}

// TransactionList результат просмотра движения денежных средств.
// LimitReached выставляется, когда количество транзакций достигло лимита плана:
// просмотр при этом остаётся доступным.
type TransactionList struct {
	Transactions  []*Transaction  `json:"transactions"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Balance       decimal.Decimal `json:"current_balance"`
	LimitReached  bool            `json:"limit_reached"`
	Limit         int             `json:"transactions_limit"`
}
