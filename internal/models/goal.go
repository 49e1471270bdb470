package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/finance-tracker/internal/lib/clock"
)

var hundred = decimal.NewFromInt(100)

// FinancialGoal накопительная цель пользователя.
type FinancialGoal struct {
	ID            int             `json:"id"`
	UserUID       string          `json:"user_uid"`
	Title         string          `json:"title"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    *time.Time      `json:"target_date,omitempty"`
	IsCompleted   bool            `json:"is_completed"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Progress возвращает процент выполнения цели в диапазоне [0, 100].
// Для нулевой целевой суммы прогресс равен 0.
func (g FinancialGoal) Progress() decimal.Decimal {
	if g.TargetAmount.IsZero() {
		return decimal.Zero
	}
	p := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred)
	if p.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p.Round(2)
}

// Local возвращает копию цели с датами в поясе Бразилиа.
func (g FinancialGoal) Local() *FinancialGoal {
	g.TargetDate = clock.ToLocalPtr(g.TargetDate)
	g.CreatedAt = clock.ToLocal(g.CreatedAt)
	return &g
}

// GoalView цель вместе с вычисленным прогрессом.
type GoalView struct {
	*FinancialGoal
	Progress decimal.Decimal `json:"progress"`
}

// NewGoalView собирает представление цели для клиента: прогресс и локальные даты.
func NewGoalView(g FinancialGoal) GoalView {
	return GoalView{FinancialGoal: g.Local(), Progress: g.Progress()}
}

// DummyGoal используется для приёма цели из JSON-запроса.
type DummyGoal struct {
	Title         string `json:"title" validate:"required,max=100"`
	TargetAmount  string `json:"target_amount" validate:"required,numeric"`
	CurrentAmount string `json:"current_amount,omitempty" validate:"omitempty,numeric"`
	TargetDate    string `json:"target_date,omitempty"`
}

// DummyContribution взнос в накопительную цель.
type DummyContribution struct {
	Amount string `json:"amount" validate:"required,numeric"`
}
