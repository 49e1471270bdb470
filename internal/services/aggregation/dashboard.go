package aggregation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/finance-tracker/internal/lib/clock"
	"github.com/magabrotheeeer/finance-tracker/internal/models"
	"github.com/magabrotheeeer/finance-tracker/internal/services/subscription"
)

// RecentTransactions количество последних транзакций на дашборде.
const RecentTransactions = 5

// Dashboard сводка текущего месяца для главной страницы.
type Dashboard struct {
	CurrentMonth       string                `json:"current_month"`
	MonthlyIncome      decimal.Decimal       `json:"monthly_income"`
	MonthlyExpenses    decimal.Decimal       `json:"monthly_expenses"`
	MonthlyBalance     decimal.Decimal       `json:"monthly_balance"`
	RecentTransactions []*models.Transaction `json:"recent_transactions"`
	PendingReceivables decimal.Decimal       `json:"pending_receivables"`
	PendingPayables    decimal.Decimal       `json:"pending_payables"`
	Goals              []models.GoalView     `json:"goals"`
	Level              int                   `json:"user_level"`
	LevelProgress      int                   `json:"level_progress"`
	Subscription       subscription.Status   `json:"subscription"`
}

// Dashboard собирает сводку пользователя за текущий месяц.
func (s *Service) Dashboard(ctx context.Context, userUID string) (*Dashboard, error) {
	const op = "services.aggregation.Dashboard"
	now := s.clock.Now()
	local := clock.ToLocal(now)

	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	income, err := s.MonthlySum(ctx, userUID, models.TransactionIncome, local.Month(), local.Year())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	expenses, err := s.MonthlySum(ctx, userUID, models.TransactionExpense, local.Month(), local.Year())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	recent, err := s.repo.ListTransactions(ctx, userUID, RecentTransactions)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i, t := range recent {
		recent[i] = t.Local()
	}

	receivables, err := s.PendingTotal(ctx, userUID, models.AccountReceivable)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	payables, err := s.PendingTotal(ctx, userUID, models.AccountPayable)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	goals, err := s.repo.ListGoals(ctx, userUID, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	views := make([]models.GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, models.NewGoalView(*g))
	}

	count, err := s.TransactionCount(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	level, progress := Level(count)

	return &Dashboard{
		CurrentMonth:       local.Month().String(),
		MonthlyIncome:      income,
		MonthlyExpenses:    expenses,
		MonthlyBalance:     income.Sub(expenses),
		RecentTransactions: recent,
		PendingReceivables: receivables,
		PendingPayables:    payables,
		Goals:              views,
		Level:              level,
		LevelProgress:      progress,
		Subscription:       subscription.Describe(*user, now),
	}, nil
}
