// Package finance реализует операции с транзакциями, счетами и финансовыми целями
// с учётом лимитов тарифного плана.
package finance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/finance-tracker/internal/lib/clock"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/finance-tracker/internal/models"
	"github.com/magabrotheeeer/finance-tracker/internal/plans"
)

// Repository методы хранилища для финансовых операций.
type Repository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	CountTransactions(ctx context.Context, userUID string) (int, error)
	CreateTransaction(ctx context.Context, t models.Transaction) (int, error)
	ListTransactions(ctx context.Context, userUID string, limit int) ([]*models.Transaction, error)
	CreateAccount(ctx context.Context, a models.Account) (int, error)
	ListAccounts(ctx context.Context, userUID string) ([]*models.Account, error)
	SettleAccount(ctx context.Context, userUID string, accountID int,
		build func(a models.Account) (models.Transaction, error)) (*models.Transaction, error)
	CreateGoal(ctx context.Context, g models.FinancialGoal) (int, error)
	ListGoals(ctx context.Context, userUID string, onlyOpen bool) ([]*models.FinancialGoal, error)
	AddToGoal(ctx context.Context, userUID string, goalID int, amount decimal.Decimal) (*models.FinancialGoal, error)
}

// Cache сбрасывает кэшированные ряды графика пользователя.
type Cache interface {
	InvalidateUser(ctx context.Context, userUID string) error
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// GateResult результат проверки лимита транзакций.
type GateResult struct {
	Features     plans.Features
	Count        int
	LimitReached bool
}

// Service выполняет финансовые операции пользователя.
type Service struct {
	repo      Repository
	cache     Cache
	publisher Publisher
	clock     clock.Clock
	log       *slog.Logger
}

// NewFinanceService создаёт сервис финансовых операций.
func NewFinanceService(repo Repository, c Cache, publisher Publisher, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     c,
		publisher: publisher,
		clock:     clk,
		log:       log,
	}
}

// Gate сравнивает число транзакций пользователя с лимитом его плана.
func (s *Service) Gate(ctx context.Context, userUID string) (GateResult, error) {
	const op = "services.finance.Gate"
	u, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return GateResult{}, fmt.Errorf("%s: %w", op, err)
	}
	count, err := s.repo.CountTransactions(ctx, userUID)
	if err != nil {
		return GateResult{}, fmt.Errorf("%s: %w", op, err)
	}
	f := plans.FeaturesOf(u.SubscriptionPlan)
	return GateResult{
		Features:     f,
		Count:        count,
		LimitReached: f.LimitReached(count),
	}, nil
}

// AddTransaction создаёт транзакцию, если лимит плана не исчерпан.
// Иначе возвращает models.ErrPlanLimitExceeded и ничего не сохраняет.
func (s *Service) AddTransaction(ctx context.Context, userUID string, req models.DummyTransaction) (*models.Transaction, error) {
	const op = "services.finance.AddTransaction"
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	date, err := s.dateOrNow(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	recurrence := ""
	if req.IsRecurring {
		recurrence = req.RecurrenceType
	}

	gate, err := s.Gate(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if gate.LimitReached {
		s.log.Info("transaction limit reached",
			slog.String("user_uid", userUID),
			slog.Int("count", gate.Count),
			slog.Int("limit", gate.Features.TransactionsLimit),
		)
		return nil, fmt.Errorf("%s: %w", op, models.ErrPlanLimitExceeded)
	}

	t := models.Transaction{
		UserUID:        userUID,
		Description:    req.Description,
		Amount:         amount,
		Type:           req.Type,
		Category:       req.Category,
		Date:           date,
		IsRecurring:    req.IsRecurring,
		RecurrenceType: recurrence,
	}
	id, err := s.repo.CreateTransaction(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	t.ID = id
	s.log.Info("created new transaction", slog.Int("id", id))

	s.invalidateChart(ctx, userUID)
	return t.Local(), nil
}

// ListTransactions возвращает все транзакции пользователя с итогами.
// Исчерпанный лимит только отмечается флагом LimitReached.
func (s *Service) ListTransactions(ctx context.Context, userUID string) (*models.TransactionList, error) {
	const op = "services.finance.ListTransactions"
	gate, err := s.Gate(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := s.repo.ListTransactions(ctx, userUID, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	income, expenses := decimal.Zero, decimal.Zero
	for i, t := range items {
		items[i] = t.Local()
		switch t.Type {
		case models.TransactionIncome:
			income = income.Add(t.Amount)
		case models.TransactionExpense:
			expenses = expenses.Add(t.Amount)
		}
	}

	return &models.TransactionList{
		Transactions:  items,
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       income.Sub(expenses),
		LimitReached:  gate.LimitReached,
		Limit:         gate.Features.TransactionsLimit,
	}, nil
}

func (s *Service) invalidateChart(ctx context.Context, userUID string) {
	if err := s.cache.InvalidateUser(ctx, userUID); err != nil {
		s.log.Warn("failed to invalidate chart cache", slog.String("user_uid", userUID), sl.Err(err))
	}
}

func (s *Service) publish(ctx context.Context, ev models.Event) {
	if err := s.publisher.Publish(ctx, ev.Type, ev); err != nil {
		s.log.Warn("failed to publish event", slog.String("event", ev.Type), sl.Err(err))
	}
}

// dateOrNow разбирает локальную дату клиента. Пустая строка означает текущий момент.
func (s *Service) dateOrNow(raw string) (time.Time, error) {
	if raw == "" {
		return clock.ToUTC(s.clock.Now()), nil
	}
	return parseDate(raw)
}

func parseDate(raw string) (time.Time, error) {
	d, err := clock.ParseLocalDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", models.ErrInvalidDate, raw)
	}
	return d, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseAmount разбирает неотрицательную сумму и округляет её до копеек.
func parseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", models.ErrInvalidAmount, raw)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q", models.ErrInvalidAmount, raw)
	}
	return d.Round(2), nil
}
