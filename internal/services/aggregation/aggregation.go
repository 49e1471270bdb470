// Package aggregation считает месячные суммы, ряды для графика, итоги по счетам
// и собирает данные дашборда. Календарные месяцы берутся по времени Бразилиа.
package aggregation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/finance-tracker/internal/cache"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/clock"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/month"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

// ChartMonths количество месяцев в графике дашборда.
const ChartMonths = 6

// MaxLevel максимальный уровень пользователя.
const MaxLevel = 10

// Repository методы хранилища, нужные для агрегации.
type Repository interface {
	SumTransactions(ctx context.Context, userUID, txType string, from, to time.Time) (decimal.Decimal, error)
	SumPendingAccounts(ctx context.Context, userUID, accountType string) (decimal.Decimal, error)
	CountTransactions(ctx context.Context, userUID string) (int, error)
	ListTransactions(ctx context.Context, userUID string, limit int) ([]*models.Transaction, error)
	ListGoals(ctx context.Context, userUID string, onlyOpen bool) ([]*models.FinancialGoal, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Cache описывает методы для кэширования рядов графика.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// MonthPoint доходы и расходы за один месяц ряда.
type MonthPoint struct {
	Label    string          `json:"label"`
	Month    int             `json:"month"`
	Year     int             `json:"year"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// ChartData ряд в виде параллельных массивов для отрисовки графика.
type ChartData struct {
	Months   []string          `json:"months"`
	Income   []decimal.Decimal `json:"income"`
	Expenses []decimal.Decimal `json:"expenses"`
}

// Service агрегирует финансовые данные пользователя.
type Service struct {
	repo     Repository
	cache    Cache
	clock    clock.Clock
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewAggregationService создаёт сервис агрегации.
func NewAggregationService(repo Repository, c Cache, clk clock.Clock, cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    c,
		clock:    clk,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// MonthlySum возвращает сумму транзакций типа txType за календарный месяц.
// Для месяца без транзакций возвращается 0.
func (s *Service) MonthlySum(ctx context.Context, userUID, txType string, m time.Month, year int) (decimal.Decimal, error) {
	const op = "services.aggregation.MonthlySum"
	from, to := month.Month{Year: year, Month: m}.Bounds(clock.Brasilia)
	sum, err := s.repo.SumTransactions(ctx, userUID, txType, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}
	return sum, nil
}

// RollingSeries возвращает доходы и расходы за monthsBack календарных месяцев,
// заканчивая месяцем anchor. Порядок от старого месяца к новому.
func (s *Service) RollingSeries(ctx context.Context, userUID string, monthsBack int, anchor time.Time) ([]MonthPoint, error) {
	const op = "services.aggregation.RollingSeries"
	series := month.Series(clock.ToLocal(anchor), monthsBack)
	points := make([]MonthPoint, 0, len(series))
	for _, m := range series {
		income, err := s.MonthlySum(ctx, userUID, models.TransactionIncome, m.Month, m.Year)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		expenses, err := s.MonthlySum(ctx, userUID, models.TransactionExpense, m.Month, m.Year)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		points = append(points, MonthPoint{
			Label:    m.Label(),
			Month:    int(m.Month),
			Year:     m.Year,
			Income:   income,
			Expenses: expenses,
		})
	}
	return points, nil
}

// Chart возвращает ряд за последние ChartMonths месяцев. Результат кэшируется
// по пользователю и текущему месяцу, ошибки кэша только логируются.
func (s *Service) Chart(ctx context.Context, userUID string) (ChartData, error) {
	const op = "services.aggregation.Chart"
	now := s.clock.Now()
	key := cache.ChartKey(userUID, month.Of(clock.ToLocal(now)).Key())

	var cached ChartData
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read chart from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	points, err := s.RollingSeries(ctx, userUID, ChartMonths, now)
	if err != nil {
		return ChartData{}, fmt.Errorf("%s: %w", op, err)
	}
	data := ChartData{
		Months:   make([]string, 0, len(points)),
		Income:   make([]decimal.Decimal, 0, len(points)),
		Expenses: make([]decimal.Decimal, 0, len(points)),
	}
	for _, p := range points {
		data.Months = append(data.Months, p.Label)
		data.Income = append(data.Income, p.Income)
		data.Expenses = append(data.Expenses, p.Expenses)
	}

	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache chart", slog.String("key", key), sl.Err(err))
	}
	return data, nil
}

// PendingTotal возвращает сумму ожидающих оплаты счетов типа accountType.
// Оплаченные и просроченные счета не учитываются.
func (s *Service) PendingTotal(ctx context.Context, userUID, accountType string) (decimal.Decimal, error) {
	const op = "services.aggregation.PendingTotal"
	sum, err := s.repo.SumPendingAccounts(ctx, userUID, accountType)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}
	return sum, nil
}

// TransactionCount возвращает количество транзакций пользователя за всё время.
func (s *Service) TransactionCount(ctx context.Context, userUID string) (int, error) {
	const op = "services.aggregation.TransactionCount"
	n, err := s.repo.CountTransactions(ctx, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// Level возвращает уровень пользователя и прогресс до следующего уровня в процентах.
func Level(count int) (level, progress int) {
	if count < 0 {
		count = 0
	}
	level = min(MaxLevel, count/10+1)
	progress = (count % 10) * 10
	return level, progress
}
