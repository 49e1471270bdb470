package finance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

// AddAccount создаёт счёт в статусе pending.
func (s *Service) AddAccount(ctx context.Context, userUID string, req models.DummyAccount) (*models.Account, error) {
	const op = "services.finance.AddAccount"
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	due, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a := models.Account{
		UserUID: userUID,
		Name:    req.Name,
		Type:    req.Type,
		Amount:  amount,
		DueDate: due,
		Status:  models.AccountPending,
	}
	id, err := s.repo.CreateAccount(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.ID = id
	s.log.Info("created new account", slog.Int("id", id), slog.String("type", a.Type))
	return a.Local(), nil
}

// ListAccounts раскладывает счета по типам и считает суммы ожидающих оплаты.
// Просрочка вычисляется на момент чтения и в хранилище не записывается.
func (s *Service) ListAccounts(ctx context.Context, userUID string) (*models.AccountsSummary, error) {
	const op = "services.finance.ListAccounts"
	items, err := s.repo.ListAccounts(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.clock.Now()
	summary := &models.AccountsSummary{
		Receivables:      make([]models.AccountView, 0),
		Payables:         make([]models.AccountView, 0),
		Bank:             make([]models.AccountView, 0),
		TotalReceivables: decimal.Zero,
		TotalPayables:    decimal.Zero,
	}
	for _, a := range items {
		view := models.AccountView{Account: a.Local(), Overdue: a.IsOverdue(now)}
		pending := a.Status == models.AccountPending
		switch a.Type {
		case models.AccountReceivable:
			summary.Receivables = append(summary.Receivables, view)
			if pending {
				summary.TotalReceivables = summary.TotalReceivables.Add(a.Amount)
			}
		case models.AccountPayable:
			summary.Payables = append(summary.Payables, view)
			if pending {
				summary.TotalPayables = summary.TotalPayables.Add(a.Amount)
			}
		default:
			summary.Bank = append(summary.Bank, view)
		}
	}
	return summary, nil
}

// MarkPaid помечает счёт оплаченным и создаёт соответствующую транзакцию:
// доход для дебиторской задолженности, расход для кредиторской.
// Обе записи сохраняются атомарно. Лимит плана здесь не проверяется.
func (s *Service) MarkPaid(ctx context.Context, userUID string, accountID int) (*models.Transaction, error) {
	const op = "services.finance.MarkPaid"
	now := s.clock.Now().UTC()

	t, err := s.repo.SettleAccount(ctx, userUID, accountID, func(a models.Account) (models.Transaction, error) {
		return settlementTransaction(a, now)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("account settled", slog.Int("account_id", accountID), slog.Int("transaction_id", t.ID))

	s.invalidateChart(ctx, userUID)
	amount := t.Amount
	s.publish(ctx, models.Event{
		Type:          models.EventAccountSettled,
		UserUID:       userUID,
		AccountID:     accountID,
		TransactionID: t.ID,
		Amount:        &amount,
		OccurredAt:    now,
	})
	return t.Local(), nil
}

func settlementTransaction(a models.Account, now time.Time) (models.Transaction, error) {
	txType, ok := a.SettlementType()
	if !ok {
		return models.Transaction{}, models.ErrNotSettleable
	}
	id := a.ID
	return models.Transaction{
		UserUID:     a.UserUID,
		Description: "Pagamento: " + a.Name,
		Amount:      a.Amount,
		Type:        txType,
		Category:    models.SettlementCategory,
		Date:        now,
		AccountID:   &id,
	}, nil
}
