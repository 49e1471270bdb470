package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

const accountColumns = `id, user_uid, name, account_type, amount, due_date, status, created_at`

// CreateAccount вставляет новый счёт и возвращает его ID.
func (s *Storage) CreateAccount(ctx context.Context, a models.Account) (int, error) {
	const op = "storage.CreateAccount"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	query := `INSERT INTO accounts (user_uid, name, account_type, amount, due_date, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		a.UserUID, a.Name, a.Type, a.Amount, nullTime(a.DueDate), a.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListAccounts возвращает все счета пользователя, ближайшие сроки первыми.
func (s *Storage) ListAccounts(ctx context.Context, userUID string) ([]*models.Account, error) {
	const op = "storage.ListAccounts"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + accountColumns + `
			  FROM accounts
			  WHERE user_uid = $1
			  ORDER BY due_date ASC NULLS LAST, id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SumPendingAccounts возвращает сумму ожидающих оплаты счетов указанного типа.
func (s *Storage) SumPendingAccounts(ctx context.Context, userUID, accountType string) (decimal.Decimal, error) {
	const op = "storage.SumPendingAccounts"
	if err := checkCtx(ctx, op); err != nil {
		return decimal.Zero, err
	}

	query := `SELECT COALESCE(SUM(amount), 0)
			  FROM accounts
			  WHERE user_uid = $1 AND account_type = $2 AND status = $3`
	var sum decimal.Decimal
	if err := s.DB.QueryRowContext(ctx, query, userUID, accountType, models.AccountPending).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}
	return sum, nil
}

// SettleAccount помечает счёт оплаченным и вставляет транзакцию, которую строит build,
// в одной транзакции БД. Строка счёта блокируется до фиксации.
func (s *Storage) SettleAccount(ctx context.Context, userUID string, accountID int,
	build func(a models.Account) (models.Transaction, error)) (*models.Transaction, error) {
	const op = "storage.SettleAccount"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var created models.Transaction
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query := `SELECT ` + accountColumns + `
				  FROM accounts
				  WHERE id = $1 AND user_uid = $2
				  FOR UPDATE`
		a, err := scanAccount(tx.QueryRowContext(ctx, query, accountID, userUID))
		if err != nil {
			return notFound(err)
		}
		if a.Status == models.AccountPaid {
			return models.ErrAlreadyPaid
		}

		created, err = build(*a)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `UPDATE accounts SET status = $1 WHERE id = $2`,
			models.AccountPaid, accountID); err != nil {
			return err
		}
		return insertTx(ctx, tx, &created)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*models.Account, error) {
	var a models.Account
	var due sql.NullTime
	if err := row.Scan(&a.ID, &a.UserUID, &a.Name, &a.Type, &a.Amount, &due, &a.Status, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.DueDate = timePtr(due)
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}
