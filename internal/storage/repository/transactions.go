package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

const transactionColumns = `id, user_uid, description, amount, transaction_type, category, date,
			      created_at, is_recurring, recurrence_type, account_id`

const insertTransaction = `INSERT INTO transactions (user_uid, description, amount, transaction_type,
			      category, date, is_recurring, recurrence_type, account_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id, created_at`

// queryer общий интерфейс *sql.DB и *sql.Tx для вставки транзакции.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateTransaction вставляет новую транзакцию и возвращает её ID.
func (s *Storage) CreateTransaction(ctx context.Context, t models.Transaction) (int, error) {
	const op = "storage.CreateTransaction"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	if err := insertTx(ctx, s.DB, &t); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return t.ID, nil
}

func insertTx(ctx context.Context, q queryer, t *models.Transaction) error {
	var accountID sql.NullInt64
	if t.AccountID != nil {
		accountID = sql.NullInt64{Int64: int64(*t.AccountID), Valid: true}
	}
	err := q.QueryRowContext(ctx, insertTransaction,
		t.UserUID, t.Description, t.Amount, t.Type, t.Category, t.Date.UTC(),
		t.IsRecurring, t.RecurrenceType, accountID).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return nil
}

// ListTransactions возвращает транзакции пользователя от новых к старым.
// limit <= 0 означает выборку без ограничения.
func (s *Storage) ListTransactions(ctx context.Context, userUID string, limit int) ([]*models.Transaction, error) {
	const op = "storage.ListTransactions"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var lim any
	if limit > 0 {
		lim = limit
	}
	query := `SELECT ` + transactionColumns + `
			  FROM transactions
			  WHERE user_uid = $1
			  ORDER BY date DESC, id DESC
			  LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, userUID, lim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Transaction, 0)
	for rows.Next() {
		var item models.Transaction
		var accountID sql.NullInt64
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Description, &item.Amount, &item.Type,
			&item.Category, &item.Date, &item.CreatedAt, &item.IsRecurring, &item.RecurrenceType,
			&accountID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Date = item.Date.UTC()
		item.CreatedAt = item.CreatedAt.UTC()
		if accountID.Valid {
			id := int(accountID.Int64)
			item.AccountID = &id
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountTransactions возвращает общее количество транзакций пользователя.
func (s *Storage) CountTransactions(ctx context.Context, userUID string) (int, error) {
	const op = "storage.CountTransactions"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	var count int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE user_uid = $1`, userUID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// SumTransactions возвращает сумму транзакций типа txType с датой в полуинтервале [from, to).
// Для пустой выборки возвращается 0.
func (s *Storage) SumTransactions(ctx context.Context, userUID, txType string, from, to time.Time) (decimal.Decimal, error) {
	const op = "storage.SumTransactions"
	if err := checkCtx(ctx, op); err != nil {
		return decimal.Zero, err
	}

	query := `SELECT COALESCE(SUM(amount), 0)
			  FROM transactions
			  WHERE user_uid = $1
			    AND transaction_type = $2
			    AND date >= $3
			    AND date < $4`
	var sum decimal.Decimal
	err := s.DB.QueryRowContext(ctx, query, userUID, txType, from.UTC(), to.UTC()).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}
	return sum, nil
}
