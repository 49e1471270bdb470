package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

const goalColumns = `id, user_uid, title, target_amount, current_amount, target_date, is_completed, created_at`

// CreateGoal вставляет новую финансовую цель и возвращает её ID.
func (s *Storage) CreateGoal(ctx context.Context, g models.FinancialGoal) (int, error) {
	const op = "storage.CreateGoal"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	query := `INSERT INTO financial_goals (user_uid, title, target_amount, current_amount, target_date, is_completed)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		g.UserUID, g.Title, g.TargetAmount, g.CurrentAmount, nullTime(g.TargetDate), g.IsCompleted).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListGoals возвращает цели пользователя. При onlyOpen выполненные цели пропускаются.
func (s *Storage) ListGoals(ctx context.Context, userUID string, onlyOpen bool) ([]*models.FinancialGoal, error) {
	const op = "storage.ListGoals"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + goalColumns + `
			  FROM financial_goals
			  WHERE user_uid = $1 AND ($2 = false OR is_completed = false)
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, userUID, onlyOpen)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.FinancialGoal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// AddToGoal увеличивает накопленную сумму цели и отмечает её выполненной
// при достижении целевой суммы. Возвращает обновлённую цель.
func (s *Storage) AddToGoal(ctx context.Context, userUID string, goalID int, amount decimal.Decimal) (*models.FinancialGoal, error) {
	const op = "storage.AddToGoal"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `UPDATE financial_goals
			  SET current_amount = current_amount + $1,
			      is_completed = (target_amount > 0 AND current_amount + $1 >= target_amount)
			  WHERE id = $2 AND user_uid = $3
			  RETURNING ` + goalColumns
	g, err := scanGoal(s.DB.QueryRowContext(ctx, query, amount, goalID, userUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return g, nil
}

func scanGoal(row scanner) (*models.FinancialGoal, error) {
	var g models.FinancialGoal
	var target sql.NullTime
	if err := row.Scan(&g.ID, &g.UserUID, &g.Title, &g.TargetAmount, &g.CurrentAmount,
		&target, &g.IsCompleted, &g.CreatedAt); err != nil {
		return nil, err
	}
	g.TargetDate = timePtr(target)
	g.CreatedAt = g.CreatedAt.UTC()
	return &g, nil
}
