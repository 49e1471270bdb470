package finance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

// AddGoal создаёт финансовую цель.
func (s *Service) AddGoal(ctx context.Context, userUID string, req models.DummyGoal) (*models.FinancialGoal, error) {
	const op = "services.finance.AddGoal"
	target, err := parseAmount(req.TargetAmount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	current := decimal.Zero
	if req.CurrentAmount != "" {
		if current, err = parseAmount(req.CurrentAmount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	targetDate, err := parseOptionalDate(req.TargetDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	g := models.FinancialGoal{
		UserUID:       userUID,
		Title:         req.Title,
		TargetAmount:  target,
		CurrentAmount: current,
		TargetDate:    targetDate,
		IsCompleted:   target.IsPositive() && current.GreaterThanOrEqual(target),
	}
	id, err := s.repo.CreateGoal(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	g.ID = id
	s.log.Info("created new goal", slog.Int("id", id))
	return g.Local(), nil
}

// ListGoals возвращает все цели пользователя с прогрессом.
func (s *Service) ListGoals(ctx context.Context, userUID string) ([]models.GoalView, error) {
	const op = "services.finance.ListGoals"
	goals, err := s.repo.ListGoals(ctx, userUID, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	views := make([]models.GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, models.NewGoalView(*g))
	}
	return views, nil
}

// ContributeToGoal добавляет взнос к цели. Цель выполняется,
// когда накопленная сумма достигает целевой.
func (s *Service) ContributeToGoal(ctx context.Context, userUID string, goalID int, req models.DummyContribution) (*models.GoalView, error) {
	const op = "services.finance.ContributeToGoal"
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%s: %w: contribution must be positive", op, models.ErrInvalidAmount)
	}

	g, err := s.repo.AddToGoal(ctx, userUID, goalID, amount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if g.IsCompleted {
		s.log.Info("goal completed", slog.Int("id", g.ID))
	}
	view := models.NewGoalView(*g)
	return &view, nil
}
