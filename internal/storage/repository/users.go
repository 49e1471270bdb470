package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

const userColumns = `uid, email, username, password_hash, role, trial_start, trial_end,
			      subscription_plan, subscription_status, subscription_end, created_at`

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}

	var newID string
	query := `INSERT INTO users (email, username, password_hash, role, trial_start, trial_end,
			      subscription_plan, subscription_status, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING uid`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.Role, user.TrialStart.UTC(), user.TrialEnd.UTC(),
		user.SubscriptionPlan, user.SubscriptionStatus, user.CreatedAt.UTC()).Scan(&newID); err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%s: %w", op, models.ErrUserExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return u, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return u, nil
}

// ActivateSubscription переводит пользователя на оплаченный план до end и запоминает платёж.
// Оба изменения фиксируются в одной транзакции. Повторно использованная ссылка на платёж
// возвращает models.ErrPaymentNotConfirmed, подписка при этом не меняется.
func (s *Storage) ActivateSubscription(ctx context.Context, p models.Payment, end time.Time) error {
	const op = "storage.ActivateSubscription"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE users
			  SET subscription_plan = $1, subscription_status = $2, subscription_end = $3
			  WHERE uid = $4`, p.PlanID, models.StatusActive, end.UTC(), p.UserUID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return models.ErrNotFound
		}

		_, err = tx.ExecContext(ctx, `INSERT INTO payments (ref, user_uid, plan_id, confirmed_at)
			  VALUES ($1, $2, $3, $4)`, p.Ref, p.UserUID, p.PlanID, p.ConfirmedAt.UTC())
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: payment %q already used", models.ErrPaymentNotConfirmed, p.Ref)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CancelSubscription переводит активную подписку в статус cancelled.
// Возвращает false, если подписка не была активной.
func (s *Storage) CancelSubscription(ctx context.Context, userUID string) (bool, error) {
	const op = "storage.CancelSubscription"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	query := `UPDATE users
			  SET subscription_status = $1
		      WHERE uid = $2 AND subscription_status = $3`
	res, err := s.DB.ExecContext(ctx, query, models.StatusCancelled, userUID, models.StatusActive)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var subscriptionEnd sql.NullTime
	if err := row.Scan(&u.UUID, &u.Email, &u.Username, &u.PasswordHash, &u.Role,
		&u.TrialStart, &u.TrialEnd, &u.SubscriptionPlan, &u.SubscriptionStatus,
		&subscriptionEnd, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.TrialStart = u.TrialStart.UTC()
	u.TrialEnd = u.TrialEnd.UTC()
	u.CreatedAt = u.CreatedAt.UTC()
	u.SubscriptionEnd = timePtr(subscriptionEnd)
	return u, nil
}
