// Package subscription ведёт жизненный цикл подписки пользователя:
// пробный период, оформление и активацию платного плана, отмену.
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/finance-tracker/internal/lib/clock"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/finance-tracker/internal/models"
	"github.com/magabrotheeeer/finance-tracker/internal/paymentprovider"
	"github.com/magabrotheeeer/finance-tracker/internal/plans"
)

// Repository методы хранилища, нужные для управления подпиской.
type Repository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	ActivateSubscription(ctx context.Context, p models.Payment, end time.Time) error
	CancelSubscription(ctx context.Context, userUID string) (bool, error)
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// CheckoutInfo данные для страницы оформления платного плана.
type CheckoutInfo struct {
	PlanID      string          `json:"plan_id"`
	PlanName    string          `json:"plan_name"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	Features    []string        `json:"features"`

	// Metadata нужно передать провайдеру вместе с платежом, иначе оплата не будет подтверждена.
	Metadata map[string]string `json:"metadata"`
}

// Service управляет подпиской пользователя.
type Service struct {
	repo      Repository
	confirmer paymentprovider.Confirmer
	publisher Publisher
	clock     clock.Clock
	log       *slog.Logger
}

// NewSubscriptionService создаёт сервис подписок.
func NewSubscriptionService(repo Repository, confirmer paymentprovider.Confirmer, publisher Publisher,
	clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		confirmer: confirmer,
		publisher: publisher,
		clock:     clk,
		log:       log,
	}
}

// Status возвращает текущее состояние подписки пользователя.
func (s *Service) Status(ctx context.Context, userUID string) (Status, error) {
	const op = "services.subscription.Status"
	u, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return Status{}, fmt.Errorf("%s: %w", op, err)
	}
	return Describe(*u, s.clock.Now()), nil
}

// IsActive сообщает, есть ли у пользователя доступ к финансовым функциям сейчас.
func (s *Service) IsActive(ctx context.Context, userUID string) (bool, error) {
	const op = "services.subscription.IsActive"
	u, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return IsActive(*u, s.clock.Now()), nil
}

// Checkout возвращает цену и описание платного плана. Состояние не меняется.
func (s *Service) Checkout(ctx context.Context, userUID, planID string) (CheckoutInfo, error) {
	const op = "services.subscription.Checkout"
	offer, ok := plans.OfferOf(planID)
	if !ok {
		return CheckoutInfo{}, fmt.Errorf("%s: %w", op, models.ErrInvalidPlan)
	}
	if _, err := s.repo.GetUser(ctx, userUID); err != nil {
		return CheckoutInfo{}, fmt.Errorf("%s: %w", op, err)
	}
	return CheckoutInfo{
		PlanID:      offer.ID,
		PlanName:    offer.Name,
		Price:       offer.Price,
		Currency:    offer.Currency,
		Description: offer.Description,
		Features:    offer.Highlights,
		Metadata: map[string]string{
			paymentprovider.MetadataUserUID: userUID,
			paymentprovider.MetadataPlanID:  offer.ID,
		},
	}, nil
}

// Activate переводит пользователя на платный план после подтверждения оплаты.
// Подписка действует BillingPeriod с текущего момента. Каждая ссылка на платёж
// принимается один раз.
func (s *Service) Activate(ctx context.Context, userUID, planID, paymentRef string) (*models.User, error) {
	const op = "services.subscription.Activate"
	offer, ok := plans.OfferOf(planID)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidPlan)
	}
	if paymentRef == "" {
		return nil, fmt.Errorf("%s: %w", op, models.ErrPaymentNotConfirmed)
	}

	confirmed, err := s.confirmer.Confirm(ctx, paymentprovider.Confirmation{
		UserUID:    userUID,
		PlanID:     planID,
		Price:      offer.Price,
		Currency:   offer.Currency,
		PaymentRef: paymentRef,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !confirmed {
		return nil, fmt.Errorf("%s: %w", op, models.ErrPaymentNotConfirmed)
	}

	now := s.clock.Now().UTC()
	end := now.Add(models.BillingPeriod)
	payment := models.Payment{
		Ref:         paymentRef,
		UserUID:     userUID,
		PlanID:      planID,
		ConfirmedAt: now,
	}
	if err := s.repo.ActivateSubscription(ctx, payment, end); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("subscription activated",
		slog.String("user_uid", userUID),
		slog.String("plan", planID),
		slog.Time("subscription_end", end),
	)

	s.publish(ctx, models.Event{
		Type:       models.EventSubscriptionActivated,
		UserUID:    userUID,
		PlanID:     planID,
		Amount:     &offer.Price,
		OccurredAt: now,
	})

	u, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u.Local(), nil
}

// Cancel отменяет активную подписку. Для неактивной подписки ничего не делает
// и возвращает false. Доступ теряется сразу.
func (s *Service) Cancel(ctx context.Context, userUID string) (bool, error) {
	const op = "services.subscription.Cancel"
	cancelled, err := s.repo.CancelSubscription(ctx, userUID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if !cancelled {
		return false, nil
	}
	s.log.Info("subscription cancelled", slog.String("user_uid", userUID))

	s.publish(ctx, models.Event{
		Type:       models.EventSubscriptionCancelled,
		UserUID:    userUID,
		OccurredAt: s.clock.Now().UTC(),
	})
	return true, nil
}

func (s *Service) publish(ctx context.Context, ev models.Event) {
	if err := s.publisher.Publish(ctx, ev.Type, ev); err != nil {
		s.log.Warn("failed to publish event", slog.String("event", ev.Type), sl.Err(err))
	}
}
