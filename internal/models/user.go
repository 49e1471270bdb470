// Package models содержит доменные структуры трекера финансов: пользователя с данными
// о подписке, транзакции, счета к оплате/получению и финансовые цели,
// а также DTO для приёма данных из JSON-запросов.
package models

import (
	"time"

	"github.com/magabrotheeeer/finance-tracker/internal/lib/clock"
)

// Идентификаторы тарифных планов.
const (
	PlanTrial        = "trial"
	PlanMEI          = "mei"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

// Статусы подписки пользователя.
const (
	StatusTrial     = "trial"
	StatusActive    = "active"
	StatusExpired   = "expired"
	StatusCancelled = "cancelled"
)

// TrialPeriod длительность бесплатного пробного периода.
const TrialPeriod = 7 * 24 * time.Hour

// BillingPeriod срок, на который продлевается оплаченная подписка.
const BillingPeriod = 30 * 24 * time.Hour

// User представляет зарегистрированного пользователя системы.
// Все временные метки хранятся в UTC, клиенту отдаются через Local.
type User struct {
	UUID               string     `json:"uid"`
	Email              string     `json:"email"`
	Username           string     `json:"username"`
	PasswordHash       string     `json:"-"`
	Role               string     `json:"role"`
	TrialStart         time.Time  `json:"trial_start"`
	TrialEnd           time.Time  `json:"trial_end"`
	SubscriptionPlan   string     `json:"subscription_plan"`
	SubscriptionStatus string     `json:"subscription_status"`
	SubscriptionEnd    *time.Time `json:"subscription_end,omitempty"` // nil, пока не был активирован платный план
	CreatedAt          time.Time  `json:"created_at"`
}

// Local возвращает копию пользователя с датами в поясе Бразилиа.
func (u User) Local() *User {
	u.TrialStart = clock.ToLocal(u.TrialStart)
	u.TrialEnd = clock.ToLocal(u.TrialEnd)
	u.SubscriptionEnd = clock.ToLocalPtr(u.SubscriptionEnd)
	u.CreatedAt = clock.ToLocal(u.CreatedAt)
	return &u
}

// NewTrialUser собирает пользователя, только что получившего пробный период.
func NewTrialUser(email, username, passwordHash string, now time.Time) User {
	now = now.UTC()
	return User{
		Email:              email,
		Username:           username,
		PasswordHash:       passwordHash,
		Role:               "user",
		TrialStart:         now,
		TrialEnd:           now.Add(TrialPeriod),
		SubscriptionPlan:   PlanTrial,
		SubscriptionStatus: StatusTrial,
		CreatedAt:          now,
	}
}

// DummyUser используется для приёма данных регистрации из JSON-запроса.
type DummyUser struct {
	Username string `json:"username" validate:"required,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// DummyLogin используется для приёма учётных данных из JSON-запроса.
type DummyLogin struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
