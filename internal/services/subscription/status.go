package subscription

import (
	"time"

	"github.com/magabrotheeeer/finance-tracker/internal/lib/clock"
	"github.com/magabrotheeeer/finance-tracker/internal/models"
	"github.com/magabrotheeeer/finance-tracker/internal/plans"
)

// Status сводка подписки пользователя для дашборда и страницы подписки.
type Status struct {
	Plan            string         `json:"plan"`
	PlanName        string         `json:"plan_name"`
	Status          string         `json:"status"`
	Active          bool           `json:"active"`
	Features        plans.Features `json:"features"`
	TrialEnd        *time.Time     `json:"trial_end,omitempty"`
	TrialDaysLeft   int            `json:"trial_days_left"`
	SubscriptionEnd *time.Time     `json:"subscription_end,omitempty"`
}

// IsTrialExpired сообщает, закончился ли пробный период к моменту now.
func IsTrialExpired(u models.User, now time.Time) bool {
	return now.After(u.TrialEnd)
}

// IsActive сообщает, есть ли у пользователя доступ к финансовым функциям в момент now.
// Пробный период активен до trial_end включительно, платный план до subscription_end включительно.
func IsActive(u models.User, now time.Time) bool {
	switch u.SubscriptionStatus {
	case models.StatusTrial:
		return !IsTrialExpired(u, now)
	case models.StatusActive:
		return u.SubscriptionEnd != nil && !now.After(*u.SubscriptionEnd)
	default:
		return false
	}
}

// Describe собирает Status пользователя на момент now. Даты отдаются в поясе Бразилиа.
func Describe(u models.User, now time.Time) Status {
	f := plans.FeaturesOf(u.SubscriptionPlan)
	st := Status{
		Plan:            u.SubscriptionPlan,
		PlanName:        f.DisplayName,
		Status:          u.SubscriptionStatus,
		Active:          IsActive(u, now),
		Features:        f,
		SubscriptionEnd: clock.ToLocalPtr(u.SubscriptionEnd),
	}
	if u.SubscriptionStatus == models.StatusTrial {
		end := clock.ToLocal(u.TrialEnd)
		st.TrialEnd = &end
		if left := end.Sub(now); left > 0 {
			st.TrialDaysLeft = int(left / (24 * time.Hour))
		}
	}
	return st
}
