package models

import "time"

// Payment подтверждённая оплата тарифа. Один Ref активирует подписку только один раз.
type Payment struct {
	Ref         string    `json:"payment_ref"`
	UserUID     string    `json:"user_uid"`
	PlanID      string    `json:"plan_id"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}
