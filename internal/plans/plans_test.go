package plans

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

func TestFeaturesOf(t *testing.T) {
	tests := []struct {
		name       string
		planID     string
		wantLimit  int
		reports    bool
		automation bool
		multiUser  bool
	}{
		{name: "trial", planID: models.PlanTrial, wantLimit: 10},
		{name: "mei", planID: models.PlanMEI, wantLimit: 100, reports: true},
		{name: "professional", planID: models.PlanProfessional, wantLimit: 500, reports: true, automation: true},
		{name: "enterprise", planID: models.PlanEnterprise, wantLimit: Unlimited, reports: true, automation: true, multiUser: true},
		{name: "unknown falls back to trial", planID: "gold", wantLimit: 10},
		{name: "empty falls back to trial", planID: "", wantLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FeaturesOf(tt.planID)
			assert.Equal(t, tt.wantLimit, f.TransactionsLimit)
			assert.Equal(t, tt.reports, f.Reports)
			assert.Equal(t, tt.automation, f.Automation)
			assert.Equal(t, tt.multiUser, f.MultiUser)
		})
	}

	assert.Equal(t, FeaturesOf(models.PlanTrial), FeaturesOf("unknown"))
}

func TestFeatures_LimitReached(t *testing.T) {
	trial := FeaturesOf(models.PlanTrial)
	assert.False(t, trial.LimitReached(9))
	assert.True(t, trial.LimitReached(10))
	assert.True(t, trial.LimitReached(11))

	enterprise := FeaturesOf(models.PlanEnterprise)
	assert.True(t, enterprise.Unlimited())
	assert.False(t, enterprise.LimitReached(1_000_000))
}

func TestPaidPlans(t *testing.T) {
	offers := PaidPlans()
	require.Len(t, offers, 3)

	assert.Equal(t, models.PlanMEI, offers[0].ID)
	assert.True(t, offers[0].Price.Equal(decimal.NewFromInt(49)))
	assert.Equal(t, models.PlanProfessional, offers[1].ID)
	assert.True(t, offers[1].Popular)
	assert.True(t, offers[1].Price.Equal(decimal.NewFromInt(99)))
	assert.Equal(t, models.PlanEnterprise, offers[2].ID)
	assert.True(t, offers[2].Price.Equal(decimal.NewFromInt(199)))

	offers[0].ID = "changed"
	assert.Equal(t, models.PlanMEI, PaidPlans()[0].ID)
}

func TestIsPaid(t *testing.T) {
	assert.True(t, IsPaid(models.PlanMEI))
	assert.True(t, IsPaid(models.PlanProfessional))
	assert.True(t, IsPaid(models.PlanEnterprise))
	assert.False(t, IsPaid(models.PlanTrial))
	assert.False(t, IsPaid("platinum"))
}
