package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xisaabi/internal/models/db_models"
	"xisaabi/pkg/logger"
)

func TestActivateMonthlyWindow(t *testing.T) {
	now := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	activator := NewSubscriptionActivator(logger.NewNop())

	plan := monthlyPlan()
	trialEnd := now.Add(24 * time.Hour)
	sub := &db_models.Subscription{
		Status:      db_models.SubStatusPendingPayment,
		TrialEndsAt: &trialEnd,
	}
	txn := &db_models.PaymentTransaction{
		Reference:     "TXN-20260115093000-ABCDEF",
		PaymentMethod: "EVC Plus",
	}

	activator.Activate(sub, plan, txn, now)

	assert.Equal(t, db_models.SubStatusActive, sub.Status)
	require.NotNil(t, sub.StartsAt)
	assert.Equal(t, now, *sub.StartsAt)
	require.NotNil(t, sub.EndsAt)
	assert.Equal(t, now.AddDate(0, 1, 0), *sub.EndsAt)
	assert.Nil(t, sub.TrialEndsAt, "trial window is consumed by activation")
	assert.Equal(t, "EVC Plus", sub.PaymentMethod)
	assert.Equal(t, "TXN-20260115093000-ABCDEF", sub.PaymentReference)
}

func TestActivateWindowPerCycle(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	activator := NewSubscriptionActivator(logger.NewNop())
	days45 := 45

	tests := []struct {
		name string
		plan db_models.Plan
		want time.Time
	}{
		{"weekly", db_models.Plan{Cycle: db_models.CycleWeekly}, now.AddDate(0, 0, 7)},
		{"quarterly", db_models.Plan{Cycle: db_models.CycleQuarterly}, now.AddDate(0, 3, 0)},
		{"yearly", db_models.Plan{Cycle: db_models.CycleYearly}, now.AddDate(1, 0, 0)},
		{"lifetime", db_models.Plan{Cycle: db_models.CycleLifetime}, now.AddDate(100, 0, 0)},
		{"custom 45 days", db_models.Plan{Cycle: db_models.CycleCustom, BillingDays: &days45}, now.AddDate(0, 0, 45)},
		{"custom without days falls back to monthly", db_models.Plan{Cycle: db_models.CycleCustom}, now.AddDate(0, 1, 0)},
		{"unknown cycle falls back to monthly", db_models.Plan{Cycle: "fortnightly"}, now.AddDate(0, 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &db_models.Subscription{Status: db_models.SubStatusPendingPayment}
			activator.Activate(sub, &tt.plan, nil, now)
			require.NotNil(t, sub.EndsAt)
			assert.Equal(t, tt.want, *sub.EndsAt)
		})
	}
}

func TestActivateGrantsWriteAccess(t *testing.T) {
	now := time.Now()
	activator := NewSubscriptionActivator(logger.NewNop())

	sub := &db_models.Subscription{Status: db_models.SubStatusExpired}
	activator.Activate(sub, monthlyPlan(), nil, now)

	assert.True(t, sub.CanWrite(now))
	assert.False(t, sub.IsExpired(now))
}
