package services

import (
	"time"

	"xisaabi/internal/models/db_models"
	"xisaabi/pkg/logger"
)

// SubscriptionActivator flips a subscription to active with a validity window
// computed from the plan's billing terms. It is the single place in the core
// where a paid subscription becomes writable, and it is called from the online
// success path, the async confirmation path and offline approval alike; the
// channels must fully agree on effects before invoking it.
type SubscriptionActivator struct {
	log *logger.Logger
}

func NewSubscriptionActivator(log *logger.Logger) *SubscriptionActivator {
	return &SubscriptionActivator{log: log}
}

// Activate mutates sub in place; persisting it is the caller's job so the
// write lands inside the caller's unit of work.
func (a *SubscriptionActivator) Activate(sub *db_models.Subscription, plan *db_models.Plan, txn *db_models.PaymentTransaction, now time.Time) {
	endsAt := endOfWindow(plan, now)

	sub.PlanID = plan.ID
	sub.Status = db_models.SubStatusActive
	sub.StartsAt = &now
	sub.EndsAt = &endsAt
	sub.TrialEndsAt = nil
	if txn != nil {
		sub.PaymentMethod = txn.PaymentMethod
		sub.PaymentReference = txn.Reference
	}

	a.log.Infof("subscription activated account=%s plan=%s until=%s",
		sub.AccountID, plan.Code, endsAt.Format(time.RFC3339))
}

func endOfWindow(plan *db_models.Plan, now time.Time) time.Time {
	if plan.Cycle == db_models.CycleCustom && plan.BillingDays != nil && *plan.BillingDays > 0 {
		return now.AddDate(0, 0, *plan.BillingDays)
	}

	switch plan.Cycle {
	case db_models.CycleWeekly:
		return now.AddDate(0, 0, 7)
	case db_models.CycleQuarterly:
		return now.AddDate(0, 3, 0)
	case db_models.CycleYearly:
		return now.AddDate(1, 0, 0)
	case db_models.CycleLifetime:
		// Practical "forever" sentinel.
		return now.AddDate(100, 0, 0)
	default:
		// Monthly, custom without override, and anything unrecognized.
		return now.AddDate(0, 1, 0)
	}
}
