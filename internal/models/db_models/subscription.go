package db_models

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubStatusTrial          SubscriptionStatus = "trial"
	SubStatusActive         SubscriptionStatus = "active"
	SubStatusPendingPayment SubscriptionStatus = "pending_payment"
	SubStatusExpired        SubscriptionStatus = "expired"
	SubStatusCancelled      SubscriptionStatus = "cancelled"
)

// Subscription is one account's plan enrollment. One row per account: a new
// payment attempt reuses and mutates the existing row instead of creating a
// second one, which keeps the transaction correlation unambiguous.
type Subscription struct {
	BaseModel
	AccountID uuid.UUID          `gorm:"uniqueIndex"`
	PlanID    uuid.UUID          `gorm:"index"`
	Status    SubscriptionStatus `gorm:"type:varchar(20);index"`

	TrialEndsAt *time.Time
	StartsAt    *time.Time
	EndsAt      *time.Time

	// PaymentMethod is the free-text channel label ("EVC Plus", "offline", ...).
	PaymentMethod string
	// PaymentReference correlates to the settling PaymentTransaction.
	PaymentReference string `gorm:"index"`

	Account Account `gorm:"foreignKey:AccountID"`
	Plan    Plan    `gorm:"foreignKey:PlanID"`
}

// CanWrite reports whether the subscription currently grants write access:
// an unexpired trial, or active with no end or an end in the future. Every
// other state is read-only.
func (s *Subscription) CanWrite(now time.Time) bool {
	switch s.Status {
	case SubStatusTrial:
		return s.TrialEndsAt != nil && s.TrialEndsAt.After(now)
	case SubStatusActive:
		return s.EndsAt == nil || s.EndsAt.After(now)
	default:
		return false
	}
}

// IsExpired evaluates expiry lazily against the clock; no background sweep
// updates the row.
func (s *Subscription) IsExpired(now time.Time) bool {
	switch s.Status {
	case SubStatusTrial:
		return s.TrialEndsAt != nil && !s.TrialEndsAt.After(now)
	case SubStatusActive:
		return s.EndsAt != nil && !s.EndsAt.After(now)
	case SubStatusExpired:
		return true
	default:
		return false
	}
}

// EffectiveStatus is the stored status corrected for time already passed.
func (s *Subscription) EffectiveStatus(now time.Time) SubscriptionStatus {
	if s.IsExpired(now) {
		return SubStatusExpired
	}
	return s.Status
}

// TrialRemaining reports whether the trial window granted at signup has not
// yet elapsed. Used when an offline payment is rejected to decide whether the
// subscription falls back to trial or straight to expired.
func (s *Subscription) TrialRemaining(now time.Time) bool {
	return s.TrialEndsAt != nil && s.TrialEndsAt.After(now)
}
