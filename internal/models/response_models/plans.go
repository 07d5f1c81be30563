package response_models

import "github.com/google/uuid"

type SubscriptionPlan struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	Price        string    `json:"price"`
	Currency     string    `json:"currency"`
	Cycle        string    `json:"cycle"`
	BillingDays  *int      `json:"billing_days,omitempty"`
	TrialEnabled bool      `json:"trial_enabled"`
	TrialDays    int32     `json:"trial_days"`
	IsActive     bool      `json:"is_active"`
	IsDefault    bool      `json:"is_default"`
}

type SubscriptionResponse struct {
	PlanCode    string `json:"plan_code"`
	PlanName    string `json:"plan_name"`
	Status      string `json:"status"`
	TrialEndsAt string `json:"trial_ends_at,omitempty"`
	StartsAt    string `json:"starts_at,omitempty"`
	EndsAt      string `json:"ends_at,omitempty"`
	CanWrite    bool   `json:"can_write"`
}
