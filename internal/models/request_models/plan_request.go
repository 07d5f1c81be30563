package request_models

type UpsertPlanRequest struct {
	Code         string          `json:"code" binding:"required,min=2,max=40"`
	Name         string          `json:"name" binding:"required,min=2,max=80"`
	Description  *string         `json:"description"`
	Price        string          `json:"price" binding:"required"`
	Currency     string          `json:"currency" binding:"required,len=3"`
	Cycle        string          `json:"cycle" binding:"required,oneof=weekly monthly quarterly yearly lifetime custom"`
	BillingDays  *int            `json:"billing_days" binding:"omitempty,min=1"`
	TrialEnabled bool            `json:"trial_enabled"`
	TrialDays    int32           `json:"trial_days" binding:"omitempty,min=0,max=365"`
	Features     map[string]bool `json:"features"`
	IsActive     *bool           `json:"is_active"`
}
