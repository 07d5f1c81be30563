package request_models

type CreateCustomerRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=80"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=13"`
}

type CreateVendorRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=80"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=13"`
}

type CreateMoneyAccountRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=80"`
	Currency string `json:"currency" binding:"required,len=3"`
}

type CreateStockItemRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=80"`
	Unit     string `json:"unit" binding:"required,max=16"`
	UnitCost string `json:"unit_cost" binding:"omitempty"`
}

// LedgerAmountRequest covers every plain increment/decrement operation:
// customer charge/payment, vendor bill/payment, stock receive/issue.
type LedgerAmountRequest struct {
	Amount string `json:"amount" binding:"required"`
	Note   string `json:"note" binding:"omitempty,max=255"`
}
