package request_models

type SubscribeRequest struct {
	PlanID      string `json:"plan_id" binding:"required,uuid4"`
	PaymentType string `json:"payment_type" binding:"required,oneof=online offline"`
	// PhoneNumber is required for the online channel, ignored offline.
	PhoneNumber string `json:"phone_number" binding:"omitempty,min=9,max=13"`
	// WalletHint names the payer's wallet provider; inferred from the number
	// prefix when empty.
	WalletHint string `json:"wallet_hint" binding:"omitempty,max=32"`
	// ProofReference is the offline proof-of-payment reference (receipt id,
	// uploaded file name).
	ProofReference string `json:"proof_reference" binding:"omitempty,max=255"`
}

// RenewRequest is SubscribeRequest with the plan defaulted to the
// subscription's current plan.
type RenewRequest struct {
	PaymentType    string `json:"payment_type" binding:"required,oneof=online offline"`
	PhoneNumber    string `json:"phone_number" binding:"omitempty,min=9,max=13"`
	WalletHint     string `json:"wallet_hint" binding:"omitempty,max=32"`
	ProofReference string `json:"proof_reference" binding:"omitempty,max=255"`
}

// GatewayCallbackRequest is the out-of-band settlement result the gateway
// posts for asynchronous purchases.
type GatewayCallbackRequest struct {
	Reference    string `json:"reference" binding:"required"`
	State        string `json:"state" binding:"required,oneof=approved declined"`
	GatewayTxnID string `json:"transaction_id" binding:"omitempty,max=64"`
	Code         string `json:"code" binding:"omitempty,max=16"`
	Message      string `json:"message" binding:"omitempty,max=255"`
}

type ApprovePaymentRequest struct {
	Notes string `json:"notes" binding:"omitempty,max=500"`
}

type RejectPaymentRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=500"`
}
