package response_models

// PaymentResult is the structured outcome a channel returns to the router and
// ultimately the caller. No error crosses the channel boundary: gateway
// failures arrive here with Success=false and the raw error code preserved.
type PaymentResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code,omitempty"`

	Reference          string `json:"reference,omitempty"`
	TransactionStatus  string `json:"transaction_status,omitempty"`
	SubscriptionStatus string `json:"subscription_status,omitempty"`

	// PendingConfirmation is set when the gateway accepted the request but the
	// payer still has to confirm on their device.
	PendingConfirmation bool `json:"pending_confirmation,omitempty"`
	// PendingApproval is set when an offline payment awaits operator review.
	PendingApproval bool `json:"pending_approval,omitempty"`
}

// PaymentMethod describes one currently available settlement channel.
type PaymentMethod struct {
	Type string `json:"type"` // "online" | "offline"
	// Providers lists wallet providers for the online channel.
	Providers []string `json:"providers,omitempty"`
	// Instructions is the operator-written transfer text for offline.
	Instructions string `json:"instructions,omitempty"`
}

type TransactionStatusResponse struct {
	Reference          string `json:"reference"`
	PaymentType        string `json:"payment_type"`
	Status             string `json:"status"`
	StatusCode         string `json:"status_code,omitempty"`
	StatusMessage      string `json:"status_message,omitempty"`
	Amount             string `json:"amount"`
	Currency           string `json:"currency"`
	SubscriptionStatus string `json:"subscription_status,omitempty"`
	InitiatedAt        string `json:"initiated_at,omitempty"`
	CompletedAt        string `json:"completed_at,omitempty"`
	FailedAt           string `json:"failed_at,omitempty"`
}

type PendingTransaction struct {
	ID             string `json:"id"`
	Reference      string `json:"reference"`
	AccountName    string `json:"account_name"`
	PlanName       string `json:"plan_name"`
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	ProofReference string `json:"proof_reference,omitempty"`
	InitiatedAt    string `json:"initiated_at,omitempty"`
}
