package utils

import "errors"

// Configuration errors: the requested channel cannot run at all. Raised before
// any transaction row is created.
var (
	ErrChannelNotConfigured = errors.New("payment channel not configured")
)

// Validation errors: raised before any mutation.
var (
	ErrPlanNotFound        = errors.New("plan not found")
	ErrPlanInactive        = errors.New("plan is not active")
	ErrIneligibleAccount   = errors.New("account type is not eligible for paid plans")
	ErrPriceBelowMinimum   = errors.New("plan price is below the system minimum")
	ErrPhoneRequired       = errors.New("phone number is required for online payments")
	ErrInvalidPhoneNumber  = errors.New("phone number is not a valid mobile number")
	ErrUnknownPaymentType  = errors.New("unknown payment type")
	ErrSubscriptionMissing = errors.New("no subscription to renew")
)

// State errors: the transaction is not in a state that permits the requested
// settlement action. Approving or rejecting twice must surface one of these,
// never mutate silently.
var (
	ErrTransactionFinalized = errors.New("transaction already in a terminal state")
	ErrWrongTransactionType = errors.New("transaction type does not permit this action")
	ErrInvalidTransition    = errors.New("invalid transaction state transition")
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrVendorNotFound       = errors.New("vendor not found")
	ErrStockItemNotFound    = errors.New("stock item not found")
	ErrMoneyAccountNotFound = errors.New("money account not found")
	ErrInsufficientStock    = errors.New("not enough stock on hand")
	ErrInsufficientFunds    = errors.New("not enough balance on the account")
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrDatabaseError        = errors.New("database error")
)
