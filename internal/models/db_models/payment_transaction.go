package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"xisaabi/pkg/utils"
)

type PaymentType string

const (
	PaymentTypeOnline  PaymentType = "online"
	PaymentTypeOffline PaymentType = "offline"
)

type TransactionStatus string

const (
	TxnStatusPending         TransactionStatus = "pending"
	TxnStatusProcessing      TransactionStatus = "processing"
	TxnStatusPendingApproval TransactionStatus = "pending_approval"
	TxnStatusSuccess         TransactionStatus = "success"
	TxnStatusApproved        TransactionStatus = "approved"
	TxnStatusFailed          TransactionStatus = "failed"
	TxnStatusRejected        TransactionStatus = "rejected"
	TxnStatusCancelled       TransactionStatus = "cancelled"
	TxnStatusRefunded        TransactionStatus = "refunded"
)

// PaymentTransaction is the append-mostly audit record of one settlement
// attempt, channel-agnostic. One row per attempt; later state changes update
// the same row, so transition history is reconstructed from the milestone
// timestamps, not from row count. Soft-deleted only, never erased.
type PaymentTransaction struct {
	BaseModel
	AccountID      uuid.UUID  `gorm:"index"`
	SubscriptionID *uuid.UUID `gorm:"index"`
	PlanID         *uuid.UUID `gorm:"index"`

	// Reference is the human-readable id: TXN-... online, OFF-... offline.
	Reference    string `gorm:"uniqueIndex"`
	GatewayTxnID string `gorm:"index"`

	PaymentMethod string
	PaymentType   PaymentType `gorm:"type:varchar(10);index"`
	Wallet        string
	PhoneNumber   string

	Amount      decimal.Decimal `gorm:"type:numeric(12,2)"`
	Currency    string          `gorm:"size:3"`
	Description string

	Status TransactionStatus `gorm:"type:varchar(20);index"`
	// StatusCode/StatusMessage mirror the gateway's raw response for support
	// diagnosis; they are never rewritten into friendlier text.
	StatusCode    string
	StatusMessage string

	// Raw request/response snapshots for forensic replay. Credentials are
	// redacted before storage.
	RawRequest  datatypes.JSON `gorm:"type:jsonb"`
	RawResponse datatypes.JSON `gorm:"type:jsonb"`

	// Provenance
	Channel     string
	Environment string
	IPAddress   string
	UserAgent   string

	// Offline settlement fields
	ProofReference  string
	ApprovedBy      *uuid.UUID
	ApprovedAt      *time.Time
	ApprovalNotes   string
	RejectionReason string

	// Milestones
	InitiatedAt *time.Time
	CompletedAt *time.Time
	FailedAt    *time.Time

	Account      Account       `gorm:"foreignKey:AccountID"`
	Subscription *Subscription `gorm:"foreignKey:SubscriptionID"`
}

// IsTerminal reports whether the transaction has reached a final state.
// Terminal rows reject every further settlement action; that check is what
// makes a duplicated admin click or gateway callback a visible error instead
// of a second activation.
func (t *PaymentTransaction) IsTerminal() bool {
	switch t.Status {
	case TxnStatusSuccess, TxnStatusApproved, TxnStatusFailed,
		TxnStatusRejected, TxnStatusCancelled, TxnStatusRefunded:
		return true
	}
	return false
}

// MarkProcessing moves a pending online transaction into processing: the
// gateway accepted the request but the payer has not yet confirmed.
func (t *PaymentTransaction) MarkProcessing(code, message string) error {
	if t.IsTerminal() {
		return utils.ErrTransactionFinalized
	}
	if t.Status != TxnStatusPending {
		return utils.ErrInvalidTransition
	}
	t.Status = TxnStatusProcessing
	t.StatusCode = code
	t.StatusMessage = message
	return nil
}

// MarkSuccess finalizes an online transaction from pending (synchronous
// settlement) or processing (asynchronous confirmation).
func (t *PaymentTransaction) MarkSuccess(gatewayTxnID, code, message string, now time.Time) error {
	if t.IsTerminal() {
		return utils.ErrTransactionFinalized
	}
	if t.Status != TxnStatusPending && t.Status != TxnStatusProcessing {
		return utils.ErrInvalidTransition
	}
	t.Status = TxnStatusSuccess
	t.GatewayTxnID = gatewayTxnID
	t.StatusCode = code
	t.StatusMessage = message
	t.CompletedAt = &now
	return nil
}

// MarkFailed finalizes an online transaction after a gateway error or
// transport failure, preserving the raw code and message.
func (t *PaymentTransaction) MarkFailed(code, message string, now time.Time) error {
	if t.IsTerminal() {
		return utils.ErrTransactionFinalized
	}
	if t.Status != TxnStatusPending && t.Status != TxnStatusProcessing {
		return utils.ErrInvalidTransition
	}
	t.Status = TxnStatusFailed
	t.StatusCode = code
	t.StatusMessage = message
	t.FailedAt = &now
	return nil
}

// Approve settles an offline transaction. Only an offline transaction still
// awaiting approval can be approved; calling it twice returns an error.
func (t *PaymentTransaction) Approve(approverID uuid.UUID, notes string, now time.Time) error {
	if t.PaymentType != PaymentTypeOffline {
		return utils.ErrWrongTransactionType
	}
	if t.IsTerminal() {
		return utils.ErrTransactionFinalized
	}
	if t.Status != TxnStatusPendingApproval {
		return utils.ErrInvalidTransition
	}
	t.Status = TxnStatusApproved
	t.ApprovedBy = &approverID
	t.ApprovedAt = &now
	t.ApprovalNotes = notes
	t.CompletedAt = &now
	return nil
}

// Reject declines an offline transaction under the same preconditions as
// Approve, which makes approved and rejected mutually exclusive.
func (t *PaymentTransaction) Reject(approverID uuid.UUID, reason string, now time.Time) error {
	if t.PaymentType != PaymentTypeOffline {
		return utils.ErrWrongTransactionType
	}
	if t.IsTerminal() {
		return utils.ErrTransactionFinalized
	}
	if t.Status != TxnStatusPendingApproval {
		return utils.ErrInvalidTransition
	}
	t.Status = TxnStatusRejected
	t.ApprovedBy = &approverID
	t.ApprovedAt = &now
	t.RejectionReason = reason
	t.FailedAt = &now
	return nil
}
