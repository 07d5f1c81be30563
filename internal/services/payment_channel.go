package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"xisaabi/internal/models/db_models"
	"xisaabi/internal/models/response_models"
	"xisaabi/internal/repositories"
)

// SettleRequest is the channel-agnostic settlement order the router hands to
// whichever channel it selected.
type SettleRequest struct {
	Account *db_models.Account
	Plan    *db_models.Plan

	// Online channel fields
	PhoneNumber string
	WalletHint  string

	// Offline channel fields
	ProofReference string

	// Provenance recorded on the transaction row
	Channel     string
	Environment string
	IPAddress   string
	UserAgent   string
}

// PaymentChannel is one of the two independent ways a subscription payment
// can be settled. Both variants converge on the subscription activator.
type PaymentChannel interface {
	Type() db_models.PaymentType
	Settle(ctx context.Context, req SettleRequest) (*response_models.PaymentResult, error)
}

// upsertPendingSubscription reuses the account's single subscription row,
// moving it to pending_payment against the requested plan, or creates it in
// that state when the account has never had one. Runs under the caller's unit
// of work; the for-update read plus the unique-violation fallback keep two
// racing requests from both creating rows.
func upsertPendingSubscription(ctx context.Context, r repositories.Repos, accountID uuid.UUID, plan *db_models.Plan) (*db_models.Subscription, error) {
	sub, err := r.Subscriptions.GetByAccountForUpdate(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if sub == nil {
		sub = &db_models.Subscription{
			AccountID: accountID,
			PlanID:    plan.ID,
			Status:    db_models.SubStatusPendingPayment,
		}
		if err := r.Subscriptions.Create(ctx, sub); err != nil {
			if !repositories.IsUniqueViolation(err) {
				return nil, err
			}
			// Lost the create race; take the winner's row under lock.
			sub, err = r.Subscriptions.GetByAccountForUpdate(ctx, accountID)
			if err != nil {
				return nil, err
			}
		} else {
			return sub, nil
		}
	}

	sub.PlanID = plan.ID
	sub.Status = db_models.SubStatusPendingPayment
	if err := r.Subscriptions.Save(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func newPaymentTransaction(req SettleRequest, paymentType db_models.PaymentType, reference string, sub *db_models.Subscription, now time.Time) *db_models.PaymentTransaction {
	planID := req.Plan.ID
	return &db_models.PaymentTransaction{
		AccountID:      req.Account.ID,
		SubscriptionID: &sub.ID,
		PlanID:         &planID,
		Reference:      reference,
		PaymentType:    paymentType,
		Amount:         req.Plan.Price,
		Currency:       req.Plan.Currency,
		Description:    "Subscription: " + req.Plan.Name,
		Channel:        req.Channel,
		Environment:    req.Environment,
		IPAddress:      req.IPAddress,
		UserAgent:      req.UserAgent,
		InitiatedAt:    &now,
	}
}
