package services

import (
	"context"

	"github.com/google/uuid"

	"xisaabi/internal/config"
	"xisaabi/internal/models/db_models"
	"xisaabi/internal/models/response_models"
	"xisaabi/internal/repositories"
	"xisaabi/pkg/keylock"
	"xisaabi/pkg/logger"
	"xisaabi/pkg/utils"
)

// OfflineChannel records a manual transfer awaiting operator review. No money
// moves automatically: Settle only creates the pending_approval record, and
// Approve/Reject settle it later. Approve and reject each run as one unit of
// work with the subscription change, so a crash mid-operation cannot leave a
// transaction approved while the subscription stays pending_payment.
type OfflineChannel struct {
	cfg       config.OfflineConfig
	uow       repositories.UnitOfWork
	activator *SubscriptionActivator
	notifier  NotificationServiceInterface
	locks     *keylock.KeyedMutex
	log       *logger.Logger
}

func NewOfflineChannel(
	cfg config.OfflineConfig,
	uow repositories.UnitOfWork,
	activator *SubscriptionActivator,
	notifier NotificationServiceInterface,
	locks *keylock.KeyedMutex,
	log *logger.Logger,
) *OfflineChannel {
	return &OfflineChannel{
		cfg:       cfg,
		uow:       uow,
		activator: activator,
		notifier:  notifier,
		locks:     locks,
		log:       log,
	}
}

func (c *OfflineChannel) Type() db_models.PaymentType {
	return db_models.PaymentTypeOffline
}

func (c *OfflineChannel) Settle(ctx context.Context, req SettleRequest) (*response_models.PaymentResult, error) {
	if !c.cfg.Configured() {
		return nil, utils.ErrChannelNotConfigured
	}

	unlock := c.locks.Lock(req.Account.ID.String())
	defer unlock()

	now := utils.NowEAT()
	reference := utils.NewPaymentReference(utils.ReferencePrefixOffline, now)

	var txn *db_models.PaymentTransaction
	var sub *db_models.Subscription
	err := c.uow.Do(ctx, func(r repositories.Repos) error {
		var err error
		sub, err = upsertPendingSubscription(ctx, r, req.Account.ID, req.Plan)
		if err != nil {
			return err
		}
		txn = newPaymentTransaction(req, db_models.PaymentTypeOffline, reference, sub, now)
		txn.Status = db_models.TxnStatusPendingApproval
		txn.PaymentMethod = "offline"
		txn.ProofReference = req.ProofReference
		return r.Transactions.Create(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	c.notifier.SendOfflinePaymentSubmitted(req.Account, NotificationPayload{
		PlanName:   req.Plan.Name,
		Amount:     txn.Amount,
		Currency:   txn.Currency,
		Reference:  txn.Reference,
		OccurredAt: now,
	})

	return &response_models.PaymentResult{
		Success:            true,
		Message:            "Payment recorded; awaiting approval",
		Reference:          txn.Reference,
		TransactionStatus:  string(txn.Status),
		SubscriptionStatus: string(sub.Status),
		PendingApproval:    true,
	}, nil
}

// Approve settles an offline transaction: marks it approved with the
// operator's identity and notes, activates the linked subscription, then
// notifies the payer. A second call finds the row terminal and returns a
// state error without touching anything.
func (c *OfflineChannel) Approve(ctx context.Context, txnID, approverID uuid.UUID, notes string) (*response_models.PaymentResult, error) {
	now := utils.NowEAT()

	var txn *db_models.PaymentTransaction
	var sub *db_models.Subscription
	var plan *db_models.Plan
	var account *db_models.Account
	err := c.uow.Do(ctx, func(r repositories.Repos) error {
		var err error
		txn, err = r.Transactions.GetByIDForUpdate(ctx, txnID)
		if err != nil {
			return err
		}
		if txn == nil {
			return utils.ErrTransactionNotFound
		}
		if err := txn.Approve(approverID, notes, now); err != nil {
			return err
		}
		if err := r.Transactions.Save(ctx, txn); err != nil {
			return err
		}

		sub, err = r.Subscriptions.GetByAccountForUpdate(ctx, txn.AccountID)
		if err != nil {
			return err
		}
		if sub == nil {
			return utils.ErrSubscriptionMissing
		}
		if txn.PlanID == nil {
			return utils.ErrPlanNotFound
		}
		plan, err = r.Plans.GetByID(ctx, *txn.PlanID)
		if err != nil {
			return err
		}
		if plan == nil {
			return utils.ErrPlanNotFound
		}
		account, err = r.Accounts.FindByID(ctx, txn.AccountID)
		if err != nil {
			return err
		}

		c.activator.Activate(sub, plan, txn, now)
		return r.Subscriptions.Save(ctx, sub)
	})
	if err != nil {
		return nil, err
	}

	c.log.Infof("offline payment approved ref=%s by=%s", txn.Reference, approverID)

	payload := NotificationPayload{
		PlanName:   plan.Name,
		Amount:     txn.Amount,
		Currency:   txn.Currency,
		Reference:  txn.Reference,
		OccurredAt: now,
	}
	c.notifier.SendOfflinePaymentApproved(account, payload)
	c.notifier.SendSubscriptionActivated(account, payload)

	return &response_models.PaymentResult{
		Success:            true,
		Message:            "Payment approved and subscription activated",
		Reference:          txn.Reference,
		TransactionStatus:  string(txn.Status),
		SubscriptionStatus: string(sub.Status),
	}, nil
}

// Reject declines an offline transaction and reverts the subscription: back
// to trial when the trial window granted at signup has not yet elapsed,
// otherwise to expired.
func (c *OfflineChannel) Reject(ctx context.Context, txnID, approverID uuid.UUID, reason string) (*response_models.PaymentResult, error) {
	now := utils.NowEAT()

	var txn *db_models.PaymentTransaction
	var sub *db_models.Subscription
	var plan *db_models.Plan
	var account *db_models.Account
	err := c.uow.Do(ctx, func(r repositories.Repos) error {
		var err error
		txn, err = r.Transactions.GetByIDForUpdate(ctx, txnID)
		if err != nil {
			return err
		}
		if txn == nil {
			return utils.ErrTransactionNotFound
		}
		if err := txn.Reject(approverID, reason, now); err != nil {
			return err
		}
		if err := r.Transactions.Save(ctx, txn); err != nil {
			return err
		}

		sub, err = r.Subscriptions.GetByAccountForUpdate(ctx, txn.AccountID)
		if err != nil {
			return err
		}
		if sub != nil && sub.Status == db_models.SubStatusPendingPayment {
			if sub.TrialRemaining(now) {
				sub.Status = db_models.SubStatusTrial
			} else {
				sub.Status = db_models.SubStatusExpired
			}
			if err := r.Subscriptions.Save(ctx, sub); err != nil {
				return err
			}
		}

		if txn.PlanID != nil {
			plan, _ = r.Plans.GetByID(ctx, *txn.PlanID)
		}
		account, err = r.Accounts.FindByID(ctx, txn.AccountID)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.log.Infof("offline payment rejected ref=%s by=%s reason=%q", txn.Reference, approverID, reason)

	planName := ""
	if plan != nil {
		planName = plan.Name
	}
	c.notifier.SendOfflinePaymentRejected(account, NotificationPayload{
		PlanName:   planName,
		Amount:     txn.Amount,
		Currency:   txn.Currency,
		Reference:  txn.Reference,
		Reason:     reason,
		OccurredAt: now,
	})

	subStatus := ""
	if sub != nil {
		subStatus = string(sub.Status)
	}
	return &response_models.PaymentResult{
		Success:            true,
		Message:            "Payment rejected",
		Reference:          txn.Reference,
		TransactionStatus:  string(txn.Status),
		SubscriptionStatus: subStatus,
	}, nil
}

// Instructions returns the operator-written transfer text shown to payers.
func (c *OfflineChannel) Instructions() string {
	return c.cfg.Instructions
}
