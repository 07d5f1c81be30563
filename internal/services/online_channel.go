package services

import (
	"context"

	"gorm.io/datatypes"

	"xisaabi/internal/config"
	"xisaabi/internal/gateway"
	"xisaabi/internal/models/db_models"
	"xisaabi/internal/models/response_models"
	"xisaabi/internal/repositories"
	"xisaabi/pkg/keylock"
	"xisaabi/pkg/logger"
	"xisaabi/pkg/utils"
)

// OnlineChannel settles a subscription payment through the mobile-wallet
// gateway. The subscription is moved to pending_payment and the transaction
// row committed before the external call, so an attempt that dies between
// "charge attempted" and "response received" still has an observable record
// correlated to the subscription.
type OnlineChannel struct {
	cfg       config.GatewayConfig
	gateway   gateway.IGatewayClient
	uow       repositories.UnitOfWork
	activator *SubscriptionActivator
	notifier  NotificationServiceInterface
	locks     *keylock.KeyedMutex
	log       *logger.Logger
}

func NewOnlineChannel(
	cfg config.GatewayConfig,
	gw gateway.IGatewayClient,
	uow repositories.UnitOfWork,
	activator *SubscriptionActivator,
	notifier NotificationServiceInterface,
	locks *keylock.KeyedMutex,
	log *logger.Logger,
) *OnlineChannel {
	return &OnlineChannel{
		cfg:       cfg,
		gateway:   gw,
		uow:       uow,
		activator: activator,
		notifier:  notifier,
		locks:     locks,
		log:       log,
	}
}

func (c *OnlineChannel) Type() db_models.PaymentType {
	return db_models.PaymentTypeOnline
}

func (c *OnlineChannel) Settle(ctx context.Context, req SettleRequest) (*response_models.PaymentResult, error) {
	if !c.cfg.Enabled || !c.cfg.Configured() {
		return nil, utils.ErrChannelNotConfigured
	}
	if req.PhoneNumber == "" {
		return nil, utils.ErrPhoneRequired
	}
	msisdn, err := gateway.NormalizePhone(req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	wallet := req.WalletHint
	if wallet == "" {
		wallet = gateway.InferWallet(msisdn)
	}

	unlock := c.locks.Lock(req.Account.ID.String())
	defer unlock()

	now := utils.NowEAT()
	reference := utils.NewPaymentReference(utils.ReferencePrefixOnline, now)

	var txn *db_models.PaymentTransaction
	var sub *db_models.Subscription
	err = c.uow.Do(ctx, func(r repositories.Repos) error {
		sub, err = upsertPendingSubscription(ctx, r, req.Account.ID, req.Plan)
		if err != nil {
			return err
		}
		txn = newPaymentTransaction(req, db_models.PaymentTypeOnline, reference, sub, now)
		txn.Status = db_models.TxnStatusPending
		txn.PaymentMethod = wallet
		txn.Wallet = wallet
		txn.PhoneNumber = msisdn
		return r.Transactions.Create(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	res, err := c.gateway.Purchase(ctx, gateway.PurchaseRequest{
		Phone:       msisdn,
		Wallet:      wallet,
		Reference:   reference,
		InvoiceID:   txn.ID.String(),
		Amount:      req.Plan.Price,
		Currency:    req.Plan.Currency,
		Description: txn.Description,
	})
	if err != nil {
		// Request could not even be constructed; close the attempt out.
		res = &gateway.PurchaseResult{
			Outcome: gateway.OutcomeFailed,
			Code:    "REQUEST_ERROR",
			Message: err.Error(),
		}
	}

	switch res.Outcome {
	case gateway.OutcomeCompleted:
		return c.completeSettlement(ctx, req, txn, sub, res)
	case gateway.OutcomePending:
		return c.holdForConfirmation(ctx, txn, sub, res)
	default:
		return c.failSettlement(ctx, req, txn, res)
	}
}

func (c *OnlineChannel) completeSettlement(ctx context.Context, req SettleRequest, txn *db_models.PaymentTransaction, sub *db_models.Subscription, res *gateway.PurchaseResult) (*response_models.PaymentResult, error) {
	now := utils.NowEAT()
	err := c.uow.Do(ctx, func(r repositories.Repos) error {
		if err := txn.MarkSuccess(res.GatewayTxnID, res.Code, res.Message, now); err != nil {
			return err
		}
		txn.RawRequest = datatypes.JSON(res.RawRequest)
		txn.RawResponse = datatypes.JSON(res.RawResponse)
		if err := r.Transactions.Save(ctx, txn); err != nil {
			return err
		}
		c.activator.Activate(sub, req.Plan, txn, now)
		return r.Subscriptions.Save(ctx, sub)
	})
	if err != nil {
		return nil, err
	}

	c.notifier.SendSubscriptionActivated(req.Account, NotificationPayload{
		PlanName:   req.Plan.Name,
		Amount:     txn.Amount,
		Currency:   txn.Currency,
		Reference:  txn.Reference,
		OccurredAt: now,
	})

	return &response_models.PaymentResult{
		Success:            true,
		Message:            "Payment completed and subscription activated",
		Reference:          txn.Reference,
		TransactionStatus:  string(txn.Status),
		SubscriptionStatus: string(sub.Status),
	}, nil
}

func (c *OnlineChannel) holdForConfirmation(ctx context.Context, txn *db_models.PaymentTransaction, sub *db_models.Subscription, res *gateway.PurchaseResult) (*response_models.PaymentResult, error) {
	err := c.uow.Do(ctx, func(r repositories.Repos) error {
		if err := txn.MarkProcessing(res.Code, res.Message); err != nil {
			return err
		}
		txn.GatewayTxnID = res.GatewayTxnID
		txn.RawRequest = datatypes.JSON(res.RawRequest)
		txn.RawResponse = datatypes.JSON(res.RawResponse)
		return r.Transactions.Save(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	return &response_models.PaymentResult{
		Success:             true,
		Message:             "Payment requested; waiting for the payer to confirm on their device",
		Reference:           txn.Reference,
		TransactionStatus:   string(txn.Status),
		SubscriptionStatus:  string(sub.Status),
		PendingConfirmation: true,
	}, nil
}

func (c *OnlineChannel) failSettlement(ctx context.Context, req SettleRequest, txn *db_models.PaymentTransaction, res *gateway.PurchaseResult) (*response_models.PaymentResult, error) {
	now := utils.NowEAT()
	err := c.uow.Do(ctx, func(r repositories.Repos) error {
		if err := txn.MarkFailed(res.Code, res.Message, now); err != nil {
			return err
		}
		txn.RawRequest = datatypes.JSON(res.RawRequest)
		txn.RawResponse = datatypes.JSON(res.RawResponse)
		return r.Transactions.Save(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	c.log.Errorf("online payment failed ref=%s code=%s: %s", txn.Reference, res.Code, res.Message)
	c.notifier.SendPaymentFailed(req.Account, NotificationPayload{
		PlanName:   req.Plan.Name,
		Amount:     txn.Amount,
		Currency:   txn.Currency,
		Reference:  txn.Reference,
		Reason:     res.Message,
		OccurredAt: now,
	})

	return &response_models.PaymentResult{
		Success:           false,
		Message:           res.Message,
		ErrorCode:         res.Code,
		Reference:         txn.Reference,
		TransactionStatus: string(txn.Status),
	}, nil
}

// ConfirmPayment is the later success leg of an asynchronous settlement: the
// out-of-band confirmation reuses the same transaction row created by Settle.
// The terminal-state check makes a duplicated confirmation a state error, not
// a second activation.
func (c *OnlineChannel) ConfirmPayment(ctx context.Context, reference, gatewayTxnID string) (*response_models.PaymentResult, error) {
	probe, err := c.uow.Repos().Transactions.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if probe == nil {
		return nil, utils.ErrTransactionNotFound
	}
	if probe.PaymentType != db_models.PaymentTypeOnline {
		return nil, utils.ErrWrongTransactionType
	}

	unlock := c.locks.Lock(probe.AccountID.String())
	defer unlock()

	now := utils.NowEAT()
	var txn *db_models.PaymentTransaction
	var sub *db_models.Subscription
	var plan *db_models.Plan
	var account *db_models.Account
	err = c.uow.Do(ctx, func(r repositories.Repos) error {
		txn, err = r.Transactions.GetByReferenceForUpdate(ctx, reference)
		if err != nil {
			return err
		}
		if txn == nil {
			return utils.ErrTransactionNotFound
		}
		if err := txn.MarkSuccess(gatewayTxnID, gateway.RespCodeCompleted, "Payment confirmed", now); err != nil {
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

	c.notifier.SendSubscriptionActivated(account, NotificationPayload{
		PlanName:   plan.Name,
		Amount:     txn.Amount,
		Currency:   txn.Currency,
		Reference:  txn.Reference,
		OccurredAt: now,
	})

	return &response_models.PaymentResult{
		Success:            true,
		Message:            "Payment confirmed and subscription activated",
		Reference:          txn.Reference,
		TransactionStatus:  string(txn.Status),
		SubscriptionStatus: string(sub.Status),
	}, nil
}

// FailPayment is the later failure leg of an asynchronous settlement.
func (c *OnlineChannel) FailPayment(ctx context.Context, reference, code, message string) error {
	probe, err := c.uow.Repos().Transactions.GetByReference(ctx, reference)
	if err != nil {
		return err
	}
	if probe == nil {
		return utils.ErrTransactionNotFound
	}
	if probe.PaymentType != db_models.PaymentTypeOnline {
		return utils.ErrWrongTransactionType
	}

	unlock := c.locks.Lock(probe.AccountID.String())
	defer unlock()

	now := utils.NowEAT()
	var txn *db_models.PaymentTransaction
	var account *db_models.Account
	var plan *db_models.Plan
	err = c.uow.Do(ctx, func(r repositories.Repos) error {
		txn, err = r.Transactions.GetByReferenceForUpdate(ctx, reference)
		if err != nil {
			return err
		}
		if txn == nil {
			return utils.ErrTransactionNotFound
		}
		if err := txn.MarkFailed(code, gateway.MessageForCode(code, message), now); err != nil {
			return err
		}
		if err := r.Transactions.Save(ctx, txn); err != nil {
			return err
		}
		account, err = r.Accounts.FindByID(ctx, txn.AccountID)
		if err != nil {
			return err
		}
		if txn.PlanID != nil {
			plan, _ = r.Plans.GetByID(ctx, *txn.PlanID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.log.Errorf("online payment failed on confirmation ref=%s code=%s", reference, code)
	planName := ""
	if plan != nil {
		planName = plan.Name
	}
	c.notifier.SendPaymentFailed(account, NotificationPayload{
		PlanName:   planName,
		Amount:     txn.Amount,
		Currency:   txn.Currency,
		Reference:  txn.Reference,
		Reason:     txn.StatusMessage,
		OccurredAt: now,
	})
	return nil
}
