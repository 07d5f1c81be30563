package services

import (
	"context"

	"github.com/google/uuid"

	"xisaabi/internal/config"
	"xisaabi/internal/gateway"
	"xisaabi/internal/models/db_models"
	"xisaabi/internal/models/request_models"
	"xisaabi/internal/models/response_models"
	"xisaabi/internal/repositories"
	"xisaabi/pkg/logger"
	"xisaabi/pkg/utils"
)

// RequestProvenance is what the transport layer knows about the caller,
// recorded on the transaction row for the audit trail.
type RequestProvenance struct {
	Channel     string
	Environment string
	IPAddress   string
	UserAgent   string
}

// PaymentRouterInterface unifies the two settlement channels behind one
// subscribe/renew entry point.
type PaymentRouterInterface interface {
	AvailableMethods() []response_models.PaymentMethod
	ProcessPayment(ctx context.Context, accountID uuid.UUID, req request_models.SubscribeRequest, prov RequestProvenance) (*response_models.PaymentResult, error)
	RenewSubscription(ctx context.Context, accountID uuid.UUID, req request_models.RenewRequest, prov RequestProvenance) (*response_models.PaymentResult, error)
	TransactionStatus(ctx context.Context, reference string) (*response_models.TransactionStatusResponse, error)
	ListPendingApprovals(ctx context.Context) ([]response_models.PendingTransaction, error)
}

type PaymentRouter struct {
	gatewayCfg config.GatewayConfig
	offlineCfg config.OfflineConfig
	billing    config.BillingConfig
	uow        repositories.UnitOfWork
	online     PaymentChannel
	offline    PaymentChannel
	log        *logger.Logger
}

func NewPaymentRouter(
	cfg *config.Config,
	uow repositories.UnitOfWork,
	online *OnlineChannel,
	offline *OfflineChannel,
	log *logger.Logger,
) PaymentRouterInterface {
	return &PaymentRouter{
		gatewayCfg: cfg.Gateway,
		offlineCfg: cfg.Offline,
		billing:    cfg.Billing,
		uow:        uow,
		online:     online,
		offline:    offline,
		log:        log,
	}
}

// AvailableMethods returns the subset of channels currently configured, each
// annotated with its own metadata. Empty when neither channel can run.
func (p *PaymentRouter) AvailableMethods() []response_models.PaymentMethod {
	methods := make([]response_models.PaymentMethod, 0, 2)
	if p.gatewayCfg.Enabled && p.gatewayCfg.Configured() {
		methods = append(methods, response_models.PaymentMethod{
			Type:      string(db_models.PaymentTypeOnline),
			Providers: gateway.Providers(),
		})
	}
	if p.offlineCfg.Configured() {
		methods = append(methods, response_models.PaymentMethod{
			Type:         string(db_models.PaymentTypeOffline),
			Instructions: p.offlineCfg.Instructions,
		})
	}
	return methods
}

func (p *PaymentRouter) ProcessPayment(ctx context.Context, accountID uuid.UUID, req request_models.SubscribeRequest, prov RequestProvenance) (*response_models.PaymentResult, error) {
	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		return nil, utils.ErrPlanNotFound
	}

	settle, err := p.validate(ctx, accountID, planID, prov)
	if err != nil {
		return nil, err
	}
	settle.PhoneNumber = req.PhoneNumber
	settle.WalletHint = req.WalletHint
	settle.ProofReference = req.ProofReference

	return p.dispatch(ctx, req.PaymentType, settle)
}

// RenewSubscription is ProcessPayment with the plan defaulted to the
// subscription's current plan.
func (p *PaymentRouter) RenewSubscription(ctx context.Context, accountID uuid.UUID, req request_models.RenewRequest, prov RequestProvenance) (*response_models.PaymentResult, error) {
	sub, err := p.uow.Repos().Subscriptions.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, utils.ErrSubscriptionMissing
	}

	settle, err := p.validate(ctx, accountID, sub.PlanID, prov)
	if err != nil {
		return nil, err
	}
	settle.PhoneNumber = req.PhoneNumber
	settle.WalletHint = req.WalletHint
	settle.ProofReference = req.ProofReference

	return p.dispatch(ctx, req.PaymentType, settle)
}

// validate applies the checks shared by both channels. All of them fail
// before any row is touched.
func (p *PaymentRouter) validate(ctx context.Context, accountID, planID uuid.UUID, prov RequestProvenance) (SettleRequest, error) {
	r := p.uow.Repos()

	account, err := r.Accounts.FindByID(ctx, accountID)
	if err != nil {
		return SettleRequest{}, err
	}
	if account == nil {
		return SettleRequest{}, utils.ErrAccountNotFound
	}
	if !account.CanSubscribe() {
		return SettleRequest{}, utils.ErrIneligibleAccount
	}

	plan, err := r.Plans.GetByID(ctx, planID)
	if err != nil {
		return SettleRequest{}, err
	}
	if plan == nil {
		return SettleRequest{}, utils.ErrPlanNotFound
	}
	if !plan.IsActive {
		return SettleRequest{}, utils.ErrPlanInactive
	}
	if plan.Price.LessThan(p.billing.MinimumPrice) {
		return SettleRequest{}, utils.ErrPriceBelowMinimum
	}

	return SettleRequest{
		Account:     account,
		Plan:        plan,
		Channel:     prov.Channel,
		Environment: prov.Environment,
		IPAddress:   prov.IPAddress,
		UserAgent:   prov.UserAgent,
	}, nil
}

func (p *PaymentRouter) dispatch(ctx context.Context, paymentType string, req SettleRequest) (*response_models.PaymentResult, error) {
	switch db_models.PaymentType(paymentType) {
	case db_models.PaymentTypeOnline:
		return p.online.Settle(ctx, req)
	case db_models.PaymentTypeOffline:
		return p.offline.Settle(ctx, req)
	default:
		return nil, utils.ErrUnknownPaymentType
	}
}

func (p *PaymentRouter) TransactionStatus(ctx context.Context, reference string) (*response_models.TransactionStatusResponse, error) {
	r := p.uow.Repos()

	txn, err := r.Transactions.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, utils.ErrTransactionNotFound
	}

	resp := &response_models.TransactionStatusResponse{
		Reference:     txn.Reference,
		PaymentType:   string(txn.PaymentType),
		Status:        string(txn.Status),
		StatusCode:    txn.StatusCode,
		StatusMessage: txn.StatusMessage,
		Amount:        txn.Amount.StringFixed(2),
		Currency:      txn.Currency,
		InitiatedAt:   utils.FormatEATPtr(txn.InitiatedAt),
		CompletedAt:   utils.FormatEATPtr(txn.CompletedAt),
		FailedAt:      utils.FormatEATPtr(txn.FailedAt),
	}

	sub, err := r.Subscriptions.GetByAccount(ctx, txn.AccountID)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		resp.SubscriptionStatus = string(sub.EffectiveStatus(utils.NowEAT()))
	}
	return resp, nil
}

func (p *PaymentRouter) ListPendingApprovals(ctx context.Context) ([]response_models.PendingTransaction, error) {
	r := p.uow.Repos()

	txns, err := r.Transactions.ListPendingApproval(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]response_models.PendingTransaction, 0, len(txns))
	for _, txn := range txns {
		item := response_models.PendingTransaction{
			ID:             txn.ID.String(),
			Reference:      txn.Reference,
			AccountName:    txn.Account.Name,
			Amount:         txn.Amount.StringFixed(2),
			Currency:       txn.Currency,
			ProofReference: txn.ProofReference,
			InitiatedAt:    utils.FormatEATPtr(txn.InitiatedAt),
		}
		if txn.PlanID != nil {
			if plan, err := r.Plans.GetByID(ctx, *txn.PlanID); err == nil && plan != nil {
				item.PlanName = plan.Name
			}
		}
		out = append(out, item)
	}
	return out, nil
}
