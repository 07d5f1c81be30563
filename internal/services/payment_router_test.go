package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xisaabi/internal/config"
	"xisaabi/internal/gateway"
	"xisaabi/internal/models/db_models"
	"xisaabi/internal/models/request_models"
	"xisaabi/pkg/keylock"
	"xisaabi/pkg/logger"
	"xisaabi/pkg/utils"
)

type routerHarness struct {
	router   *PaymentRouter
	store    *fakeStore
	gateway  *fakeGateway
	notifier *fakeNotifier
	account  *db_models.Account
	plan     *db_models.Plan
}

func newRouterHarness(gatewayCfg config.GatewayConfig, offlineCfg config.OfflineConfig) *routerHarness {
	store := newFakeStore()
	account := businessAccount()
	plan := monthlyPlan()
	store.addAccount(account)
	store.addPlan(plan)

	gw := &fakeGateway{result: &gateway.PurchaseResult{
		Outcome: gateway.OutcomeCompleted,
		Code:    "2001",
		Message: "Payment completed",
	}}
	notifier := &fakeNotifier{}
	uow := newFakeUnitOfWork(store)
	activator := NewSubscriptionActivator(logger.NewNop())
	locks := keylock.NewKeyedMutex()
	log := logger.NewNop()

	online := NewOnlineChannel(gatewayCfg, gw, uow, activator, notifier, locks, log)
	offline := NewOfflineChannel(offlineCfg, uow, activator, notifier, locks, log)

	cfg := &config.Config{
		Gateway: gatewayCfg,
		Offline: offlineCfg,
		Billing: config.BillingConfig{MinimumPrice: decimal.NewFromFloat(0.01)},
	}
	router := NewPaymentRouter(cfg, uow, online, offline, log).(*PaymentRouter)

	return &routerHarness{
		router:   router,
		store:    store,
		gateway:  gw,
		notifier: notifier,
		account:  account,
		plan:     plan,
	}
}

func bothChannelsConfigured() (config.GatewayConfig, config.OfflineConfig) {
	return config.GatewayConfig{
			Enabled:     true,
			Endpoint:    "https://gateway.example",
			MerchantUID: "M0912345",
			APIUserID:   "1000123",
			APIKey:      "key",
		}, config.OfflineConfig{
			Enabled:      true,
			Instructions: "Transfer to wallet 252611234567.",
		}
}

func TestAvailableMethodsBothConfigured(t *testing.T) {
	h := newRouterHarness(bothChannelsConfigured())

	methods := h.router.AvailableMethods()
	require.Len(t, methods, 2)
	assert.Equal(t, "online", methods[0].Type)
	assert.Equal(t, gateway.Providers(), methods[0].Providers)
	assert.Equal(t, "offline", methods[1].Type)
	assert.NotEmpty(t, methods[1].Instructions)
}

func TestAvailableMethodsNoneConfigured(t *testing.T) {
	h := newRouterHarness(config.GatewayConfig{}, config.OfflineConfig{})

	assert.Empty(t, h.router.AvailableMethods())
}

func TestProcessPaymentRoutesOnline(t *testing.T) {
	h := newRouterHarness(bothChannelsConfigured())

	result, err := h.router.ProcessPayment(context.Background(), h.account.ID, request_models.SubscribeRequest{
		PlanID:      h.plan.ID.String(),
		PaymentType: "online",
		PhoneNumber: "615551234",
	}, RequestProvenance{Channel: "api"})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, h.gateway.calls)
	assert.Equal(t, string(db_models.SubStatusActive), result.SubscriptionStatus)
}

func TestProcessPaymentRoutesOffline(t *testing.T) {
	h := newRouterHarness(bothChannelsConfigured())

	result, err := h.router.ProcessPayment(context.Background(), h.account.ID, request_models.SubscribeRequest{
		PlanID:         h.plan.ID.String(),
		PaymentType:    "offline",
		ProofReference: "receipt-9",
	}, RequestProvenance{Channel: "api"})
	require.NoError(t, err)

	assert.True(t, result.PendingApproval)
	assert.Zero(t, h.gateway.calls, "offline settlement never touches the gateway")
}

func TestProcessPaymentUnknownType(t *testing.T) {
	h := newRouterHarness(bothChannelsConfigured())

	_, err := h.router.ProcessPayment(context.Background(), h.account.ID, request_models.SubscribeRequest{
		PlanID:      h.plan.ID.String(),
		PaymentType: "cheque",
	}, RequestProvenance{})
	assert.ErrorIs(t, err, utils.ErrUnknownPaymentType)
}

func TestProcessPaymentUnconfiguredChannelCreatesNothing(t *testing.T) {
	gwCfg, _ := bothChannelsConfigured()
	h := newRouterHarness(gwCfg, config.OfflineConfig{})

	_, err := h.router.ProcessPayment(context.Background(), h.account.ID, request_models.SubscribeRequest{
		PlanID:      h.plan.ID.String(),
		PaymentType: "offline",
	}, RequestProvenance{})
	assert.ErrorIs(t, err, utils.ErrChannelNotConfigured)
	assert.Empty(t, h.store.transactions)
	assert.Nil(t, h.store.subscriptions[h.account.ID])
}

func TestProcessPaymentValidation(t *testing.T) {
	h := newRouterHarness(bothChannelsConfigured())

	t.Run("unknown plan", func(t *testing.T) {
		_, err := h.router.ProcessPayment(context.Background(), h.account.ID, request_models.SubscribeRequest{
			PlanID:      "d2f1b8a0-0000-0000-0000-000000000000",
			PaymentType: "online",
			PhoneNumber: "615551234",
		}, RequestProvenance{})
		assert.ErrorIs(t, err, utils.ErrPlanNotFound)
	})

	t.Run("inactive plan", func(t *testing.T) {
		inactive := monthlyPlan()
		inactive.Code = "legacy"
		inactive.IsActive = false
		h.store.addPlan(inactive)

		_, err := h.router.ProcessPayment(context.Background(), h.account.ID, request_models.SubscribeRequest{
			PlanID:      inactive.ID.String(),
			PaymentType: "online",
			PhoneNumber: "615551234",
		}, RequestProvenance{})
		assert.ErrorIs(t, err, utils.ErrPlanInactive)
	})

	t.Run("price below floor", func(t *testing.T) {
		free := monthlyPlan()
		free.Code = "free"
		free.Price = decimal.Zero
		h.store.addPlan(free)

		_, err := h.router.ProcessPayment(context.Background(), h.account.ID, request_models.SubscribeRequest{
			PlanID:      free.ID.String(),
			PaymentType: "online",
			PhoneNumber: "615551234",
		}, RequestProvenance{})
		assert.ErrorIs(t, err, utils.ErrPriceBelowMinimum)
	})

	t.Run("demo account ineligible", func(t *testing.T) {
		demo := businessAccount()
		demo.Email = "demo@example.com"
		demo.AccountType = db_models.AccountTypeDemo
		h.store.addAccount(demo)

		_, err := h.router.ProcessPayment(context.Background(), demo.ID, request_models.SubscribeRequest{
			PlanID:      h.plan.ID.String(),
			PaymentType: "online",
			PhoneNumber: "615551234",
		}, RequestProvenance{})
		assert.ErrorIs(t, err, utils.ErrIneligibleAccount)
	})
}

func TestRenewDefaultsToCurrentPlan(t *testing.T) {
	h := newRouterHarness(bothChannelsConfigured())

	// Existing enrollment on the standard plan.
	_, err := h.router.ProcessPayment(context.Background(), h.account.ID, request_models.SubscribeRequest{
		PlanID:      h.plan.ID.String(),
		PaymentType: "online",
		PhoneNumber: "615551234",
	}, RequestProvenance{})
	require.NoError(t, err)

	result, err := h.router.RenewSubscription(context.Background(), h.account.ID, request_models.RenewRequest{
		PaymentType: "online",
		PhoneNumber: "615551234",
	}, RequestProvenance{})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 2, h.gateway.calls)
	sub := h.store.subscriptions[h.account.ID]
	assert.Equal(t, h.plan.ID, sub.PlanID)
}

func TestRenewWithoutSubscription(t *testing.T) {
	h := newRouterHarness(bothChannelsConfigured())

	_, err := h.router.RenewSubscription(context.Background(), h.account.ID, request_models.RenewRequest{
		PaymentType: "online",
		PhoneNumber: "615551234",
	}, RequestProvenance{})
	assert.ErrorIs(t, err, utils.ErrSubscriptionMissing)
}

func TestTransactionStatusIncludesSubscription(t *testing.T) {
	h := newRouterHarness(bothChannelsConfigured())

	created, err := h.router.ProcessPayment(context.Background(), h.account.ID, request_models.SubscribeRequest{
		PlanID:      h.plan.ID.String(),
		PaymentType: "online",
		PhoneNumber: "615551234",
	}, RequestProvenance{})
	require.NoError(t, err)

	status, err := h.router.TransactionStatus(context.Background(), created.Reference)
	require.NoError(t, err)

	assert.Equal(t, created.Reference, status.Reference)
	assert.Equal(t, string(db_models.TxnStatusSuccess), status.Status)
	assert.Equal(t, string(db_models.SubStatusActive), status.SubscriptionStatus)
	assert.Equal(t, "9.99", status.Amount)
}

func TestTransactionStatusUnknownReference(t *testing.T) {
	h := newRouterHarness(bothChannelsConfigured())

	_, err := h.router.TransactionStatus(context.Background(), "TXN-20260101000000-NONE")
	assert.ErrorIs(t, err, utils.ErrTransactionNotFound)
}

func TestListPendingApprovals(t *testing.T) {
	h := newRouterHarness(bothChannelsConfigured())

	created, err := h.router.ProcessPayment(context.Background(), h.account.ID, request_models.SubscribeRequest{
		PlanID:         h.plan.ID.String(),
		PaymentType:    "offline",
		ProofReference: "receipt-1",
	}, RequestProvenance{})
	require.NoError(t, err)

	pending, err := h.router.ListPendingApprovals(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, created.Reference, pending[0].Reference)
	assert.Equal(t, h.account.Name, pending[0].AccountName)
	assert.Equal(t, h.plan.Name, pending[0].PlanName)
	assert.Equal(t, "receipt-1", pending[0].ProofReference)
}
