package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xisaabi/internal/config"
	"xisaabi/internal/gateway"
	"xisaabi/internal/models/db_models"
	"xisaabi/pkg/keylock"
	"xisaabi/pkg/logger"
	"xisaabi/pkg/utils"
)

func onlineGatewayConfig() config.GatewayConfig {
	return config.GatewayConfig{
		Enabled:     true,
		Endpoint:    "https://gateway.example",
		MerchantUID: "M0912345",
		APIUserID:   "1000123",
		APIKey:      "key",
	}
}

type onlineHarness struct {
	channel  *OnlineChannel
	store    *fakeStore
	gateway  *fakeGateway
	notifier *fakeNotifier
	account  *db_models.Account
	plan     *db_models.Plan
}

func newOnlineHarness(gw *fakeGateway) *onlineHarness {
	store := newFakeStore()
	account := businessAccount()
	plan := monthlyPlan()
	store.addAccount(account)
	store.addPlan(plan)

	notifier := &fakeNotifier{}
	uow := newFakeUnitOfWork(store)
	activator := NewSubscriptionActivator(logger.NewNop())
	channel := NewOnlineChannel(onlineGatewayConfig(), gw, uow, activator, notifier,
		keylock.NewKeyedMutex(), logger.NewNop())

	return &onlineHarness{
		channel:  channel,
		store:    store,
		gateway:  gw,
		notifier: notifier,
		account:  account,
		plan:     plan,
	}
}

func (h *onlineHarness) settleRequest() SettleRequest {
	return SettleRequest{
		Account:     h.account,
		Plan:        h.plan,
		PhoneNumber: "615551234",
		Channel:     "api",
	}
}

func TestOnlineSettleCompleted(t *testing.T) {
	gw := &fakeGateway{result: &gateway.PurchaseResult{
		Outcome:      gateway.OutcomeCompleted,
		Code:         "2001",
		Message:      "Payment completed",
		GatewayTxnID: "GW-1",
	}}
	h := newOnlineHarness(gw)

	result, err := h.channel.Settle(context.Background(), h.settleRequest())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, string(db_models.TxnStatusSuccess), result.TransactionStatus)
	assert.Equal(t, string(db_models.SubStatusActive), result.SubscriptionStatus)

	// Gateway saw the normalized msisdn.
	assert.Equal(t, 1, gw.calls)
	assert.Equal(t, "252615551234", gw.last.Phone)

	sub := h.store.subscriptions[h.account.ID]
	require.NotNil(t, sub)
	assert.Equal(t, db_models.SubStatusActive, sub.Status)
	assert.Equal(t, result.Reference, sub.PaymentReference)

	assert.Len(t, h.notifier.activated, 1)
	assert.Empty(t, h.notifier.failed)
}

func TestOnlineSettlePendingLeavesSubscriptionUnpaid(t *testing.T) {
	gw := &fakeGateway{result: &gateway.PurchaseResult{
		Outcome:      gateway.OutcomePending,
		Code:         "3001",
		Message:      "Awaiting payer confirmation",
		GatewayTxnID: "GW-2",
	}}
	h := newOnlineHarness(gw)

	result, err := h.channel.Settle(context.Background(), h.settleRequest())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.PendingConfirmation)
	assert.Equal(t, string(db_models.TxnStatusProcessing), result.TransactionStatus)
	assert.Equal(t, string(db_models.SubStatusPendingPayment), result.SubscriptionStatus)

	sub := h.store.subscriptions[h.account.ID]
	require.NotNil(t, sub)
	assert.Equal(t, db_models.SubStatusPendingPayment, sub.Status)
	assert.False(t, sub.CanWrite(utils.NowEAT()), "no write access before confirmation")
	assert.Empty(t, h.notifier.activated)
}

func TestOnlineSettleFailureRecordsCode(t *testing.T) {
	gw := &fakeGateway{result: &gateway.PurchaseResult{
		Outcome: gateway.OutcomeFailed,
		Code:    "5306",
		Message: "The payer has insufficient wallet balance",
	}}
	h := newOnlineHarness(gw)

	result, err := h.channel.Settle(context.Background(), h.settleRequest())
	require.NoError(t, err, "a declined charge is a result, not an error")

	assert.False(t, result.Success)
	assert.Equal(t, "5306", result.ErrorCode)
	assert.Equal(t, string(db_models.TxnStatusFailed), result.TransactionStatus)

	// The attempt left an auditable failed transaction behind.
	var found *db_models.PaymentTransaction
	for _, txn := range h.store.transactions {
		found = txn
	}
	require.NotNil(t, found)
	assert.Equal(t, db_models.TxnStatusFailed, found.Status)
	assert.Equal(t, "5306", found.StatusCode)

	assert.Len(t, h.notifier.failed, 1)
	assert.Empty(t, h.notifier.activated)
}

func TestOnlineSettleRequiresPhone(t *testing.T) {
	h := newOnlineHarness(&fakeGateway{})

	req := h.settleRequest()
	req.PhoneNumber = ""
	_, err := h.channel.Settle(context.Background(), req)
	assert.ErrorIs(t, err, utils.ErrPhoneRequired)
	assert.Zero(t, h.gateway.calls)
	assert.Empty(t, h.store.transactions, "no transaction row before validation passes")
}

func TestOnlineSettleUnconfiguredChannel(t *testing.T) {
	h := newOnlineHarness(&fakeGateway{})
	h.channel.cfg = config.GatewayConfig{Enabled: true} // credentials missing

	_, err := h.channel.Settle(context.Background(), h.settleRequest())
	assert.ErrorIs(t, err, utils.ErrChannelNotConfigured)
	assert.Empty(t, h.store.transactions)
}

func TestConfirmPaymentActivatesOnce(t *testing.T) {
	gw := &fakeGateway{result: &gateway.PurchaseResult{
		Outcome: gateway.OutcomePending,
		Code:    "3001",
		Message: "Awaiting payer confirmation",
	}}
	h := newOnlineHarness(gw)

	settled, err := h.channel.Settle(context.Background(), h.settleRequest())
	require.NoError(t, err)

	confirmed, err := h.channel.ConfirmPayment(context.Background(), settled.Reference, "GW-9")
	require.NoError(t, err)
	assert.Equal(t, string(db_models.TxnStatusSuccess), confirmed.TransactionStatus)
	assert.Equal(t, string(db_models.SubStatusActive), confirmed.SubscriptionStatus)
	assert.Len(t, h.notifier.activated, 1)

	// A replayed callback is a state error and does not re-activate.
	_, err = h.channel.ConfirmPayment(context.Background(), settled.Reference, "GW-9")
	assert.ErrorIs(t, err, utils.ErrTransactionFinalized)
	assert.Len(t, h.notifier.activated, 1)
}

func TestConfirmPaymentUnknownReference(t *testing.T) {
	h := newOnlineHarness(&fakeGateway{})

	_, err := h.channel.ConfirmPayment(context.Background(), "TXN-20260101000000-NONE", "GW-1")
	assert.ErrorIs(t, err, utils.ErrTransactionNotFound)
}

func TestFailPaymentFinalizesPendingAttempt(t *testing.T) {
	gw := &fakeGateway{result: &gateway.PurchaseResult{
		Outcome: gateway.OutcomePending,
		Code:    "3001",
		Message: "Awaiting payer confirmation",
	}}
	h := newOnlineHarness(gw)

	settled, err := h.channel.Settle(context.Background(), h.settleRequest())
	require.NoError(t, err)

	require.NoError(t, h.channel.FailPayment(context.Background(), settled.Reference, "5310", ""))

	txn, err := h.channel.uow.Repos().Transactions.GetByReference(context.Background(), settled.Reference)
	require.NoError(t, err)
	require.NotNil(t, txn)
	assert.Equal(t, db_models.TxnStatusFailed, txn.Status)
	assert.Equal(t, "The payer declined the payment request", txn.StatusMessage)
	assert.Len(t, h.notifier.failed, 1)

	// Subscription never activated.
	sub := h.store.subscriptions[h.account.ID]
	require.NotNil(t, sub)
	assert.Equal(t, db_models.SubStatusPendingPayment, sub.Status)
}
