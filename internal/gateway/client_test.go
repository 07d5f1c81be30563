package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xisaabi/pkg/logger"
)

func testConfig(endpoint string) Config {
	return Config{
		Endpoint:       endpoint,
		MerchantUID:    "M0912345",
		APIUserID:      "1000123",
		APIKey:         "API-TEST-KEY",
		MerchantNumber: "252611234567",
		Timeout:        2 * time.Second,
	}
}

func testPurchase() PurchaseRequest {
	return PurchaseRequest{
		Phone:       "615551234",
		Reference:   "TXN-20260115093000-A1B2C3",
		InvoiceID:   "inv-1",
		Amount:      decimal.NewFromFloat(9.99),
		Currency:    "USD",
		Description: "Subscription: Standard",
	}
}

func TestPurchaseCompleted(t *testing.T) {
	var captured purchaseEnvelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"responseCode": "2001",
			"responseMsg":  "RCS_SUCCESS",
			"params":       map[string]string{"transactionId": "GW-777"},
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), logger.NewNop())
	res, err := client.Purchase(context.Background(), testPurchase())
	require.NoError(t, err)

	assert.Equal(t, OutcomeCompleted, res.Outcome)
	assert.Equal(t, "2001", res.Code)
	assert.Equal(t, "GW-777", res.GatewayTxnID)
	assert.Equal(t, WalletEVCPlus, res.Wallet)

	// The envelope carries the normalized msisdn and the merchant identity.
	assert.Equal(t, "252615551234", captured.ServiceParams.PayerInfo.AccountNo)
	assert.Equal(t, "M0912345", captured.ServiceParams.MerchantUID)
	assert.Equal(t, "9.99", captured.ServiceParams.TransactionInfo.Amount)

	// The stored snapshot must not contain the real api key.
	assert.NotContains(t, string(res.RawRequest), "API-TEST-KEY")
	assert.Contains(t, string(res.RawRequest), "***")
}

func TestPurchasePending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"responseCode": "3001",
			"responseMsg":  "RCS_IN_PROGRESS",
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), logger.NewNop())
	res, err := client.Purchase(context.Background(), testPurchase())
	require.NoError(t, err)

	assert.Equal(t, OutcomePending, res.Outcome)
	assert.Equal(t, "3001", res.Code)
}

func TestPurchaseGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"responseCode": "5306",
			"responseMsg":  "RCS_NO_BALANCE",
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), logger.NewNop())
	res, err := client.Purchase(context.Background(), testPurchase())
	require.NoError(t, err)

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Equal(t, "5306", res.Code)
	assert.Equal(t, "The payer has insufficient wallet balance", res.Message)
	assert.NotEmpty(t, res.RawResponse)
}

func TestPurchaseTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	client := NewClient(testConfig(srv.URL), logger.NewNop())
	res, err := client.Purchase(context.Background(), testPurchase())
	require.NoError(t, err, "transport failure is a failed outcome, not an error")

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Equal(t, "TRANSPORT_ERROR", res.Code)
}

func TestPurchaseUnparseableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), logger.NewNop())
	res, err := client.Purchase(context.Background(), testPurchase())
	require.NoError(t, err)

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Equal(t, "TRANSPORT_ERROR", res.Code)
	assert.Equal(t, []byte("<html>bad gateway</html>"), res.RawResponse)
}

func TestPurchaseBadPhoneIsError(t *testing.T) {
	client := NewClient(testConfig("http://localhost:0"), logger.NewNop())
	req := testPurchase()
	req.Phone = "12345"

	_, err := client.Purchase(context.Background(), req)
	require.Error(t, err)
}
