package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"xisaabi/pkg/logger"
)

const (
	schemaVersion = "1.0"
	channelName   = "WEB"
	serviceName   = "API_PURCHASE"
	paymentMethod = "MWALLET_ACCOUNT"
)

// Config carries the merchant credentials and endpoint for the wallet
// gateway. It is resolved once at startup; the client never reads mutable
// global state mid-call.
type Config struct {
	Endpoint       string
	MerchantUID    string
	APIUserID      string
	APIKey         string
	MerchantNumber string
	Timeout        time.Duration
}

type PurchaseRequest struct {
	// Phone may be local or international; it is normalized before sending.
	Phone       string
	Wallet      string
	Reference   string
	InvoiceID   string
	Amount      decimal.Decimal
	Currency    string
	Description string
}

// PurchaseResult is the normalized gateway answer. RawRequest has credentials
// redacted; RawResponse is the body exactly as received, kept for forensic
// replay on the transaction row.
type PurchaseResult struct {
	Outcome      Outcome
	Code         string
	Message      string
	Wallet       string
	GatewayTxnID string
	RawRequest   []byte
	RawResponse  []byte
}

type IGatewayClient interface {
	Purchase(ctx context.Context, req PurchaseRequest) (*PurchaseResult, error)
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *logger.Logger
}

// NewClient builds the gateway client with a bounded overall timeout. The
// client never retries: a retried purchase against a wallet API risks a
// duplicate charge, so retry policy stays with callers that can make it safe.
func NewClient(cfg Config, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

type purchaseEnvelope struct {
	SchemaVersion string        `json:"schemaVersion"`
	RequestID     string        `json:"requestId"`
	Timestamp     int64         `json:"timestamp"`
	ChannelName   string        `json:"channelName"`
	ServiceName   string        `json:"serviceName"`
	ServiceParams serviceParams `json:"serviceParams"`
}

type serviceParams struct {
	MerchantUID     string          `json:"merchantUid"`
	APIUserID       string          `json:"apiUserId"`
	APIKey          string          `json:"apiKey"`
	PaymentMethod   string          `json:"paymentMethod"`
	PayerInfo       payerInfo       `json:"payerInfo"`
	TransactionInfo transactionInfo `json:"transactionInfo"`
}

type payerInfo struct {
	AccountNo string `json:"accountNo"`
}

type transactionInfo struct {
	ReferenceID string `json:"referenceId"`
	InvoiceID   string `json:"invoiceId"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	MerchantNo  string `json:"merchantNo"`
}

type purchaseResponse struct {
	ResponseCode string `json:"responseCode"`
	ResponseMsg  string `json:"responseMsg"`
	ErrorCode    string `json:"errorCode"`
	Params       struct {
		TransactionID string `json:"transactionId"`
	} `json:"params"`
}

// Purchase sends one charge request and interprets the answer. A transport
// failure or timeout is returned as a failed outcome, not a Go error: for the
// caller both are the same terminal failure of this attempt, and the raw code
// is preserved on the transaction either way. An error return means the
// request itself could not be constructed (bad phone number).
func (c *Client) Purchase(ctx context.Context, req PurchaseRequest) (*PurchaseResult, error) {
	msisdn, err := NormalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}
	wallet := req.Wallet
	if wallet == "" {
		wallet = InferWallet(msisdn)
	}

	env := purchaseEnvelope{
		SchemaVersion: schemaVersion,
		RequestID:     uuid.New().String(),
		Timestamp:     time.Now().Unix(),
		ChannelName:   channelName,
		ServiceName:   serviceName,
		ServiceParams: serviceParams{
			MerchantUID:   c.cfg.MerchantUID,
			APIUserID:     c.cfg.APIUserID,
			APIKey:        c.cfg.APIKey,
			PaymentMethod: paymentMethod,
			PayerInfo:     payerInfo{AccountNo: msisdn},
			TransactionInfo: transactionInfo{
				ReferenceID: req.Reference,
				InvoiceID:   req.InvoiceID,
				Amount:      req.Amount.StringFixed(2),
				Currency:    req.Currency,
				Description: req.Description,
				MerchantNo:  c.cfg.MerchantNumber,
			},
		},
	}

	body, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal purchase envelope: %w", err)
	}

	// Snapshot with the api key blanked; the stored copy must not leak
	// credentials into the audit trail.
	redacted := env
	redacted.ServiceParams.APIKey = "***"
	rawRequest, _ := json.Marshal(redacted)

	result := &PurchaseResult{Wallet: wallet, RawRequest: rawRequest}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build purchase request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Errorf("gateway purchase transport failure ref=%s: %v", req.Reference, err)
		result.Outcome = OutcomeFailed
		result.Code = codeTransport
		result.Message = "Payment gateway could not be reached"
		return result, nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Errorf("gateway purchase read failure ref=%s: %v", req.Reference, err)
		result.Outcome = OutcomeFailed
		result.Code = codeTransport
		result.Message = "Payment gateway response could not be read"
		return result, nil
	}
	result.RawResponse = raw

	var parsed purchaseResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		c.log.Errorf("gateway purchase bad payload ref=%s status=%d: %v", req.Reference, resp.StatusCode, err)
		result.Outcome = OutcomeFailed
		result.Code = codeTransport
		result.Message = "Payment gateway returned an unreadable response"
		return result, nil
	}

	result.Code = parsed.ResponseCode
	if result.Code == "" {
		result.Code = parsed.ErrorCode
	}
	result.GatewayTxnID = parsed.Params.TransactionID
	result.Outcome = OutcomeForCode(result.Code)

	switch result.Outcome {
	case OutcomeCompleted:
		result.Message = "Payment completed"
	case OutcomePending:
		result.Message = "Awaiting payer confirmation"
	default:
		result.Message = MessageForCode(result.Code, parsed.ResponseMsg)
	}
	return result, nil
}
