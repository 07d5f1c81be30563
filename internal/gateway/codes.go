package gateway

// Outcome is the normalized interpretation of a gateway response.
type Outcome int

const (
	// OutcomeCompleted: the charge settled synchronously.
	OutcomeCompleted Outcome = iota
	// OutcomePending: the gateway accepted the request but the payer must
	// still confirm on their device; settlement arrives out of band.
	OutcomePending
	// OutcomeFailed: terminal failure for this attempt (mapped error code or
	// transport-level failure).
	OutcomeFailed
)

const (
	// RespCodeCompleted is the gateway's immediate-completion response code.
	RespCodeCompleted = "2001"
	// RespCodePending means the purchase request was queued for payer
	// confirmation.
	RespCodePending = "3001"

	// codeTransport is our own marker for transport-level failures where the
	// gateway never answered; it can never collide with gateway codes, which
	// are numeric.
	codeTransport = "TRANSPORT_ERROR"
)

// errorMessages maps known gateway error codes to user-facing text. Unknown
// codes fall back to the raw gateway message so nothing is swallowed.
var errorMessages = map[string]string{
	"4001": "Merchant credentials were rejected by the gateway",
	"4002": "Merchant account is not active",
	"5301": "The phone number is not registered for mobile money",
	"5304": "The payer's wallet is locked",
	"5306": "The payer has insufficient wallet balance",
	"5310": "The payer declined the payment request",
	"5312": "The payer's daily wallet limit has been exceeded",
}

// OutcomeForCode classifies a gateway response code.
func OutcomeForCode(code string) Outcome {
	switch code {
	case RespCodeCompleted:
		return OutcomeCompleted
	case RespCodePending:
		return OutcomePending
	default:
		return OutcomeFailed
	}
}

// MessageForCode returns the user-facing message for a known error code, or
// the raw gateway message otherwise.
func MessageForCode(code, rawMessage string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	if rawMessage != "" {
		return rawMessage
	}
	return "Payment could not be completed"
}
