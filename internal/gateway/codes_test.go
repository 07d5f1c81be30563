package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeForCode(t *testing.T) {
	assert.Equal(t, OutcomeCompleted, OutcomeForCode("2001"))
	assert.Equal(t, OutcomePending, OutcomeForCode("3001"))
	assert.Equal(t, OutcomeFailed, OutcomeForCode("5306"))
	assert.Equal(t, OutcomeFailed, OutcomeForCode(""))
	assert.Equal(t, OutcomeFailed, OutcomeForCode("TRANSPORT_ERROR"))
}

func TestMessageForCode(t *testing.T) {
	assert.Equal(t, "The payer has insufficient wallet balance", MessageForCode("5306", "RCS_USER_REJECTED"))
	assert.Equal(t, "The payer declined the payment request", MessageForCode("5310", ""))

	// Unknown codes keep the raw gateway text.
	assert.Equal(t, "something odd", MessageForCode("9999", "something odd"))
	assert.Equal(t, "Payment could not be completed", MessageForCode("9999", ""))
}
