package utils

import (
	"crypto/rand"
	"fmt"
	"time"
)

const (
	// ReferencePrefixOnline marks gateway-settled attempts, ReferencePrefixOffline
	// marks manually approved transfers.
	ReferencePrefixOnline  = "TXN"
	ReferencePrefixOffline = "OFF"

	referenceAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referenceRandLength = 6
)

// NewPaymentReference builds a human-readable transaction reference of the
// form PREFIX-YYYYMMDDHHMMSS-RAND6. The random suffix comes from crypto/rand
// so two references generated within the same second do not collide; the
// storage layer still carries a unique index as defense in depth.
func NewPaymentReference(prefix string, now time.Time) string {
	buf := make([]byte, referenceRandLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform RNG is broken; fall back to
		// the timestamp's nanoseconds rather than returning an error every
		// caller would have to invent handling for.
		ns := now.UnixNano()
		for i := range buf {
			buf[i] = referenceAlphabet[ns%int64(len(referenceAlphabet))]
			ns /= int64(len(referenceAlphabet))
		}
	} else {
		for i := range buf {
			buf[i] = referenceAlphabet[int(buf[i])%len(referenceAlphabet)]
		}
	}
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102150405"), string(buf))
}
