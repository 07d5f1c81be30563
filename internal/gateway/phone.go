package gateway

import (
	"strings"

	"xisaabi/pkg/utils"
)

// CountryCode is the international prefix all payer msisdns are normalized to.
const CountryCode = "252"

// walletPrefixes maps the two digits after the country code to the wallet
// provider operating that number range.
var walletPrefixes = map[string]string{
	"61": WalletEVCPlus,
	"77": WalletEVCPlus,
	"63": WalletZaad,
	"62": WalletEDahab,
	"65": WalletEDahab,
	"90": WalletSahal,
}

const (
	WalletEVCPlus = "EVC Plus"
	WalletZaad    = "ZAAD"
	WalletEDahab  = "eDahab"
	WalletSahal   = "Sahal"
	WalletGeneric = "Mobile Wallet"
)

// Providers lists the wallet labels the online channel can settle through.
func Providers() []string {
	return []string{WalletEVCPlus, WalletZaad, WalletEDahab, WalletSahal}
}

// NormalizePhone rewrites a payer number to canonical international form:
// digits only, country code prefixed. Accepted inputs are a 9-digit local
// number (615551234), a 10-digit number with the leading trunk zero
// (0615551234), or an already prefixed 12-digit number (252615551234).
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) == 9:
		return CountryCode + digits, nil
	case len(digits) == 10 && digits[0] == '0':
		return CountryCode + digits[1:], nil
	case len(digits) == len(CountryCode)+9 && strings.HasPrefix(digits, CountryCode):
		return digits, nil
	default:
		return "", utils.ErrInvalidPhoneNumber
	}
}

// InferWallet resolves the wallet provider from a normalized msisdn when the
// caller gave no hint. Unknown ranges get the generic label rather than an
// error; the gateway itself is the authority on routability.
func InferWallet(msisdn string) string {
	local := strings.TrimPrefix(msisdn, CountryCode)
	if len(local) < 2 {
		return WalletGeneric
	}
	if wallet, ok := walletPrefixes[local[:2]]; ok {
		return wallet
	}
	return WalletGeneric
}
