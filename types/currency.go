package types

import (
	"fmt"
	"strings"
)

// CurrencyType tags which variant of a Currency is populated.
type CurrencyType int32

const (
	// CurrencyNative is the chain's intrinsic asset, it has no code or issuer.
	CurrencyNative CurrencyType = iota
	// CurrencyIssued is an asset identified by a short code plus the account
	// that issues it.
	CurrencyIssued
)

// CurrencyCodeLen is the fixed width of an issued asset code.
const CurrencyCodeLen = 4

// CurrencyCode is a fixed-width alphanumeric asset code. Short codes are
// zero-padded; padding bytes take part in equality, so "USD\x00" and "USD "
// are distinct codes.
type CurrencyCode [CurrencyCodeLen]byte

// CodeFromString copies up to CurrencyCodeLen bytes of s into a fixed-width
// code, zero-padding the remainder.
func CodeFromString(s string) CurrencyCode {
	var c CurrencyCode
	copy(c[:], s)
	return c
}

func (c CurrencyCode) String() string {
	return strings.TrimRight(string(c[:]), "\x00")
}

// Currency describes one leg of a trade. Equality is structural: two issued
// currencies name the same asset iff code and issuer match exactly.
type Currency struct {
	Type   CurrencyType
	Code   CurrencyCode
	Issuer AccountID
}

// NativeCurrency returns the descriptor of the chain's intrinsic asset.
func NativeCurrency() Currency {
	return Currency{Type: CurrencyNative}
}

// IssuedCurrency returns the descriptor of an asset issued by issuer under
// the given code.
func IssuedCurrency(code string, issuer AccountID) Currency {
	return Currency{Type: CurrencyIssued, Code: CodeFromString(code), Issuer: issuer}
}

func (c Currency) IsNative() bool {
	return c.Type == CurrencyNative
}

func (c Currency) String() string {
	if c.IsNative() {
		return "native"
	}
	return fmt.Sprintf("%s:%x", c.Code, c.Issuer[:4])
}
