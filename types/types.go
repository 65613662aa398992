package types

import (
	"encoding/hex"
)

const (
	// AccountIDLen is the raw byte length of an account identifier.
	AccountIDLen = 32
	// HashLen is the byte length of a ledger entry index digest.
	HashLen = 32
)

// AccountID is the raw 32-byte identifier of a ledger account. Its external
// textual form is produced by the address package.
type AccountID [AccountIDLen]byte

// Hash is a 32-byte content digest identifying a ledger entry.
type Hash [HashLen]byte

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}
