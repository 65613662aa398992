// Package address implements the external textual form of account
// identifiers: base58check with a one-byte version prefix and a 4-byte
// double-SHA256 checksum.
package address

import (
	"bytes"

	sha256 "github.com/minio/sha256-simd"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/aurum-ledger/aurum/types"
)

// VersionAccountID is the version prefix for account identifiers.
const VersionAccountID byte = 0

// ErrMalformedAccount reports a textual identifier that does not decode to a
// well-formed account ID.
var ErrMalformedAccount = errors.New("malformed account identifier")

const checksumLen = 4

func checksum(payload []byte) []byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return second[:checksumLen]
}

// Encode renders a raw account identifier in its external form.
func Encode(version byte, id types.AccountID) string {
	buf := make([]byte, 0, 1+types.AccountIDLen+checksumLen)
	buf = append(buf, version)
	buf = append(buf, id[:]...)
	buf = append(buf, checksum(buf)...)
	return base58.Encode(buf)
}

// Decode is the inverse of Encode. It fails with ErrMalformedAccount when the
// input is not valid base58, has the wrong length or version, or the checksum
// does not match.
func Decode(version byte, s string) (types.AccountID, error) {
	var id types.AccountID
	raw, err := base58.Decode(s)
	if err != nil {
		return id, errors.Wrap(ErrMalformedAccount, err.Error())
	}
	if len(raw) != 1+types.AccountIDLen+checksumLen {
		return id, errors.Wrapf(ErrMalformedAccount, "unexpected length %d", len(raw))
	}
	if raw[0] != version {
		return id, errors.Wrapf(ErrMalformedAccount, "version byte %#x", raw[0])
	}
	body, sum := raw[:1+types.AccountIDLen], raw[1+types.AccountIDLen:]
	if !bytes.Equal(checksum(body), sum) {
		return id, errors.Wrap(ErrMalformedAccount, "checksum mismatch")
	}
	copy(id[:], body[1:])
	return id, nil
}
