package types

import (
	"crypto/sha256"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOfferIndex(t *testing.T) {
	account := AccountID{0xde, 0xad, 0xbe, 0xef}
	offer := &Offer{AccountID: account, Sequence: 258}

	// sequence contributes in big-endian layout, independent of host order
	var payload []byte
	payload = append(payload, account[:]...)
	seq := make([]byte, 4)
	binary.BigEndian.PutUint32(seq, 258)
	payload = append(payload, seq...)
	expected := sha256.Sum256(payload)

	assert.Equal(t, Hash(expected), offer.Index())
}

func TestOfferIndexIdentity(t *testing.T) {
	account := AccountID{1}
	a := &Offer{AccountID: account, Sequence: 1}
	b := &Offer{AccountID: account, Sequence: 1, Amount: 500, Price: Price{N: 1, D: 2}}
	c := &Offer{AccountID: account, Sequence: 2}

	// the index depends only on (account, sequence)
	assert.Equal(t, a.Index(), b.Index())
	assert.NotEqual(t, a.Index(), c.Index())
	assert.NotEqual(t, a.Index(), (&Offer{AccountID: AccountID{2}, Sequence: 1}).Index())
}

func TestOfferPriceKey(t *testing.T) {
	offer := &Offer{Price: Price{N: 1, D: 3}}
	assert.Equal(t, int64(3333333), offer.PriceKey())
}
