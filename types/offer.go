package types

import (
	"encoding/binary"

	sha256 "github.com/minio/sha256-simd"
)

// Offer is a standing order by AccountID to trade up to Amount of TakerGets
// for TakerPays at Price. (AccountID, Sequence) is the identity of the offer
// and never changes after creation; only Amount, Price and Flags may be
// amended in place. An offer whose currency pair changes is a new offer.
type Offer struct {
	AccountID AccountID
	Sequence  uint32
	TakerPays Currency
	TakerGets Currency
	Amount    int64
	Price     Price
	Flags     uint32
}

// Index derives the content-addressed identifier of the offer:
// SHA-256(accountID || sequence). Sequence is hashed in fixed big-endian
// layout so the digest is identical across node implementations; the byte
// layout is part of the storage contract.
func (o *Offer) Index() Hash {
	h := sha256.New()
	h.Write(o.AccountID[:])
	var seq [4]byte
	binary.BigEndian.PutUint32(seq[:], o.Sequence)
	h.Write(seq[:])
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// PriceKey is the deterministic sort key the order book uses for this offer.
func (o *Offer) PriceKey() int64 {
	return o.Price.Key()
}
