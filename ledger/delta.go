// Package ledger holds the contract between the offer store and the
// component tracking entry changes within one unit of work.
package ledger

import (
	"github.com/aurum-ledger/aurum/types"
)

// ChangeSink receives offer mutations as they are persisted. The store calls
// exactly one method per successful mutation, synchronously, before the
// storage operation returns; committing or rolling back the surrounding
// backend transaction commits or rolls back the recorded change with it.
type ChangeSink interface {
	OfferAdded(offer *types.Offer)
	OfferModified(offer *types.Offer)
	OfferDeleted(offer *types.Offer)
}

// Delta is a minimal in-memory ChangeSink recording the offers touched
// within one unit of work, keyed by entry index. It is not safe for
// concurrent use; one Delta belongs to one unit of work.
type Delta struct {
	Added    map[types.Hash]*types.Offer
	Modified map[types.Hash]*types.Offer
	Deleted  map[types.Hash]*types.Offer
}

var _ ChangeSink = (*Delta)(nil)

func NewDelta() *Delta {
	return &Delta{
		Added:    make(map[types.Hash]*types.Offer),
		Modified: make(map[types.Hash]*types.Offer),
		Deleted:  make(map[types.Hash]*types.Offer),
	}
}

func (d *Delta) OfferAdded(offer *types.Offer) {
	d.Added[offer.Index()] = offer
}

func (d *Delta) OfferModified(offer *types.Offer) {
	d.Modified[offer.Index()] = offer
}

func (d *Delta) OfferDeleted(offer *types.Offer) {
	d.Deleted[offer.Index()] = offer
}
