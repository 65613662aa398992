package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aurum-ledger/aurum/ledger"
	"github.com/aurum-ledger/aurum/types"
)

// OfferRepo persists live trade offers, one row per (account, sequence).
//
// Mutations take the change sink of the current unit of work; the sink is
// notified exactly once per successful mutation, before the call returns.
// Callers serialize mutations on the same offer, typically by applying all
// offer changes of one ledger close inside a single Transaction.
type OfferRepo interface {
	// GetOffer is a point lookup. It fails with ErrNotFound when no row
	// exists for (account, sequence).
	GetOffer(ctx context.Context, account types.AccountID, sequence uint32) (*types.Offer, error)

	// ListOffersByAccount returns all live offers owned by account, in row
	// storage order.
	ListOffersByAccount(ctx context.Context, account types.AccountID) ([]*types.Offer, error)

	// ListBestOffers returns offers trading pays for gets, sorted ascending
	// by (price key, sequence, account). The triple is applied in exactly
	// that precedence so every node enumerates the book identically; limit
	// and offset paginate over that total order.
	ListBestOffers(ctx context.Context, limit, offset int, pays, gets types.Currency) ([]*types.Offer, error)

	// AddOffer inserts exactly one new row. It fails with ErrDupOffer when
	// (account, sequence) already exists.
	AddOffer(ctx context.Context, offer *types.Offer, sink ledger.ChangeSink) error

	// UpdateOffer amends amount, price and flags of the existing row. It
	// fails with ErrNotFound when the row is absent.
	UpdateOffer(ctx context.Context, offer *types.Offer, sink ledger.ChangeSink) error

	// DeleteOffer removes the row. Deleting an absent row is not an error;
	// the sink is only notified when a row was actually removed.
	DeleteOffer(ctx context.Context, offer *types.Offer, sink ledger.ChangeSink) error
}

type Repo interface {
	OfferRepo() OfferRepo
	// AutoMigrate provisions the schema, create-if-absent.
	AutoMigrate() error
	// DropSchema removes the backing table. Idempotent.
	DropSchema() error
	Close() error
	Transaction(func(txRepo TxRepo) error) error
}

type TxRepo interface {
	OfferRepo() OfferRepo
}

var (
	// ErrNotFound reports an absent lookup or update target.
	ErrNotFound = errors.New("record not found")
	// ErrDupOffer reports an insert colliding with an existing
	// (account, sequence) row.
	ErrDupOffer = errors.New("offer already exists")
	// ErrPersistence reports an unexpected affected-row count from the
	// backend. It signals a storage invariant violation and is never
	// retried at this layer.
	ErrPersistence = errors.New("unexpected affected row count")
	// ErrMalformedCurrency reports a row carrying a currency code without an
	// issuer, or the other way around.
	ErrMalformedCurrency = errors.New("malformed currency columns")
)

func UniformNotFoundErrors() {
	gorm.ErrRecordNotFound = ErrNotFound
}

func init() {
	UniformNotFoundErrors()
}
