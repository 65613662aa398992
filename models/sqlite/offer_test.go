package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurum-ledger/aurum/config"
	"github.com/aurum-ledger/aurum/ledger"
	"github.com/aurum-ledger/aurum/models/repo"
	"github.com/aurum-ledger/aurum/types"
)

func setupRepo(t *testing.T) repo.Repo {
	r, err := OpenSqlite(&config.Sqlite{
		Path: filepath.Join(t.TempDir(), "offers.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, r.Close())
	})

	require.NoError(t, r.AutoMigrate())
	// provisioning twice is create-if-absent
	require.NoError(t, r.AutoMigrate())
	return r
}

func accountID(fill byte) types.AccountID {
	var id types.AccountID
	for i := range id {
		id[i] = fill
	}
	return id
}

func TestOfferLifecycle(t *testing.T) {
	ctx := context.Background()
	r := setupRepo(t)
	offers := r.OfferRepo()

	acctA := accountID(1)
	issuer := accountID(9)
	pays := types.NativeCurrency()
	gets := types.IssuedCurrency("USD", issuer)

	oc := &types.Offer{
		AccountID: acctA,
		Sequence:  1,
		TakerPays: pays,
		TakerGets: gets,
		Amount:    100,
		Price:     types.Price{N: 3, D: 1},
	}

	delta := ledger.NewDelta()
	require.NoError(t, offers.AddOffer(ctx, oc, delta))
	assert.Same(t, oc, delta.Added[oc.Index()])

	// every field survives the round trip
	got, err := offers.GetOffer(ctx, acctA, 1)
	require.NoError(t, err)
	assert.Equal(t, oc, got)

	book, err := offers.ListBestOffers(ctx, 10, 0, pays, gets)
	require.NoError(t, err)
	require.Len(t, book, 1)
	assert.Equal(t, oc, book[0])

	// duplicate insert leaves the original row untouched
	dup := *oc
	dup.Amount = 9999
	err = offers.AddOffer(ctx, &dup, ledger.NewDelta())
	assert.ErrorIs(t, err, repo.ErrDupOffer)
	got, err = offers.GetOffer(ctx, acctA, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Amount)

	oc.Amount = 50
	delta = ledger.NewDelta()
	require.NoError(t, offers.UpdateOffer(ctx, oc, delta))
	assert.Same(t, oc, delta.Modified[oc.Index()])

	book, err = offers.ListBestOffers(ctx, 10, 0, pays, gets)
	require.NoError(t, err)
	require.Len(t, book, 1)
	assert.Equal(t, int64(50), book[0].Amount)

	delta = ledger.NewDelta()
	require.NoError(t, offers.DeleteOffer(ctx, oc, delta))
	assert.Same(t, oc, delta.Deleted[oc.Index()])

	_, err = offers.GetOffer(ctx, acctA, 1)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	book, err = offers.ListBestOffers(ctx, 10, 0, pays, gets)
	require.NoError(t, err)
	assert.Empty(t, book)

	// deleting an absent row is not an error, and the sink stays silent
	delta = ledger.NewDelta()
	require.NoError(t, offers.DeleteOffer(ctx, oc, delta))
	assert.Empty(t, delta.Deleted)
}

func TestBestOffersOrdering(t *testing.T) {
	ctx := context.Background()
	r := setupRepo(t)
	offers := r.OfferRepo()

	issuer := accountID(9)
	pays := types.NativeCurrency()
	gets := types.IssuedCurrency("USD", issuer)

	o1 := &types.Offer{AccountID: accountID(1), Sequence: 5, TakerPays: pays, TakerGets: gets, Amount: 10, Price: types.Price{N: 1, D: 2}}
	o2 := &types.Offer{AccountID: accountID(1), Sequence: 3, TakerPays: pays, TakerGets: gets, Amount: 20, Price: types.Price{N: 1, D: 2}}
	o3 := &types.Offer{AccountID: accountID(2), Sequence: 1, TakerPays: pays, TakerGets: gets, Amount: 30, Price: types.Price{N: 1, D: 3}}

	// a different pair that must never show up in the book below
	other := &types.Offer{AccountID: accountID(3), Sequence: 1, TakerPays: pays, TakerGets: types.IssuedCurrency("EUR", issuer), Amount: 5, Price: types.Price{N: 1, D: 9}}

	delta := ledger.NewDelta()
	for _, o := range []*types.Offer{o1, o2, o3, other} {
		require.NoError(t, offers.AddOffer(ctx, o, delta))
	}

	// ascending price key, then sequence, then account
	book, err := offers.ListBestOffers(ctx, 10, 0, pays, gets)
	require.NoError(t, err)
	assert.Equal(t, []*types.Offer{o3, o2, o1}, book)

	// pagination walks the same total order
	page, err := offers.ListBestOffers(ctx, 1, 1, pays, gets)
	require.NoError(t, err)
	assert.Equal(t, []*types.Offer{o2}, page)

	// filtering the inverse pair finds nothing
	book, err = offers.ListBestOffers(ctx, 10, 0, gets, pays)
	require.NoError(t, err)
	assert.Empty(t, book)
}

func TestListOffersByAccount(t *testing.T) {
	ctx := context.Background()
	r := setupRepo(t)
	offers := r.OfferRepo()

	issuer := accountID(9)
	acctA, acctB := accountID(1), accountID(2)
	gets := types.IssuedCurrency("USD", issuer)

	delta := ledger.NewDelta()
	for seq := uint32(1); seq <= 3; seq++ {
		require.NoError(t, offers.AddOffer(ctx, &types.Offer{
			AccountID: acctA,
			Sequence:  seq,
			TakerPays: types.NativeCurrency(),
			TakerGets: gets,
			Amount:    int64(seq) * 10,
			Price:     types.Price{N: 1, D: 1},
		}, delta))
	}
	require.NoError(t, offers.AddOffer(ctx, &types.Offer{
		AccountID: acctB,
		Sequence:  1,
		TakerPays: types.NativeCurrency(),
		TakerGets: gets,
		Amount:    5,
		Price:     types.Price{N: 1, D: 1},
	}, delta))

	listed, err := offers.ListOffersByAccount(ctx, acctA)
	require.NoError(t, err)
	assert.Len(t, listed, 3)
	for _, o := range listed {
		assert.Equal(t, acctA, o.AccountID)
	}

	listed, err = offers.ListOffersByAccount(ctx, accountID(7))
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestUpdateMissingOffer(t *testing.T) {
	ctx := context.Background()
	r := setupRepo(t)

	oc := &types.Offer{
		AccountID: accountID(1),
		Sequence:  42,
		TakerPays: types.NativeCurrency(),
		TakerGets: types.IssuedCurrency("USD", accountID(9)),
		Amount:    1,
		Price:     types.Price{N: 1, D: 1},
	}

	delta := ledger.NewDelta()
	err := r.OfferRepo().UpdateOffer(ctx, oc, delta)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.Empty(t, delta.Modified)
}

func TestMalformedCurrencyRow(t *testing.T) {
	ctx := context.Background()
	r := setupRepo(t)

	acctA := accountID(1)
	oc := &types.Offer{
		AccountID: acctA,
		Sequence:  1,
		TakerPays: types.NativeCurrency(),
		TakerGets: types.IssuedCurrency("USD", accountID(9)),
		Amount:    1,
		Price:     types.Price{N: 1, D: 1},
	}
	require.NoError(t, r.OfferRepo().AddOffer(ctx, oc, ledger.NewDelta()))

	// corrupt the row: a code without an issuer is unreadable
	sr := r.(*SqlLiteRepo)
	require.NoError(t, sr.GetDb().Exec(
		"UPDATE offers SET gets_issuer = NULL WHERE sequence = 1").Error)

	_, err := r.OfferRepo().GetOffer(ctx, acctA, 1)
	assert.ErrorIs(t, err, repo.ErrMalformedCurrency)
}

func TestTransaction(t *testing.T) {
	ctx := context.Background()
	r := setupRepo(t)

	issuer := accountID(9)
	oc := &types.Offer{
		AccountID: accountID(1),
		Sequence:  1,
		TakerPays: types.NativeCurrency(),
		TakerGets: types.IssuedCurrency("USD", issuer),
		Amount:    100,
		Price:     types.Price{N: 1, D: 1},
	}

	delta := ledger.NewDelta()
	require.NoError(t, r.Transaction(func(tx repo.TxRepo) error {
		if err := tx.OfferRepo().AddOffer(ctx, oc, delta); err != nil {
			return err
		}
		oc.Amount = 60
		return tx.OfferRepo().UpdateOffer(ctx, oc, delta)
	}))

	got, err := r.OfferRepo().GetOffer(ctx, oc.AccountID, oc.Sequence)
	require.NoError(t, err)
	assert.Equal(t, int64(60), got.Amount)
}

func TestDropSchema(t *testing.T) {
	r := setupRepo(t)

	require.NoError(t, r.DropSchema())
	// dropping an already dropped schema is a no-op
	require.NoError(t, r.DropSchema())

	// reprovisioning brings the table back empty
	require.NoError(t, r.AutoMigrate())
	book, err := r.OfferRepo().ListBestOffers(context.Background(), 10, 0,
		types.NativeCurrency(), types.IssuedCurrency("USD", accountID(9)))
	require.NoError(t, err)
	assert.Empty(t, book)
}
