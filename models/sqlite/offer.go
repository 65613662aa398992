package sqlite

import (
	"context"
	"database/sql"
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"
	"golang.org/x/xerrors"
	"gorm.io/gorm"

	"github.com/aurum-ledger/aurum/address"
	"github.com/aurum-ledger/aurum/ledger"
	"github.com/aurum-ledger/aurum/models/repo"
	"github.com/aurum-ledger/aurum/types"
)

const offerTableName = "offers"

type offer struct {
	AccountID  string         `gorm:"column:account_id;type:char(64);primaryKey"`
	Sequence   uint32         `gorm:"column:sequence;type:integer;primaryKey"`
	PaysCode   sql.NullString `gorm:"column:pays_code;type:char(4)"`
	PaysIssuer sql.NullString `gorm:"column:pays_issuer;type:char(64)"`
	GetsCode   sql.NullString `gorm:"column:gets_code;type:char(4)"`
	GetsIssuer sql.NullString `gorm:"column:gets_issuer;type:char(64)"`
	Amount     int64          `gorm:"column:amount;type:bigint"`
	PriceN     int32          `gorm:"column:price_n;type:integer"`
	PriceD     int32          `gorm:"column:price_d;type:integer"`
	Flags      uint32         `gorm:"column:flags;type:integer"`
	// Price is the derived fixed-point ordering key, stored so the order
	// book sorts numerically without recomputing the division per row.
	Price int64 `gorm:"column:price;type:bigint;index"`
}

func (o *offer) TableName() string {
	return offerTableName
}

func encodeCurrency(c types.Currency) (code, issuer sql.NullString) {
	if c.IsNative() {
		return
	}
	code = sql.NullString{String: c.Code.String(), Valid: true}
	issuer = sql.NullString{String: address.Encode(address.VersionAccountID, c.Issuer), Valid: true}
	return
}

func decodeCurrency(code, issuer sql.NullString) (types.Currency, error) {
	if code.Valid != issuer.Valid {
		return types.Currency{}, xerrors.Errorf("currency code/issuer half present: %w", repo.ErrMalformedCurrency)
	}
	if !code.Valid {
		return types.NativeCurrency(), nil
	}
	id, err := address.Decode(address.VersionAccountID, issuer.String)
	if err != nil {
		return types.Currency{}, err
	}
	return types.IssuedCurrency(code.String, id), nil
}

func fromOffer(src *types.Offer) *offer {
	dst := &offer{
		AccountID: address.Encode(address.VersionAccountID, src.AccountID),
		Sequence:  src.Sequence,
		Amount:    src.Amount,
		PriceN:    src.Price.N,
		PriceD:    src.Price.D,
		Flags:     src.Flags,
		Price:     src.Price.Key(),
	}
	dst.PaysCode, dst.PaysIssuer = encodeCurrency(src.TakerPays)
	dst.GetsCode, dst.GetsIssuer = encodeCurrency(src.TakerGets)
	return dst
}

func toOffer(src *offer) (*types.Offer, error) {
	account, err := address.Decode(address.VersionAccountID, src.AccountID)
	if err != nil {
		return nil, err
	}
	pays, err := decodeCurrency(src.PaysCode, src.PaysIssuer)
	if err != nil {
		return nil, err
	}
	gets, err := decodeCurrency(src.GetsCode, src.GetsIssuer)
	if err != nil {
		return nil, err
	}
	return &types.Offer{
		AccountID: account,
		Sequence:  src.Sequence,
		TakerPays: pays,
		TakerGets: gets,
		Amount:    src.Amount,
		Price:     types.Price{N: src.PriceN, D: src.PriceD},
		Flags:     src.Flags,
	}, nil
}

func toOffers(rows []*offer) ([]*types.Offer, error) {
	results := make([]*types.Offer, 0, len(rows))
	for _, row := range rows {
		o, err := toOffer(row)
		if err != nil {
			return nil, err
		}
		results = append(results, o)
	}
	return results, nil
}

func isDupEntry(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.Code == sqlite3.ErrConstraint
}

type offerRepo struct {
	*gorm.DB
}

func NewOfferRepo(db *gorm.DB) repo.OfferRepo {
	return &offerRepo{db}
}

func (r *offerRepo) GetOffer(ctx context.Context, account types.AccountID, sequence uint32) (*types.Offer, error) {
	var res offer
	err := r.WithContext(ctx).Take(&res, "account_id = ? AND sequence = ?",
		address.Encode(address.VersionAccountID, account), sequence).Error
	if err != nil {
		return nil, err
	}
	return toOffer(&res)
}

func (r *offerRepo) ListOffersByAccount(ctx context.Context, account types.AccountID) ([]*types.Offer, error) {
	var rows []*offer
	err := r.WithContext(ctx).Find(&rows, "account_id = ?",
		address.Encode(address.VersionAccountID, account)).Error
	if err != nil {
		return nil, err
	}
	return toOffers(rows)
}

func (r *offerRepo) ListBestOffers(ctx context.Context, limit, offset int, pays, gets types.Currency) ([]*types.Offer, error) {
	query := r.WithContext(ctx).Table(offerTableName)
	if pays.IsNative() {
		query = query.Where("pays_issuer IS NULL")
	} else {
		query = query.Where("pays_code = ? AND pays_issuer = ?",
			pays.Code.String(), address.Encode(address.VersionAccountID, pays.Issuer))
	}
	if gets.IsNative() {
		query = query.Where("gets_issuer IS NULL")
	} else {
		query = query.Where("gets_code = ? AND gets_issuer = ?",
			gets.Code.String(), address.Encode(address.VersionAccountID, gets.Issuer))
	}

	var rows []*offer
	// price key first, then sequence, then account: the tie-break chain that
	// keeps the book enumeration identical on every node
	err := query.Order("price, sequence, account_id").
		Offset(offset).Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toOffers(rows)
}

func (r *offerRepo) AddOffer(ctx context.Context, o *types.Offer, sink ledger.ChangeSink) error {
	tx := r.WithContext(ctx).Create(fromOffer(o))
	if tx.Error != nil {
		if isDupEntry(tx.Error) {
			return xerrors.Errorf("offer %s: %w", o.Index(), repo.ErrDupOffer)
		}
		return tx.Error
	}
	if tx.RowsAffected != 1 {
		return xerrors.Errorf("insert affected %d rows: %w", tx.RowsAffected, repo.ErrPersistence)
	}
	sink.OfferAdded(o)
	return nil
}

func (r *offerRepo) UpdateOffer(ctx context.Context, o *types.Offer, sink ledger.ChangeSink) error {
	tx := r.WithContext(ctx).Table(offerTableName).
		Where("account_id = ? AND sequence = ?",
			address.Encode(address.VersionAccountID, o.AccountID), o.Sequence).
		Updates(map[string]interface{}{
			"amount":  o.Amount,
			"price_n": o.Price.N,
			"price_d": o.Price.D,
			"price":   o.Price.Key(),
			"flags":   o.Flags,
		})
	if tx.Error != nil {
		return tx.Error
	}
	switch tx.RowsAffected {
	case 1:
	case 0:
		return xerrors.Errorf("offer %s: %w", o.Index(), repo.ErrNotFound)
	default:
		return xerrors.Errorf("update affected %d rows: %w", tx.RowsAffected, repo.ErrPersistence)
	}
	sink.OfferModified(o)
	return nil
}

func (r *offerRepo) DeleteOffer(ctx context.Context, o *types.Offer, sink ledger.ChangeSink) error {
	tx := r.WithContext(ctx).
		Where("account_id = ? AND sequence = ?",
			address.Encode(address.VersionAccountID, o.AccountID), o.Sequence).
		Delete(&offer{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected > 0 {
		sink.OfferDeleted(o)
	}
	return nil
}
