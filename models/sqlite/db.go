package sqlite

import (
	"golang.org/x/xerrors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aurum-ledger/aurum/config"
	"github.com/aurum-ledger/aurum/models/repo"
)

type SqlLiteRepo struct {
	*gorm.DB
}

var _ repo.Repo = (*SqlLiteRepo)(nil)

func (r SqlLiteRepo) OfferRepo() repo.OfferRepo {
	return NewOfferRepo(r.DB)
}

func (r SqlLiteRepo) AutoMigrate() error {
	return r.GetDb().AutoMigrate(&offer{})
}

func (r SqlLiteRepo) DropSchema() error {
	m := r.GetDb().Migrator()
	if !m.HasTable(&offer{}) {
		return nil
	}
	return m.DropTable(&offer{})
}

func (r SqlLiteRepo) GetDb() *gorm.DB {
	return r.DB
}

func (r SqlLiteRepo) Close() error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r SqlLiteRepo) Transaction(cb func(txRepo repo.TxRepo) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return cb(&TxSqlliteRepo{tx})
	})
}

var _ repo.TxRepo = (*TxSqlliteRepo)(nil)

type TxSqlliteRepo struct {
	*gorm.DB
}

func (r *TxSqlliteRepo) OfferRepo() repo.OfferRepo {
	return NewOfferRepo(r.DB)
}

func OpenSqlite(cfg *config.Sqlite) (repo.Repo, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path+"?cache=shared&_journal_mode=wal&sync=normal"), &gorm.Config{})
	if err != nil {
		return nil, xerrors.Errorf("fail to connect sqlite: %s %w", cfg.Path, err)
	}

	if cfg.Debug {
		db = db.Debug()
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return &SqlLiteRepo{db}, nil
}
