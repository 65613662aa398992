package mysql

import (
	"time"

	"golang.org/x/xerrors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/aurum-ledger/aurum/config"
	"github.com/aurum-ledger/aurum/models/repo"
)

type MysqlRepo struct {
	*gorm.DB
}

var _ repo.Repo = (*MysqlRepo)(nil)

func (r MysqlRepo) OfferRepo() repo.OfferRepo {
	return NewOfferRepo(r.DB)
}

func (r MysqlRepo) AutoMigrate() error {
	return r.GetDb().AutoMigrate(&offer{})
}

func (r MysqlRepo) DropSchema() error {
	m := r.GetDb().Migrator()
	if !m.HasTable(&offer{}) {
		return nil
	}
	return m.DropTable(&offer{})
}

func (r MysqlRepo) GetDb() *gorm.DB {
	return r.DB
}

func (r MysqlRepo) Close() error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r MysqlRepo) Transaction(cb func(txRepo repo.TxRepo) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return cb(&TxMysqlRepo{tx})
	})
}

var _ repo.TxRepo = (*TxMysqlRepo)(nil)

type TxMysqlRepo struct {
	*gorm.DB
}

func (r *TxMysqlRepo) OfferRepo() repo.OfferRepo {
	return NewOfferRepo(r.DB)
}

func OpenMysql(cfg *config.Mysql) (repo.Repo, error) {
	db, err := gorm.Open(mysql.Open(cfg.ConnectionString), &gorm.Config{})
	if err != nil {
		return nil, xerrors.Errorf("[db connection failed] Database name: %s %w", cfg.ConnectionString, err)
	}

	db.Set("gorm:table_options", "CHARSET=utf8mb4")
	if cfg.Debug {
		db = db.Debug()
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetConnMaxLifetime(time.Minute * time.Duration(cfg.ConnMaxLifeTime))

	return &MysqlRepo{db}, nil
}
