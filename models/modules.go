package models

import (
	"golang.org/x/xerrors"

	"github.com/aurum-ledger/aurum/config"
	"github.com/aurum-ledger/aurum/models/mysql"
	"github.com/aurum-ledger/aurum/models/repo"
	"github.com/aurum-ledger/aurum/models/sqlite"
)

func SetDataBase(cfg *config.DbConfig) (repo.Repo, error) {
	switch cfg.Type {
	case "sqlite":
		return sqlite.OpenSqlite(&cfg.Sqlite)
	case "mysql":
		return mysql.OpenMysql(&cfg.Mysql)
	default:
		return nil, xerrors.Errorf("unsupport db type,(%s, %s)", "sqlite", "mysql")
	}
}

func AutoMigrate(repo repo.Repo) error {
	return repo.AutoMigrate()
}
