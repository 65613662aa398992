package mysql

import (
	"crypto/rand"
	"database/sql"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/aurum-ledger/aurum/models/repo"
	"github.com/aurum-ledger/aurum/types"
)

func getTestAccount(t *testing.T) types.AccountID {
	var id types.AccountID
	_, err := rand.Read(id[:])
	assert.NoError(t, err)
	return id
}

func setup(t *testing.T) (repo.Repo, sqlmock.Sqlmock, *sql.DB) {
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)

	mock.ExpectQuery("SELECT VERSION()").WithArgs().
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(""))

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn: sqlDB,
	}))
	assert.NoError(t, err)

	return MysqlRepo{DB: gormDB}, mock, sqlDB
}

func wrapper(f func(*testing.T, repo.Repo, sqlmock.Sqlmock), repo repo.Repo, mock sqlmock.Sqlmock) func(t *testing.T) {
	return func(t *testing.T) {
		f(t, repo, mock)
	}
}

func closeDB(mock sqlmock.Sqlmock, sqlDB *sql.DB) error {
	mock.ExpectClose()
	return sqlDB.Close()
}

func getMysqlDryrunDB() (*gorm.DB, error) {
	sqlDB, _, err := sqlmock.New()
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}
	return gormDB, nil
}

func getSQL(db *gorm.DB) (sql string, vars []driver.Value, err error) {
	stmt := db.Statement
	sql = stmt.SQL.String()
	varsI := stmt.Vars

	vars = make([]driver.Value, 0, len(varsI))
	for _, v := range varsI {
		vars = append(vars, v)
	}

	return sql, vars, nil
}

var offerColumns = []string{
	"account_id", "sequence",
	"pays_code", "pays_issuer", "gets_code", "gets_issuer",
	"amount", "price_n", "price_d", "flags", "price",
}

func nullable(v sql.NullString) driver.Value {
	if !v.Valid {
		return nil
	}
	return v.String
}

func offerRows(rows ...*offer) *sqlmock.Rows {
	res := sqlmock.NewRows(offerColumns)
	for _, r := range rows {
		res.AddRow(r.AccountID, r.Sequence,
			nullable(r.PaysCode), nullable(r.PaysIssuer),
			nullable(r.GetsCode), nullable(r.GetsIssuer),
			r.Amount, r.PriceN, r.PriceD, r.Flags, r.Price)
	}
	return res
}
