package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigSaveLoad(t *testing.T) {
	cfg := DefaultOffersConfig()
	cfg.HomeDir = t.TempDir()
	cfg.Db.Type = "mysql"
	cfg.Db.Mysql.ConnectionString = "user:pass@(localhost:3306)/offers?parseTime=true"

	require.NoError(t, SaveConfig(cfg))

	loaded := DefaultOffersConfig()
	loaded.HomeDir = cfg.HomeDir
	cfgPath, err := cfg.ConfigPath()
	require.NoError(t, err)
	require.NoError(t, LoadConfig(cfgPath, loaded))

	assert.Equal(t, "mysql", loaded.Db.Type)
	assert.Equal(t, cfg.Db.Mysql.ConnectionString, loaded.Db.Mysql.ConnectionString)
	assert.Equal(t, DefSqlitePath, loaded.Db.Sqlite.Path)
}

func TestSqlitePath(t *testing.T) {
	cfg := DefaultOffersConfig()
	cfg.HomeDir = "/var/lib/aurum"

	p, err := cfg.SqlitePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/var/lib/aurum", DefSqlitePath), p)

	cfg.Db.Sqlite.Path = "/tmp/explicit.db"
	p, err = cfg.SqlitePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/explicit.db", p)
}
