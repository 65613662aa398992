package config

// Sqlite holds the embedded database settings. Path is relative to the node
// home directory unless absolute.
type Sqlite struct {
	Path  string
	Debug bool
}

type Mysql struct {
	ConnectionString string
	MaxOpenConn      int
	MaxIdleConn      int
	// ConnMaxLifeTime is in minutes.
	ConnMaxLifeTime int
	Debug           bool
}

type DbConfig struct {
	Type   string
	Sqlite Sqlite
	Mysql  Mysql
}

// OffersConfig is the top level node configuration.
type OffersConfig struct {
	HomeDir string `toml:"-"`

	Db DbConfig
}

const DefSqlitePath = "offers.db"

func DefaultOffersConfig() *OffersConfig {
	return &OffersConfig{
		Db: DbConfig{
			Type: "sqlite",
			Sqlite: Sqlite{
				Path: DefSqlitePath,
			},
			Mysql: Mysql{
				MaxOpenConn:     100,
				MaxIdleConn:     100,
				ConnMaxLifeTime: 1,
			},
		},
	}
}
