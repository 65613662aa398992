package config

import (
	"path"

	"github.com/mitchellh/go-homedir"
)

type HomeDir string

const configFileName = "config.toml"

func (c *OffersConfig) HomePath() (HomeDir, error) {
	p, err := homedir.Expand(c.HomeDir)
	if err != nil {
		return "", err
	}
	return HomeDir(p), nil
}

func (c *OffersConfig) HomeJoin(sep ...string) (string, error) {
	home, err := homedir.Expand(c.HomeDir)
	if err != nil {
		return "", err
	}
	finalPath := home
	for _, p := range sep {
		finalPath = path.Join(finalPath, p)
	}
	return finalPath, nil
}

func (c *OffersConfig) ConfigPath() (string, error) {
	return c.HomeJoin(configFileName)
}

// SqlitePath resolves the configured sqlite file against the home directory.
func (c *OffersConfig) SqlitePath() (string, error) {
	if path.IsAbs(c.Db.Sqlite.Path) {
		return c.Db.Sqlite.Path, nil
	}
	return c.HomeJoin(c.Db.Sqlite.Path)
}
