package registry

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

const (
	confPkg = "registry"

	// DefaultMaxMemberships is used when the genesis does not configure
	// the registry.
	DefaultMaxMemberships = 3
)

// Validate ensures the configuration is valid.
func (c *Configuration) Validate() error {
	if c.MaxMemberships == 0 {
		return errors.Wrap(errors.ErrModel, "max memberships must be positive")
	}
	return nil
}

// DefaultConfiguration returns the configuration used when none is provided.
func DefaultConfiguration() *Configuration {
	return &Configuration{MaxMemberships: DefaultMaxMemberships}
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	case err != nil:
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// SaveConfiguration validates and stores the registry configuration.
func SaveConfiguration(db custody.KVStore, conf *Configuration) error {
	return gconf.Save(db, confPkg, conf)
}
