package registry

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ custody.Initializer = (*Initializer)(nil)

// FromGenesis stores the registry configuration and creates the accounts
// listed under the "registry" key. Seeded accounts are not subject to the
// membership cap.
func (*Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	if err := gconf.InitConfig(db, opts, confPkg, DefaultConfiguration()); err != nil {
		return errors.Wrap(err, "init config")
	}

	var accounts []struct {
		Owners  []custody.Address `json:"owners"`
		Balance uint64            `json:"balance"`
	}
	if err := opts.ReadOptions("registry", &accounts); err != nil {
		return err
	}
	ctrl := NewController()
	for i, a := range accounts {
		account := Account{Owners: a.Owners, Balance: a.Balance}
		if err := account.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		if _, err := ctrl.Create(db, &account); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
