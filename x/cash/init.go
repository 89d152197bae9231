package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const optKey = "cash"

// GenesisWallet is used to parse the json from genesis file.
type GenesisWallet struct {
	Address custody.Address `json:"address"`
	Balance uint64          `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis will parse initial wallets from genesis
// and save them to the database
func (Initializer) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	var wallets []GenesisWallet
	if err := opts.ReadOptions(optKey, &wallets); err != nil {
		return err
	}
	ctrl := NewController()
	for i, w := range wallets {
		if err := ctrl.Credit(kv, w.Address, w.Balance); err != nil {
			return errors.Wrapf(err, "wallet #%d", i)
		}
	}
	return nil
}
