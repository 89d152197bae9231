package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// Controller gives access to wallets.
type Controller struct {
	bucket orm.ModelBucket
}

// NewController returns a controller operating on the wallet bucket.
func NewController() *Controller {
	return &Controller{bucket: NewWalletBucket()}
}

// Balance returns the funds of given party. A party without a wallet has
// zero balance.
func (c *Controller) Balance(db custody.ReadOnlyKVStore, owner custody.Address) (uint64, error) {
	if err := owner.Validate(); err != nil {
		return 0, errors.Wrap(err, "owner")
	}
	var w Wallet
	switch err := c.bucket.One(db, owner, &w); {
	case err == nil:
		return w.Balance, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// Credit adds given amount to the wallet of the party, creating the wallet
// if needed. It fails if it overflows the wallet.
func (c *Controller) Credit(db custody.KVStore, owner custody.Address, amount uint64) error {
	balance, err := c.Balance(db, owner)
	if err != nil {
		return err
	}
	if balance+amount < balance {
		return errors.Wrapf(errors.ErrOverflow, "wallet %s", owner)
	}
	w := &Wallet{Balance: balance + amount}
	if _, err := c.bucket.Put(db, owner, w); err != nil {
		return errors.Wrap(err, "cannot store wallet")
	}
	return nil
}
