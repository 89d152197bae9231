package registry

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// Controller gives access to accounts. It is used by this package handlers
// and by other extensions that settle against an account balance.
type Controller struct {
	bucket orm.ModelBucket
}

// NewController returns a controller operating on the account bucket.
func NewController() *Controller {
	return &Controller{bucket: NewAccountBucket()}
}

// Get loads the account with given id. ErrNotFound is returned if the
// account does not exist.
func (c *Controller) Get(db custody.ReadOnlyKVStore, accountID uint64) (*Account, error) {
	var a Account
	if err := c.bucket.One(db, AccountKey(accountID), &a); err != nil {
		return nil, errors.Wrapf(err, "account %d", accountID)
	}
	return &a, nil
}

// Create stores a new account and returns its id. Owners are indexed.
func (c *Controller) Create(db custody.KVStore, a *Account) (uint64, error) {
	key, err := c.bucket.Put(db, nil, a)
	if err != nil {
		return 0, errors.Wrap(err, "cannot store account")
	}
	return AccountID(key)
}

// Accounts returns the ids of all accounts given party is an owner of, in
// creation order. An unknown party has no accounts.
func (c *Controller) Accounts(db custody.ReadOnlyKVStore, party custody.Address) ([]uint64, error) {
	var accounts []*Account
	keys, err := c.bucket.ByIndex(db, ownerIndex, party, &accounts)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(keys))
	for i, k := range keys {
		if !accounts[i].HasOwner(party) {
			return nil, errors.Wrapf(errors.ErrState, "owner index out of sync for %s", party)
		}
		id, err := AccountID(k)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Memberships returns the number of accounts given party is an owner of.
func (c *Controller) Memberships(db custody.ReadOnlyKVStore, party custody.Address) (int, error) {
	keys, err := c.bucket.IndexKeys(db, ownerIndex, party)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

// Owners returns the owner set of the account.
func (c *Controller) Owners(db custody.ReadOnlyKVStore, accountID uint64) ([]custody.Address, error) {
	a, err := c.Get(db, accountID)
	if err != nil {
		return nil, err
	}
	return a.Owners, nil
}

// Balance returns the funds held by the account.
func (c *Controller) Balance(db custody.ReadOnlyKVStore, accountID uint64) (uint64, error) {
	a, err := c.Get(db, accountID)
	if err != nil {
		return 0, err
	}
	return a.Balance, nil
}

// RequireOwner returns ErrNotOwner unless given party is in the owner set
// of the account. An unknown account has no owners.
func (c *Controller) RequireOwner(db custody.ReadOnlyKVStore, party custody.Address, accountID uint64) error {
	if len(party) == 0 {
		return errors.Wrap(ErrNotOwner, "no signer")
	}
	a, err := c.Get(db, accountID)
	switch {
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(ErrNotOwner, "%s of unknown account %d", party, accountID)
	case err != nil:
		return err
	}
	if !a.HasOwner(party) {
		return errors.Wrapf(ErrNotOwner, "%s of account %d", party, accountID)
	}
	return nil
}

// RequireBalance returns ErrInsufficientBalance unless the account holds at
// least given amount.
func (c *Controller) RequireBalance(db custody.ReadOnlyKVStore, accountID uint64, amount uint64) error {
	balance, err := c.Balance(db, accountID)
	if err != nil {
		return err
	}
	if balance < amount {
		return errors.Wrapf(ErrInsufficientBalance, "balance %d, required %d", balance, amount)
	}
	return nil
}

// Credit adds given amount to the account balance.
func (c *Controller) Credit(db custody.KVStore, accountID uint64, amount uint64) error {
	a, err := c.Get(db, accountID)
	if err != nil {
		return err
	}
	if a.Balance+amount < a.Balance {
		return errors.Wrapf(errors.ErrOverflow, "account %d balance", accountID)
	}
	a.Balance += amount
	if _, err := c.bucket.Put(db, AccountKey(accountID), a); err != nil {
		return errors.Wrap(err, "cannot store account")
	}
	return nil
}

// Debit subtracts given amount from the account balance. The balance can
// never go below zero.
func (c *Controller) Debit(db custody.KVStore, accountID uint64, amount uint64) error {
	a, err := c.Get(db, accountID)
	if err != nil {
		return err
	}
	if a.Balance < amount {
		return errors.Wrapf(ErrInsufficientBalance, "balance %d, required %d", a.Balance, amount)
	}
	a.Balance -= amount
	if _, err := c.bucket.Put(db, AccountKey(accountID), a); err != nil {
		return errors.Wrap(err, "cannot store account")
	}
	return nil
}
