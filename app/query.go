package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/x/withdraw"
)

// view runs fn with a read only view of the committed state.
func (l *Ledger) view(fn func(db custody.ReadOnlyKVStore) error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	cache := l.store.CacheWrap()
	defer cache.Discard()
	return fn(cache)
}

// Accounts returns ids of all accounts the party is an owner of, in
// creation order. An unknown party has no accounts.
func (l *Ledger) Accounts(party custody.Address) ([]uint64, error) {
	var ids []uint64
	err := l.view(func(db custody.ReadOnlyKVStore) error {
		var err error
		ids, err = l.accounts.Accounts(db, party)
		return err
	})
	return ids, err
}

// Owners returns the owner set of an account. ErrNotFound is returned for an
// unknown account.
func (l *Ledger) Owners(accountID uint64) ([]custody.Address, error) {
	var owners []custody.Address
	err := l.view(func(db custody.ReadOnlyKVStore) error {
		var err error
		owners, err = l.accounts.Owners(db, accountID)
		return err
	})
	return owners, err
}

// Balance returns the funds held by an account. ErrNotFound is returned for
// an unknown account.
func (l *Ledger) Balance(accountID uint64) (uint64, error) {
	var balance uint64
	err := l.view(func(db custody.ReadOnlyKVStore) error {
		var err error
		balance, err = l.accounts.Balance(db, accountID)
		return err
	})
	return balance, err
}

// Request returns a pending withdrawal request.
func (l *Ledger) Request(accountID, requestID uint64) (*withdraw.Request, error) {
	var req *withdraw.Request
	err := l.view(func(db custody.ReadOnlyKVStore) error {
		var err error
		req, err = l.requests.Request(db, accountID, requestID)
		return err
	})
	return req, err
}

// Requests returns all pending withdrawal requests of an account.
func (l *Ledger) Requests(accountID uint64) ([]*withdraw.Request, error) {
	var reqs []*withdraw.Request
	err := l.view(func(db custody.ReadOnlyKVStore) error {
		var err error
		reqs, err = l.requests.Requests(db, accountID)
		return err
	})
	return reqs, err
}

// Wallet returns the funds a party withdrew from custody.
func (l *Ledger) Wallet(owner custody.Address) (uint64, error) {
	var balance uint64
	err := l.view(func(db custody.ReadOnlyKVStore) error {
		var err error
		balance, err = l.wallets.Balance(db, owner)
		return err
	})
	return balance, err
}
