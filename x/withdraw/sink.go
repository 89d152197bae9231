package withdraw

import "github.com/iov-one/custody"

// FundsSink moves withdrawn funds out of custody. It is called as the last
// step of a withdrawal, with the store of the running operation. A returned
// error fails the withdrawal and all of its state changes are discarded.
type FundsSink interface {
	Transfer(ctx custody.Context, db custody.KVStore, dest custody.Address, amount uint64) error
}
