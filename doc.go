/*
Package custody defines the interfaces shared by all parts of the
shared-custody ledger: storage, messages and transactions, handlers and
decorators, events, addresses and the clock.

The ledger keeps jointly owned accounts. Any owner may request a withdrawal,
but the funds only move once every other owner approved it. The account
bookkeeping lives in x/registry, the withdrawal state machine in x/withdraw
and the runtime that executes messages one at a time in app.

We pass context through context.Context between app, middleware, and
handlers. There should exist two functions for every XYZ of type T that we
want to support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)
*/
package custody
