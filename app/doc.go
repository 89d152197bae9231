/*
Package app assembles the custody extensions into a ledger.

The Ledger owns the committed store and executes messages one at a time.
Every message runs through a chain of decorators before reaching the handler
registered for its path:

	app.ChainDecorators(
	  utils.NewRecovery(),
	  utils.NewLogging(),
	  utils.NewSavepoint().OnCheck().OnDeliver(),
	).WithHandler(router)

State changes of a successful message are committed before its events are
published. A failed message leaves no trace.
*/
package app
