/*
Package x contains the custody extensions.

Extensions implement common functionality (Handler, Decorator,
Initializer) and are combined together by the app package to construct
the ledger.

Note that message and model types in exported code will be prefixed by
the package, so follow standard go naming conventions and avoid
stutter. Use eg. `withdraw.ApproveMsg` in place of `withdraw.WithdrawApproveMsg`.
*/
package x
