package x

import (
	"context"

	"github.com/iov-one/custody"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding one identity provider for all extensions.
type Authenticator interface {
	// GetSigners reveals all authenticated parties.
	GetSigners(custody.Context) []custody.Address
	// HasAddress checks if any signer matches this address.
	HasAddress(custody.Context, custody.Address) bool
}

// MainSigner returns the first signer if any, otherwise nil
func MainSigner(ctx custody.Context, auth Authenticator) custody.Address {
	signers := auth.GetSigners(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

func containsAddress(set []custody.Address, a custody.Address) bool {
	for _, s := range set {
		if s.Equals(a) {
			return true
		}
	}
	return false
}

type contextKey int // local to the x package

const (
	contextKeySigners contextKey = iota
)

// CtxAuth authenticates parties stored in the context. The identity
// provider (ie. a signature verifying transport) authenticates the caller
// and calls SetSigners before the message is dispatched.
type CtxAuth struct{}

var _ Authenticator = CtxAuth{}

// SetSigners returns a context authenticating given parties. Previously set
// signers are replaced.
func (CtxAuth) SetSigners(ctx custody.Context, signers ...custody.Address) custody.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// GetSigners returns who signed the current Context.
// May be empty
func (CtxAuth) GetSigners(ctx custody.Context) []custody.Address {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]custody.Address)
	return val
}

// HasAddress returns true if given address signed the current Context.
func (a CtxAuth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	return containsAddress(a.GetSigners(ctx), addr)
}
