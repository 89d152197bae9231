package custodytest

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/x"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced addresses.
// You can use either Signer or Signers (or both) attributes to reference
// addresses. Signer is always the main signer.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer custody.Address

	// Signers represents an authentication of multiple signers.
	Signers []custody.Address
}

var _ x.Authenticator = (*Auth)(nil)

func (a *Auth) GetSigners(custody.Context) []custody.Address {
	if a.Signer != nil {
		return append([]custody.Address{a.Signer}, a.Signers...)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
