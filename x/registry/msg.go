package registry

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

var _ custody.Msg = (*CreateAccountMsg)(nil)

// Path returns the routing path for this message.
func (*CreateAccountMsg) Path() string {
	return "registry/create"
}

// Validate ensures the message is well formed. An empty owner list is valid
// and creates an account owned by the signer only.
func (m *CreateAccountMsg) Validate() error {
	var errs error
	for i, o := range m.Owners {
		if err := o.Validate(); err != nil {
			errs = errors.Append(errs, errors.Wrapf(err, "owner %d", i))
			continue
		}
		for _, prev := range m.Owners[:i] {
			if prev.Equals(o) {
				errs = errors.Append(errs, errors.Wrapf(errors.ErrDuplicate, "owner %d: %s", i, o))
				break
			}
		}
	}
	return errs
}

var _ custody.Msg = (*DepositMsg)(nil)

// Path returns the routing path for this message.
func (*DepositMsg) Path() string {
	return "registry/deposit"
}

// Validate ensures the message is well formed.
func (m *DepositMsg) Validate() error {
	if m.AccountID == 0 {
		return errors.Wrap(errors.ErrEmpty, "account id")
	}
	return nil
}
