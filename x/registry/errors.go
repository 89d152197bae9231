package registry

import "github.com/iov-one/custody/errors"

// registry takes 1000-1099
var (
	// ErrNotOwner is returned when the caller is not an owner of the
	// account.
	ErrNotOwner = errors.Register(1000, "not an account owner")

	// ErrInsufficientBalance is returned when the account balance does not
	// cover the requested amount.
	ErrInsufficientBalance = errors.Register(1001, "insufficient balance")

	// ErrMembershipCap is returned when a party is already a member of the
	// maximum number of accounts.
	ErrMembershipCap = errors.Register(1002, "membership cap exceeded")
)
