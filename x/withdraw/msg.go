package withdraw

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

var _ custody.Msg = (*RequestMsg)(nil)

// Path returns the routing path for this message.
func (*RequestMsg) Path() string {
	return "withdraw/request"
}

// Validate ensures the message is well formed. A zero amount is valid.
func (m *RequestMsg) Validate() error {
	if m.AccountID == 0 {
		return errors.Wrap(errors.ErrEmpty, "account id")
	}
	return nil
}

var _ custody.Msg = (*ApproveMsg)(nil)

// Path returns the routing path for this message.
func (*ApproveMsg) Path() string {
	return "withdraw/approve"
}

// Validate ensures the message is well formed.
func (m *ApproveMsg) Validate() error {
	return validateIDs(m.AccountID, m.RequestID)
}

var _ custody.Msg = (*WithdrawMsg)(nil)

// Path returns the routing path for this message.
func (*WithdrawMsg) Path() string {
	return "withdraw/execute"
}

// Validate ensures the message is well formed.
func (m *WithdrawMsg) Validate() error {
	return validateIDs(m.AccountID, m.RequestID)
}

func validateIDs(accountID, requestID uint64) error {
	var errs error
	if accountID == 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrEmpty, "account id"))
	}
	if requestID == 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrEmpty, "request id"))
	}
	return errs
}
