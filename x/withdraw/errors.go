package withdraw

import "github.com/iov-one/custody/errors"

// withdraw takes 1100-1199
var (
	ErrAlreadyApproved      = errors.Register(1100, "already approved by this owner")
	ErrInvalidRequest       = errors.Register(1101, "no such withdrawal request")
	ErrSelfApproval         = errors.Register(1102, "requester cannot approve")
	ErrAlreadyFullyApproved = errors.Register(1103, "request already fully approved")
	ErrNotYetApproved       = errors.Register(1104, "request not approved")
	ErrWrongRequester       = errors.Register(1105, "not the requester")
	ErrTransferFailed       = errors.Register(1106, "funds transfer failed")
)
