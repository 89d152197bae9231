package withdraw

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/registry"
)

// validApprover ensures that given party can approve the request. Checks
// are done in a fixed order, so that each failure is reported with its own
// error.
func validApprover(
	db custody.ReadOnlyKVStore,
	accounts *registry.Controller,
	requests *Controller,
	approver custody.Address,
	accountID, requestID uint64,
) (*Request, *registry.Account, error) {
	if err := accounts.RequireOwner(db, approver, accountID); err != nil {
		return nil, nil, err
	}

	req, err := requests.Request(db, accountID, requestID)
	if err != nil && !ErrInvalidRequest.Is(err) {
		return nil, nil, err
	}
	if req != nil && req.HasApproval(approver) {
		return nil, nil, errors.Wrapf(ErrAlreadyApproved, "%s", approver)
	}
	if req == nil {
		return nil, nil, err
	}
	if req.Requester.Equals(approver) {
		return nil, nil, errors.Wrapf(ErrSelfApproval, "request %d", requestID)
	}
	if req.Approved {
		return nil, nil, errors.Wrapf(ErrAlreadyFullyApproved, "request %d", requestID)
	}

	account, err := accounts.Get(db, accountID)
	if err != nil {
		return nil, nil, err
	}
	return req, account, nil
}

// canWithdraw ensures that given party can execute the request.
func canWithdraw(
	db custody.ReadOnlyKVStore,
	requests *Controller,
	caller custody.Address,
	accountID, requestID uint64,
) (*Request, error) {
	req, err := requests.Request(db, accountID, requestID)
	if err != nil {
		return nil, err
	}
	if !req.Approved {
		return nil, errors.Wrapf(ErrNotYetApproved, "request %d has %d approvals", requestID, len(req.Approvals))
	}
	if !req.Requester.Equals(caller) {
		return nil, errors.Wrapf(ErrWrongRequester, "request %d", requestID)
	}
	return req, nil
}
