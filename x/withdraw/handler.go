package withdraw

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/registry"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r custody.Registry, auth x.Authenticator, accounts *registry.Controller, requests *Controller, sink FundsSink) {
	r.Handle(&RequestMsg{}, RequestHandler{auth: auth, accounts: accounts, requests: requests})
	r.Handle(&ApproveMsg{}, ApproveHandler{auth: auth, accounts: accounts, requests: requests})
	r.Handle(&WithdrawMsg{}, WithdrawHandler{auth: auth, accounts: accounts, requests: requests, sink: sink})
}

// RequestHandler creates withdrawal requests.
type RequestHandler struct {
	auth     x.Authenticator
	accounts *registry.Controller
	requests *Controller
}

var _ custody.Handler = RequestHandler{}

// Check verifies the request can be created.
func (h RequestHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

// Deliver stores a new request without approvals. The request id is
// returned as the result data.
func (h RequestHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, requester, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := custody.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	owners, err := h.accounts.Owners(db, msg.AccountID)
	if err != nil {
		return nil, err
	}

	req := &Request{
		AccountID: msg.AccountID,
		Requester: requester,
		Amount:    msg.Amount,
		// Without co-owners there is nobody to wait for.
		Approved:  quorum(len(owners)) == 0,
		CreatedAt: now.Unix(),
	}
	id, err := h.requests.Create(db, req)
	if err != nil {
		return nil, err
	}

	return &custody.DeliverResult{
		Data: RequestKey(msg.AccountID, id),
		Log:  "withdrawal requested",
		Events: []custody.Event{&WithdrawRequested{
			Requester: requester,
			Amount:    msg.Amount,
			AccountID: msg.AccountID,
			RequestID: id,
			Time:      now.Unix(),
		}},
	}, nil
}

func (h RequestHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*RequestMsg, custody.Address, error) {
	var msg RequestMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	requester := x.MainSigner(ctx, h.auth)
	if err := h.accounts.RequireOwner(db, requester, msg.AccountID); err != nil {
		return nil, nil, err
	}
	if err := h.accounts.RequireBalance(db, msg.AccountID, msg.Amount); err != nil {
		return nil, nil, err
	}
	return &msg, requester, nil
}

// ApproveHandler records approvals of withdrawal requests.
type ApproveHandler struct {
	auth     x.Authenticator
	accounts *registry.Controller
	requests *Controller
}

var _ custody.Handler = ApproveHandler{}

// Check verifies the signer can approve the request.
func (h ApproveHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

// Deliver records the approval. No event is published.
func (h ApproveHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	approver, req, account, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	req.Approve(approver, len(account.Owners))
	if err := h.requests.Save(db, req); err != nil {
		return nil, err
	}
	res := &custody.DeliverResult{Log: "approval recorded"}
	if req.Approved {
		res.Log = "request approved"
	}
	return res, nil
}

func (h ApproveHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (custody.Address, *Request, *registry.Account, error) {
	var msg ApproveMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	approver := x.MainSigner(ctx, h.auth)
	req, account, err := validApprover(db, h.accounts, h.requests, approver, msg.AccountID, msg.RequestID)
	if err != nil {
		return nil, nil, nil, err
	}
	return approver, req, account, nil
}

// WithdrawHandler executes approved withdrawal requests.
type WithdrawHandler struct {
	auth     x.Authenticator
	accounts *registry.Controller
	requests *Controller
	sink     FundsSink
}

var _ custody.Handler = WithdrawHandler{}

// Check verifies the request can be executed by the signer.
func (h WithdrawHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

// Deliver debits the account, removes the request and transfers the funds
// to the requester, in this order. When the transfer fails an error is
// returned and the caller must discard all changes made to the store.
func (h WithdrawHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, req, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := custody.BlockTime(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.accounts.Debit(db, msg.AccountID, req.Amount); err != nil {
		return nil, err
	}
	if err := h.requests.Delete(db, msg.AccountID, msg.RequestID); err != nil {
		return nil, err
	}
	if err := h.sink.Transfer(ctx, db, req.Requester, req.Amount); err != nil {
		return nil, errors.Wrapf(ErrTransferFailed, "%d to %s: %s", req.Amount, req.Requester, err)
	}

	return &custody.DeliverResult{
		Log: "withdrawal completed",
		Events: []custody.Event{&WithdrawCompleted{
			RequestID: msg.RequestID,
			AccountID: msg.AccountID,
			Time:      now.Unix(),
		}},
	}, nil
}

func (h WithdrawHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*WithdrawMsg, *Request, error) {
	var msg WithdrawMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller := x.MainSigner(ctx, h.auth)
	req, err := canWithdraw(db, h.requests, caller, msg.AccountID, msg.RequestID)
	if err != nil {
		return nil, nil, err
	}
	// The balance may have changed since the request was made.
	if err := h.accounts.RequireBalance(db, msg.AccountID, req.Amount); err != nil {
		return nil, nil, err
	}
	return &msg, req, nil
}
