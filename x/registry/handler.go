package registry

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r custody.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle(&CreateAccountMsg{}, CreateAccountHandler{auth: auth, ctrl: ctrl})
	r.Handle(&DepositMsg{}, DepositHandler{auth: auth, ctrl: ctrl})
}

// CreateAccountHandler creates accounts owned by the signer and the parties
// listed in the message.
type CreateAccountHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ custody.Handler = CreateAccountHandler{}

// Check verifies the account can be created.
func (h CreateAccountHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

// Deliver stores the account. The id of the new account is returned as the
// result data.
func (h CreateAccountHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, creator, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := custody.BlockTime(ctx)
	if err != nil {
		return nil, err
	}

	owners := make([]custody.Address, 0, len(msg.Owners)+1)
	owners = append(owners, msg.Owners...)
	owners = append(owners, creator)

	account := &Account{
		Owners:    owners,
		CreatedAt: now.Unix(),
	}
	id, err := h.ctrl.Create(db, account)
	if err != nil {
		return nil, err
	}

	return &custody.DeliverResult{
		Data: AccountKey(id),
		Log:  "account created",
		Events: []custody.Event{&AccountCreated{
			Owners:    owners,
			AccountID: id,
			Time:      now.Unix(),
		}},
	}, nil
}

// validate does all common pre-processing between Check and Deliver. All
// membership caps are checked before anything is written.
func (h CreateAccountHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*CreateAccountMsg, custody.Address, error) {
	var msg CreateAccountMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	creator := x.MainSigner(ctx, h.auth)
	if creator == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "signer required")
	}
	for _, o := range msg.Owners {
		if o.Equals(creator) {
			return nil, nil, errors.Wrapf(errors.ErrDuplicate, "creator %s is listed as an owner", creator)
		}
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	for _, o := range msg.Owners {
		n, err := h.ctrl.Memberships(db, o)
		if err != nil {
			return nil, nil, err
		}
		if n >= int(conf.MaxMemberships) {
			return nil, nil, errors.Wrapf(ErrMembershipCap, "%s is an owner of %d accounts", o, n)
		}
	}
	return &msg, creator, nil
}

// DepositHandler adds funds to an account.
type DepositHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ custody.Handler = DepositHandler{}

// Check verifies the signer can deposit to the account.
func (h DepositHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

// Deliver increases the account balance.
func (h DepositHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, depositor, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := custody.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Credit(db, msg.AccountID, msg.Amount); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{
		Log: "deposit accepted",
		Events: []custody.Event{&DepositAmount{
			Depositor: depositor,
			AccountID: msg.AccountID,
			Amount:    msg.Amount,
			Time:      now.Unix(),
		}},
	}, nil
}

func (h DepositHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*DepositMsg, custody.Address, error) {
	var msg DepositMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	depositor := x.MainSigner(ctx, h.auth)
	if err := h.ctrl.RequireOwner(db, depositor, msg.AccountID); err != nil {
		return nil, nil, err
	}
	return &msg, depositor, nil
}
