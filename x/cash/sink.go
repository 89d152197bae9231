package cash

import (
	"github.com/iov-one/custody"
)

// Sink moves withdrawn funds into the wallet of the destination. It is the
// default funds transfer sink of the withdraw extension.
type Sink struct {
	ctrl *Controller
}

// NewSink returns a sink crediting wallets through given controller.
func NewSink(ctrl *Controller) *Sink {
	return &Sink{ctrl: ctrl}
}

// Transfer credits the destination wallet. It is executed in the same
// transaction as the withdrawal, so a failure discards the withdrawal too.
func (s *Sink) Transfer(ctx custody.Context, db custody.KVStore, dest custody.Address, amount uint64) error {
	if err := s.ctrl.Credit(db, dest, amount); err != nil {
		return err
	}
	custody.GetLogger(ctx).Debug("funds transferred", "dest", dest, "amount", amount)
	return nil
}
