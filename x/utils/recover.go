package utils

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Recovery converts a panic of the next handler into an errors.ErrPanic
// error. The panic is logged together with the message path.
type Recovery struct{}

var _ custody.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check implements custody.Decorator.
func (r Recovery) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Checker) (_ *custody.CheckResult, err error) {
	defer logPanic(ctx, tx, &err)
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver implements custody.Decorator.
func (r Recovery) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Deliverer) (_ *custody.DeliverResult, err error) {
	defer logPanic(ctx, tx, &err)
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}

// logPanic runs after errors.Recover converted a panic into an error.
func logPanic(ctx custody.Context, tx custody.Tx, err *error) {
	if errors.ErrPanic.Is(*err) {
		custody.GetLogger(ctx).Error("handler panic", "path", custody.GetPath(tx), "err", *err)
	}
}
