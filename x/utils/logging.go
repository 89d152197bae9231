package utils

import (
	"time"

	"github.com/iov-one/custody"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging logs every message passing through with the path and the time
// it took. Failures are logged as errors. Successful Check calls are logged
// at debug level and successful Deliver calls at info level.
type Logging struct{}

var _ custody.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check implements custody.Decorator.
func (Logging) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	logger := requestLogger(ctx, tx, start)
	switch {
	case err != nil:
		logger.Error("check failed", "err", err)
	default:
		logger.Debug(res.Log)
	}
	return res, err
}

// Deliver implements custody.Decorator.
func (Logging) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	logger := requestLogger(ctx, tx, start)
	switch {
	case err != nil:
		logger.Error("deliver failed", "err", err)
	default:
		logger.Info(res.Log, "events", len(res.Events))
	}
	return res, err
}

func requestLogger(ctx custody.Context, tx custody.Tx, start time.Time) log.Logger {
	return custody.GetLogger(ctx).With(
		"path", custody.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)
}
