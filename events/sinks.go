package events

import (
	"github.com/iov-one/custody"
	"github.com/tendermint/tendermint/libs/log"
)

// LogSink writes every event to a logger.
type LogSink struct {
	logger log.Logger
}

var _ custody.EventSink = (*LogSink)(nil)

// NewLogSink returns a sink logging events with given logger.
func NewLogSink(logger log.Logger) *LogSink {
	return &LogSink{logger: logger.With("module", "events")}
}

// Publish implements custody.EventSink.
func (s *LogSink) Publish(_ custody.Context, e custody.Event) {
	s.logger.Info("event", "kind", e.Kind(), "payload", e.String())
}

// Multi publishes every event to all sinks, in order.
type Multi []custody.EventSink

var _ custody.EventSink = Multi(nil)

// Publish implements custody.EventSink.
func (m Multi) Publish(ctx custody.Context, e custody.Event) {
	for _, s := range m {
		s.Publish(ctx, e)
	}
}
