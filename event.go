package custody

import (
	"github.com/gogo/protobuf/proto"
)

// Event is a notification about a state change that already happened.
// Events are protobuf messages so that any transport can serialize them.
type Event interface {
	proto.Message

	// Kind returns the name of the event, ie. "AccountCreated".
	Kind() string
}

// EventSink receives events of successfully executed operations.
//
// Delivery is fire-and-forget: Publish must not block the caller for long
// and cannot report a failure. Any retry belongs to the sink.
type EventSink interface {
	Publish(ctx Context, e Event)
}

// NopSink drops all events.
type NopSink struct{}

var _ EventSink = NopSink{}

// Publish implements EventSink.
func (NopSink) Publish(Context, Event) {}
