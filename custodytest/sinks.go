package custodytest

import (
	"sync"

	"github.com/iov-one/custody"
)

// EventRecorder is an EventSink that keeps all published events in memory.
type EventRecorder struct {
	mu     sync.Mutex
	events []custody.Event
}

var _ custody.EventSink = (*EventRecorder)(nil)

// Publish implements custody.EventSink.
func (r *EventRecorder) Publish(_ custody.Context, e custody.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns all events published so far.
func (r *EventRecorder) Events() []custody.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]custody.Event(nil), r.events...)
}

// Kinds returns the kind of every event published so far, in order.
func (r *EventRecorder) Kinds() []string {
	events := r.Events()
	kinds := make([]string, len(events))
	for i, e := range events {
		kinds[i] = e.Kind()
	}
	return kinds
}

// Transfer records a single funds transfer.
type Transfer struct {
	Dest   custody.Address
	Amount uint64
}

// FundsSink is a funds transfer sink that records transfers. When Err is
// set, every transfer fails with it and nothing is recorded.
type FundsSink struct {
	Err error

	mu        sync.Mutex
	transfers []Transfer
}

// Transfer records the transfer or returns the configured error.
func (s *FundsSink) Transfer(_ custody.Context, _ custody.KVStore, dest custody.Address, amount uint64) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	s.transfers = append(s.transfers, Transfer{Dest: dest, Amount: amount})
	s.mu.Unlock()
	return nil
}

// Transfers returns all successful transfers.
func (s *FundsSink) Transfers() []Transfer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Transfer(nil), s.transfers...)
}
