package events

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts published events by kind.
type Metrics struct {
	events *prometheus.CounterVec
}

var _ custody.EventSink = (*Metrics)(nil)

// NewMetrics registers the event counter with given registerer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "custody",
		Name:      "events_total",
		Help:      "Number of published ledger events.",
	}, []string{"kind"})
	if err := reg.Register(events); err != nil {
		return nil, errors.Wrapf(errors.ErrState, "register metrics: %s", err)
	}
	return &Metrics{events: events}, nil
}

// Publish implements custody.EventSink.
func (m *Metrics) Publish(_ custody.Context, e custody.Event) {
	m.events.WithLabelValues(e.Kind()).Inc()
}
