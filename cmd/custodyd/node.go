package main

import (
	"context"
	"os"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/events"
	"github.com/iov-one/custody/store/iavl"
	"github.com/iov-one/custody/x"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	dbName = "custody"

	// eventQueueSize is the number of events buffered before they are
	// dropped.
	eventQueueSize = 256
)

// node holds the resources shared by all commands of a single process. The
// ledger is opened on first use.
type node struct {
	conf    Config
	logger  log.Logger
	metrics *prometheus.Registry

	store  *iavl.CommitStore
	events *events.Async
	ledger *app.Ledger
}

func newNode(conf Config, logger log.Logger) *node {
	return &node{
		conf:    conf,
		logger:  logger,
		metrics: prometheus.NewRegistry(),
	}
}

// Ledger returns the ledger stored in the home directory.
func (n *node) Ledger() (*app.Ledger, error) {
	if n.ledger != nil {
		return n.ledger, nil
	}
	if err := os.MkdirAll(n.conf.Home, 0700); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "home directory: %s", err)
	}
	store, err := iavl.NewCommitStore(n.conf.Home, dbName)
	if err != nil {
		return nil, err
	}

	counter, err := events.NewMetrics(n.metrics)
	if err != nil {
		store.Close()
		return nil, err
	}
	n.metrics.MustRegister(prometheus.NewGoCollector())
	n.events = events.NewAsync(events.Multi{
		events.NewLogSink(n.logger.With("module", "events")),
		counter,
	}, eventQueueSize)

	n.store = store
	n.ledger = app.NewLedger(store,
		app.WithLogger(n.logger),
		app.WithEventSink(n.events),
	)
	return n.ledger, nil
}

// Signer returns the address of the configured key.
func (n *node) Signer() (custody.Address, error) {
	key, err := crypto.LoadKey(n.conf.Key)
	if err != nil {
		return nil, errors.Wrap(err, "signer key")
	}
	return key.PublicKey().Address(), nil
}

// Deliver executes the message signed with the configured key.
func (n *node) Deliver(msg custody.Msg) (*custody.DeliverResult, error) {
	l, err := n.Ledger()
	if err != nil {
		return nil, err
	}
	signer, err := n.Signer()
	if err != nil {
		return nil, err
	}
	ctx := x.CtxAuth{}.SetSigners(context.Background(), signer)
	return l.Deliver(ctx, msg)
}

// Close flushes pending events and releases the store.
func (n *node) Close() {
	if n.events != nil {
		n.events.Close()
		if dropped := n.events.Dropped(); dropped > 0 {
			n.logger.Error("events dropped", "count", dropped)
		}
	}
	if n.store != nil {
		n.store.Close()
	}
}
