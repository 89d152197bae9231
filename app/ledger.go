package app

import (
	"context"
	"sync"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/registry"
	"github.com/iov-one/custody/x/utils"
	"github.com/iov-one/custody/x/withdraw"
	"github.com/tendermint/tendermint/libs/log"
)

// Ledger executes custody messages against a committed store.
//
// State changing calls are serialized. Each runs on a cache wrap of the
// committed state that is written and committed only if the call succeeds.
// Queries can run concurrently with each other and only ever observe
// committed state.
type Ledger struct {
	mu sync.RWMutex

	store       custody.CommitKVStore
	handler     custody.Handler
	initializer custody.Initializer

	auth   x.Authenticator
	clock  custody.Clock
	sink   custody.EventSink
	funds  withdraw.FundsSink
	logger log.Logger

	accounts *registry.Controller
	requests *withdraw.Controller
	wallets  *cash.Controller
}

// LedgerOption configures a Ledger when created.
type LedgerOption func(*Ledger)

// WithAuth sets the identity provider. By default signers are read from the
// context with x.CtxAuth.
func WithAuth(a x.Authenticator) LedgerOption {
	return func(l *Ledger) { l.auth = a }
}

// WithClock sets the clock used to timestamp operations. The clock is
// always wrapped so that it never goes backwards.
func WithClock(c custody.Clock) LedgerOption {
	return func(l *Ledger) { l.clock = c }
}

// WithEventSink sets the receiver of events.
func WithEventSink(s custody.EventSink) LedgerOption {
	return func(l *Ledger) { l.sink = s }
}

// WithFundsSink sets the destination of withdrawn funds. By default funds
// are credited to the requester wallet.
func WithFundsSink(s withdraw.FundsSink) LedgerOption {
	return func(l *Ledger) { l.funds = s }
}

// WithLogger sets the logger.
func WithLogger(logger log.Logger) LedgerOption {
	return func(l *Ledger) { l.logger = logger }
}

// NewLedger returns a ledger operating on given store. The store must
// already be loaded.
func NewLedger(store custody.CommitKVStore, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		store:    store,
		auth:     x.CtxAuth{},
		clock:    custody.SystemClock,
		sink:     custody.NopSink{},
		logger:   log.NewNopLogger(),
		accounts: registry.NewController(),
		requests: withdraw.NewController(),
		wallets:  cash.NewController(),
	}
	for _, fn := range opts {
		fn(l)
	}
	if l.funds == nil {
		l.funds = cash.NewSink(l.wallets)
	}
	l.clock = custody.NewMonotonicClock(l.clock)

	router := NewRouter()
	registry.RegisterRoutes(router, l.auth, l.accounts)
	withdraw.RegisterRoutes(router, l.auth, l.accounts, l.requests, l.funds)
	l.handler = ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(),
		utils.NewSavepoint().OnCheck().OnDeliver(),
	).WithHandler(router)

	l.initializer = custody.ChainInitializers(
		&registry.Initializer{},
		cash.Initializer{},
	)
	return l
}

// InitGenesis loads the initial state. It can only be called on an empty
// ledger.
func (l *Ledger) InitGenesis(opts custody.Options) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	latest, err := l.store.LatestVersion()
	if err != nil {
		return err
	}
	if latest.Version != 0 {
		return errors.Wrapf(errors.ErrState, "ledger already initialized at version %d", latest.Version)
	}

	cache := l.store.CacheWrap()
	if err := l.initializer.FromGenesis(opts, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "genesis")
	}
	return l.commit(cache)
}

// Deliver executes the message. The signer is provided by the
// authenticator, by default it is read from the context (see x.CtxAuth).
func (l *Ledger) Deliver(ctx context.Context, msg custody.Msg) (*custody.DeliverResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ctx = l.context(ctx, "deliver", msg)
	cache := l.store.CacheWrap()
	res, err := l.handler.Deliver(ctx, cache, custody.NewTx(msg))
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := l.commit(cache); err != nil {
		return nil, err
	}
	for _, e := range res.Events {
		l.sink.Publish(ctx, e)
	}
	return res, nil
}

// Check verifies that the message would be accepted, without changing the
// state.
func (l *Ledger) Check(ctx context.Context, msg custody.Msg) (*custody.CheckResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ctx = l.context(ctx, "check", msg)
	cache := l.store.CacheWrap()
	defer cache.Discard()
	return l.handler.Check(ctx, cache, custody.NewTx(msg))
}

func (l *Ledger) context(ctx context.Context, call string, msg custody.Msg) custody.Context {
	ctx = custody.WithBlockTime(ctx, l.clock.Now())
	ctx = custody.WithLogger(ctx, l.logger)
	return custody.WithLogInfo(ctx, "call", call, "path", msg.Path())
}

func (l *Ledger) commit(cache custody.KVCacheWrap) error {
	if err := cache.Write(); err != nil {
		l.rollback()
		return errors.Wrap(err, "write")
	}
	id, err := l.store.Commit()
	if err != nil {
		l.rollback()
		return errors.Wrap(err, "commit")
	}
	l.logger.Debug("committed", "version", id.Version)
	return nil
}

// rollback drops uncommitted writes so that the next call does not persist
// them.
func (l *Ledger) rollback() {
	if r, ok := l.store.(interface{ Rollback() }); ok {
		r.Rollback()
		return
	}
	if err := l.store.LoadLatestVersion(); err != nil {
		l.logger.Error("cannot reload state", "err", err)
	}
}

// Version returns the latest committed version of the state.
func (l *Ledger) Version() (custody.CommitID, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.LatestVersion()
}
