package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store/iavl"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/registry"
	"github.com/iov-one/custody/x/withdraw"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	genesisTime = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	alice = custodytest.NewAddress("alice")
	bob   = custodytest.NewAddress("bob")
	carol = custodytest.NewAddress("carol")
)

func signedBy(signer custody.Address) custody.Context {
	return x.CtxAuth{}.SetSigners(context.Background(), signer)
}

func newTestLedger(t testing.TB, opts ...LedgerOption) *Ledger {
	t.Helper()
	l := NewLedger(iavl.MockCommitStore(), opts...)
	require.NoError(t, l.InitGenesis(custody.Options{}))
	return l
}

func createAccount(t testing.TB, l *Ledger, creator custody.Address, owners ...custody.Address) uint64 {
	t.Helper()
	res, err := l.Deliver(signedBy(creator), &registry.CreateAccountMsg{Owners: owners})
	require.NoError(t, err)
	id, err := registry.AccountID(res.Data)
	require.NoError(t, err)
	return id
}

func TestLedgerWithdrawal(t *testing.T) {
	Convey("Given an account of alice, bob and carol created by carol", t, func() {
		clock := custodytest.NewClock(genesisTime)
		events := &custodytest.EventRecorder{}
		l := NewLedger(iavl.MockCommitStore(), WithClock(clock), WithEventSink(events))
		So(l.InitGenesis(custody.Options{}), ShouldBeNil)

		res, err := l.Deliver(signedBy(carol), &registry.CreateAccountMsg{Owners: []custody.Address{alice, bob}})
		So(err, ShouldBeNil)
		acc, err := registry.AccountID(res.Data)
		So(err, ShouldBeNil)

		owners, err := l.Owners(acc)
		So(err, ShouldBeNil)
		So(owners, ShouldResemble, []custody.Address{alice, bob, carol})

		_, err = l.Deliver(signedBy(bob), &registry.DepositMsg{AccountID: acc, Amount: 100})
		So(err, ShouldBeNil)
		balance, err := l.Balance(acc)
		So(err, ShouldBeNil)
		So(balance, ShouldEqual, uint64(100))

		clock.Advance(time.Minute)
		res, err = l.Deliver(signedBy(alice), &withdraw.RequestMsg{AccountID: acc, Amount: 40})
		So(err, ShouldBeNil)
		So(res.Events, ShouldHaveLength, 1)
		requested := res.Events[0].(*withdraw.WithdrawRequested)
		So(requested.Time, ShouldEqual, genesisTime.Add(time.Minute).Unix())
		reqID := requested.RequestID

		Convey("the requester cannot withdraw before approvals", func() {
			_, err := l.Deliver(signedBy(alice), &withdraw.WithdrawMsg{AccountID: acc, RequestID: reqID})
			So(withdraw.ErrNotYetApproved.Is(err), ShouldBeTrue)
		})

		Convey("the requester cannot approve", func() {
			_, err := l.Deliver(signedBy(alice), &withdraw.ApproveMsg{AccountID: acc, RequestID: reqID})
			So(withdraw.ErrSelfApproval.Is(err), ShouldBeTrue)
		})

		Convey("once every other owner approved", func() {
			_, err := l.Deliver(signedBy(bob), &withdraw.ApproveMsg{AccountID: acc, RequestID: reqID})
			So(err, ShouldBeNil)
			req, err := l.Request(acc, reqID)
			So(err, ShouldBeNil)
			So(req.Approvals, ShouldHaveLength, 1)
			So(req.Approved, ShouldBeFalse)

			res, err := l.Deliver(signedBy(carol), &withdraw.ApproveMsg{AccountID: acc, RequestID: reqID})
			So(err, ShouldBeNil)
			So(res.Log, ShouldEqual, "request approved")

			req, err = l.Request(acc, reqID)
			So(err, ShouldBeNil)
			So(req.Approved, ShouldBeTrue)

			Convey("only the requester can withdraw", func() {
				_, err := l.Deliver(signedBy(bob), &withdraw.WithdrawMsg{AccountID: acc, RequestID: reqID})
				So(withdraw.ErrWrongRequester.Is(err), ShouldBeTrue)

				_, err = l.Deliver(signedBy(alice), &withdraw.WithdrawMsg{AccountID: acc, RequestID: reqID})
				So(err, ShouldBeNil)

				balance, err := l.Balance(acc)
				So(err, ShouldBeNil)
				So(balance, ShouldEqual, uint64(60))

				wallet, err := l.Wallet(alice)
				So(err, ShouldBeNil)
				So(wallet, ShouldEqual, uint64(40))

				reqs, err := l.Requests(acc)
				So(err, ShouldBeNil)
				So(reqs, ShouldBeEmpty)

				So(events.Kinds(), ShouldResemble, []string{
					"AccountCreated",
					"DepositAmount",
					"WithdrawRequested",
					"WithdrawCompleted",
				})
			})
		})
	})
}

func TestLedgerGenesisOnlyOnce(t *testing.T) {
	l := newTestLedger(t)

	v, err := l.Version()
	require.NoError(t, err)
	assert.EqualValues(t, 1, v.Version)

	err = l.InitGenesis(custody.Options{})
	assert.True(t, errors.ErrState.Is(err))
}

func TestLedgerWithoutGenesis(t *testing.T) {
	l := NewLedger(iavl.MockCommitStore())

	solo := createAccount(t, l, alice)
	shared := createAccount(t, l, carol, alice, bob)
	owners, err := l.Owners(shared)
	require.NoError(t, err)
	assert.Equal(t, []custody.Address{alice, bob, carol}, owners)

	ids, err := l.Accounts(alice)
	require.NoError(t, err)
	assert.Equal(t, []uint64{solo, shared}, ids)

	// The default membership cap applies.
	createAccount(t, l, carol, bob)
	createAccount(t, l, carol, bob)
	_, err = l.Deliver(signedBy(carol), &registry.CreateAccountMsg{Owners: []custody.Address{bob}})
	assert.True(t, registry.ErrMembershipCap.Is(err))
}

func TestLedgerFailedCallLeavesNoTrace(t *testing.T) {
	events := &custodytest.EventRecorder{}
	l := newTestLedger(t, WithEventSink(events))
	acc := createAccount(t, l, alice, bob)
	before, err := l.Version()
	require.NoError(t, err)

	_, err = l.Deliver(signedBy(carol), &registry.DepositMsg{AccountID: acc, Amount: 10})
	assert.True(t, registry.ErrNotOwner.Is(err))

	after, err := l.Version()
	require.NoError(t, err)
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, []string{"AccountCreated"}, events.Kinds())

	_, err = l.Deliver(signedBy(alice), &registry.DepositMsg{AccountID: 0, Amount: 10})
	assert.True(t, errors.ErrEmpty.Is(err))
	assert.Len(t, events.Kinds(), 1)
}

func TestLedgerCheckDoesNotChangeState(t *testing.T) {
	l := newTestLedger(t)
	acc := createAccount(t, l, alice, bob)

	_, err := l.Check(signedBy(alice), &registry.DepositMsg{AccountID: acc, Amount: 10})
	require.NoError(t, err)
	balance, err := l.Balance(acc)
	require.NoError(t, err)
	assert.EqualValues(t, 0, balance)

	_, err = l.Check(signedBy(carol), &registry.DepositMsg{AccountID: acc, Amount: 10})
	assert.True(t, registry.ErrNotOwner.Is(err))
}

func TestLedgerTransferFailureRollsBack(t *testing.T) {
	events := &custodytest.EventRecorder{}
	sink := &custodytest.FundsSink{Err: errors.ErrState.New("payment network down")}
	l := newTestLedger(t, WithFundsSink(sink), WithEventSink(events))

	acc := createAccount(t, l, alice)
	_, err := l.Deliver(signedBy(alice), &registry.DepositMsg{AccountID: acc, Amount: 30})
	require.NoError(t, err)
	res, err := l.Deliver(signedBy(alice), &withdraw.RequestMsg{AccountID: acc, Amount: 30})
	require.NoError(t, err)
	reqID := res.Events[0].(*withdraw.WithdrawRequested).RequestID

	_, err = l.Deliver(signedBy(alice), &withdraw.WithdrawMsg{AccountID: acc, RequestID: reqID})
	assert.True(t, withdraw.ErrTransferFailed.Is(err))

	balance, err := l.Balance(acc)
	require.NoError(t, err)
	assert.EqualValues(t, 30, balance)
	req, err := l.Request(acc, reqID)
	require.NoError(t, err)
	assert.True(t, req.Approved)
	assert.NotContains(t, events.Kinds(), "WithdrawCompleted")
}

// failingCommit fails Commit while failing is set.
type failingCommit struct {
	custody.CommitKVStore
	failing bool
}

func (f *failingCommit) Commit() (custody.CommitID, error) {
	if f.failing {
		return custody.CommitID{}, errors.ErrDatabase.New("disk full")
	}
	return f.CommitKVStore.Commit()
}

// rollbackCommit exposes the iavl Rollback of the wrapped store.
type rollbackCommit struct {
	*failingCommit
	tree *iavl.CommitStore
}

func (r rollbackCommit) Rollback() { r.tree.Rollback() }

func TestLedgerCommitFailureDropsWrites(t *testing.T) {
	cases := map[string]func() (custody.CommitKVStore, *failingCommit){
		"rollback": func() (custody.CommitKVStore, *failingCommit) {
			tree := iavl.MockCommitStore()
			f := &failingCommit{CommitKVStore: tree}
			return rollbackCommit{failingCommit: f, tree: tree}, f
		},
		"reload latest version": func() (custody.CommitKVStore, *failingCommit) {
			f := &failingCommit{CommitKVStore: iavl.MockCommitStore()}
			return f, f
		},
	}
	for name, newStore := range cases {
		t.Run(name, func(t *testing.T) {
			db, f := newStore()
			events := &custodytest.EventRecorder{}
			l := NewLedger(db, WithEventSink(events))
			require.NoError(t, l.InitGenesis(custody.Options{}))
			acc := createAccount(t, l, alice)

			f.failing = true
			_, err := l.Deliver(signedBy(alice), &registry.DepositMsg{AccountID: acc, Amount: 25})
			assert.True(t, errors.ErrDatabase.Is(err))
			f.failing = false

			// The failed deposit must not be persisted by the next commit.
			other := createAccount(t, l, bob)
			balance, err := l.Balance(acc)
			require.NoError(t, err)
			assert.EqualValues(t, 0, balance)
			ids, err := l.Accounts(bob)
			require.NoError(t, err)
			assert.Equal(t, []uint64{other}, ids)
			assert.Equal(t, []string{"AccountCreated", "AccountCreated"}, events.Kinds())

			v, err := l.Version()
			require.NoError(t, err)
			assert.EqualValues(t, 3, v.Version)
		})
	}
}

func TestLedgerUnknownQueries(t *testing.T) {
	l := newTestLedger(t)

	_, err := l.Owners(42)
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = l.Balance(42)
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = l.Request(42, 1)
	assert.True(t, withdraw.ErrInvalidRequest.Is(err))

	ids, err := l.Accounts(carol)
	require.NoError(t, err)
	assert.Empty(t, ids)

	wallet, err := l.Wallet(carol)
	require.NoError(t, err)
	assert.EqualValues(t, 0, wallet)
}

func TestLedgerConcurrentDeposits(t *testing.T) {
	l := newTestLedger(t)
	acc := createAccount(t, l, alice, bob)

	const workers, deposits = 8, 25
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		signer := alice
		if i%2 == 1 {
			signer = bob
		}
		wg.Add(1)
		go func(signer custody.Address) {
			defer wg.Done()
			for j := 0; j < deposits; j++ {
				if _, err := l.Deliver(signedBy(signer), &registry.DepositMsg{AccountID: acc, Amount: 1}); err != nil {
					t.Errorf("deposit: %s", err)
					return
				}
				if _, err := l.Balance(acc); err != nil {
					t.Errorf("balance: %s", err)
					return
				}
			}
		}(signer)
	}
	wg.Wait()

	balance, err := l.Balance(acc)
	require.NoError(t, err)
	assert.EqualValues(t, workers*deposits, balance)
}
