package withdraw

import (
	"fmt"
	"testing"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/registry"
	"github.com/iov-one/custody/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	partyA = custodytest.NewAddress("a")
	partyB = custodytest.NewAddress("b")
	partyC = custodytest.NewAddress("c")
)

// fixture holds handlers sharing one store. Every call is executed in a
// savepoint, the way the application runs them.
type fixture struct {
	t        testing.TB
	db       custody.CacheableKVStore
	auth     x.CtxAuth
	accounts *registry.Controller
	requests *Controller
	sink     *custodytest.FundsSink
	handlers map[string]custody.Handler
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	f := &fixture{
		t:        t,
		db:       store.MemStore(),
		accounts: registry.NewController(),
		requests: NewController(),
		sink:     &custodytest.FundsSink{},
	}
	require.NoError(t, registry.SaveConfiguration(f.db, registry.DefaultConfiguration()))
	f.handlers = map[string]custody.Handler{
		"request":  RequestHandler{auth: f.auth, accounts: f.accounts, requests: f.requests},
		"approve":  ApproveHandler{auth: f.auth, accounts: f.accounts, requests: f.requests},
		"withdraw": WithdrawHandler{auth: f.auth, accounts: f.accounts, requests: f.requests, sink: f.sink},
	}
	return f
}

// account creates an account with given owners and balance.
func (f *fixture) account(balance uint64, owners ...custody.Address) uint64 {
	f.t.Helper()
	id, err := f.accounts.Create(f.db, &registry.Account{Owners: owners})
	require.NoError(f.t, err)
	require.NoError(f.t, f.accounts.Credit(f.db, id, balance))
	return id
}

func (f *fixture) deliver(signer custody.Address, name string, msg custody.Msg) (*custody.DeliverResult, error) {
	ctx := f.auth.SetSigners(custodytest.Context(now), signer)
	return utils.NewSavepoint().OnDeliver().Deliver(ctx, f.db, custody.NewTx(msg), f.handlers[name])
}

func (f *fixture) check(signer custody.Address, name string, msg custody.Msg) error {
	ctx := f.auth.SetSigners(custodytest.Context(now), signer)
	_, err := f.handlers[name].Check(ctx, f.db, custody.NewTx(msg))
	return err
}

func (f *fixture) request(signer custody.Address, accountID, amount uint64) uint64 {
	f.t.Helper()
	res, err := f.deliver(signer, "request", &RequestMsg{AccountID: accountID, Amount: amount})
	require.NoError(f.t, err)
	require.Len(f.t, res.Events, 1)
	return res.Events[0].(*WithdrawRequested).RequestID
}

func (f *fixture) approve(signer custody.Address, accountID, requestID uint64) error {
	_, err := f.deliver(signer, "approve", &ApproveMsg{AccountID: accountID, RequestID: requestID})
	return err
}

func (f *fixture) withdraw(signer custody.Address, accountID, requestID uint64) error {
	_, err := f.deliver(signer, "withdraw", &WithdrawMsg{AccountID: accountID, RequestID: requestID})
	return err
}

func (f *fixture) balance(accountID uint64) uint64 {
	f.t.Helper()
	b, err := f.accounts.Balance(f.db, accountID)
	require.NoError(f.t, err)
	return b
}

func TestWithdrawalScenario(t *testing.T) {
	f := newFixture(t)
	acc := f.account(100, partyA, partyB, partyC)

	r := f.request(partyA, acc, 40)

	require.NoError(t, f.approve(partyB, acc, r))
	req, err := f.requests.Request(f.db, acc, r)
	require.NoError(t, err)
	assert.Len(t, req.Approvals, 1)
	assert.False(t, req.Approved)

	// Not approved yet.
	assert.True(t, ErrNotYetApproved.Is(f.withdraw(partyA, acc, r)))

	require.NoError(t, f.approve(partyC, acc, r))
	req, err = f.requests.Request(f.db, acc, r)
	require.NoError(t, err)
	assert.Len(t, req.Approvals, 2)
	assert.True(t, req.Approved)

	require.NoError(t, f.withdraw(partyA, acc, r))
	assert.EqualValues(t, 60, f.balance(acc))
	assert.Equal(t, []custodytest.Transfer{{Dest: partyA, Amount: 40}}, f.sink.Transfers())

	_, err = f.requests.Request(f.db, acc, r)
	assert.True(t, ErrInvalidRequest.Is(err))

	// Executed requests are gone for good.
	assert.True(t, ErrInvalidRequest.Is(f.withdraw(partyA, acc, r)))
	assert.True(t, ErrInvalidRequest.Is(f.approve(partyB, acc, r)))
	assert.Len(t, f.sink.Transfers(), 1)
}

func TestApprovalOrderIndependence(t *testing.T) {
	orders := [][]custody.Address{
		{partyB, partyC, partyA},
		{partyC, partyA, partyB},
		{partyA, partyB, partyC},
	}
	d := custodytest.NewAddress("d")

	for i, approvers := range orders {
		t.Run(fmt.Sprintf("order-%d", i), func(t *testing.T) {
			f := newFixture(t)
			acc := f.account(10, partyA, partyB, partyC, d)
			r := f.request(d, acc, 10)

			for j, approver := range approvers {
				require.NoError(t, f.approve(approver, acc, r))
				req, err := f.requests.Request(f.db, acc, r)
				require.NoError(t, err)
				assert.Equal(t, j == len(approvers)-1, req.Approved)
			}
			require.NoError(t, f.withdraw(d, acc, r))
			assert.EqualValues(t, 0, f.balance(acc))
		})
	}
}

func TestApproveGuards(t *testing.T) {
	stranger := custodytest.NewAddress("stranger")

	cases := map[string]struct {
		prepare func(f *fixture, acc, r uint64)
		signer  custody.Address
		request func(r uint64) uint64
		wantErr *errors.Error
	}{
		"stranger cannot approve": {
			signer:  stranger,
			wantErr: registry.ErrNotOwner,
		},
		"stranger is rejected before the request is looked up": {
			signer:  stranger,
			request: func(uint64) uint64 { return 999 },
			wantErr: registry.ErrNotOwner,
		},
		"unknown request": {
			signer:  partyB,
			request: func(uint64) uint64 { return 999 },
			wantErr: ErrInvalidRequest,
		},
		"self approval before any other approval": {
			signer:  partyA,
			wantErr: ErrSelfApproval,
		},
		"double approval": {
			prepare: func(f *fixture, acc, r uint64) {
				require.NoError(f.t, f.approve(partyB, acc, r))
			},
			signer:  partyB,
			wantErr: ErrAlreadyApproved,
		},
		"double approval of a fully approved request": {
			prepare: func(f *fixture, acc, r uint64) {
				require.NoError(f.t, f.approve(partyB, acc, r))
				require.NoError(f.t, f.approve(partyC, acc, r))
			},
			signer:  partyC,
			wantErr: ErrAlreadyApproved,
		},
		"self approval of a fully approved request": {
			prepare: func(f *fixture, acc, r uint64) {
				require.NoError(f.t, f.approve(partyB, acc, r))
				require.NoError(f.t, f.approve(partyC, acc, r))
			},
			signer:  partyA,
			wantErr: ErrSelfApproval,
		},
		"valid approval": {
			signer: partyC,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			acc := f.account(100, partyA, partyB, partyC)
			r := f.request(partyA, acc, 10)
			if tc.prepare != nil {
				tc.prepare(f, acc, r)
			}
			if tc.request != nil {
				r = tc.request(r)
			}

			msg := &ApproveMsg{AccountID: acc, RequestID: r}
			checkErr := f.check(tc.signer, "approve", msg)
			deliverErr := f.approve(tc.signer, acc, r)
			if tc.wantErr == nil {
				require.NoError(t, checkErr)
				require.NoError(t, deliverErr)
				return
			}
			assert.True(t, tc.wantErr.Is(checkErr), "check: %+v", checkErr)
			assert.True(t, tc.wantErr.Is(deliverErr), "deliver: %+v", deliverErr)
		})
	}
}

func TestApprovalOfAnotherAccountRequest(t *testing.T) {
	f := newFixture(t)
	acc1 := f.account(10, partyA, partyB)
	acc2 := f.account(10, partyA, partyC)
	r := f.request(partyA, acc1, 5)

	// The request id is meaningful for one account only.
	assert.True(t, ErrInvalidRequest.Is(f.approve(partyC, acc2, r)))
	assert.True(t, registry.ErrNotOwner.Is(f.approve(partyC, acc1, r)))
}

func TestRequestGuards(t *testing.T) {
	f := newFixture(t)
	acc := f.account(50, partyA, partyB)
	stranger := custodytest.NewAddress("stranger")

	err := f.check(stranger, "request", &RequestMsg{AccountID: acc, Amount: 1})
	assert.True(t, registry.ErrNotOwner.Is(err))

	_, err = f.deliver(partyA, "request", &RequestMsg{AccountID: acc, Amount: 51})
	assert.True(t, registry.ErrInsufficientBalance.Is(err))

	_, err = f.deliver(partyA, "request", &RequestMsg{Amount: 1})
	assert.True(t, errors.ErrEmpty.Is(err))

	// The whole balance can be requested, and so can nothing.
	f.request(partyA, acc, 50)
	f.request(partyB, acc, 0)
}

func TestRequestIDsAreGlobal(t *testing.T) {
	f := newFixture(t)
	acc1 := f.account(10, partyA, partyB)
	acc2 := f.account(10, partyB, partyC)

	r1 := f.request(partyA, acc1, 1)
	r2 := f.request(partyC, acc2, 1)
	r3 := f.request(partyB, acc1, 1)
	assert.True(t, r1 < r2 && r2 < r3)

	reqs, err := f.requests.Requests(f.db, acc1)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, r1, reqs[0].ID)
	assert.Equal(t, r3, reqs[1].ID)
	assert.Equal(t, partyB, reqs[1].Requester)

	// Executing a request does not release its id.
	require.NoError(t, f.approve(partyB, acc1, r1))
	require.NoError(t, f.withdraw(partyA, acc1, r1))
	assert.True(t, f.request(partyA, acc1, 1) > r3)
}

func TestWithdrawGuards(t *testing.T) {
	f := newFixture(t)
	acc := f.account(100, partyA, partyB)
	r := f.request(partyA, acc, 10)
	require.NoError(t, f.approve(partyB, acc, r))

	assert.True(t, ErrWrongRequester.Is(f.withdraw(partyB, acc, r)))
	assert.True(t, ErrWrongRequester.Is(f.check(partyB, "withdraw", &WithdrawMsg{AccountID: acc, RequestID: r})))
	assert.True(t, ErrInvalidRequest.Is(f.withdraw(partyA, acc, r+1)))
	assert.NoError(t, f.check(partyA, "withdraw", &WithdrawMsg{AccountID: acc, RequestID: r}))
}

func TestWithdrawRechecksBalance(t *testing.T) {
	f := newFixture(t)
	acc := f.account(100, partyA, partyB)

	r1 := f.request(partyA, acc, 60)
	r2 := f.request(partyB, acc, 60)
	require.NoError(t, f.approve(partyB, acc, r1))
	require.NoError(t, f.approve(partyA, acc, r2))

	require.NoError(t, f.withdraw(partyA, acc, r1))
	err := f.withdraw(partyB, acc, r2)
	assert.True(t, registry.ErrInsufficientBalance.Is(err))
	assert.EqualValues(t, 40, f.balance(acc))

	// The request survives and can be executed once funds are back.
	require.NoError(t, f.accounts.Credit(f.db, acc, 20))
	require.NoError(t, f.withdraw(partyB, acc, r2))
	assert.EqualValues(t, 0, f.balance(acc))
}

func TestTransferFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	acc := f.account(100, partyA, partyB)
	r := f.request(partyA, acc, 30)
	require.NoError(t, f.approve(partyB, acc, r))

	f.sink.Err = errors.ErrDatabase.New("bank is down")
	err := f.withdraw(partyA, acc, r)
	require.True(t, ErrTransferFailed.Is(err), "got %+v", err)

	assert.EqualValues(t, 100, f.balance(acc))
	req, err := f.requests.Request(f.db, acc, r)
	require.NoError(t, err)
	assert.True(t, req.Approved)

	f.sink.Err = nil
	require.NoError(t, f.withdraw(partyA, acc, r))
	assert.EqualValues(t, 70, f.balance(acc))
}

func TestDepositThenWithdrawRestoresBalance(t *testing.T) {
	f := newFixture(t)
	acc := f.account(25, partyA, partyB, partyC)
	require.NoError(t, f.accounts.Credit(f.db, acc, 75))

	r := f.request(partyC, acc, 75)
	require.NoError(t, f.approve(partyA, acc, r))
	require.NoError(t, f.approve(partyB, acc, r))
	require.NoError(t, f.withdraw(partyC, acc, r))
	assert.EqualValues(t, 25, f.balance(acc))
}

func TestSingleOwnerAccount(t *testing.T) {
	f := newFixture(t)
	acc := f.account(5, partyA)
	r := f.request(partyA, acc, 5)

	req, err := f.requests.Request(f.db, acc, r)
	require.NoError(t, err)
	assert.True(t, req.Approved)
	assert.True(t, ErrSelfApproval.Is(f.approve(partyA, acc, r)))
	require.NoError(t, f.withdraw(partyA, acc, r))
	assert.EqualValues(t, 0, f.balance(acc))
}

func TestWithdrawEvents(t *testing.T) {
	f := newFixture(t)
	acc := f.account(9, partyA, partyB)

	res, err := f.deliver(partyA, "request", &RequestMsg{AccountID: acc, Amount: 9})
	require.NoError(t, err)
	requested := res.Events[0].(*WithdrawRequested)
	assert.Equal(t, partyA, requested.Requester)
	assert.EqualValues(t, 9, requested.Amount)
	assert.Equal(t, acc, requested.AccountID)
	assert.Equal(t, now.Unix(), requested.Time)

	res, err = f.deliver(partyB, "approve", &ApproveMsg{AccountID: acc, RequestID: requested.RequestID})
	require.NoError(t, err)
	assert.Empty(t, res.Events)

	res, err = f.deliver(partyA, "withdraw", &WithdrawMsg{AccountID: acc, RequestID: requested.RequestID})
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	completed := res.Events[0].(*WithdrawCompleted)
	assert.Equal(t, requested.RequestID, completed.RequestID)
	assert.Equal(t, acc, completed.AccountID)
}
