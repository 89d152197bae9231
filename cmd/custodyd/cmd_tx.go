package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/registry"
	"github.com/iov-one/custody/x/withdraw"
)

func cmdInit(n *node, input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("init", "<genesis.json>", `
Initialize an empty ledger with the content of the genesis file. Use - to
read the genesis from stdin.
`)
	rest, err := parseArgs(fl, args, 1, 1)
	if err != nil {
		return err
	}

	var raw []byte
	if rest[0] == "-" {
		raw, err = ioutil.ReadAll(input)
	} else {
		raw, err = ioutil.ReadFile(rest[0])
	}
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "read genesis: %s", err)
	}
	var opts custody.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrapf(errors.ErrInput, "parse genesis: %s", err)
	}

	l, err := n.Ledger()
	if err != nil {
		return err
	}
	if err := l.InitGenesis(opts); err != nil {
		return err
	}
	v, err := l.Version()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(output, "initialized at version %d\n", v.Version)
	return err
}

func cmdCreate(n *node, input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("create", "<address>...", `
Create a new account owned by given parties and the signer. The account id
is printed.
`)
	rest, err := parseArgs(fl, args, 0, -1)
	if err != nil {
		return err
	}
	owners, err := parseAddresses(rest)
	if err != nil {
		return err
	}

	res, err := n.Deliver(&registry.CreateAccountMsg{Owners: owners})
	if err != nil {
		return err
	}
	id, err := registry.AccountID(res.Data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, id)
	return err
}

func cmdDeposit(n *node, input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("deposit", "<account> <amount>", `
Deposit funds to an account. Only an owner can deposit.
`)
	rest, err := parseArgs(fl, args, 2, 2)
	if err != nil {
		return err
	}
	accountID, err := parseID("account", rest[0])
	if err != nil {
		return err
	}
	amount, err := parseAmount(rest[1])
	if err != nil {
		return err
	}

	if _, err := n.Deliver(&registry.DepositMsg{AccountID: accountID, Amount: amount}); err != nil {
		return err
	}
	return printBalance(n, output, accountID)
}

func cmdRequest(n *node, input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("request", "<account> <amount>", `
Request a withdrawal of funds from an account. The request id is printed.
Every other owner must approve the request before it can be executed.
`)
	rest, err := parseArgs(fl, args, 2, 2)
	if err != nil {
		return err
	}
	accountID, err := parseID("account", rest[0])
	if err != nil {
		return err
	}
	amount, err := parseAmount(rest[1])
	if err != nil {
		return err
	}

	res, err := n.Deliver(&withdraw.RequestMsg{AccountID: accountID, Amount: amount})
	if err != nil {
		return err
	}
	for _, e := range res.Events {
		if r, ok := e.(*withdraw.WithdrawRequested); ok {
			_, err = fmt.Fprintln(output, r.RequestID)
			return err
		}
	}
	return errors.Wrap(errors.ErrState, "request id not returned")
}

func cmdApprove(n *node, input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("approve", "<account> <request>", `
Approve a withdrawal request of another owner.
`)
	accountID, requestID, err := parseRequestArgs(fl, args)
	if err != nil {
		return err
	}
	res, err := n.Deliver(&withdraw.ApproveMsg{AccountID: accountID, RequestID: requestID})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, res.Log)
	return err
}

func cmdWithdraw(n *node, input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("withdraw", "<account> <request>", `
Execute an approved withdrawal request. Only the requester can execute it.
Withdrawn funds are moved to the requester wallet.
`)
	accountID, requestID, err := parseRequestArgs(fl, args)
	if err != nil {
		return err
	}
	if _, err := n.Deliver(&withdraw.WithdrawMsg{AccountID: accountID, RequestID: requestID}); err != nil {
		return err
	}
	return printBalance(n, output, accountID)
}

func parseRequestArgs(fl *flag.FlagSet, args []string) (uint64, uint64, error) {
	rest, err := parseArgs(fl, args, 2, 2)
	if err != nil {
		return 0, 0, err
	}
	accountID, err := parseID("account", rest[0])
	if err != nil {
		return 0, 0, err
	}
	requestID, err := parseID("request", rest[1])
	if err != nil {
		return 0, 0, err
	}
	return accountID, requestID, nil
}
