package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/iov-one/custody"
)

func cmdAccounts(n *node, input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("accounts", "[<address>]", `
List ids of all accounts owned by given party, by default the signer.
`)
	rest, err := parseArgs(fl, args, 0, 1)
	if err != nil {
		return err
	}
	party, err := partyOrSigner(n, rest)
	if err != nil {
		return err
	}
	l, err := n.Ledger()
	if err != nil {
		return err
	}
	ids, err := l.Accounts(party)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := fmt.Fprintln(output, id); err != nil {
			return err
		}
	}
	return nil
}

func cmdOwners(n *node, input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("owners", "<account>", `
List owners of an account.
`)
	rest, err := parseArgs(fl, args, 1, 1)
	if err != nil {
		return err
	}
	accountID, err := parseID("account", rest[0])
	if err != nil {
		return err
	}
	l, err := n.Ledger()
	if err != nil {
		return err
	}
	owners, err := l.Owners(accountID)
	if err != nil {
		return err
	}
	for _, o := range owners {
		if _, err := fmt.Fprintln(output, o); err != nil {
			return err
		}
	}
	return nil
}

func cmdBalance(n *node, input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("balance", "<account>", `
Print funds held by an account.
`)
	rest, err := parseArgs(fl, args, 1, 1)
	if err != nil {
		return err
	}
	accountID, err := parseID("account", rest[0])
	if err != nil {
		return err
	}
	return printBalance(n, output, accountID)
}

func printBalance(n *node, output io.Writer, accountID uint64) error {
	l, err := n.Ledger()
	if err != nil {
		return err
	}
	balance, err := l.Balance(accountID)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, balance)
	return err
}

func cmdRequests(n *node, input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("requests", "<account>", `
List pending withdrawal requests of an account.
`)
	rest, err := parseArgs(fl, args, 1, 1)
	if err != nil {
		return err
	}
	accountID, err := parseID("account", rest[0])
	if err != nil {
		return err
	}
	l, err := n.Ledger()
	if err != nil {
		return err
	}
	reqs, err := l.Requests(accountID)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(output, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tREQUESTER\tAMOUNT\tAPPROVALS\tAPPROVED")
	for _, r := range reqs {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%v\n", r.ID, r.Requester, r.Amount, len(r.Approvals), r.Approved)
	}
	return tw.Flush()
}

func cmdWallet(n *node, input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("wallet", "[<address>]", `
Print funds withdrawn by given party, by default the signer.
`)
	rest, err := parseArgs(fl, args, 0, 1)
	if err != nil {
		return err
	}
	party, err := partyOrSigner(n, rest)
	if err != nil {
		return err
	}
	l, err := n.Ledger()
	if err != nil {
		return err
	}
	balance, err := l.Wallet(party)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, balance)
	return err
}

func cmdVersion(n *node, input io.Reader, output io.Writer, args []string) error {
	_, err := fmt.Fprintln(output, custody.Version())
	return err
}
