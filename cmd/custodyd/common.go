package main

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// newFlagSet returns a flag set printing given description as the usage.
func newFlagSet(name, usage, description string) *flag.FlagSet {
	fl := flag.NewFlagSet(name, flag.ContinueOnError)
	fl.Usage = func() {
		fmt.Fprintf(fl.Output(), "Usage: %s %s\n%s", name, usage, description)
		fl.PrintDefaults()
	}
	return fl
}

// parseArgs parses the flags and ensures the number of remaining arguments
// is within given bounds. Negative max means no upper bound.
func parseArgs(fl *flag.FlagSet, args []string, min, max int) ([]string, error) {
	if err := fl.Parse(args); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	rest := fl.Args()
	if len(rest) < min || (max >= 0 && len(rest) > max) {
		fl.Usage()
		return nil, errors.Wrapf(errors.ErrInput, "unexpected number of arguments: %d", len(rest))
	}
	return rest, nil
}

func parseID(name, raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.Wrapf(errors.ErrInput, "invalid %s %q", name, raw)
	}
	return id, nil
}

func parseAmount(raw string) (uint64, error) {
	amount, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "invalid amount %q", raw)
	}
	return amount, nil
}

func parseAddresses(raw []string) ([]custody.Address, error) {
	addrs := make([]custody.Address, 0, len(raw))
	for _, r := range raw {
		a, err := custody.ParseAddress(r)
		if err != nil {
			return nil, errors.Wrapf(err, "address %q", r)
		}
		addrs = append(addrs, a)
	}
	return addrs, nil
}

// partyOrSigner returns the address given as the only argument or the
// address of the configured key.
func partyOrSigner(n *node, args []string) (custody.Address, error) {
	if len(args) == 1 {
		return custody.ParseAddress(args[0])
	}
	return n.Signer()
}
