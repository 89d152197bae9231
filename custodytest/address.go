package custodytest

import (
	"testing"

	"github.com/iov-one/custody"
)

// NewAddress returns the address of a party identified by given name. The
// same name always returns the same address.
func NewAddress(name string) custody.Address {
	return custody.NewAddress([]byte("custodytest/" + name))
}

// ParseAddress takes an address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// custody.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) custody.Address {
	t.Helper()

	addr, err := custody.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
