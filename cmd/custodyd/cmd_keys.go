package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
)

func cmdKeys(n *node, input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("keys", "[-gen] [-seed <hex>]", `
Print the address of the private key configured by CUSTODY_KEY.

With -gen a new private key file is created first. With -seed the new key is
derived from given 32 byte hex encoded seed instead of being random. This
command fails if the private key file already exists.
`)
	gen := fl.Bool("gen", false, "Generate a new private key.")
	seed := fl.String("seed", "", "Hex encoded seed of the generated private key.")
	if _, err := parseArgs(fl, args, 0, 0); err != nil {
		return err
	}

	if *gen || *seed != "" {
		key, err := newKey(*seed)
		if err != nil {
			return err
		}
		if err := crypto.SaveKey(n.conf.Key, key); err != nil {
			return err
		}
	}
	key, err := crypto.LoadKey(n.conf.Key)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, key.PublicKey().Address())
	return err
}

func newKey(seed string) (*crypto.PrivateKey, error) {
	if seed == "" {
		return crypto.GenPrivKey()
	}
	raw, err := hex.DecodeString(seed)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "seed must be hex encoded")
	}
	return crypto.PrivKeyFromSeed(raw)
}
