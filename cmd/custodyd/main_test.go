package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/registry"
	"github.com/iov-one/custody/x/withdraw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

// testNode returns a node operating in a temporary directory, together with
// paths of three generated keys.
func testNode(t *testing.T) (*node, [3]string, [3]string) {
	t.Helper()
	dir, err := ioutil.TempDir("", "custodyd")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	n := newNode(Config{Home: filepath.Join(dir, "home")}, log.NewNopLogger())
	t.Cleanup(n.Close)

	var keys, addrs [3]string
	for i, name := range []string{"a", "b", "c"} {
		keys[i] = filepath.Join(dir, name+".key")
		n.conf.Key = keys[i]
		addrs[i] = run(t, n, "keys", "-gen")
	}
	n.conf.Key = keys[0]
	return n, keys, addrs
}

// run executes the command and returns its trimmed output.
func run(t *testing.T, n *node, name string, args ...string) string {
	t.Helper()
	out, err := exec(n, "", name, args...)
	require.NoError(t, err, "%s %v", name, args)
	return out
}

func exec(n *node, input, name string, args ...string) (string, error) {
	var output bytes.Buffer
	err := commands[name](n, strings.NewReader(input), &output, args)
	return strings.TrimSpace(output.String()), err
}

func as(n *node, key string) *node {
	n.conf.Key = key
	return n
}

func TestWithdrawalFlow(t *testing.T) {
	n, keys, addrs := testNode(t)

	out, err := exec(n, `{"conf": {"registry": {"max_memberships": 5}}}`, "init", "-")
	require.NoError(t, err)
	assert.Equal(t, "initialized at version 1", out)

	acc := run(t, as(n, keys[0]), "create", addrs[1], addrs[2])
	assert.Equal(t, "1", acc)
	assert.Equal(t, strings.Join([]string{addrs[1], addrs[2], addrs[0]}, "\n"), run(t, n, "owners", acc))
	assert.Equal(t, "1", run(t, as(n, keys[1]), "accounts"))

	assert.Equal(t, "100", run(t, as(n, keys[1]), "deposit", acc, "100"))

	req := run(t, as(n, keys[0]), "request", acc, "40")
	assert.Equal(t, "1", req)

	_, err = exec(as(n, keys[0]), "", "withdraw", acc, req)
	assert.True(t, withdraw.ErrNotYetApproved.Is(err))

	assert.Equal(t, "approval recorded", run(t, as(n, keys[1]), "approve", acc, req))
	assert.Equal(t, "request approved", run(t, as(n, keys[2]), "approve", acc, req))
	assert.Contains(t, run(t, n, "requests", acc), "true")

	assert.Equal(t, "60", run(t, as(n, keys[0]), "withdraw", acc, req))
	assert.Equal(t, "40", run(t, n, "wallet"))
	assert.Equal(t, "0", run(t, n, "wallet", addrs[1]))
	assert.Equal(t, "60", run(t, n, "balance", acc))
}

func TestCommandErrors(t *testing.T) {
	n, keys, addrs := testNode(t)
	_, err := exec(n, "{}", "init", "-")
	require.NoError(t, err)

	_, err = exec(n, "", "deposit", "1", "10")
	assert.True(t, registry.ErrNotOwner.Is(err))

	acc := run(t, as(n, keys[0]), "create", addrs[1])
	_, err = exec(as(n, keys[2]), "", "deposit", acc, "10")
	assert.True(t, registry.ErrNotOwner.Is(err))

	_, err = exec(n, "", "deposit", acc)
	assert.True(t, errors.ErrInput.Is(err))
	_, err = exec(n, "", "deposit", "zero", "10")
	assert.True(t, errors.ErrInput.Is(err))
	_, err = exec(n, "", "create", "not-an-address")
	assert.True(t, errors.ErrInput.Is(err))

	// Genesis can only be loaded once.
	_, err = exec(n, "{}", "init", "-")
	assert.True(t, errors.ErrState.Is(err))

	n.conf.Key = filepath.Join(n.conf.Home, "missing.key")
	_, err = exec(n, "", "keys")
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestServe(t *testing.T) {
	n, keys, addrs := testNode(t)
	_, err := exec(n, "{}", "init", "-")
	require.NoError(t, err)

	script := strings.Join([]string{
		"# shared account of a and b",
		"CUSTODY_KEY=" + keys[0] + " create " + addrs[1],
		"CUSTODY_KEY=" + keys[1] + " deposit 1 10",
		"CUSTODY_KEY=" + keys[2] + " deposit 1 10",
		"",
		"balance 1",
		"serve",
	}, "\n")
	out, err := exec(n, script, "serve")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "1", lines[0])
	assert.Equal(t, "10", lines[1])
	assert.Contains(t, lines[2], "error:")
	assert.Equal(t, "10", lines[3])
	assert.Contains(t, lines[4], "unknown command")

	// The key used by the serve command is restored.
	assert.Equal(t, keys[0], n.conf.Key)
}

func TestKeysFromSeed(t *testing.T) {
	n, _, _ := testNode(t)
	seed := strings.Repeat("07", 32)

	n.conf.Key = filepath.Join(n.conf.Home, "seed1.key")
	first := run(t, n, "keys", "-seed", seed)
	n.conf.Key = filepath.Join(n.conf.Home, "seed2.key")
	assert.Equal(t, first, run(t, n, "keys", "-seed", seed))
	assert.Equal(t, first, run(t, n, "keys"))

	n.conf.Key = filepath.Join(n.conf.Home, "seed3.key")
	_, err := exec(n, "", "keys", "-seed", "abcd")
	assert.True(t, errors.ErrInput.Is(err))
	_, err = exec(n, "", "keys", "-seed", "not-hex")
	assert.True(t, errors.ErrInput.Is(err))
}
