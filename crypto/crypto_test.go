package crypto

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEd25519Signing(t *testing.T) {
	private, err := GenPrivKey()
	require.NoError(t, err)
	public := private.PublicKey()

	msg := []byte("foobar")
	msg2 := []byte("dingbooms")

	sig := private.Sign(msg)
	sig2 := private.Sign(msg2)
	if bytes.Equal(sig, sig2) {
		t.Fatal("different messages produce the same signature")
	}

	assert.True(t, public.Verify(msg, sig))
	assert.True(t, public.Verify(msg2, sig2))
	assert.False(t, public.Verify(msg, sig2))
}

func TestAddressFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a, err := PrivKeyFromSeed(seed)
	require.NoError(t, err)
	b, err := PrivKeyFromSeed(seed)
	require.NoError(t, err)
	assert.Equal(t, a.PublicKey().Address(), b.PublicKey().Address())
	assert.NoError(t, a.PublicKey().Address().Validate())

	other, err := GenPrivKey()
	require.NoError(t, err)
	assert.NotEqual(t, a.PublicKey().Address(), other.PublicKey().Address())

	_, err = PrivKeyFromSeed([]byte("short"))
	assert.True(t, errors.ErrInput.Is(err))
}

func TestKeyFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "custody-crypto")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "key")

	_, err = LoadKey(path)
	assert.True(t, errors.ErrNotFound.Is(err))

	key, err := GenPrivKey()
	require.NoError(t, err)
	require.NoError(t, SaveKey(path, key))

	// Existing key file is never overwritten.
	other, err := GenPrivKey()
	require.NoError(t, err)
	assert.True(t, errors.ErrDuplicate.Is(SaveKey(path, other)))

	loaded, err := LoadKey(path)
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey().Address(), loaded.PublicKey().Address())

	require.NoError(t, ioutil.WriteFile(path, []byte("garbage"), 0600))
	_, err = LoadKey(path)
	assert.True(t, errors.ErrInput.Is(err))
}
