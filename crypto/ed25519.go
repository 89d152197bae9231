package crypto

import (
	"fmt"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"golang.org/x/crypto/ed25519"
)

// addressPrefix is prepended to the public key before deriving an address.
const addressPrefix = "sigs/ed25519/"

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	key ed25519.PrivateKey
}

// PublicKey is an ed25519 public key.
type PublicKey struct {
	key ed25519.PublicKey
}

// GenPrivKey returns a random new private key.
func GenPrivKey() (*PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrState, "generate key: %s", err)
	}
	return &PrivateKey{key: priv}, nil
}

// PrivKeyFromSeed will deterministically generate a private key from a given
// seed. Use if you have a strong source of external randomness, or for
// deterministic keys in test cases.
func PrivKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "invalid seed length %d", len(seed))
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// NewPrivateKey returns a private key with given binary representation.
func NewPrivateKey(raw []byte) (*PrivateKey, error) {
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "invalid private key length %d", len(raw))
	}
	key := make(ed25519.PrivateKey, len(raw))
	copy(key, raw)
	return &PrivateKey{key: key}, nil
}

// Bytes returns the binary representation of the key.
func (p *PrivateKey) Bytes() []byte {
	return append([]byte(nil), p.key...)
}

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(p.key, message)
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{key: p.key.Public().(ed25519.PublicKey)}
}

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message, sig []byte) bool {
	return ed25519.Verify(p.key, message, sig)
}

// Address returns the address of the party owning this key.
func (p *PublicKey) Address() custody.Address {
	return custody.NewAddress(append([]byte(addressPrefix), p.key...))
}

func (p *PublicKey) String() string {
	return fmt.Sprintf("%X", []byte(p.key))
}
