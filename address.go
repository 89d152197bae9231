package custody

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/custody/errors"
)

const (
	// AddressLength is the length of all addresses.
	AddressLength = 20

	// AddressPrefix is the human readable part of the bech32 representation.
	AddressPrefix = "custody"
)

// Address identifies a party. It is a collision-free, one-way digest of
// whatever the identity provider authenticates (ie. a public key).
//
// It will be of size AddressLength.
type Address []byte

// NewAddress hashes and truncates the given data into an address.
func NewAddress(data []byte) Address {
	hash := sha256.Sum256(data)
	return Address(hash[:AddressLength])
}

// Equals checks if two addresses are the same.
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Clone returns a copy that does not share memory with the original.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	c := make(Address, len(a))
	copy(c, a)
	return c
}

// Validate returns an error if the address is not the valid size.
func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.ErrEmpty
	}
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address: invalid length %d", len(a))
	}
	return nil
}

// String returns the bech32 representation of the address.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	enc, err := encodeBech32(a)
	if err != nil {
		return strings.ToUpper(hex.EncodeToString(a))
	}
	return enc
}

// MarshalJSON provides the bech32 representation for JSON, to override the
// standard base64 []byte encoding.
func (a Address) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both bech32 and hex encoded addresses.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode json")
	}
	// No value zero the address.
	if enc == "" {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes a human readable address. Both the bech32 (custody1...)
// and the hex representations are supported.
func ParseAddress(enc string) (Address, error) {
	var addr Address
	if strings.HasPrefix(enc, AddressPrefix+"1") {
		payload, err := decodeBech32(enc)
		if err != nil {
			return nil, err
		}
		addr = payload
	} else {
		val, err := hex.DecodeString(enc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
		}
		addr = val
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

// encodeBech32 returns the bech32 form of the address under AddressPrefix.
func encodeBech32(a Address) (string, error) {
	data, err := bech32.ConvertBits(a, 8, 5, true)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "address bits: %s", err)
	}
	enc, err := bech32.Encode(AddressPrefix, data)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "address: %s", err)
	}
	return enc, nil
}

// decodeBech32 returns the payload of a bech32 address. Only AddressPrefix is
// accepted.
func decodeBech32(enc string) ([]byte, error) {
	hrp, data, err := bech32.Decode(enc)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "bech32 address: %s", err)
	}
	if hrp != AddressPrefix {
		return nil, errors.Wrapf(errors.ErrInput, "unexpected prefix %q", hrp)
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "bech32 address bits: %s", err)
	}
	return payload, nil
}
