package crypto

import (
	"io/ioutil"
	"os"

	"github.com/iov-one/custody/errors"
)

// SaveKey writes the private key to a new file. Existing files are never
// overwritten.
func SaveKey(path string, key *PrivateKey) error {
	fd, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if os.IsExist(err) {
			return errors.Wrapf(errors.ErrDuplicate, "private key file %q already exists", path)
		}
		return errors.Wrapf(errors.ErrInput, "create %q: %s", path, err)
	}
	defer fd.Close()

	if _, err := fd.Write(key.Bytes()); err != nil {
		return errors.Wrapf(errors.ErrInput, "write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return errors.Wrapf(errors.ErrInput, "close private key file: %s", err)
	}
	return nil
}

// LoadKey reads a private key file created by SaveKey.
func LoadKey(path string) (*PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "private key file %q", path)
		}
		return nil, errors.Wrapf(errors.ErrInput, "read %q: %s", path, err)
	}
	key, err := NewPrivateKey(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "private key file %q", path)
	}
	return key, nil
}
