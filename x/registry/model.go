package registry

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	bucketName = "account"
	ownerIndex = "owner"
)

// Validate ensures the account is valid.
func (a *Account) Validate() error {
	if len(a.Owners) == 0 {
		return errors.Wrap(errors.ErrModel, "owners required")
	}
	for i, o := range a.Owners {
		if err := o.Validate(); err != nil {
			return errors.Wrapf(err, "owner %d", i)
		}
		for _, prev := range a.Owners[:i] {
			if prev.Equals(o) {
				return errors.Wrapf(errors.ErrDuplicate, "owner %d", i)
			}
		}
	}
	if a.CreatedAt < 0 {
		return errors.Wrap(errors.ErrModel, "creation time")
	}
	return nil
}

// HasOwner returns true if given party is an owner of the account.
func (a *Account) HasOwner(party custody.Address) bool {
	for _, o := range a.Owners {
		if o.Equals(party) {
			return true
		}
	}
	return false
}

// ownerIndexer indexes an account by each of its owners.
func ownerIndexer(m orm.Model) ([][]byte, error) {
	a, ok := m.(*Account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	keys := make([][]byte, len(a.Owners))
	for i, o := range a.Owners {
		keys[i] = o
	}
	return keys, nil
}

// NewAccountBucket returns a bucket storing accounts under their sequence
// assigned id, indexed by owner.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketName, &Account{},
		orm.WithIndex(ownerIndex, ownerIndexer, false),
		orm.WithIDSequence(orm.NewSequence(bucketName, "id")),
	)
}

// AccountKey returns the primary key of the account with given id.
func AccountKey(id uint64) []byte {
	return orm.EncodeSequence(id)
}

// AccountID is the reverse of AccountKey.
func AccountID(key []byte) (uint64, error) {
	if len(key) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "invalid account key %X", key)
	}
	return orm.DecodeSequence(key), nil
}
