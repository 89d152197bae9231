package orm

import (
	"bytes"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const compactIdxPrefix = "_i."

// MultiKeyIndexer calculates the secondary index keys for a given model.
// Returning no keys means the model is not indexed.
type MultiKeyIndexer func(Model) ([][]byte, error)

// compactIndex stores all primary keys indexed under a single value as a
// sorted set, serialized and stored under a single key. This implementation
// should be used only for small sized index collections.
type compactIndex struct {
	name   string
	id     []byte
	unique bool
	index  MultiKeyIndexer
}

func newCompactIndex(bucket, name string, indexer MultiKeyIndexer, unique bool) compactIndex {
	return compactIndex{
		name:   name,
		id:     []byte(compactIdxPrefix + bucket + "_" + name + ":"),
		index:  indexer,
		unique: unique,
	}
}

// indexKey is the full key we store in the db, including prefix.
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (i compactIndex) indexKey(value []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(value))
	copy(out, i.id)
	copy(out[l:], value)
	return out
}

// Update handles updating the reference to the model in the secondary
// index.
//
// prev == nil means insert
// save == nil means delete
// both == nil is error
func (i compactIndex) Update(db custody.KVStore, pk []byte, prev, save Model) error {
	if prev == nil && save == nil {
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil model")
	}

	var before, after [][]byte
	if prev != nil {
		keys, err := i.index(prev)
		if err != nil {
			return errors.Wrapf(err, "index %q", i.name)
		}
		before = deduplicate(keys)
	}
	if save != nil {
		keys, err := i.index(save)
		if err != nil {
			return errors.Wrapf(err, "index %q", i.name)
		}
		after = deduplicate(keys)
	}

	for _, value := range before {
		if contains(after, value) {
			continue
		}
		if err := i.remove(db, value, pk); err != nil {
			return err
		}
	}
	for _, value := range after {
		if contains(before, value) {
			continue
		}
		if err := i.insert(db, value, pk); err != nil {
			return err
		}
	}
	return nil
}

// Refs returns all primary keys indexed under given value, in ascending
// order. Nil is returned if nothing is indexed.
func (i compactIndex) Refs(db custody.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	ref, err := i.load(db, value)
	if err != nil {
		return nil, err
	}
	return ref.Refs, nil
}

func (i compactIndex) load(db custody.ReadOnlyKVStore, value []byte) (*MultiRef, error) {
	raw, err := db.Get(i.indexKey(value))
	if err != nil {
		return nil, errors.Wrapf(err, "index %q", i.name)
	}
	var ref MultiRef
	if raw == nil {
		return &ref, nil
	}
	if err := Unmarshal(raw, &ref); err != nil {
		return nil, errors.Wrapf(err, "index %q", i.name)
	}
	return &ref, nil
}

func (i compactIndex) store(db custody.KVStore, value []byte, ref *MultiRef) error {
	key := i.indexKey(value)
	if len(ref.Refs) == 0 {
		return db.Delete(key)
	}
	raw, err := Marshal(ref)
	if err != nil {
		return err
	}
	return db.Set(key, raw)
}

func (i compactIndex) insert(db custody.KVStore, value, pk []byte) error {
	ref, err := i.load(db, value)
	if err != nil {
		return err
	}
	if i.unique && len(ref.Refs) > 0 {
		return errors.Wrapf(errors.ErrDuplicate, "index %q: value %X already used", i.name, value)
	}
	if err := ref.Add(pk); err != nil {
		return errors.Wrapf(err, "index %q", i.name)
	}
	return i.store(db, value, ref)
}

func (i compactIndex) remove(db custody.KVStore, value, pk []byte) error {
	ref, err := i.load(db, value)
	if err != nil {
		return err
	}
	if err := ref.Remove(pk); err != nil {
		return errors.Wrapf(err, "index %q", i.name)
	}
	return i.store(db, value, ref)
}

func deduplicate(s [][]byte) [][]byte {
	res := make([][]byte, 0, len(s))
	for _, v := range s {
		if !contains(res, v) {
			res = append(res, v)
		}
	}
	return res
}

func contains(set [][]byte, v []byte) bool {
	for _, s := range set {
		if bytes.Equal(s, v) {
			return true
		}
	}
	return false
}
