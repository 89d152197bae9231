package orm

import (
	"reflect"
	"regexp"
	"sort"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// ModelBucket is a typed key value collection. Each stored entity is a Model
// of the same type. Secondary indexes are kept up to date on every write.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db custody.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists and
	// ErrNotFound otherwise.
	Has(db custody.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database. If key is nil, the bucket
	// sequence is used to assign a new key. The key under which the model
	// was stored is returned.
	Put(db custody.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db custody.KVStore, key []byte) error

	// ByIndex loads all models indexed under given value and appends them
	// to the slice pointed by destination. Keys of returned models are
	// returned in the same order.
	ByIndex(db custody.ReadOnlyKVStore, indexName string, value []byte, destination interface{}) ([][]byte, error)

	// IndexKeys returns primary keys of all models indexed under given
	// value, in ascending order.
	IndexKeys(db custody.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error)

	// PrefixScan loads all models which primary key starts with given
	// prefix and appends them to the slice pointed by destination.
	PrefixScan(db custody.ReadOnlyKVStore, prefix []byte, destination interface{}) ([][]byte, error)
}

// ModelBucketOption is implemented by any function that can configure a
// model bucket when created.
type ModelBucketOption func(*modelBucket)

// WithIndex configures the bucket to build and maintain an index provided by
// given indexer. A unique index rejects a second model indexed under the same
// value.
func WithIndex(name string, indexer MultiKeyIndexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		if _, ok := mb.indexes[name]; ok {
			panic("duplicated index " + name)
		}
		mb.indexes[name] = newCompactIndex(mb.name, name, indexer, unique)
	}
}

// WithIDSequence configures the bucket to use given sequence for generating
// keys of models saved without a key.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.idSeq = &s
	}
}

// NewModelBucket returns a ModelBucket instance storing models of the same
// type as given one.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic("illegal bucket name: " + name)
	}
	tp := reflect.TypeOf(m)
	if tp.Kind() != reflect.Ptr {
		panic("model must be a pointer")
	}
	mb := &modelBucket{
		name:    name,
		prefix:  []byte(name + ":"),
		model:   tp.Elem(),
		indexes: make(map[string]compactIndex),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	idSeq   *Sequence
	indexes map[string]compactIndex
}

func (mb *modelBucket) dbKey(key []byte) []byte {
	out := make([]byte, len(mb.prefix)+len(key))
	copy(out, mb.prefix)
	copy(out[len(mb.prefix):], key)
	return out
}

func (mb *modelBucket) One(db custody.ReadOnlyKVStore, key []byte, dest Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if reflect.TypeOf(dest) != reflect.PtrTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, mb.model)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	dest.Reset()
	return Unmarshal(raw, dest)
}

func (mb *modelBucket) Has(db custody.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	return nil
}

func (mb *modelBucket) Put(db custody.KVStore, key []byte, m Model) ([]byte, error) {
	if reflect.TypeOf(m) != reflect.PtrTo(mb.model) {
		return nil, errors.Wrapf(errors.ErrType, "cannot store %T in %q bucket", m, mb.name)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	if len(key) == 0 {
		if mb.idSeq == nil {
			return nil, errors.Wrap(errors.ErrEmpty, "key required")
		}
		next, err := mb.idSeq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "ID sequence")
		}
		key = next
	}

	var prev Model
	if len(mb.indexes) > 0 {
		old := reflect.New(mb.model).Interface().(Model)
		switch err := mb.One(db, key, old); {
		case err == nil:
			prev = old
		case errors.ErrNotFound.Is(err):
		default:
			return nil, errors.Wrap(err, "cannot load previous state")
		}
	}

	raw, err := Marshal(m)
	if err != nil {
		return nil, err
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if err := mb.updateIndexes(db, key, prev, m); err != nil {
		return nil, err
	}
	return key, nil
}

func (mb *modelBucket) Delete(db custody.KVStore, key []byte) error {
	prev := reflect.New(mb.model).Interface().(Model)
	if err := mb.One(db, key, prev); err != nil {
		return err
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return mb.updateIndexes(db, key, prev, nil)
}

func (mb *modelBucket) updateIndexes(db custody.KVStore, key []byte, prev, save Model) error {
	if prev == nil && save == nil {
		return nil
	}
	// Stable order keeps the produced write set deterministic.
	names := make([]string, 0, len(mb.indexes))
	for name := range mb.indexes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := mb.indexes[name].Update(db, key, prev, save); err != nil {
			return err
		}
	}
	return nil
}

func (mb *modelBucket) IndexKeys(db custody.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error) {
	idx, ok := mb.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInput, "unknown index %q", indexName)
	}
	return idx.Refs(db, value)
}

func (mb *modelBucket) ByIndex(db custody.ReadOnlyKVStore, indexName string, value []byte, destination interface{}) ([][]byte, error) {
	dest, err := mb.destination(destination)
	if err != nil {
		return nil, err
	}
	keys, err := mb.IndexKeys(db, indexName, value)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		m := reflect.New(mb.model)
		if err := mb.One(db, key, m.Interface().(Model)); err != nil {
			return nil, errors.Wrapf(err, "index %q reference", indexName)
		}
		dest.Set(reflect.Append(dest, m))
	}
	return keys, nil
}

func (mb *modelBucket) PrefixScan(db custody.ReadOnlyKVStore, prefix []byte, destination interface{}) ([][]byte, error) {
	dest, err := mb.destination(destination)
	if err != nil {
		return nil, err
	}
	start := mb.dbKey(prefix)
	it, err := db.Iterator(start, store.PrefixEnd(start))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	models, err := store.ReadAll(it)
	if err != nil {
		return nil, err
	}

	keys := make([][]byte, 0, len(models))
	for _, res := range models {
		m := reflect.New(mb.model)
		if err := Unmarshal(res.Value, m.Interface().(Model)); err != nil {
			return nil, err
		}
		dest.Set(reflect.Append(dest, m))
		keys = append(keys, res.Key[len(mb.prefix):])
	}
	return keys, nil
}

// destination validates that given value is a pointer to a slice of model
// pointers and returns the slice value.
func (mb *modelBucket) destination(destination interface{}) (reflect.Value, error) {
	ptr := reflect.ValueOf(destination)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() {
		return reflect.Value{}, errors.Wrap(errors.ErrType, "destination must be a non nil pointer")
	}
	dest := ptr.Elem()
	if dest.Kind() != reflect.Slice || dest.Type().Elem() != reflect.PtrTo(mb.model) {
		return reflect.Value{}, errors.Wrapf(errors.ErrType, "destination must be *[]*%s, got %T", mb.model.Name(), destination)
	}
	return dest, nil
}
