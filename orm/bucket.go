/*
Package orm provides an easy to use db wrapper.

Break state space into prefixed sections called Buckets. Each bucket
contains only one type of model, addressed by its primary key. Models
serialize themselves (covenant.Persistent) and validate themselves
before they are written.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is implemented by any entity that can be stored in a Bucket.
type Model interface {
	covenant.Persistent
	Validate() error
}

// Bucket is a prefixed subspace of the DB. All keys are transparently
// prefixed with the bucket name so two buckets never collide.
//
// This is a generic building block that should be embedded in a
// type-safe wrapper to ensure all data is the same type.
type Bucket struct {
	name   string
	prefix []byte
}

// NewBucket creates a bucket to store data under the given name.
// The name is part of every database key, so it must be short and is
// restricted to a conservative character set.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// Name returns the name of the bucket
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix.
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// One queries the database for a single model instance. Lookup is done
// by the primary key. The result is loaded into dest.
// This method returns ErrNotFound if the entity does not exist.
func (b Bucket) One(db covenant.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T with key %X", dest, key)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %T", dest)
	}
	return nil
}

// Put saves the given model in the database under the given key. The
// model is validated before it is persisted.
func (b Bucket) Put(db covenant.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot marshal %T", m)
	}
	return db.Set(b.DBKey(key), raw)
}

// Has returns true if an entity with given primary key exists.
func (b Bucket) Has(db covenant.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Sequence returns a named sequence scoped to this bucket.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}
