package iavl

import (
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"

	"github.com/iov-one/covenant/errors"
	"github.com/iov-one/covenant/store"
)

// cacheSize is the number of inner nodes kept in memory by the tree
const cacheSize = 10000

// CommitStore manages a iavl committed state. Writes go into the
// working tree and only become durable when Commit saves a version.
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore creates a new store with a leveldb backing, stored
// under dir with the given database name.
func NewCommitStore(dir, name string) (*CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open database")
	}
	return CommitStoreFromDB(db), nil
}

// MemCommitStore returns a commit store backed by memory only. Useful
// for tests that want commit semantics without touching the disk.
func MemCommitStore() *CommitStore {
	return CommitStoreFromDB(dbm.NewMemDB())
}

// CommitStoreFromDB wraps an iavl tree around any tendermint db.
func CommitStoreFromDB(db dbm.DB) *CommitStore {
	return &CommitStore{
		tree: iavl.NewMutableTree(db, cacheSize),
	}
}

// Get returns the value from the working tree, nil if missing.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	_, value := s.tree.Get(key)
	return value, nil
}

// Has checks the working tree for the key.
func (s *CommitStore) Has(key []byte) (bool, error) {
	return s.tree.Has(key), nil
}

// Set writes to the working tree. The write is not durable until the
// next Commit.
func (s *CommitStore) Set(key, value []byte) error {
	s.tree.Set(key, value)
	return nil
}

// Delete removes the key from the working tree.
func (s *CommitStore) Delete(key []byte) error {
	s.tree.Remove(key)
	return nil
}

// NewBatch piles up ops to apply to the working tree. Atomicity with
// respect to the persisted state is provided by Commit, which is the
// only operation that makes the working tree durable.
func (s *CommitStore) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(s)
}

// CacheWrap layers a scratch-pad on top of the working tree.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// Commit saves the next version to disk and returns its id.
func (s *CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(err, "cannot save version")
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version. If there was
// a crash during the last commit, it is guaranteed to return a stable
// state, even if older.
func (s *CommitStore) LoadLatestVersion() error {
	_, err := s.tree.Load()
	return errors.Wrap(err, "cannot load latest version")
}

// LatestVersion returns info on the latest version saved to disk
func (s *CommitStore) LatestVersion() store.CommitID {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}
}
