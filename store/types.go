package store

import "github.com/iov-one/covenant"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = covenant.ReadOnlyKVStore
type KVStore = covenant.KVStore
type SetDeleter = covenant.SetDeleter
type Batch = covenant.Batch
type CacheableKVStore = covenant.CacheableKVStore
type KVCacheWrap = covenant.KVCacheWrap
type CommitKVStore = covenant.CommitKVStore
type CommitID = covenant.CommitID
