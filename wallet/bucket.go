package wallet

import (
	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/errors"
	"github.com/iov-one/covenant/orm"
)

const (
	// transactions are stored under their 8 byte sequence id
	txBucketName = "txns"
	// wallet-wide singleton records (config, pool)
	walletBucketName = "wallet"
)

var (
	configKey = []byte("config")
	poolKey   = []byte("pool")
)

// TransactionBucket is a type-safe wrapper around orm.Bucket that
// assigns sequence ids to new transactions.
type TransactionBucket struct {
	orm.Bucket
	idSeq orm.Sequence
}

// NewTransactionBucket initializes a TransactionBucket with the
// default name and an auto-increment id sequence.
func NewTransactionBucket() TransactionBucket {
	b := orm.NewBucket(txBucketName)
	return TransactionBucket{
		Bucket: b,
		idSeq:  b.Sequence("id"),
	}
}

// Create assigns the next ledger index to the transaction and persists
// it. The assigned 8 byte id is returned; ids are never reused.
func (b TransactionBucket) Create(db covenant.KVStore, tx *Transaction) ([]byte, error) {
	id, err := b.idSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire id")
	}
	if err := b.Put(db, id, tx); err != nil {
		return nil, err
	}
	return id, nil
}

// GetTransaction loads the transaction with the given id, failing with
// ErrNotFound for an id that was never assigned.
func (b TransactionBucket) GetTransaction(db covenant.ReadOnlyKVStore, id []byte) (*Transaction, error) {
	var tx Transaction
	if err := b.One(db, id, &tx); err != nil {
		return nil, errors.Wrapf(err, "transaction %X", id)
	}
	return &tx, nil
}

// Count returns the total number of transactions ever submitted.
func (b TransactionBucket) Count(db covenant.ReadOnlyKVStore) (int64, error) {
	n, _, err := b.idSeq.Latest(db)
	return n, err
}

// WalletBucket holds the singleton records of one wallet: the owner
// registry configuration and the pool balance.
type WalletBucket struct {
	orm.Bucket
}

// NewWalletBucket initializes a WalletBucket with the default name.
func NewWalletBucket() WalletBucket {
	return WalletBucket{Bucket: orm.NewBucket(walletBucketName)}
}

// GetConfig loads the owner registry. A wallet store without a config
// record was never initialized, which is a coding error for every
// caller but OpenService.
func (b WalletBucket) GetConfig(db covenant.ReadOnlyKVStore) (*Config, error) {
	var conf Config
	if err := b.One(db, configKey, &conf); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrap(errors.ErrHuman, "wallet not initialized")
		}
		return nil, err
	}
	return &conf, nil
}

// PutConfig persists the owner registry.
func (b WalletBucket) PutConfig(db covenant.KVStore, conf *Config) error {
	return b.Put(db, configKey, conf)
}

// HasConfig returns true if the wallet was initialized already.
func (b WalletBucket) HasConfig(db covenant.ReadOnlyKVStore) (bool, error) {
	return b.Has(db, configKey)
}

// GetPool loads the pool record. A missing record means no deposit was
// made yet and is returned as an empty pool.
func (b WalletBucket) GetPool(db covenant.ReadOnlyKVStore) (*Pool, error) {
	var pool Pool
	switch err := b.One(db, poolKey, &pool); {
	case err == nil:
		return &pool, nil
	case errors.ErrNotFound.Is(err):
		return &Pool{}, nil
	default:
		return nil, err
	}
}

// PutPool persists the pool record.
func (b WalletBucket) PutPool(db covenant.KVStore, pool *Pool) error {
	return b.Put(db, poolKey, pool)
}
