package wallet

import (
	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/coin"
	"github.com/iov-one/covenant/errors"
)

// Controller implements every wallet operation against a caller
// supplied KVStore. It keeps no state of its own besides its
// collaborators, so a single Controller can serve any number of
// stores.
//
// Controller performs no transaction management: a failing operation
// may leave partial writes in the given store. Use Service for
// all-or-nothing semantics, or hand the Controller a KVCacheWrap and
// manage Write/Discard yourself.
type Controller struct {
	txs  TransactionBucket
	wall WalletBucket
	disp Dispatcher
	emit Emitter
}

// NewController returns a Controller that forwards approved
// transactions to the given dispatcher and notifications to the given
// emitter. A nil emitter drops all events. Controller emits as soon as
// the mutation is applied to the given store; delaying emission until
// the store commits is the Service's job.
func NewController(disp Dispatcher, emitter Emitter) Controller {
	if emitter == nil {
		emitter = NopEmitter()
	}
	return Controller{
		txs:  NewTransactionBucket(),
		wall: NewWalletBucket(),
		disp: disp,
		emit: emitter,
	}
}

// Initialize writes the owner registry into an empty store. It must be
// called exactly once per store; initializing twice fails.
func (c Controller) Initialize(db covenant.KVStore, conf *Config) error {
	switch ok, err := c.wall.HasConfig(db); {
	case err != nil:
		return err
	case ok:
		return errors.Wrap(errors.ErrState, "wallet already initialized")
	}
	return c.wall.PutConfig(db, conf)
}

// Submit appends a new transaction to the ledger in submitted state
// with no approvals and returns the assigned id. The caller must be an
// owner.
func (c Controller) Submit(db covenant.KVStore, caller, target covenant.Address, amount coin.Coin, payload []byte) ([]byte, error) {
	conf, err := c.wall.GetConfig(db)
	if err != nil {
		return nil, err
	}
	if !conf.IsOwner(caller) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not an owner", caller)
	}

	tx := &Transaction{
		Target:  target.Clone(),
		Amount:  amount,
		Payload: payload,
		State:   TxStateSubmitted,
	}
	id, err := c.txs.Create(db, tx)
	if err != nil {
		return nil, err
	}
	c.emit.Emit(SubmitEvent{
		Submitter: caller.Clone(),
		ID:        id,
		Target:    tx.Target,
		Amount:    amount,
		Payload:   payload,
	})
	return id, nil
}

// Approve records the caller's approval on the given transaction. When
// the approval count reaches the threshold the transaction moves to
// approved state. Approving an already approved transaction again is a
// duplicate and rejected, regardless of its state.
func (c Controller) Approve(db covenant.KVStore, caller covenant.Address, id []byte) error {
	tx, conf, err := c.loadForUpdate(db, caller, id)
	if err != nil {
		return err
	}
	if tx.HasApproved(caller) {
		return errors.Wrapf(ErrDuplicateApproval, "owner %s on transaction %X", caller, id)
	}

	tx.addApproval(caller, conf.Threshold)
	if err := c.txs.Put(db, id, tx); err != nil {
		return err
	}
	c.emit.Emit(ApproveEvent{Owner: caller.Clone(), ID: id})
	return nil
}

// Revoke removes the caller's prior approval. If the approval count
// drops below the threshold the transaction reverts to submitted
// state, even if it was approved before.
func (c Controller) Revoke(db covenant.KVStore, caller covenant.Address, id []byte) error {
	tx, conf, err := c.loadForUpdate(db, caller, id)
	if err != nil {
		return err
	}
	if !tx.HasApproved(caller) {
		return errors.Wrapf(ErrNoPriorApproval, "owner %s on transaction %X", caller, id)
	}

	tx.removeApproval(caller, conf.Threshold)
	if err := c.txs.Put(db, id, tx); err != nil {
		return err
	}
	c.emit.Emit(RevokeEvent{Owner: caller.Clone(), ID: id})
	return nil
}

// Execute dispatches an approved transaction, exactly once.
//
// The terminal state is persisted *before* the dispatcher is invoked.
// This ordering is the re-entrancy guard: a dispatcher calling back
// into this controller for the same id observes the executed state and
// is rejected. Moving the state write after the dispatch call reopens
// a double-execution hazard; do not reorder.
//
// Execute only trusts the stored approved flag. The approval count is
// not recomputed against the current threshold; quorum is evaluated by
// Approve and Revoke transitions only.
func (c Controller) Execute(db covenant.KVStore, caller covenant.Address, id []byte) error {
	tx, _, err := c.loadForUpdate(db, caller, id)
	if err != nil {
		return err
	}
	if tx.State != TxStateApproved {
		return errors.Wrapf(ErrNotYetApproved, "transaction %X has %d approvals", id, tx.ApprovalCount())
	}

	tx.State = TxStateExecuted
	if err := c.txs.Put(db, id, tx); err != nil {
		return err
	}

	// The pool can only fund what it received. An overdraw means the
	// environment could not complete the transfer either.
	pool, err := c.wall.GetPool(db)
	if err != nil {
		return err
	}
	balance, err := pool.Balance.Subtract(tx.Amount)
	if err != nil {
		return errors.Wrapf(ErrDispatchFailed, "cannot debit pool: %s", err)
	}
	if !balance.IsNonNegative() {
		return errors.Wrapf(ErrDispatchFailed, "pool balance %s cannot fund %s", pool.Balance, tx.Amount)
	}
	pool.Balance = balance
	if err := c.wall.PutPool(db, pool); err != nil {
		return err
	}

	if err := c.disp.Dispatch(db, tx.Target, tx.Amount, tx.Payload); err != nil {
		return errors.Wrapf(ErrDispatchFailed, "transaction %X: %s", id, err)
	}
	c.emit.Emit(ExecuteEvent{Owner: caller.Clone(), ID: id})
	return nil
}

// Deposit records funding received by the pool and reports the
// resulting balance. Any identity may deposit; this is the only
// operation not gated on ownership.
func (c Controller) Deposit(db covenant.KVStore, sender covenant.Address, amount coin.Coin) error {
	if err := sender.Validate(); err != nil {
		return errors.Wrap(err, "sender")
	}
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrInput, "deposit must be positive")
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}

	pool, err := c.wall.GetPool(db)
	if err != nil {
		return err
	}
	balance, err := pool.Balance.Add(amount)
	if err != nil {
		return errors.Wrap(err, "cannot credit pool")
	}
	pool.Balance = balance
	if err := c.wall.PutPool(db, pool); err != nil {
		return err
	}
	c.emit.Emit(DepositEvent{Sender: sender.Clone(), Amount: amount, Balance: balance})
	return nil
}

// AddOwner appends a new owner to the registry. Only the administrator
// may grow the owner set; there is no removal operation.
func (c Controller) AddOwner(db covenant.KVStore, caller, addr covenant.Address) error {
	conf, err := c.wall.GetConfig(db)
	if err != nil {
		return err
	}
	if !conf.Admin.Equals(caller) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not the administrator", caller)
	}
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "owner address")
	}
	if conf.IsOwner(addr) {
		return errors.Wrapf(ErrAlreadyMember, "%s", addr)
	}

	conf.Owners = append(conf.Owners, addr.Clone())
	return c.wall.PutConfig(db, conf)
}

// IncreaseThreshold raises the approval threshold by delta.
// Administrator only.
//
// The new threshold is deliberately not validated against the current
// owner count. A threshold above the owner count makes every future
// transaction un-executable until enough owners are added; the
// original design permits this and so do we.
func (c Controller) IncreaseThreshold(db covenant.KVStore, caller covenant.Address, delta uint32) error {
	conf, err := c.wall.GetConfig(db)
	if err != nil {
		return err
	}
	if !conf.Admin.Equals(caller) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not the administrator", caller)
	}
	if delta == 0 {
		return errors.Wrap(errors.ErrInput, "delta must be positive")
	}

	conf.Threshold += delta
	return c.wall.PutConfig(db, conf)
}

// loadForUpdate performs the shared precondition checks of all
// per-transaction mutations, in this exact order: the caller must be
// an owner, the transaction must exist and must not be executed. A
// non-owner is rejected before the ledger is consulted, so strangers
// cannot distinguish existing from unknown ids.
func (c Controller) loadForUpdate(db covenant.KVStore, caller covenant.Address, id []byte) (*Transaction, *Config, error) {
	conf, err := c.wall.GetConfig(db)
	if err != nil {
		return nil, nil, err
	}
	if !conf.IsOwner(caller) {
		return nil, nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not an owner", caller)
	}
	tx, err := c.txs.GetTransaction(db, id)
	if err != nil {
		return nil, nil, err
	}
	if tx.State == TxStateExecuted {
		return nil, nil, errors.Wrapf(ErrAlreadyExecuted, "transaction %X", id)
	}
	return tx, conf, nil
}

// IsOwner returns true if the address is part of the owner set.
func (c Controller) IsOwner(db covenant.ReadOnlyKVStore, addr covenant.Address) (bool, error) {
	conf, err := c.wall.GetConfig(db)
	if err != nil {
		return false, err
	}
	return conf.IsOwner(addr), nil
}

// Owners returns an independent copy of the ordered owner list.
func (c Controller) Owners(db covenant.ReadOnlyKVStore) ([]covenant.Address, error) {
	conf, err := c.wall.GetConfig(db)
	if err != nil {
		return nil, err
	}
	owners := make([]covenant.Address, len(conf.Owners))
	for i, o := range conf.Owners {
		owners[i] = o.Clone()
	}
	return owners, nil
}

// Threshold returns the current approval threshold.
func (c Controller) Threshold(db covenant.ReadOnlyKVStore) (uint32, error) {
	conf, err := c.wall.GetConfig(db)
	if err != nil {
		return 0, err
	}
	return conf.Threshold, nil
}

// Admin returns the administrator address.
func (c Controller) Admin(db covenant.ReadOnlyKVStore) (covenant.Address, error) {
	conf, err := c.wall.GetConfig(db)
	if err != nil {
		return nil, err
	}
	return conf.Admin.Clone(), nil
}

// Transaction loads the full ledger record for the given id.
func (c Controller) Transaction(db covenant.ReadOnlyKVStore, id []byte) (*Transaction, error) {
	return c.txs.GetTransaction(db, id)
}

// State loads only the lifecycle state for the given id.
func (c Controller) State(db covenant.ReadOnlyKVStore, id []byte) (TxState, error) {
	tx, err := c.txs.GetTransaction(db, id)
	if err != nil {
		return TxStateInvalid, err
	}
	return tx.State, nil
}

// Count returns the total number of transactions ever submitted.
func (c Controller) Count(db covenant.ReadOnlyKVStore) (int64, error) {
	return c.txs.Count(db)
}

// HasApproved returns the approval flag for the given transaction and
// owner pair.
func (c Controller) HasApproved(db covenant.ReadOnlyKVStore, id []byte, owner covenant.Address) (bool, error) {
	tx, err := c.txs.GetTransaction(db, id)
	if err != nil {
		return false, err
	}
	return tx.HasApproved(owner), nil
}

// Balance returns the recorded pool balance.
func (c Controller) Balance(db covenant.ReadOnlyKVStore) (coin.Coin, error) {
	pool, err := c.wall.GetPool(db)
	if err != nil {
		return coin.Coin{}, err
	}
	return pool.Balance, nil
}
