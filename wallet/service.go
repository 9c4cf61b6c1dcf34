package wallet

import (
	"sync"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/coin"
	"github.com/iov-one/covenant/errors"
)

// Options configure a new wallet. Unlike Config.Validate, which only
// guards stored state, Options.Validate enforces the full construction
// contract and is the single place where the threshold is checked
// against the owner count.
type Options struct {
	Owners    []covenant.Address
	Admin     covenant.Address
	Threshold uint32
}

// Validate returns an ErrInvalidConfig wrapping error for any
// violation of the construction contract.
func (o Options) Validate() error {
	if len(o.Owners) == 0 {
		return errors.Wrap(ErrInvalidConfig, "no owners")
	}
	for i, owner := range o.Owners {
		if err := owner.Validate(); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "owner #%d: %s", i, err)
		}
		for _, other := range o.Owners[:i] {
			if owner.Equals(other) {
				return errors.Wrapf(ErrInvalidConfig, "owner %s listed twice", owner)
			}
		}
	}
	if err := o.Admin.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "admin: %s", err)
	}
	if o.Threshold < 1 {
		return errors.Wrap(ErrInvalidConfig, "threshold must be at least 1")
	}
	if int(o.Threshold) > len(o.Owners) {
		return errors.Wrapf(ErrInvalidConfig, "threshold %d exceeds %d owners", o.Threshold, len(o.Owners))
	}
	return nil
}

// Service runs wallet operations with all-or-nothing semantics on top
// of a cacheable store. Every mutation executes inside a cache wrap
// that is written on success and discarded on any error, so a failing
// operation leaves no trace in the store. Events buffered during a
// mutation are delivered to the configured emitter only after the
// wrap is written, in emission order; a discarded wrap delivers
// nothing.
//
// Service methods are safe for concurrent use.
type Service struct {
	mu      sync.Mutex
	db      covenant.CacheableKVStore
	ctrl    Controller
	sink    Emitter
	pending []Event
	logger  log.Logger
}

// NewService initializes a fresh wallet in the given store and returns
// a Service bound to it. It fails with ErrInvalidConfig if the options
// violate the construction contract and with ErrState if the store
// already holds a wallet. A nil emitter drops all events.
func NewService(db covenant.CacheableKVStore, disp Dispatcher, emitter Emitter, opts Options) (*Service, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	s := newService(db, disp, emitter)

	conf := &Config{
		Owners:    opts.Owners,
		Admin:     opts.Admin,
		Threshold: opts.Threshold,
	}
	if err := s.atomic(func(db covenant.KVStore) error {
		return s.ctrl.Initialize(db, conf)
	}); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenService returns a Service bound to a store that already holds a
// wallet. It fails if the store was never initialized.
func OpenService(db covenant.CacheableKVStore, disp Dispatcher, emitter Emitter) (*Service, error) {
	s := newService(db, disp, emitter)
	if _, err := s.ctrl.wall.GetConfig(db); err != nil {
		return nil, err
	}
	return s, nil
}

func newService(db covenant.CacheableKVStore, disp Dispatcher, emitter Emitter) *Service {
	if emitter == nil {
		emitter = NopEmitter()
	}
	s := &Service{
		db:     db,
		sink:   emitter,
		logger: log.NewNopLogger(),
	}
	// The controller emits into the pending buffer. Buffered events
	// reach the sink only once the cache wrap is written.
	buffer := EmitterFunc(func(ev Event) {
		s.pending = append(s.pending, ev)
	})
	s.ctrl = NewController(disp, buffer)
	return s
}

// SetLogger replaces the logger, which defaults to a nop logger.
func (s *Service) SetLogger(logger log.Logger) {
	s.mu.Lock()
	s.logger = logger
	s.mu.Unlock()
}

// Submit records a new transaction proposal and returns its id.
func (s *Service) Submit(caller, target covenant.Address, amount coin.Coin, payload []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id []byte
	err := s.atomic(func(db covenant.KVStore) error {
		var err error
		id, err = s.ctrl.Submit(db, caller, target, amount, payload)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("transaction submitted", "id", covenant.Address(id), "submitter", caller)
	return id, nil
}

// Approve records the caller's approval on a pending transaction.
func (s *Service) Approve(caller covenant.Address, id []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.atomic(func(db covenant.KVStore) error {
		return s.ctrl.Approve(db, caller, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("transaction approved", "id", covenant.Address(id), "owner", caller)
	return nil
}

// Revoke withdraws the caller's prior approval.
func (s *Service) Revoke(caller covenant.Address, id []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.atomic(func(db covenant.KVStore) error {
		return s.ctrl.Revoke(db, caller, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("approval revoked", "id", covenant.Address(id), "owner", caller)
	return nil
}

// Execute dispatches an approved transaction. On any dispatch failure
// every write of the attempt, including the terminal state and the
// pool debit, is rolled back and the transaction remains approved and
// executable.
func (s *Service) Execute(caller covenant.Address, id []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.atomic(func(db covenant.KVStore) error {
		return s.ctrl.Execute(db, caller, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("transaction executed", "id", covenant.Address(id), "owner", caller)
	return nil
}

// Deposit credits the pool balance.
func (s *Service) Deposit(sender covenant.Address, amount coin.Coin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.atomic(func(db covenant.KVStore) error {
		return s.ctrl.Deposit(db, sender, amount)
	})
}

// AddOwner grows the owner set. Administrator only.
func (s *Service) AddOwner(caller, addr covenant.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.atomic(func(db covenant.KVStore) error {
		return s.ctrl.AddOwner(db, caller, addr)
	})
	if err != nil {
		return err
	}
	s.logger.Info("owner added", "owner", addr)
	return nil
}

// IncreaseThreshold raises the approval threshold by delta.
// Administrator only.
func (s *Service) IncreaseThreshold(caller covenant.Address, delta uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.atomic(func(db covenant.KVStore) error {
		return s.ctrl.IncreaseThreshold(db, caller, delta)
	})
}

// IsOwner reports whether the address is part of the owner set.
func (s *Service) IsOwner(addr covenant.Address) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.IsOwner(s.db, addr)
}

// Owners returns the ordered owner list.
func (s *Service) Owners() ([]covenant.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Owners(s.db)
}

// Threshold returns the current approval threshold.
func (s *Service) Threshold() (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Threshold(s.db)
}

// Admin returns the administrator address.
func (s *Service) Admin() (covenant.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Admin(s.db)
}

// Transaction loads the full ledger record for the given id.
func (s *Service) Transaction(id []byte) (*Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Transaction(s.db, id)
}

// State loads the lifecycle state for the given id.
func (s *Service) State(id []byte) (TxState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.State(s.db, id)
}

// Count returns the total number of transactions ever submitted.
func (s *Service) Count() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Count(s.db)
}

// HasApproved reports whether the owner currently approves the given
// transaction.
func (s *Service) HasApproved(id []byte, owner covenant.Address) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.HasApproved(s.db, id, owner)
}

// Balance returns the recorded pool balance.
func (s *Service) Balance() (coin.Coin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Balance(s.db)
}

// atomic runs fn against a cache wrap of the store. The wrap is
// written and buffered events flushed only if fn succeeds; otherwise
// the wrap is discarded and the events produced by fn are dropped.
func (s *Service) atomic(fn func(db covenant.KVStore) error) error {
	cache := s.db.CacheWrap()
	mark := len(s.pending)
	if err := fn(cache); err != nil {
		cache.Discard()
		s.pending = s.pending[:mark]
		return err
	}
	if err := cache.Write(); err != nil {
		s.pending = s.pending[:mark]
		return errors.Wrap(err, "cannot write cache")
	}
	for _, ev := range s.pending[mark:] {
		s.sink.Emit(ev)
	}
	s.pending = s.pending[:mark]
	return nil
}
