package wallet

import (
	"fmt"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/coin"
	"github.com/iov-one/covenant/errors"
	"github.com/iov-one/covenant/orm"
)

// TxState is the lifecycle state of a ledger transaction.
type TxState int32

const (
	// TxStateInvalid is the zero value and never valid. It guards
	// against using a Transaction that was not properly created.
	TxStateInvalid TxState = iota
	// TxStateSubmitted means the transaction is registered but has not
	// reached quorum.
	TxStateSubmitted
	// TxStateApproved means quorum was reached and the transaction may
	// be executed.
	TxStateApproved
	// TxStateExecuted is terminal. No operation can move a transaction
	// out of it.
	TxStateExecuted
)

func (s TxState) String() string {
	switch s {
	case TxStateSubmitted:
		return "submitted"
	case TxStateApproved:
		return "approved"
	case TxStateExecuted:
		return "executed"
	default:
		return fmt.Sprintf("invalid (%d)", int32(s))
	}
}

// Validate returns an error unless this is a declared lifecycle state.
func (s TxState) Validate() error {
	switch s {
	case TxStateSubmitted, TxStateApproved, TxStateExecuted:
		return nil
	default:
		return errors.Wrapf(errors.ErrState, "lifecycle state %d", int32(s))
	}
}

// Config is the owner registry: the ordered owner set, the
// administrator and the approval threshold. It is stored as a single
// record and is the source of truth for every authorization decision.
type Config struct {
	Owners    []covenant.Address `json:"owners"`
	Admin     covenant.Address   `json:"admin"`
	Threshold uint32             `json:"threshold"`
}

var _ orm.Model = (*Config)(nil)

func (c *Config) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Config) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

// Validate enforces the invariants that must hold for the whole
// lifetime of the wallet. Note that threshold is only checked for a
// lower bound here: raising it above the owner count is permitted
// after construction (see Controller.IncreaseThreshold), so the upper
// bound belongs to Options.Validate which runs exactly once.
func (c *Config) Validate() error {
	if len(c.Owners) == 0 {
		return errors.Wrap(ErrInvalidConfig, "no owners")
	}
	seen := make(map[string]struct{}, len(c.Owners))
	for i, o := range c.Owners {
		if err := o.Validate(); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "owner #%d: %s", i, err)
		}
		key := o.String()
		if _, ok := seen[key]; ok {
			return errors.Wrapf(ErrInvalidConfig, "duplicate owner %s", o)
		}
		seen[key] = struct{}{}
	}
	if err := c.Admin.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "admin: %s", err)
	}
	if c.Threshold < 1 {
		return errors.Wrap(ErrInvalidConfig, "threshold must be positive")
	}
	return nil
}

// IsOwner returns true if the given address is part of the owner set.
func (c *Config) IsOwner(a covenant.Address) bool {
	for _, o := range c.Owners {
		if o.Equals(a) {
			return true
		}
	}
	return false
}

// Transaction is one entry of the append-only ledger: an opaque action
// addressed to a target, the amount to transfer alongside it, and the
// approval state collected so far. The approval list is ordered by the
// time the approvals were cast and never contains duplicates, so its
// length is the approval count.
type Transaction struct {
	Target    covenant.Address   `json:"target"`
	Amount    coin.Coin          `json:"amount"`
	Payload   []byte             `json:"payload"`
	State     TxState            `json:"state"`
	Approvals []covenant.Address `json:"approvals"`
}

var _ orm.Model = (*Transaction)(nil)

func (t *Transaction) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(t)
}

func (t *Transaction) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, t)
}

func (t *Transaction) Validate() error {
	if err := t.Target.Validate(); err != nil {
		return errors.Wrap(err, "target")
	}
	if !t.Amount.IsZero() {
		if err := t.Amount.Validate(); err != nil {
			return errors.Wrap(err, "amount")
		}
		if !t.Amount.IsNonNegative() {
			return errors.Wrap(errors.ErrInput, "negative amount")
		}
	}
	if err := t.State.Validate(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(t.Approvals))
	for i, a := range t.Approvals {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(err, "approval #%d", i)
		}
		key := a.String()
		if _, ok := seen[key]; ok {
			return errors.Wrapf(errors.ErrState, "duplicate approval entry %s", a)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// ApprovalCount returns the number of distinct owners that currently
// approve this transaction.
func (t *Transaction) ApprovalCount() int {
	return len(t.Approvals)
}

// HasApproved returns true if the given address holds an active
// approval on this transaction.
func (t *Transaction) HasApproved(a covenant.Address) bool {
	for _, appr := range t.Approvals {
		if appr.Equals(a) {
			return true
		}
	}
	return false
}

// addApproval records an approval and recomputes the lifecycle state
// against the given threshold. The caller must have checked the
// preconditions (not executed, owner, no duplicate) already.
func (t *Transaction) addApproval(owner covenant.Address, threshold uint32) {
	t.Approvals = append(t.Approvals, owner.Clone())
	if uint32(len(t.Approvals)) >= threshold {
		t.State = TxStateApproved
	}
}

// removeApproval drops an approval and recomputes the lifecycle state
// against the given threshold. Dropping below quorum reverts even an
// approved transaction back to submitted.
func (t *Transaction) removeApproval(owner covenant.Address, threshold uint32) {
	kept := t.Approvals[:0]
	for _, a := range t.Approvals {
		if !a.Equals(owner) {
			kept = append(kept, a)
		}
	}
	t.Approvals = kept
	if uint32(len(t.Approvals)) < threshold {
		t.State = TxStateSubmitted
	}
}

// Pool tracks the funding received by the wallet. The balance only
// reflects what was deposited minus what was dispatched; actual value
// custody is the execution environment's job.
type Pool struct {
	Balance coin.Coin `json:"balance"`
}

var _ orm.Model = (*Pool)(nil)

func (p *Pool) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

func (p *Pool) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, p)
}

func (p *Pool) Validate() error {
	if p.Balance.IsZero() {
		return nil
	}
	if err := p.Balance.Validate(); err != nil {
		return errors.Wrap(err, "balance")
	}
	if !p.Balance.IsNonNegative() {
		return errors.Wrap(errors.ErrState, "negative pool balance")
	}
	return nil
}
