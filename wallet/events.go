package wallet

import (
	"fmt"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/coin"
)

// Event is a notification about a committed state change. Events are
// fire-and-forget: the engine never waits for or reacts to their
// delivery, and a Service emits them strictly after the triggering
// mutation was written to the store.
type Event interface {
	// Kind names the event type, e.g. for log lines.
	Kind() string
}

// SubmitEvent is emitted when a new transaction enters the ledger.
type SubmitEvent struct {
	Submitter covenant.Address
	ID        []byte
	Target    covenant.Address
	Amount    coin.Coin
	Payload   []byte
}

func (SubmitEvent) Kind() string { return "submit" }

// ApproveEvent is emitted when an owner approves a transaction.
type ApproveEvent struct {
	Owner covenant.Address
	ID    []byte
}

func (ApproveEvent) Kind() string { return "approve" }

// RevokeEvent is emitted when an owner revokes a prior approval.
type RevokeEvent struct {
	Owner covenant.Address
	ID    []byte
}

func (RevokeEvent) Kind() string { return "revoke" }

// ExecuteEvent is emitted when a transaction was dispatched
// successfully and reached its terminal state.
type ExecuteEvent struct {
	Owner covenant.Address
	ID    []byte
}

func (ExecuteEvent) Kind() string { return "execute" }

// DepositEvent is emitted when the pool receives funding outside of
// dispatch. Balance is the pool balance after the deposit.
type DepositEvent struct {
	Sender  covenant.Address
	Amount  coin.Coin
	Balance coin.Coin
}

func (DepositEvent) Kind() string { return "deposit" }

// Emitter receives events. Implementations must not call back into the
// engine and should return quickly.
type Emitter interface {
	Emit(Event)
}

// EmitterFunc adapts a plain function to the Emitter interface.
type EmitterFunc func(Event)

func (f EmitterFunc) Emit(ev Event) { f(ev) }

// NopEmitter drops all events.
func NopEmitter() Emitter {
	return EmitterFunc(func(Event) {})
}

// NewLogEmitter writes one log line per event.
func NewLogEmitter(logger log.Logger) Emitter {
	return EmitterFunc(func(ev Event) {
		switch ev := ev.(type) {
		case SubmitEvent:
			logger.Info("transaction submitted",
				"id", fmt.Sprintf("%X", ev.ID),
				"submitter", ev.Submitter,
				"target", ev.Target,
				"amount", ev.Amount)
		case ApproveEvent:
			logger.Info("transaction approved",
				"id", fmt.Sprintf("%X", ev.ID), "owner", ev.Owner)
		case RevokeEvent:
			logger.Info("approval revoked",
				"id", fmt.Sprintf("%X", ev.ID), "owner", ev.Owner)
		case ExecuteEvent:
			logger.Info("transaction executed",
				"id", fmt.Sprintf("%X", ev.ID), "owner", ev.Owner)
		case DepositEvent:
			logger.Info("deposit received",
				"sender", ev.Sender, "amount", ev.Amount, "balance", ev.Balance)
		default:
			logger.Info("wallet event", "kind", ev.Kind())
		}
	})
}
