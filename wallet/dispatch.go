package wallet

import (
	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/coin"
)

// Dispatcher is the external execution boundary. On Execute the engine
// instructs it to transfer the amount to the target and deliver the
// opaque payload. A nil return means the delivery succeeded; any error
// fails the whole execute operation and rolls it back.
//
// The db handle is the same in-flight store view the executing
// operation writes to. A dispatcher may use it to call back into a
// Controller (re-entrancy); such a callback observes the executed
// state already written for the dispatched transaction and is
// rejected.
type Dispatcher interface {
	Dispatch(db covenant.KVStore, target covenant.Address, amount coin.Coin, payload []byte) error
}

// DispatcherFunc adapts a plain function to the Dispatcher interface.
type DispatcherFunc func(db covenant.KVStore, target covenant.Address, amount coin.Coin, payload []byte) error

func (f DispatcherFunc) Dispatch(db covenant.KVStore, target covenant.Address, amount coin.Coin, payload []byte) error {
	return f(db, target, amount, payload)
}
