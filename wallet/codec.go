package wallet

import (
	amino "github.com/tendermint/go-amino"
)

// cdc serializes all models stored by this package. Only concrete
// structs are encoded, so no type registration is needed.
var cdc = amino.NewCodec()
