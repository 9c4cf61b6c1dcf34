// Package covenanttest provides deterministic fixtures for tests
// across all covenant packages.
package covenanttest

import (
	"fmt"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/orm"
)

// Address returns a deterministic, valid address derived from the
// given seed. The same seed always yields the same address and two
// different seeds never collide.
func Address(seed int) covenant.Address {
	return covenant.NewAddress([]byte(fmt.Sprintf("test-address-%d", seed)))
}

// Addresses returns n distinct deterministic addresses, seeded 0..n-1.
func Addresses(n int) []covenant.Address {
	addrs := make([]covenant.Address, n)
	for i := range addrs {
		addrs[i] = Address(i)
	}
	return addrs
}

// SequenceID returns an ID encoded the same way the orm sequence
// generates them. Use it to reference the n-th created entity.
func SequenceID(n int64) []byte {
	return orm.EncodeSequence(n)
}
