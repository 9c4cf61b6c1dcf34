package wallet

import (
	"github.com/iov-one/covenant/errors"
)

// Error codes 1100-1199 are reserved for the wallet package. Every
// rejection reason a caller may want to react to has its own root
// error, so failures can be distinguished without parsing messages.
var (
	// ErrInvalidConfig is returned when wallet construction input is
	// malformed: empty owner list, nil or duplicate owner, threshold
	// out of range.
	ErrInvalidConfig = errors.Register(1100, "invalid configuration")

	// ErrAlreadyMember is returned when adding an address that is
	// already part of the owner set.
	ErrAlreadyMember = errors.Register(1101, "already an owner")

	// ErrAlreadyExecuted is returned on any mutating operation against
	// a transaction in its terminal state.
	ErrAlreadyExecuted = errors.Register(1102, "transaction already executed")

	// ErrDuplicateApproval is returned when an owner approves the same
	// transaction twice without revoking in between.
	ErrDuplicateApproval = errors.Register(1103, "duplicate approval")

	// ErrNoPriorApproval is returned when revoking an approval that was
	// never cast.
	ErrNoPriorApproval = errors.Register(1104, "no prior approval")

	// ErrNotYetApproved is returned when executing a transaction that
	// has not reached quorum.
	ErrNotYetApproved = errors.Register(1105, "quorum not reached")

	// ErrDispatchFailed is returned when the external dispatch boundary
	// reports failure, or the pool cannot fund the transaction. The
	// whole execute operation is rolled back.
	ErrDispatchFailed = errors.Register(1106, "dispatch failed")
)
