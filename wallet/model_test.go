package wallet

import (
	"testing"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/coin"
	"github.com/iov-one/covenant/covenanttest"
	"github.com/iov-one/covenant/covenanttest/assert"
	"github.com/iov-one/covenant/errors"
)

func TestOptionsValidate(t *testing.T) {
	owners := covenanttest.Addresses(3)

	cases := map[string]struct {
		opts    Options
		wantErr *errors.Error
	}{
		"valid": {
			opts: Options{Owners: owners, Admin: owners[0], Threshold: 2},
		},
		"threshold equal to owner count": {
			opts: Options{Owners: owners, Admin: owners[0], Threshold: 3},
		},
		"admin outside the owner set": {
			opts: Options{Owners: owners, Admin: covenanttest.Address(9), Threshold: 2},
		},
		"no owners": {
			opts:    Options{Admin: owners[0], Threshold: 1},
			wantErr: ErrInvalidConfig,
		},
		"invalid owner address": {
			opts: Options{
				Owners:    []covenant.Address{owners[0], covenant.Address("too-short")},
				Admin:     owners[0],
				Threshold: 1,
			},
			wantErr: ErrInvalidConfig,
		},
		"duplicated owner": {
			opts: Options{
				Owners:    []covenant.Address{owners[0], owners[1], owners[0]},
				Admin:     owners[0],
				Threshold: 1,
			},
			wantErr: ErrInvalidConfig,
		},
		"missing admin": {
			opts:    Options{Owners: owners, Threshold: 1},
			wantErr: ErrInvalidConfig,
		},
		"zero threshold": {
			opts:    Options{Owners: owners, Admin: owners[0], Threshold: 0},
			wantErr: ErrInvalidConfig,
		},
		"threshold above owner count": {
			opts:    Options{Owners: owners, Admin: owners[0], Threshold: 4},
			wantErr: ErrInvalidConfig,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.opts.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}

func TestConfigIsOwner(t *testing.T) {
	owners := covenanttest.Addresses(2)
	conf := Config{Owners: owners, Admin: owners[0], Threshold: 1}

	if !conf.IsOwner(owners[0]) || !conf.IsOwner(owners[1]) {
		t.Fatal("registered owners must be recognized")
	}
	if conf.IsOwner(covenanttest.Address(9)) {
		t.Fatal("stranger must not be recognized as an owner")
	}
	if conf.IsOwner(nil) {
		t.Fatal("nil address must not be recognized as an owner")
	}
}

func TestTransactionQuorumTransitions(t *testing.T) {
	owners := covenanttest.Addresses(3)
	const threshold = 2

	tx := Transaction{
		Target: covenanttest.Address(7),
		Amount: coin.NewCoin(1, 0, "IOV"),
		State:  TxStateSubmitted,
	}

	tx.addApproval(owners[0], threshold)
	assert.Equal(t, 1, tx.ApprovalCount())
	assert.Equal(t, TxStateSubmitted, tx.State)

	// Reaching the threshold flips the state.
	tx.addApproval(owners[1], threshold)
	assert.Equal(t, 2, tx.ApprovalCount())
	assert.Equal(t, TxStateApproved, tx.State)

	// Above the threshold the state stays approved.
	tx.addApproval(owners[2], threshold)
	assert.Equal(t, 3, tx.ApprovalCount())
	assert.Equal(t, TxStateApproved, tx.State)

	// Dropping to the threshold keeps the quorum.
	tx.removeApproval(owners[0], threshold)
	assert.Equal(t, 2, tx.ApprovalCount())
	assert.Equal(t, TxStateApproved, tx.State)

	// Dropping below the threshold reverts the state.
	tx.removeApproval(owners[1], threshold)
	assert.Equal(t, 1, tx.ApprovalCount())
	assert.Equal(t, TxStateSubmitted, tx.State)

	if !tx.HasApproved(owners[2]) {
		t.Fatal("remaining approval lost")
	}
	if tx.HasApproved(owners[0]) {
		t.Fatal("removed approval still present")
	}
}

func TestTransactionValidate(t *testing.T) {
	target := covenanttest.Address(7)
	owners := covenanttest.Addresses(2)

	cases := map[string]struct {
		tx      Transaction
		wantErr *errors.Error
	}{
		"valid": {
			tx: Transaction{
				Target:    target,
				Amount:    coin.NewCoin(4, 0, "IOV"),
				State:     TxStateSubmitted,
				Approvals: owners,
			},
		},
		"zero amount is a plain message": {
			tx: Transaction{Target: target, Payload: []byte("ping"), State: TxStateSubmitted},
		},
		"missing target": {
			tx:      Transaction{Amount: coin.NewCoin(4, 0, "IOV"), State: TxStateSubmitted},
			wantErr: errors.ErrInput,
		},
		"negative amount": {
			tx:      Transaction{Target: target, Amount: coin.NewCoin(-4, 0, "IOV"), State: TxStateSubmitted},
			wantErr: errors.ErrInput,
		},
		"invalid state": {
			tx:      Transaction{Target: target, State: TxState(333)},
			wantErr: errors.ErrState,
		},
		"duplicated approval": {
			tx: Transaction{
				Target:    target,
				State:     TxStateSubmitted,
				Approvals: []covenant.Address{owners[0], owners[0]},
			},
			wantErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.tx.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}

func TestConfigSerialization(t *testing.T) {
	owners := covenanttest.Addresses(2)
	conf := Config{Owners: owners, Admin: owners[1], Threshold: 2}

	raw, err := conf.Marshal()
	assert.Nil(t, err)

	var loaded Config
	assert.Nil(t, loaded.Unmarshal(raw))
	assert.Equal(t, conf, loaded)
}
