package wallet

import (
	"testing"

	dbm "github.com/tendermint/tendermint/libs/db"

	"github.com/iov-one/covenant/coin"
	"github.com/iov-one/covenant/covenanttest"
	"github.com/iov-one/covenant/covenanttest/assert"
	"github.com/iov-one/covenant/store/iavl"
)

func TestServiceSurvivesRestart(t *testing.T) {
	db := dbm.NewMemDB()
	cs := iavl.CommitStoreFromDB(db)

	owners := covenanttest.Addresses(3)
	svc, err := NewService(cs, &recordingDispatcher{}, nil, Options{
		Owners:    owners,
		Admin:     owners[0],
		Threshold: 2,
	})
	assert.Nil(t, err)

	assert.Nil(t, svc.Deposit(covenanttest.Address(8), coin.NewCoin(10, 0, "IOV")))
	id, err := svc.Submit(owners[0], covenanttest.Address(7), coin.NewCoin(3, 0, "IOV"), nil)
	assert.Nil(t, err)
	assert.Nil(t, svc.Approve(owners[0], id))

	commit, err := cs.Commit()
	assert.Nil(t, err)
	if commit.Version == 0 || len(commit.Hash) == 0 {
		t.Fatalf("unexpected commit id: %+v", commit)
	}

	// A second process opens the same database and continues where
	// the first one stopped.
	reopened := iavl.CommitStoreFromDB(db)
	assert.Nil(t, reopened.LoadLatestVersion())
	disp := &recordingDispatcher{}
	svc2, err := OpenService(reopened, disp, nil)
	assert.Nil(t, err)

	ok, err := svc2.HasApproved(id, owners[0])
	assert.Nil(t, err)
	assert.Equal(t, true, ok)

	assert.Nil(t, svc2.Approve(owners[1], id))
	assert.Nil(t, svc2.Execute(owners[2], id))
	assert.Equal(t, 1, len(disp.calls))

	balance, err := svc2.Balance()
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(7, 0, "IOV"), balance)
}
