package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/events"
	"github.com/phrazzld/lessonkit/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func openTestDB(t *testing.T) *bbolt.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLedgerStore_SaveAndLoad(t *testing.T) {
	s := NewLedgerStore(openTestDB(t), nil)
	ctx := context.Background()

	empty, err := s.LoadAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	alice := domain.Account{Number: 300, Holder: "Alice", Balance: decimal.RequireFromString("100.05"),
		OverdraftLimit: decimal.RequireFromString("50")}
	bob := domain.Account{Number: 2, Holder: "Bob", Balance: decimal.RequireFromString("-10.10"),
		OverdraftLimit: decimal.RequireFromString("20"), Frozen: true}
	require.NoError(t, s.SaveAccounts(ctx, alice, bob))

	loaded, err := s.LoadAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, 2, loaded[0].Number, "ordered by account number")
	assert.True(t, loaded[0].Balance.Equal(bob.Balance))
	assert.True(t, loaded[0].Frozen)
	assert.Equal(t, "Alice", loaded[1].Holder)
	assert.True(t, loaded[1].Balance.Equal(alice.Balance))
	assert.True(t, loaded[1].OverdraftLimit.Equal(alice.OverdraftLimit))

	alice.Balance = decimal.RequireFromString("0.01")
	require.NoError(t, s.SaveAccounts(ctx, alice))
	loaded, err = s.LoadAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "0.01", loaded[1].Balance.String())
}

func TestLedgerStore_CancelledContext(t *testing.T) {
	s := NewLedgerStore(openTestDB(t), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.SaveAccounts(ctx, domain.Account{Number: 1, Holder: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEventLog_AppendAndList(t *testing.T) {
	log := NewEventLog(openTestDB(t), nil)
	ctx := context.Background()

	emitter := events.NewInMemoryEventEmitter(nil)
	emitter.RegisterHandler(log)

	for _, typ := range []string{events.TypeAccountOpened, events.TypeDeposit, events.TypeTransferCompleted} {
		e, err := events.NewEvent(typ, map[string]int{"account": 1})
		require.NoError(t, err)
		require.NoError(t, emitter.EmitEvent(ctx, e))
	}

	all, err := log.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, events.TypeAccountOpened, all[0].Type)
	assert.Equal(t, events.TypeTransferCompleted, all[2].Type)

	var payload map[string]int
	require.NoError(t, all[1].UnmarshalPayload(&payload))
	assert.Equal(t, 1, payload["account"])

	latest, err := log.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, events.TypeDeposit, latest[0].Type)
}

func TestLedgerStore_CorruptRecordIsStoreError(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(accountsBucket).Put(accountKey(1), []byte("{not json"))
	}))

	_, err := NewLedgerStore(db, nil).LoadAccounts(context.Background())
	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "account", storeErr.Entity)
	assert.Equal(t, "load", storeErr.Operation)
	assert.ErrorIs(t, err, store.ErrCorruptData)
}
