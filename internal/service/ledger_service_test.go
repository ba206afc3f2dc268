package service

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/events"
	"github.com/phrazzld/lessonkit/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newLedger(t *testing.T, accounts ...domain.Account) (LedgerService, *MockLedgerStore, *recordingEmitter) {
	t.Helper()
	st := new(MockLedgerStore)
	st.On("LoadAccounts", mock.Anything).Return(accounts, nil).Once()
	em := &recordingEmitter{}
	svc, err := NewLedgerService(context.Background(), st, em, nil)
	require.NoError(t, err)
	return svc, st, em
}

func twoAccounts() []domain.Account {
	return []domain.Account{
		{Number: 1, Holder: "Alice", Balance: dec("100"), OverdraftLimit: dec("50")},
		{Number: 2, Holder: "Bob", Balance: dec("20"), OverdraftLimit: decimal.Zero},
	}
}

func TestNewLedgerService_MissingDependencies(t *testing.T) {
	_, err := NewLedgerService(context.Background(), nil, &recordingEmitter{}, nil)
	assert.ErrorIs(t, err, ErrMissingDependency)

	_, err = NewLedgerService(context.Background(), new(MockLedgerStore), nil, nil)
	assert.ErrorIs(t, err, ErrMissingDependency)
}

func TestNewLedgerService_LoadFailure(t *testing.T) {
	st := new(MockLedgerStore)
	st.On("LoadAccounts", mock.Anything).Return(nil, store.ErrCorruptData)

	_, err := NewLedgerService(context.Background(), st, &recordingEmitter{}, nil)
	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.ErrorIs(t, err, store.ErrCorruptData)
}

func TestLedgerService_TransferMovesExactAmount(t *testing.T) {
	svc, st, em := newLedger(t, twoAccounts()...)
	st.On("SaveAccounts", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Transfer(context.Background(), 1, 2, dec("120"))
	require.NoError(t, err)
	assert.Equal(t, "-20.00", result.From.PrettyBalance())
	assert.Equal(t, "140.00", result.To.PrettyBalance())
	assert.Equal(t, []string{events.TypeTransferCompleted}, em.types())

	var payload TransferEventPayload
	require.NoError(t, em.events[0].UnmarshalPayload(&payload))
	assert.Equal(t, TransferEventPayload{From: 1, To: 2, Amount: "120.00"}, payload)

	st.AssertCalled(t, "SaveAccounts", mock.Anything, mock.MatchedBy(func(accs []domain.Account) bool {
		return len(accs) == 2 && accs[0].Number == 1 && accs[1].Number == 2
	}))
}

func TestLedgerService_TransferInsufficientFunds(t *testing.T) {
	svc, st, em := newLedger(t, twoAccounts()...)

	_, err := svc.Transfer(context.Background(), 1, 2, dec("150.01"))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	st.AssertNotCalled(t, "SaveAccounts", mock.Anything, mock.Anything)
	assert.Empty(t, em.events)

	acc, err := svc.Account(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(dec("100")))
}

func TestLedgerService_TransferToFrozenRollsBack(t *testing.T) {
	accounts := twoAccounts()
	accounts[1].Frozen = true
	svc, st, em := newLedger(t, accounts...)

	_, err := svc.Transfer(context.Background(), 1, 2, dec("10"))
	assert.ErrorIs(t, err, domain.ErrTransferRolledBack)
	assert.ErrorIs(t, err, domain.ErrAccountFrozen)
	assert.Contains(t, err.Error(), "transfer failed, rolled back")
	st.AssertNotCalled(t, "SaveAccounts", mock.Anything, mock.Anything)
	assert.Equal(t, []string{events.TypeTransferRolledBack}, em.types())

	acc, err := svc.Account(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(dec("100")))
}

func TestLedgerService_TransferPersistFailureRestoresBoth(t *testing.T) {
	svc, st, em := newLedger(t, twoAccounts()...)
	st.On("SaveAccounts", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := svc.Transfer(context.Background(), 1, 2, dec("30"))
	assert.ErrorIs(t, err, domain.ErrTransferRolledBack)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, []string{events.TypeTransferRolledBack}, em.types())

	accounts := svc.Accounts(context.Background())
	require.Len(t, accounts, 2)
	assert.True(t, accounts[0].Balance.Equal(dec("100")))
	assert.True(t, accounts[1].Balance.Equal(dec("20")))
}

func TestLedgerService_TransferUnknownAccount(t *testing.T) {
	svc, _, _ := newLedger(t, twoAccounts()...)

	_, err := svc.Transfer(context.Background(), 1, 99, dec("1"))
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	acc, err := svc.Account(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(dec("100")))
}

func TestLedgerService_OpenAccount(t *testing.T) {
	svc, st, em := newLedger(t)
	st.On("SaveAccounts", mock.Anything, mock.Anything).Return(nil).Once()

	acc, err := svc.OpenAccount(context.Background(), 7, "  Carol ", dec("10"), dec("5"))
	require.NoError(t, err)
	assert.Equal(t, "Carol", acc.Holder)
	assert.Equal(t, []string{events.TypeAccountOpened}, em.types())

	_, err = svc.OpenAccount(context.Background(), 7, "Dave", dec("1"), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)
}

func TestLedgerService_OpenAccountPersistFailure(t *testing.T) {
	svc, st, em := newLedger(t)
	st.On("SaveAccounts", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := svc.OpenAccount(context.Background(), 7, "Carol", dec("10"), decimal.Zero)
	require.Error(t, err)
	assert.Empty(t, svc.Accounts(context.Background()))
	assert.Empty(t, em.events)
}

func TestLedgerService_DepositWithdrawFreeze(t *testing.T) {
	svc, st, em := newLedger(t, twoAccounts()...)
	st.On("SaveAccounts", mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	acc, err := svc.Deposit(ctx, 2, dec("5.50"))
	require.NoError(t, err)
	assert.Equal(t, "25.50", acc.PrettyBalance())

	_, err = svc.Withdraw(ctx, 2, dec("25.51"))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	_, err = svc.SetFrozen(ctx, 2, true)
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, 2, dec("1"))
	assert.ErrorIs(t, err, domain.ErrAccountFrozen)

	_, err = svc.SetFrozen(ctx, 2, false)
	require.NoError(t, err)
	acc, err = svc.Withdraw(ctx, 2, dec("25.50"))
	require.NoError(t, err)
	assert.True(t, acc.Balance.IsZero())

	assert.Equal(t, []string{
		events.TypeDeposit,
		events.TypeAccountFrozen,
		events.TypeAccountUnfrozen,
		events.TypeWithdrawal,
	}, em.types())
}

func TestLedgerService_DepositPersistFailureReverts(t *testing.T) {
	svc, st, _ := newLedger(t, twoAccounts()...)
	st.On("SaveAccounts", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := svc.Deposit(context.Background(), 1, dec("1"))
	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "deposit", serviceErr.Op)

	acc, err := svc.Account(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(dec("100")))
}

func TestLedgerService_EmitterFailureDoesNotFailOperation(t *testing.T) {
	st := new(MockLedgerStore)
	st.On("LoadAccounts", mock.Anything).Return(twoAccounts(), nil)
	st.On("SaveAccounts", mock.Anything, mock.Anything).Return(nil)
	em := &recordingEmitter{err: errors.New("handler down")}
	svc, err := NewLedgerService(context.Background(), st, em, nil)
	require.NoError(t, err)

	_, err = svc.Deposit(context.Background(), 1, dec("1"))
	assert.NoError(t, err)
	assert.Len(t, em.events, 1)
}
