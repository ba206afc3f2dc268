package mocks

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/service"
)

// MockLedgerService implements service.LedgerService for testing.
type MockLedgerService struct {
	// Custom behavior functions
	OpenAccountFn func(ctx context.Context, number int, holder string, balance, overdraftLimit decimal.Decimal) (domain.Account, error)
	AccountFn     func(ctx context.Context, number int) (domain.Account, error)
	AccountsFn    func(ctx context.Context) []domain.Account
	DepositFn     func(ctx context.Context, number int, amount decimal.Decimal) (domain.Account, error)
	WithdrawFn    func(ctx context.Context, number int, amount decimal.Decimal) (domain.Account, error)
	SetFrozenFn   func(ctx context.Context, number int, frozen bool) (domain.Account, error)
	TransferFn    func(ctx context.Context, from, to int, amount decimal.Decimal) (service.TransferResult, error)

	// Default response values
	AccountValue   domain.Account
	AccountList    []domain.Account
	TransferResult service.TransferResult
	Err            error

	// Call tracking for verification
	MoneyCalls struct {
		mu      sync.Mutex
		Count   int
		Ops     []string
		Numbers []int
		Amounts []decimal.Decimal
	}

	TransferCalls struct {
		mu      sync.Mutex
		Count   int
		From    []int
		To      []int
		Amounts []decimal.Decimal
	}
}

var _ service.LedgerService = (*MockLedgerService)(nil)

// OpenAccount implements service.LedgerService
func (m *MockLedgerService) OpenAccount(
	ctx context.Context,
	number int,
	holder string,
	balance, overdraftLimit decimal.Decimal,
) (domain.Account, error) {
	if m.OpenAccountFn != nil {
		return m.OpenAccountFn(ctx, number, holder, balance, overdraftLimit)
	}
	return m.AccountValue, m.Err
}

// Account implements service.LedgerService
func (m *MockLedgerService) Account(ctx context.Context, number int) (domain.Account, error) {
	if m.AccountFn != nil {
		return m.AccountFn(ctx, number)
	}
	return m.AccountValue, m.Err
}

// Accounts implements service.LedgerService
func (m *MockLedgerService) Accounts(ctx context.Context) []domain.Account {
	if m.AccountsFn != nil {
		return m.AccountsFn(ctx)
	}
	return m.AccountList
}

// Deposit implements service.LedgerService
func (m *MockLedgerService) Deposit(ctx context.Context, number int, amount decimal.Decimal) (domain.Account, error) {
	m.trackMoney("deposit", number, amount)
	if m.DepositFn != nil {
		return m.DepositFn(ctx, number, amount)
	}
	return m.AccountValue, m.Err
}

// Withdraw implements service.LedgerService
func (m *MockLedgerService) Withdraw(ctx context.Context, number int, amount decimal.Decimal) (domain.Account, error) {
	m.trackMoney("withdraw", number, amount)
	if m.WithdrawFn != nil {
		return m.WithdrawFn(ctx, number, amount)
	}
	return m.AccountValue, m.Err
}

// SetFrozen implements service.LedgerService
func (m *MockLedgerService) SetFrozen(ctx context.Context, number int, frozen bool) (domain.Account, error) {
	if m.SetFrozenFn != nil {
		return m.SetFrozenFn(ctx, number, frozen)
	}
	return m.AccountValue, m.Err
}

// Transfer implements service.LedgerService
func (m *MockLedgerService) Transfer(
	ctx context.Context,
	from, to int,
	amount decimal.Decimal,
) (service.TransferResult, error) {
	m.TransferCalls.mu.Lock()
	m.TransferCalls.Count++
	m.TransferCalls.From = append(m.TransferCalls.From, from)
	m.TransferCalls.To = append(m.TransferCalls.To, to)
	m.TransferCalls.Amounts = append(m.TransferCalls.Amounts, amount)
	m.TransferCalls.mu.Unlock()

	if m.TransferFn != nil {
		return m.TransferFn(ctx, from, to, amount)
	}
	return m.TransferResult, m.Err
}

func (m *MockLedgerService) trackMoney(op string, number int, amount decimal.Decimal) {
	m.MoneyCalls.mu.Lock()
	defer m.MoneyCalls.mu.Unlock()
	m.MoneyCalls.Count++
	m.MoneyCalls.Ops = append(m.MoneyCalls.Ops, op)
	m.MoneyCalls.Numbers = append(m.MoneyCalls.Numbers, number)
	m.MoneyCalls.Amounts = append(m.MoneyCalls.Amounts, amount)
}

// Reset clears the call tracking state
func (m *MockLedgerService) Reset() {
	m.MoneyCalls.mu.Lock()
	m.MoneyCalls.Count = 0
	m.MoneyCalls.Ops = nil
	m.MoneyCalls.Numbers = nil
	m.MoneyCalls.Amounts = nil
	m.MoneyCalls.mu.Unlock()

	m.TransferCalls.mu.Lock()
	m.TransferCalls.Count = 0
	m.TransferCalls.From = nil
	m.TransferCalls.To = nil
	m.TransferCalls.Amounts = nil
	m.TransferCalls.mu.Unlock()
}

// LedgerOption configures a MockLedgerService
type LedgerOption func(*MockLedgerService)

// WithAccount sets the default account returned by single-account methods
func WithAccount(acc domain.Account) LedgerOption {
	return func(m *MockLedgerService) {
		m.AccountValue = acc
	}
}

// WithAccounts sets the list returned by Accounts
func WithAccounts(accounts ...domain.Account) LedgerOption {
	return func(m *MockLedgerService) {
		m.AccountList = accounts
	}
}

// WithTransferResult sets the default Transfer result
func WithTransferResult(result service.TransferResult) LedgerOption {
	return func(m *MockLedgerService) {
		m.TransferResult = result
	}
}

// WithLedgerError sets the default error returned by every method
func WithLedgerError(err error) LedgerOption {
	return func(m *MockLedgerService) {
		m.Err = err
	}
}

// NewMockLedgerService creates a MockLedgerService with the given options
func NewMockLedgerService(opts ...LedgerOption) *MockLedgerService {
	m := &MockLedgerService{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewMockLedgerServiceWithInsufficientFunds returns a mock whose money
// movements fail for lack of funds
func NewMockLedgerServiceWithInsufficientFunds() *MockLedgerService {
	return NewMockLedgerService(WithLedgerError(domain.ErrInsufficientFunds))
}
