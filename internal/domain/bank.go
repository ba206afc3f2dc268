package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Account is a bank account that may run a negative balance down to
// -OverdraftLimit.
type Account struct {
	Number         int
	Holder         string
	Balance        decimal.Decimal
	OverdraftLimit decimal.Decimal
	Frozen         bool
}

// NewAccount validates and builds an account.
func NewAccount(number int, holder string, balance, overdraftLimit decimal.Decimal) (*Account, error) {
	acc := &Account{
		Number:         number,
		Holder:         strings.TrimSpace(holder),
		Balance:        balance,
		OverdraftLimit: overdraftLimit,
	}
	if err := acc.Validate(); err != nil {
		return nil, err
	}
	return acc, nil
}

// Validate checks the account fields.
func (a *Account) Validate() error {
	if a.Number <= 0 {
		return fmt.Errorf("%w: account number %d", ErrInvalidID, a.Number)
	}
	if a.Holder == "" {
		return fmt.Errorf("%w: holder", ErrEmptyName)
	}
	if a.OverdraftLimit.IsNegative() {
		return fmt.Errorf("%w: overdraft limit cannot be negative", ErrInvalidAmount)
	}
	if a.Balance.LessThan(a.OverdraftLimit.Neg()) {
		return fmt.Errorf("%w: balance below overdraft limit", ErrInsufficientFunds)
	}
	return nil
}

// Deposit adds a positive amount.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: deposit %s", ErrInvalidAmount, amount)
	}
	if a.Frozen {
		return fmt.Errorf("%w: account %d", ErrAccountFrozen, a.Number)
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Withdraw removes a positive amount if the result stays within the overdraft limit.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: withdrawal %s", ErrInvalidAmount, amount)
	}
	if a.Frozen {
		return fmt.Errorf("%w: account %d", ErrAccountFrozen, a.Number)
	}
	next := a.Balance.Sub(amount)
	if next.LessThan(a.OverdraftLimit.Neg()) {
		return fmt.Errorf("%w: account %d", ErrInsufficientFunds, a.Number)
	}
	a.Balance = next
	return nil
}

// PrettyBalance renders the balance rounded to cents.
func (a Account) PrettyBalance() string {
	return FormatMoney(a.Balance)
}

// Bank holds accounts in memory. It is not safe for concurrent use.
type Bank struct {
	accounts map[int]*Account
}

// NewBank returns an empty bank.
func NewBank() *Bank {
	return &Bank{accounts: make(map[int]*Account)}
}

// RestoreBank rebuilds a bank from persisted accounts.
func RestoreBank(accounts []Account) (*Bank, error) {
	b := NewBank()
	for i := range accounts {
		acc := accounts[i]
		if err := acc.Validate(); err != nil {
			return nil, err
		}
		if _, exists := b.accounts[acc.Number]; exists {
			return nil, fmt.Errorf("%w: account %d", ErrDuplicateAccount, acc.Number)
		}
		b.accounts[acc.Number] = &acc
	}
	return b, nil
}

// OpenAccount adds a new account. The opening balance must not be negative.
func (b *Bank) OpenAccount(number int, holder string, balance, overdraftLimit decimal.Decimal) (Account, error) {
	if _, exists := b.accounts[number]; exists {
		return Account{}, fmt.Errorf("%w: account %d", ErrDuplicateAccount, number)
	}
	if balance.IsNegative() {
		return Account{}, fmt.Errorf("%w: opening balance cannot be negative", ErrInvalidAmount)
	}
	acc, err := NewAccount(number, holder, balance, overdraftLimit)
	if err != nil {
		return Account{}, err
	}
	b.accounts[number] = acc
	return *acc, nil
}

// Account returns a copy of the account with the given number.
func (b *Bank) Account(number int) (Account, error) {
	acc, err := b.get(number)
	if err != nil {
		return Account{}, err
	}
	return *acc, nil
}

// Accounts returns every account ordered by number.
func (b *Bank) Accounts() []Account {
	out := make([]Account, 0, len(b.accounts))
	for _, acc := range b.accounts {
		out = append(out, *acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Balance returns the current balance of an account.
func (b *Bank) Balance(number int) (decimal.Decimal, error) {
	acc, err := b.get(number)
	if err != nil {
		return decimal.Zero, err
	}
	return acc.Balance, nil
}

// Deposit credits an account.
func (b *Bank) Deposit(number int, amount decimal.Decimal) (Account, error) {
	acc, err := b.get(number)
	if err != nil {
		return Account{}, err
	}
	if err := acc.Deposit(amount); err != nil {
		return Account{}, err
	}
	return *acc, nil
}

// Withdraw debits an account.
func (b *Bank) Withdraw(number int, amount decimal.Decimal) (Account, error) {
	acc, err := b.get(number)
	if err != nil {
		return Account{}, err
	}
	if err := acc.Withdraw(amount); err != nil {
		return Account{}, err
	}
	return *acc, nil
}

// SetFrozen freezes or unfreezes an account.
func (b *Bank) SetFrozen(number int, frozen bool) (Account, error) {
	acc, err := b.get(number)
	if err != nil {
		return Account{}, err
	}
	acc.Frozen = frozen
	return *acc, nil
}

// Transfer moves amount from one account to another.
//
// Both accounts are looked up before anything is mutated. The source is
// debited first; if crediting the destination fails, the source balance is
// restored and the returned error wraps ErrTransferRolledBack together with
// the cause.
func (b *Bank) Transfer(from, to int, amount decimal.Decimal) (src, dst Account, err error) {
	if !amount.IsPositive() {
		return Account{}, Account{}, fmt.Errorf("%w: transfer %s", ErrInvalidAmount, amount)
	}
	source, err := b.get(from)
	if err != nil {
		return Account{}, Account{}, err
	}
	dest, err := b.get(to)
	if err != nil {
		return Account{}, Account{}, err
	}

	original := source.Balance
	if err := source.Withdraw(amount); err != nil {
		return Account{}, Account{}, err
	}
	if err := dest.Deposit(amount); err != nil {
		source.Balance = original
		return Account{}, Account{}, fmt.Errorf("%w: %w", ErrTransferRolledBack, err)
	}
	return *source, *dest, nil
}

// Restore overwrites an existing account with a previously taken snapshot.
// It is used to compensate a change that could not be persisted.
func (b *Bank) Restore(snapshot Account) error {
	acc, err := b.get(snapshot.Number)
	if err != nil {
		return err
	}
	*acc = snapshot
	return nil
}

// Remove deletes an account; it undoes an OpenAccount that could not be persisted.
func (b *Bank) Remove(number int) {
	delete(b.accounts, number)
}

func (b *Bank) get(number int) (*Account, error) {
	acc, ok := b.accounts[number]
	if !ok {
		return nil, fmt.Errorf("%w: account %d", ErrAccountNotFound, number)
	}
	return acc, nil
}
