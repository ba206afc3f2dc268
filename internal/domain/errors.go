// Package domain defines the core entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is usually wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidID is returned when an ID is malformed or out of range.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyTitle is returned when a title is blank after trimming.
	ErrEmptyTitle = errors.New("title must be non-empty")

	// ErrEmptyName is returned when a required name is blank.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrOutOfRange is returned when a numeric field is outside its bounds.
	ErrOutOfRange = errors.New("value out of range")
)

// Ledger errors.
var (
	// ErrInvalidAmount is returned for non-positive deposits, withdrawals and transfers,
	// and for negative opening balances or overdraft limits.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds is returned when a withdrawal would take the balance
	// below the negative overdraft limit.
	ErrInsufficientFunds = errors.New("insufficient funds considering overdraft")

	// ErrAccountNotFound is returned when an account number is unknown.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateAccount is returned when opening an account whose number is taken.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrAccountFrozen is returned when money is moved in or out of a frozen account.
	ErrAccountFrozen = errors.New("account is frozen")

	// ErrTransferRolledBack is returned when a transfer failed after the source
	// was debited and the debit was reversed.
	ErrTransferRolledBack = errors.New("transfer failed, rolled back")
)

// Geometry and arithmetic errors.
var (
	ErrNegativeDimension = errors.New("dimension must be non-negative")
	ErrInvalidTriangle   = errors.New("invalid triangle sides")
	ErrDivisionByZero    = errors.New("division by zero")
)

// Cart errors.
var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrNegativePrice   = errors.New("unit price must be non-negative")
	ErrPriceMismatch   = errors.New("price mismatch")
)

// Roster errors.
var (
	// ErrNoFieldsToUpdate is returned when an update names no fields.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)
