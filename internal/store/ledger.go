package store

import (
	"context"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/events"
)

// LedgerStore persists bank accounts.
type LedgerStore interface {
	// LoadAccounts returns every stored account ordered by number.
	LoadAccounts(ctx context.Context) ([]domain.Account, error)

	// SaveAccounts writes all given accounts atomically: either every
	// account is stored or none is.
	SaveAccounts(ctx context.Context, accounts ...domain.Account) error
}

// EventLog is an append-only record of emitted events.
type EventLog interface {
	Append(ctx context.Context, event *events.Event) error
	// List returns events in append order; limit <= 0 means all.
	List(ctx context.Context, limit int) ([]events.Event, error)
}
