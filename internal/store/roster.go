package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/lessonkit/internal/domain"
)

// RosterStore defines the interface for roster persistence.
type RosterStore interface {
	// Create validates and inserts a member, setting its ID and CreatedAt.
	Create(ctx context.Context, member *domain.RosterMember) error

	// GetByID returns ErrRosterMemberNotFound if no member has the id.
	GetByID(ctx context.Context, id int64) (*domain.RosterMember, error)

	// List returns every member ordered by name.
	List(ctx context.Context) ([]*domain.RosterMember, error)

	// FindByName returns the first member (lowest id) with exactly this name.
	FindByName(ctx context.Context, name string) (*domain.RosterMember, error)

	// FindBySpecies matches species case-insensitively, ordered by name.
	FindBySpecies(ctx context.Context, species string) ([]*domain.RosterMember, error)

	// Update saves name, species and age of an existing member.
	Update(ctx context.Context, member *domain.RosterMember) error

	// Delete removes a member. Returns ErrRosterMemberNotFound if absent.
	Delete(ctx context.Context, id int64) error

	// Statistics aggregates counts per species and the age range.
	Statistics(ctx context.Context) (domain.RosterStatistics, error)

	// WithTx returns a RosterStore bound to the given transaction.
	WithTx(tx *sql.Tx) RosterStore
}

// Backupper writes a point-in-time copy of a database.
type Backupper interface {
	// Backup returns the path of the written copy, or "" when the database
	// has nothing to copy (in-memory).
	Backup(ctx context.Context) (string, error)
}
