package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/platform/logger"
	"github.com/phrazzld/lessonkit/internal/store"
)

// PostgresRosterStore implements the store.RosterStore interface
// using a PostgreSQL database as the storage backend.
type PostgresRosterStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRosterStore creates a new PostgreSQL implementation of the RosterStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresRosterStore(db store.DBTX, logger *slog.Logger) *PostgresRosterStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresRosterStore{
		db:     db,
		logger: logger.With(slog.String("component", "roster_store")),
	}
}

// Ensure PostgresRosterStore implements store.RosterStore interface
var _ store.RosterStore = (*PostgresRosterStore)(nil)

const rosterColumns = `id, name, species, age, created_at`

// Create implements store.RosterStore.Create
// The database assigns the ID and creation time.
func (s *PostgresRosterStore) Create(ctx context.Context, member *domain.RosterMember) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := member.Validate(); err != nil {
		log.Warn("roster member validation failed during create",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO roster (name, species, age)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := s.db.QueryRowContext(ctx, query, member.Name, member.Species, member.Age).
		Scan(&member.ID, &member.CreatedAt)
	if err != nil {
		log.Error("failed to create roster member", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("roster member created",
		slog.Int64("member_id", member.ID),
		slog.String("species", member.Species))
	return nil
}

// GetByID implements store.RosterStore.GetByID
func (s *PostgresRosterStore) GetByID(ctx context.Context, id int64) (*domain.RosterMember, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving roster member by ID", slog.Int64("member_id", id))

	member, err := scanMember(s.db.QueryRowContext(ctx,
		`SELECT `+rosterColumns+` FROM roster WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("roster member not found", slog.Int64("member_id", id))
			return nil, store.ErrRosterMemberNotFound
		}
		log.Error("failed to retrieve roster member",
			slog.Int64("member_id", id),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return member, nil
}

// List implements store.RosterStore.List
func (s *PostgresRosterStore) List(ctx context.Context) ([]*domain.RosterMember, error) {
	return s.query(ctx, `SELECT `+rosterColumns+` FROM roster ORDER BY name, id`)
}

// FindByName implements store.RosterStore.FindByName
func (s *PostgresRosterStore) FindByName(ctx context.Context, name string) (*domain.RosterMember, error) {
	member, err := scanMember(s.db.QueryRowContext(ctx,
		`SELECT `+rosterColumns+` FROM roster WHERE name = $1 ORDER BY id LIMIT 1`, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: name %q", store.ErrRosterMemberNotFound, name)
		}
		return nil, MapError(err)
	}
	return member, nil
}

// FindBySpecies implements store.RosterStore.FindBySpecies
func (s *PostgresRosterStore) FindBySpecies(ctx context.Context, species string) ([]*domain.RosterMember, error) {
	return s.query(ctx,
		`SELECT `+rosterColumns+` FROM roster WHERE lower(species) = lower($1) ORDER BY name, id`,
		species)
}

// Update implements store.RosterStore.Update
func (s *PostgresRosterStore) Update(ctx context.Context, member *domain.RosterMember) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := member.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE roster SET name = $1, species = $2, age = $3 WHERE id = $4`,
		member.Name, member.Species, member.Age, member.ID)
	if err != nil {
		log.Error("failed to update roster member",
			slog.Int64("member_id", member.ID),
			slog.String("error", err.Error()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrRosterMemberNotFound); err != nil {
		return err
	}

	log.Info("roster member updated", slog.Int64("member_id", member.ID))
	return nil
}

// Delete implements store.RosterStore.Delete
func (s *PostgresRosterStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM roster WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete roster member",
			slog.Int64("member_id", id),
			slog.String("error", err.Error()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrRosterMemberNotFound); err != nil {
		return err
	}

	log.Info("roster member deleted", slog.Int64("member_id", id))
	return nil
}

// Statistics implements store.RosterStore.Statistics
func (s *PostgresRosterStore) Statistics(ctx context.Context) (domain.RosterStatistics, error) {
	var stats domain.RosterStatistics
	var minAge, maxAge sql.NullInt64
	var avgAge sql.NullFloat64

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), MIN(age), MAX(age), AVG(age)::float8 FROM roster`,
	).Scan(&stats.Total, &minAge, &maxAge, &avgAge)
	if err != nil {
		return domain.RosterStatistics{}, MapError(err)
	}
	if stats.Total == 0 {
		return stats, nil
	}
	stats.AgeMin = int(minAge.Int64)
	stats.AgeMax = int(maxAge.Int64)
	stats.AgeAvg = math.Round(avgAge.Float64*10) / 10

	rows, err := s.db.QueryContext(ctx, `SELECT species, COUNT(*) FROM roster GROUP BY species`)
	if err != nil {
		return domain.RosterStatistics{}, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	stats.Species = make(map[string]int)
	for rows.Next() {
		var species string
		var count int
		if err := rows.Scan(&species, &count); err != nil {
			return domain.RosterStatistics{}, MapError(err)
		}
		stats.Species[species] = count
	}
	return stats, MapError(rows.Err())
}

// WithTx implements store.RosterStore.WithTx
func (s *PostgresRosterStore) WithTx(tx *sql.Tx) store.RosterStore {
	return &PostgresRosterStore{db: tx, logger: s.logger}
}

func (s *PostgresRosterStore) query(ctx context.Context, query string, args ...any) ([]*domain.RosterMember, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	members := []*domain.RosterMember{}
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, MapError(err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return members, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*domain.RosterMember, error) {
	var m domain.RosterMember
	if err := row.Scan(&m.ID, &m.Name, &m.Species, &m.Age, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.CreatedAt = m.CreatedAt.UTC()
	return &m, nil
}
