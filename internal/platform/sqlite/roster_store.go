package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/platform/logger"
	"github.com/phrazzld/lessonkit/internal/store"
)

// SQLiteRosterStore implements store.RosterStore on SQLite.
type SQLiteRosterStore struct {
	db     store.DBTX
	logger *slog.Logger
	now    func() time.Time
}

// NewSQLiteRosterStore creates a roster store over a database connection or
// transaction managed by the caller. If logger is nil, a default logger is used.
func NewSQLiteRosterStore(db store.DBTX, logger *slog.Logger) *SQLiteRosterStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteRosterStore{
		db:     db,
		logger: logger.With(slog.String("component", "roster_store")),
		now:    time.Now,
	}
}

var _ store.RosterStore = (*SQLiteRosterStore)(nil)

const rosterColumns = `id, name, species, age, created_at`

// Create implements store.RosterStore.Create
func (s *SQLiteRosterStore) Create(ctx context.Context, member *domain.RosterMember) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := member.Validate(); err != nil {
		log.Warn("roster member validation failed during create",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	createdAt := s.now().UTC()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO roster (name, species, age, created_at) VALUES (?, ?, ?, ?)`,
		member.Name, member.Species, member.Age, formatTime(createdAt),
	)
	if err != nil {
		log.Error("failed to create roster member", slog.String("error", err.Error()))
		return MapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return store.NewStoreError("roster member", "create", "cannot read inserted id", err)
	}
	member.ID = id
	member.CreatedAt = createdAt

	log.Info("roster member created",
		slog.Int64("member_id", id),
		slog.String("species", member.Species))
	return nil
}

// GetByID implements store.RosterStore.GetByID
func (s *SQLiteRosterStore) GetByID(ctx context.Context, id int64) (*domain.RosterMember, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving roster member by ID", slog.Int64("member_id", id))

	row := s.db.QueryRowContext(ctx, `SELECT `+rosterColumns+` FROM roster WHERE id = ?`, id)
	member, err := scanMember(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
func (s *SQLiteRosterStore) List(ctx context.Context) ([]*domain.RosterMember, error) {
	return s.query(ctx, `SELECT `+rosterColumns+` FROM roster ORDER BY name, id`)
}

// FindByName implements store.RosterStore.FindByName
func (s *SQLiteRosterStore) FindByName(ctx context.Context, name string) (*domain.RosterMember, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+rosterColumns+` FROM roster WHERE name = ? ORDER BY id LIMIT 1`, name)
	member, err := scanMember(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: name %q", store.ErrRosterMemberNotFound, name)
		}
		return nil, MapError(err)
	}
	return member, nil
}

// FindBySpecies implements store.RosterStore.FindBySpecies
func (s *SQLiteRosterStore) FindBySpecies(ctx context.Context, species string) ([]*domain.RosterMember, error) {
	return s.query(ctx,
		`SELECT `+rosterColumns+` FROM roster WHERE species = ? COLLATE NOCASE ORDER BY name, id`,
		species)
}

// Update implements store.RosterStore.Update
func (s *SQLiteRosterStore) Update(ctx context.Context, member *domain.RosterMember) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := member.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE roster SET name = ?, species = ?, age = ? WHERE id = ?`,
		member.Name, member.Species, member.Age, member.ID,
	)
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
func (s *SQLiteRosterStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM roster WHERE id = ?`, id)
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
func (s *SQLiteRosterStore) Statistics(ctx context.Context) (domain.RosterStatistics, error) {
	var stats domain.RosterStatistics

	var minAge, maxAge sql.NullInt64
	var avgAge sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), MIN(age), MAX(age), AVG(age) FROM roster`,
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

	rows, err := s.db.QueryContext(ctx,
		`SELECT species, COUNT(*) FROM roster GROUP BY species ORDER BY species`)
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
	if err := rows.Err(); err != nil {
		return domain.RosterStatistics{}, MapError(err)
	}
	return stats, nil
}

// WithTx implements store.RosterStore.WithTx
func (s *SQLiteRosterStore) WithTx(tx *sql.Tx) store.RosterStore {
	return &SQLiteRosterStore{db: tx, logger: s.logger, now: s.now}
}

func (s *SQLiteRosterStore) query(ctx context.Context, query string, args ...any) ([]*domain.RosterMember, error) {
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
	var createdAt string
	if err := row.Scan(&m.ID, &m.Name, &m.Species, &m.Age, &createdAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, store.NewStoreError("roster member", "scan", fmt.Sprintf("bad created_at %q", createdAt), store.ErrCorruptData)
	}
	m.CreatedAt = t
	return &m, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
