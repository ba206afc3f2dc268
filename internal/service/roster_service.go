package service

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/store"
	"gopkg.in/yaml.v3"
)

//go:embed seed/crew.yaml
var seedCrew []byte

// RosterService provides crew roster operations.
type RosterService interface {
	Create(ctx context.Context, name, species string, age int) (*domain.RosterMember, error)
	Get(ctx context.Context, id int64) (*domain.RosterMember, error)
	List(ctx context.Context) ([]*domain.RosterMember, error)
	FindByName(ctx context.Context, name string) (*domain.RosterMember, error)
	FindBySpecies(ctx context.Context, species string) ([]*domain.RosterMember, error)

	// Update applies the named fields. A backup is written first.
	Update(ctx context.Context, id int64, update domain.RosterUpdate) (*domain.RosterMember, error)

	// Delete removes a member and returns it. A backup is written first.
	Delete(ctx context.Context, id int64) (*domain.RosterMember, error)

	Statistics(ctx context.Context) (domain.RosterStatistics, error)

	// Backup returns the backup path, or "" for in-memory databases.
	Backup(ctx context.Context) (string, error)

	// Import creates every member listed in a YAML document in one
	// transaction and returns them.
	Import(ctx context.Context, r io.Reader) ([]*domain.RosterMember, error)

	// Seed imports the built-in crew when the roster is empty and reports
	// how many members were added.
	Seed(ctx context.Context) (int, error)
}

type rosterServiceImpl struct {
	tx        *store.Transactor
	store     store.RosterStore
	backupper store.Backupper
	logger    *slog.Logger
}

// NewRosterService creates a roster service. backupper may be nil, in which
// case updates and deletes run without a backup.
func NewRosterService(
	db *sql.DB,
	rosterStore store.RosterStore,
	backupper store.Backupper,
	logger *slog.Logger,
) (RosterService, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: database", ErrMissingDependency)
	}
	if rosterStore == nil {
		return nil, fmt.Errorf("%w: roster store", ErrMissingDependency)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &rosterServiceImpl{
		tx:        store.NewTransactor(db, logger),
		store:     rosterStore,
		backupper: backupper,
		logger:    logger.With(slog.String("component", "roster_service")),
	}, nil
}

func (s *rosterServiceImpl) Create(ctx context.Context, name, species string, age int) (*domain.RosterMember, error) {
	member, err := domain.NewRosterMember(name, species, age)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, member); err != nil {
		return nil, s.wrap("create", err)
	}
	return member, nil
}

func (s *rosterServiceImpl) Get(ctx context.Context, id int64) (*domain.RosterMember, error) {
	member, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, s.wrap("get", err)
	}
	return member, nil
}

func (s *rosterServiceImpl) List(ctx context.Context) ([]*domain.RosterMember, error) {
	members, err := s.store.List(ctx)
	if err != nil {
		return nil, s.wrap("list", err)
	}
	return members, nil
}

func (s *rosterServiceImpl) FindByName(ctx context.Context, name string) (*domain.RosterMember, error) {
	member, err := s.store.FindByName(ctx, name)
	if err != nil {
		return nil, s.wrap("find_by_name", err)
	}
	return member, nil
}

func (s *rosterServiceImpl) FindBySpecies(ctx context.Context, species string) ([]*domain.RosterMember, error) {
	members, err := s.store.FindBySpecies(ctx, species)
	if err != nil {
		return nil, s.wrap("find_by_species", err)
	}
	return members, nil
}

func (s *rosterServiceImpl) Update(
	ctx context.Context,
	id int64,
	update domain.RosterUpdate,
) (*domain.RosterMember, error) {
	if update.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}
	// Missing members and invalid values fail before a backup is written.
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, s.wrap("update", err)
	}
	if _, err := update.Apply(*current); err != nil {
		return nil, err
	}
	if _, err := s.Backup(ctx); err != nil {
		return nil, err
	}

	var updated domain.RosterMember
	err = s.tx.Run(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.store.WithTx(tx)
		current, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}
		updated, err = update.Apply(*current)
		if err != nil {
			return err
		}
		return txStore.Update(ctx, &updated)
	})
	if err != nil {
		return nil, s.wrap("update", err)
	}

	s.logger.Info("roster member updated", slog.Int64("member_id", id))
	return &updated, nil
}

func (s *rosterServiceImpl) Delete(ctx context.Context, id int64) (*domain.RosterMember, error) {
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return nil, s.wrap("delete", err)
	}
	if _, err := s.Backup(ctx); err != nil {
		return nil, err
	}

	var deleted *domain.RosterMember
	err := s.tx.Run(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.store.WithTx(tx)
		member, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := txStore.Delete(ctx, id); err != nil {
			return err
		}
		deleted = member
		return nil
	})
	if err != nil {
		return nil, s.wrap("delete", err)
	}

	s.logger.Info("roster member deleted", slog.Int64("member_id", id))
	return deleted, nil
}

func (s *rosterServiceImpl) Statistics(ctx context.Context) (domain.RosterStatistics, error) {
	stats, err := s.store.Statistics(ctx)
	if err != nil {
		return domain.RosterStatistics{}, s.wrap("statistics", err)
	}
	return stats, nil
}

func (s *rosterServiceImpl) Backup(ctx context.Context) (string, error) {
	if s.backupper == nil {
		return "", nil
	}
	path, err := s.backupper.Backup(ctx)
	if err != nil {
		return "", NewServiceError("roster", "backup", err)
	}
	return path, nil
}

func (s *rosterServiceImpl) Import(ctx context.Context, r io.Reader) ([]*domain.RosterMember, error) {
	var docs []domain.RosterMember
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&docs); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	for i := range docs {
		if err := docs[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrInvalidImport, i+1, err)
		}
	}

	created := make([]*domain.RosterMember, 0, len(docs))
	err := s.tx.Run(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.store.WithTx(tx)
		for i := range docs {
			member := docs[i]
			if err := txStore.Create(ctx, &member); err != nil {
				return err
			}
			created = append(created, &member)
		}
		return nil
	})
	if err != nil {
		return nil, s.wrap("import", err)
	}

	s.logger.Info("roster imported", slog.Int("count", len(created)))
	return created, nil
}

func (s *rosterServiceImpl) Seed(ctx context.Context) (int, error) {
	existing, err := s.store.List(ctx)
	if err != nil {
		return 0, s.wrap("seed", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}
	created, err := s.Import(ctx, bytes.NewReader(seedCrew))
	if err != nil {
		return 0, err
	}
	return len(created), nil
}

// wrap passes expected store and domain errors through unchanged.
func (s *rosterServiceImpl) wrap(op string, err error) error {
	if store.IsNotFoundError(err) || errors.Is(err, store.ErrInvalidEntity) ||
		errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrOutOfRange) ||
		errors.Is(err, domain.ErrEmptyName) || errors.Is(err, domain.ErrNoFieldsToUpdate) {
		return err
	}
	s.logger.Error("roster operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()))
	return NewServiceError("roster", op, err)
}
