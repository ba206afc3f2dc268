package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/platform/migrate"
	"github.com/phrazzld/lessonkit/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.db")
	db, err := OpenAndMigrate(context.Background(), path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

func seed(t *testing.T, s store.RosterStore, members ...domain.RosterMember) []*domain.RosterMember {
	t.Helper()
	out := make([]*domain.RosterMember, 0, len(members))
	for i := range members {
		m := members[i]
		require.NoError(t, s.Create(context.Background(), &m))
		out = append(out, &m)
	}
	return out
}

func crew() []domain.RosterMember {
	return []domain.RosterMember{
		{Name: "Benjamin Sisko", Species: "Human", Age: 40},
		{Name: "Jadzia Dax", Species: "Trill", Age: 300},
		{Name: "Kira Nerys", Species: "Bajoran", Age: 29},
	}
}

func TestMigrationsApplied(t *testing.T) {
	db, _ := openTestDB(t)

	version, err := migrate.CurrentVersion(context.Background(), db, Migrations)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestRosterStore_CreateAndGet(t *testing.T) {
	db, _ := openTestDB(t)
	s := NewSQLiteRosterStore(db, nil)
	ctx := context.Background()

	m := domain.RosterMember{Name: "Odo", Species: "Changeling", Age: 200}
	require.NoError(t, s.Create(ctx, &m))
	assert.Positive(t, m.ID)
	assert.False(t, m.CreatedAt.IsZero())

	got, err := s.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Odo", got.Name)
	assert.Equal(t, "Changeling", got.Species)
	assert.Equal(t, 200, got.Age)
	assert.WithinDuration(t, m.CreatedAt, got.CreatedAt, time.Millisecond)
}

func TestRosterStore_CreateInvalid(t *testing.T) {
	db, _ := openTestDB(t)
	s := NewSQLiteRosterStore(db, nil)

	err := s.Create(context.Background(), &domain.RosterMember{Name: " ", Species: "Human", Age: 1})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrEmptyName)
}

func TestRosterStore_CheckConstraintMapped(t *testing.T) {
	db, _ := openTestDB(t)

	_, err := db.Exec(`INSERT INTO roster (name, species, age, created_at) VALUES ('X', 'Y', -1, '2024-01-01T00:00:00Z')`)
	require.Error(t, err)
	assert.ErrorIs(t, MapError(err), store.ErrInvalidEntity)
}

func TestRosterStore_GetByIDNotFound(t *testing.T) {
	db, _ := openTestDB(t)
	s := NewSQLiteRosterStore(db, nil)

	_, err := s.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrRosterMemberNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestRosterStore_ListOrderedByName(t *testing.T) {
	db, _ := openTestDB(t)
	s := NewSQLiteRosterStore(db, nil)
	ctx := context.Background()

	members := crew()
	seed(t, s, members[2], members[0], members[1])

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Benjamin Sisko", list[0].Name)
	assert.Equal(t, "Jadzia Dax", list[1].Name)
	assert.Equal(t, "Kira Nerys", list[2].Name)
}

func TestRosterStore_DuplicateNamesAllowed(t *testing.T) {
	db, _ := openTestDB(t)
	s := NewSQLiteRosterStore(db, nil)
	ctx := context.Background()

	first := seed(t, s,
		domain.RosterMember{Name: "Worf", Species: "Klingon", Age: 35},
		domain.RosterMember{Name: "Worf", Species: "Klingon", Age: 36},
	)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	found, err := s.FindByName(ctx, "Worf")
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, found.ID)

	_, err = s.FindByName(ctx, "worf")
	assert.ErrorIs(t, err, store.ErrRosterMemberNotFound)
}

func TestRosterStore_FindBySpeciesCaseInsensitive(t *testing.T) {
	db, _ := openTestDB(t)
	s := NewSQLiteRosterStore(db, nil)
	ctx := context.Background()

	seed(t, s, crew()...)
	seed(t, s, domain.RosterMember{Name: "Bareil Antos", Species: "Bajoran", Age: 35})

	bajorans, err := s.FindBySpecies(ctx, "bajoran")
	require.NoError(t, err)
	require.Len(t, bajorans, 2)
	assert.Equal(t, "Bareil Antos", bajorans[0].Name)
	assert.Equal(t, "Kira Nerys", bajorans[1].Name)

	none, err := s.FindBySpecies(ctx, "Ferengi")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRosterStore_Update(t *testing.T) {
	db, _ := openTestDB(t)
	s := NewSQLiteRosterStore(db, nil)
	ctx := context.Background()

	members := seed(t, s, crew()...)
	dax := *members[1]
	dax.Name = "Ezri Dax"
	require.NoError(t, s.Update(ctx, &dax))

	got, err := s.GetByID(ctx, dax.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ezri Dax", got.Name)
	assert.Equal(t, 300, got.Age)

	missing := domain.RosterMember{ID: 999, Name: "Nobody", Species: "Human", Age: 1}
	assert.ErrorIs(t, s.Update(ctx, &missing), store.ErrRosterMemberNotFound)
}

func TestRosterStore_Delete(t *testing.T) {
	db, _ := openTestDB(t)
	s := NewSQLiteRosterStore(db, nil)
	ctx := context.Background()

	members := seed(t, s, crew()...)
	require.NoError(t, s.Delete(ctx, members[0].ID))

	_, err := s.GetByID(ctx, members[0].ID)
	assert.ErrorIs(t, err, store.ErrRosterMemberNotFound)
	assert.ErrorIs(t, s.Delete(ctx, members[0].ID), store.ErrRosterMemberNotFound)
}

func TestRosterStore_Statistics(t *testing.T) {
	db, _ := openTestDB(t)
	s := NewSQLiteRosterStore(db, nil)
	ctx := context.Background()

	empty, err := s.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Total)
	assert.Nil(t, empty.Species)

	seed(t, s, crew()...)
	stats, err := s.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, map[string]int{"Human": 1, "Trill": 1, "Bajoran": 1}, stats.Species)
	assert.Equal(t, 29, stats.AgeMin)
	assert.Equal(t, 300, stats.AgeMax)
	assert.InDelta(t, 123.0, stats.AgeAvg, 1e-9)
}

func TestRosterStore_WithTxRollback(t *testing.T) {
	db, _ := openTestDB(t)
	s := NewSQLiteRosterStore(db, nil)
	ctx := context.Background()

	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		m := domain.RosterMember{Name: "Quark", Species: "Ferengi", Age: 45}
		if err := s.WithTx(tx).Create(ctx, &m); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBackupper_WritesTimestampedCopy(t *testing.T) {
	db, path := openTestDB(t)
	s := NewSQLiteRosterStore(db, nil)
	seed(t, s, crew()...)

	dir := filepath.Join(filepath.Dir(path), "backups")
	clock := func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local) }
	b := NewBackupper(db, path, dir, nil, clock)

	out, err := b.Backup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "roster_backup_20240309_140507.db"), out)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	// a second backup in the same second replaces the first
	_, err = b.Backup(context.Background())
	require.NoError(t, err)

	copyDB, err := Open(context.Background(), out, nil)
	require.NoError(t, err)
	defer func() { _ = copyDB.Close() }()
	list, err := NewSQLiteRosterStore(copyDB, nil).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestBackupper_SkipsInMemory(t *testing.T) {
	db, err := Open(context.Background(), MemoryPath, nil)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	out, err := NewBackupper(db, MemoryPath, t.TempDir(), nil, nil).Backup(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestIsMemory(t *testing.T) {
	assert.True(t, IsMemory(":memory:"))
	assert.True(t, IsMemory("file:x?mode=memory&cache=shared"))
	assert.False(t, IsMemory("roster.db"))
}

func TestRosterStore_FailuresAreStoreErrors(t *testing.T) {
	t.Run("corrupt created_at", func(t *testing.T) {
		db, _ := openTestDB(t)
		res, err := db.Exec(`INSERT INTO roster (name, species, age, created_at) VALUES ('Garak', 'Cardassian', 50, 'yesterday')`)
		require.NoError(t, err)
		id, err := res.LastInsertId()
		require.NoError(t, err)

		_, err = NewSQLiteRosterStore(db, nil).GetByID(context.Background(), id)
		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "roster member", storeErr.Entity)
		assert.Equal(t, "scan", storeErr.Operation)
		assert.ErrorIs(t, err, store.ErrCorruptData)
	})

	t.Run("backup directory blocked by a file", func(t *testing.T) {
		db, path := openTestDB(t)
		blocker := filepath.Join(t.TempDir(), "backups")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

		_, err := NewBackupper(db, path, filepath.Join(blocker, "nested"), nil, nil).Backup(context.Background())
		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "database", storeErr.Entity)
		assert.Equal(t, "backup", storeErr.Operation)
		assert.ErrorIs(t, err, store.ErrBackupFailed)
	})
}
