package mocks

import (
	"context"
	"io"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/service"
	"github.com/phrazzld/lessonkit/internal/store"
)

// MockRosterService implements service.RosterService for testing. Methods
// without a function set return the zero value, except lookups which
// return store.ErrRosterMemberNotFound.
type MockRosterService struct {
	CreateFn        func(ctx context.Context, name, species string, age int) (*domain.RosterMember, error)
	GetFn           func(ctx context.Context, id int64) (*domain.RosterMember, error)
	ListFn          func(ctx context.Context) ([]*domain.RosterMember, error)
	FindByNameFn    func(ctx context.Context, name string) (*domain.RosterMember, error)
	FindBySpeciesFn func(ctx context.Context, species string) ([]*domain.RosterMember, error)
	UpdateFn        func(ctx context.Context, id int64, update domain.RosterUpdate) (*domain.RosterMember, error)
	DeleteFn        func(ctx context.Context, id int64) (*domain.RosterMember, error)
	StatisticsFn    func(ctx context.Context) (domain.RosterStatistics, error)
	BackupFn        func(ctx context.Context) (string, error)
	ImportFn        func(ctx context.Context, r io.Reader) ([]*domain.RosterMember, error)
	SeedFn          func(ctx context.Context) (int, error)
}

var _ service.RosterService = (*MockRosterService)(nil)

func (m *MockRosterService) Create(ctx context.Context, name, species string, age int) (*domain.RosterMember, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, name, species, age)
	}
	return &domain.RosterMember{ID: 1, Name: name, Species: species, Age: age}, nil
}

func (m *MockRosterService) Get(ctx context.Context, id int64) (*domain.RosterMember, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, store.ErrRosterMemberNotFound
}

func (m *MockRosterService) List(ctx context.Context) ([]*domain.RosterMember, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *MockRosterService) FindByName(ctx context.Context, name string) (*domain.RosterMember, error) {
	if m.FindByNameFn != nil {
		return m.FindByNameFn(ctx, name)
	}
	return nil, store.ErrRosterMemberNotFound
}

func (m *MockRosterService) FindBySpecies(ctx context.Context, species string) ([]*domain.RosterMember, error) {
	if m.FindBySpeciesFn != nil {
		return m.FindBySpeciesFn(ctx, species)
	}
	return nil, nil
}

func (m *MockRosterService) Update(
	ctx context.Context,
	id int64,
	update domain.RosterUpdate,
) (*domain.RosterMember, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}
	return nil, store.ErrRosterMemberNotFound
}

func (m *MockRosterService) Delete(ctx context.Context, id int64) (*domain.RosterMember, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil, store.ErrRosterMemberNotFound
}

func (m *MockRosterService) Statistics(ctx context.Context) (domain.RosterStatistics, error) {
	if m.StatisticsFn != nil {
		return m.StatisticsFn(ctx)
	}
	return domain.RosterStatistics{}, nil
}

func (m *MockRosterService) Backup(ctx context.Context) (string, error) {
	if m.BackupFn != nil {
		return m.BackupFn(ctx)
	}
	return "", nil
}

func (m *MockRosterService) Import(ctx context.Context, r io.Reader) ([]*domain.RosterMember, error) {
	if m.ImportFn != nil {
		return m.ImportFn(ctx, r)
	}
	return nil, nil
}

func (m *MockRosterService) Seed(ctx context.Context) (int, error) {
	if m.SeedFn != nil {
		return m.SeedFn(ctx)
	}
	return 0, nil
}
