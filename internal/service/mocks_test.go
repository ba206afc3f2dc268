package service

import (
	"context"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/events"
	"github.com/stretchr/testify/mock"
)

// MockLedgerStore is a mock implementation of store.LedgerStore
type MockLedgerStore struct {
	mock.Mock
}

func (m *MockLedgerStore) LoadAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	accounts, _ := args.Get(0).([]domain.Account)
	return accounts, args.Error(1)
}

func (m *MockLedgerStore) SaveAccounts(ctx context.Context, accounts ...domain.Account) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

// recordingEmitter keeps every emitted event.
type recordingEmitter struct {
	events []*events.Event
	err    error
}

func (e *recordingEmitter) EmitEvent(_ context.Context, event *events.Event) error {
	e.events = append(e.events, event)
	return e.err
}

func (e *recordingEmitter) types() []string {
	out := make([]string, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}
