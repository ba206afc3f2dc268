package service

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/platform/jsonfile"
	"github.com/phrazzld/lessonkit/internal/store"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingTodoStore loads an empty list and fails every save.
type failingTodoStore struct{}

func (failingTodoStore) Load(context.Context) (*domain.TodoList, error) {
	return domain.NewTodoList(), nil
}
func (failingTodoStore) Save(context.Context, *domain.TodoList) error {
	return errors.New("read-only filesystem")
}

func TestTodoService_Lifecycle(t *testing.T) {
	fs := afero.NewMemMapFs()
	ctx := context.Background()

	svc, err := NewTodoService(ctx, jsonfile.NewTodoStore(fs, "todo.json", nil), nil)
	require.NoError(t, err)

	first, err := svc.Add(ctx, "  Buy milk ", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", first.Title)
	_, err = svc.Add(ctx, "Call mum", "", nil)
	require.NoError(t, err)

	_, err = svc.Add(ctx, "   ", "", nil)
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)

	outcome, err := svc.MarkComplete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, outcome)

	outcome, err = svc.MarkComplete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyCompleted, outcome)

	outcome, err = svc.MarkComplete(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, outcome)

	incomplete := svc.ListIncomplete(ctx)
	require.Len(t, incomplete, 1)
	assert.Equal(t, "Call mum", incomplete[0].Title)

	// a fresh service sees what the first one saved
	reloaded, err := NewTodoService(ctx, jsonfile.NewTodoStore(fs, "todo.json", nil), nil)
	require.NoError(t, err)
	assert.Len(t, reloaded.ListAll(ctx), 2)

	deleted, err := reloaded.Delete(ctx, 2)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = reloaded.Delete(ctx, 2)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = reloaded.Get(ctx, 2)
	assert.ErrorIs(t, err, store.ErrTodoNotFound)
}

func TestTodoService_SaveFailureUndoesChange(t *testing.T) {
	ctx := context.Background()
	svc, err := NewTodoService(ctx, failingTodoStore{}, nil)
	require.NoError(t, err)

	_, err = svc.Add(ctx, "Buy milk", "", nil)
	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "add", serviceErr.Op)
	assert.Empty(t, svc.ListAll(ctx))
}
