package jsonfile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/store"
	"github.com/spf13/afero"
)

// dueDateLayout is the on-disk format of task due dates.
const dueDateLayout = time.DateOnly

type todoFile struct {
	NextID int            `json:"next_id"`
	Tasks  []todoFileTask `json:"tasks"`
}

type todoFileTask struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	Status      string  `json:"status"`
}

// TodoStore keeps a todo list in a single JSON file.
type TodoStore struct {
	doc    document
	logger *slog.Logger
}

// NewTodoStore stores the list at path on fs.
func NewTodoStore(fs afero.Fs, path string, logger *slog.Logger) *TodoStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TodoStore{
		doc:    document{fs: fs, path: path, entity: "todo task"},
		logger: logger.With(slog.String("component", "todo_store")),
	}
}

var _ store.TodoStore = (*TodoStore)(nil)

// Load implements store.TodoStore.Load
func (s *TodoStore) Load(ctx context.Context) (*domain.TodoList, error) {
	var f todoFile
	found, err := s.doc.read(&f)
	if err != nil {
		return nil, err
	}
	if !found {
		s.logger.DebugContext(ctx, "todo file not found, starting empty", slog.String("path", s.doc.path))
		return domain.NewTodoList(), nil
	}

	tasks := make([]domain.TodoTask, 0, len(f.Tasks))
	for _, t := range f.Tasks {
		task := domain.TodoTask{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      domain.TodoStatus(t.Status),
		}
		if t.DueDate != nil {
			due, err := time.Parse(dueDateLayout, *t.DueDate)
			if err != nil {
				return nil, s.doc.fail("load", fmt.Sprintf("task %d has bad due date %q in", t.ID, *t.DueDate), store.ErrCorruptData)
			}
			task.DueDate = &due
		}
		tasks = append(tasks, task)
	}

	list, err := domain.RestoreTodoList(f.NextID, tasks)
	if err != nil {
		return nil, s.doc.fail("load", "inconsistent tasks in", fmt.Errorf("%w: %w", store.ErrCorruptData, err))
	}
	s.logger.DebugContext(ctx, "todo list loaded", slog.Int("tasks", list.Len()))
	return list, nil
}

// Save implements store.TodoStore.Save and clears the list's modified flag.
func (s *TodoStore) Save(ctx context.Context, list *domain.TodoList) error {
	f := todoFile{NextID: list.NextID(), Tasks: []todoFileTask{}}
	for _, t := range list.ListAll() {
		ft := todoFileTask{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      string(t.Status),
		}
		if t.DueDate != nil {
			due := t.DueDate.Format(dueDateLayout)
			ft.DueDate = &due
		}
		f.Tasks = append(f.Tasks, ft)
	}

	if err := s.doc.write(f); err != nil {
		s.logger.ErrorContext(ctx, "failed to save todo list", slog.String("error", err.Error()))
		return err
	}
	list.MarkSaved()
	s.logger.DebugContext(ctx, "todo list saved", slog.Int("tasks", len(f.Tasks)))
	return nil
}
