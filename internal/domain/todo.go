package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// TodoStatus is the completion state of a todo task.
type TodoStatus string

// Possible todo status values
const (
	TodoStatusTodo TodoStatus = "TODO"
	TodoStatusDone TodoStatus = "DONE"
)

// Todo list errors
var (
	ErrTodoNotFound         = errors.New("task not found")
	ErrTodoAlreadyCompleted = errors.New("task already completed")
	ErrInvalidTodoStatus    = errors.New("invalid task status")
)

// TodoTask is a single entry in a TodoList.
type TodoTask struct {
	ID          int
	Title       string
	Description string
	DueDate     *time.Time
	Status      TodoStatus
}

// NewTodoTask builds a pending task, trimming the title.
// Returns ErrEmptyTitle if the title is blank.
func NewTodoTask(id int, title, description string, dueDate *time.Time) (TodoTask, error) {
	task := TodoTask{
		ID:          id,
		Title:       strings.TrimSpace(title),
		Description: description,
		DueDate:     dueDate,
		Status:      TodoStatusTodo,
	}
	if err := task.Validate(); err != nil {
		return TodoTask{}, err
	}
	return task, nil
}

// Validate checks the task fields.
func (t TodoTask) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("%w: task id %d", ErrInvalidID, t.ID)
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	switch t.Status {
	case TodoStatusTodo, TodoStatusDone:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTodoStatus, t.Status)
	}
	return nil
}

// TodoList keeps tasks in memory with sequential ids and tracks unsaved changes.
type TodoList struct {
	tasks    map[int]TodoTask
	nextID   int
	modified bool
}

// NewTodoList returns an empty list whose first task gets id 1.
func NewTodoList() *TodoList {
	return &TodoList{tasks: make(map[int]TodoTask), nextID: 1}
}

// RestoreTodoList rebuilds a list from persisted state. The next id is never
// allowed to fall at or below an existing task id.
func RestoreTodoList(nextID int, tasks []TodoTask) (*TodoList, error) {
	l := NewTodoList()
	for _, t := range tasks {
		t.Title = strings.TrimSpace(t.Title)
		if err := t.Validate(); err != nil {
			return nil, err
		}
		l.tasks[t.ID] = t
		if t.ID >= nextID {
			nextID = t.ID + 1
		}
	}
	if nextID > 1 {
		l.nextID = nextID
	}
	return l, nil
}

// Add appends a new task and returns it.
func (l *TodoList) Add(title, description string, dueDate *time.Time) (TodoTask, error) {
	task, err := NewTodoTask(l.nextID, title, description, dueDate)
	if err != nil {
		return TodoTask{}, err
	}
	l.tasks[task.ID] = task
	l.nextID++
	l.modified = true
	return task, nil
}

// Get returns the task with the given id.
func (l *TodoList) Get(id int) (TodoTask, bool) {
	t, ok := l.tasks[id]
	return t, ok
}

// MarkComplete moves a task to DONE. It distinguishes an unknown id
// (ErrTodoNotFound) from a task that is already done (ErrTodoAlreadyCompleted).
func (l *TodoList) MarkComplete(id int) error {
	t, ok := l.tasks[id]
	if !ok {
		return ErrTodoNotFound
	}
	if t.Status == TodoStatusDone {
		return ErrTodoAlreadyCompleted
	}
	t.Status = TodoStatusDone
	l.tasks[id] = t
	l.modified = true
	return nil
}

// Delete removes a task and reports whether it existed.
func (l *TodoList) Delete(id int) bool {
	if _, ok := l.tasks[id]; !ok {
		return false
	}
	delete(l.tasks, id)
	l.modified = true
	return true
}

// ListAll returns every task ordered by id.
func (l *TodoList) ListAll() []TodoTask {
	out := make([]TodoTask, 0, len(l.tasks))
	for _, t := range l.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListIncomplete returns the TODO tasks ordered by id.
func (l *TodoList) ListIncomplete() []TodoTask {
	all := l.ListAll()
	out := all[:0]
	for _, t := range all {
		if t.Status == TodoStatusTodo {
			out = append(out, t)
		}
	}
	return out
}

// Restore puts back a snapshot of a task, undoing a change that could not
// be saved. The snapshot must come from this list.
func (l *TodoList) Restore(task TodoTask) {
	l.tasks[task.ID] = task
}

// NextID is the id the next added task will receive.
func (l *TodoList) NextID() int { return l.nextID }

// Len returns the number of tasks.
func (l *TodoList) Len() int { return len(l.tasks) }

// Modified reports whether the list changed since it was loaded or saved.
func (l *TodoList) Modified() bool { return l.modified }

// MarkSaved clears the modified flag.
func (l *TodoList) MarkSaved() { l.modified = false }
