package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/lessonkit/internal/api/shared"
	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/service"
)

// TodoHandler serves the todo list.
type TodoHandler struct {
	todos  *service.TodoService
	logger *slog.Logger
}

// NewTodoHandler creates a TodoHandler.
func NewTodoHandler(todos *service.TodoService, logger *slog.Logger) *TodoHandler {
	if todos == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("todos cannot be nil")
	}
	return &TodoHandler{todos: todos, logger: componentLogger(logger, "todo_handler")}
}

// ListTodos handles GET /api/todos. With ?incomplete=true only pending tasks
// are returned.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	var tasks []domain.TodoTask
	if incomplete, _ := strconv.ParseBool(r.URL.Query().Get("incomplete")); incomplete {
		tasks = h.todos.ListIncomplete(r.Context())
	} else {
		tasks = h.todos.ListAll(r.Context())
	}

	resp := make([]TodoResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, todoToResponse(t))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// CreateTodo handles POST /api/todos.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	var req CreateTodoRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	var due *time.Time
	if req.DueDate != nil {
		d, err := time.Parse(time.DateOnly, *req.DueDate)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid due_date")
			return
		}
		due = &d
	}

	task, err := h.todos.Add(r.Context(), req.Title, req.Description, due)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Debug("task created", slog.Int("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, todoToResponse(task))
}

// CompleteTodo handles POST /api/todos/{id}/complete.
func (h *TodoHandler) CompleteTodo(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	id, ok := handlePathInt(w, r, "id", log)
	if !ok {
		return
	}

	outcome, err := h.todos.MarkComplete(r.Context(), int(id))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to complete task")
		return
	}

	switch outcome {
	case service.OutcomeNotFound:
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
	case service.OutcomeAlreadyCompleted:
		shared.RespondWithError(w, r, http.StatusConflict, "Task already completed")
	default:
		shared.RespondWithJSON(w, r, http.StatusOK, CompleteTodoResponse{ID: int(id), Outcome: string(outcome)})
	}
}

// DeleteTodo handles DELETE /api/todos/{id}.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	id, ok := handlePathInt(w, r, "id", log)
	if !ok {
		return
	}

	deleted, err := h.todos.Delete(r.Context(), int(id))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}
	if !deleted {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
