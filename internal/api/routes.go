package api

import (
	"github.com/go-chi/chi/v5"
)

// Handlers groups the handlers mounted under /api. Nil handlers leave their
// routes unregistered.
type Handlers struct {
	Todos    *TodoHandler
	Blog     *BlogHandler
	Ledger   *LedgerHandler
	Roster   *RosterHandler
	Library  *LibraryHandler
	Students *StudentHandler
	Compute  *ComputeHandler
}

// RegisterRoutes mounts every handler on r. The caller mounts r at /api.
func RegisterRoutes(r chi.Router, h Handlers) {
	if h.Todos != nil {
		r.Get("/todos", h.Todos.ListTodos)
		r.Post("/todos", h.Todos.CreateTodo)
		r.Post("/todos/{id}/complete", h.Todos.CompleteTodo)
		r.Delete("/todos/{id}", h.Todos.DeleteTodo)
	}

	if h.Blog != nil {
		r.Get("/posts", h.Blog.ListPosts)
		r.Post("/posts", h.Blog.CreatePost)
		r.Patch("/posts/{id}", h.Blog.EditPost)
		r.Delete("/posts/{id}", h.Blog.DeletePost)
	}

	if h.Ledger != nil {
		r.Get("/accounts", h.Ledger.ListAccounts)
		r.Post("/accounts", h.Ledger.OpenAccount)
		r.Post("/accounts/{number}/deposit", h.Ledger.Deposit)
		r.Post("/accounts/{number}/withdraw", h.Ledger.Withdraw)
		r.Post("/accounts/{number}/freeze", h.Ledger.Freeze)
		r.Post("/accounts/{number}/unfreeze", h.Ledger.Unfreeze)
		r.Post("/transfers", h.Ledger.Transfer)
	}

	if h.Roster != nil {
		r.Get("/roster", h.Roster.ListMembers)
		r.Post("/roster", h.Roster.CreateMember)
		r.Get("/roster/stats", h.Roster.Statistics)
		r.Post("/roster/backup", h.Roster.Backup)
		r.Get("/roster/{id}", h.Roster.GetMember)
		r.Patch("/roster/{id}", h.Roster.UpdateMember)
		r.Delete("/roster/{id}", h.Roster.DeleteMember)
	}

	if h.Library != nil {
		r.Get("/books", h.Library.ListBooks)
		r.Post("/books", h.Library.CreateBook)
		r.Get("/books/stats", h.Library.Statistics)
		r.Get("/books/{id}", h.Library.GetBook)
		r.Patch("/books/{id}", h.Library.UpdateBook)
		r.Delete("/books/{id}", h.Library.DeleteBook)
	}

	if h.Students != nil {
		r.Get("/students", h.Students.ListStudents)
	}

	if h.Compute != nil {
		r.Post("/primes", h.Compute.Primes)
		r.Post("/wordcount", h.Compute.WordCount)
		r.Route("/text", func(r chi.Router) {
			r.Post("/email", h.Compute.Email)
			r.Post("/phone", h.Compute.Phone)
			r.Post("/password", h.Compute.Password)
			r.Post("/dates", h.Compute.Dates)
			r.Post("/find", h.Compute.Find)
		})
	}
}
