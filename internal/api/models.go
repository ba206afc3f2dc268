package api

import (
	"time"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/task"
)

// CreateTodoRequest is the body of POST /api/todos.
type CreateTodoRequest struct {
	Title       string  `json:"title"       validate:"required,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	DueDate     *string `json:"due_date"    validate:"omitempty,datetime=2006-01-02"`
}

// TodoResponse is a todo task as returned by the API.
type TodoResponse struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	Status      string  `json:"status"`
}

// CompleteTodoResponse reports the outcome of marking a task complete.
type CompleteTodoResponse struct {
	ID      int    `json:"id"`
	Outcome string `json:"outcome"`
}

// CreatePostRequest is the body of POST /api/posts.
type CreatePostRequest struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content"`
	Author  string `json:"author"  validate:"required"`
}

// EditPostRequest is the body of PATCH /api/posts/{id}. Omitted fields are
// left unchanged.
type EditPostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// PostResponse is a blog post as returned by the API.
type PostResponse struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Preview   string    `json:"preview"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OpenAccountRequest is the body of POST /api/accounts. Money amounts are
// decimal strings such as "12.50".
type OpenAccountRequest struct {
	Number         int    `json:"number"          validate:"required,gt=0"`
	Holder         string `json:"holder"          validate:"required,max=100"`
	Balance        string `json:"balance"         validate:"omitempty,numeric"`
	OverdraftLimit string `json:"overdraft_limit" validate:"omitempty,numeric"`
}

// AmountRequest is the body of deposit and withdraw requests.
type AmountRequest struct {
	Amount string `json:"amount" validate:"required,numeric"`
}

// TransferRequest is the body of POST /api/transfers.
type TransferRequest struct {
	From   int    `json:"from"   validate:"required,gt=0"`
	To     int    `json:"to"     validate:"required,gt=0,nefield=From"`
	Amount string `json:"amount" validate:"required,numeric"`
}

// AccountResponse is a bank account as returned by the API.
type AccountResponse struct {
	Number         int    `json:"number"`
	Holder         string `json:"holder"`
	Balance        string `json:"balance"`
	OverdraftLimit string `json:"overdraft_limit"`
	Frozen         bool   `json:"frozen"`
}

// TransferResponse holds both accounts after a transfer.
type TransferResponse struct {
	From AccountResponse `json:"from"`
	To   AccountResponse `json:"to"`
}

// CreateRosterMemberRequest is the body of POST /api/roster.
type CreateRosterMemberRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Species string `json:"species" validate:"required,max=50"`
	Age     *int   `json:"age"     validate:"required,gte=0,lte=1000"`
}

// BackupResponse reports where a roster backup was written. Skipped is set
// for databases that are not backed by a file.
type BackupResponse struct {
	Path    string `json:"path,omitempty"`
	Skipped bool   `json:"skipped"`
}

// CreateBookRequest is the body of POST /api/books.
type CreateBookRequest struct {
	Title  string   `json:"title"  validate:"required"`
	Author string   `json:"author" validate:"required"`
	Year   int      `json:"year"   validate:"required"`
	Genre  string   `json:"genre"`
	ISBN   *string  `json:"isbn"`
	Rating *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`
}

// PrimesRequest is the body of POST /api/primes.
type PrimesRequest struct {
	Lo      int `json:"lo"`
	Hi      int `json:"hi"`
	Workers int `json:"workers" validate:"omitempty,gt=0,lte=256"`
}

// PrimesResponse lists the primes found.
type PrimesResponse struct {
	Count  int   `json:"count"`
	Primes []int `json:"primes"`
}

// WordCountRequest is the body of POST /api/wordcount.
type WordCountRequest struct {
	Text string `json:"text" validate:"required"`
	Top  int    `json:"top"  validate:"gte=0"`
}

// WordCountResponse summarizes a word count.
type WordCountResponse struct {
	Total  int              `json:"total"`
	Unique int              `json:"unique"`
	Top    []task.WordCount `json:"top"`
}

// EmailRequest is the body of POST /api/text/email.
type EmailRequest struct {
	Email string `json:"email" validate:"required"`
}

// PhoneRequest is the body of POST /api/text/phone. Format defaults to us and
// strict to true.
type PhoneRequest struct {
	Number string `json:"number" validate:"required"`
	Format string `json:"format"`
	Strict *bool  `json:"strict"`
}

// PhoneResponse is a formatted phone number.
type PhoneResponse struct {
	Formatted string `json:"formatted"`
	Padded    bool   `json:"padded"`
}

// PasswordRequest is the body of POST /api/text/password.
type PasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// DatesRequest is the body of POST /api/text/dates. Zero years fall back to
// 1900 and 2100.
type DatesRequest struct {
	Text    string `json:"text"     validate:"required"`
	MinYear int    `json:"min_year"`
	MaxYear int    `json:"max_year"`
}

// FindRequest is the body of POST /api/text/find.
type FindRequest struct {
	Text          string `json:"text"           validate:"required"`
	Word          string `json:"word"           validate:"required"`
	CaseSensitive bool   `json:"case_sensitive"`
}

// FindResponse lists byte offsets of whole-word matches.
type FindResponse struct {
	Positions []int `json:"positions"`
}

func todoToResponse(t domain.TodoTask) TodoResponse {
	resp := TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(time.DateOnly)
		resp.DueDate = &due
	}
	return resp
}

func postToResponse(p domain.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Preview:   p.Preview(),
		Author:    p.Author,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func accountToResponse(a domain.Account) AccountResponse {
	return AccountResponse{
		Number:         a.Number,
		Holder:         a.Holder,
		Balance:        domain.FormatMoney(a.Balance),
		OverdraftLimit: domain.FormatMoney(a.OverdraftLimit),
		Frozen:         a.Frozen,
	}
}
