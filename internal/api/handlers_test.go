package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/lessonkit/internal/api/middleware"
	"github.com/phrazzld/lessonkit/internal/api/shared"
	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/mocks"
	"github.com/phrazzld/lessonkit/internal/password"
	"github.com/phrazzld/lessonkit/internal/platform/jsonfile"
	"github.com/phrazzld/lessonkit/internal/platform/logger"
	"github.com/phrazzld/lessonkit/internal/service"
	"github.com/phrazzld/lessonkit/internal/store"
	"github.com/phrazzld/lessonkit/internal/task"
	"github.com/phrazzld/lessonkit/internal/textutil"
)

func newTestRouter(t *testing.T, h Handlers) http.Handler {
	t.Helper()
	_, log := logger.NewTestLogger(t)
	r := chi.NewRouter()
	r.Use(middleware.Trace(log))
	r.Route("/api", func(r chi.Router) {
		RegisterRoutes(r, h)
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v), "body: %s", rr.Body.String())
	return v
}

func assertError(t *testing.T, rr *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	require.Equal(t, status, rr.Code, "body: %s", rr.Body.String())
	resp := decodeBody[shared.ErrorResponse](t, rr)
	assert.Equal(t, msg, resp.Error)
	assert.NotEmpty(t, resp.TraceID)
}

func TestTodoHandler(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	todos, err := service.NewTodoService(context.Background(), jsonfile.NewTodoStore(fs, "todos.json", nil), nil)
	require.NoError(t, err)
	router := newTestRouter(t, Handlers{Todos: NewTodoHandler(todos, quietLogger())})

	rr := doRequest(t, router, http.MethodPost, "/api/todos",
		CreateTodoRequest{Title: "  Buy milk ", DueDate: strPtr("2024-05-01")})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decodeBody[TodoResponse](t, rr)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, "TODO", created.Status)
	require.NotNil(t, created.DueDate)
	assert.Equal(t, "2024-05-01", *created.DueDate)

	rr = doRequest(t, router, http.MethodPost, "/api/todos", CreateTodoRequest{Title: "Walk dog"})
	require.Equal(t, http.StatusCreated, rr.Code)

	t.Run("validation", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPost, "/api/todos", CreateTodoRequest{})
		assertError(t, rr, http.StatusBadRequest, "Invalid Title: required field")

		rr = doRequest(t, router, http.MethodPost, "/api/todos",
			CreateTodoRequest{Title: "x", DueDate: strPtr("01/05/2024")})
		assertError(t, rr, http.StatusBadRequest, "Invalid DueDate: must match 2006-01-02")

		rr = doRequest(t, router, http.MethodPost, "/api/todos", `{"title":"x","priority":1}`)
		assertError(t, rr, http.StatusBadRequest, "Invalid request format")
	})

	rr = doRequest(t, router, http.MethodPost, "/api/todos/1/complete", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "marked as complete", decodeBody[CompleteTodoResponse](t, rr).Outcome)

	rr = doRequest(t, router, http.MethodPost, "/api/todos/1/complete", nil)
	assertError(t, rr, http.StatusConflict, "Task already completed")

	rr = doRequest(t, router, http.MethodPost, "/api/todos/99/complete", nil)
	assertError(t, rr, http.StatusNotFound, "Task not found")

	rr = doRequest(t, router, http.MethodGet, "/api/todos?incomplete=true", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	pending := decodeBody[[]TodoResponse](t, rr)
	require.Len(t, pending, 1)
	assert.Equal(t, "Walk dog", pending[0].Title)

	rr = doRequest(t, router, http.MethodDelete, "/api/todos/2", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = doRequest(t, router, http.MethodDelete, "/api/todos/2", nil)
	assertError(t, rr, http.StatusNotFound, "Task not found")

	rr = doRequest(t, router, http.MethodDelete, "/api/todos/abc", nil)
	assertError(t, rr, http.StatusBadRequest, "Invalid id")

	saved, err := afero.Exists(fs, "todos.json")
	require.NoError(t, err)
	assert.True(t, saved)
}

func TestBlogHandler(t *testing.T) {
	t.Parallel()

	clock := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	blog := service.NewBlogService(domain.WithBlogClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))
	router := newTestRouter(t, Handlers{Blog: NewBlogHandler(blog, quietLogger())})

	long := "line one\n" + string(bytes.Repeat([]byte("a"), 80))
	rr := doRequest(t, router, http.MethodPost, "/api/posts",
		CreatePostRequest{Title: "First", Content: long, Author: "ada"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	first := decodeBody[PostResponse](t, rr)
	assert.Len(t, first.Preview, 60)
	assert.Contains(t, first.Preview, "line one a")

	rr = doRequest(t, router, http.MethodPost, "/api/posts",
		CreatePostRequest{Title: "Second", Content: "short", Author: "bob"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/api/posts", nil)
	posts := decodeBody[[]PostResponse](t, rr)
	require.Len(t, posts, 2)
	assert.Equal(t, "Second", posts[0].Title)

	rr = doRequest(t, router, http.MethodGet, "/api/posts?author=ada", nil)
	assert.Len(t, decodeBody[[]PostResponse](t, rr), 1)

	rr = doRequest(t, router, http.MethodGet, "/api/posts?latest=1", nil)
	latest := decodeBody[[]PostResponse](t, rr)
	require.Len(t, latest, 1)
	assert.Equal(t, "Second", latest[0].Title)

	rr = doRequest(t, router, http.MethodPatch, "/api/posts/1", EditPostRequest{Title: strPtr("  ")})
	assertError(t, rr, http.StatusBadRequest, "Title must be non-empty")

	rr = doRequest(t, router, http.MethodPatch, "/api/posts/1", EditPostRequest{Content: strPtr("new")})
	require.Equal(t, http.StatusOK, rr.Code)
	edited := decodeBody[PostResponse](t, rr)
	assert.Equal(t, "new", edited.Content)
	assert.True(t, edited.UpdatedAt.After(edited.CreatedAt))

	rr = doRequest(t, router, http.MethodDelete, "/api/posts/1", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = doRequest(t, router, http.MethodDelete, "/api/posts/1", nil)
	assertError(t, rr, http.StatusNotFound, "Post not found")
}

func TestLedgerHandler(t *testing.T) {
	t.Parallel()

	acc := domain.Account{Number: 1, Holder: "Ada", Balance: decimal.RequireFromString("100")}

	t.Run("open account", func(t *testing.T) {
		t.Parallel()
		ledger := mocks.NewMockLedgerService()
		ledger.OpenAccountFn = func(_ context.Context, number int, holder string, balance, overdraft decimal.Decimal) (domain.Account, error) {
			return domain.Account{Number: number, Holder: holder, Balance: balance, OverdraftLimit: overdraft}, nil
		}
		router := newTestRouter(t, Handlers{Ledger: NewLedgerHandler(ledger, quietLogger())})

		rr := doRequest(t, router, http.MethodPost, "/api/accounts",
			OpenAccountRequest{Number: 5, Holder: "Ada", Balance: "12.5"})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		got := decodeBody[AccountResponse](t, rr)
		assert.Equal(t, "12.50", got.Balance)
		assert.Equal(t, "0.00", got.OverdraftLimit)
	})

	t.Run("duplicate account", func(t *testing.T) {
		t.Parallel()
		ledger := mocks.NewMockLedgerService(mocks.WithLedgerError(domain.ErrDuplicateAccount))
		router := newTestRouter(t, Handlers{Ledger: NewLedgerHandler(ledger, quietLogger())})

		rr := doRequest(t, router, http.MethodPost, "/api/accounts", OpenAccountRequest{Number: 1, Holder: "Ada"})
		assertError(t, rr, http.StatusConflict, "Account already exists")
	})

	t.Run("deposit passes parsed amount", func(t *testing.T) {
		t.Parallel()
		ledger := mocks.NewMockLedgerService(mocks.WithAccount(acc))
		router := newTestRouter(t, Handlers{Ledger: NewLedgerHandler(ledger, quietLogger())})

		rr := doRequest(t, router, http.MethodPost, "/api/accounts/1/deposit", AmountRequest{Amount: "2.25"})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, "100.00", decodeBody[AccountResponse](t, rr).Balance)
		require.Equal(t, 1, ledger.MoneyCalls.Count)
		assert.Equal(t, "deposit", ledger.MoneyCalls.Ops[0])
		assert.True(t, decimal.RequireFromString("2.25").Equal(ledger.MoneyCalls.Amounts[0]))
	})

	t.Run("insufficient funds", func(t *testing.T) {
		t.Parallel()
		ledger := mocks.NewMockLedgerServiceWithInsufficientFunds()
		router := newTestRouter(t, Handlers{Ledger: NewLedgerHandler(ledger, quietLogger())})

		rr := doRequest(t, router, http.MethodPost, "/api/accounts/1/withdraw", AmountRequest{Amount: "500"})
		assertError(t, rr, http.StatusUnprocessableEntity, "Insufficient funds considering overdraft")
	})

	t.Run("frozen account", func(t *testing.T) {
		t.Parallel()
		ledger := mocks.NewMockLedgerService()
		ledger.SetFrozenFn = func(_ context.Context, number int, frozen bool) (domain.Account, error) {
			return domain.Account{Number: number, Frozen: frozen}, nil
		}
		ledger.DepositFn = func(_ context.Context, number int, _ decimal.Decimal) (domain.Account, error) {
			return domain.Account{}, domain.ErrAccountFrozen
		}
		router := newTestRouter(t, Handlers{Ledger: NewLedgerHandler(ledger, quietLogger())})

		rr := doRequest(t, router, http.MethodPost, "/api/accounts/3/freeze", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, decodeBody[AccountResponse](t, rr).Frozen)

		rr = doRequest(t, router, http.MethodPost, "/api/accounts/3/deposit", AmountRequest{Amount: "1"})
		assertError(t, rr, http.StatusConflict, "Account is frozen")
	})

	t.Run("transfer", func(t *testing.T) {
		t.Parallel()
		ledger := mocks.NewMockLedgerService(mocks.WithTransferResult(service.TransferResult{
			From: domain.Account{Number: 1, Balance: decimal.RequireFromString("70")},
			To:   domain.Account{Number: 2, Balance: decimal.RequireFromString("30")},
		}))
		router := newTestRouter(t, Handlers{Ledger: NewLedgerHandler(ledger, quietLogger())})

		rr := doRequest(t, router, http.MethodPost, "/api/transfers", TransferRequest{From: 1, To: 2, Amount: "30"})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		got := decodeBody[TransferResponse](t, rr)
		assert.Equal(t, "70.00", got.From.Balance)
		assert.Equal(t, "30.00", got.To.Balance)
		assert.Equal(t, []int{1}, ledger.TransferCalls.From)

		rr = doRequest(t, router, http.MethodPost, "/api/transfers", TransferRequest{From: 1, To: 1, Amount: "30"})
		assertError(t, rr, http.StatusBadRequest, "Invalid To: must differ from From")

		rr = doRequest(t, router, http.MethodPost, "/api/transfers", TransferRequest{From: 1, To: 2, Amount: "ten"})
		assertError(t, rr, http.StatusBadRequest, "Invalid Amount: must be a number")
		assert.Equal(t, 1, ledger.TransferCalls.Count)
	})

	t.Run("rolled back transfer hides nothing sensitive", func(t *testing.T) {
		t.Parallel()
		ledger := mocks.NewMockLedgerService(mocks.WithLedgerError(
			service.NewServiceError("ledger", "transfer", store.ErrTransactionFailed)))
		router := newTestRouter(t, Handlers{Ledger: NewLedgerHandler(ledger, quietLogger())})

		rr := doRequest(t, router, http.MethodPost, "/api/transfers", TransferRequest{From: 1, To: 2, Amount: "1"})
		assertError(t, rr, http.StatusInternalServerError, "Transfer failed")
	})
}

func TestRosterHandler(t *testing.T) {
	t.Parallel()

	odo := &domain.RosterMember{ID: 4, Name: "Odo", Species: "Changeling", Age: 200}
	roster := &mocks.MockRosterService{
		GetFn: func(_ context.Context, id int64) (*domain.RosterMember, error) {
			if id == odo.ID {
				return odo, nil
			}
			return nil, store.ErrRosterMemberNotFound
		},
		FindBySpeciesFn: func(_ context.Context, species string) ([]*domain.RosterMember, error) {
			return []*domain.RosterMember{odo}, nil
		},
		UpdateFn: func(_ context.Context, _ int64, update domain.RosterUpdate) (*domain.RosterMember, error) {
			updated, err := update.Apply(*odo)
			return &updated, err
		},
	}
	router := newTestRouter(t, Handlers{Roster: NewRosterHandler(roster, quietLogger())})

	rr := doRequest(t, router, http.MethodGet, "/api/roster/4", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Odo", decodeBody[domain.RosterMember](t, rr).Name)

	rr = doRequest(t, router, http.MethodGet, "/api/roster/5", nil)
	assertError(t, rr, http.StatusNotFound, "Roster member not found")

	rr = doRequest(t, router, http.MethodGet, "/api/roster/0", nil)
	assertError(t, rr, http.StatusBadRequest, "Invalid id")

	rr = doRequest(t, router, http.MethodGet, "/api/roster?name=Quark", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decodeBody[[]domain.RosterMember](t, rr))

	rr = doRequest(t, router, http.MethodGet, "/api/roster?species=changeling", nil)
	assert.Len(t, decodeBody[[]domain.RosterMember](t, rr), 1)

	rr = doRequest(t, router, http.MethodPost, "/api/roster", CreateRosterMemberRequest{Name: "Nog", Species: "Ferengi"})
	assertError(t, rr, http.StatusBadRequest, "Invalid Age: required field")

	rr = doRequest(t, router, http.MethodPost, "/api/roster",
		CreateRosterMemberRequest{Name: "Nog", Species: "Ferengi", Age: intPtr(0)})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = doRequest(t, router, http.MethodPatch, "/api/roster/4", `{"rank":"constable"}`)
	assertError(t, rr, http.StatusBadRequest, "Invalid request format")

	rr = doRequest(t, router, http.MethodPatch, "/api/roster/4", `{}`)
	assertError(t, rr, http.StatusBadRequest, "No fields to update")

	rr = doRequest(t, router, http.MethodPatch, "/api/roster/4", `{"age":201}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 201, decodeBody[domain.RosterMember](t, rr).Age)

	rr = doRequest(t, router, http.MethodPost, "/api/roster/backup", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decodeBody[BackupResponse](t, rr).Skipped)
}

func TestLibraryAndStudentHandlers(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "books.json", []byte("[]\n"), 0o600))
	now := func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	library, err := service.NewLibraryService(jsonfile.NewBookStore(fs, "books.json", nil), now, nil)
	require.NoError(t, err)
	students, err := service.NewStudentService(jsonfile.NewStudentStore(fs, "students.json", nil), nil)
	require.NoError(t, err)

	router := newTestRouter(t, Handlers{
		Library:  NewLibraryHandler(library, quietLogger()),
		Students: NewStudentHandler(students, quietLogger()),
	})

	dune := CreateBookRequest{Title: "Dune", Author: "Frank Herbert", Year: 1965, Genre: "Science Fiction"}
	rr := doRequest(t, router, http.MethodPost, "/api/books", dune)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, 1, decodeBody[domain.Book](t, rr).ID)

	dune.Title = " dune "
	rr = doRequest(t, router, http.MethodPost, "/api/books", dune)
	assertError(t, rr, http.StatusConflict, "Book already exists")

	rr = doRequest(t, router, http.MethodPost, "/api/books",
		CreateBookRequest{Title: "Emma", Author: "Jane Austen", Year: 1815, Genre: "Romance"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/api/books?q=austen", nil)
	found := decodeBody[[]domain.Book](t, rr)
	require.Len(t, found, 1)
	assert.Equal(t, "Emma", found[0].Title)

	rr = doRequest(t, router, http.MethodPatch, "/api/books/1", `{"year":3000}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/api/books/stats", nil)
	stats := decodeBody[domain.BookStatistics](t, rr)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1815, stats.Oldest)
	assert.Equal(t, 1965, stats.Newest)

	rr = doRequest(t, router, http.MethodDelete, "/api/books/2", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = doRequest(t, router, http.MethodGet, "/api/books/2", nil)
	assertError(t, rr, http.StatusNotFound, "Book not found")

	rr = doRequest(t, router, http.MethodGet, "/api/students", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	summaries := decodeBody[[]service.StudentSummary](t, rr)
	require.Len(t, summaries, 3)
	assert.Equal(t, "Carol White", summaries[2].Name)
	assert.InDelta(t, 91.67, summaries[2].Average, 0.01)
}

func TestComputeHandler(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, Handlers{
		Compute: NewComputeHandler(task.WordCountConfig{Workers: 2, QueueSize: 8}, quietLogger()),
	})

	t.Run("primes", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPost, "/api/primes", PrimesRequest{Lo: 30, Hi: 1, Workers: 3})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		got := decodeBody[PrimesResponse](t, rr)
		assert.Equal(t, []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}, got.Primes)

		rr = doRequest(t, router, http.MethodPost, "/api/primes", PrimesRequest{Lo: 0, Hi: MaxPrimeSpan})
		assertError(t, rr, http.StatusBadRequest, "Range is too wide")
	})

	t.Run("primes at the int limits", func(t *testing.T) {
		tests := []struct {
			name   string
			req    PrimesRequest
			status int
		}{
			{name: "top of int", req: PrimesRequest{Lo: math.MaxInt - 5, Hi: math.MaxInt}, status: http.StatusOK},
			{name: "top of int reversed", req: PrimesRequest{Lo: math.MaxInt, Hi: math.MaxInt - 5}, status: http.StatusOK},
			{name: "full int range", req: PrimesRequest{Lo: math.MinInt, Hi: math.MaxInt}, status: http.StatusBadRequest},
			{name: "wider than int", req: PrimesRequest{Lo: -1, Hi: math.MaxInt}, status: http.StatusBadRequest},
			{name: "bottom to zero", req: PrimesRequest{Lo: math.MinInt, Hi: 0}, status: http.StatusBadRequest},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				rr := doRequest(t, router, http.MethodPost, "/api/primes", tc.req)
				if tc.status != http.StatusOK {
					assertError(t, rr, tc.status, "Range is too wide")
					return
				}
				require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
				got := decodeBody[PrimesResponse](t, rr)
				assert.Equal(t, 0, got.Count)
				assert.Empty(t, got.Primes)
			})
		}
	})

	t.Run("word count", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPost, "/api/wordcount",
			WordCountRequest{Text: "The cat\nthe DOG\nthe end", Top: 1})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		got := decodeBody[WordCountResponse](t, rr)
		assert.Equal(t, 6, got.Total)
		assert.Equal(t, 4, got.Unique)
		assert.Equal(t, []task.WordCount{{Word: "the", Count: 3}}, got.Top)
	})

	t.Run("find", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPost, "/api/text/find",
			FindRequest{Text: "The cat sat. The cat!", Word: "cat"})
		assert.Equal(t, []int{4, 19}, decodeBody[FindResponse](t, rr).Positions)
	})

	t.Run("phone", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPost, "/api/text/phone", PhoneRequest{Number: "123-456-7890"})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, "(123) 456-7890", decodeBody[PhoneResponse](t, rr).Formatted)

		rr = doRequest(t, router, http.MethodPost, "/api/text/phone", PhoneRequest{Number: "12345"})
		require.Equal(t, http.StatusBadRequest, rr.Code)

		lenient := false
		rr = doRequest(t, router, http.MethodPost, "/api/text/phone",
			PhoneRequest{Number: "12345", Format: "dots", Strict: &lenient})
		require.Equal(t, http.StatusOK, rr.Code)
		got := decodeBody[PhoneResponse](t, rr)
		assert.True(t, got.Padded)
		assert.Equal(t, "000.001.2345", got.Formatted)
	})

	t.Run("email", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPost, "/api/text/email", EmailRequest{Email: "user@example.com"})
		assert.True(t, decodeBody[textutil.EmailResult](t, rr).Valid)
	})

	t.Run("password", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPost, "/api/text/password",
			PasswordRequest{Password: "vK7#qLm2$Tz9!wRb4Xp"})
		assert.Equal(t, password.LevelVeryStrong, decodeBody[password.Strength](t, rr).Level)
	})

	t.Run("dates", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPost, "/api/text/dates",
			DatesRequest{Text: "Due 2024-03-15, again on 15 March 2024 and 1/2/1850."})
		found := decodeBody[[]textutil.ExtractedDate](t, rr)
		require.Len(t, found, 1)
		assert.Equal(t, "2024-03-15", found[0].Text)
	})
}

func quietLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
