package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/lessonkit/internal/api/shared"
	"github.com/phrazzld/lessonkit/internal/dates"
	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/password"
	"github.com/phrazzld/lessonkit/internal/service"
	"github.com/phrazzld/lessonkit/internal/store"
	"github.com/phrazzld/lessonkit/internal/task"
	"github.com/phrazzld/lessonkit/internal/textutil"
)

// MapErrorToStatusCode maps service, domain and store errors to HTTP status
// codes. Unknown errors are internal server errors.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	// Persistence failures win over whatever domain error they wrap.
	case errors.Is(err, store.ErrTransactionFailed),
		errors.Is(err, store.ErrBackupFailed),
		errors.Is(err, store.ErrCorruptData):
		return http.StatusInternalServerError

	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrTodoNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, domain.ErrDuplicateAccount),
		errors.Is(err, domain.ErrTodoAlreadyCompleted),
		errors.Is(err, domain.ErrAccountFrozen),
		errors.Is(err, domain.ErrPriceMismatch):
		return http.StatusConflict

	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrOutOfRange),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrNoFieldsToUpdate),
		errors.Is(err, domain.ErrInvalidTodoStatus),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrInvalidImport),
		errors.Is(err, task.ErrInvalidCount),
		errors.Is(err, password.ErrTooShort),
		errors.Is(err, textutil.ErrUnknownPhoneFormat),
		errors.Is(err, textutil.ErrPhoneTooShort),
		errors.Is(err, textutil.ErrPhoneTooLong),
		errors.Is(err, textutil.ErrPhoneCountryCode),
		errors.Is(err, dates.ErrFutureBirthdate),
		errors.Is(err, dates.ErrUnrealisticAge),
		errors.Is(err, dates.ErrNegativeDuration),
		errors.Is(err, dates.ErrUnknownTimezone):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a message that can be shown to clients.
// Validation-style errors carry user input only, so their text is passed
// through; everything else gets a fixed message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrTransactionFailed),
		errors.Is(err, store.ErrBackupFailed),
		errors.Is(err, store.ErrCorruptData):
		return "An unexpected error occurred"

	case errors.Is(err, store.ErrRosterMemberNotFound):
		return "Roster member not found"
	case errors.Is(err, store.ErrBookNotFound):
		return "Book not found"
	case errors.Is(err, store.ErrTodoNotFound), errors.Is(err, domain.ErrTodoNotFound):
		return "Task not found"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "Account not found"
	case errors.Is(err, domain.ErrPostNotFound):
		return "Post not found"
	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, store.ErrBookExists):
		return "Book already exists"
	case errors.Is(err, domain.ErrDuplicateAccount):
		return "Account already exists"
	case errors.Is(err, store.ErrDuplicate):
		return "Entity already exists"
	case errors.Is(err, domain.ErrTodoAlreadyCompleted):
		return "Task already completed"
	}

	if status := MapErrorToStatusCode(err); status == http.StatusBadRequest ||
		status == http.StatusConflict || status == http.StatusUnprocessableEntity {
		return userFacing(err)
	}
	return "An unexpected error occurred"
}

// userFacing capitalizes the outermost error text. Store errors are never
// passed here.
func userFacing(err error) string {
	msg := err.Error()
	if msg == "" {
		return "Invalid request"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// SanitizeValidationError turns validator errors into a short message naming
// the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}
	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), validationTagMessage(fe.Tag(), fe.Param()))
}

func validationTagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min", "gte":
		return "must be at least " + param
	case "max", "lte":
		return "must be at most " + param
	case "gt":
		return "must be greater than " + param
	case "oneof":
		return "must be one of " + param
	case "datetime":
		return "must match " + param
	case "numeric":
		return "must be a number"
	case "nefield":
		return "must differ from " + param
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err. For internal
// server errors defaultMsg, when set, replaces the generic message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	msg := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		msg = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, msg, err)
}
