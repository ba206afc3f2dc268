package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/lessonkit/internal/api/shared"
	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/platform/logger"
	"github.com/phrazzld/lessonkit/internal/redact"
)

// pathInt parses a positive integer URL parameter.
func pathInt(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrInvalidID, name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s has invalid format", domain.ErrInvalidID, name)
	}
	return id, nil
}

// handlePathInt parses a path parameter and writes a 400 response on failure.
func handlePathInt(w http.ResponseWriter, r *http.Request, name string, log *slog.Logger) (int64, bool) {
	id, err := pathInt(r, name)
	if err != nil {
		log.Warn("invalid path parameter",
			slog.String("param_name", name),
			slog.String("value", chi.URLParam(r, name)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// decodeAndValidate decodes the JSON body into req and validates it,
// writing a 400 response on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any, log *slog.Logger) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

// requestLogger returns the request-scoped logger, falling back to the
// handler's own.
func requestLogger(r *http.Request, fallback *slog.Logger) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), fallback)
}

func componentLogger(l *slog.Logger, component string) *slog.Logger {
	if l == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("logger cannot be nil for " + component)
	}
	return l.With(slog.String("component", component))
}
