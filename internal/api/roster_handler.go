package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lessonkit/internal/api/shared"
	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/service"
	"github.com/phrazzld/lessonkit/internal/store"
)

// RosterHandler serves the crew roster.
type RosterHandler struct {
	roster service.RosterService
	logger *slog.Logger
}

// NewRosterHandler creates a RosterHandler.
func NewRosterHandler(roster service.RosterService, logger *slog.Logger) *RosterHandler {
	if roster == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("roster cannot be nil")
	}
	return &RosterHandler{roster: roster, logger: componentLogger(logger, "roster_handler")}
}

// ListMembers handles GET /api/roster. The name query parameter selects exact
// name matches and species selects a species ignoring case.
func (h *RosterHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ctx := r.Context()

	var (
		members []*domain.RosterMember
		err     error
	)
	switch {
	case q.Get("name") != "":
		var m *domain.RosterMember
		m, err = h.roster.FindByName(ctx, q.Get("name"))
		if err == nil {
			members = []*domain.RosterMember{m}
		} else if store.IsNotFoundError(err) {
			err = nil
		}
	case q.Get("species") != "":
		members, err = h.roster.FindBySpecies(ctx, q.Get("species"))
	default:
		members, err = h.roster.List(ctx)
	}
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list roster")
		return
	}

	if members == nil {
		members = []*domain.RosterMember{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, members)
}

// CreateMember handles POST /api/roster.
func (h *RosterHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	var req CreateRosterMemberRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	member, err := h.roster.Create(r.Context(), req.Name, req.Species, *req.Age)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create roster member")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, member)
}

// GetMember handles GET /api/roster/{id}.
func (h *RosterHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathInt(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}

	member, err := h.roster.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get roster member")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, member)
}

// UpdateMember handles PATCH /api/roster/{id}. Unknown fields are rejected.
func (h *RosterHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	id, ok := handlePathInt(w, r, "id", log)
	if !ok {
		return
	}
	var update domain.RosterUpdate
	if !decodeAndValidate(w, r, &update, log) {
		return
	}

	member, err := h.roster.Update(r.Context(), id, update)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update roster member")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, member)
}

// DeleteMember handles DELETE /api/roster/{id} and returns the removed member.
func (h *RosterHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathInt(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}

	member, err := h.roster.Delete(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete roster member")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, member)
}

// Statistics handles GET /api/roster/stats.
func (h *RosterHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.roster.Statistics(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute statistics")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// Backup handles POST /api/roster/backup.
func (h *RosterHandler) Backup(w http.ResponseWriter, r *http.Request) {
	path, err := h.roster.Backup(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Backup failed")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, BackupResponse{Path: path, Skipped: path == ""})
}
