package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/lessonkit/internal/api/shared"
	"github.com/phrazzld/lessonkit/internal/password"
	"github.com/phrazzld/lessonkit/internal/task"
	"github.com/phrazzld/lessonkit/internal/textutil"
)

// MaxPrimeSpan bounds the number of candidates in a single prime search request.
const MaxPrimeSpan = task.DefaultMaxPrimeSpan

// ComputeHandler serves the stateless helpers: prime search, word count and
// the text utilities.
type ComputeHandler struct {
	wordCount task.WordCountConfig
	logger    *slog.Logger
}

// NewComputeHandler creates a ComputeHandler. cfg sizes the worker pools;
// its Workers value is also the default prime-search parallelism.
func NewComputeHandler(cfg task.WordCountConfig, logger *slog.Logger) *ComputeHandler {
	if cfg.Workers <= 0 || cfg.QueueSize <= 0 {
		cfg = task.DefaultWordCountConfig()
	}
	return &ComputeHandler{wordCount: cfg, logger: componentLogger(logger, "compute_handler")}
}

// Primes handles POST /api/primes.
func (h *ComputeHandler) Primes(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	var req PrimesRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}
	if span, ok := task.Span(req.Lo, req.Hi); !ok || span > MaxPrimeSpan {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Range is too wide")
		return
	}
	workers := req.Workers
	if workers == 0 {
		workers = h.wordCount.Workers
	}

	primes, err := task.FindPrimes(r.Context(), req.Lo, req.Hi, workers)
	if err != nil {
		HandleAPIError(w, r, err, "Prime search failed")
		return
	}
	if primes == nil {
		primes = []int{}
	}

	log.Debug("prime search finished",
		slog.Int("lo", req.Lo),
		slog.Int("hi", req.Hi),
		slog.Int("workers", workers),
		slog.Int("found", len(primes)))
	shared.RespondWithJSON(w, r, http.StatusOK, PrimesResponse{Count: len(primes), Primes: primes})
}

// WordCount handles POST /api/wordcount.
func (h *ComputeHandler) WordCount(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	var req WordCountRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	counts, err := task.CountWords(r.Context(), strings.NewReader(req.Text), h.wordCount, log)
	if err != nil {
		HandleAPIError(w, r, err, "Word count failed")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, WordCountResponse{
		Total:  counts.Total(),
		Unique: len(counts),
		Top:    counts.MostCommon(req.Top),
	})
}

// Email handles POST /api/text/email.
func (h *ComputeHandler) Email(w http.ResponseWriter, r *http.Request) {
	var req EmailRequest
	if !decodeAndValidate(w, r, &req, requestLogger(r, h.logger)) {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, textutil.ValidateEmail(req.Email))
}

// Phone handles POST /api/text/phone.
func (h *ComputeHandler) Phone(w http.ResponseWriter, r *http.Request) {
	var req PhoneRequest
	if !decodeAndValidate(w, r, &req, requestLogger(r, h.logger)) {
		return
	}
	format := req.Format
	if format == "" {
		format = "us"
	}
	strict := req.Strict == nil || *req.Strict

	formatted, padded, err := textutil.FormatPhone(req.Number, format, strict)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, PhoneResponse{Formatted: formatted, Padded: padded})
}

// Password handles POST /api/text/password. The password itself is never
// logged.
func (h *ComputeHandler) Password(w http.ResponseWriter, r *http.Request) {
	var req PasswordRequest
	if !decodeAndValidate(w, r, &req, requestLogger(r, h.logger)) {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, password.CheckStrength(req.Password))
}

// Dates handles POST /api/text/dates.
func (h *ComputeHandler) Dates(w http.ResponseWriter, r *http.Request) {
	var req DatesRequest
	if !decodeAndValidate(w, r, &req, requestLogger(r, h.logger)) {
		return
	}
	minYear, maxYear := req.MinYear, req.MaxYear
	if minYear == 0 {
		minYear = textutil.DefaultMinYear
	}
	if maxYear == 0 {
		maxYear = textutil.DefaultMaxYear
	}

	found := textutil.ExtractDates(req.Text, minYear, maxYear)
	if found == nil {
		found = []textutil.ExtractedDate{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, found)
}

// Find handles POST /api/text/find.
func (h *ComputeHandler) Find(w http.ResponseWriter, r *http.Request) {
	var req FindRequest
	if !decodeAndValidate(w, r, &req, requestLogger(r, h.logger)) {
		return
	}
	positions := textutil.FindWordOccurrences(req.Text, req.Word, req.CaseSensitive)
	if positions == nil {
		positions = []int{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, FindResponse{Positions: positions})
}
