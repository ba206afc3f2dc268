package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/phrazzld/lessonkit/internal/api/shared"
	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/service"
)

// LedgerHandler serves bank accounts and transfers.
type LedgerHandler struct {
	ledger service.LedgerService
	logger *slog.Logger
}

// NewLedgerHandler creates a LedgerHandler.
func NewLedgerHandler(ledger service.LedgerService, logger *slog.Logger) *LedgerHandler {
	if ledger == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("ledger cannot be nil")
	}
	return &LedgerHandler{ledger: ledger, logger: componentLogger(logger, "ledger_handler")}
}

// ListAccounts handles GET /api/accounts.
func (h *LedgerHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts := h.ledger.Accounts(r.Context())
	resp := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, accountToResponse(a))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// OpenAccount handles POST /api/accounts. Empty money fields default to zero.
func (h *LedgerHandler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	var req OpenAccountRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	balance, err := optionalMoney(req.Balance)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	overdraft, err := optionalMoney(req.OverdraftLimit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	acc, err := h.ledger.OpenAccount(r.Context(), req.Number, req.Holder, balance, overdraft)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to open account")
		return
	}

	log.Info("account opened", slog.Int("account", acc.Number))
	shared.RespondWithJSON(w, r, http.StatusCreated, accountToResponse(acc))
}

// Deposit handles POST /api/accounts/{number}/deposit.
func (h *LedgerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.moveMoney(w, r, h.ledger.Deposit, "Failed to deposit")
}

// Withdraw handles POST /api/accounts/{number}/withdraw.
func (h *LedgerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.moveMoney(w, r, h.ledger.Withdraw, "Failed to withdraw")
}

// Freeze handles POST /api/accounts/{number}/freeze.
func (h *LedgerHandler) Freeze(w http.ResponseWriter, r *http.Request) {
	h.setFrozen(w, r, true)
}

// Unfreeze handles POST /api/accounts/{number}/unfreeze.
func (h *LedgerHandler) Unfreeze(w http.ResponseWriter, r *http.Request) {
	h.setFrozen(w, r, false)
}

// Transfer handles POST /api/transfers.
func (h *LedgerHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	var req TransferRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}
	amount, err := domain.ParseMoney(req.Amount)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.ledger.Transfer(r.Context(), req.From, req.To, amount)
	if err != nil {
		HandleAPIError(w, r, err, "Transfer failed")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TransferResponse{
		From: accountToResponse(result.From),
		To:   accountToResponse(result.To),
	})
}

func (h *LedgerHandler) moveMoney(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, int, decimal.Decimal) (domain.Account, error),
	failMsg string,
) {
	log := requestLogger(r, h.logger)

	number, ok := handlePathInt(w, r, "number", log)
	if !ok {
		return
	}
	var req AmountRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}
	amount, err := domain.ParseMoney(req.Amount)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	acc, err := op(r.Context(), int(number), amount)
	if err != nil {
		HandleAPIError(w, r, err, failMsg)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, accountToResponse(acc))
}

func (h *LedgerHandler) setFrozen(w http.ResponseWriter, r *http.Request, frozen bool) {
	log := requestLogger(r, h.logger)

	number, ok := handlePathInt(w, r, "number", log)
	if !ok {
		return
	}

	acc, err := h.ledger.SetFrozen(r.Context(), int(number), frozen)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update account")
		return
	}
	log.Info("account frozen state changed",
		slog.Int("account", acc.Number),
		slog.Bool("frozen", acc.Frozen))
	shared.RespondWithJSON(w, r, http.StatusOK, accountToResponse(acc))
}

func optionalMoney(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return domain.ParseMoney(raw)
}
