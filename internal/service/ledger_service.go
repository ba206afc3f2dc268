package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/events"
	"github.com/phrazzld/lessonkit/internal/store"
	"github.com/shopspring/decimal"
)

// LedgerService provides bank account operations. Every change is persisted
// before it is reported as done; a change that cannot be persisted is undone
// in memory.
type LedgerService interface {
	OpenAccount(ctx context.Context, number int, holder string, balance, overdraftLimit decimal.Decimal) (domain.Account, error)
	Account(ctx context.Context, number int) (domain.Account, error)
	Accounts(ctx context.Context) []domain.Account
	Deposit(ctx context.Context, number int, amount decimal.Decimal) (domain.Account, error)
	Withdraw(ctx context.Context, number int, amount decimal.Decimal) (domain.Account, error)
	SetFrozen(ctx context.Context, number int, frozen bool) (domain.Account, error)

	// Transfer moves amount between accounts. When the credit or the
	// persistence fails, both balances are restored and the error wraps
	// domain.ErrTransferRolledBack.
	Transfer(ctx context.Context, from, to int, amount decimal.Decimal) (TransferResult, error)
}

// TransferResult holds both accounts after a completed transfer.
type TransferResult struct {
	From domain.Account
	To   domain.Account
}

// AccountEventPayload is the payload of single-account ledger events.
type AccountEventPayload struct {
	Number  int    `json:"number"`
	Holder  string `json:"holder"`
	Amount  string `json:"amount,omitempty"`
	Balance string `json:"balance"`
}

// TransferEventPayload is the payload of transfer events.
type TransferEventPayload struct {
	From   int    `json:"from"`
	To     int    `json:"to"`
	Amount string `json:"amount"`
	Reason string `json:"reason,omitempty"`
}

type ledgerServiceImpl struct {
	mu      sync.Mutex
	bank    *domain.Bank
	store   store.LedgerStore
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewLedgerService loads the persisted accounts and returns a ready service.
func NewLedgerService(
	ctx context.Context,
	ledgerStore store.LedgerStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (LedgerService, error) {
	if ledgerStore == nil {
		return nil, fmt.Errorf("%w: ledger store", ErrMissingDependency)
	}
	if emitter == nil {
		return nil, fmt.Errorf("%w: event emitter", ErrMissingDependency)
	}
	if logger == nil {
		logger = slog.Default()
	}

	accounts, err := ledgerStore.LoadAccounts(ctx)
	if err != nil {
		return nil, NewServiceError("ledger", "load_accounts", err)
	}
	bank, err := domain.RestoreBank(accounts)
	if err != nil {
		return nil, NewServiceError("ledger", "load_accounts", err)
	}

	return &ledgerServiceImpl{
		bank:    bank,
		store:   ledgerStore,
		emitter: emitter,
		logger:  logger.With(slog.String("component", "ledger_service")),
	}, nil
}

func (s *ledgerServiceImpl) OpenAccount(
	ctx context.Context,
	number int,
	holder string,
	balance, overdraftLimit decimal.Decimal,
) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.bank.OpenAccount(number, holder, balance, overdraftLimit)
	if err != nil {
		return domain.Account{}, err
	}
	if err := s.store.SaveAccounts(ctx, acc); err != nil {
		s.bank.Remove(number)
		s.logger.Error("failed to persist new account, removed",
			slog.Int("account", number),
			slog.String("error", err.Error()))
		return domain.Account{}, NewServiceError("ledger", "open_account", err)
	}

	s.logger.Info("account opened", slog.Int("account", number))
	s.emit(ctx, events.TypeAccountOpened, accountPayload(acc, decimal.Zero))
	return acc, nil
}

func (s *ledgerServiceImpl) Account(_ context.Context, number int) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bank.Account(number)
}

func (s *ledgerServiceImpl) Accounts(_ context.Context) []domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bank.Accounts()
}

func (s *ledgerServiceImpl) Deposit(ctx context.Context, number int, amount decimal.Decimal) (domain.Account, error) {
	return s.mutate(ctx, "deposit", number, func() (domain.Account, error) {
		return s.bank.Deposit(number, amount)
	}, events.TypeDeposit, amount)
}

func (s *ledgerServiceImpl) Withdraw(ctx context.Context, number int, amount decimal.Decimal) (domain.Account, error) {
	return s.mutate(ctx, "withdraw", number, func() (domain.Account, error) {
		return s.bank.Withdraw(number, amount)
	}, events.TypeWithdrawal, amount)
}

func (s *ledgerServiceImpl) SetFrozen(ctx context.Context, number int, frozen bool) (domain.Account, error) {
	eventType := events.TypeAccountUnfrozen
	if frozen {
		eventType = events.TypeAccountFrozen
	}
	return s.mutate(ctx, "set_frozen", number, func() (domain.Account, error) {
		return s.bank.SetFrozen(number, frozen)
	}, eventType, decimal.Zero)
}

// mutate applies change to one account, persists the result and undoes the
// change if persisting fails.
func (s *ledgerServiceImpl) mutate(
	ctx context.Context,
	op string,
	number int,
	change func() (domain.Account, error),
	eventType string,
	amount decimal.Decimal,
) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.bank.Account(number)
	if err != nil {
		return domain.Account{}, err
	}
	acc, err := change()
	if err != nil {
		return domain.Account{}, err
	}
	if err := s.store.SaveAccounts(ctx, acc); err != nil {
		s.restore(snapshot)
		s.logger.Error("failed to persist account change, reverted",
			slog.String("operation", op),
			slog.Int("account", number),
			slog.String("error", err.Error()))
		return domain.Account{}, NewServiceError("ledger", op, err)
	}

	s.logger.Info("account updated",
		slog.String("operation", op),
		slog.Int("account", number),
		slog.String("balance", acc.PrettyBalance()))
	s.emit(ctx, eventType, accountPayload(acc, amount))
	return acc, nil
}

func (s *ledgerServiceImpl) Transfer(
	ctx context.Context,
	from, to int,
	amount decimal.Decimal,
) (TransferResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.logger.With(slog.Int("from", from), slog.Int("to", to), slog.String("amount", amount.String()))

	// Unknown accounts are reported by Transfer below.
	srcSnapshot, _ := s.bank.Account(from)
	dstSnapshot, _ := s.bank.Account(to)

	src, dst, err := s.bank.Transfer(from, to, amount)
	if err != nil {
		if errors.Is(err, domain.ErrTransferRolledBack) {
			log.Warn("transfer rolled back", slog.String("error", err.Error()))
			s.emitRollback(ctx, from, to, amount, err)
		}
		return TransferResult{}, err
	}

	if err := s.store.SaveAccounts(ctx, src, dst); err != nil {
		s.restore(srcSnapshot)
		s.restore(dstSnapshot)
		log.Error("failed to persist transfer, rolled back", slog.String("error", err.Error()))
		s.emitRollback(ctx, from, to, amount, err)
		return TransferResult{}, fmt.Errorf("%w: %w", domain.ErrTransferRolledBack, err)
	}

	log.Info("transfer completed")
	s.emit(ctx, events.TypeTransferCompleted, TransferEventPayload{
		From:   from,
		To:     to,
		Amount: domain.FormatMoney(amount),
	})
	return TransferResult{From: src, To: dst}, nil
}

func (s *ledgerServiceImpl) restore(snapshot domain.Account) {
	if err := s.bank.Restore(snapshot); err != nil {
		s.logger.Error("failed to restore account snapshot",
			slog.Int("account", snapshot.Number),
			slog.String("error", err.Error()))
	}
}

func (s *ledgerServiceImpl) emitRollback(ctx context.Context, from, to int, amount decimal.Decimal, cause error) {
	s.emit(ctx, events.TypeTransferRolledBack, TransferEventPayload{
		From:   from,
		To:     to,
		Amount: domain.FormatMoney(amount),
		Reason: cause.Error(),
	})
}

// emit publishes an event. The ledger change has already been committed, so
// a failing handler is logged and not returned.
func (s *ledgerServiceImpl) emit(ctx context.Context, eventType string, payload any) {
	event, err := events.NewEvent(eventType, payload)
	if err != nil {
		s.logger.Error("failed to create ledger event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.Warn("ledger event handler failed",
			slog.String("event_type", eventType),
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()))
	}
}

func accountPayload(acc domain.Account, amount decimal.Decimal) AccountEventPayload {
	p := AccountEventPayload{
		Number:  acc.Number,
		Holder:  acc.Holder,
		Balance: acc.PrettyBalance(),
	}
	if !amount.IsZero() {
		p.Amount = domain.FormatMoney(amount)
	}
	return p
}
