package bolt

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/store"
	"github.com/shopspring/decimal"
	"go.etcd.io/bbolt"
)

// accountRecord is the stored form of an account. Amounts are decimal strings.
type accountRecord struct {
	Number         int    `json:"number"`
	Holder         string `json:"holder"`
	Balance        string `json:"balance"`
	OverdraftLimit string `json:"overdraft_limit"`
	Frozen         bool   `json:"frozen"`
}

// LedgerStore implements store.LedgerStore with one key per account.
type LedgerStore struct {
	db     *bbolt.DB
	logger *slog.Logger
}

// NewLedgerStore creates a ledger store on an open database.
func NewLedgerStore(db *bbolt.DB, logger *slog.Logger) *LedgerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerStore{db: db, logger: logger.With(slog.String("component", "ledger_store"))}
}

var _ store.LedgerStore = (*LedgerStore)(nil)

// LoadAccounts implements store.LedgerStore.LoadAccounts
func (s *LedgerStore) LoadAccounts(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	err := s.db.View(func(tx *bbolt.Tx) error {
		return each(tx.Bucket(accountsBucket), func(_ []byte, r accountRecord) error {
			acc, err := r.toDomain()
			if err != nil {
				return err
			}
			accounts = append(accounts, acc)
			return nil
		})
	})
	if err != nil {
		return nil, store.NewStoreError("account", "load", "cannot decode accounts", fmt.Errorf("%w: %v", store.ErrCorruptData, err))
	}
	s.logger.DebugContext(ctx, "accounts loaded", slog.Int("count", len(accounts)))
	return accounts, nil
}

// SaveAccounts implements store.LedgerStore.SaveAccounts
func (s *LedgerStore) SaveAccounts(ctx context.Context, accounts ...domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(accountsBucket)
		for _, acc := range accounts {
			if err := put(b, accountKey(acc.Number), fromDomain(acc)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to save accounts", slog.String("error", err.Error()))
		return store.NewStoreError("account", "save", "bolt update rolled back", fmt.Errorf("%w: %w", store.ErrTransactionFailed, err))
	}
	return nil
}

// accountKey is big-endian so keys iterate in account-number order.
func accountKey(number int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(number))
	return key
}

func fromDomain(a domain.Account) accountRecord {
	return accountRecord{
		Number:         a.Number,
		Holder:         a.Holder,
		Balance:        a.Balance.String(),
		OverdraftLimit: a.OverdraftLimit.String(),
		Frozen:         a.Frozen,
	}
}

func (r accountRecord) toDomain() (domain.Account, error) {
	balance, errBalance := decimal.NewFromString(r.Balance)
	limit, errLimit := decimal.NewFromString(r.OverdraftLimit)
	if err := errors.Join(errBalance, errLimit); err != nil {
		return domain.Account{}, fmt.Errorf("account %d: %w", r.Number, err)
	}
	return domain.Account{
		Number:         r.Number,
		Holder:         r.Holder,
		Balance:        balance,
		OverdraftLimit: limit,
		Frozen:         r.Frozen,
	}, nil
}
