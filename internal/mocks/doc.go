// Package mocks provides shared mock implementations of the service
// interfaces used by handler and command tests.
//
// Mocks expose a function field per method; unset functions fall back to a
// default response configured through options:
//
//	ledger := mocks.NewMockLedgerService(
//	    mocks.WithAccount(domain.Account{Number: 1, Holder: "Ada"}),
//	)
//	roster := &mocks.MockRosterService{
//	    GetFn: func(ctx context.Context, id int64) (*domain.RosterMember, error) {
//	        return &domain.RosterMember{ID: id, Name: "Odo"}, nil
//	    },
//	}
package mocks
