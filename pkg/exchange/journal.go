package exchange

import (
	"context"

	"github.com/evgeny-myasishchev/ledger.exchange/pkg/ledger"
)

// Journal receives snapshots of changed accounts and transactions.
// It is called after locks are released and its failures never
// affect results of exchange operations
type Journal interface {
	RecordAccount(ctx context.Context, account ledger.Account) error
	RecordTransaction(ctx context.Context, trx ledger.Transaction) error
}

type nopJournal struct{}

func (nopJournal) RecordAccount(ctx context.Context, account ledger.Account) error {
	return nil
}

func (nopJournal) RecordTransaction(ctx context.Context, trx ledger.Transaction) error {
	return nil
}

// NewNopJournal returns a journal that records nothing
func NewNopJournal() Journal {
	return nopJournal{}
}
