package dal

import (
	"context"

	"github.com/evgeny-myasishchev/ledger.exchange/pkg/exchange"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/ledger"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/diag"
)

type journal struct {
	storage Storage
}

func (j *journal) RecordAccount(ctx context.Context, account ledger.Account) error {
	dto := &AccountDTO{
		ID:        account.ID,
		CreatedAt: account.CreatedAt,
		Balances:  make(map[string]string, len(account.Balances)),
	}
	for currency, amount := range account.Balances {
		dto.Balances[string(currency)] = amount.String()
	}
	return j.storage.SaveAccount(ctx, dto)
}

func (j *journal) RecordTransaction(ctx context.Context, trx ledger.Transaction) error {
	return j.storage.SaveTransaction(ctx, &TransactionDTO{
		ID:        trx.ID,
		From:      trx.From,
		To:        trx.To,
		Currency:  string(trx.Currency),
		Amount:    trx.Amount.String(),
		Status:    string(trx.Status),
		Timestamp: trx.Timestamp,
	})
}

// SequenceOpts returns store options that continue account and transaction ids
// after the greatest saved ones so the journal never gets reused ids
func SequenceOpts(ctx context.Context, storage Storage) ([]ledger.StoreOpt, error) {
	ids, err := storage.LastIDs(ctx)
	if err != nil {
		return nil, err
	}
	logger.
		WithData(diag.MsgData{"lastAccountID": ids.Account, "lastTransactionID": ids.Transaction}).
		Info(ctx, "Continuing ledger sequences")
	return []ledger.StoreOpt{
		ledger.WithAccountSequence(ledger.NewSequence(ids.Account + 1)),
		ledger.WithTransactionSequence(ledger.NewSequence(ids.Transaction + 1)),
	}, nil
}

// NewJournal returns exchange journal that saves snapshots to the storage
func NewJournal(storage Storage) exchange.Journal {
	return &journal{storage: storage}
}
