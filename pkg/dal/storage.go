package dal

import (
	"context"
	"time"

	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/diag"
)

var logger = diag.CreateLogger()

// AccountDTO is a DTO to store account snapshot
type AccountDTO struct {
	ID        int64
	CreatedAt time.Time

	// Balances maps currency code to a decimal amount string
	Balances map[string]string
}

// TransactionDTO is a DTO to store transaction snapshot
type TransactionDTO struct {
	ID        int64
	From      int64
	To        int64
	Currency  string
	Amount    string
	Status    string
	Timestamp time.Time
}

// LastIDs holds the greatest saved ids, zero if nothing saved
type LastIDs struct {
	Account     int64
	Transaction int64
}

// Storage is a persistance layer
type Storage interface {
	Setup(ctx context.Context) error
	SaveAccount(ctx context.Context, account *AccountDTO) error
	SaveTransaction(ctx context.Context, trx *TransactionDTO) error
	LastIDs(ctx context.Context) (*LastIDs, error)
	ListAccounts(ctx context.Context) ([]*AccountDTO, error)
	ListTransactions(ctx context.Context, accountID int64) ([]*TransactionDTO, error)
}
