package ledger

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/evgeny-myasishchev/ledger.exchange/pkg/money"
)

// Status of a transaction
type Status string

const (
	// StatusPending - proposed and awaiting the receiver decision
	StatusPending Status = "PENDING"

	// StatusAccepted - accepted by the receiver and settled
	StatusAccepted Status = "ACCEPTED"

	// StatusRejected - rejected by the receiver or failed to settle
	StatusRejected Status = "REJECTED"
)

// Terminal reports if the status can not change anymore
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Transaction is a proposed transfer between two accounts
type Transaction struct {
	ID        int64           `json:"id"`
	From      int64           `json:"from"`
	To        int64           `json:"to"`
	Currency  money.Currency  `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	Status    Status          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
}

// TransactionLog keeps every transaction once. Transactions are stored in
// an arena and indexed by id and by involved accounts so a transaction
// shared by both parties is a single record.
type TransactionLog struct {
	mu        sync.RWMutex
	arena     []Transaction
	byID      map[int64]int
	byAccount map[int64][]int
}

// NewTransactionLog returns an empty log
func NewTransactionLog() *TransactionLog {
	return &TransactionLog{
		byID:      map[int64]int{},
		byAccount: map[int64][]int{},
	}
}

// Append records a new transaction for both sender and receiver
func (l *TransactionLog) Append(trx Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.byID[trx.ID]; ok {
		return errors.Wrapf(ErrDuplicateTransaction, "id=%v", trx.ID)
	}
	idx := len(l.arena)
	l.arena = append(l.arena, trx)
	l.byID[trx.ID] = idx
	l.byAccount[trx.From] = append(l.byAccount[trx.From], idx)
	if trx.To != trx.From {
		l.byAccount[trx.To] = append(l.byAccount[trx.To], idx)
	}
	return nil
}

// Get returns a transaction by id
func (l *TransactionLog) Get(id int64) (Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	idx, ok := l.byID[id]
	if !ok {
		return Transaction{}, errors.Wrapf(ErrTransactionNotFound, "id=%v", id)
	}
	return l.arena[idx], nil
}

// FindPending returns a pending transaction with given id addressed to
// the receiver. Transactions addressed to someone else or already
// finalized are reported as not found
func (l *TransactionLog) FindPending(id, receiverID int64) (Transaction, error) {
	trx, err := l.Get(id)
	if err != nil {
		return trx, err
	}
	if trx.To != receiverID || trx.Status != StatusPending {
		return Transaction{}, errors.Wrapf(ErrTransactionNotFound, "id=%v receiver=%v", id, receiverID)
	}
	return trx, nil
}

// SetStatus finalizes a pending transaction. The change is visible from
// both sender and receiver views
func (l *TransactionLog) SetStatus(id int64, status Status) (Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx, ok := l.byID[id]
	if !ok {
		return Transaction{}, errors.Wrapf(ErrTransactionNotFound, "id=%v", id)
	}
	trx := &l.arena[idx]
	if trx.Status.Terminal() || !status.Terminal() {
		return *trx, errors.Wrapf(ErrInvalidTransition, "%v -> %v", trx.Status, status)
	}
	trx.Status = status
	return *trx, nil
}

// ForAccount returns transactions the account is a party of in the order
// they were recorded
func (l *TransactionLog) ForAccount(accountID int64) []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	indexes := l.byAccount[accountID]
	result := make([]Transaction, len(indexes))
	for i, idx := range indexes {
		result[i] = l.arena[idx]
	}
	return result
}

// CountForAccount returns number of transactions the account is a party of
func (l *TransactionLog) CountForAccount(accountID int64) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.byAccount[accountID])
}
