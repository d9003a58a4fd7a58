package exchange

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/evgeny-myasishchev/ledger.exchange/pkg/ledger"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/diag"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/money"
)

var logger = diag.CreateLogger()

// Engine proposes and settles transfers between accounts
type Engine interface {
	// CreateAccount opens a new account with starting balances
	CreateAccount(ctx context.Context) (*ledger.Account, error)

	// Propose records a pending transfer of amount in currency from one
	// account to another. No funds move until the receiver accepts it
	Propose(ctx context.Context, fromID, toID int64, currency money.Currency, amount decimal.Decimal) (int64, error)

	// Receive accepts or rejects a pending transfer addressed to the receiver.
	// Accepting swaps the amount for its counter currency equivalent
	Receive(ctx context.Context, transactionID, receiverID int64, accept bool) error

	// Snapshot returns the account together with the number of its transactions.
	// Both are read under the account lock
	Snapshot(ctx context.Context, accountID int64) (*ledger.Account, int, error)

	// Transactions returns transactions the account is a party of
	Transactions(ctx context.Context, accountID int64) ([]ledger.Transaction, error)
}

type engine struct {
	store   *ledger.Store
	log     *ledger.TransactionLog
	rates   *money.Rates
	journal Journal
	locks   *lockTable
}

// EngineOpt is an option of the engine
type EngineOpt func(e *engine)

// WithStore sets the ledger store
func WithStore(store *ledger.Store) EngineOpt {
	return func(e *engine) {
		e.store = store
	}
}

// WithLog sets the transaction log
func WithLog(log *ledger.TransactionLog) EngineOpt {
	return func(e *engine) {
		e.log = log
	}
}

// WithRates sets the conversion table
func WithRates(rates *money.Rates) EngineOpt {
	return func(e *engine) {
		e.rates = rates
	}
}

// WithJournal sets a journal of changes
func WithJournal(journal Journal) EngineOpt {
	return func(e *engine) {
		e.journal = journal
	}
}

// NewEngine creates an engine. It fails if the conversion table is not consistent
func NewEngine(opts ...EngineOpt) (Engine, error) {
	e := &engine{
		journal: NewNopJournal(),
		locks:   newLockTable(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = ledger.NewStore()
	}
	if e.log == nil {
		e.log = ledger.NewTransactionLog()
	}
	if e.rates == nil {
		e.rates = money.DefaultRates()
	}
	if err := e.rates.Validate(); err != nil {
		return nil, errors.Wrap(err, "Conversion table is not consistent")
	}
	return e, nil
}

func (e *engine) CreateAccount(ctx context.Context) (*ledger.Account, error) {
	account := e.store.CreateAccount()
	logger.WithData(diag.MsgData{"accountID": account.ID}).Info(ctx, "Account created")
	e.recordAccounts(ctx, account.ID)
	return account, nil
}

func (e *engine) Propose(
	ctx context.Context,
	fromID, toID int64,
	currency money.Currency,
	amount decimal.Decimal,
) (int64, error) {
	ctx = diag.ContextWithOperation(ctx, "propose")
	trx, err := e.propose(fromID, toID, currency, amount)
	if err != nil {
		logger.WithError(err).Info(ctx, "Transfer %v -> %v rejected", fromID, toID)
		return 0, err
	}
	logger.
		WithData(diag.MsgData{"transaction": trx}).
		Info(ctx, "Transaction %v proposed", trx.ID)
	e.recordTransaction(ctx, trx)
	return trx.ID, nil
}

func (e *engine) propose(fromID, toID int64, currency money.Currency, amount decimal.Decimal) (ledger.Transaction, error) {
	// Accounts are never deleted so existence checked before locking stays valid
	for _, id := range []int64{fromID, toID} {
		if !e.store.Exists(id) {
			return ledger.Transaction{}, newError(KindAccountNotFound, "Account %v not found", id)
		}
	}
	if fromID == toID {
		return ledger.Transaction{}, newError(KindSelfTransfer, "Can not transfer funds to the same account")
	}
	if !amount.IsPositive() {
		return ledger.Transaction{}, newError(KindInvalidAmount, "Amount must be positive, got %v", amount)
	}
	if !currency.Valid() {
		return ledger.Transaction{}, newError(KindInvalidAmount, "Currency %q is not supported", currency)
	}

	unlock := e.locks.lockPair(fromID, toID)
	defer unlock()

	balance, err := e.store.Balance(fromID, currency)
	if err != nil {
		return ledger.Transaction{}, errors.Wrap(err, "Failed to get sender balance")
	}
	if balance.LessThan(amount) {
		return ledger.Transaction{}, newError(KindInsufficientFunds,
			"Not enough %v on account %v: available %v, requested %v", currency, fromID, balance, amount)
	}

	trx := e.store.NewTransaction(fromID, toID, currency, amount)
	if err := e.log.Append(trx); err != nil {
		return ledger.Transaction{}, errors.Wrap(err, "Failed to record transaction")
	}
	return trx, nil
}

func (e *engine) Receive(ctx context.Context, transactionID, receiverID int64, accept bool) error {
	ctx = diag.ContextWithOperation(ctx, "receive")
	trx, err := e.receive(ctx, transactionID, receiverID, accept)
	if trx.ID != 0 {
		// Finalized even when settlement was refused
		e.recordTransaction(ctx, trx)
		if trx.Status == ledger.StatusAccepted {
			e.recordAccounts(ctx, trx.From, trx.To)
		}
	}
	if err != nil {
		if IsKind(err, KindSenderNotFound) {
			logger.WithError(err).Error(ctx, "Ledger is corrupted. Transaction %v references missing sender", transactionID)
		} else {
			logger.WithError(err).Info(ctx, "Failed to receive transaction %v", transactionID)
		}
		return err
	}
	logger.
		WithData(diag.MsgData{"transaction": trx}).
		Info(ctx, "Transaction %v %v", trx.ID, trx.Status)
	return nil
}

// receive returns the finalized transaction if it changed status
func (e *engine) receive(ctx context.Context, transactionID, receiverID int64, accept bool) (ledger.Transaction, error) {
	if !e.store.Exists(receiverID) {
		return ledger.Transaction{}, newError(KindAccountNotFound, "Account %v not found", receiverID)
	}
	peek, err := e.log.FindPending(transactionID, receiverID)
	if err != nil {
		return ledger.Transaction{}, newError(KindTransactionNotFound, "Transaction %v not found", transactionID)
	}
	if !e.store.Exists(peek.From) {
		return ledger.Transaction{}, newError(KindSenderNotFound,
			"Sender account %v of transaction %v not found", peek.From, transactionID)
	}

	unlock := e.locks.lockPair(peek.From, receiverID)
	defer unlock()

	// Someone else may have finalized it while locks were taken
	trx, err := e.log.FindPending(transactionID, receiverID)
	if err != nil {
		return ledger.Transaction{}, newError(KindTransactionNotFound, "Transaction %v not found", transactionID)
	}

	if !accept {
		rejected, err := e.log.SetStatus(trx.ID, ledger.StatusRejected)
		return rejected, errors.Wrap(err, "Failed to reject transaction")
	}

	counter, err := money.CounterCurrency(trx.Currency)
	if err != nil {
		return ledger.Transaction{}, errors.Wrap(err, "Failed to get counter currency")
	}
	required, err := e.rates.Convert(trx.Amount, trx.Currency, counter)
	if err != nil {
		return ledger.Transaction{}, errors.Wrap(err, "Failed to convert amount")
	}
	receiverBalance, err := e.store.Balance(receiverID, counter)
	if err != nil {
		return ledger.Transaction{}, errors.Wrap(err, "Failed to get receiver balance")
	}
	if receiverBalance.LessThan(required) {
		return e.refuse(trx, newError(KindInsufficientFunds,
			"Not enough %v on account %v: available %v, required %v", counter, receiverID, receiverBalance, required))
	}

	settleErr := e.store.Settle(
		ledger.Leg{AccountID: trx.From, Direction: ledger.Debit, Currency: trx.Currency, Amount: trx.Amount},
		ledger.Leg{AccountID: receiverID, Direction: ledger.Debit, Currency: counter, Amount: required},
		ledger.Leg{AccountID: receiverID, Direction: ledger.Credit, Currency: trx.Currency, Amount: trx.Amount},
		ledger.Leg{AccountID: trx.From, Direction: ledger.Credit, Currency: counter, Amount: required},
	)
	if settleErr != nil {
		if errors.Cause(settleErr) != ledger.ErrInsufficientFunds {
			return ledger.Transaction{}, errors.Wrap(settleErr, "Failed to settle transaction")
		}
		logger.WithError(settleErr).Warn(ctx, "Settlement of transaction %v refused", trx.ID)
		return e.refuse(trx, newError(KindInsufficientFunds,
			"Not enough %v on account %v to settle transaction %v", trx.Currency, trx.From, trx.ID))
	}

	accepted, err := e.log.SetStatus(trx.ID, ledger.StatusAccepted)
	return accepted, errors.Wrap(err, "Failed to accept transaction")
}

func (e *engine) refuse(trx ledger.Transaction, cause error) (ledger.Transaction, error) {
	rejected, err := e.log.SetStatus(trx.ID, ledger.StatusRejected)
	if err != nil {
		return ledger.Transaction{}, errors.Wrap(err, "Failed to reject transaction")
	}
	return rejected, cause
}

func (e *engine) Snapshot(ctx context.Context, accountID int64) (*ledger.Account, int, error) {
	unlock := e.locks.rlock(accountID)
	defer unlock()
	account, err := e.store.GetAccount(accountID)
	if err != nil {
		return nil, 0, newError(KindAccountNotFound, "Account %v not found", accountID)
	}
	return account, e.log.CountForAccount(accountID), nil
}

func (e *engine) Transactions(ctx context.Context, accountID int64) ([]ledger.Transaction, error) {
	unlock := e.locks.rlock(accountID)
	defer unlock()
	if !e.store.Exists(accountID) {
		return nil, newError(KindAccountNotFound, "Account %v not found", accountID)
	}
	return e.log.ForAccount(accountID), nil
}

func (e *engine) recordTransaction(ctx context.Context, trx ledger.Transaction) {
	if err := e.journal.RecordTransaction(ctx, trx); err != nil {
		logger.WithError(err).Warn(ctx, "Failed to journal transaction %v", trx.ID)
	}
}

func (e *engine) recordAccounts(ctx context.Context, ids ...int64) {
	for _, id := range ids {
		account, err := e.store.GetAccount(id)
		if err != nil {
			logger.WithError(err).Warn(ctx, "Failed to get account %v for journal", id)
			continue
		}
		if err := e.journal.RecordAccount(ctx, *account); err != nil {
			logger.WithError(err).Warn(ctx, "Failed to journal account %v", id)
		}
	}
}
