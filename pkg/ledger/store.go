package ledger

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/evgeny-myasishchev/ledger.exchange/pkg/money"
)

// Account is a party that holds balances in every supported currency
type Account struct {
	ID        int64
	Balances  money.Balances
	CreatedAt time.Time
}

func (a *Account) copy() *Account {
	return &Account{
		ID:        a.ID,
		Balances:  a.Balances.Copy(),
		CreatedAt: a.CreatedAt,
	}
}

// Direction of a balance change
type Direction string

const (
	// Debit decreases balance
	Debit Direction = "DEBIT"

	// Credit increases balance
	Credit Direction = "CREDIT"
)

// Leg is a single balance change of a settlement
type Leg struct {
	AccountID int64
	Direction Direction
	Currency  money.Currency
	Amount    decimal.Decimal
}

// DefaultStartingBalances is a grant every new account gets
func DefaultStartingBalances() money.Balances {
	return money.NewBalances(map[money.Currency]decimal.Decimal{
		money.USD: decimal.NewFromInt(100),
		money.RUB: decimal.NewFromInt(10000),
	})
}

// Store holds all accounts and their balances. Credit and Debit are the
// only primitives that change balances.
//
// Individual calls are safe for concurrent use. Composite operations
// (check then change) must be serialized by the caller.
type Store struct {
	mu               sync.RWMutex
	accounts         map[int64]*Account
	accountSeq       Sequence
	transactionSeq   Sequence
	startingBalances money.Balances
	now              func() time.Time
}

// StoreOpt is an option of the store
type StoreOpt func(s *Store)

// WithAccountSequence sets a generator of account ids
func WithAccountSequence(seq Sequence) StoreOpt {
	return func(s *Store) {
		s.accountSeq = seq
	}
}

// WithTransactionSequence sets a generator of transaction ids
func WithTransactionSequence(seq Sequence) StoreOpt {
	return func(s *Store) {
		s.transactionSeq = seq
	}
}

// WithStartingBalances sets the grant of new accounts
func WithStartingBalances(balances money.Balances) StoreOpt {
	return func(s *Store) {
		s.startingBalances = money.NewBalances(balances)
	}
}

// WithNow sets the clock
func WithNow(now func() time.Time) StoreOpt {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore returns an empty store
func NewStore(opts ...StoreOpt) *Store {
	s := &Store{
		accounts:         map[int64]*Account{},
		accountSeq:       NewSequence(1),
		transactionSeq:   NewSequence(1),
		startingBalances: DefaultStartingBalances(),
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateAccount allocates a new account with starting balances
func (s *Store) CreateAccount() *Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	account := &Account{
		ID:        s.accountSeq.Next(),
		Balances:  s.startingBalances.Copy(),
		CreatedAt: s.now().UTC(),
	}
	s.accounts[account.ID] = account
	return account.copy()
}

// NewTransaction allocates the next global transaction id and
// builds a pending transaction. It is not recorded anywhere
func (s *Store) NewTransaction(from, to int64, currency money.Currency, amount decimal.Decimal) Transaction {
	return Transaction{
		ID:        s.transactionSeq.Next(),
		From:      from,
		To:        to,
		Currency:  currency,
		Amount:    amount,
		Status:    StatusPending,
		Timestamp: s.now().UTC(),
	}
}

// Exists reports if there is an account with given id
func (s *Store) Exists(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[id]
	return ok
}

// GetAccount returns a copy of the account
func (s *Store) GetAccount(id int64) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, errors.Wrapf(ErrAccountNotFound, "id=%v", id)
	}
	return account.copy(), nil
}

// Balance returns the account balance in a given currency
func (s *Store) Balance(id int64, currency money.Currency) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return decimal.Zero, errors.Wrapf(ErrAccountNotFound, "id=%v", id)
	}
	balance, ok := account.Balances[currency]
	if !ok {
		return decimal.Zero, errors.Wrapf(money.ErrUnsupportedCurrency, "%q", currency)
	}
	return balance, nil
}

// Credit increases the account balance
func (s *Store) Credit(id int64, currency money.Currency, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credit(id, currency, amount)
}

// Debit decreases the account balance. Fails with ErrInsufficientFunds
// if the balance would go negative
func (s *Store) Debit(id int64, currency money.Currency, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debit(id, currency, amount)
}

// Settle applies all legs or none of them. Readers of the store observe
// balances either before or after the whole settlement
func (s *Store) Settle(legs ...Leg) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projected := map[int64]money.Balances{}
	for _, leg := range legs {
		account, ok := s.accounts[leg.AccountID]
		if !ok {
			return errors.Wrapf(ErrAccountNotFound, "id=%v", leg.AccountID)
		}
		if _, ok := projected[leg.AccountID]; !ok {
			projected[leg.AccountID] = account.Balances.Copy()
		}
		balances := projected[leg.AccountID]
		next, err := applyLeg(balances, leg)
		if err != nil {
			return errors.Wrapf(err, "%v account=%v currency=%v", leg.Direction, leg.AccountID, leg.Currency)
		}
		balances[leg.Currency] = next
	}

	for _, leg := range legs {
		var err error
		if leg.Direction == Debit {
			err = s.debit(leg.AccountID, leg.Currency, leg.Amount)
		} else {
			err = s.credit(leg.AccountID, leg.Currency, leg.Amount)
		}
		if err != nil {
			// Legs were checked against projected balances above
			panic(errors.Wrap(err, "Settlement leg failed after validation"))
		}
	}
	return nil
}

func applyLeg(balances money.Balances, leg Leg) (decimal.Decimal, error) {
	balance, ok := balances[leg.Currency]
	if !ok {
		return decimal.Zero, errors.Wrapf(money.ErrUnsupportedCurrency, "%q", leg.Currency)
	}
	if !leg.Amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	switch leg.Direction {
	case Credit:
		return balance.Add(leg.Amount), nil
	case Debit:
		if balance.LessThan(leg.Amount) {
			return decimal.Zero, ErrInsufficientFunds
		}
		return balance.Sub(leg.Amount), nil
	}
	return decimal.Zero, errors.Errorf("Unknown direction %q", leg.Direction)
}

func (s *Store) credit(id int64, currency money.Currency, amount decimal.Decimal) error {
	account, ok := s.accounts[id]
	if !ok {
		return errors.Wrapf(ErrAccountNotFound, "id=%v", id)
	}
	next, err := applyLeg(account.Balances, Leg{AccountID: id, Direction: Credit, Currency: currency, Amount: amount})
	if err != nil {
		return err
	}
	account.Balances[currency] = next
	return nil
}

func (s *Store) debit(id int64, currency money.Currency, amount decimal.Decimal) error {
	account, ok := s.accounts[id]
	if !ok {
		return errors.Wrapf(ErrAccountNotFound, "id=%v", id)
	}
	next, err := applyLeg(account.Balances, Leg{AccountID: id, Direction: Debit, Currency: currency, Amount: amount})
	if err != nil {
		return err
	}
	account.Balances[currency] = next
	return nil
}
