package dal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgeny-myasishchev/ledger.exchange/pkg/exchange"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/ledger"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/money"

	tst "github.com/evgeny-myasishchev/ledger.exchange/pkg/internal/testing"
)

func TestJournal(t *testing.T) {
	ctx := context.Background()
	s, closeDb := setupStorage(t)
	defer closeDb()

	engine, err := exchange.NewEngine(exchange.WithJournal(NewJournal(s)))
	require.NoError(t, err)
	a, err := engine.CreateAccount(ctx)
	require.NoError(t, err)
	b, err := engine.CreateAccount(ctx)
	require.NoError(t, err)
	trxID, err := engine.Propose(ctx, a.ID, b.ID, money.USD, tst.Dec("50"))
	require.NoError(t, err)
	require.NoError(t, engine.Receive(ctx, trxID, b.ID, true))

	accounts, err := s.ListAccounts(ctx)
	if !assert.NoError(t, err) {
		return
	}
	if !assert.Len(t, accounts, 2) {
		return
	}
	assert.Equal(t, map[string]string{"USD": "50", "RUB": "15000"}, accounts[0].Balances)
	assert.Equal(t, map[string]string{"USD": "150", "RUB": "5000"}, accounts[1].Balances)

	transactions, err := s.ListTransactions(ctx, b.ID)
	if !assert.NoError(t, err) {
		return
	}
	if !assert.Len(t, transactions, 1) {
		return
	}
	assert.Equal(t, trxID, transactions[0].ID)
	assert.Equal(t, string(ledger.StatusAccepted), transactions[0].Status)
	assert.Equal(t, "50", transactions[0].Amount)
}

func TestJournal_Restart(t *testing.T) {
	ctx := context.Background()
	s, closeDb := setupStorage(t)
	defer closeDb()

	first, err := exchange.NewEngine(exchange.WithJournal(NewJournal(s)))
	require.NoError(t, err)
	a, err := first.CreateAccount(ctx)
	require.NoError(t, err)
	b, err := first.CreateAccount(ctx)
	require.NoError(t, err)
	firstTrxID, err := first.Propose(ctx, a.ID, b.ID, money.USD, tst.Dec("50"))
	require.NoError(t, err)
	require.NoError(t, first.Receive(ctx, firstTrxID, b.ID, true))

	opts, err := SequenceOpts(ctx, s)
	require.NoError(t, err)
	second, err := exchange.NewEngine(
		exchange.WithStore(ledger.NewStore(opts...)),
		exchange.WithJournal(NewJournal(s)),
	)
	require.NoError(t, err)
	c, err := second.CreateAccount(ctx)
	require.NoError(t, err)
	d, err := second.CreateAccount(ctx)
	require.NoError(t, err)
	assert.Equal(t, b.ID+1, c.ID)
	assert.Equal(t, b.ID+2, d.ID)
	secondTrxID, err := second.Propose(ctx, d.ID, c.ID, money.RUB, tst.Dec("7"))
	require.NoError(t, err)
	assert.Equal(t, firstTrxID+1, secondTrxID)

	transactions, err := s.ListTransactions(ctx, a.ID)
	require.NoError(t, err)
	if assert.Len(t, transactions, 1) {
		assert.Equal(t, firstTrxID, transactions[0].ID)
		assert.Equal(t, string(ledger.StatusAccepted), transactions[0].Status)
		assert.Equal(t, "USD", transactions[0].Currency)
	}

	transactions, err = s.ListTransactions(ctx, c.ID)
	require.NoError(t, err)
	if assert.Len(t, transactions, 1) {
		assert.Equal(t, secondTrxID, transactions[0].ID)
		assert.Equal(t, d.ID, transactions[0].From)
		assert.Equal(t, "RUB", transactions[0].Currency)
		assert.Equal(t, "7", transactions[0].Amount)
		assert.Equal(t, string(ledger.StatusPending), transactions[0].Status)
	}

	accounts, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	if assert.Len(t, accounts, 4) {
		assert.Equal(t, map[string]string{"USD": "50", "RUB": "15000"}, accounts[0].Balances)
	}
}
