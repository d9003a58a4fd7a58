package app

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"go.uber.org/dig"

	"github.com/evgeny-myasishchev/ledger.exchange/config"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/accounts"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/dal"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/exchange"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/ledger"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/money"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/users"
)

// Injector is a function that will inject desired services
// to a target function
type Injector func(function interface{}) error

type storageDeps struct {
	dig.In

	Storage dal.Storage `optional:"true"`
}

// BootstrapServices setup di container with all app services
func BootstrapServices(appCfg *config.AppConfig) Injector {
	c := dig.New()

	// Storage is not available if disabled
	if appCfg.Storage.Enabled.Value() {
		c.Provide(func() (*sql.DB, error) {
			return sql.Open(appCfg.Storage.Driver.Value(), appCfg.Storage.DSN.Value())
		})

		c.Provide(func(db *sql.DB) (dal.Storage, error) {
			return dal.NewSQLStorage(dal.WithSQLDb(db))
		})
	}

	c.Provide(func(deps storageDeps) exchange.Journal {
		if deps.Storage == nil {
			return exchange.NewNopJournal()
		}
		return dal.NewJournal(deps.Storage)
	})

	c.Provide(func() (*money.Rates, error) {
		return money.NewRates(map[money.Pair]decimal.Decimal{
			{From: money.USD, To: money.RUB}: appCfg.Rates.USDToRUB.Value(),
			{From: money.RUB, To: money.USD}: appCfg.Rates.RUBToUSD.Value(),
		})
	})

	// Ids continue after journaled ones
	c.Provide(func(deps storageDeps) (*ledger.Store, error) {
		opts := []ledger.StoreOpt{
			ledger.WithStartingBalances(money.NewBalances(map[money.Currency]decimal.Decimal{
				money.USD: appCfg.Ledger.StartingUSD.Value(),
				money.RUB: appCfg.Ledger.StartingRUB.Value(),
			})),
		}
		if deps.Storage != nil {
			ctx := context.Background()
			if err := deps.Storage.Setup(ctx); err != nil {
				return nil, err
			}
			seqOpts, err := dal.SequenceOpts(ctx, deps.Storage)
			if err != nil {
				return nil, err
			}
			opts = append(opts, seqOpts...)
		}
		return ledger.NewStore(opts...), nil
	})

	c.Provide(func(store *ledger.Store, rates *money.Rates, journal exchange.Journal) (exchange.Engine, error) {
		return exchange.NewEngine(
			exchange.WithStore(store),
			exchange.WithRates(rates),
			exchange.WithJournal(journal),
		)
	})

	// Users open accounts through a service that has no directory
	// since the users service is the directory itself
	c.Provide(func(engine exchange.Engine) users.Service {
		return users.NewService(users.WithAccounts(accounts.NewService(accounts.WithLedger(engine))))
	})

	c.Provide(func(engine exchange.Engine, directory users.Service) accounts.Service {
		return accounts.NewService(
			accounts.WithLedger(engine),
			accounts.WithDirectory(directory),
		)
	})

	return func(function interface{}) error {
		return c.Invoke(function)
	}
}
