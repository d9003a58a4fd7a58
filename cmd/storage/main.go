package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/evgeny-myasishchev/ledger.exchange/config"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/app"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/dal"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/diag"
)

var cliArgs struct {
	cmd       string
	accountID int64
}

func init() {
	flag.StringVar(&cliArgs.cmd, "cmd", "", "Command to run. Available commands: setup, list-accounts, list-transactions")
	flag.Int64Var(&cliArgs.accountID, "account", 0, "Account to list transactions of")

	flag.Parse()
}

func showHelpAndExit() {
	flag.PrintDefaults()
	os.Exit(1)
}

func main() {
	if cliArgs.cmd == "" {
		showHelpAndExit()
	}
	ctx := context.Background()

	appCfg := config.LoadAppConfig()

	diag.SetupLoggingSystem(func(setup diag.LoggingSystemSetup) {
		setup.SetLogLevel(appCfg.Log.Level.Value())
		setup.SetLogMode(appCfg.Log.Mode.Value())
	})

	injector := app.BootstrapServices(appCfg)

	switch cliArgs.cmd {
	case "setup":
		if err := injector(func(storage dal.Storage) error {
			return storage.Setup(ctx)
		}); err != nil {
			panic(err)
		}
	case "list-accounts":
		if err := injector(func(storage dal.Storage) error {
			accounts, err := storage.ListAccounts(ctx)
			if err != nil {
				return err
			}
			for _, account := range accounts {
				fmt.Printf("%v\t%v\t%v\n", account.ID, account.CreatedAt.Format("2006-01-02 15:04:05"), account.Balances)
			}
			return nil
		}); err != nil {
			panic(err)
		}
	case "list-transactions":
		if cliArgs.accountID == 0 {
			showHelpAndExit()
		}
		if err := injector(func(storage dal.Storage) error {
			trxs, err := storage.ListTransactions(ctx, cliArgs.accountID)
			if err != nil {
				return err
			}
			for _, trx := range trxs {
				fmt.Printf("%v\t%v -> %v\t%v %v\t%v\n", trx.ID, trx.From, trx.To, trx.Amount, trx.Currency, trx.Status)
			}
			return nil
		}); err != nil {
			panic(err)
		}
	default:
		showHelpAndExit()
	}
}
