package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/evgeny-myasishchev/ledger.exchange/config"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/client"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/diag"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/money"
)

var cliArgs struct {
	cmd           string
	api           string
	accountID     int64
	from          int64
	to            int64
	currency      string
	amount        string
	transactionID int64
	reject        bool
}

func init() {
	flag.StringVar(&cliArgs.cmd, "cmd", "", "Command to run. Available commands: create-account, info, transactions, propose, receive")
	flag.StringVar(&cliArgs.api, "api", "", "Base url of the exchange api. Defaults to client/api config param")
	flag.Int64Var(&cliArgs.accountID, "account", 0, "Account to show info of or to receive transaction with")
	flag.Int64Var(&cliArgs.from, "from", 0, "Sender account")
	flag.Int64Var(&cliArgs.to, "to", 0, "Receiver account")
	flag.StringVar(&cliArgs.currency, "currency", "USD", "Currency of the transfer. Available currencies: USD, RUB")
	flag.StringVar(&cliArgs.amount, "amount", "", "Amount of the transfer")
	flag.Int64Var(&cliArgs.transactionID, "trx", 0, "Transaction to receive")
	flag.BoolVar(&cliArgs.reject, "reject", false, "Reject the transaction instead of accepting it")

	flag.Parse()
}

func showHelpAndExit() {
	flag.PrintDefaults()
	os.Exit(1)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	if cliArgs.cmd == "" {
		showHelpAndExit()
	}
	ctx := context.Background()

	appCfg := config.LoadAppConfig()

	diag.SetupLoggingSystem(func(setup diag.LoggingSystemSetup) {
		setup.SetLogLevel(appCfg.Log.Level.Value())
		setup.SetLogMode("text")
	})

	apiURL := cliArgs.api
	if apiURL == "" {
		apiURL = appCfg.Client.API.Value()
	}
	apiClient := client.NewClient(apiURL)

	switch cliArgs.cmd {
	case "create-account":
		id, err := apiClient.CreateAccount(ctx)
		exitOnError(err)
		fmt.Println("Account created:", id)
	case "info":
		if cliArgs.accountID == 0 {
			showHelpAndExit()
		}
		info, err := apiClient.GetAccountInfo(ctx, cliArgs.accountID)
		exitOnError(err)
		fmt.Printf("Account: %v\n", info.ID)
		fmt.Printf("Login: %v\n", info.Login)
		fmt.Printf("Online: %v, verified: %v\n", info.Online, info.Verified)
		for _, currency := range money.Supported() {
			fmt.Printf("%v: %v\n", currency, info.Balances[currency])
		}
		fmt.Printf("Transactions: %v\n", info.TransactionCount)
	case "transactions":
		if cliArgs.accountID == 0 {
			showHelpAndExit()
		}
		trxs, err := apiClient.Transactions(ctx, cliArgs.accountID)
		exitOnError(err)
		for _, trx := range trxs {
			fmt.Printf("%v\t%v -> %v\t%v %v\t%v\n", trx.ID, trx.From, trx.To, trx.Amount, trx.Currency, trx.Status)
		}
	case "propose":
		if cliArgs.from == 0 || cliArgs.to == 0 || cliArgs.amount == "" {
			showHelpAndExit()
		}
		amount, err := decimal.NewFromString(cliArgs.amount)
		exitOnError(err)
		currency, err := money.ParseCurrency(cliArgs.currency)
		exitOnError(err)
		trxID, err := apiClient.Propose(ctx, cliArgs.from, cliArgs.to, currency, amount)
		exitOnError(err)
		fmt.Println("Transaction proposed:", trxID)
	case "receive":
		if cliArgs.transactionID == 0 || cliArgs.accountID == 0 {
			showHelpAndExit()
		}
		message, err := apiClient.Receive(ctx, cliArgs.transactionID, cliArgs.accountID, !cliArgs.reject)
		exitOnError(err)
		fmt.Println(message)
	default:
		showHelpAndExit()
	}
}
