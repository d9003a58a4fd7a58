package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/evgeny-myasishchev/ledger.exchange/config"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/accounts"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/api"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/app"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/exchange"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/diag"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/router"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/users"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/version"
)

var logger = diag.CreateLogger()

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-signals
		logger.Info(ctx, "Received %v signal", sig)
		cancel()
	}()

	appCfg := config.LoadAppConfig()

	diag.SetupLoggingSystem(func(setup diag.LoggingSystemSetup) {
		setup.SetLogLevel(appCfg.Log.Level.Value())
		setup.SetLogMode(appCfg.Log.Mode.Value())
	})

	logger.
		WithData(diag.MsgData{"version": version.Version, "gitHash": version.GitHash}).
		Info(ctx, "Starting %v", version.AppName)

	injector := app.BootstrapServices(appCfg)

	if err := injector(func(engine exchange.Engine, accountsSvc accounts.Service, usersSvc users.Service) error {
		return router.StartServer(ctx, appCfg.HTTP.Port.Value(), func(r router.Router) {
			api.SetupRoutes(r,
				api.WithEngine(engine),
				api.WithAccounts(accountsSvc),
				api.WithUsers(usersSvc),
			)
		})
	}); err != nil {
		logger.WithError(err).Error(ctx, "Server failed")
		os.Exit(1)
	}
	logger.Info(ctx, "Server stopped")
}
