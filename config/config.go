package config

import (
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/config"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/version"
)

var appEnv = config.NewAppEnv(version.AppName)
var configBuilder = config.NewBuilder(appEnv)

var localParams = configBuilder.NewParamsBuilder(configBuilder.WithLocalSource())

// Do not change vars below at runtime
var (
	LogLevel = localParams.NewParam("log/level").String()
	LogMode  = localParams.NewParam("log/mode").String()

	HTTPPort = localParams.NewParam("http/port").Int()

	StorageEnabled = localParams.NewParam("storage/enabled").Bool()
	StorageDriver  = localParams.NewParam("storage/driver").String()
	StorageDSN     = localParams.NewParam("storage/dsn").String()

	LedgerStartingUSD = localParams.NewParam("ledger/starting-usd").Decimal()
	LedgerStartingRUB = localParams.NewParam("ledger/starting-rub").Decimal()

	RatesUSDToRUB = localParams.NewParam("rates/usd-rub").Decimal()
	RatesRUBToUSD = localParams.NewParam("rates/rub-usd").Decimal()

	ClientAPI = localParams.NewParam("client/api").String()
)

// Log represents logger specific options
type Log struct {
	Level config.StringVal
	Mode  config.StringVal
}

// HTTP represents api server settings
type HTTP struct {
	Port config.IntVal
}

// Storage represents storage settings
type Storage struct {
	Enabled config.BoolVal
	Driver  config.StringVal
	DSN     config.StringVal
}

// Ledger represents starting grant of new accounts
type Ledger struct {
	StartingUSD config.DecimalVal
	StartingRUB config.DecimalVal
}

// Rates represents the conversion table
type Rates struct {
	USDToRUB config.DecimalVal
	RUBToUSD config.DecimalVal
}

// Client represents settings of the api client
type Client struct {
	API config.StringVal
}

// AppConfig is a toplevel config structure
type AppConfig struct {
	Log     Log
	HTTP    HTTP
	Storage Storage
	Ledger  Ledger
	Rates   Rates
	Client  Client
}

// LoadAppConfig will load and initialize app config structure
func LoadAppConfig() *AppConfig {
	cfg, err := configBuilder.LoadConfig()
	if err != nil {
		panic(err)
	}

	appCfg := AppConfig{
		Log: Log{
			Level: cfg.StringParam(LogLevel),
			Mode:  cfg.StringParam(LogMode),
		},
		HTTP: HTTP{
			Port: cfg.IntParam(HTTPPort),
		},
		Storage: Storage{
			Enabled: cfg.BoolParam(StorageEnabled),
			Driver:  cfg.StringParam(StorageDriver),
			DSN:     cfg.StringParam(StorageDSN),
		},
		Ledger: Ledger{
			StartingUSD: cfg.DecimalParam(LedgerStartingUSD),
			StartingRUB: cfg.DecimalParam(LedgerStartingRUB),
		},
		Rates: Rates{
			USDToRUB: cfg.DecimalParam(RatesUSDToRUB),
			RUBToUSD: cfg.DecimalParam(RatesRUBToUSD),
		},
		Client: Client{
			API: cfg.StringParam(ClientAPI),
		},
	}

	return &appCfg
}
