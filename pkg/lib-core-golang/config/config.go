package config

import (
	"context"
	"flag"
	"os"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/diag"
)

const (
	appEnvVar = "APP_ENV"

	facetVar = "APP_ENV_FACET"
)

var logger = diag.CreateLogger()

// AppEnv represents app env
type AppEnv struct {
	// ServiceName is a name of a current service
	ServiceName string

	// Name is a env name. By default taken from APP_ENV. Corresponds to NODE_ENV
	Name string

	// Facet is a env facet like preprod (for production). By default taken from APP_ENV_FACET
	Facet string
}

type appEnvCfg struct {
	lookupFlag func(name string) *flag.Flag
}

type appEnvOpt func(*appEnvCfg)

func withLookupFlag(lookupFlag func(name string) *flag.Flag) appEnvOpt {
	return func(cfg *appEnvCfg) {
		cfg.lookupFlag = lookupFlag
	}
}

// NewAppEnv creates a new instance of the app env from os env
// Will use "dev" by default and "test" when running tests
func NewAppEnv(serviceName string, opts ...appEnvOpt) AppEnv {
	cfg := appEnvCfg{
		lookupFlag: flag.Lookup,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	appEnv := os.Getenv(appEnvVar)
	if appEnv == "" {
		if v := cfg.lookupFlag("test.v"); v == nil {
			appEnv = "dev"
		} else {
			appEnv = "test"
		}
	}
	return AppEnv{
		Name:        appEnv,
		Facet:       os.Getenv(facetVar),
		ServiceName: serviceName,
	}
}

// Source is an abstraction to read params
type Source interface {
	GetParameters(ctx context.Context, params []param) (map[param]interface{}, error)
}

// ServiceConfig gives access to loaded param values
type ServiceConfig interface {
	StringParam(p StringParam) StringVal
	IntParam(p IntParam) IntVal
	BoolParam(p BoolParam) BoolVal
	DecimalParam(p DecimalParam) DecimalVal
}

type serviceConfig struct {
	values map[param]paramValue
}

func (cfg *serviceConfig) lookup(p param) paramValue {
	val, ok := cfg.values[p]
	if !ok {
		panic(errors.Errorf("Parameter %v was not loaded", p))
	}
	return val
}

func (cfg *serviceConfig) StringParam(p StringParam) StringVal {
	return cfg.lookup(p).(StringVal)
}

func (cfg *serviceConfig) IntParam(p IntParam) IntVal {
	return cfg.lookup(p).(IntVal)
}

func (cfg *serviceConfig) BoolParam(p BoolParam) BoolVal {
	return cfg.lookup(p).(BoolVal)
}

func (cfg *serviceConfig) DecimalParam(p DecimalParam) DecimalVal {
	return cfg.lookup(p).(DecimalVal)
}

type sourceBinding struct {
	params []param
	source Source
}

type loadCfg struct {
	bindings []sourceBinding
}

// ServiceConfigOpt is an option used to load the config
type ServiceConfigOpt func(cfg *loadCfg)

// WithSource binds params to a source they should be loaded from
func WithSource(binding sourceBinding) ServiceConfigOpt {
	return func(cfg *loadCfg) {
		cfg.bindings = append(cfg.bindings, binding)
	}
}

// Load will fetch values of all bound params. Every param must be resolved
// by its source, otherwise an error is returned
func Load(opts ...ServiceConfigOpt) (ServiceConfig, error) {
	cfg := loadCfg{}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx := diag.ContextWithRequestID(context.Background(), uuid.NewV4().String())
	logger.Info(ctx, "Loading config values")

	result := &serviceConfig{values: map[param]paramValue{}}
	for _, binding := range cfg.bindings {
		values, err := binding.source.GetParameters(ctx, binding.params)
		if err != nil {
			return nil, errors.Wrap(err, "Failed to fetch params")
		}
		logger.WithData(diag.MsgData{
			"params": binding.params,
		}).Debug(ctx, "Fetched %v (of %v requested) values", len(values), len(binding.params))
		for _, p := range binding.params {
			rawValue, ok := values[p]
			if !ok {
				return nil, errors.Errorf("Parameter %v not found", p)
			}
			value := p.emptyValue()
			if err := value.setValue(rawValue); err != nil {
				return nil, errors.Wrapf(err, "Failed to set parameter %v value", p)
			}
			result.values[p] = value
		}
	}
	return result, nil
}
