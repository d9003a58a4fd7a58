package config

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bxcodec/faker/v3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestLocalSource_NewLocalSource(t *testing.T) {
	src, err := NewLocalSource()
	if !assert.NoError(t, err) {
		return
	}
	var expectedDir string
	if _, file, _, ok := runtime.Caller(0); ok {
		expectedDir = filepath.Join(file, "..", "..", "..", "..", "config")
	} else {
		panic("Can not get project root")
	}
	assert.Equal(t, expectedDir, src.(*localSource).dir)
}

func TestLocalSource_GetParameters(t *testing.T) {
	type args struct {
		params []param
	}
	type testCase struct {
		name  string
		opts  []LocalOpt
		args  args
		want  func(t *testing.T, params map[param]interface{}, err error)
		after func()
	}

	configDir, err := ioutil.TempDir("", "local-source-test")
	if !assert.NoError(t, err) {
		return
	}
	defer os.RemoveAll(configDir)

	defaultCfg := map[string]interface{}{
		"http": map[string]interface{}{
			"port": "8080",
		},
		"ledger": map[string]interface{}{
			"starting-usd": "100",
			"starting-rub": "10000",
		},
	}
	productionCfg := map[string]interface{}{
		"http": map[string]interface{}{
			"port": "80",
		},
	}

	writeConfig := func(name string, value interface{}) {
		buffer, err := json.Marshal(value)
		if err != nil {
			panic(err)
		}
		if err := ioutil.WriteFile(path.Join(configDir, name), buffer, os.ModePerm); err != nil {
			panic(err)
		}
	}
	writeConfig("default.json", defaultCfg)
	writeConfig("production.json", productionCfg)

	portParam := paramImpl{paramKey: "http/port"}
	usdParam := paramImpl{paramKey: "ledger/starting-usd"}
	rubParam := paramImpl{paramKey: "ledger/starting-rub"}

	tests := []func() testCase{
		func() testCase {
			return testCase{
				name: "default config",
				opts: []LocalOpt{LocalOpts.WithDir(configDir)},
				args: args{params: []param{portParam, usdParam, rubParam}},
				want: func(t *testing.T, got map[param]interface{}, err error) {
					if !assert.NoError(t, err) {
						return
					}
					assert.Equal(t, map[param]interface{}{
						portParam: "8080",
						usdParam:  "100",
						rubParam:  "10000",
					}, got)
				},
			}
		},
		func() testCase {
			serviceName := "svc-" + faker.Word()
			svcParam := paramImpl{paramSvc: serviceName, paramKey: "http/port"}
			return testCase{
				name: "ignore default service",
				opts: []LocalOpt{
					LocalOpts.WithDir(configDir),
					LocalOpts.WithAppEnv(AppEnv{ServiceName: serviceName}),
					LocalOpts.WithIgnoreDefaultService(),
				},
				args: args{params: []param{svcParam}},
				want: func(t *testing.T, got map[param]interface{}, err error) {
					if !assert.NoError(t, err) {
						return
					}
					assert.Equal(t, map[param]interface{}{svcParam: "8080"}, got)
				},
			}
		},
		func() testCase {
			return testCase{
				name: "env specific config",
				opts: []LocalOpt{
					LocalOpts.WithDir(configDir),
					LocalOpts.WithAppEnv(AppEnv{Name: "production"}),
				},
				args: args{params: []param{portParam, usdParam}},
				want: func(t *testing.T, got map[param]interface{}, err error) {
					if !assert.NoError(t, err) {
						return
					}
					assert.Equal(t, map[param]interface{}{
						portParam: "80",
						usdParam:  "100",
					}, got)
				},
			}
		},
		func() testCase {
			noKey := paramImpl{paramKey: "http/port/deeper"}
			return testCase{
				name: "no error if no such key",
				opts: []LocalOpt{LocalOpts.WithDir(configDir)},
				args: args{params: []param{noKey, paramImpl{paramKey: "no-key"}, usdParam}},
				want: func(t *testing.T, got map[param]interface{}, err error) {
					if !assert.NoError(t, err) {
						return
					}
					assert.Equal(t, map[param]interface{}{usdParam: "100"}, got)
				},
			}
		},
		func() testCase {
			return testCase{
				name: "error if no default config",
				opts: []LocalOpt{LocalOpts.WithDir(configDir + "-no-config")},
				args: args{params: []param{portParam}},
				want: func(t *testing.T, got map[param]interface{}, err error) {
					if !assert.Error(t, err) {
						return
					}
					assert.True(t, os.IsNotExist(errors.Cause(err)))
				},
			}
		},
		func() testCase {
			portEnvName := "TEST_HTTP_PORT_" + strings.ToUpper(faker.Word())
			writeConfig("custom-environment-variables.json", map[string]interface{}{
				"http": map[string]interface{}{"port": portEnvName},
			})
			if err := os.Setenv(portEnvName, "9090"); err != nil {
				panic(err)
			}
			return testCase{
				name: "env overrides",
				opts: []LocalOpt{LocalOpts.WithDir(configDir)},
				args: args{params: []param{portParam, usdParam}},
				want: func(t *testing.T, got map[param]interface{}, err error) {
					if !assert.NoError(t, err) {
						return
					}
					assert.Equal(t, map[param]interface{}{
						portParam: "9090",
						usdParam:  "100",
					}, got)
				},
				after: func() {
					os.Remove(path.Join(configDir, "custom-environment-variables.json"))
					os.Unsetenv(portEnvName)
				},
			}
		},
	}
	for _, ttFn := range tests {
		tt := ttFn()
		t.Run(tt.name, func(t *testing.T) {
			if tt.after != nil {
				defer tt.after()
			}
			source, err := NewLocalSource(tt.opts...)
			if !assert.NoError(t, err) {
				return
			}
			params, err := source.GetParameters(context.TODO(), tt.args.params)
			tt.want(t, params, err)
		})
	}
}
