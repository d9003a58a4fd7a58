package config

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/bxcodec/faker/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSource struct {
	err        error
	parameters map[param]interface{}
	mock.Mock
}

func (s *mockSource) GetParameters(ctx context.Context, params []param) (map[param]interface{}, error) {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(params)
		return args.Get(0).(map[param]interface{}), args.Error(1)
	}
	return s.parameters, s.err
}

func TestNewAppEnv(t *testing.T) {
	type args struct {
		serviceName string
		opts        []appEnvOpt
	}
	type testCase struct {
		name string
		args args
		want AppEnv
	}
	serviceName := "svc-" + faker.Word()
	tests := []func() testCase{
		func() testCase {
			return testCase{
				name: "default",
				args: args{
					serviceName: serviceName,
					opts: []appEnvOpt{withLookupFlag(func(name string) *flag.Flag {
						return nil
					})},
				},
				want: AppEnv{Name: "dev", ServiceName: serviceName},
			}
		},
		func() testCase {
			return testCase{
				name: "test",
				args: args{serviceName: serviceName},
				want: AppEnv{Name: "test", ServiceName: serviceName},
			}
		},
		func() testCase {
			appEnv := fmt.Sprint("app-env-", faker.Word())
			appEnvFacet := fmt.Sprint("app-env-facet", faker.Word())
			if err := os.Setenv(appEnvVar, appEnv); err != nil {
				panic(err)
			}
			if err := os.Setenv(facetVar, appEnvFacet); err != nil {
				panic(err)
			}
			return testCase{
				name: "from env",
				args: args{serviceName: serviceName},
				want: AppEnv{Name: appEnv, ServiceName: serviceName, Facet: appEnvFacet},
			}
		},
	}
	for _, ttFn := range tests {
		tt := ttFn()
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				assert.NoError(t, os.Unsetenv(appEnvVar))
				assert.NoError(t, os.Unsetenv(facetVar))
			}()
			got := NewAppEnv(tt.args.serviceName, tt.args.opts...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	rand.Seed(time.Now().UnixNano())
	type args struct {
		sources []sourceBinding
	}
	type testCase struct {
		name   string
		args   args
		assert func(t *testing.T, cfg ServiceConfig, err error)
	}
	tests := []func() testCase{
		func() testCase {
			intParam1 := newIntParam("int1-param-"+faker.Word(), "")
			intParam2 := newIntParam("int2-param-"+faker.Word(), "")
			strParam1 := newStringParam("str1-param-"+faker.Word(), "")
			strParam2 := newStringParam("str2-param-"+faker.Word(), "")
			boolParam1 := newBoolParam("bool1-param-"+faker.Word(), "")
			decParam2 := newDecimalParam("dec2-param-"+faker.Word(), "")

			initialParams1 := map[param]interface{}{
				intParam1:  rand.Int(),
				strParam1:  faker.Word(),
				boolParam1: rand.Intn(2) == 1,
			}
			initialParams2 := map[param]interface{}{
				intParam2: rand.Int(),
				strParam2: faker.Word(),
				decParam2: "0.01",
			}
			source1 := sourceBinding{
				params: []param{intParam1, strParam1, boolParam1},
				source: &mockSource{parameters: initialParams1},
			}
			source2 := sourceBinding{
				params: []param{intParam2, strParam2, decParam2},
				source: &mockSource{parameters: initialParams2},
			}

			return testCase{
				name: "load and init params",
				args: args{
					sources: []sourceBinding{source1, source2},
				},
				assert: func(t *testing.T, cfg ServiceConfig, err error) {
					if !assert.NoError(t, err) {
						return
					}
					assert.Equal(t, initialParams1[intParam1], cfg.IntParam(intParam1).Value())
					assert.Equal(t, initialParams1[strParam1], cfg.StringParam(strParam1).Value())
					assert.Equal(t, initialParams1[boolParam1], cfg.BoolParam(boolParam1).Value())

					assert.Equal(t, initialParams2[intParam2], cfg.IntParam(intParam2).Value())
					assert.Equal(t, initialParams2[strParam2], cfg.StringParam(strParam2).Value())
					assert.Equal(t, "0.01", cfg.DecimalParam(decParam2).Value().String())
				},
			}
		},
		func() testCase {
			intParam1 := newIntParam("int1-param-"+faker.Word(), "")
			strParam1 := newStringParam("str1-param-"+faker.Word(), "")

			source1 := sourceBinding{
				params: []param{intParam1, strParam1},
				source: &mockSource{parameters: map[param]interface{}{
					intParam1: rand.Int(),
				}},
			}

			return testCase{
				name: "fail if requested params are missing",
				args: args{sources: []sourceBinding{source1}},
				assert: func(t *testing.T, cfg ServiceConfig, err error) {
					if !assert.Error(t, err) {
						return
					}
					assert.EqualError(t, err, fmt.Sprintf("Parameter %v not found", strParam1))
				},
			}
		},
		func() testCase {
			intParam1 := newIntParam("int1-param-"+faker.Word(), "")

			badInt := faker.Word()
			source1 := sourceBinding{
				params: []param{intParam1},
				source: &mockSource{parameters: map[param]interface{}{
					intParam1: badInt,
				}},
			}

			return testCase{
				name: "fail if some params are of a bad type",
				args: args{sources: []sourceBinding{source1}},
				assert: func(t *testing.T, cfg ServiceConfig, err error) {
					if !assert.Error(t, err) {
						return
					}
					assert.EqualError(t, err, fmt.Sprintf("Failed to set parameter %v value: Expected int value but got: %v(%[2]T)", intParam1, badInt))
				},
			}
		},
		func() testCase {
			strParam1 := newStringParam("str1-param-"+faker.Word(), "")

			sourceErr := fmt.Errorf("Failed to get params: %v", faker.Word())
			source1 := sourceBinding{
				params: []param{strParam1},
				source: &mockSource{err: sourceErr},
			}

			return testCase{
				name: "fail if source failed",
				args: args{sources: []sourceBinding{source1}},
				assert: func(t *testing.T, cfg ServiceConfig, err error) {
					if !assert.Error(t, err) {
						return
					}
					assert.EqualError(t, err, "Failed to fetch params: "+sourceErr.Error())
				},
			}
		},
		func() testCase {
			strParam1 := newStringParam("str1-param-"+faker.Word(), "")

			return testCase{
				name: "panic if getting not existing param",
				args: args{sources: []sourceBinding{}},
				assert: func(t *testing.T, cfg ServiceConfig, err error) {
					if !assert.NoError(t, err) {
						return
					}
					assert.Panics(t, func() { cfg.StringParam(strParam1) })
				},
			}
		},
	}
	for _, ttFn := range tests {
		tt := ttFn()
		t.Run(tt.name, func(t *testing.T) {
			opts := make([]ServiceConfigOpt, 0, len(tt.args.sources))
			for _, source := range tt.args.sources {
				opts = append(opts, WithSource(source))
			}
			cfg, err := Load(opts...)
			tt.assert(t, cfg, err)
		})
	}
}
