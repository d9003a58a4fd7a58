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

	"github.com/pkg/errors"
)

const defaultConfigFile = "default.json"

type localSource struct {
	dir                  string
	configFiles          []string
	envOverrides         map[string]interface{}
	defaultService       string
	ignoreDefaultService bool
}

func pickPath(obj interface{}, path string) interface{} {
	paramVal := obj
	for _, part := range strings.Split(path, "/") {
		node, ok := paramVal.(map[string]interface{})
		if !ok {
			return nil
		}
		if paramVal, ok = node[part]; !ok {
			return nil
		}
	}
	return paramVal
}

func (s *localSource) paramPath(p param) string {
	if p.service() == "" {
		return p.key()
	}
	if s.ignoreDefaultService && p.service() == s.defaultService {
		return p.key()
	}
	return p.service() + "/" + p.key()
}

func (s *localSource) GetParameters(ctx context.Context, params []param) (map[param]interface{}, error) {
	values := map[param]interface{}{}

	for _, configFile := range s.configFiles {
		buffer, err := ioutil.ReadFile(path.Join(s.dir, configFile))
		if err != nil {
			if configFile != defaultConfigFile {
				continue
			}
			return nil, errors.Wrapf(err, "Failed to read %v", configFile)
		}
		logger.Debug(ctx, "Reading config file: %v", configFile)
		var configData map[string]interface{}
		if err := json.Unmarshal(buffer, &configData); err != nil {
			return nil, errors.Wrapf(err, "Failed to parse %v", configFile)
		}

		for _, p := range params {
			if paramVal := pickPath(configData, s.paramPath(p)); paramVal != nil {
				values[p] = paramVal
			}
		}
	}

	if s.envOverrides != nil {
		for _, p := range params {
			envName, ok := pickPath(s.envOverrides, s.paramPath(p)).(string)
			if !ok {
				continue
			}
			if envVal := os.Getenv(envName); envVal != "" {
				values[p] = envVal
			}
		}
	}

	return values, nil
}

// LocalOpt is an option of a local config source
type LocalOpt func(s *localSource)

// LocalOpts are options of a local source
var LocalOpts = struct {
	// WithDir option to set local dir to load config from
	WithDir func(dir string) LocalOpt

	// WithIgnoreDefaultService option to skip default service when building param path
	// so params for the default service will be resolved from a root of a config
	WithIgnoreDefaultService func() LocalOpt

	// WithAppEnv option will sent the app env
	WithAppEnv func(appEnv AppEnv) LocalOpt
}{
	WithDir: func(dir string) LocalOpt {
		return func(s *localSource) {
			s.dir = dir
		}
	},
	WithIgnoreDefaultService: func() LocalOpt {
		return func(s *localSource) {
			s.ignoreDefaultService = true
		}
	},
	WithAppEnv: func(appEnv AppEnv) LocalOpt {
		return func(s *localSource) {
			s.configFiles = append(s.configFiles, appEnv.Name+".json")
			s.defaultService = appEnv.ServiceName
			if appEnv.Facet != "" {
				s.configFiles = append(s.configFiles, appEnv.Name+"-"+appEnv.Facet+".json")
			}
		}
	},
}

// NewLocalSource creates a source that reads params from a local fs.
// It is similar to node-config, suports json and custom-environment-variables.json
func NewLocalSource(opts ...LocalOpt) (Source, error) {
	source := &localSource{
		configFiles: []string{defaultConfigFile},
	}

	if _, file, _, ok := runtime.Caller(0); ok {
		source.dir = filepath.Join(file, "..", "..", "..", "..", "config")
	} else {
		panic("Can not resolve config dir")
	}

	for _, opt := range opts {
		opt(source)
	}

	overridesFilePath := path.Join(source.dir, "custom-environment-variables.json")
	if overridesBuffer, err := ioutil.ReadFile(overridesFilePath); err == nil {
		envOverrides := map[string]interface{}{}
		if err := json.Unmarshal(overridesBuffer, &envOverrides); err != nil {
			return nil, errors.Wrap(err, "Failed to parse env overrides")
		}
		source.envOverrides = envOverrides
	}

	return source, nil
}
