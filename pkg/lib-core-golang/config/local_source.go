package config

import (
	"encoding/json"
	"os"
	"path"
	"strings"
)

type localSource struct {
	dir          string
	configFiles  []string
	envOverrides map[string]interface{}
}

func pick(obj interface{}, paramPath string) interface{} {
	parts := strings.Split(paramPath, "/")
	paramVal := obj
	for _, part := range parts {
		var ok bool
		if paramVal, ok = paramVal.(map[string]interface{})[part]; !ok {
			paramVal = nil
			break
		}
	}
	return paramVal
}

func (s *localSource) GetParameters(paths []string) (map[string]interface{}, error) {
	values := map[string]interface{}{}

	for _, configFile := range s.configFiles {
		buffer, err := os.ReadFile(path.Join(s.dir, configFile))
		if err != nil {
			// default.json is mandatory, env specific files are not
			if configFile != "default.json" {
				continue
			}
			return nil, err
		}
		var configData map[string]interface{}
		if err := json.Unmarshal(buffer, &configData); err != nil {
			return nil, err
		}

		if overrides, ok := configData["envOverrides"].(map[string]interface{}); ok {
			s.envOverrides = overrides
		}

		for _, paramPath := range paths {
			paramVal := pick(configData, paramPath)
			if paramVal != nil {
				values[paramPath] = paramVal
			}
		}
	}

	if s.envOverrides != nil {
		for _, paramPath := range paths {
			envName := pick(s.envOverrides, paramPath)
			if envName == nil {
				continue
			}
			if envVal := os.Getenv(envName.(string)); envVal != "" {
				values[paramPath] = envVal
			}
		}
	}

	return values, nil
}

// LocalSourceOpt is an option of a local source
type LocalSourceOpt func(s *localSource)

type localOpts struct{}

// LocalOpts is a set of options of a local source
var LocalOpts localOpts

// WithDir will use a custom config dir
func (localOpts) WithDir(dir string) LocalSourceOpt {
	return func(s *localSource) {
		s.dir = dir
	}
}

// WithAppEnv will pick env specific config file
func (localOpts) WithAppEnv(appEnv AppEnv) LocalSourceOpt {
	return func(s *localSource) {
		s.configFiles = []string{"default.json", appEnv.Name + ".json"}
	}
}

// NewLocalSource creates a source that is reading params
// from json files in a local config dir
func NewLocalSource(opts ...LocalSourceOpt) Source {
	source := &localSource{
		dir:         "config",
		configFiles: []string{"default.json"},
	}
	for _, opt := range opts {
		opt(source)
	}
	return source
}
