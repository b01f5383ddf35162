package config

import (
	"flag"
	"os"

	"github.com/evgeny-myasishchev/ledger.accounts/pkg/lib-core-golang/diag"
)

const (
	appEnvVar = "APP_ENV"
)

var logger = diag.CreateLogger()

// AppEnv represents app env
type AppEnv struct {
	// ServiceName is a name of a current service
	ServiceName string

	// Name is a env name. By default taken from APP_ENV. Corresponds to NODE_ENV
	Name string
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
// Will use "dev" by default
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
		ServiceName: serviceName,
	}
}

// Source is an abstraction to read param values
type Source interface {
	GetParameters(paths []string) (map[string]interface{}, error)
}

// Values holds loaded param values keyed by param path
type Values struct {
	values map[string]interface{}
}

// String returns a string value of a param. Panics if param
// is missing or is not a string. Config params are defined statically
// so a missing param is a programmer error
func (v *Values) String(path string) string {
	val, ok := v.values[path]
	if !ok {
		panic("Parameter not found: " + path)
	}
	strVal, ok := val.(string)
	if !ok {
		panic("Parameter is not a string: " + path)
	}
	return strVal
}

// StringOr returns a string value of a param or a default if missing
func (v *Values) StringOr(path string, defaultVal string) string {
	val, ok := v.values[path]
	if !ok {
		return defaultVal
	}
	if strVal, ok := val.(string); ok {
		return strVal
	}
	return defaultVal
}

// Load fetches given param paths from the source
func Load(source Source, paths []string) (*Values, error) {
	values, err := source.GetParameters(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug(nil, "Fetched %v (of %v requested) config values", len(values), len(paths))
	return &Values{values: values}, nil
}
