package config

import (
	coreCfg "github.com/evgeny-myasishchev/ledger.accounts/pkg/lib-core-golang/config"
)

// Do not change vars below at runtime
var (
	LogLevel = "log/level"

	StorageDriver = "storage/driver"
	StorageFile   = "storage/file"
	StorageDSN    = "storage/data-source-name"
)

var paramPaths = []string{
	LogLevel,
	StorageDriver,
	StorageFile,
	StorageDSN,
}

// Log represents logger specific options
type Log struct {
	Level string
}

// Storage represents storage settings
// Driver is either "file" (flat file snapshots, File is a snapshot path)
// or "sqlite3" (DSN is a data source name)
type Storage struct {
	Driver string
	File   string
	DSN    string
}

// Config is a toplevel config structure
type Config struct {
	Log     Log
	Storage Storage
}

// Load will load and initialize config from a given source
func Load(source coreCfg.Source) (*Config, error) {
	values, err := coreCfg.Load(source, paramPaths)
	if err != nil {
		return nil, err
	}

	cfg := Config{
		Log: Log{
			Level: values.StringOr(LogLevel, "info"),
		},
		Storage: Storage{
			Driver: values.String(StorageDriver),
			File:   values.StringOr(StorageFile, "bank_data.csv"),
			DSN:    values.StringOr(StorageDSN, ""),
		},
	}
	return &cfg, nil
}
