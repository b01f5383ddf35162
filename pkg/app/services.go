package app

import (
	"database/sql"

	"github.com/pkg/errors"
	"go.uber.org/dig"

	"github.com/evgeny-myasishchev/ledger.accounts/config"
	"github.com/evgeny-myasishchev/ledger.accounts/pkg/dal"
	"github.com/evgeny-myasishchev/ledger.accounts/pkg/ledger"
)

// Injector is a function that will inject desired services
// to a target function
type Injector func(function interface{}) error

// BootstrapServices setup di container with all app services
func BootstrapServices(appCfg *config.Config) Injector {
	c := dig.New()

	c.Provide(func() (*sql.DB, error) {
		return sql.Open("sqlite3", appCfg.Storage.DSN)
	})

	c.Provide(func(db *sql.DB) (dal.Storage, error) {
		switch appCfg.Storage.Driver {
		case "file":
			return dal.NewCSVStorage(dal.WithCSVPath(appCfg.Storage.File))
		case "sqlite3":
			return dal.NewSQLStorage(dal.WithSQLDb(db))
		default:
			return nil, errors.Errorf("Unknown storage driver: %v", appCfg.Storage.Driver)
		}
	})

	c.Provide(func() *ledger.Ledger {
		return ledger.New()
	})

	return func(function interface{}) error {
		return c.Invoke(function)
	}
}
