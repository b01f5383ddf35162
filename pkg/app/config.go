package app

import (
	"github.com/evgeny-myasishchev/ledger.accounts/config"
	coreCfg "github.com/evgeny-myasishchev/ledger.accounts/pkg/lib-core-golang/config"
	"github.com/evgeny-myasishchev/ledger.accounts/pkg/version"
)

// LoadConfig will load and initialize config
func LoadConfig() (*config.Config, error) {
	appEnv := coreCfg.NewAppEnv(version.AppName)

	localSource := coreCfg.NewLocalSource(
		coreCfg.LocalOpts.WithAppEnv(appEnv),
	)

	return config.Load(localSource)
}
