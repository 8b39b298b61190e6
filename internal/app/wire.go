//go:build wireinject
// +build wireinject

package app

import (
	"github.com/blockverse-dao/bvdeploy/internal/adapters"
	"github.com/blockverse-dao/bvdeploy/internal/config"
	"github.com/blockverse-dao/bvdeploy/internal/logging"
	"github.com/blockverse-dao/bvdeploy/internal/usecase"
	"github.com/google/wire"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance. The cleanup closes the RPC connection.
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, func(), error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployContract,
		usecase.NewInspectContract,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil, nil
}
