package app

import (
	"github.com/blockverse-dao/bvdeploy/internal/domain/config"
	"github.com/blockverse-dao/bvdeploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	DeployContract  *usecase.DeployContract
	InspectContract *usecase.InspectContract
	ListNetworks    *usecase.ListNetworks
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	deployContract *usecase.DeployContract,
	inspectContract *usecase.InspectContract,
	listNetworks *usecase.ListNetworks,
) (*App, error) {
	return &App{
		Config:          cfg,
		DeployContract:  deployContract,
		InspectContract: inspectContract,
		ListNetworks:    listNetworks,
	}, nil
}
