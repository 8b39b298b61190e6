package adapters

import (
	"github.com/blockverse-dao/bvdeploy/internal/adapters/accounts"
	"github.com/blockverse-dao/bvdeploy/internal/adapters/artifacts"
	"github.com/blockverse-dao/bvdeploy/internal/adapters/blockchain"
	"github.com/blockverse-dao/bvdeploy/internal/config"
	"github.com/blockverse-dao/bvdeploy/internal/usecase"
	"github.com/google/wire"
)

// AccountsSet provides signing accounts
var AccountsSet = wire.NewSet(
	accounts.NewProvider,
	wire.Bind(new(usecase.AccountProvider), new(*accounts.Provider)),
)

// ArtifactsSet provides compiled artifact lookup
var ArtifactsSet = wire.NewSet(
	artifacts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Repository)),
)

// BlockchainSet provides RPC-backed implementations
var BlockchainSet = wire.NewSet(
	blockchain.ProvideClient,
	wire.Bind(new(usecase.NetworkProvider), new(*blockchain.Client)),

	blockchain.NewFactoryResolver,
	wire.Bind(new(usecase.ArtifactRegistry), new(*blockchain.FactoryResolver)),

	blockchain.NewChainIDProbe,
	wire.Bind(new(usecase.ChainIDFetcher), new(*blockchain.ChainIDProbe)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideNetworkResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*config.NetworkResolver)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	AccountsSet,
	ArtifactsSet,
	BlockchainSet,
	ConfigSet,
)
