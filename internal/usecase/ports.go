package usecase

import (
	"context"
	"math/big"

	"github.com/blockverse-dao/bvdeploy/internal/domain/config"
	"github.com/blockverse-dao/bvdeploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
)

// AccountProvider lists the signing accounts configured for the selected network
type AccountProvider interface {
	ListSigners(ctx context.Context) ([]*models.Signer, error)
}

// NetworkProvider answers chain queries for the selected network
type NetworkProvider interface {
	GetBalance(ctx context.Context, address common.Address) (*big.Int, error)
	// AwaitConfirmation blocks until the transaction is mined or ctx is done
	AwaitConfirmation(ctx context.Context, pending *models.PendingDeployment) (*models.Receipt, error)
	CodeExists(ctx context.Context, address common.Address) (bool, error)
}

// ArtifactRepository loads compiled artifacts by name
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, name string) (*models.Artifact, error)
}

// ArtifactRegistry resolves an artifact name to something that can deploy it
type ArtifactRegistry interface {
	ResolveFactory(ctx context.Context, name string) (DeploymentFactory, error)
}

// DeploymentFactory deploys one artifact and binds to deployed instances of it
type DeploymentFactory interface {
	Artifact() *models.Artifact
	// Deploy submits the deployment transaction and returns without waiting for it
	Deploy(ctx context.Context, signer *models.Signer, args ...any) (*models.PendingDeployment, error)
	At(address common.Address) ContractCaller
}

// ContractCaller issues read-only calls against a deployed contract
type ContractCaller interface {
	Address() common.Address
	Call(ctx context.Context, method string, args ...any) ([]any, error)
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// ChainIDFetcher asks an RPC endpoint for its chain ID
type ChainIDFetcher interface {
	FetchChainID(ctx context.Context, rpcURL string) (uint64, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    ExecutionStage
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// ExecutionStage represents a stage in the deployment workflow
type ExecutionStage string

const (
	StageSigner     ExecutionStage = "Signer"
	StageBalance    ExecutionStage = "Balance"
	StageResolving  ExecutionStage = "Resolving"
	StageSubmitting ExecutionStage = "Submitting"
	StageConfirming ExecutionStage = "Confirming"
	StageVerifying  ExecutionStage = "Verifying"
	StageCompleted  ExecutionStage = "Completed"
)
