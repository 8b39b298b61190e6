package usecase

import (
	"context"
	"fmt"

	"github.com/blockverse-dao/bvdeploy/internal/domain"
	"github.com/blockverse-dao/bvdeploy/internal/domain/config"
	"github.com/ethereum/go-ethereum/common"
)

// InspectContractParams contains parameters for inspecting a deployed contract
type InspectContractParams struct {
	Address  string
	Artifact string
	Queries  []ReadQuery
}

// InspectContractResult contains the state read from a deployed contract
type InspectContractResult struct {
	Network  *config.Network `json:"network"`
	Artifact string          `json:"artifact"`
	Address  common.Address  `json:"address"`
	Details  []ReadResult    `json:"details"`
}

// InspectContract runs the verification queries against an existing deployment
type InspectContract struct {
	config    *config.RuntimeConfig
	network   NetworkProvider
	artifacts ArtifactRegistry
	progress  ProgressSink
}

// NewInspectContract creates a new InspectContract use case
func NewInspectContract(cfg *config.RuntimeConfig, network NetworkProvider, artifacts ArtifactRegistry, progress ProgressSink) *InspectContract {
	return &InspectContract{
		config:    cfg,
		network:   network,
		artifacts: artifacts,
		progress:  progress,
	}
}

// Run executes the use case
func (uc *InspectContract) Run(ctx context.Context, params InspectContractParams) (*InspectContractResult, error) {
	if !common.IsHexAddress(params.Address) {
		return nil, fmt.Errorf("invalid address: %q", params.Address)
	}
	address := common.HexToAddress(params.Address)

	network, err := uc.config.SelectedNetwork()
	if err != nil {
		return nil, err
	}

	if params.Artifact == "" {
		params.Artifact = uc.config.Artifact
	}
	if params.Queries == nil {
		params.Queries = ProjectQueries
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageResolving,
		Message: "Resolving artifact " + params.Artifact,
	})
	factory, err := uc.artifacts.ResolveFactory(ctx, params.Artifact)
	if err != nil {
		return nil, domain.NewStepError(domain.ErrArtifactNotFound, err)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageVerifying,
		Message: "Reading contract state",
		Spinner: true,
	})
	exists, err := uc.network.CodeExists(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to check code at %s: %w", address.Hex(), err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s on %s", domain.ErrNoCode, address.Hex(), network.DisplayName())
	}

	details, err := runReadQueries(ctx, factory.At(address), params.Queries)
	if err != nil {
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageCompleted,
		Message: "Contract state loaded",
	})

	return &InspectContractResult{
		Network:  network,
		Artifact: factory.Artifact().FullyQualifiedName(),
		Address:  address,
		Details:  details,
	}, nil
}
