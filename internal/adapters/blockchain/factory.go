package blockchain

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/blockverse-dao/bvdeploy/internal/domain/models"
	"github.com/blockverse-dao/bvdeploy/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// FactoryResolver turns compiled artifacts into deployment factories bound to the network client
type FactoryResolver struct {
	artifacts usecase.ArtifactRepository
	client    *Client
	log       *slog.Logger
}

// NewFactoryResolver creates a new factory resolver
func NewFactoryResolver(artifacts usecase.ArtifactRepository, client *Client, log *slog.Logger) *FactoryResolver {
	return &FactoryResolver{
		artifacts: artifacts,
		client:    client,
		log:       log.With("component", "factory"),
	}
}

// ResolveFactory loads the named artifact and checks that it can be deployed
func (r *FactoryResolver) ResolveFactory(ctx context.Context, name string) (usecase.DeploymentFactory, error) {
	artifact, err := r.artifacts.GetArtifact(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := artifact.Deployable(); err != nil {
		return nil, err
	}

	parsed, err := abi.JSON(bytes.NewReader(artifact.ABI))
	if err != nil {
		return nil, fmt.Errorf("invalid ABI in %s: %w", artifact.FullyQualifiedName(), err)
	}

	r.log.Debug("resolved artifact", "name", artifact.FullyQualifiedName(), "path", artifact.Path, "format", artifact.Format)
	return &Factory{
		artifact: artifact,
		abi:      parsed,
		client:   r.client,
	}, nil
}

// Factory deploys one artifact
type Factory struct {
	artifact *models.Artifact
	abi      abi.ABI
	client   *Client
}

// Artifact returns the artifact this factory deploys
func (f *Factory) Artifact() *models.Artifact {
	return f.artifact
}

// Deploy signs and sends the creation transaction without waiting for it to be mined
func (f *Factory) Deploy(ctx context.Context, signer *models.Signer, args ...any) (*models.PendingDeployment, error) {
	if signer.NewTransactor == nil {
		return nil, fmt.Errorf("signer %s cannot sign transactions", signer.Name)
	}

	backend, chainID, err := f.client.connect(ctx)
	if err != nil {
		return nil, err
	}

	opts, err := signer.NewTransactor(chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx

	address, tx, _, err := bind.DeployContract(opts, f.abi, f.artifact.Bytecode.Bytes(), backend, args...)
	if err != nil {
		return nil, err
	}

	return &models.PendingDeployment{
		Artifact:    f.artifact.FullyQualifiedName(),
		Deployer:    signer.Address,
		Address:     address,
		TxHash:      tx.Hash(),
		Transaction: tx,
		SubmittedAt: time.Now(),
	}, nil
}

// At binds the artifact's ABI to a deployed instance
func (f *Factory) At(address common.Address) usecase.ContractCaller {
	return &Contract{
		address: address,
		abi:     f.abi,
		client:  f.client,
	}
}

// Contract issues read-only calls against a deployed instance
type Contract struct {
	address common.Address
	abi     abi.ABI
	client  *Client
}

// Address returns the contract address
func (c *Contract) Address() common.Address {
	return c.address
}

// Call invokes a view method and returns its decoded outputs
func (c *Contract) Call(ctx context.Context, method string, args ...any) ([]any, error) {
	backend, _, err := c.client.connect(ctx)
	if err != nil {
		return nil, err
	}

	bound := bind.NewBoundContract(c.address, c.abi, backend, backend, backend)

	var out []any
	if err := bound.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// Ensure the adapters implement the interfaces
var (
	_ usecase.ArtifactRegistry  = (*FactoryResolver)(nil)
	_ usecase.DeploymentFactory = (*Factory)(nil)
	_ usecase.ContractCaller    = (*Contract)(nil)
)
