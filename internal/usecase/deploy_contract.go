package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/blockverse-dao/bvdeploy/internal/domain"
	"github.com/blockverse-dao/bvdeploy/internal/domain/config"
	"github.com/blockverse-dao/bvdeploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
)

// DeployContractParams contains parameters for deploying a contract
type DeployContractParams struct {
	Artifact        string
	ConstructorArgs []any
	// Queries are run against the new instance; nil means ProjectQueries
	Queries []ReadQuery
	// ConfirmationTimeout bounds the wait for the deployment receipt; 0 waits forever
	ConfirmationTimeout time.Duration
}

// DeployContractResult contains the outcome of a successful deployment
type DeployContractResult struct {
	Network    *config.Network          `json:"network"`
	Deployer   *models.Signer           `json:"deployer"`
	Balance    *big.Int                 `json:"balance"`
	Deployment *models.DeployedContract `json:"deployment"`
	Details    []ReadResult             `json:"details"`
}

// DeployContract deploys an artifact and verifies the new instance with read-only calls.
// Steps run strictly in order and the first failure aborts the rest.
type DeployContract struct {
	config    *config.RuntimeConfig
	accounts  AccountProvider
	network   NetworkProvider
	artifacts ArtifactRegistry
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	accounts AccountProvider,
	network NetworkProvider,
	artifacts ArtifactRegistry,
	progress ProgressSink,
	log *slog.Logger,
) *DeployContract {
	return &DeployContract{
		config:    cfg,
		accounts:  accounts,
		network:   network,
		artifacts: artifacts,
		progress:  progress,
		log:       log,
	}
}

// Run executes the deployment workflow
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	if params.Artifact == "" {
		params.Artifact = uc.config.Artifact
	}
	if params.Queries == nil {
		params.Queries = ProjectQueries
	}

	network, err := uc.config.SelectedNetwork()
	if err != nil {
		return nil, err
	}

	uc.progress.Info("Starting deployment...")

	// 1. Signer
	uc.stage(ctx, StageSigner, "Loading deployer account", false)
	signer, err := uc.firstSigner(ctx, network)
	if err != nil {
		return nil, err
	}
	uc.progress.Info(fmt.Sprintf("Deploying contracts with the account: %s", signer.Address.Hex()))

	// 2. Balance, informational only
	uc.stage(ctx, StageBalance, "Fetching account balance", false)
	balance, err := uc.network.GetBalance(ctx, signer.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance of %s: %w", signer.Address.Hex(), err)
	}
	uc.progress.Info(fmt.Sprintf("Account balance: %s %s", domain.FormatEther(balance), network.CurrencySymbol()))

	// 3. Deployment request
	uc.progress.Info(fmt.Sprintf("\nDeploying BlockVerseDAO %s contract...", params.Artifact))
	uc.stage(ctx, StageResolving, "Resolving artifact "+params.Artifact, false)
	factory, err := uc.artifacts.ResolveFactory(ctx, params.Artifact)
	if err != nil {
		return nil, domain.NewStepError(domain.ErrArtifactNotFound, err)
	}

	// 4. Submit
	uc.stage(ctx, StageSubmitting, "Submitting deployment transaction", true)
	pending, err := factory.Deploy(ctx, signer, params.ConstructorArgs...)
	if err != nil {
		return nil, domain.NewStepError(domain.ErrSubmission, err)
	}
	uc.log.Debug("deployment submitted", "tx", pending.TxHash.Hex(), "predicted", pending.Address.Hex())

	// 5. Confirm
	uc.stage(ctx, StageConfirming, fmt.Sprintf("Waiting for confirmation of %s", pending.TxHash.Hex()), true)
	receipt, err := uc.awaitConfirmation(ctx, pending, params.ConfirmationTimeout)
	if err != nil {
		return nil, err
	}

	// 6. Address
	address, err := resolveAddress(pending, receipt)
	if err != nil {
		return nil, err
	}

	// 7. Verify
	uc.stage(ctx, StageVerifying, "Reading contract state", true)
	details, err := runReadQueries(ctx, factory.At(address), params.Queries)
	if err != nil {
		return nil, err
	}

	uc.stage(ctx, StageCompleted, "Deployment confirmed", false)

	return &DeployContractResult{
		Network:  network,
		Deployer: signer,
		Balance:  balance,
		Deployment: &models.DeployedContract{
			Artifact:    factory.Artifact().FullyQualifiedName(),
			Address:     address,
			Deployer:    signer.Address,
			TxHash:      receipt.TxHash,
			BlockNumber: receipt.BlockNumber,
			GasUsed:     receipt.GasUsed,
			Method:      models.DeploymentMethodCreate,
			ConfirmedAt: time.Now(),
		},
		Details: details,
	}, nil
}

func (uc *DeployContract) firstSigner(ctx context.Context, network *config.Network) (*models.Signer, error) {
	signers, err := uc.accounts.ListSigners(ctx)
	if err != nil {
		return nil, domain.NewStepError(domain.ErrNoSignerAvailable, err)
	}
	if len(signers) == 0 {
		return nil, domain.NewStepError(domain.ErrNoSignerAvailable,
			fmt.Errorf("no accounts configured for network %s", network.Key))
	}
	return signers[0], nil
}

func (uc *DeployContract) awaitConfirmation(ctx context.Context, pending *models.PendingDeployment, timeout time.Duration) (*models.Receipt, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	receipt, err := uc.network.AwaitConfirmation(ctx, pending)
	if err != nil {
		return nil, domain.NewStepError(domain.ErrConfirmation, err)
	}
	if !receipt.Succeeded() {
		return nil, domain.NewStepError(domain.ErrConfirmation,
			fmt.Errorf("transaction %s reverted in block %d", receipt.TxHash.Hex(), receipt.BlockNumber))
	}
	return receipt, nil
}

// resolveAddress prefers the receipt's contract address over the nonce-derived prediction
func resolveAddress(pending *models.PendingDeployment, receipt *models.Receipt) (common.Address, error) {
	if receipt.ContractAddress != (common.Address{}) {
		return receipt.ContractAddress, nil
	}
	if pending.Address != (common.Address{}) {
		return pending.Address, nil
	}
	return common.Address{}, domain.NewStepError(domain.ErrConfirmation,
		fmt.Errorf("receipt for %s carries no contract address", receipt.TxHash.Hex()))
}

func (uc *DeployContract) stage(ctx context.Context, stage ExecutionStage, message string, spinner bool) {
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   stage,
		Message: message,
		Spinner: spinner,
	})
}
