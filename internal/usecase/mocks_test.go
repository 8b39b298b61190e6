package usecase_test

import (
	"context"
	"math/big"

	"github.com/blockverse-dao/bvdeploy/internal/domain/config"
	"github.com/blockverse-dao/bvdeploy/internal/domain/models"
	"github.com/blockverse-dao/bvdeploy/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
)

// MockAccountProvider is a mock implementation of AccountProvider
type MockAccountProvider struct {
	mock.Mock
}

func (m *MockAccountProvider) ListSigners(ctx context.Context) ([]*models.Signer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Signer), args.Error(1)
}

// MockNetworkProvider is a mock implementation of NetworkProvider
type MockNetworkProvider struct {
	mock.Mock
}

func (m *MockNetworkProvider) GetBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockNetworkProvider) AwaitConfirmation(ctx context.Context, pending *models.PendingDeployment) (*models.Receipt, error) {
	args := m.Called(ctx, pending)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receipt), args.Error(1)
}

func (m *MockNetworkProvider) CodeExists(ctx context.Context, address common.Address) (bool, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.Error(1)
}

// MockArtifactRegistry is a mock implementation of ArtifactRegistry
type MockArtifactRegistry struct {
	mock.Mock
}

func (m *MockArtifactRegistry) ResolveFactory(ctx context.Context, name string) (usecase.DeploymentFactory, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.DeploymentFactory), args.Error(1)
}

// MockFactory is a mock implementation of DeploymentFactory
type MockFactory struct {
	mock.Mock
	artifact *models.Artifact
}

func (m *MockFactory) Artifact() *models.Artifact {
	return m.artifact
}

func (m *MockFactory) Deploy(ctx context.Context, signer *models.Signer, args ...any) (*models.PendingDeployment, error) {
	called := m.Called(ctx, signer, args)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(*models.PendingDeployment), called.Error(1)
}

func (m *MockFactory) At(address common.Address) usecase.ContractCaller {
	args := m.Called(address)
	return args.Get(0).(usecase.ContractCaller)
}

// MockCaller is a mock implementation of ContractCaller
type MockCaller struct {
	mock.Mock
	address common.Address
}

func (m *MockCaller) Address() common.Address {
	return m.address
}

func (m *MockCaller) Call(ctx context.Context, method string, args ...any) ([]any, error) {
	called := m.Called(ctx, method)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).([]any), called.Error(1)
}

// MockNetworkResolver is a mock implementation of NetworkResolver
type MockNetworkResolver struct {
	mock.Mock
}

func (m *MockNetworkResolver) GetNetworks(ctx context.Context) []string {
	args := m.Called(ctx)
	return args.Get(0).([]string)
}

func (m *MockNetworkResolver) ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error) {
	args := m.Called(ctx, networkName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Network), args.Error(1)
}

// MockChainIDFetcher is a mock implementation of ChainIDFetcher
type MockChainIDFetcher struct {
	mock.Mock
}

func (m *MockChainIDFetcher) FetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	args := m.Called(ctx, rpcURL)
	return args.Get(0).(uint64), args.Error(1)
}

// MockProgressSink records progress output
type MockProgressSink struct {
	events []usecase.ProgressEvent
	infos  []string
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(message string) {
	m.infos = append(m.infos, message)
}

func (m *MockProgressSink) Error(message string) {}

func (m *MockProgressSink) stages() []usecase.ExecutionStage {
	stages := make([]usecase.ExecutionStage, len(m.events))
	for i, e := range m.events {
		stages[i] = e.Stage
	}
	return stages
}
