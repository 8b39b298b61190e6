package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/blockverse-dao/bvdeploy/internal/domain"
	"github.com/blockverse-dao/bvdeploy/internal/domain/config"
	"github.com/blockverse-dao/bvdeploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// answerABI describes a contract whose runtime code returns 42 for any call
const answerABI = `[
  {"type":"function","name":"owner","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"},
  {"type":"function","name":"memberCount","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
  {"type":"function","name":"proposalCount","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"}
]`

const (
	// copies the 10 byte runtime below into memory and returns it
	answerInitCode = "0x600a600c600039600a6000f3"
	// mstore(0, 42) return(0, 32)
	answerRuntime = "602a60005260206000f3"
	// revert(0, 0)
	revertingInitCode = "0x60006000fd"
)

const simulatedChainID = 1337

type stubArtifacts map[string]*models.Artifact

func (s stubArtifacts) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if a, ok := s[name]; ok {
		return a, nil
	}
	return nil, domain.ErrArtifactNotFound
}

type testChain struct {
	sim      *simulated.Backend
	client   *Client
	resolver *FactoryResolver
	signer   *models.Signer
}

func newTestChain(t *testing.T, chainID uint64) *testChain {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	deployer := crypto.PubkeyToAddress(key.PublicKey)

	sim := simulated.NewBackend(types.GenesisAlloc{
		deployer: {Balance: new(big.Int).Mul(big.NewInt(10), big.NewInt(params.Ether))},
	})
	t.Cleanup(func() { _ = sim.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	network := &config.Network{Key: "simulated", ChainID: chainID}
	client := NewClientWithBackend(network, sim.Client(), log)

	artifacts := stubArtifacts{
		"Project": {
			Name:       "Project",
			SourceName: "contracts/Project.sol",
			ABI:        []byte(answerABI),
			Bytecode:   models.BytecodeObject{Object: answerInitCode + answerRuntime},
		},
		"Reverting": {
			Name:     "Reverting",
			ABI:      []byte(`[]`),
			Bytecode: models.BytecodeObject{Object: revertingInitCode},
		},
		"IProject": {
			Name: "IProject",
			ABI:  []byte(answerABI),
		},
		"Broken": {
			Name:     "Broken",
			ABI:      []byte(`{not abi`),
			Bytecode: models.BytecodeObject{Object: answerInitCode},
		},
	}

	return &testChain{
		sim:      sim,
		client:   client,
		resolver: NewFactoryResolver(artifacts, client, log),
		signer:   testSigner(key),
	}
}

func testSigner(key *ecdsa.PrivateKey) *models.Signer {
	return &models.Signer{
		Name:    "account0",
		Address: crypto.PubkeyToAddress(key.PublicKey),
		NewTransactor: func(chainID *big.Int) (*bind.TransactOpts, error) {
			return bind.NewKeyedTransactorWithChainID(key, chainID)
		},
	}
}

func TestDeployAndVerify(t *testing.T) {
	ctx := context.Background()
	chain := newTestChain(t, simulatedChainID)

	factory, err := chain.resolver.ResolveFactory(ctx, "Project")
	require.NoError(t, err)
	assert.Equal(t, "contracts/Project.sol:Project", factory.Artifact().FullyQualifiedName())

	pending, err := factory.Deploy(ctx, chain.signer)
	require.NoError(t, err)
	assert.Equal(t, chain.signer.Address, pending.Deployer)
	assert.Equal(t, crypto.CreateAddress(chain.signer.Address, 0), pending.Address)
	assert.NotEqual(t, common.Hash{}, pending.TxHash)

	chain.sim.Commit()

	receipt, err := chain.client.AwaitConfirmation(ctx, pending)
	require.NoError(t, err)
	assert.True(t, receipt.Succeeded())
	assert.Equal(t, pending.Address, receipt.ContractAddress)
	assert.Equal(t, pending.TxHash, receipt.TxHash)
	assert.Equal(t, uint64(1), receipt.BlockNumber)
	assert.NotZero(t, receipt.GasUsed)

	exists, err := chain.client.CodeExists(ctx, receipt.ContractAddress)
	require.NoError(t, err)
	assert.True(t, exists)

	caller := factory.At(receipt.ContractAddress)
	assert.Equal(t, receipt.ContractAddress, caller.Address())

	owner, err := caller.Call(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, []any{common.HexToAddress("0x2a")}, owner)

	members, err := caller.Call(ctx, "memberCount")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, 0, big.NewInt(42).Cmp(members[0].(*big.Int)))

	_, err = caller.Call(ctx, "treasury")
	assert.Error(t, err)
}

func TestGetBalance(t *testing.T) {
	chain := newTestChain(t, simulatedChainID)

	balance, err := chain.client.GetBalance(context.Background(), chain.signer.Address)

	require.NoError(t, err)
	assert.Equal(t, "10000000000000000000", balance.String())
}

func TestChainIDMismatch(t *testing.T) {
	chain := newTestChain(t, 1114)

	_, err := chain.client.GetBalance(context.Background(), chain.signer.Address)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrChainIDMismatch))
	assert.Contains(t, err.Error(), "expected 1114, got 1337")
}

func TestChainIDZeroAcceptsAny(t *testing.T) {
	chain := newTestChain(t, 0)

	chainID, err := chain.client.ChainID(context.Background())

	require.NoError(t, err)
	assert.Equal(t, uint64(simulatedChainID), chainID.Uint64())
}

func TestCodeExistsEmptyAccount(t *testing.T) {
	chain := newTestChain(t, simulatedChainID)

	exists, err := chain.client.CodeExists(context.Background(), chain.signer.Address)

	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAwaitConfirmationHonorsContext(t *testing.T) {
	chain := newTestChain(t, simulatedChainID)
	factory, err := chain.resolver.ResolveFactory(context.Background(), "Project")
	require.NoError(t, err)

	pending, err := factory.Deploy(context.Background(), chain.signer)
	require.NoError(t, err)

	// never committed, so never mined
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = chain.client.AwaitConfirmation(ctx, pending)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestAwaitConfirmationWithoutTransaction(t *testing.T) {
	chain := newTestChain(t, simulatedChainID)

	_, err := chain.client.AwaitConfirmation(context.Background(), &models.PendingDeployment{})

	assert.ErrorContains(t, err, "carries no transaction")
}

func TestResolveFactoryErrors(t *testing.T) {
	ctx := context.Background()
	chain := newTestChain(t, simulatedChainID)

	t.Run("unknown artifact", func(t *testing.T) {
		_, err := chain.resolver.ResolveFactory(ctx, "Governor")
		assert.True(t, errors.Is(err, domain.ErrArtifactNotFound))
	})

	t.Run("no bytecode", func(t *testing.T) {
		_, err := chain.resolver.ResolveFactory(ctx, "IProject")
		assert.ErrorContains(t, err, "no creation bytecode")
	})

	t.Run("invalid abi", func(t *testing.T) {
		_, err := chain.resolver.ResolveFactory(ctx, "Broken")
		assert.ErrorContains(t, err, "invalid ABI")
	})
}

func TestDeployRejectedByNode(t *testing.T) {
	chain := newTestChain(t, simulatedChainID)
	factory, err := chain.resolver.ResolveFactory(context.Background(), "Reverting")
	require.NoError(t, err)

	_, err = factory.Deploy(context.Background(), chain.signer)

	assert.Error(t, err)
}

func TestDeployWithoutTransactor(t *testing.T) {
	chain := newTestChain(t, simulatedChainID)
	factory, err := chain.resolver.ResolveFactory(context.Background(), "Project")
	require.NoError(t, err)

	_, err = factory.Deploy(context.Background(), &models.Signer{Name: "watch-only"})

	assert.ErrorContains(t, err, "cannot sign transactions")
}
