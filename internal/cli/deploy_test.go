package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/blockverse-dao/bvdeploy/internal/adapters/blockchain"
	"github.com/blockverse-dao/bvdeploy/internal/app"
	"github.com/blockverse-dao/bvdeploy/internal/config"
	"github.com/blockverse-dao/bvdeploy/internal/domain/models"
	"github.com/blockverse-dao/bvdeploy/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const keyedProject = `
network = "keyed"

[networks.keyed]
name = "Keyed"
rpc_url = "${BVTEST_KEYED_RPC}"
chain_id = 1114
currency = "CORE"
`

var (
	stubDeployer = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	stubContract = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
)

// stubChain answers every port of the deploy flow in memory
type stubChain struct {
	deployed bool
	closed   bool
}

func (s *stubChain) ListSigners(ctx context.Context) ([]*models.Signer, error) {
	return []*models.Signer{{Name: "account0", Address: stubDeployer}}, nil
}

func (s *stubChain) GetBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil), nil
}

func (s *stubChain) AwaitConfirmation(ctx context.Context, pending *models.PendingDeployment) (*models.Receipt, error) {
	return &models.Receipt{
		TxHash:          pending.TxHash,
		Status:          models.ReceiptStatusSuccessful,
		ContractAddress: pending.Address,
		BlockNumber:     7,
		GasUsed:         21000,
	}, nil
}

func (s *stubChain) CodeExists(ctx context.Context, address common.Address) (bool, error) {
	return s.deployed, nil
}

func (s *stubChain) ResolveFactory(ctx context.Context, name string) (usecase.DeploymentFactory, error) {
	return s, nil
}

func (s *stubChain) Artifact() *models.Artifact {
	return &models.Artifact{Name: "Project", SourceName: "contracts/Project.sol"}
}

func (s *stubChain) Deploy(ctx context.Context, signer *models.Signer, args ...any) (*models.PendingDeployment, error) {
	s.deployed = true
	return &models.PendingDeployment{
		Artifact: "Project",
		Deployer: signer.Address,
		Address:  stubContract,
		TxHash:   common.HexToHash("0x01"),
	}, nil
}

func (s *stubChain) At(address common.Address) usecase.ContractCaller {
	return s
}

func (s *stubChain) Address() common.Address {
	return stubContract
}

func (s *stubChain) Call(ctx context.Context, method string, args ...any) ([]any, error) {
	switch method {
	case "owner":
		return []any{stubDeployer}, nil
	case "memberCount":
		return []any{big.NewInt(1)}, nil
	default:
		return []any{big.NewInt(0)}, nil
	}
}

func stubAppFactory(chain *stubChain) appFactory {
	return func(v *viper.Viper, sink usecase.ProgressSink) (*app.App, func(), error) {
		cfg, err := config.Provider(v)
		if err != nil {
			return nil, nil, err
		}
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		a, err := app.NewApp(
			cfg,
			usecase.NewDeployContract(cfg, chain, chain, chain, sink, log),
			usecase.NewInspectContract(cfg, chain, chain, sink),
			usecase.NewListNetworks(cfg, config.ProvideNetworkResolver(cfg), blockchain.NewChainIDProbe()),
		)
		return a, func() { chain.closed = true }, err
	}
}

func runWith(chain *stubChain, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr, stubAppFactory(chain))
	return code, stdout.String(), stderr.String()
}

func TestExecuteDeploySucceeds(t *testing.T) {
	dir := setupProject(t, keyedProject)
	unsetForTest(t, "KEYED_RPC_URL")
	t.Setenv("BVTEST_KEYED_RPC", "https://node.example/v3/secret-key")

	chain := &stubChain{}
	code, stdout, stderr := runWith(chain, "--project-root", dir)

	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Starting deployment...")
	assert.Contains(t, stdout, "Account balance: 1.0 CORE")
	assert.Contains(t, stdout, "📍 Contract Address: "+stubContract.Hex())
	assert.Contains(t, stdout, "🔗 Network: Keyed\n")
	assert.Contains(t, stdout, "🌐 RPC URL: ${BVTEST_KEYED_RPC}\n")
	assert.Contains(t, stdout, "- Owner: "+stubDeployer.Hex())
	assert.Contains(t, stdout, "\nCONTRACT_ADDRESS="+stubContract.Hex()+"\n")
	assert.Contains(t, stdout, "🎉 Deployment completed successfully!")
	assert.NotContains(t, stdout, "secret-key")
	assert.NotContains(t, stderr, "Deployment failed")
	assert.True(t, chain.closed)
}

func TestExecuteDeployJSONRedactsRPCURL(t *testing.T) {
	dir := setupProject(t, keyedProject)
	unsetForTest(t, "KEYED_RPC_URL")
	t.Setenv("BVTEST_KEYED_RPC", "https://node.example/v3/secret-key")

	code, stdout, stderr := runWith(&stubChain{}, "deploy", "--json", "--project-root", dir)

	require.Equal(t, 0, code, stderr)
	assert.NotContains(t, stdout, "secret-key")

	var result struct {
		Network struct {
			RPCURL string `json:"rpcUrl"`
		} `json:"network"`
		Deployment struct {
			Address common.Address `json:"address"`
		} `json:"deployment"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "${BVTEST_KEYED_RPC}", result.Network.RPCURL)
	assert.Equal(t, stubContract, result.Deployment.Address)
}

func TestExecuteUnresolvedNetwork(t *testing.T) {
	dir := setupProject(t, keyedProject)
	unsetForTest(t, "KEYED_RPC_URL")
	unsetForTest(t, "BVTEST_KEYED_RPC")

	t.Run("networks still lists", func(t *testing.T) {
		code, stdout, stderr := runWith(&stubChain{}, "networks", "--project-root", dir)

		require.Equal(t, 0, code, stderr)
		assert.Contains(t, stdout, "Core Testnet 2")
		assert.Contains(t, stdout, "references ${BVTEST_KEYED_RPC}, which is not set")
	})

	t.Run("deploy fails with the resolution error", func(t *testing.T) {
		chain := &stubChain{}
		code, stdout, stderr := runWith(chain, "--project-root", dir)

		assert.Equal(t, 1, code)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "❌ Deployment failed:")
		assert.Contains(t, stderr, "failed to resolve network keyed")
		assert.False(t, chain.deployed)
	})
}
