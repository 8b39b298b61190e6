package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/blockverse-dao/bvdeploy/internal/domain"
	"github.com/blockverse-dao/bvdeploy/internal/domain/config"
	"github.com/blockverse-dao/bvdeploy/internal/domain/models"
	"github.com/blockverse-dao/bvdeploy/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Backend is the part of an Ethereum client the adapters use.
// Both *ethclient.Client and the simulated backend's client satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// Client implements NetworkProvider for the selected network.
// The RPC connection is opened on first use.
type Client struct {
	network *config.Network
	log     *slog.Logger

	mu      sync.Mutex
	backend Backend
	chainID *big.Int
	closeFn func()
}

// NewClient creates a client for the selected network without dialing it
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	return &Client{
		network: cfg.Network,
		log:     log.With("component", "blockchain"),
	}
}

// NewClientWithBackend creates a client over an already connected backend
func NewClientWithBackend(network *config.Network, backend Backend, log *slog.Logger) *Client {
	return &Client{
		network: network,
		backend: backend,
		log:     log.With("component", "blockchain"),
	}
}

// ProvideClient creates a client and the cleanup that closes its connection
func ProvideClient(cfg *config.RuntimeConfig, log *slog.Logger) (*Client, func()) {
	c := NewClient(cfg, log)
	return c, c.Close
}

// connect dials the network once and verifies it serves the configured chain
func (c *Client) connect(ctx context.Context) (Backend, *big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.chainID != nil {
		return c.backend, c.chainID, nil
	}

	if c.backend == nil {
		if c.network == nil || c.network.RPCURL == "" {
			return nil, nil, fmt.Errorf("no RPC URL configured")
		}
		c.log.Debug("dialing network", "network", c.network.Key, "rpc", c.network.RPCURL)
		client, err := ethclient.DialContext(ctx, c.network.RPCURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to RPC: %w", err)
		}
		c.backend = client
		c.closeFn = client.Close
	}

	chainID, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	if expected := c.expectedChainID(); expected != 0 && chainID.Uint64() != expected {
		return nil, nil, fmt.Errorf("%w: expected %d, got %d", domain.ErrChainIDMismatch, expected, chainID.Uint64())
	}

	c.log.Debug("connected", "chainId", chainID.Uint64())
	c.chainID = chainID
	return c.backend, c.chainID, nil
}

func (c *Client) expectedChainID() uint64 {
	if c.network == nil {
		return 0
	}
	return c.network.ChainID
}

// ChainID returns the chain ID reported by the connected network
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	_, chainID, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(chainID), nil
}

// GetBalance returns the latest balance of an account in wei
func (c *Client) GetBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	backend, _, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	return backend.BalanceAt(ctx, address, nil)
}

// AwaitConfirmation blocks until the deployment transaction is mined or ctx is done
func (c *Client) AwaitConfirmation(ctx context.Context, pending *models.PendingDeployment) (*models.Receipt, error) {
	if pending.Transaction == nil {
		return nil, fmt.Errorf("pending deployment %s carries no transaction", pending.TxHash.Hex())
	}

	backend, _, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	receipt, err := bind.WaitMined(ctx, backend, pending.Transaction)
	if err != nil {
		return nil, err
	}
	c.log.Debug("transaction mined", "tx", receipt.TxHash.Hex(), "block", receipt.BlockNumber, "waited", time.Since(start).Round(time.Millisecond))

	result := &models.Receipt{
		TxHash:          receipt.TxHash,
		Status:          models.ReceiptStatus(receipt.Status),
		ContractAddress: receipt.ContractAddress,
		GasUsed:         receipt.GasUsed,
	}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return result, nil
}

// CodeExists reports whether there is contract code at the address
func (c *Client) CodeExists(ctx context.Context, address common.Address) (bool, error) {
	backend, _, err := c.connect(ctx)
	if err != nil {
		return false, err
	}

	code, err := backend.CodeAt(ctx, address, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check code: %w", err)
	}
	return len(code) > 0, nil
}

// Close releases the RPC connection if one was opened
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closeFn != nil {
		c.closeFn()
		c.closeFn = nil
	}
}

// ChainIDProbe dials an endpoint just long enough to read its chain ID
type ChainIDProbe struct {
	Timeout time.Duration
}

// NewChainIDProbe creates a probe with a per-endpoint timeout
func NewChainIDProbe() *ChainIDProbe {
	return &ChainIDProbe{Timeout: 10 * time.Second}
}

// FetchChainID returns the chain ID served at rpcURL
func (p *ChainIDProbe) FetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return chainID.Uint64(), nil
}

// Ensure the adapters implement the interfaces
var (
	_ usecase.NetworkProvider = (*Client)(nil)
	_ usecase.ChainIDFetcher  = (*ChainIDProbe)(nil)
)
