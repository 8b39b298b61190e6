package accounts

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/blockverse-dao/bvdeploy/internal/domain/config"
	"github.com/blockverse-dao/bvdeploy/internal/domain/models"
	"github.com/blockverse-dao/bvdeploy/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/samber/lo"
)

// Provider turns the private keys configured for the selected network into signers
type Provider struct {
	keys []string
	log  *slog.Logger
}

// NewProvider creates a new account provider for the selected network
func NewProvider(cfg *config.RuntimeConfig, log *slog.Logger) *Provider {
	var keys []string
	if cfg.Network != nil {
		// unset ${VAR} references expand to empty strings
		keys = lo.Compact(lo.Map(cfg.Network.Accounts, func(k string, _ int) string {
			return strings.TrimSpace(k)
		}))
	}
	return &Provider{
		keys: keys,
		log:  log.With("component", "accounts"),
	}
}

// ListSigners returns one signer per configured key, in configuration order
func (p *Provider) ListSigners(ctx context.Context) ([]*models.Signer, error) {
	signers := make([]*models.Signer, 0, len(p.keys))
	for i, hexKey := range p.keys {
		key, err := parsePrivateKey(hexKey)
		if err != nil {
			return nil, fmt.Errorf("account %d: invalid private key: %w", i, err)
		}
		signer := newSigner(fmt.Sprintf("account%d", i), key)
		p.log.Debug("loaded signer", "name", signer.Name, "address", signer.Address.Hex())
		signers = append(signers, signer)
	}
	return signers, nil
}

func newSigner(name string, key *ecdsa.PrivateKey) *models.Signer {
	return &models.Signer{
		Name:    name,
		Address: crypto.PubkeyToAddress(key.PublicKey),
		NewTransactor: func(chainID *big.Int) (*bind.TransactOpts, error) {
			return bind.NewKeyedTransactorWithChainID(key, chainID)
		},
	}
}

func parsePrivateKey(privateKeyHex string) (*ecdsa.PrivateKey, error) {
	privateKeyHex = strings.TrimPrefix(strings.TrimPrefix(privateKeyHex, "0x"), "0X")
	return crypto.HexToECDSA(privateKeyHex)
}

// Ensure the provider implements the interface
var _ usecase.AccountProvider = (*Provider)(nil)
