package config

import (
	"encoding/json"
	"errors"
	"net/url"
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string

	// NetworkName is the selected network key
	NetworkName string
	// Network is the resolved selected network. It is nil when NetworkErr is set.
	Network *Network
	// NetworkErr records why the selected network could not be resolved.
	// Only commands that talk to the network fail on it.
	NetworkErr error

	// Deployment settings
	Artifact            string        // artifact name or "source:Contract"
	ArtifactDirs        []string      // absolute search roots for compiled artifacts
	ConfirmationTimeout time.Duration // 0 waits forever

	// Execution settings
	Debug   bool
	JSON    bool // Output in JSON format
	Timeout time.Duration

	// Config source tracking
	ConfigSource string // path of bvdeploy.toml, or "" for built-in defaults

	// Resolved configurations
	ProjectConfig *ProjectConfig
}

// SelectedNetwork returns the resolved network or the error that prevented resolving it
func (c *RuntimeConfig) SelectedNetwork() (*Network, error) {
	if c.NetworkErr != nil {
		return nil, c.NetworkErr
	}
	if c.Network == nil {
		return nil, errors.New("no network selected")
	}
	return c.Network, nil
}

// Network represents network configuration
type Network struct {
	Key    string `json:"key" toml:"-"`
	Name   string `json:"name" toml:"name"`
	RPCURL string `json:"rpcUrl" toml:"rpc_url"`
	// RPCURLSource is the configured form of RPCURL before environment expansion
	RPCURLSource string   `json:"-" toml:"-"`
	ChainID      uint64   `json:"chainId" toml:"chain_id"`
	Currency     string   `json:"currency" toml:"currency"`
	ExplorerURL  string   `json:"explorerUrl,omitempty" toml:"explorer"`
	Accounts     []string `json:"-" toml:"accounts"` //nolint:gosec // holds env var references, not literal secrets
}

// DisplayName returns the human readable network name, falling back to the key
func (n *Network) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.Key
}

// CurrencySymbol returns the native currency symbol, "ETH" when unset
func (n *Network) CurrencySymbol() string {
	if n.Currency != "" {
		return n.Currency
	}
	return "ETH"
}

// DisplayRPCURL returns the RPC URL in a form safe to print. Endpoints taken from
// the environment are shown as their ${VAR} reference, literal ones lose their
// credentials and query string.
func (n *Network) DisplayRPCURL() string {
	if n.RPCURLSource != "" && n.RPCURLSource != n.RPCURL {
		return n.RPCURLSource
	}
	return redactURL(n.RPCURL)
}

// MarshalJSON emits the network with its RPC URL redacted
func (n Network) MarshalJSON() ([]byte, error) {
	type network Network
	out := network(n)
	out.RPCURL = n.DisplayRPCURL()
	return json.Marshal(out)
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	u.User = nil
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}
