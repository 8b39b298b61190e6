package config

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/blockverse-dao/bvdeploy/internal/domain"
	"github.com/blockverse-dao/bvdeploy/internal/domain/config"
	"github.com/samber/lo"
)

// NetworkResolver resolves network names to configurations.
// Built-in networks are overlaid by the [networks.*] sections of bvdeploy.toml.
type NetworkResolver struct {
	networks map[string]*config.Network
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(project *config.ProjectConfig) *NetworkResolver {
	networks := config.BuiltinNetworks()
	if project != nil {
		for key, override := range project.Networks {
			networks[key] = mergeNetwork(networks[key], override)
		}
	}
	for key, network := range networks {
		network.Key = key
	}

	return &NetworkResolver{networks: networks}
}

// GetNetworks returns all known network names, sorted
func (r *NetworkResolver) GetNetworks(ctx context.Context) []string {
	names := lo.Keys(r.networks)
	slices.Sort(names)
	return names
}

// ResolveNetwork returns a copy of the named network with environment references expanded
func (r *NetworkResolver) ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error) {
	network, exists := r.networks[networkName]
	if !exists {
		return nil, fmt.Errorf("%w: '%s' (available: %v)", domain.ErrNetworkNotFound, networkName, r.GetNetworks(ctx))
	}

	rpcURL, err := expandRPCURL(networkName, network.RPCURL)
	if err != nil {
		return nil, err
	}

	resolved := *network
	resolved.RPCURL = rpcURL
	resolved.RPCURLSource = rpcURLSource(networkName, network.RPCURL)
	resolved.ExplorerURL = os.ExpandEnv(network.ExplorerURL)
	resolved.Accounts = lo.Map(network.Accounts, func(account string, _ int) string {
		return os.ExpandEnv(account)
	})

	return &resolved, nil
}

// mergeNetwork overlays the non-zero fields of override on base
func mergeNetwork(base, override *config.Network) *config.Network {
	if base == nil {
		merged := *override
		return &merged
	}

	merged := *base
	if override.Name != "" {
		merged.Name = override.Name
	}
	if override.RPCURL != "" {
		merged.RPCURL = override.RPCURL
	}
	if override.ChainID != 0 {
		merged.ChainID = override.ChainID
	}
	if override.Currency != "" {
		merged.Currency = override.Currency
	}
	if override.ExplorerURL != "" {
		merged.ExplorerURL = override.ExplorerURL
	}
	if override.Accounts != nil {
		merged.Accounts = override.Accounts
	}
	return &merged
}
