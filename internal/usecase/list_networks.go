package usecase

import (
	"context"
	"fmt"

	"github.com/blockverse-dao/bvdeploy/internal/domain"
	"github.com/blockverse-dao/bvdeploy/internal/domain/config"
	"github.com/samber/lo"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Check dials each network and compares its live chain ID with the configured one
	Check bool
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Selected string          `json:"selected"`
	Networks []NetworkStatus `json:"networks"`
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Network      *config.Network `json:"network,omitempty"`
	Name         string          `json:"name"`
	Accounts     int             `json:"accounts"`
	Checked      bool            `json:"checked"`
	LiveChainID  uint64          `json:"liveChainId,omitempty"`
	Error        error           `json:"-"`
	ErrorMessage string          `json:"error,omitempty"`
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	config   *config.RuntimeConfig
	resolver NetworkResolver
	fetcher  ChainIDFetcher
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, resolver NetworkResolver, fetcher ChainIDFetcher) *ListNetworks {
	return &ListNetworks{
		config:   cfg,
		resolver: resolver,
		fetcher:  fetcher,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	networkNames := uc.resolver.GetNetworks(ctx)

	networks := make([]NetworkStatus, 0, len(networkNames))
	for _, name := range networkNames {
		status := NetworkStatus{Name: name}

		network, err := uc.resolver.ResolveNetwork(ctx, name)
		if err != nil {
			status.setError(err)
			networks = append(networks, status)
			continue
		}
		status.Network = network
		status.Accounts = len(lo.Compact(network.Accounts))

		if params.Check {
			status.Checked = true
			status.LiveChainID, err = uc.fetcher.FetchChainID(ctx, network.RPCURL)
			switch {
			case err != nil:
				status.setError(err)
			case network.ChainID != 0 && status.LiveChainID != network.ChainID:
				status.setError(fmt.Errorf("%w: configured %d, endpoint reports %d",
					domain.ErrChainIDMismatch, network.ChainID, status.LiveChainID))
			}
		}

		networks = append(networks, status)
	}

	selected := uc.config.NetworkName
	if selected == "" && uc.config.Network != nil {
		selected = uc.config.Network.Key
	}

	return &ListNetworksResult{
		Selected: selected,
		Networks: networks,
	}, nil
}

func (s *NetworkStatus) setError(err error) {
	s.Error = err
	s.ErrorMessage = err.Error()
}
