package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/blockverse-dao/bvdeploy/internal/domain/config"
	"github.com/blockverse-dao/bvdeploy/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const rule = "================================"

// DeploymentRenderer renders the deployment report
type DeploymentRenderer struct {
	out     io.Writer
	printer *message.Printer
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer) *DeploymentRenderer {
	return &DeploymentRenderer{
		out:     out,
		printer: message.NewPrinter(language.English),
	}
}

// RenderDeployment renders the report of a confirmed and verified deployment.
// The CONTRACT_ADDRESS line is meant to be parsed by scripts and stays uncolored.
func (r *DeploymentRenderer) RenderDeployment(result *usecase.DeployContractResult) error {
	d := result.Deployment
	address := d.Address.Hex()

	color.New(color.FgGreen, color.Bold).Fprintf(r.out, "\n✅ BlockVerseDAO %s contract deployed successfully!\n", contractName(d.Artifact))
	fmt.Fprintf(r.out, "📍 Contract Address: %s\n", address)
	r.renderNetwork(result.Network)

	if link := explorerLink(result.Network, "address", address); link != "" {
		fmt.Fprintf(r.out, "🔍 Explorer: %s\n", link)
	}
	if d.TxHash != (common.Hash{}) {
		fmt.Fprintf(r.out, "🧾 Transaction: %s\n", d.TxHash.Hex())
	}
	if d.BlockNumber > 0 {
		fmt.Fprintf(r.out, "📦 Block: %d\n", d.BlockNumber)
	}
	if d.GasUsed > 0 {
		r.printer.Fprintf(r.out, "⛽ Gas Used: %d\n", d.GasUsed)
	}

	r.RenderDetails(result.Details)

	fmt.Fprintln(r.out, "\n📝 Save this information:")
	fmt.Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "CONTRACT_ADDRESS=%s\n", address)
	fmt.Fprintln(r.out, rule)

	color.New(color.FgGreen).Fprintln(r.out, "\n🎉 Deployment completed successfully!")
	return nil
}

// RenderInspection renders the state read from an existing deployment
func (r *DeploymentRenderer) RenderInspection(result *usecase.InspectContractResult) error {
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "%s at %s\n", contractName(result.Artifact), result.Address.Hex())
	r.renderNetwork(result.Network)
	if link := explorerLink(result.Network, "address", result.Address.Hex()); link != "" {
		fmt.Fprintf(r.out, "🔍 Explorer: %s\n", link)
	}
	r.RenderDetails(result.Details)
	return nil
}

// RenderDetails renders the "Contract Details" block, one line per read call
func (r *DeploymentRenderer) RenderDetails(details []usecase.ReadResult) {
	fmt.Fprintln(r.out, "\n📋 Contract Details:")
	for _, d := range details {
		fmt.Fprintf(r.out, "- %s: %s\n", d.Label, d.Value)
	}
}

func (r *DeploymentRenderer) renderNetwork(network *config.Network) {
	if network == nil {
		return
	}
	fmt.Fprintf(r.out, "🔗 Network: %s\n", network.DisplayName())
	fmt.Fprintf(r.out, "🌐 RPC URL: %s\n", network.DisplayRPCURL())
}

// contractName strips the source path from a "source:Contract" name
func contractName(fqn string) string {
	if idx := strings.LastIndex(fqn, ":"); idx != -1 {
		return fqn[idx+1:]
	}
	return fqn
}

func explorerLink(network *config.Network, kind, value string) string {
	if network == nil || network.ExplorerURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(network.ExplorerURL, "/"), kind, value)
}
