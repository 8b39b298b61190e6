package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/blockverse-dao/bvdeploy/internal/usecase"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders the configured networks as a table
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	checked := false
	for _, n := range result.Networks {
		checked = checked || n.Checked
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Box = table.BoxStyle{
		PaddingLeft:      " ",
		PaddingRight:     "  ",
		MiddleHorizontal: "─",
	}

	header := table.Row{"", "NETWORK", "NAME", "CHAIN ID", "CURRENCY", "RPC URL", "ACCOUNTS"}
	if checked {
		header = append(header, "STATUS")
	}
	t.AppendHeader(header)

	for _, n := range result.Networks {
		marker := ""
		if n.Name == result.Selected {
			marker = "*"
		}

		if n.Network == nil {
			row := table.Row{marker, n.Name, "", "", "", color.New(color.FgRed).Sprint(n.ErrorMessage), ""}
			if checked {
				row = append(row, "")
			}
			t.AppendRow(row)
			continue
		}

		chainID := "-"
		if n.Network.ChainID != 0 {
			chainID = strconv.FormatUint(n.Network.ChainID, 10)
		}
		row := table.Row{
			marker,
			n.Name,
			n.Network.DisplayName(),
			chainID,
			n.Network.CurrencySymbol(),
			n.Network.DisplayRPCURL(),
			n.Accounts,
		}
		if checked {
			row = append(row, statusCell(n))
		}
		t.AppendRow(row)
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	fmt.Fprintln(r.out, t.Render())
	return nil
}

func statusCell(n usecase.NetworkStatus) string {
	switch {
	case !n.Checked:
		return ""
	case n.Error != nil:
		return color.New(color.FgRed).Sprintf("❌ %s", n.ErrorMessage)
	default:
		return color.New(color.FgGreen).Sprintf("✅ chain %d", n.LiveChainID)
	}
}
