package cli

import (
	"github.com/blockverse-dao/bvdeploy/internal/cli/render"
	"github.com/blockverse-dao/bvdeploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <address>",
		Short: "Run the verification calls against an existing deployment",
		Long: `Run owner(), memberCount() and proposalCount() against a contract that is
already deployed on the selected network, using the ABI of the configured
artifact.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.InspectContract.Run(cmd.Context(), usecase.InspectContractParams{
				Address: args[0],
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewDeploymentRenderer(cmd.OutOrStdout()).RenderInspection(result)
		},
	}
}
