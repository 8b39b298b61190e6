package cli

import (
	"github.com/blockverse-dao/bvdeploy/internal/cli/render"
	"github.com/blockverse-dao/bvdeploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command, the same run as bare bvdeploy
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the contract and verify it with read-only calls",
		Long: `Deploy the configured artifact (Project by default) with the first account of
the selected network, wait for confirmation, then call owner(), memberCount()
and proposalCount() on the new instance.

Any failure aborts the run and exits with status 1. The report, including the
CONTRACT_ADDRESS line, is only printed once every step has succeeded.`,
		Args: cobra.NoArgs,
		RunE: runDeploy,
	}

	addDeployFlags(cmd)
	return cmd
}

func addDeployFlags(cmd *cobra.Command) {
	cmd.Flags().Duration("confirmation-timeout", 0, "Give up waiting for the deployment receipt after this long (0 waits forever)")
}

func runDeploy(cmd *cobra.Command, args []string) error {
	app, err := getApp(cmd)
	if err != nil {
		return &deploymentError{Err: err}
	}

	result, err := app.DeployContract.Run(cmd.Context(), usecase.DeployContractParams{
		ConfirmationTimeout: app.Config.ConfirmationTimeout,
	})
	if err != nil {
		return &deploymentError{Err: err}
	}

	if app.Config.JSON {
		return render.RenderJSON(cmd.OutOrStdout(), result)
	}
	return render.NewDeploymentRenderer(cmd.OutOrStdout()).RenderDeployment(result)
}
