package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/blockverse-dao/bvdeploy/internal/adapters/progress"
	"github.com/blockverse-dao/bvdeploy/internal/app"
	"github.com/blockverse-dao/bvdeploy/internal/config"
	"github.com/blockverse-dao/bvdeploy/internal/usecase"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// appFactory builds the application for one invocation, app.InitApp outside tests
type appFactory func(v *viper.Viper, sink usecase.ProgressSink) (*app.App, func(), error)

// session holds what one command invocation opened, released by close
type session struct {
	newApp  appFactory
	sink    usecase.ProgressSink
	cleanup func()
	cancel  context.CancelFunc
}

func (s *session) stopProgress() {
	if spinner, ok := s.sink.(*progress.SpinnerSink); ok {
		spinner.Stop()
	}
}

func (s *session) close() {
	s.stopProgress()
	if s.cancel != nil {
		s.cancel()
	}
	if s.cleanup != nil {
		s.cleanup()
	}
}

// deploymentError marks failures of the deployment run, which get the failure banner
type deploymentError struct {
	Err error
}

func (e *deploymentError) Error() string { return e.Err.Error() }
func (e *deploymentError) Unwrap() error { return e.Err }

// Execute runs the CLI and returns the process exit code
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return execute(ctx, args, stdout, stderr, app.InitApp)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer, newApp appFactory) int {
	sess := &session{newApp: newApp}
	defer sess.close()

	rootCmd := newRootCmd(sess)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		sess.stopProgress()
		printError(stderr, err)
		return 1
	}
	return 0
}

func printError(w io.Writer, err error) {
	var deployErr *deploymentError
	if errors.As(err, &deployErr) {
		color.New(color.FgRed, color.Bold).Fprintln(w, "❌ Deployment failed:")
		fmt.Fprintln(w, deployErr.Err)
		return
	}
	color.New(color.FgRed).Fprintf(w, "Error: %v\n", err)
}

// NewRootCmd creates the root command. Running it without a subcommand deploys.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&session{newApp: app.InitApp})
}

func newRootCmd(sess *session) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bvdeploy",
		Short: "Deploy and verify the BlockVerseDAO Project contract",
		Long: `bvdeploy deploys the BlockVerseDAO Project contract from compiled Hardhat or
Foundry artifacts, waits for the transaction to be confirmed, and checks the
new instance with read-only calls.

Running bvdeploy without a subcommand performs the deployment. On success the
report ends with a CONTRACT_ADDRESS=<address> line for scripts to pick up.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			err := initApp(cmd, sess)
			if err != nil && isDeployCommand(cmd) {
				return &deploymentError{Err: err}
			}
			return err
		},
		RunE: runDeploy,
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (default core_testnet2)")
	rootCmd.PersistentFlags().String("artifact", "", "Artifact name or source:Contract (default Project)")
	rootCmd.PersistentFlags().String("project-root", "", "Project root (default: nearest directory with bvdeploy.toml)")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort the command after this long (0 disables)")
	addDeployFlags(rootCmd)

	rootCmd.AddCommand(NewDeployCmd())
	rootCmd.AddCommand(NewInspectCmd())
	rootCmd.AddCommand(NewNetworksCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func initApp(cmd *cobra.Command, sess *session) error {
	// Skip for help/version commands
	if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}

	v := config.SetupViper(cmd)

	sess.sink = progress.NewSpinnerSink(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if v.GetBool("json") {
		sess.sink = progress.NewNopSink()
	}

	appInstance, cleanup, err := sess.newApp(v, sess.sink)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	sess.cleanup = cleanup

	ctx := context.WithValue(cmd.Context(), appKey, appInstance)

	// Add timeout if configured
	if appInstance.Config.Timeout > 0 {
		ctx, sess.cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
	}

	cmd.SetContext(ctx)
	return nil
}

func isDeployCommand(cmd *cobra.Command) bool {
	return cmd == cmd.Root() || cmd.Name() == "deploy"
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return a, nil
}
