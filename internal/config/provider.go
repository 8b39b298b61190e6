package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/blockverse-dao/bvdeploy/internal/domain/config"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	// Get project root from viper
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}
	if !filepath.IsAbs(projectRoot) {
		absPath, err := filepath.Abs(projectRoot)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve project root: %w", err)
		}
		projectRoot = absPath
	}

	project, source, err := LoadProjectConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:   projectRoot,
		Debug:         v.GetBool("debug"),
		JSON:          v.GetBool("json"),
		Timeout:       v.GetDuration("timeout"),
		ConfigSource:  source,
		ProjectConfig: project,
	}

	cfg.Artifact = firstNonEmpty(v.GetString("artifact"), project.Artifact, config.DefaultArtifact)

	dirs := project.ArtifactsDirs
	if len(dirs) == 0 {
		dirs = config.DefaultArtifactDirs()
	}
	cfg.ArtifactDirs = lo.Map(dirs, func(dir string, _ int) string {
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(projectRoot, dir)
	})

	cfg.ConfirmationTimeout, err = confirmationTimeout(v, project)
	if err != nil {
		return nil, err
	}

	// Resolve network. A failure is kept on the config so commands that never
	// dial, like networks, still run.
	cfg.NetworkName = firstNonEmpty(v.GetString("network"), project.Network, config.DefaultNetwork)
	network, err := NewNetworkResolver(project).ResolveNetwork(context.Background(), cfg.NetworkName)
	if err != nil {
		cfg.NetworkErr = fmt.Errorf("failed to resolve network %s: %w", cfg.NetworkName, err)
	} else {
		cfg.Network = network
	}

	return cfg, nil
}

// confirmationTimeout prefers flag/env over bvdeploy.toml; zero means wait forever
func confirmationTimeout(v *viper.Viper, project *config.ProjectConfig) (time.Duration, error) {
	if v.IsSet("confirmation_timeout") {
		return v.GetDuration("confirmation_timeout"), nil
	}
	if project.ConfirmationTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(project.ConfirmationTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid confirmation_timeout %q in %s: %w", project.ConfirmationTimeout, config.ProjectFileName, err)
	}
	return d, nil
}

// FindProjectRoot walks up from current directory to find bvdeploy.toml.
// Without one, the current directory is the project root.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, config.ProjectFileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("BVDEPLOY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "0s")
	v.SetDefault("debug", false)
	v.SetDefault("json", false)

	// Flags carries local and inherited persistent flags once cobra has parsed them
	bindFlags(v, cmd.Flags())

	return v
}

// bindFlags binds flags under snake_case keys, e.g. --confirmation-timeout -> confirmation_timeout
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})
}

// ProvideNetworkResolver creates a NetworkResolver for Wire dependency injection
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.ProjectConfig)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
