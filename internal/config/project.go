package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/blockverse-dao/bvdeploy/internal/domain/config"
	"github.com/joho/godotenv"
)

// loadEnvFiles loads .env files from the project root so ${VAR} references resolve.
// Variables already set in the process environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// LoadProjectConfig loads bvdeploy.toml from the project root.
// A missing file is not an error: it yields an empty config and an empty source.
func LoadProjectConfig(projectRoot string) (*config.ProjectConfig, string, error) {
	loadEnvFiles(projectRoot)

	path := filepath.Join(projectRoot, config.ProjectFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &config.ProjectConfig{}, "", nil
	}

	var cfg config.ProjectConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", config.ProjectFileName, err)
	}

	for key, network := range cfg.Networks {
		if network == nil {
			delete(cfg.Networks, key)
			continue
		}
		network.Key = key
	}

	return &cfg, path, nil
}
