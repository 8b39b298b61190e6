package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches ${VAR_NAME} patterns in TOML values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// DetectEnvVar checks if a raw TOML value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// GenerateEnvVarName generates a conventional env var name for a network's RPC URL.
// Convention: uppercase, dashes/dots to underscores, append _RPC_URL.
// Examples: sepolia -> SEPOLIA_RPC_URL, core-testnet2 -> CORE_TESTNET2_RPC_URL
func GenerateEnvVarName(networkName string) string {
	name := strings.ToUpper(networkName)
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return name + "_RPC_URL"
}

// expandRPCURL expands ${VAR} references in a network's RPC URL.
// The conventional <NETWORK>_RPC_URL variable overrides the configured value when set.
func expandRPCURL(networkName, raw string) (string, error) {
	if override := os.Getenv(GenerateEnvVarName(networkName)); override != "" {
		return override, nil
	}

	expanded := os.ExpandEnv(raw)
	if expanded != "" {
		return expanded, nil
	}

	if envVar, ok := DetectEnvVar(raw); ok {
		return "", fmt.Errorf("network '%s' rpc_url references ${%s}, which is not set", networkName, envVar)
	}
	return "", fmt.Errorf("network '%s' has no rpc_url", networkName)
}

// rpcURLSource returns the printable origin of a network's RPC URL: the override
// variable when it is set, otherwise the configured value.
func rpcURLSource(networkName, raw string) string {
	envVar := GenerateEnvVarName(networkName)
	if os.Getenv(envVar) != "" {
		return "${" + envVar + "}"
	}
	return raw
}
