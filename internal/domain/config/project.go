package config

// ProjectConfig represents bvdeploy.toml
//
//	network = "core_testnet2"
//	artifact = "Project"
//	artifacts_dirs = ["artifacts", "out"]
//	confirmation_timeout = "10m"
//
//	[networks.core_testnet2]
//	name = "Core Testnet 2"
//	rpc_url = "${CORE_TESTNET2_RPC_URL}"
//	chain_id = 1114
//	currency = "CORE"
//	accounts = ["${PRIVATE_KEY}"]
type ProjectConfig struct {
	Network             string              `toml:"network"`
	Artifact            string              `toml:"artifact"`
	ArtifactsDirs       []string            `toml:"artifacts_dirs"`
	ConfirmationTimeout string              `toml:"confirmation_timeout"`
	Networks            map[string]*Network `toml:"networks"`
}

const (
	// ProjectFileName is the name of the project configuration file
	ProjectFileName = "bvdeploy.toml"

	// DefaultNetwork is used when nothing selects a network
	DefaultNetwork = "core_testnet2"

	// DefaultArtifact is the contract deployed when nothing else is configured
	DefaultArtifact = "Project"
)

// DefaultArtifactDirs are searched, in order, for compiled artifacts
func DefaultArtifactDirs() []string {
	return []string{"artifacts", "out"}
}

// BuiltinNetworks returns the networks available without a project file.
// Entries in bvdeploy.toml override these field by field.
func BuiltinNetworks() map[string]*Network {
	return map[string]*Network{
		"core_testnet2": {
			Key:         "core_testnet2",
			Name:        "Core Testnet 2",
			RPCURL:      "https://rpc.test2.btcs.network",
			ChainID:     1114,
			Currency:    "CORE",
			ExplorerURL: "https://scan.test2.btcs.network",
			Accounts:    []string{"${PRIVATE_KEY}"},
		},
		"localhost": {
			Key:      "localhost",
			Name:     "Localhost",
			RPCURL:   "http://127.0.0.1:8545",
			ChainID:  31337,
			Currency: "ETH",
			Accounts: []string{"${PRIVATE_KEY}"},
		},
	}
}
