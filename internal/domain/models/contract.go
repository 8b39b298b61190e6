package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ArtifactFormat identifies the toolchain that produced an artifact
type ArtifactFormat string

const (
	ArtifactFormatHardhat ArtifactFormat = "hardhat"
	ArtifactFormatFoundry ArtifactFormat = "foundry"
)

// BytecodeObject represents bytecode information in a compilation artifact.
// Hardhat stores bytecode as a hex string, Foundry as an object.
type BytecodeObject struct {
	Object         string         `json:"object"`
	SourceMap      string         `json:"sourceMap,omitempty"`
	LinkReferences map[string]any `json:"linkReferences,omitempty"`
}

// UnmarshalJSON accepts both the string and the object form
func (b *BytecodeObject) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &b.Object)
	}

	type plain BytecodeObject
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*b = BytecodeObject(obj)
	return nil
}

// Bytes returns the decoded bytecode
func (b BytecodeObject) Bytes() []byte {
	return common.FromHex(b.Object)
}

// IsEmpty reports whether there is no bytecode (interfaces, abstract contracts)
func (b BytecodeObject) IsEmpty() bool {
	obj := strings.TrimPrefix(b.Object, "0x")
	return obj == ""
}

// NeedsLinking reports whether the bytecode has unresolved library placeholders
func (b BytecodeObject) NeedsLinking() bool {
	return len(b.LinkReferences) > 0 || strings.Contains(b.Object, "__$")
}

// Artifact represents a compiled contract: bytecode plus interface description
type Artifact struct {
	Name             string          `json:"contractName"`
	SourceName       string          `json:"sourceName"`
	Path             string          `json:"-"`
	Format           ArtifactFormat  `json:"-"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         BytecodeObject  `json:"bytecode"`
	DeployedBytecode BytecodeObject  `json:"deployedBytecode"`
	LinkReferences   map[string]any  `json:"linkReferences,omitempty"`
}

// FullyQualifiedName returns "source:Contract", or the bare name when the source is unknown
func (a *Artifact) FullyQualifiedName() string {
	if a.SourceName == "" {
		return a.Name
	}
	return fmt.Sprintf("%s:%s", a.SourceName, a.Name)
}

// Deployable reports why the artifact can't be deployed, or nil
func (a *Artifact) Deployable() error {
	if a.Bytecode.IsEmpty() {
		return fmt.Errorf("%s has no creation bytecode (interface or abstract contract?)", a.FullyQualifiedName())
	}
	if a.Bytecode.NeedsLinking() || len(a.LinkReferences) > 0 {
		return fmt.Errorf("%s requires library linking, which is not supported", a.FullyQualifiedName())
	}
	return nil
}
