package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/blockverse-dao/bvdeploy/internal/domain"
	"github.com/blockverse-dao/bvdeploy/internal/domain/config"
	"github.com/blockverse-dao/bvdeploy/internal/domain/models"
	"github.com/blockverse-dao/bvdeploy/internal/usecase"
	"github.com/samber/lo"
)

// Repository indexes Hardhat and Foundry compilation output and looks artifacts up by name
type Repository struct {
	dirs []string
	log  *slog.Logger

	mu      sync.Mutex
	indexed bool
	byFQN   map[string]*models.Artifact   // key: "source:Contract"
	byName  map[string][]*models.Artifact // key: contract name
}

// NewRepository creates a repository over the configured artifact directories.
// Nothing is read until the first lookup.
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return &Repository{
		dirs: cfg.ArtifactDirs,
		log:  log.With("component", "artifacts"),
	}
}

// GetArtifact looks up an artifact by bare contract name or by "source:Contract"
func (r *Repository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if err := r.ensureIndexed(ctx); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.Contains(name, ":") {
		if artifact, ok := r.byFQN[name]; ok {
			return artifact, nil
		}
		return nil, r.notFound(name)
	}

	matches := r.byName[name]
	switch len(matches) {
	case 0:
		return nil, r.notFound(name)
	case 1:
		return matches[0], nil
	default:
		return nil, domain.AmbiguousArtifactErr{
			Name: name,
			Matches: lo.Map(matches, func(a *models.Artifact, _ int) string {
				return a.FullyQualifiedName()
			}),
		}
	}
}

// List returns the fully qualified names of every indexed artifact, sorted
func (r *Repository) List(ctx context.Context) ([]string, error) {
	if err := r.ensureIndexed(ctx); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	names := lo.Keys(r.byFQN)
	sort.Strings(names)
	return names, nil
}

func (r *Repository) notFound(name string) error {
	return fmt.Errorf("%w: %s (searched %s; compile the contracts first)",
		domain.ErrArtifactNotFound, name, strings.Join(r.dirs, ", "))
}

func (r *Repository) ensureIndexed(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	r.byFQN = make(map[string]*models.Artifact)
	r.byName = make(map[string][]*models.Artifact)

	for _, dir := range r.dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			r.log.Debug("artifact directory missing", "dir", dir)
			continue
		}
		if err := r.indexDir(ctx, dir); err != nil {
			return fmt.Errorf("failed to index artifacts in %s: %w", dir, err)
		}
	}

	r.indexed = true
	r.log.Debug("indexed artifacts", "count", len(r.byFQN))
	return nil
}

func (r *Repository) indexDir(ctx context.Context, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}

		artifact, err := loadArtifact(path)
		if err != nil {
			r.log.Debug("skipping file", "path", path, "reason", err)
			return nil
		}
		r.add(artifact)
		return nil
	})
}

func (r *Repository) add(artifact *models.Artifact) {
	fqn := artifact.FullyQualifiedName()
	if existing, ok := r.byFQN[fqn]; ok {
		r.log.Debug("duplicate artifact ignored", "name", fqn, "kept", existing.Path, "ignored", artifact.Path)
		return
	}
	r.byFQN[fqn] = artifact
	r.byName[artifact.Name] = append(r.byName[artifact.Name], artifact)
}

// rawArtifact covers the fields of both Hardhat and Foundry artifact files
type rawArtifact struct {
	ContractName     string                `json:"contractName"`
	SourceName       string                `json:"sourceName"`
	ABI              json.RawMessage       `json:"abi"`
	Bytecode         models.BytecodeObject `json:"bytecode"`
	DeployedBytecode models.BytecodeObject `json:"deployedBytecode"`
	LinkReferences   map[string]any        `json:"linkReferences"`
	Metadata         json.RawMessage       `json:"metadata"`
}

type foundryMetadata struct {
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}

func loadArtifact(path string) (*models.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw rawArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("not an artifact: %w", err)
	}
	if len(raw.ABI) == 0 {
		return nil, fmt.Errorf("no abi")
	}

	artifact := &models.Artifact{
		Name:             raw.ContractName,
		SourceName:       raw.SourceName,
		Path:             path,
		ABI:              raw.ABI,
		Bytecode:         raw.Bytecode,
		DeployedBytecode: raw.DeployedBytecode,
		LinkReferences:   raw.LinkReferences,
	}

	if artifact.Name != "" {
		artifact.Format = models.ArtifactFormatHardhat
		return artifact, nil
	}

	// Foundry: out/<Source>.sol/<Name>.json, refined by the compilation target when present
	artifact.Format = models.ArtifactFormatFoundry
	artifact.Name = strings.TrimSuffix(filepath.Base(path), ".json")
	artifact.SourceName = filepath.Base(filepath.Dir(path))

	var meta foundryMetadata
	if len(raw.Metadata) > 0 && json.Unmarshal(raw.Metadata, &meta) == nil {
		for source, contract := range meta.Settings.CompilationTarget {
			artifact.SourceName = source
			artifact.Name = contract
		}
	}

	if artifact.Bytecode.LinkReferences != nil && artifact.LinkReferences == nil {
		artifact.LinkReferences = artifact.Bytecode.LinkReferences
	}
	return artifact, nil
}

// Ensure the repository implements the interface
var _ usecase.ArtifactRepository = (*Repository)(nil)
