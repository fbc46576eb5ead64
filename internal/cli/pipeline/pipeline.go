// Package pipeline arma el grafo de servicios para una corrida de generación:
// repo git, fetcher de PRs, analyzer, patterns, backend y docgen. Los comandos
// lo usan para no repetir el cableado.
package pipeline

import (
	"context"
	"path/filepath"

	"github.com/Tomas-vilte/MateArch/internal/config"
	"github.com/Tomas-vilte/MateArch/internal/domain/ports"
	"github.com/Tomas-vilte/MateArch/internal/i18n"
	"github.com/Tomas-vilte/MateArch/internal/infrastructure/backends"
	"github.com/Tomas-vilte/MateArch/internal/infrastructure/git"
	"github.com/Tomas-vilte/MateArch/internal/infrastructure/githubcli"
	"github.com/Tomas-vilte/MateArch/internal/infrastructure/vcs/github"
	"github.com/Tomas-vilte/MateArch/internal/services/analyzer"
	"github.com/Tomas-vilte/MateArch/internal/services/docgen"
	"github.com/Tomas-vilte/MateArch/internal/services/prompt"
)

// Pipeline agrupa los servicios armados para una corrida.
type Pipeline struct {
	Docgen   *docgen.Service
	Analyzer *analyzer.Service
	Backend  ports.AIBackend
	GitRoot  string
}

// Build resuelve las opciones contra el repo git y arma los servicios.
func Build(ctx context.Context, opts *config.RunOptions, cfg *config.Config, trans *i18n.Translations) (*Pipeline, error) {
	repo, err := git.NewRepository(opts.ProjectPath)
	if err != nil {
		return nil, err
	}
	repo = repo.WithExtraExclusions(cfg.ExcludedPatterns...)

	if err := opts.Resolve(repo.Root()); err != nil {
		return nil, err
	}

	backendName := opts.Backend
	if backendName == "" {
		backendName = cfg.DefaultBackend
	}
	backend, err := backends.New(ctx, backendName, cfg, opts.DryRun)
	if err != nil {
		return nil, err
	}

	var describer ports.PRDescriber
	if cfg.GitHubToken != "" {
		describer = github.NewClient(cfg.GitHubToken)
	}

	analysis := analyzer.NewService(repo, githubcli.NewFetcher(), describer, trans)
	patterns := prompt.NewManager(patternsDir(cfg), opts.ExtendPatternPath)

	return &Pipeline{
		Docgen:   docgen.NewService(analysis, patterns, backend, trans),
		Analyzer: analysis,
		Backend:  backend,
		GitRoot:  repo.Root(),
	}, nil
}

// BuildDistributed arma el pipeline para el análisis multi-PR, que no requiere
// un repositorio git local.
func BuildDistributed(ctx context.Context, backendName, extendPattern string, cfg *config.Config, trans *i18n.Translations, dryRun bool) (*Pipeline, error) {
	if backendName == "" {
		backendName = cfg.DefaultBackend
	}
	backend, err := backends.New(ctx, backendName, cfg, dryRun)
	if err != nil {
		return nil, err
	}

	var describer ports.PRDescriber
	if cfg.GitHubToken != "" {
		describer = github.NewClient(cfg.GitHubToken)
	}

	// Sin repo git: AnalyzeRepository retorna un GitError si alguien lo llama
	// sobre este pipeline.
	analysis := analyzer.NewService(nil, githubcli.NewFetcher(), describer, trans)
	patterns := prompt.NewManager(patternsDir(cfg), extendPattern)

	return &Pipeline{
		Docgen:   docgen.NewService(analysis, patterns, backend, trans),
		Analyzer: analysis,
		Backend:  backend,
	}, nil
}

// patternsDir permite pisar los patterns embebidos con archivos en
// ~/.mate-arch/patterns/.
func patternsDir(cfg *config.Config) string {
	if cfg.PathFile == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(cfg.PathFile), "patterns")
}
