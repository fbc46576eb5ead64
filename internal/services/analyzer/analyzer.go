// Package analyzer compone las operaciones git y de Pull Requests en los dos
// resultados que consume la capa de generación de documentos: el análisis de
// un repositorio único y el análisis distribuido multi-repositorio.
package analyzer

import (
	"context"
	"fmt"
	"strings"

	domainerrors "github.com/Tomas-vilte/MateArch/internal/domain/errors"
	"github.com/Tomas-vilte/MateArch/internal/domain/models"
	"github.com/Tomas-vilte/MateArch/internal/domain/ports"
	"github.com/Tomas-vilte/MateArch/internal/i18n"
	"github.com/Tomas-vilte/MateArch/internal/services/crossservice"
	"github.com/Tomas-vilte/MateArch/internal/services/diffparse"
)

// RepositoryOptions son las opciones de un análisis de repositorio único.
type RepositoryOptions struct {
	// BaseBranch fuerza la rama base del diff. Vacío = detectar.
	BaseBranch string

	// PathFilter restringe el análisis a un prefijo de ruta (subcarpeta).
	PathFilter string

	// ExcludedPatterns son substrings adicionales a excluir, provistos por el caller.
	ExcludedPatterns []string
}

// Service es el aggregator de análisis. No tiene estado entre llamadas:
// cada invocación construye un resultado fresco.
type Service struct {
	git       ports.GitService
	fetcher   ports.PRDiffFetcher
	describer ports.PRDescriber
	detector  *crossservice.Detector
	trans     *i18n.Translations
}

// NewService crea el aggregator. git puede ser nil para el análisis multi-PR
// (que no toca git) y describer puede ser nil si no hay token de VCS.
func NewService(git ports.GitService, fetcher ports.PRDiffFetcher, describer ports.PRDescriber, trans *i18n.Translations) *Service {
	return &Service{
		git:       git,
		fetcher:   fetcher,
		describer: describer,
		detector:  crossservice.NewDetector(),
		trans:     trans,
	}
}

// AnalyzeRepository arma el análisis completo de un repositorio: cambios contra
// la rama base y listado de archivos trackeados. Es idempotente: contra un
// working tree sin cambios produce siempre el mismo resultado.
func (s *Service) AnalyzeRepository(ctx context.Context, opts RepositoryOptions) (models.RepositoryAnalysis, error) {
	if s.git == nil {
		return models.RepositoryAnalysis{}, domainerrors.NewGitError("analyze", "este análisis no tiene un repositorio git asociado", nil)
	}

	defaultBranch, err := s.git.DefaultBranch(ctx)
	if err != nil {
		return models.RepositoryAnalysis{}, err
	}

	currentBranch, err := s.git.CurrentBranch(ctx)
	if err != nil {
		return models.RepositoryAnalysis{}, err
	}

	changes, err := s.git.ChangedFiles(ctx, opts.BaseBranch, opts.PathFilter)
	if err != nil {
		return models.RepositoryAnalysis{}, err
	}

	if len(opts.ExcludedPatterns) > 0 {
		filtered := make([]models.Change, 0, len(changes))
		for _, change := range changes {
			if !containsAny(change.FilePath, opts.ExcludedPatterns) {
				filtered = append(filtered, change)
			}
		}
		changes = filtered
	}

	tracked, err := s.git.TrackedFiles(ctx, opts.PathFilter)
	if err != nil {
		return models.RepositoryAnalysis{}, err
	}

	if len(opts.ExcludedPatterns) > 0 {
		filteredTracked := make([]string, 0, len(tracked))
		for _, path := range tracked {
			if !containsAny(path, opts.ExcludedPatterns) {
				filteredTracked = append(filteredTracked, path)
			}
		}
		tracked = filteredTracked
	}

	return models.RepositoryAnalysis{
		ChangedFiles:    changes,
		AllTrackedFiles: tracked,
		DefaultBranch:   defaultBranch,
		CurrentBranch:   currentBranch,
		RepositoryRoot:  s.git.Root(),
		TotalChanges:    len(changes),
		HasChanges:      len(changes) > 0,
	}, nil
}

func containsAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

// AnalyzePullRequests trae y parsea cada PR del batch en orden, secuencialmente.
// Una falla de fetch o de parseo nunca aborta el batch: el PR fallido se
// reemplaza por un placeholder con cero cambios y un summary que explica la
// falla. La detección de patrones corre una sola vez sobre el set completo.
func (s *Service) AnalyzePullRequests(ctx context.Context, requests []models.PRRequest, progress func(string)) (models.MultiPRAnalysis, error) {
	prDiffs := make([]models.PRDiff, 0, len(requests))

	for _, req := range requests {
		if progress != nil {
			progress(s.trans.GetMessage("fetching_pr", 0, map[string]interface{}{
				"Repo":   req.Repo,
				"Number": req.Number,
			}))
		}

		req = s.enrichDescription(ctx, req)

		raw, err := s.fetcher.FetchDiff(ctx, req.Repo, req.Number)
		if err != nil {
			prDiffs = append(prDiffs, placeholderDiff(req, "Failed to fetch PR", err))
			continue
		}

		prDiff, err := diffparse.ParsePRDiff(raw, req)
		if err != nil {
			prDiffs = append(prDiffs, placeholderDiff(req, "Failed to parse PR", err))
			continue
		}

		prDiffs = append(prDiffs, prDiff)
	}

	services := make(map[string]struct{})
	totalChanges := 0
	for _, prDiff := range prDiffs {
		services[prDiff.ServiceName()] = struct{}{}
		totalChanges += prDiff.TotalChanges
	}

	return models.MultiPRAnalysis{
		PRDiffs:              prDiffs,
		TotalServices:        len(services),
		TotalChanges:         totalChanges,
		CrossServicePatterns: s.detector.DetectPatterns(prDiffs),
		ServiceInteractions:  s.detector.DetectInteractions(prDiffs),
	}, nil
}

// enrichDescription completa la descripción del PR desde la API del VCS cuando
// el caller no la dio. Cualquier falla acá se ignora: es un enriquecimiento.
func (s *Service) enrichDescription(ctx context.Context, req models.PRRequest) models.PRRequest {
	if s.describer == nil || req.Description != "" {
		return req
	}
	if desc, err := s.describer.DescribePR(ctx, req.Repo, req.Number); err == nil && desc != "" {
		req.Description = desc
	}
	return req
}

func placeholderDiff(req models.PRRequest, label string, cause error) models.PRDiff {
	return models.PRDiff{
		Repo:          req.Repo,
		Number:        req.Number,
		Changes:       []models.PRChange{},
		TotalChanges:  0,
		Summary:       fmt.Sprintf("%s #%d from %s: %v", label, req.Number, req.Repo, cause),
		Description:   req.Description,
		FocusAreas:    req.FocusAreas,
		Failed:        true,
		FailureReason: cause.Error(),
	}
}
