// Package docgen orquesta la generación de documentos de arquitectura:
// análisis git, armado del prompt, llamada al backend de IA y limpieza de la
// respuesta. Si el backend falla, el prompt se guarda a disco y se produce un
// documento de fallback en vez de abortar.
package docgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tomas-vilte/MateArch/internal/config"
	domainerrors "github.com/Tomas-vilte/MateArch/internal/domain/errors"
	"github.com/Tomas-vilte/MateArch/internal/domain/models"
	"github.com/Tomas-vilte/MateArch/internal/domain/ports"
	"github.com/Tomas-vilte/MateArch/internal/i18n"
	"github.com/Tomas-vilte/MateArch/internal/logger"
	"github.com/Tomas-vilte/MateArch/internal/services/analyzer"
)

// AnalysisService es lo que docgen necesita del aggregator de análisis.
type AnalysisService interface {
	AnalyzeRepository(ctx context.Context, opts analyzer.RepositoryOptions) (models.RepositoryAnalysis, error)
	AnalyzePullRequests(ctx context.Context, requests []models.PRRequest, progress func(string)) (models.MultiPRAnalysis, error)
}

// ErrUpToDate indica que no hay cambios y el documento existente sigue vigente.
var ErrUpToDate = errors.New("el documento de arquitectura está al día")

// Service es el motor de generación de documentación.
type Service struct {
	analysis AnalysisService
	patterns ports.PatternService
	backend  ports.AIBackend
	trans    *i18n.Translations
}

// NewService crea el servicio de generación.
func NewService(analysis AnalysisService, patterns ports.PatternService, backend ports.AIBackend, trans *i18n.Translations) *Service {
	return &Service{
		analysis: analysis,
		patterns: patterns,
		backend:  backend,
		trans:    trans,
	}
}

// GenerateFresh genera documentación nueva a partir del análisis completo del codebase.
func (s *Service) GenerateFresh(ctx context.Context, opts *config.RunOptions, excluded []string, progress func(string)) (*models.ArchitectureDocument, error) {
	if progress != nil {
		progress(s.trans.GetMessage("analyzing_repository", 0, nil))
	}
	analysis, err := s.analysis.AnalyzeRepository(ctx, analyzer.RepositoryOptions{
		BaseBranch:       opts.BaseBranch,
		PathFilter:       opts.PathFilter,
		ExcludedPatterns: excluded,
	})
	if err != nil {
		return nil, err
	}

	if progress != nil {
		progress(s.trans.GetMessage("generating_structure", 0, nil))
	}
	structure := s.directoryStructure(ctx, opts.AnalysisTarget, analysis.AllTrackedFiles)

	if progress != nil {
		progress(s.trans.GetMessage("creating_prompt", 0, nil))
	}
	prompt, err := s.patterns.CreateFreshPrompt(ports.FreshPromptInput{
		ProjectName:        opts.ProjectName,
		AnalysisTarget:     opts.AnalysisTarget,
		TrackedFiles:       analysis.AllTrackedFiles,
		DirectoryStructure: structure,
		Git:                gitInfo(analysis),
	})
	if err != nil {
		return nil, err
	}

	return s.generateDocument(ctx, prompt, opts.DocPath, false, freshFallbackContext{
		opts:     opts,
		analysis: analysis,
	}, progress)
}

// UpdateFromChanges actualiza el documento según los cambios de git.
//
// Sin cambios y con documento existente retorna ErrUpToDate; sin cambios y sin
// documento cae al modo fresh.
func (s *Service) UpdateFromChanges(ctx context.Context, opts *config.RunOptions, excluded []string, progress func(string)) (*models.ArchitectureDocument, error) {
	if progress != nil {
		progress(s.trans.GetMessage("analyzing_repository", 0, nil))
	}
	analysis, err := s.analysis.AnalyzeRepository(ctx, analyzer.RepositoryOptions{
		BaseBranch:       opts.BaseBranch,
		PathFilter:       opts.PathFilter,
		ExcludedPatterns: excluded,
	})
	if err != nil {
		return nil, err
	}

	if progress != nil {
		progress(s.trans.GetMessage("checking_changes", 0, nil))
	}
	if !analysis.HasChanges {
		if _, err := os.Stat(opts.DocPath); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrUpToDate, s.trans.GetMessage("no_changes_up_to_date", 0, map[string]interface{}{
				"Default": analysis.DefaultBranch,
				"Current": analysis.CurrentBranch,
			}))
		}
		if progress != nil {
			progress(s.trans.GetMessage("falling_back_fresh", 0, nil))
		}
		return s.GenerateFresh(ctx, opts, excluded, progress)
	}

	if progress != nil {
		progress(s.trans.GetMessage("changed_files_count", len(analysis.ChangedFiles), map[string]interface{}{
			"Count": len(analysis.ChangedFiles),
		}))
	}
	summary := summarizeChanges(analysis.ChangedFiles)

	if existing, err := os.ReadFile(opts.DocPath); err == nil {
		return s.updateExisting(ctx, opts, analysis, string(existing), summary, progress)
	}

	return s.createFromChanges(ctx, opts, analysis, summary, progress)
}

func (s *Service) updateExisting(ctx context.Context, opts *config.RunOptions, analysis models.RepositoryAnalysis, existing, summary string, progress func(string)) (*models.ArchitectureDocument, error) {
	prompt, err := s.patterns.CreateUpdatePrompt(ports.UpdatePromptInput{
		ExistingDoc:    existing,
		ChangesSummary: summary,
		Git:            gitInfo(analysis),
	})
	if err != nil {
		return nil, err
	}

	// force: las actualizaciones pueden pisar el análisis previo del backend.
	return s.generateDocument(ctx, prompt, opts.DocPath, true, freshFallbackContext{
		opts:     opts,
		analysis: analysis,
		summary:  summary,
		mode:     "update",
	}, progress)
}

func (s *Service) createFromChanges(ctx context.Context, opts *config.RunOptions, analysis models.RepositoryAnalysis, summary string, progress func(string)) (*models.ArchitectureDocument, error) {
	changedPaths := make([]string, 0, len(analysis.ChangedFiles))
	for _, change := range analysis.ChangedFiles {
		changedPaths = append(changedPaths, change.FilePath)
	}

	structure := s.directoryStructure(ctx, opts.AnalysisTarget, analysis.AllTrackedFiles)

	prompt, err := s.patterns.CreateFreshPrompt(ports.FreshPromptInput{
		ProjectName:        opts.ProjectName,
		AnalysisTarget:     opts.AnalysisTarget,
		TrackedFiles:       changedPaths,
		DirectoryStructure: structure,
		Git:                gitInfo(analysis),
	})
	if err != nil {
		return nil, err
	}

	prompt += "\n\n## FOCUS ON RECENT CHANGES\n\n" +
		"**IMPORTANT**: This analysis should focus on the recent git changes shown below, " +
		"as no existing architecture document was found:\n\n" + summary + "\n"

	return s.generateDocument(ctx, prompt, opts.DocPath, false, freshFallbackContext{
		opts:     opts,
		analysis: analysis,
		summary:  summary,
		mode:     "create_from_changes",
	}, progress)
}

// GenerateDistributed corre el análisis multi-PR y genera el documento de
// impacto arquitectónico del batch.
func (s *Service) GenerateDistributed(ctx context.Context, requests []models.PRRequest, docPath string, progress func(string)) (models.MultiPRAnalysis, *models.ArchitectureDocument, error) {
	analysis, err := s.analysis.AnalyzePullRequests(ctx, requests, progress)
	if err != nil {
		return models.MultiPRAnalysis{}, nil, err
	}

	if progress != nil {
		progress(s.trans.GetMessage("creating_prompt", 0, nil))
	}
	prompt, err := s.patterns.CreateDistributedPrompt(analysis)
	if err != nil {
		return analysis, nil, err
	}

	doc, err := s.generateDocument(ctx, prompt, docPath, false, freshFallbackContext{
		mode:     "distributed",
		analysis: models.RepositoryAnalysis{},
	}, progress)
	return analysis, doc, err
}

// generateDocument llama al backend y convierte la respuesta en documento.
// Ante una falla del backend guarda el prompt y retorna el documento de fallback.
func (s *Service) generateDocument(ctx context.Context, prompt, docPath string, force bool, fb freshFallbackContext, progress func(string)) (*models.ArchitectureDocument, error) {
	if progress != nil {
		progress(s.trans.GetMessage("calling_backend", 0, map[string]interface{}{
			"Backend": s.backend.Name(),
		}))
	}

	response, err := s.backend.Generate(ctx, prompt, force)
	if err == nil && !response.Success {
		err = domainerrors.NewBackendError(s.backend.Name(), "el backend reportó una falla", nil)
	}
	if err != nil {
		logger.Warn(ctx, "el backend de IA falló, guardando el prompt para procesamiento manual", "error", err)
		promptPath := fallbackPromptPath(docPath)
		if writeErr := os.WriteFile(promptPath, []byte(prompt), 0644); writeErr != nil {
			return nil, domainerrors.NewBackendError(s.backend.Name(), "no se pudo guardar el prompt de fallback", writeErr)
		}
		if progress != nil {
			progress(s.trans.GetMessage("prompt_saved_fallback", 0, map[string]interface{}{
				"Path": promptPath,
			}))
		}
		return &models.ArchitectureDocument{
			Content:  fb.errorContent(s.backend.Name(), err, promptPath),
			FilePath: docPath,
		}, nil
	}

	if progress != nil {
		progress(s.trans.GetMessage("processing_response", 0, nil))
	}
	return &models.ArchitectureDocument{
		Content:  CleanResponse(response.Content),
		FilePath: docPath,
	}, nil
}

func fallbackPromptPath(docPath string) string {
	stem := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	return filepath.Join(filepath.Dir(docPath), stem+"_prompt.txt")
}

func gitInfo(analysis models.RepositoryAnalysis) ports.GitInfo {
	return ports.GitInfo{
		Root:          analysis.RepositoryRoot,
		CurrentBranch: analysis.CurrentBranch,
		DefaultBranch: analysis.DefaultBranch,
	}
}

type freshFallbackContext struct {
	opts     *config.RunOptions
	analysis models.RepositoryAnalysis
	summary  string
	mode     string
}

func (fb freshFallbackContext) errorContent(backend string, cause error, promptPath string) string {
	var b strings.Builder

	projectName := "unknown"
	if fb.opts != nil {
		projectName = fb.opts.ProjectName
	}

	fmt.Fprintf(&b, "# Architecture Documentation for %s\n\n", projectName)
	b.WriteString("## Error: AI Backend Failed\n\n")
	fmt.Fprintf(&b, "**Error Details:**\n%v\n\n", cause)
	b.WriteString("**Configuration:**\n")
	if fb.mode != "" {
		fmt.Fprintf(&b, "- Mode: %s\n", fb.mode)
	} else {
		b.WriteString("- Mode: fresh\n")
	}
	fmt.Fprintf(&b, "- AI Backend: %s\n", backend)
	if fb.analysis.TotalChanges > 0 {
		fmt.Fprintf(&b, "- Changes: %d files modified\n", fb.analysis.TotalChanges)
	} else if len(fb.analysis.AllTrackedFiles) > 0 {
		fmt.Fprintf(&b, "- Files Analyzed: %d\n", len(fb.analysis.AllTrackedFiles))
	}
	b.WriteString("\n")

	if fb.summary != "" {
		fmt.Fprintf(&b, "**Changes Summary:**\n%s\n\n", fb.summary)
	}

	fmt.Fprintf(&b, "**Fallback Action:**\nThe prompt has been saved to: %s\n\n", promptPath)
	fmt.Fprintf(&b, "You can manually process it with:\n`%s < %s`\n", backend, promptPath)

	return b.String()
}
