package ports

import "github.com/Tomas-vilte/MateArch/internal/domain/models"

type (
	// GitInfo es el contexto git que se incluye en los prompts.
	GitInfo struct {
		Root          string
		CurrentBranch string
		DefaultBranch string
	}

	// FreshPromptInput son los datos de un análisis completo del codebase.
	FreshPromptInput struct {
		ProjectName        string
		AnalysisTarget     string
		TrackedFiles       []string
		DirectoryStructure string
		Git                GitInfo
	}

	// UpdatePromptInput son los datos para actualizar un documento existente.
	UpdatePromptInput struct {
		ExistingDoc    string
		ChangesSummary string
		Git            GitInfo
	}
)

// PatternService construye los prompts completos a partir de los templates de patrón.
type PatternService interface {
	CreateFreshPrompt(input FreshPromptInput) (string, error)
	CreateUpdatePrompt(input UpdatePromptInput) (string, error)
	CreateDistributedPrompt(analysis models.MultiPRAnalysis) (string, error)
}
