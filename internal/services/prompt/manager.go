// Package prompt carga los templates de patrón y construye los prompts
// completos que se mandan a los backends de IA. Los templates embebidos se
// pueden pisar con un directorio en disco y extender con un patrón adicional
// que se antepone al built-in.
package prompt

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	domainerrors "github.com/Tomas-vilte/MateArch/internal/domain/errors"
	"github.com/Tomas-vilte/MateArch/internal/domain/models"
	"github.com/Tomas-vilte/MateArch/internal/domain/ports"
)

//go:embed templates/*.md
var builtinTemplates embed.FS

const (
	patternCreate      = "create_design_document"
	patternUpdate      = "update_arch_diagram"
	patternDistributed = "distributed_analysis"

	// maxListedFiles limita cuántos archivos se listan en el prompt fresh.
	maxListedFiles = 50

	// maxDetailedChanges limita el detalle por PR en el prompt distribuido.
	maxDetailedChanges = 10
)

var _ ports.PatternService = (*Manager)(nil)

// Manager administra los templates de patrón, con cache por nombre.
type Manager struct {
	// patternsDir pisa los templates embebidos si está seteado.
	patternsDir string

	// extendPatternPath es un patrón del usuario que se antepone al built-in.
	extendPatternPath string

	mu    sync.Mutex
	cache map[string]string
}

// NewManager crea un manager de patrones. Ambos argumentos pueden ser vacíos.
func NewManager(patternsDir, extendPatternPath string) *Manager {
	return &Manager{
		patternsDir:       patternsDir,
		extendPatternPath: extendPatternPath,
		cache:             make(map[string]string),
	}
}

func (m *Manager) loadPattern(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cached, ok := m.cache[name]; ok {
		return cached, nil
	}

	content, err := m.readPattern(name)
	if err != nil {
		return "", domainerrors.NewPatternError(name, err)
	}

	m.cache[name] = string(content)
	return m.cache[name], nil
}

// readPattern busca el template: primero en el directorio de override y si
// no está ahí, en los embebidos. Que el override no tenga el archivo (o que
// el directorio no exista) no es error; cualquier otra falla de lectura sí.
func (m *Manager) readPattern(name string) ([]byte, error) {
	if m.patternsDir != "" {
		content, err := os.ReadFile(filepath.Join(m.patternsDir, name+".md"))
		if err == nil {
			return content, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return builtinTemplates.ReadFile("templates/" + name + ".md")
}

func (m *Manager) loadExtension() (string, error) {
	if m.extendPatternPath == "" {
		return "", nil
	}
	content, err := os.ReadFile(m.extendPatternPath)
	if err != nil {
		return "", domainerrors.NewPatternError(m.extendPatternPath, err)
	}
	return strings.TrimSpace(string(content)), nil
}

func (m *Manager) getPattern(name string) (string, error) {
	builtin, err := m.loadPattern(name)
	if err != nil {
		return "", err
	}

	extension, err := m.loadExtension()
	if err != nil {
		return "", err
	}
	if extension != "" {
		return extension + "\n\n# BASE PATTERN FOLLOWS\n\n" + builtin, nil
	}
	return builtin, nil
}

// CreateFreshPrompt arma el prompt para un análisis completo del codebase.
// El template ya contiene las instrucciones: acá solo se apendea la data real
// después de su marcador "# INPUT:".
func (m *Manager) CreateFreshPrompt(input ports.FreshPromptInput) (string, error) {
	pattern, err := m.getPattern(patternCreate)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nProject Name: %s\n", input.ProjectName)
	fmt.Fprintf(&b, "Analysis Target: %s\n", input.AnalysisTarget)
	fmt.Fprintf(&b, "Git Repository: %s\n", input.Git.Root)
	fmt.Fprintf(&b, "Current Branch: %s\n", input.Git.CurrentBranch)
	fmt.Fprintf(&b, "Default Branch: %s\n\n", input.Git.DefaultBranch)

	b.WriteString("Directory Structure:\n```\n")
	b.WriteString(input.DirectoryStructure)
	b.WriteString("\n```\n\n")

	fmt.Fprintf(&b, "Files to Analyze (%d total):\n", len(input.TrackedFiles))
	for i, file := range input.TrackedFiles {
		if i >= maxListedFiles {
			b.WriteString("...\n")
			break
		}
		fmt.Fprintf(&b, "- %s\n", file)
	}

	return pattern + "\n" + b.String(), nil
}

// CreateUpdatePrompt arma el prompt de actualización: documento existente
// más el resumen de cambios.
func (m *Manager) CreateUpdatePrompt(input ports.UpdatePromptInput) (string, error) {
	pattern, err := m.getPattern(patternUpdate)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("\nDESIGN DOCUMENT:\n\n")
	b.WriteString(input.ExistingDoc)
	b.WriteString("\n\nCODE CHANGES:\n\nGit Information:\n")
	fmt.Fprintf(&b, "- Current Branch: %s\n", input.Git.CurrentBranch)
	fmt.Fprintf(&b, "- Default Branch: %s\n", input.Git.DefaultBranch)
	fmt.Fprintf(&b, "- Git Repository: %s\n\n", input.Git.Root)
	b.WriteString(input.ChangesSummary)
	b.WriteString("\n")

	return pattern + "\n" + b.String(), nil
}

// CreateDistributedPrompt arma el prompt del análisis multi-PR, incluyendo los
// patrones cruzados y las interacciones detectadas.
func (m *Manager) CreateDistributedPrompt(analysis models.MultiPRAnalysis) (string, error) {
	pattern, err := m.getPattern(patternDistributed)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nServices in batch: %d\n", analysis.TotalServices)
	fmt.Fprintf(&b, "Total changed files: %d\n\n", analysis.TotalChanges)

	for _, prDiff := range analysis.PRDiffs {
		fmt.Fprintf(&b, "## %s (PR #%d, %s)\n\n", prDiff.ServiceName(), prDiff.Number, prDiff.Repo)
		fmt.Fprintf(&b, "%s\n\n", prDiff.Summary)

		if len(prDiff.FocusAreas) > 0 {
			fmt.Fprintf(&b, "Focus areas: %s\n\n", strings.Join(prDiff.FocusAreas, ", "))
		}

		for i, change := range prDiff.Changes {
			if i >= maxDetailedChanges {
				fmt.Fprintf(&b, "... and %d more files\n", len(prDiff.Changes)-maxDetailedChanges)
				break
			}
			fmt.Fprintf(&b, "- %s: %s (+%d/-%d)\n",
				change.ChangeType.Title(), change.FilePath, change.LinesAdded, change.LinesRemoved)
		}
		b.WriteString("\n")
	}

	if len(analysis.CrossServicePatterns) > 0 {
		b.WriteString("## Cross-service patterns\n\n")
		for _, category := range sortedKeys(analysis.CrossServicePatterns) {
			fmt.Fprintf(&b, "%s:\n", category)
			for _, entry := range analysis.CrossServicePatterns[category] {
				fmt.Fprintf(&b, "- %s\n", entry)
			}
		}
		b.WriteString("\n")
	}

	if len(analysis.ServiceInteractions) > 0 {
		b.WriteString("## Service interactions\n\n")
		for _, source := range sortedKeys(analysis.ServiceInteractions) {
			targets := analysis.ServiceInteractions[source]
			for _, target := range sortedKeys(targets) {
				fmt.Fprintf(&b, "%s -> %s:\n", source, target)
				for _, evidence := range targets[target] {
					fmt.Fprintf(&b, "- %s\n", evidence)
				}
			}
		}
	}

	return pattern + "\n" + b.String(), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
