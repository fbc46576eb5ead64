package models

import "strings"

type (
	// PRRequest identifica un Pull Request a analizar dentro de un batch distribuido.
	PRRequest struct {
		// Repo en formato "owner/nombre".
		Repo string

		// Number es el número del PR en ese repositorio.
		Number int

		// Description es una descripción opcional provista por el caller.
		Description string

		// FocusAreas son temas opcionales en los que enfocar el análisis.
		FocusAreas []string
	}

	// PRChange es un cambio de archivo dentro del diff de un Pull Request.
	// Comparte el mismo ChangeType cerrado que Change.
	PRChange struct {
		FilePath     string
		ChangeType   ChangeType
		LinesAdded   int
		LinesRemoved int
		OldPath      string

		PRNumber int
		Repo     string
	}

	// PRDiff es la foto completa de un Pull Request: sus cambios parseados
	// más el texto crudo del diff, que se conserva para los escaneos heurísticos.
	PRDiff struct {
		Repo         string
		Number       int
		Changes      []PRChange
		TotalChanges int

		// Summary es el texto derivado para el prompt. Si el fetch falló,
		// explica la falla ("Failed to fetch PR ...").
		Summary string

		// Description y FocusAreas vienen del PRRequest original.
		Description string
		FocusAreas  []string

		// RawDiff es el unified diff completo tal como lo devolvió la herramienta.
		RawDiff string

		// Failed y FailureReason hacen el resultado distinguible por máquina,
		// sin tener que inspeccionar el Summary.
		Failed        bool
		FailureReason string
	}

	// MultiPRAnalysis agrega los diffs de un batch de PRs de varios repositorios.
	MultiPRAnalysis struct {
		// PRDiffs en el mismo orden que los PRRequest de entrada.
		PRDiffs []PRDiff

		// TotalServices es la cantidad de nombres de servicio distintos del batch.
		TotalServices int

		// TotalChanges es la suma de TotalChanges de cada PRDiff.
		TotalChanges int

		// CrossServicePatterns mapea categoría -> descriptores "servicio: ruta".
		CrossServicePatterns map[string][]string

		// ServiceInteractions mapea servicio -> otro servicio -> evidencias.
		ServiceInteractions map[string]map[string][]string
	}
)

// ServiceName deriva el nombre del servicio: el último segmento de "owner/repo".
func (d PRDiff) ServiceName() string {
	if idx := strings.LastIndex(d.Repo, "/"); idx >= 0 {
		return d.Repo[idx+1:]
	}
	return d.Repo
}
