package models

// ChangeType clasifica un cambio de archivo dentro de un diff.
// Se usa el mismo conjunto cerrado tanto para el análisis local
// como para los cambios que vienen de Pull Requests.
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeDeleted  ChangeType = "deleted"
	ChangeRenamed  ChangeType = "renamed"
)

// Title retorna la etiqueta legible del tipo de cambio (ej: "Added").
func (ct ChangeType) Title() string {
	switch ct {
	case ChangeAdded:
		return "Added"
	case ChangeModified:
		return "Modified"
	case ChangeDeleted:
		return "Deleted"
	case ChangeRenamed:
		return "Renamed"
	}
	return string(ct)
}

type (
	// Change representa un único cambio de archivo entre dos revisiones.
	// Es un valor inmutable: se crea una vez por entrada del diff.
	Change struct {
		// FilePath es la ruta relativa del archivo. Para renombres es la ruta nueva.
		FilePath string

		// ChangeType indica cómo cambió el archivo.
		ChangeType ChangeType

		// LinesAdded y LinesRemoved son conteos aproximados de líneas +/- del diff.
		LinesAdded   int
		LinesRemoved int

		// OldPath es la ruta anterior. Solo está presente cuando ChangeType es ChangeRenamed.
		OldPath string
	}

	// RepositoryAnalysis es el resultado del análisis git de un único repositorio.
	RepositoryAnalysis struct {
		// ChangedFiles en el orden en que aparecen en el diff.
		ChangedFiles []Change

		// AllTrackedFiles son las rutas versionadas que existen en el working tree,
		// ya filtradas por los patrones de exclusión.
		AllTrackedFiles []string

		DefaultBranch  string
		CurrentBranch  string
		RepositoryRoot string

		TotalChanges int
		HasChanges   bool
	}
)
