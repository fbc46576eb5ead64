package ports

import (
	"context"

	"github.com/Tomas-vilte/MateArch/internal/domain/models"
)

// GitService define las operaciones git que necesita el análisis de un repositorio.
type GitService interface {
	// DefaultBranch detecta la rama por defecto del repositorio.
	// El resultado se memoiza por handle.
	DefaultBranch(ctx context.Context) (string, error)

	// CurrentBranch retorna la rama actualmente checkouteada.
	CurrentBranch(ctx context.Context) (string, error)

	// ChangedFiles calcula los cambios entre la rama base y el HEAD actual.
	// Si baseBranch es vacío se usa la rama por defecto. pathFilter opcionalmente
	// restringe el resultado a rutas con ese prefijo.
	ChangedFiles(ctx context.Context, baseBranch, pathFilter string) ([]models.Change, error)

	// TrackedFiles lista todas las rutas versionadas que existen en disco.
	TrackedFiles(ctx context.Context, pathFilter string) ([]string, error)

	// Root retorna la raíz absoluta del repositorio.
	Root() string
}
