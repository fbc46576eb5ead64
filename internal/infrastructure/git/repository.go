package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	domainerrors "github.com/Tomas-vilte/MateArch/internal/domain/errors"
	"github.com/Tomas-vilte/MateArch/internal/domain/models"
	"github.com/Tomas-vilte/MateArch/internal/domain/ports"
	"github.com/Tomas-vilte/MateArch/internal/services/diffparse"
	"github.com/Tomas-vilte/MateArch/internal/services/patterns"
)

var _ ports.GitService = (*Repository)(nil)

// Repository es el handle sobre un repositorio git local.
// Envuelve los comandos git con exec, igual que el resto de las
// integraciones externas de la herramienta.
type Repository struct {
	root string

	// defaultBranch se memoiza: se calcula una sola vez por handle.
	defaultBranch string

	trackedExclusions *patterns.Matcher
}

// NewRepository busca la raíz del repositorio subiendo desde path hasta
// encontrar un directorio .git. Falla si path no está dentro de un repositorio.
func NewRepository(path string) (*Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, domainerrors.NewGitError("init", "ruta inválida: "+path, err)
	}

	current := abs
	for {
		if info, err := os.Stat(filepath.Join(current, ".git")); err == nil && info.IsDir() {
			return &Repository{
				root:              current,
				trackedExclusions: patterns.DefaultTrackedExclusions(),
			}, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return nil, domainerrors.NewGitError("init", "no es un repositorio git: "+path, nil)
}

// WithExtraExclusions agrega patrones substring del usuario al filtro de
// archivos trackeados.
func (r *Repository) WithExtraExclusions(extra ...string) *Repository {
	if len(extra) > 0 {
		r.trackedExclusions = r.trackedExclusions.WithExtra(extra...)
	}
	return r
}

// Root retorna la raíz absoluta del repositorio.
func (r *Repository) Root() string {
	return r.root
}

// run ejecuta un comando git dentro del repositorio y captura stdout.
func (r *Repository) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.root

	var stderr strings.Builder
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return "", domainerrors.NewGitError(args[0], strings.TrimSpace(stderr.String()), err)
	}
	return string(output), nil
}

// DefaultBranch detecta la rama por defecto del repositorio.
//
// Orden de resolución: origin/HEAD simbólico, primera rama local de
// {main, master, develop} que exista, rama actual, y por último "main".
func (r *Repository) DefaultBranch(ctx context.Context) (string, error) {
	if r.defaultBranch != "" {
		return r.defaultBranch, nil
	}

	// git symbolic-ref refs/remotes/origin/HEAD -> refs/remotes/origin/main
	if out, err := r.run(ctx, "symbolic-ref", "refs/remotes/origin/HEAD"); err == nil {
		ref := strings.TrimSpace(out)
		if idx := strings.LastIndex(ref, "/"); idx >= 0 && ref[idx+1:] != "" {
			r.defaultBranch = ref[idx+1:]
			return r.defaultBranch, nil
		}
	}

	for _, name := range []string{"main", "master", "develop"} {
		if r.localBranchExists(ctx, name) {
			r.defaultBranch = name
			return r.defaultBranch, nil
		}
	}

	if branch, err := r.CurrentBranch(ctx); err == nil && branch != "" {
		r.defaultBranch = branch
		return r.defaultBranch, nil
	}

	r.defaultBranch = "main"
	return r.defaultBranch, nil
}

func (r *Repository) localBranchExists(ctx context.Context, name string) bool {
	cmd := exec.CommandContext(ctx, "git", "show-ref", "--verify", "--quiet", "refs/heads/"+name)
	cmd.Dir = r.root
	return cmd.Run() == nil
}

// CurrentBranch retorna el nombre de la rama actual.
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "branch", "--show-current")
	if err != nil {
		return "", err
	}

	branch := strings.TrimSpace(out)
	if branch == "" {
		return "", domainerrors.NewGitError("branch", "no se pudo detectar la rama actual", nil)
	}
	return branch, nil
}

// ChangedFiles calcula los cambios entre la base y el HEAD actual.
//
// La revisión base se intenta como origin/<base>, después como <base> local y
// después como HEAD~1. Si ninguna existe (repositorio con un solo commit) el
// resultado es vacío, no un error.
func (r *Repository) ChangedFiles(ctx context.Context, baseBranch, pathFilter string) ([]models.Change, error) {
	base := baseBranch
	if base == "" {
		detected, err := r.DefaultBranch(ctx)
		if err != nil {
			return nil, err
		}
		base = detected
	}

	baseRev := ""
	for _, candidate := range []string{"origin/" + base, base, "HEAD~1"} {
		if r.revisionExists(ctx, candidate) {
			baseRev = candidate
			break
		}
	}
	if baseRev == "" {
		// Primer commit del repositorio: no hay contra qué diffear.
		return []models.Change{}, nil
	}

	raw, err := r.run(ctx, "diff", "-M", baseRev, "HEAD")
	if err != nil {
		return nil, err
	}

	parsed, err := diffparse.ParseFileChanges(raw)
	if err != nil {
		return nil, domainerrors.NewGitError("diff", "no se pudo parsear el diff", err)
	}

	if pathFilter == "" {
		return parsed, nil
	}

	filtered := make([]models.Change, 0, len(parsed))
	for _, change := range parsed {
		if strings.HasPrefix(change.FilePath, pathFilter) {
			filtered = append(filtered, change)
		}
	}
	return filtered, nil
}

func (r *Repository) revisionExists(ctx context.Context, rev string) bool {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--verify", "--quiet", rev+"^{commit}")
	cmd.Dir = r.root
	return cmd.Run() == nil
}

// TrackedFiles lista las rutas versionadas que existen en el working tree,
// aplicando el filtro de prefijo y el set de exclusión substring.
func (r *Repository) TrackedFiles(ctx context.Context, pathFilter string) ([]string, error) {
	out, err := r.run(ctx, "ls-files")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	files := make([]string, 0)
	for _, line := range strings.Split(out, "\n") {
		path := strings.TrimSpace(line)
		if path == "" {
			continue
		}
		if pathFilter != "" && !strings.HasPrefix(path, pathFilter) {
			continue
		}
		if r.trackedExclusions.Excluded(path) {
			continue
		}
		if _, dup := seen[path]; dup {
			continue
		}

		// Un archivo puede seguir trackeado pero ya no existir en disco.
		if _, err := os.Stat(filepath.Join(r.root, path)); err != nil {
			continue
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	return files, nil
}
