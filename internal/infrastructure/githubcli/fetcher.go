// Package githubcli envuelve la CLI de GitHub (gh) para traer diffs de Pull Requests.
package githubcli

import (
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"
	"time"

	domainerrors "github.com/Tomas-vilte/MateArch/internal/domain/errors"
	"github.com/Tomas-vilte/MateArch/internal/domain/ports"
)

var _ ports.PRDiffFetcher = (*Fetcher)(nil)

// DefaultTimeout es el tiempo máximo por fetch de PR.
const DefaultTimeout = 30 * time.Second

// Fetcher trae unified diffs de PRs invocando `gh pr diff`.
type Fetcher struct {
	// tool permite reemplazar el binario en tests.
	tool    string
	timeout time.Duration
}

// NewFetcher crea un fetcher con el timeout por defecto de 30 segundos.
func NewFetcher() *Fetcher {
	return &Fetcher{tool: "gh", timeout: DefaultTimeout}
}

// NewFetcherWithTool crea un fetcher con binario y timeout explícitos.
func NewFetcherWithTool(tool string, timeout time.Duration) *Fetcher {
	return &Fetcher{tool: tool, timeout: timeout}
}

// FetchDiff invoca `gh pr diff <number> -R <repo>` y retorna el stdout como texto.
//
// Cada falla se reporta distinguible: binario ausente, timeout, o exit code
// distinto de cero (con el stderr de la herramienta como detalle).
func (f *Fetcher) FetchDiff(ctx context.Context, repo string, number int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, f.tool, "pr", "diff", strconv.Itoa(number), "-R", repo)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", domainerrors.NewPRFetchError(repo, number, domainerrors.PRFetchTimeout, "", err)
	}

	if errors.Is(err, exec.ErrNotFound) {
		return "", domainerrors.NewPRFetchError(repo, number, domainerrors.PRFetchToolNotFound, "", err)
	}

	return "", domainerrors.NewPRFetchError(repo, number, domainerrors.PRFetchExitError,
		strings.TrimSpace(stderr.String()), err)
}
