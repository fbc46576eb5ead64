// Package fabric implementa el backend de IA sobre la CLI fabric-ai,
// que recibe el prompt por stdin y usa modelos locales.
package fabric

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	domainerrors "github.com/Tomas-vilte/MateArch/internal/domain/errors"
	"github.com/Tomas-vilte/MateArch/internal/domain/models"
	"github.com/Tomas-vilte/MateArch/internal/domain/ports"
)

const backendName = "fabric"

var _ ports.AIBackend = (*Backend)(nil)

// Config es la configuración del backend fabric.
type Config struct {
	// Timeout por llamada de generación. Cero usa el default de 300s.
	Timeout time.Duration

	// Model fuerza un modelo (-m). Vacío deja el default de fabric.
	Model string

	// DryRun devuelve una respuesta mock sin invocar la herramienta.
	DryRun bool

	// Tool permite reemplazar el binario en tests.
	Tool string
}

// Backend pipea el prompt a fabric-ai por stdin.
type Backend struct {
	cfg Config
}

// New crea el backend con los defaults completados.
func New(cfg Config) *Backend {
	if cfg.Timeout == 0 {
		cfg.Timeout = 300 * time.Second
	}
	if cfg.Tool == "" {
		cfg.Tool = "fabric-ai"
	}
	return &Backend{cfg: cfg}
}

// Name retorna el nombre del backend.
func (b *Backend) Name() string {
	return backendName
}

// IsAvailable verifica que el binario responda a --help.
func (b *Backend) IsAvailable(ctx context.Context) bool {
	if b.cfg.DryRun {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, b.cfg.Tool, "--help")
	return cmd.Run() == nil
}

// Generate envía el prompt por stdin. El flag force no aplica a fabric,
// está solo por compatibilidad de interfaz.
func (b *Backend) Generate(ctx context.Context, prompt string, _ bool) (models.AIResponse, error) {
	start := time.Now()

	if b.cfg.DryRun {
		return models.AIResponse{
			Content:  "## BUSINESS POSTURE\n\n(dry-run) Respuesta simulada de fabric.\n",
			Success:  true,
			Backend:  backendName,
			Metadata: map[string]string{"dry_run": "true"},
		}, nil
	}

	args := []string{}
	if b.cfg.Model != "" {
		args = append(args, "-m", b.cfg.Model)
	}

	ctx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, b.cfg.Tool, args...)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return models.AIResponse{}, domainerrors.NewBackendError(backendName,
			"timeout después de "+b.cfg.Timeout.String(), err)
	}
	if errors.Is(err, exec.ErrNotFound) {
		return models.AIResponse{}, domainerrors.NewBackendError(backendName,
			"comando no encontrado en el PATH", err)
	}
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = "error desconocido de fabric"
		}
		return models.AIResponse{}, domainerrors.NewBackendError(backendName, detail, err)
	}

	content := strings.TrimSpace(stdout.String())
	if content == "" {
		return models.AIResponse{}, domainerrors.NewBackendError(backendName, "respuesta vacía", nil)
	}

	return models.AIResponse{
		Content:        content,
		Success:        true,
		Backend:        backendName,
		ProcessingTime: time.Since(start).Seconds(),
		Metadata:       map[string]string{"model": b.cfg.Model},
	}, nil
}
