// Package cursoragent implementa el backend de IA sobre la CLI cursor-agent.
package cursoragent

import (
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strconv"
	"strings"
	"time"

	domainerrors "github.com/Tomas-vilte/MateArch/internal/domain/errors"
	"github.com/Tomas-vilte/MateArch/internal/domain/models"
	"github.com/Tomas-vilte/MateArch/internal/domain/ports"
)

const backendName = "cursor-agent"

var _ ports.AIBackend = (*Backend)(nil)

// Config es la configuración del backend cursor-agent.
type Config struct {
	// Timeout por llamada de generación. Cero usa el default de 300s.
	Timeout time.Duration

	// OutputFormat del comando, por defecto "json".
	OutputFormat string

	// UseForceFlag habilita pasar --force en actualizaciones.
	UseForceFlag bool

	// DryRun devuelve una respuesta mock sin invocar la herramienta.
	DryRun bool

	// tool permite reemplazar el binario en tests.
	Tool string
}

// Backend invoca `cursor-agent -p --output-format json <prompt>`.
type Backend struct {
	cfg Config
}

// New crea el backend con los defaults completados.
func New(cfg Config) *Backend {
	if cfg.Timeout == 0 {
		cfg.Timeout = 300 * time.Second
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "json"
	}
	if cfg.Tool == "" {
		cfg.Tool = backendName
	}
	return &Backend{cfg: cfg}
}

// Name retorna el nombre del backend.
func (b *Backend) Name() string {
	return backendName
}

// IsAvailable verifica que el binario responda a --version.
func (b *Backend) IsAvailable(ctx context.Context) bool {
	if b.cfg.DryRun {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, b.cfg.Tool, "--version")
	return cmd.Run() == nil
}

// Generate envía el prompt y extrae el campo "result" de la respuesta JSON.
// Si el stdout no es JSON válido se usa el texto crudo.
func (b *Backend) Generate(ctx context.Context, prompt string, force bool) (models.AIResponse, error) {
	start := time.Now()

	if b.cfg.DryRun {
		return mockResponse(prompt), nil
	}

	args := []string{"-p", "--output-format", b.cfg.OutputFormat}
	if force && b.cfg.UseForceFlag {
		args = append(args, "--force")
	}
	args = append(args, prompt)

	ctx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, b.cfg.Tool, args...)

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
			detail = "error desconocido de cursor-agent"
		}
		return models.AIResponse{}, domainerrors.NewBackendError(backendName, detail, err)
	}

	content := extractResult(stdout.String())
	if content == "" {
		return models.AIResponse{}, domainerrors.NewBackendError(backendName,
			"respuesta vacía", nil)
	}

	return models.AIResponse{
		Content:        content,
		Success:        true,
		Backend:        backendName,
		ProcessingTime: time.Since(start).Seconds(),
		Metadata: map[string]string{
			"output_format": b.cfg.OutputFormat,
		},
	}, nil
}

func extractResult(stdout string) string {
	var payload struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal([]byte(stdout), &payload); err == nil && payload.Result != "" {
		return payload.Result
	}
	return strings.TrimSpace(stdout)
}

func mockResponse(prompt string) models.AIResponse {
	return models.AIResponse{
		Content: "## BUSINESS POSTURE\n\n(dry-run) Respuesta simulada de cursor-agent.\n\n" +
			"Prompt length: " + strconv.Itoa(len(prompt)) + " chars\n",
		Success: true,
		Backend: backendName,
		Metadata: map[string]string{
			"dry_run": "true",
		},
	}
}
