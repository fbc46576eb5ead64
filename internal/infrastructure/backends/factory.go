// Package backends construye el backend de IA pedido por nombre.
package backends

import (
	"context"
	"fmt"
	"time"

	"github.com/Tomas-vilte/MateArch/internal/config"
	"github.com/Tomas-vilte/MateArch/internal/domain/ports"
	"github.com/Tomas-vilte/MateArch/internal/infrastructure/backends/cursoragent"
	"github.com/Tomas-vilte/MateArch/internal/infrastructure/backends/fabric"
	"github.com/Tomas-vilte/MateArch/internal/infrastructure/backends/gemini"
)

// Names lista los backends soportados, en el orden en que se documentan.
func Names() []string {
	return []string{"cursor-agent", "fabric", "gemini"}
}

// New crea el backend por nombre usando la configuración global.
func New(ctx context.Context, name string, cfg *config.Config, dryRun bool) (ports.AIBackend, error) {
	timeout := time.Duration(cfg.BackendTimeoutSeconds) * time.Second

	switch name {
	case "cursor-agent":
		return cursoragent.New(cursoragent.Config{
			Timeout:      timeout,
			UseForceFlag: true,
			DryRun:       dryRun,
		}), nil
	case "fabric":
		return fabric.New(fabric.Config{
			Timeout: timeout,
			DryRun:  dryRun,
		}), nil
	case "gemini":
		return gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, dryRun)
	default:
		return nil, fmt.Errorf("backend desconocido: %s (disponibles: %v)", name, Names())
	}
}
