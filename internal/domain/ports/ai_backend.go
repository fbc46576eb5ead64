package ports

import (
	"context"

	"github.com/Tomas-vilte/MateArch/internal/domain/models"
)

// AIBackend define la interfaz que implementa cada backend de IA
// (cursor-agent, fabric, gemini).
type AIBackend interface {
	// Generate envía el prompt completo al backend y retorna la respuesta normalizada.
	// force se usa en actualizaciones, para backends que soportan ese flag.
	Generate(ctx context.Context, prompt string, force bool) (models.AIResponse, error)

	// IsAvailable verifica si el backend está instalado y configurado.
	IsAvailable(ctx context.Context) bool

	// Name retorna el nombre del backend (ej: "cursor-agent").
	Name() string
}
