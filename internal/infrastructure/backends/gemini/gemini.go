// Package gemini implementa el backend de IA sobre la API de Gemini,
// como alternativa a las CLIs locales.
package gemini

import (
	"context"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	domainerrors "github.com/Tomas-vilte/MateArch/internal/domain/errors"
	"github.com/Tomas-vilte/MateArch/internal/domain/models"
	"github.com/Tomas-vilte/MateArch/internal/domain/ports"
)

const backendName = "gemini"

var _ ports.AIBackend = (*Backend)(nil)

// Backend genera documentos usando un modelo generativo de Gemini.
type Backend struct {
	client *genai.Client
	model  *genai.GenerativeModel
	dryRun bool
}

// New crea el backend. Falla si la API key está vacía.
func New(ctx context.Context, apiKey, modelName string, dryRun bool) (*Backend, error) {
	if dryRun {
		return &Backend{dryRun: true}, nil
	}
	if apiKey == "" {
		return nil, domainerrors.NewBackendError(backendName, "API key de Gemini no configurada", nil)
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, domainerrors.NewBackendError(backendName, "no se pudo crear el cliente", err)
	}

	return &Backend{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Name retorna el nombre del backend.
func (b *Backend) Name() string {
	return backendName
}

// IsAvailable retorna true si el cliente se pudo construir.
func (b *Backend) IsAvailable(_ context.Context) bool {
	return b.dryRun || b.client != nil
}

// Generate manda el prompt al modelo y concatena las partes de texto de la respuesta.
func (b *Backend) Generate(ctx context.Context, prompt string, _ bool) (models.AIResponse, error) {
	start := time.Now()

	if b.dryRun {
		return models.AIResponse{
			Content:  "## BUSINESS POSTURE\n\n(dry-run) Respuesta simulada de gemini.\n",
			Success:  true,
			Backend:  backendName,
			Metadata: map[string]string{"dry_run": "true"},
		}, nil
	}

	resp, err := b.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return models.AIResponse{}, domainerrors.NewBackendError(backendName, "la generación falló", err)
	}

	content := ""
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content += string(text)
			}
		}
	}

	if content == "" {
		return models.AIResponse{}, domainerrors.NewBackendError(backendName, "respuesta vacía", nil)
	}

	return models.AIResponse{
		Content:        content,
		Success:        true,
		Backend:        backendName,
		ProcessingTime: time.Since(start).Seconds(),
	}, nil
}

// Close libera el cliente subyacente.
func (b *Backend) Close() error {
	if b.client != nil {
		return b.client.Close()
	}
	return nil
}
