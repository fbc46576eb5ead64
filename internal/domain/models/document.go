package models

import "os"

type (
	// AIResponse es la respuesta normalizada de un backend de IA.
	AIResponse struct {
		Content string
		Success bool
		Backend string

		// ProcessingTime en segundos, si el backend lo midió.
		ProcessingTime float64

		Metadata map[string]string
	}

	// ArchitectureDocument es un documento de arquitectura generado,
	// listo para escribirse en disco.
	ArchitectureDocument struct {
		Content  string
		FilePath string
	}
)

// Save escribe el documento en disco. Si el archivo ya existe se elimina
// primero para garantizar que el nombre quede con el case correcto.
func (d *ArchitectureDocument) Save() error {
	if _, err := os.Stat(d.FilePath); err == nil {
		if err := os.Remove(d.FilePath); err != nil {
			return err
		}
	}
	return os.WriteFile(d.FilePath, []byte(d.Content), 0644)
}
