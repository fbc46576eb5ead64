package docgen

import "strings"

// Marcas que indican el comienzo del documento real dentro de la salida del
// backend. Los agentes suelen anteponer texto conversacional antes de la
// primera sección.
// El orden importa: los encabezados más específicos van primero para que
// "# BUSINESS POSTURE" no matchee dentro de "## BUSINESS POSTURE".
var documentMarkers = []string{
	"## BUSINESS POSTURE",
	"# BUSINESS POSTURE",
	"BUSINESS POSTURE",
}

// CleanResponse recorta la charla introductoria que los backends agregan antes
// del documento markdown.
func CleanResponse(content string) string {
	content = strings.TrimSpace(content)

	for _, marker := range documentMarkers {
		if idx := strings.Index(content, marker); idx >= 0 {
			cleaned := content[idx:]
			// Normaliza la primera sección como encabezado de nivel 2.
			if strings.HasPrefix(cleaned, "BUSINESS POSTURE") {
				cleaned = "## " + cleaned
			}
			return strings.TrimSpace(cleaned)
		}
	}

	return content
}
