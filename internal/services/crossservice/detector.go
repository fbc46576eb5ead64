// Package crossservice detecta, de forma heurística y best-effort, patrones
// cruzados entre los servicios de un batch de Pull Requests. No entiende
// semántica: solo inspecciona rutas de archivo y texto de diff, así que los
// falsos positivos son esperables y aceptados.
package crossservice

import (
	"fmt"
	"strings"

	"github.com/Tomas-vilte/MateArch/internal/domain/models"
)

type (
	// CategoryRule es una regla (predicado, categoría) del detector de categorías.
	// Las reglas se evalúan en orden y gana la primera que matchea.
	CategoryRule struct {
		Category string

		// Matches decide si la ruta (en minúsculas) pertenece a la categoría.
		Matches func(lowerPath string) bool

		// IncludeLineCounts agrega el sufijo "(+X/-Y)" al descriptor.
		IncludeLineCounts bool
	}

	// Detector corre las reglas de categoría y la detección de interacciones
	// sobre un batch completo de PRDiffs.
	Detector struct {
		rules []CategoryRule
	}
)

func pathContainsAny(path string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(path, kw) {
			return true
		}
	}
	return false
}

// DefaultCategoryRules retorna el set de reglas en su orden de prioridad:
// especificaciones de API, endpoints de API, esquemas de base de datos y
// archivos de configuración.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{
			Category:          "api_specifications",
			IncludeLineCounts: true,
			Matches: func(p string) bool {
				if pathContainsAny(p, "swagger", "openapi", "api-docs") {
					return true
				}
				return strings.HasSuffix(p, ".json") && strings.Contains(p, "api")
			},
		},
		{
			Category: "api_endpoints",
			Matches: func(p string) bool {
				return pathContainsAny(p, "api", "router", "controller", "endpoint", "route")
			},
		},
		{
			Category: "database_changes",
			Matches: func(p string) bool {
				return pathContainsAny(p, "model", "schema", "migration", "db", "sql")
			},
		},
		{
			Category: "config_changes",
			Matches: func(p string) bool {
				return pathContainsAny(p, "config", "env", "setting", "constant")
			},
		},
	}
}

// NewDetector crea un detector con el set de reglas por defecto.
func NewDetector() *Detector {
	return &Detector{rules: DefaultCategoryRules()}
}

// NewDetectorWithRules crea un detector con reglas propias, en el orden dado.
func NewDetectorWithRules(rules []CategoryRule) *Detector {
	return &Detector{rules: rules}
}

// DetectPatterns categoriza cada archivo cambiado del batch. Cada archivo cae
// en a lo sumo una categoría (gana la primera regla). Las categorías sin
// matches se omiten del mapa.
func (d *Detector) DetectPatterns(prDiffs []models.PRDiff) map[string][]string {
	result := make(map[string][]string)

	for _, prDiff := range prDiffs {
		service := prDiff.ServiceName()
		for _, change := range prDiff.Changes {
			lowerPath := strings.ToLower(change.FilePath)
			for _, rule := range d.rules {
				if !rule.Matches(lowerPath) {
					continue
				}
				entry := fmt.Sprintf("%s: %s", service, change.FilePath)
				if rule.IncludeLineCounts {
					entry = fmt.Sprintf("%s: %s (+%d/-%d)", service, change.FilePath, change.LinesAdded, change.LinesRemoved)
				}
				result[rule.Category] = append(result[rule.Category], entry)
				break
			}
		}
	}

	return result
}

// DetectInteractions busca, para cada par ordenado de servicios distintos (A, B),
// evidencia léxica de que los cambios de A referencian a B: la ruta de un archivo
// cambiado de A que contiene el nombre de B, o el nombre de B apareciendo en el
// texto crudo del diff de A. Los servicios sin referencias salientes se omiten.
func (d *Detector) DetectInteractions(prDiffs []models.PRDiff) map[string]map[string][]string {
	interactions := make(map[string]map[string][]string)

	for _, source := range prDiffs {
		sourceName := source.ServiceName()
		lowerRawDiff := strings.ToLower(source.RawDiff)

		for _, target := range prDiffs {
			targetName := target.ServiceName()
			if targetName == sourceName {
				continue
			}

			var evidence []string
			lowerTarget := strings.ToLower(targetName)

			for _, change := range source.Changes {
				if strings.Contains(strings.ToLower(change.FilePath), lowerTarget) {
					evidence = append(evidence, fmt.Sprintf("File reference: %s", change.FilePath))
				}
			}

			if strings.Contains(lowerRawDiff, lowerTarget) {
				evidence = append(evidence, fmt.Sprintf("Code references to %s", targetName))
			}

			if len(evidence) > 0 {
				if interactions[sourceName] == nil {
					interactions[sourceName] = make(map[string][]string)
				}
				interactions[sourceName][targetName] = append(interactions[sourceName][targetName], evidence...)
			}
		}
	}

	return interactions
}
