package crossservice

import (
	"strings"
	"testing"

	"github.com/Tomas-vilte/MateArch/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prDiff(repo string, changes ...models.PRChange) models.PRDiff {
	return models.PRDiff{
		Repo:         repo,
		Number:       1,
		Changes:      changes,
		TotalChanges: len(changes),
	}
}

func TestDetectPatterns(t *testing.T) {
	detector := NewDetector()

	t.Run("should categorize api specifications with line counts", func(t *testing.T) {
		diffs := []models.PRDiff{
			prDiff("acme/user-service", models.PRChange{
				FilePath:     "docs/openapi.yaml",
				LinesAdded:   12,
				LinesRemoved: 3,
			}),
		}

		got := detector.DetectPatterns(diffs)

		require.Contains(t, got, "api_specifications")
		assert.Equal(t, []string{"user-service: docs/openapi.yaml (+12/-3)"}, got["api_specifications"])
	})

	t.Run("should treat json files mentioning api as specifications", func(t *testing.T) {
		diffs := []models.PRDiff{
			prDiff("acme/billing", models.PRChange{FilePath: "spec/api-contract.json"}),
		}

		got := detector.DetectPatterns(diffs)

		assert.Contains(t, got, "api_specifications")
		assert.NotContains(t, got, "api_endpoints")
	})

	t.Run("should assign each file to the first matching category only", func(t *testing.T) {
		// "api/models.py" matchea endpoints y database; gana la primera regla.
		diffs := []models.PRDiff{
			prDiff("acme/user-service", models.PRChange{FilePath: "api/models.py"}),
		}

		got := detector.DetectPatterns(diffs)

		assert.Contains(t, got, "api_endpoints")
		assert.NotContains(t, got, "database_changes")
	})

	t.Run("should detect database and config changes", func(t *testing.T) {
		diffs := []models.PRDiff{
			prDiff("acme/user-service",
				models.PRChange{FilePath: "migrations/0004_add_index.sql"},
				models.PRChange{FilePath: "settings/production.yaml"},
			),
		}

		got := detector.DetectPatterns(diffs)

		assert.Equal(t, []string{"user-service: migrations/0004_add_index.sql"}, got["database_changes"])
		assert.Equal(t, []string{"user-service: settings/production.yaml"}, got["config_changes"])
	})

	t.Run("should omit categories without matches", func(t *testing.T) {
		diffs := []models.PRDiff{
			prDiff("acme/user-service", models.PRChange{FilePath: "README.md"}),
		}

		got := detector.DetectPatterns(diffs)

		assert.Empty(t, got)
	})

	t.Run("should match case-insensitively on paths", func(t *testing.T) {
		diffs := []models.PRDiff{
			prDiff("acme/user-service", models.PRChange{FilePath: "src/Controllers/Auth.cs"}),
		}

		got := detector.DetectPatterns(diffs)

		require.Contains(t, got, "api_endpoints")
		// El descriptor conserva la ruta original.
		assert.Equal(t, []string{"user-service: src/Controllers/Auth.cs"}, got["api_endpoints"])
	})

	t.Run("should honor an injected rule set and its order", func(t *testing.T) {
		custom := NewDetectorWithRules([]CategoryRule{
			{
				Category:          "proto_changes",
				IncludeLineCounts: true,
				Matches: func(p string) bool {
					return strings.HasSuffix(p, ".proto")
				},
			},
			{
				Category: "api_endpoints",
				Matches: func(p string) bool {
					return strings.Contains(p, "api")
				},
			},
		})

		diffs := []models.PRDiff{
			prDiff("acme/user-service",
				// Matchea las dos reglas; gana la primera del set inyectado.
				models.PRChange{FilePath: "api/users.proto", LinesAdded: 4, LinesRemoved: 1},
				models.PRChange{FilePath: "db/migrations/001.sql"},
			),
		}

		got := custom.DetectPatterns(diffs)

		require.Contains(t, got, "proto_changes")
		assert.Equal(t, []string{"user-service: api/users.proto (+4/-1)"}, got["proto_changes"])
		assert.NotContains(t, got, "api_endpoints")
		// Las reglas por defecto no aplican: el detector solo corre las inyectadas.
		assert.NotContains(t, got, "database_changes")
	})
}

func TestDetectInteractions(t *testing.T) {
	detector := NewDetector()

	t.Run("should report file and code references between services", func(t *testing.T) {
		userService := prDiff("acme/user-service", models.PRChange{
			FilePath: "clients/billing_client.go",
		})
		userService.RawDiff = "+resp, err := http.Get(billingURL)\n"

		billing := prDiff("acme/billing", models.PRChange{
			FilePath: "api/invoices.go",
		})

		got := detector.DetectInteractions([]models.PRDiff{userService, billing})

		require.Contains(t, got, "user-service")
		evidence := got["user-service"]["billing"]
		assert.Contains(t, evidence, "File reference: clients/billing_client.go")
		assert.Contains(t, evidence, "Code references to billing")

		// billing no referencia a user-service.
		assert.NotContains(t, got, "billing")
	})

	t.Run("should skip pairs sharing the same service name", func(t *testing.T) {
		a := prDiff("org-a/shared", models.PRChange{FilePath: "shared/util.go"})
		b := prDiff("org-b/shared", models.PRChange{FilePath: "shared/other.go"})

		got := detector.DetectInteractions([]models.PRDiff{a, b})

		assert.Empty(t, got)
	})

	t.Run("should return empty map when nothing references anything", func(t *testing.T) {
		a := prDiff("acme/alpha", models.PRChange{FilePath: "a.go"})
		b := prDiff("acme/beta", models.PRChange{FilePath: "b.go"})

		got := detector.DetectInteractions([]models.PRDiff{a, b})

		assert.Empty(t, got)
	})
}
