package docgen

import (
	"fmt"
	"testing"

	"github.com/Tomas-vilte/MateArch/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func TestSummarizeChanges(t *testing.T) {
	t.Run("should report no changes", func(t *testing.T) {
		assert.Equal(t, "No changes detected.", summarizeChanges(nil))
	})

	t.Run("should group changes by type with line counts", func(t *testing.T) {
		changes := []models.Change{
			{FilePath: "api/users.go", ChangeType: models.ChangeModified, LinesAdded: 5, LinesRemoved: 2},
			{FilePath: "api/login.go", ChangeType: models.ChangeAdded, LinesAdded: 30},
			{FilePath: "legacy/util.go", ChangeType: models.ChangeDeleted, LinesRemoved: 12},
		}

		got := summarizeChanges(changes)

		assert.Contains(t, got, "## Git Changes Summary")
		assert.Contains(t, got, "**Total files changed:** 3")
		assert.Contains(t, got, "**Added (1):**")
		assert.Contains(t, got, "- api/login.go (+30/-0)")
		assert.Contains(t, got, "**Modified (1):**")
		assert.Contains(t, got, "- api/users.go (+5/-2)")
		assert.Contains(t, got, "**Deleted (1):**")
	})

	t.Run("should show renames as old -> new", func(t *testing.T) {
		changes := []models.Change{
			{FilePath: "pkg/new_name.go", OldPath: "pkg/old_name.go", ChangeType: models.ChangeRenamed},
		}

		got := summarizeChanges(changes)

		assert.Contains(t, got, "- pkg/old_name.go -> pkg/new_name.go")
	})

	t.Run("should truncate long groups", func(t *testing.T) {
		changes := make([]models.Change, 15)
		for i := range changes {
			changes[i] = models.Change{
				FilePath:   fmt.Sprintf("pkg/file_%02d.go", i),
				ChangeType: models.ChangeModified,
			}
		}

		got := summarizeChanges(changes)

		assert.Contains(t, got, "- ... and 5 more files")
	})
}

func TestCleanResponse(t *testing.T) {
	t.Run("should strip conversational preamble", func(t *testing.T) {
		raw := "Claro, acá va el análisis que pediste:\n\n## BUSINESS POSTURE\n\nEl negocio."

		assert.Equal(t, "## BUSINESS POSTURE\n\nEl negocio.", CleanResponse(raw))
	})

	t.Run("should normalize a bare section title into a heading", func(t *testing.T) {
		raw := "BUSINESS POSTURE\n\nEl negocio."

		assert.Equal(t, "## BUSINESS POSTURE\n\nEl negocio.", CleanResponse(raw))
	})

	t.Run("should leave content without markers untouched", func(t *testing.T) {
		raw := "# Architecture\n\nSome document."

		assert.Equal(t, raw, CleanResponse(raw))
	})
}
