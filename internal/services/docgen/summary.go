package docgen

import (
	"fmt"
	"strings"

	"github.com/Tomas-vilte/MateArch/internal/domain/models"
)

const maxDetailedChanges = 10

// summarizeChanges arma el resumen de cambios git que se inyecta en los prompts.
func summarizeChanges(changes []models.Change) string {
	if len(changes) == 0 {
		return "No changes detected."
	}

	byType := make(map[models.ChangeType][]models.Change)
	for _, change := range changes {
		byType[change.ChangeType] = append(byType[change.ChangeType], change)
	}

	var b strings.Builder
	b.WriteString("## Git Changes Summary\n\n")
	fmt.Fprintf(&b, "**Total files changed:** %d\n\n", len(changes))

	for _, ct := range []models.ChangeType{models.ChangeAdded, models.ChangeModified, models.ChangeDeleted, models.ChangeRenamed} {
		group, ok := byType[ct]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "**%s (%d):**\n", ct.Title(), len(group))
		for i, change := range group {
			if i >= maxDetailedChanges {
				fmt.Fprintf(&b, "- ... and %d more files\n", len(group)-maxDetailedChanges)
				break
			}
			switch {
			case ct == models.ChangeRenamed && change.OldPath != "":
				fmt.Fprintf(&b, "- %s -> %s\n", change.OldPath, change.FilePath)
			case change.LinesAdded > 0 || change.LinesRemoved > 0:
				fmt.Fprintf(&b, "- %s (+%d/-%d)\n", change.FilePath, change.LinesAdded, change.LinesRemoved)
			default:
				fmt.Fprintf(&b, "- %s\n", change.FilePath)
			}
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
