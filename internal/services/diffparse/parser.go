// Package diffparse convierte texto de unified diff en registros de cambio
// estructurados. Lo usan tanto el lector de diffs de revisiones (git local)
// como el parser de diffs de Pull Requests.
package diffparse

import (
	"fmt"
	"strings"

	"github.com/sourcegraph/go-diff/diff"

	"github.com/Tomas-vilte/MateArch/internal/domain/models"
	"github.com/Tomas-vilte/MateArch/internal/services/patterns"
)

const devNull = "/dev/null"

// ParseFileChanges parsea un unified diff (posiblemente multi-archivo) en una
// secuencia de Change, en el orden en que aparecen en el diff.
func ParseFileChanges(raw string) ([]models.Change, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	fileDiffs, err := diff.ParseMultiFileDiff([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("error al parsear el diff: %w", err)
	}

	changes := make([]models.Change, 0, len(fileDiffs))
	for _, fd := range fileDiffs {
		changes = append(changes, convertFileDiff(fd))
	}
	return changes, nil
}

func convertFileDiff(fd *diff.FileDiff) models.Change {
	origName, newName := fd.OrigName, fd.NewName

	// Los renombres puros no traen líneas ---/+++, así que los nombres
	// salen de los headers extendidos "rename from/to".
	for _, ext := range fd.Extended {
		if rest, ok := strings.CutPrefix(ext, "rename from "); ok {
			origName = rest
		}
		if rest, ok := strings.CutPrefix(ext, "rename to "); ok {
			newName = rest
		}
	}

	origPath := stripPrefix(origName)
	newPath := stripPrefix(newName)

	change := models.Change{}
	switch {
	case origName == devNull:
		change.ChangeType = models.ChangeAdded
		change.FilePath = newPath
	case newName == devNull:
		change.ChangeType = models.ChangeDeleted
		change.FilePath = origPath
	case origPath != newPath:
		change.ChangeType = models.ChangeRenamed
		change.FilePath = newPath
		change.OldPath = origPath
	default:
		change.ChangeType = models.ChangeModified
		change.FilePath = newPath
	}

	change.LinesAdded, change.LinesRemoved = countLines(fd)

	// Contenido binario: no hay hunks que contar, pero el archivo cambió.
	// Se registra al menos una línea agregada en vez de fallar.
	if len(fd.Hunks) == 0 && isBinary(fd) {
		change.LinesAdded = 1
		change.LinesRemoved = 0
	}

	return change
}

func countLines(fd *diff.FileDiff) (added, removed int) {
	for _, hunk := range fd.Hunks {
		for _, line := range strings.Split(string(hunk.Body), "\n") {
			switch {
			case strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---"):
				// headers de archivo, nunca cuentan
			case strings.HasPrefix(line, "+"):
				added++
			case strings.HasPrefix(line, "-"):
				removed++
			}
		}
	}
	return added, removed
}

func isBinary(fd *diff.FileDiff) bool {
	for _, ext := range fd.Extended {
		if strings.HasPrefix(ext, "Binary files ") || strings.HasPrefix(ext, "GIT binary patch") {
			return true
		}
	}
	return false
}

func stripPrefix(name string) string {
	if name == devNull {
		return name
	}
	if rest, ok := strings.CutPrefix(name, "a/"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(name, "b/"); ok {
		return rest
	}
	return name
}

// ParsePRDiff parsea el diff crudo de un Pull Request y arma el PRDiff completo.
// Los archivos que matchean el set fijo de exclusión se descartan por completo.
func ParsePRDiff(raw string, req models.PRRequest) (models.PRDiff, error) {
	fileChanges, err := ParseFileChanges(raw)
	if err != nil {
		return models.PRDiff{}, err
	}

	exclusions := patterns.DefaultPRExclusions()

	prChanges := make([]models.PRChange, 0, len(fileChanges))
	for _, fc := range fileChanges {
		if exclusions.Excluded(fc.FilePath) {
			continue
		}
		prChanges = append(prChanges, models.PRChange{
			FilePath:     fc.FilePath,
			ChangeType:   fc.ChangeType,
			LinesAdded:   fc.LinesAdded,
			LinesRemoved: fc.LinesRemoved,
			OldPath:      fc.OldPath,
			PRNumber:     req.Number,
			Repo:         req.Repo,
		})
	}

	prDiff := models.PRDiff{
		Repo:         req.Repo,
		Number:       req.Number,
		Changes:      prChanges,
		TotalChanges: len(prChanges),
		Description:  req.Description,
		FocusAreas:   req.FocusAreas,
		RawDiff:      raw,
	}

	if req.Description != "" {
		prDiff.Summary = req.Description
	} else {
		prDiff.Summary = fmt.Sprintf("Changes in %s: %d files modified", prDiff.ServiceName(), len(prChanges))
	}

	return prDiff, nil
}
