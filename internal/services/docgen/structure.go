package docgen

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/Tomas-vilte/MateArch/internal/logger"
)

const (
	treeTimeout      = 10 * time.Second
	maxListedTracked = 20
)

// directoryStructure intenta usar `tree` para obtener la estructura del
// directorio; si no está instalado o falla, cae a un listado plano de los
// archivos trackeados.
func (s *Service) directoryStructure(ctx context.Context, target string, trackedFiles []string) string {
	ctx, cancel := context.WithTimeout(ctx, treeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "tree", target, "-I", "node_modules|.git|__pycache__|dist|build|target")
	output, err := cmd.Output()
	if err == nil {
		return string(output)
	}
	logger.Debug(ctx, "el comando tree no está disponible, usando listado simple", "error", err)

	var b strings.Builder
	fmt.Fprintf(&b, "Project structure (%d files):\n", len(trackedFiles))
	for i, file := range trackedFiles {
		if i >= maxListedTracked {
			fmt.Fprintf(&b, "... and %d more files\n", len(trackedFiles)-maxListedTracked)
			break
		}
		fmt.Fprintf(&b, "  %s\n", file)
	}
	return b.String()
}
