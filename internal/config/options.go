package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	domainerrors "github.com/Tomas-vilte/MateArch/internal/domain/errors"
)

// RunOptions son las opciones de una corrida de generación de documentación,
// con sus rutas derivadas ya resueltas y validadas.
type RunOptions struct {
	// ProjectPath es la ruta al proyecto git (argumento posicional).
	ProjectPath string

	// Subfolder enfoca el análisis en una subcarpeta del proyecto.
	Subfolder string

	// DocFilename es el nombre del documento de arquitectura.
	DocFilename string

	// ProjectName se autodetecta del directorio si no se provee.
	ProjectName string

	// Backend es el backend de IA elegido.
	Backend string

	// BaseBranch fuerza la rama base del diff.
	BaseBranch string

	DryRun            bool
	ExtendPatternPath string

	// Derivadas por Resolve.
	ProjectPathAbs string
	AnalysisTarget string
	DocPath        string
	PathFilter     string
}

const maxPathLength = 4096

var (
	blockedSystemDirs = []string{"/etc", "/sys", "/proc", "/dev", "/boot", "/root"}

	subfolderPattern = regexp.MustCompile(`^[a-zA-Z0-9._/-]+$`)
	filenamePattern  = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

// Resolve valida las opciones, aplica los chequeos de seguridad y calcula las
// rutas derivadas. gitRoot es la raíz ya detectada del repositorio, usada para
// calcular el filtro de rutas cuando el target es una subcarpeta.
func (o *RunOptions) Resolve(gitRoot string) error {
	if o.ProjectPath == "" {
		o.ProjectPath = "."
	}
	if o.DocFilename == "" {
		o.DocFilename = "arch.md"
	}

	if err := o.validateSecurity(); err != nil {
		return err
	}

	abs, err := filepath.Abs(o.ProjectPath)
	if err != nil {
		return domainerrors.NewConfigError("project_path", "ruta de proyecto inválida", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return domainerrors.NewConfigError("project_path", "la ruta del proyecto no existe: "+o.ProjectPath, err)
	}
	o.ProjectPathAbs = abs

	o.AnalysisTarget = abs
	if o.Subfolder != "" {
		o.AnalysisTarget = filepath.Join(abs, o.Subfolder)
		if _, err := os.Stat(o.AnalysisTarget); err != nil {
			return domainerrors.NewConfigError("subfolder", "la subcarpeta no existe: "+o.Subfolder, err)
		}
	}

	if o.ProjectName == "" {
		o.ProjectName = filepath.Base(o.AnalysisTarget)
	}

	// Filtro de rutas relativo a la raíz del repositorio.
	o.PathFilter = ""
	if gitRoot != "" && o.AnalysisTarget != gitRoot {
		rel, err := filepath.Rel(gitRoot, o.AnalysisTarget)
		if err != nil || strings.HasPrefix(rel, "..") {
			return domainerrors.NewConfigError("subfolder", "el target no está dentro del repositorio", err)
		}
		o.PathFilter = rel + "/"
	}

	o.DocPath = filepath.Join(o.AnalysisTarget, o.DocFilename)

	if err := o.validateWritePermission(); err != nil {
		return err
	}

	if o.ExtendPatternPath != "" {
		info, err := os.Stat(o.ExtendPatternPath)
		if err != nil {
			return domainerrors.NewConfigError("extend_pattern", "patrón de extensión no encontrado: "+o.ExtendPatternPath, err)
		}
		if info.IsDir() {
			return domainerrors.NewConfigError("extend_pattern", "el patrón de extensión no es un archivo: "+o.ExtendPatternPath, nil)
		}
	}

	return nil
}

func (o *RunOptions) validateSecurity() error {
	pathStr := o.ProjectPath

	if len(pathStr) > maxPathLength {
		return domainerrors.NewSecurityError(pathStr, fmt.Sprintf("ruta demasiado larga (>%d)", maxPathLength))
	}

	// Rutas absolutas o con .. no pueden terminar en directorios del sistema.
	resolved, err := filepath.Abs(pathStr)
	if err == nil {
		for _, blocked := range blockedSystemDirs {
			if resolved == blocked || strings.HasPrefix(resolved, blocked+string(filepath.Separator)) {
				return domainerrors.NewSecurityError(pathStr, "acceso a directorio del sistema no permitido")
			}
		}
	}

	if o.Subfolder != "" {
		if strings.Contains(o.Subfolder, "..") || strings.HasPrefix(o.Subfolder, "/") {
			return domainerrors.NewSecurityError(o.Subfolder, "path traversal detectado en la subcarpeta")
		}
		if !subfolderPattern.MatchString(o.Subfolder) {
			return domainerrors.NewSecurityError(o.Subfolder, "caracteres inválidos en la subcarpeta")
		}
	}

	if o.DocFilename != "" && !filenamePattern.MatchString(o.DocFilename) {
		return domainerrors.NewSecurityError(o.DocFilename, "caracteres inválidos en el nombre del documento")
	}

	return nil
}

// validateWritePermission prueba que el documento destino se pueda escribir.
func (o *RunOptions) validateWritePermission() error {
	if _, err := os.Stat(o.DocPath); err == nil {
		f, err := os.OpenFile(o.DocPath, os.O_WRONLY, 0)
		if err != nil {
			return domainerrors.NewConfigError("doc", "sin permisos de escritura sobre "+o.DocPath, err)
		}
		_ = f.Close()
		return nil
	}

	probe, err := os.CreateTemp(filepath.Dir(o.DocPath), ".mate-arch-probe-*")
	if err != nil {
		return domainerrors.NewConfigError("doc", "sin permisos de escritura en "+filepath.Dir(o.DocPath), err)
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}
