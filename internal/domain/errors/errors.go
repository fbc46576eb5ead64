package errors

import "fmt"

// GitError representa una falla de una operación git sobre el repositorio.
type GitError struct {
	Op      string
	Message string
	Err     error
}

func (e *GitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("git error [%s]: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("git error [%s]: %s", e.Op, e.Message)
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// NewGitError crea un nuevo error de git
func NewGitError(op, message string, err error) *GitError {
	return &GitError{Op: op, Message: message, Err: err}
}

// ConfigError representa un error de configuración
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config error [%s]: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("config error [%s]: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError crea un nuevo error de configuración
func NewConfigError(field, message string, err error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Err: err}
}

// SecurityError indica que una validación de seguridad falló (path traversal, etc.)
type SecurityError struct {
	Path    string
	Message string
}

func (e *SecurityError) Error() string {
	return fmt.Sprintf("security error: %s: %s", e.Message, e.Path)
}

// NewSecurityError crea un nuevo error de seguridad
func NewSecurityError(path, message string) *SecurityError {
	return &SecurityError{Path: path, Message: message}
}

// BackendError representa una falla de un backend de IA.
type BackendError struct {
	Backend string
	Message string
	Err     error
}

func (e *BackendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend '%s': %s: %v", e.Backend, e.Message, e.Err)
	}
	return fmt.Sprintf("backend '%s': %s", e.Backend, e.Message)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// NewBackendError crea un nuevo error de backend de IA
func NewBackendError(backend, message string, err error) *BackendError {
	return &BackendError{Backend: backend, Message: message, Err: err}
}

// PRFetchKind distingue las fallas posibles al traer el diff de un PR.
type PRFetchKind string

const (
	// PRFetchToolNotFound indica que la herramienta (gh) no está en el PATH.
	PRFetchToolNotFound PRFetchKind = "tool_not_found"
	// PRFetchTimeout indica que la llamada superó el timeout.
	PRFetchTimeout PRFetchKind = "timeout"
	// PRFetchExitError indica que la herramienta terminó con exit code distinto de cero.
	PRFetchExitError PRFetchKind = "exit_error"
)

// PRFetchError representa una falla al traer el diff de un Pull Request.
// Nunca aborta el batch completo: el aggregator la convierte en un placeholder.
type PRFetchError struct {
	Repo   string
	Number int
	Kind   PRFetchKind
	Stderr string
	Err    error
}

func (e *PRFetchError) Error() string {
	switch e.Kind {
	case PRFetchToolNotFound:
		return fmt.Sprintf("PR %s#%d: herramienta 'gh' no encontrada en el PATH", e.Repo, e.Number)
	case PRFetchTimeout:
		return fmt.Sprintf("PR %s#%d: timeout al traer el diff", e.Repo, e.Number)
	default:
		if e.Stderr != "" {
			return fmt.Sprintf("PR %s#%d: gh terminó con error: %s", e.Repo, e.Number, e.Stderr)
		}
		return fmt.Sprintf("PR %s#%d: gh terminó con error: %v", e.Repo, e.Number, e.Err)
	}
}

func (e *PRFetchError) Unwrap() error {
	return e.Err
}

// NewPRFetchError crea un nuevo error de fetch de PR
func NewPRFetchError(repo string, number int, kind PRFetchKind, stderr string, err error) *PRFetchError {
	return &PRFetchError{Repo: repo, Number: number, Kind: kind, Stderr: stderr, Err: err}
}

// PatternError indica que un template de patrón no se pudo cargar.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pattern '%s': %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("pattern '%s' no encontrado", e.Pattern)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// NewPatternError crea un nuevo error de pattern
func NewPatternError(pattern string, err error) *PatternError {
	return &PatternError{Pattern: pattern, Err: err}
}
