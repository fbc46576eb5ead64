// Package patterns implementa la abstracción única de matching de exclusiones:
// una lista ordenada de reglas substring o regex. Tanto el parser de diffs de PR
// (reglas regex, case-insensitive) como el listado de archivos trackeados
// (substrings, case-sensitive) se expresan con esta misma abstracción.
package patterns

import (
	"regexp"
	"strings"
)

// RuleKind indica cómo se interpreta el patrón de una regla.
type RuleKind string

const (
	KindSubstring RuleKind = "substring"
	KindRegex     RuleKind = "regex"
)

// Rule es una regla de exclusión individual.
type Rule struct {
	Kind    RuleKind
	Pattern string

	re *regexp.Regexp
}

// Substring crea una regla de contención literal (case-sensitive).
func Substring(pattern string) Rule {
	return Rule{Kind: KindSubstring, Pattern: pattern}
}

// Regex crea una regla regex. Se compila case-insensitive.
func Regex(pattern string) Rule {
	return Rule{Kind: KindRegex, Pattern: pattern}
}

func (r Rule) matches(path string) bool {
	switch r.Kind {
	case KindSubstring:
		return strings.Contains(path, r.Pattern)
	case KindRegex:
		if r.re == nil {
			return false
		}
		return r.re.MatchString(path)
	}
	return false
}

// Matcher evalúa una lista ordenada de reglas de exclusión sobre rutas de archivo.
type Matcher struct {
	rules []Rule
}

// NewMatcher compila las reglas y retorna el matcher. Falla si alguna regex es inválida.
func NewMatcher(rules ...Rule) (*Matcher, error) {
	compiled := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if rule.Kind == KindRegex {
			re, err := regexp.Compile("(?i)" + rule.Pattern)
			if err != nil {
				return nil, err
			}
			rule.re = re
		}
		compiled = append(compiled, rule)
	}
	return &Matcher{rules: compiled}, nil
}

// MustMatcher es como NewMatcher pero entra en pánico ante una regex inválida.
// Se usa solo para los sets fijos del paquete.
func MustMatcher(rules ...Rule) *Matcher {
	m, err := NewMatcher(rules...)
	if err != nil {
		panic("patterns: regla inválida: " + err.Error())
	}
	return m
}

// Excluded retorna true si la ruta matchea alguna regla.
func (m *Matcher) Excluded(path string) bool {
	for _, rule := range m.rules {
		if rule.matches(path) {
			return true
		}
	}
	return false
}

// Filter retorna las rutas que no matchean ninguna regla, preservando el orden.
func (m *Matcher) Filter(paths []string) []string {
	filtered := make([]string, 0, len(paths))
	for _, p := range paths {
		if !m.Excluded(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// WithExtra retorna un nuevo matcher con reglas substring adicionales al final.
// Lo usa la configuración para sumar exclusiones del usuario sin tocar el set fijo.
func (m *Matcher) WithExtra(substrings ...string) *Matcher {
	rules := make([]Rule, 0, len(m.rules)+len(substrings))
	rules = append(rules, m.rules...)
	for _, s := range substrings {
		rules = append(rules, Substring(s))
	}
	return &Matcher{rules: rules}
}

// prExclusions es el set fijo de regex que se aplica al parsear diffs de PRs.
// No es configurable: los archivos que matchean se descartan del resultado.
var prExclusions = MustMatcher(
	// Lockfiles
	Regex(`\.lock$`),
	Regex(`yarn\.lock`),
	Regex(`package-lock\.json`),
	Regex(`pnpm-lock\.yaml`),
	Regex(`Pipfile\.lock`),
	Regex(`poetry\.lock`),
	Regex(`Gemfile\.lock`),
	Regex(`composer\.lock`),
	Regex(`go\.sum`),
	Regex(`Cargo\.lock`),
	// Assets generados o minificados
	Regex(`\.min\.js$`),
	Regex(`\.min\.css$`),
	Regex(`\.bundle\.js$`),
	Regex(`\.bundle\.css$`),
	Regex(`\.d\.ts$`),
	Regex(`\.map$`),
	Regex(`\.pyc$`),
	Regex(`\.pyo$`),
	Regex(`\.class$`),
	Regex(`\.o$`),
	Regex(`\.so$`),
	Regex(`\.dll$`),
	// Binarios y media
	Regex(`\.(png|jpg|jpeg|gif|ico|svg|pdf|zip|tar|gz)$`),
	// Artefactos de editor/IDE
	Regex(`\.idea/`),
	Regex(`\.vscode/`),
	Regex(`\.DS_Store`),
	// Snapshots, fixtures y mocks de tests en JSON
	Regex(`__snapshots__/`),
	Regex(`\.snap$`),
	Regex(`fixtures?/.*\.json$`),
	Regex(`mocks?/.*\.json$`),
	Regex(`test.*\.snapshot`),
)

// trackedExclusions es el set substring (más acotado) usado al listar
// archivos trackeados de un único repositorio.
var trackedExclusions = MustMatcher(
	Substring("package-lock.json"),
	Substring("yarn.lock"),
	Substring("pnpm-lock.yaml"),
	Substring("Pipfile.lock"),
	Substring("poetry.lock"),
	Substring("Cargo.lock"),
	Substring("composer.lock"),
	Substring("Gemfile.lock"),
	Substring("go.sum"),
	Substring(".min.js"),
	Substring(".min.css"),
	Substring(".bundle.js"),
	Substring(".bundle.css"),
	Substring(".pyc"),
	Substring(".class"),
	Substring(".dll"),
	Substring(".exe"),
)

// DefaultPRExclusions retorna el set fijo de exclusión para diffs de PRs.
func DefaultPRExclusions() *Matcher {
	return prExclusions
}

// DefaultTrackedExclusions retorna el set de exclusión para archivos trackeados.
func DefaultTrackedExclusions() *Matcher {
	return trackedExclusions
}
