package i18n

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

func NewTranslations(defaultLang string, localesDir string) (*Translations, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")

	if localesDir == "" {
		localesDir = "locales"
	}
	files, err := filepath.Glob(filepath.Join(localesDir, "active.*.toml"))
	if err != nil {
		return nil, fmt.Errorf("error reading locales: %w", err)
	}

	for _, file := range files {
		if _, err := bundle.LoadMessageFile(file); err != nil {
			return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
		}
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[app_usage]
	other = "Generate and update architecture documentation with AI"

	[app_description]
	other = "mate-arch analyzes your git repository and asks an AI backend to write or update an architecture design document"

	[fresh_command_usage]
	other = "Create fresh architecture documentation from a complete codebase analysis"

	[update_command_usage]
	other = "Update architecture documentation based on git changes"

	[distributed_command_usage]
	other = "Analyze a batch of pull requests across services and document the architecture impact"

	[test_backend_command_usage]
	other = "Test AI backend connectivity"

	[config_command_usage]
	other = "Show or change the configuration"

	[analyzing_repository]
	other = "Analyzing git repository..."

	[generating_structure]
	other = "Generating directory structure..."

	[creating_prompt]
	other = "Creating AI prompt from pattern template..."

	[calling_backend]
	other = "Calling {{.Backend}} AI backend (this may take a while)..."

	[processing_response]
	other = "Processing AI response..."

	[checking_changes]
	other = "Checking for relevant changes..."

	[no_changes_up_to_date]
	other = "No relevant changes found between {{.Default}} and {{.Current}}. Architecture file exists and is up to date."

	[falling_back_fresh]
	other = "No changes found, falling back to fresh analysis..."

	[document_saved]
	other = "Architecture document saved to {{.Path}}"

	[prompt_saved_fallback]
	other = "The AI backend failed; the prompt was saved to {{.Path}} for manual processing"

	[fetching_pr]
	other = "Fetching PR {{.Repo}}#{{.Number}}..."

	[backend_available]
	other = "Backend '{{.Backend}}' is available"

	[backend_not_available]
	other = "Backend '{{.Backend}}' is not available"

	[changed_files_count]
	one = "{{.Count}} file changed"
	other = "{{.Count}} files changed"

	[pr_failed_count]
	one = "{{.Count}} PR could not be fetched"
	other = "{{.Count}} PRs could not be fetched"

	[help_command_usage]
	other = "Show help"

	[subfolder_flag_usage]
	other = "Focus the analysis on a subfolder of the project"

	[file_flag_usage]
	other = "Architecture document filename"

	[project_name_flag_usage]
	other = "Project name (defaults to the target directory name)"

	[backend_flag_usage]
	other = "AI backend to use (cursor-agent, fabric, gemini)"

	[base_branch_flag_usage]
	other = "Base branch to diff against (defaults to the repository default branch)"

	[dry_run_flag_usage]
	other = "Skip the AI call and produce a mock response"

	[extend_pattern_flag_usage]
	other = "Path to a file that extends the built-in prompt pattern"

	[pr_flag_usage]
	other = "Pull request to analyze as owner/repo#number (repeatable)"

	[description_flag_usage]
	other = "Description for the matching --pr, by position (repeatable)"

	[focus_flag_usage]
	other = "Comma-separated focus areas for the matching --pr, by position (repeatable)"

	[output_flag_usage]
	other = "Output path of the distributed analysis document"

	[config_show_usage]
	other = "Show the current configuration"

	[current_config]
	other = "Current configuration:"

	[language_label]
	other = "Language: {{.Lang}}"

	[backend_label]
	other = "Default backend: {{.Backend}}"

	[timeout_label]
	other = "Backend timeout: {{.Seconds}}s"

	[gemini_key_set]
	other = "Gemini API key: configured"

	[gemini_key_not_set]
	other = "Gemini API key: not configured"

	[github_token_set]
	other = "GitHub token: configured (PR descriptions will be enriched)"

	[github_token_not_set]
	other = "GitHub token: not configured"

	[excluded_patterns_label]
	other = "Excluded patterns: {{.Patterns}}"

	[config_set_lang_usage]
	other = "Set the CLI language"

	[config_set_lang_flag_usage]
	other = "Language code (en, es)"

	[unsupported_language]
	other = "Unsupported language. Available: en, es"

	[language_configured]
	other = "Language set to {{.Lang}}"

	[config_set_backend_usage]
	other = "Set the default AI backend"

	[config_timeout_flag_usage]
	other = "Backend timeout in seconds"

	[unknown_backend]
	other = "Unknown backend '{{.Backend}}'. Available: {{.Options}}"

	[backend_configured]
	other = "Default backend set to {{.Backend}}"

	[config_set_token_usage]
	other = "Store API credentials"

	[config_gemini_key_flag_usage]
	other = "Gemini API key"

	[config_github_token_flag_usage]
	other = "GitHub token for PR metadata enrichment"

	[no_token_provided]
	other = "Provide --gemini-key and/or --github-token"

	[tokens_configured]
	other = "Credentials saved"

	[config_set_excluded_usage]
	other = "Manage extra excluded file patterns"

	[config_excluded_flag_usage]
	other = "Substring pattern to exclude from analysis (repeatable)"

	[config_excluded_clear_flag_usage]
	other = "Remove all configured patterns first"

	[excluded_patterns_configured]
	other = "Excluded patterns saved ({{.Count}} total)"
	`
