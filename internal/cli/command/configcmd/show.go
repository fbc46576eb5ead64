package configcmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tomas-vilte/MateArch/internal/config"
	"github.com/Tomas-vilte/MateArch/internal/i18n"
	"github.com/urfave/cli/v3"
)

func newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config_show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			fmt.Println(t.GetMessage("current_config", 0, nil))
			fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━\n")

			fmt.Printf("%s\n", t.GetMessage("language_label", 0, map[string]interface{}{"Lang": cfg.Language}))
			fmt.Printf("%s\n", t.GetMessage("backend_label", 0, map[string]interface{}{"Backend": cfg.DefaultBackend}))
			fmt.Printf("%s\n", t.GetMessage("timeout_label", 0, map[string]interface{}{"Seconds": cfg.BackendTimeoutSeconds}))

			if cfg.GeminiAPIKey == "" {
				fmt.Println(t.GetMessage("gemini_key_not_set", 0, nil))
			} else {
				fmt.Println(t.GetMessage("gemini_key_set", 0, nil))
			}

			if cfg.GitHubToken == "" {
				fmt.Println(t.GetMessage("github_token_not_set", 0, nil))
			} else {
				fmt.Println(t.GetMessage("github_token_set", 0, nil))
			}

			if len(cfg.ExcludedPatterns) > 0 {
				fmt.Printf("%s\n", t.GetMessage("excluded_patterns_label", 0, map[string]interface{}{
					"Patterns": strings.Join(cfg.ExcludedPatterns, ", "),
				}))
			}

			return nil
		},
	}
}
