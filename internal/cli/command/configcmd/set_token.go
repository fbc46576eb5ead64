package configcmd

import (
	"context"
	"fmt"

	"github.com/Tomas-vilte/MateArch/internal/config"
	"github.com/Tomas-vilte/MateArch/internal/i18n"
	"github.com/urfave/cli/v3"
)

func newSetTokenCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set-token",
		Usage: t.GetMessage("config_set_token_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "gemini-key",
				Usage: t.GetMessage("config_gemini_key_flag_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:  "github-token",
				Usage: t.GetMessage("config_github_token_flag_usage", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			geminiKey := command.String("gemini-key")
			githubToken := command.String("github-token")
			if geminiKey == "" && githubToken == "" {
				return fmt.Errorf("%s", t.GetMessage("no_token_provided", 0, nil))
			}

			if geminiKey != "" {
				cfg.GeminiAPIKey = geminiKey
			}
			if githubToken != "" {
				cfg.GitHubToken = githubToken
			}
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Printf("%s\n", t.GetMessage("tokens_configured", 0, nil))
			return nil
		},
	}
}
