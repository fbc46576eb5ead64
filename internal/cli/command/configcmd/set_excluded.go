package configcmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tomas-vilte/MateArch/internal/config"
	"github.com/Tomas-vilte/MateArch/internal/i18n"
	"github.com/urfave/cli/v3"
)

func newSetExcludedCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set-excluded",
		Usage: t.GetMessage("config_set_excluded_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "pattern",
				Aliases: []string{"p"},
				Usage:   t.GetMessage("config_excluded_flag_usage", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "clear",
				Usage: t.GetMessage("config_excluded_clear_flag_usage", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			if command.Bool("clear") {
				cfg.ExcludedPatterns = nil
			}
			for _, pattern := range command.StringSlice("pattern") {
				if pattern = strings.TrimSpace(pattern); pattern != "" {
					cfg.ExcludedPatterns = append(cfg.ExcludedPatterns, pattern)
				}
			}
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Printf("%s\n", t.GetMessage("excluded_patterns_configured", 0, map[string]interface{}{
				"Count": len(cfg.ExcludedPatterns),
			}))
			return nil
		},
	}
}
