package configcmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Tomas-vilte/MateArch/internal/config"
	"github.com/Tomas-vilte/MateArch/internal/i18n"
	"github.com/Tomas-vilte/MateArch/internal/infrastructure/backends"
	"github.com/urfave/cli/v3"
)

func newSetBackendCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set-backend",
		Usage: t.GetMessage("config_set_backend_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "backend",
				Aliases:  []string{"t"},
				Usage:    t.GetMessage("backend_flag_usage", 0, nil),
				Required: true,
			},
			&cli.IntFlag{
				Name:  "timeout",
				Usage: t.GetMessage("config_timeout_flag_usage", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			name := command.String("backend")
			if !slices.Contains(backends.Names(), name) {
				return fmt.Errorf("%s", t.GetMessage("unknown_backend", 0, map[string]interface{}{
					"Backend": name,
					"Options": strings.Join(backends.Names(), ", "),
				}))
			}

			cfg.DefaultBackend = name
			if timeout := command.Int("timeout"); timeout > 0 {
				cfg.BackendTimeoutSeconds = int(timeout)
			}
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Printf("%s\n", t.GetMessage("backend_configured", 0, map[string]interface{}{"Backend": name}))
			return nil
		},
	}
}
