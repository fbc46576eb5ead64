// Package testbackend implementa el comando de diagnóstico de backends de IA.
package testbackend

import (
	"context"
	"fmt"

	"github.com/Tomas-vilte/MateArch/internal/config"
	"github.com/Tomas-vilte/MateArch/internal/i18n"
	"github.com/Tomas-vilte/MateArch/internal/infrastructure/backends"
	"github.com/Tomas-vilte/MateArch/internal/ui"
	"github.com/urfave/cli/v3"
)

type TestBackendCommandFactory struct{}

func NewTestBackendCommandFactory() *TestBackendCommandFactory {
	return &TestBackendCommandFactory{}
}

func (f *TestBackendCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "test-backend",
		Usage: t.GetMessage("test_backend_command_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "backend",
				Aliases: []string{"t"},
				Usage:   t.GetMessage("backend_flag_usage", 0, nil),
			},
		},
		Action: f.createAction(cfg, t),
	}
}

func (f *TestBackendCommandFactory) createAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		names := backends.Names()
		if picked := command.String("backend"); picked != "" {
			names = []string{picked}
		}

		failures := 0
		for _, name := range names {
			backend, err := backends.New(ctx, name, cfg, false)
			if err != nil {
				failures++
				fmt.Printf("%s %s: %v\n", ui.ErrorEmoji, t.GetMessage("backend_not_available", 0, map[string]interface{}{
					"Backend": name,
				}), err)
				continue
			}

			if backend.IsAvailable(ctx) {
				fmt.Printf("%s %s\n", ui.SuccessEmoji, t.GetMessage("backend_available", 0, map[string]interface{}{
					"Backend": name,
				}))
			} else {
				failures++
				fmt.Printf("%s %s\n", ui.ErrorEmoji, t.GetMessage("backend_not_available", 0, map[string]interface{}{
					"Backend": name,
				}))
			}
		}

		if failures == len(names) {
			return fmt.Errorf("ningún backend de IA está disponible")
		}
		return nil
	}
}
