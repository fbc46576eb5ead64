// Package update implementa el comando por defecto: actualizar el documento de
// arquitectura a partir de los cambios de git contra la rama base.
package update

import (
	"context"
	"errors"

	"github.com/Tomas-vilte/MateArch/internal/cli/command/fresh"
	"github.com/Tomas-vilte/MateArch/internal/cli/pipeline"
	"github.com/Tomas-vilte/MateArch/internal/config"
	"github.com/Tomas-vilte/MateArch/internal/i18n"
	"github.com/Tomas-vilte/MateArch/internal/services/docgen"
	"github.com/Tomas-vilte/MateArch/internal/ui"
	"github.com/urfave/cli/v3"
)

type UpdateCommandFactory struct{}

func NewUpdateCommandFactory() *UpdateCommandFactory {
	return &UpdateCommandFactory{}
}

func (f *UpdateCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Aliases:   []string{"u"},
		Usage:     t.GetMessage("update_command_usage", 0, nil),
		ArgsUsage: "[project-path]",
		Flags:     fresh.CommonFlags(t),
		Action:    f.createAction(cfg, t),
	}
}

func (f *UpdateCommandFactory) createAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		opts := fresh.OptionsFromCommand(command)

		spinner := ui.NewSmartSpinner(t.GetMessage("analyzing_repository", 0, nil))
		spinner.Start()
		defer spinner.Stop()

		p, err := pipeline.Build(ctx, opts, cfg, t)
		if err != nil {
			spinner.Error(err.Error())
			return err
		}

		doc, err := p.Docgen.UpdateFromChanges(ctx, opts, cfg.ExcludedPatterns, spinner.Update)
		if err != nil {
			if errors.Is(err, docgen.ErrUpToDate) {
				spinner.Success(err.Error())
				return nil
			}
			spinner.Error(err.Error())
			return err
		}

		if err := doc.Save(); err != nil {
			spinner.Error(err.Error())
			return err
		}

		spinner.Success(t.GetMessage("document_saved", 0, map[string]interface{}{
			"Path": doc.FilePath,
		}))
		return nil
	}
}
