// Package fresh implementa el comando que genera documentación de arquitectura
// desde cero analizando el codebase completo.
package fresh

import (
	"context"

	"github.com/Tomas-vilte/MateArch/internal/cli/pipeline"
	"github.com/Tomas-vilte/MateArch/internal/config"
	"github.com/Tomas-vilte/MateArch/internal/i18n"
	"github.com/Tomas-vilte/MateArch/internal/ui"
	"github.com/urfave/cli/v3"
)

type FreshCommandFactory struct{}

func NewFreshCommandFactory() *FreshCommandFactory {
	return &FreshCommandFactory{}
}

func (f *FreshCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "fresh",
		Aliases:   []string{"f"},
		Usage:     t.GetMessage("fresh_command_usage", 0, nil),
		ArgsUsage: "[project-path]",
		Flags:     commonFlags(t),
		Action:    f.createAction(cfg, t),
	}
}

func (f *FreshCommandFactory) createAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		opts := OptionsFromCommand(command)

		spinner := ui.NewSmartSpinner(t.GetMessage("analyzing_repository", 0, nil))
		spinner.Start()
		defer spinner.Stop()

		p, err := pipeline.Build(ctx, opts, cfg, t)
		if err != nil {
			spinner.Error(err.Error())
			return err
		}

		doc, err := p.Docgen.GenerateFresh(ctx, opts, cfg.ExcludedPatterns, spinner.Update)
		if err != nil {
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

// OptionsFromCommand traduce flags y argumentos a RunOptions. Lo comparten los
// comandos fresh y update.
func OptionsFromCommand(command *cli.Command) *config.RunOptions {
	return &config.RunOptions{
		ProjectPath:       command.Args().First(),
		Subfolder:         command.String("subfolder"),
		DocFilename:       command.String("file"),
		ProjectName:       command.String("project-name"),
		Backend:           command.String("backend"),
		BaseBranch:        command.String("base-branch"),
		DryRun:            command.Bool("dry-run"),
		ExtendPatternPath: command.String("extend-pattern"),
	}
}

func commonFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "subfolder",
			Aliases: []string{"s"},
			Usage:   t.GetMessage("subfolder_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Value:   "arch.md",
			Usage:   t.GetMessage("file_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:    "project-name",
			Aliases: []string{"p"},
			Usage:   t.GetMessage("project_name_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:    "backend",
			Aliases: []string{"t"},
			Usage:   t.GetMessage("backend_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:    "base-branch",
			Aliases: []string{"b"},
			Usage:   t.GetMessage("base_branch_flag_usage", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: t.GetMessage("dry_run_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:  "extend-pattern",
			Usage: t.GetMessage("extend_pattern_flag_usage", 0, nil),
		},
	}
}

// CommonFlags expone los flags compartidos para otros comandos del grupo.
func CommonFlags(t *i18n.Translations) []cli.Flag {
	return commonFlags(t)
}
