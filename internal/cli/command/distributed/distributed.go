// Package distributed implementa el comando de análisis multi-PR: trae los
// diffs de un batch de pull requests de varios repos y documenta el impacto
// arquitectónico cruzado.
package distributed

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Tomas-vilte/MateArch/internal/cli/pipeline"
	"github.com/Tomas-vilte/MateArch/internal/config"
	"github.com/Tomas-vilte/MateArch/internal/domain/models"
	"github.com/Tomas-vilte/MateArch/internal/i18n"
	"github.com/Tomas-vilte/MateArch/internal/ui"
	"github.com/urfave/cli/v3"
)

// prSpecPattern acepta "owner/repo#123".
var prSpecPattern = regexp.MustCompile(`^([^/#\s]+/[^/#\s]+)#(\d+)$`)

type DistributedCommandFactory struct{}

func NewDistributedCommandFactory() *DistributedCommandFactory {
	return &DistributedCommandFactory{}
}

func (f *DistributedCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "distributed",
		Aliases: []string{"d"},
		Usage:   t.GetMessage("distributed_command_usage", 0, nil),
		Flags:   f.createFlags(t),
		Action:  f.createAction(cfg, t),
	}
}

func (f *DistributedCommandFactory) createFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:     "pr",
			Usage:    t.GetMessage("pr_flag_usage", 0, nil),
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:    "description",
			Aliases: []string{"d"},
			Usage:   t.GetMessage("description_flag_usage", 0, nil),
		},
		&cli.StringSliceFlag{
			Name:  "focus",
			Usage: t.GetMessage("focus_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   "distributed_arch.md",
			Usage:   t.GetMessage("output_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:    "backend",
			Aliases: []string{"t"},
			Usage:   t.GetMessage("backend_flag_usage", 0, nil),
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

func (f *DistributedCommandFactory) createAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		requests, err := ParseRequests(
			command.StringSlice("pr"),
			command.StringSlice("description"),
			command.StringSlice("focus"),
		)
		if err != nil {
			return err
		}

		spinner := ui.NewSmartSpinner(t.GetMessage("fetching_pr", 0, map[string]interface{}{
			"Repo":   requests[0].Repo,
			"Number": requests[0].Number,
		}))
		spinner.Start()
		defer spinner.Stop()

		p, err := pipeline.BuildDistributed(ctx, command.String("backend"), command.String("extend-pattern"), cfg, t, command.Bool("dry-run"))
		if err != nil {
			spinner.Error(err.Error())
			return err
		}

		analysis, doc, err := p.Docgen.GenerateDistributed(ctx, requests, command.String("output"), spinner.Update)
		if err != nil {
			spinner.Error(err.Error())
			return err
		}

		reportFailures(spinner, t, analysis)

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

func reportFailures(spinner *ui.SmartSpinner, t *i18n.Translations, analysis models.MultiPRAnalysis) {
	failed := 0
	for _, pr := range analysis.PRDiffs {
		if pr.Failed {
			failed++
			spinner.Log(fmt.Sprintf("%s#%d: %s", pr.Repo, pr.Number, pr.FailureReason))
		}
	}
	if failed > 0 {
		spinner.Log(t.GetMessage("pr_failed_count", failed, map[string]interface{}{
			"Count": failed,
		}))
	}
}

// ParseRequests convierte los flags repetidos en requests de PR. Las
// descripciones y áreas de foco se emparejan por posición.
func ParseRequests(specs, descriptions, focuses []string) ([]models.PRRequest, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("se necesita al menos un --pr owner/repo#number")
	}

	requests := make([]models.PRRequest, 0, len(specs))
	for i, spec := range specs {
		matches := prSpecPattern.FindStringSubmatch(strings.TrimSpace(spec))
		if matches == nil {
			return nil, fmt.Errorf("formato de PR inválido %q, se espera owner/repo#number", spec)
		}
		number, err := strconv.Atoi(matches[2])
		if err != nil || number <= 0 {
			return nil, fmt.Errorf("número de PR inválido en %q", spec)
		}

		req := models.PRRequest{Repo: matches[1], Number: number}
		if i < len(descriptions) {
			req.Description = descriptions[i]
		}
		if i < len(focuses) && focuses[i] != "" {
			for _, area := range strings.Split(focuses[i], ",") {
				if area = strings.TrimSpace(area); area != "" {
					req.FocusAreas = append(req.FocusAreas, area)
				}
			}
		}
		requests = append(requests, req)
	}
	return requests, nil
}
