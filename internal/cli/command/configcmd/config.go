// Package configcmd agrupa los subcomandos de configuración del CLI.
package configcmd

import (
	"github.com/Tomas-vilte/MateArch/internal/config"
	"github.com/Tomas-vilte/MateArch/internal/i18n"
	"github.com/urfave/cli/v3"
)

type ConfigCommandFactory struct{}

func NewConfigCommandFactory() *ConfigCommandFactory {
	return &ConfigCommandFactory{}
}

func (f *ConfigCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: t.GetMessage("config_command_usage", 0, nil),
		Commands: []*cli.Command{
			newShowCommand(t, cfg),
			newSetLangCommand(t, cfg),
			newSetBackendCommand(t, cfg),
			newSetTokenCommand(t, cfg),
			newSetExcludedCommand(t, cfg),
		},
	}
}
