package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Tomas-vilte/MateArch/internal/cli/command/configcmd"
	"github.com/Tomas-vilte/MateArch/internal/cli/command/distributed"
	"github.com/Tomas-vilte/MateArch/internal/cli/command/fresh"
	"github.com/Tomas-vilte/MateArch/internal/cli/command/testbackend"
	"github.com/Tomas-vilte/MateArch/internal/cli/command/update"
	"github.com/Tomas-vilte/MateArch/internal/cli/registry"
	cfg "github.com/Tomas-vilte/MateArch/internal/config"
	"github.com/Tomas-vilte/MateArch/internal/i18n"
	"github.com/Tomas-vilte/MateArch/internal/logger"
	"github.com/Tomas-vilte/MateArch/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error iniciando la cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func initializeApp() (*cli.Command, error) {
	logger.Initialize(os.Getenv("MATE_ARCH_DEBUG") != "", false)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("no se pudo obtener el directorio del usuario: %w", err)
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language, "")
	if err != nil {
		return nil, fmt.Errorf("error al cargar las traducciones: %w", err)
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("update", update.NewUpdateCommandFactory()); err != nil {
		log.Fatalf("Error al registrar el comando 'update': %v", err)
	}

	if err := registerCommand.Register("fresh", fresh.NewFreshCommandFactory()); err != nil {
		log.Fatalf("Error al registrar el comando 'fresh': %v", err)
	}

	if err := registerCommand.Register("distributed", distributed.NewDistributedCommandFactory()); err != nil {
		log.Fatalf("Error al registrar el comando 'distributed': %v", err)
	}

	if err := registerCommand.Register("test-backend", testbackend.NewTestBackendCommandFactory()); err != nil {
		log.Fatalf("Error al registrar el comando 'test-backend': %v", err)
	}

	if err := registerCommand.Register("config", configcmd.NewConfigCommandFactory()); err != nil {
		log.Fatalf("Error al registrar el comando 'config': %v", err)
	}

	commands := registerCommand.CreateCommands()

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
	commands = append(commands, helpCommand)

	return &cli.Command{
		Name:                  "mate-arch",
		Usage:                 translations.GetMessage("app_usage", 0, nil),
		Version:               version.Version,
		Description:           translations.GetMessage("app_description", 0, nil),
		Commands:              commands,
		EnableShellCompletion: true,
	}, nil
}
