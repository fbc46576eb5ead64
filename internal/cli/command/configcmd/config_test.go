package configcmd

import (
	"context"
	"testing"

	"github.com/Tomas-vilte/MateArch/internal/config"
	"github.com/Tomas-vilte/MateArch/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func setupConfigTest(t *testing.T) (*config.Config, *i18n.Translations) {
	t.Helper()

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	return cfg, translations
}

func TestSetLangCommand(t *testing.T) {
	t.Run("should persist a supported language", func(t *testing.T) {
		// Arrange
		cfg, translations := setupConfigTest(t)
		cmd := newSetLangCommand(translations, cfg)
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		// Act
		err := app.Run(context.Background(), []string{"config", "set-lang", "--lang", "es"})

		// Assert
		require.NoError(t, err)
		loaded, err := config.LoadConfig(cfg.PathFile)
		require.NoError(t, err)
		assert.Equal(t, "es", loaded.Language)
	})

	t.Run("should fail with an unsupported language", func(t *testing.T) {
		cfg, translations := setupConfigTest(t)
		cmd := newSetLangCommand(translations, cfg)
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(context.Background(), []string{"config", "set-lang", "--lang", "fr"})

		assert.Error(t, err)
	})
}

func TestSetBackendCommand(t *testing.T) {
	t.Run("should persist a known backend and timeout", func(t *testing.T) {
		cfg, translations := setupConfigTest(t)
		cmd := newSetBackendCommand(translations, cfg)
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(context.Background(), []string{"config", "set-backend", "--backend", "fabric", "--timeout", "120"})

		require.NoError(t, err)
		loaded, err := config.LoadConfig(cfg.PathFile)
		require.NoError(t, err)
		assert.Equal(t, "fabric", loaded.DefaultBackend)
		assert.Equal(t, 120, loaded.BackendTimeoutSeconds)
	})

	t.Run("should reject an unknown backend", func(t *testing.T) {
		cfg, translations := setupConfigTest(t)
		cmd := newSetBackendCommand(translations, cfg)
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(context.Background(), []string{"config", "set-backend", "--backend", "gpt-9"})

		assert.Error(t, err)
		loaded, loadErr := config.LoadConfig(cfg.PathFile)
		require.NoError(t, loadErr)
		assert.Equal(t, "cursor-agent", loaded.DefaultBackend)
	})
}

func TestSetTokenCommand(t *testing.T) {
	t.Run("should store the provided credentials", func(t *testing.T) {
		cfg, translations := setupConfigTest(t)
		cmd := newSetTokenCommand(translations, cfg)
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(context.Background(), []string{"config", "set-token", "--gemini-key", "g-key", "--github-token", "gh-token"})

		require.NoError(t, err)
		loaded, err := config.LoadConfig(cfg.PathFile)
		require.NoError(t, err)
		assert.Equal(t, "g-key", loaded.GeminiAPIKey)
		assert.Equal(t, "gh-token", loaded.GitHubToken)
	})

	t.Run("should fail when nothing is provided", func(t *testing.T) {
		cfg, translations := setupConfigTest(t)
		cmd := newSetTokenCommand(translations, cfg)
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(context.Background(), []string{"config", "set-token"})

		assert.Error(t, err)
	})
}

func TestSetExcludedCommand(t *testing.T) {
	t.Run("should append and clear patterns", func(t *testing.T) {
		cfg, translations := setupConfigTest(t)
		cmd := newSetExcludedCommand(translations, cfg)
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(context.Background(), []string{"config", "set-excluded", "--pattern", "vendor/", "--pattern", "gen/"})
		require.NoError(t, err)

		loaded, err := config.LoadConfig(cfg.PathFile)
		require.NoError(t, err)
		assert.Equal(t, []string{"vendor/", "gen/"}, loaded.ExcludedPatterns)

		// Una segunda invocación arma el comando de cero, como haría el binario.
		clearApp := &cli.Command{Commands: []*cli.Command{newSetExcludedCommand(translations, cfg)}}
		err = clearApp.Run(context.Background(), []string{"config", "set-excluded", "--clear"})
		require.NoError(t, err)

		loaded, err = config.LoadConfig(cfg.PathFile)
		require.NoError(t, err)
		assert.Empty(t, loaded.ExcludedPatterns)
	})
}
