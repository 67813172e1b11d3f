package main

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kipyin/lego-songbook/internal/config"
	"github.com/kipyin/lego-songbook/internal/logging"
	"github.com/kipyin/lego-songbook/internal/model"
	"github.com/kipyin/lego-songbook/internal/pipeline"
	"github.com/kipyin/lego-songbook/internal/sortkey"
)

type globalFlags struct {
	config      string
	envFile     string
	catalog     string
	legacy      bool
	libraryRoot string
	verbose     bool
}

// commandContext lazily loads what subcommands share.
type commandContext struct {
	flags *globalFlags

	settingsVal *config.Settings
	loggerVal   *zap.Logger
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// settings loads the config file, the environment and then the flags.
func (c *commandContext) settings() (*config.Settings, error) {
	if c.settingsVal != nil {
		return c.settingsVal, nil
	}

	settings, err := config.Load(strings.TrimSpace(c.flags.config))
	if err != nil {
		return nil, err
	}
	if err := settings.ApplyEnv(strings.TrimSpace(c.flags.envFile)); err != nil {
		return nil, err
	}

	if c.flags.catalog != "" {
		settings.Catalog = c.flags.catalog
	}
	if c.flags.legacy {
		settings.LegacyFormat = true
	}
	if c.flags.libraryRoot != "" {
		settings.LibraryRoot = c.flags.libraryRoot
	}

	c.settingsVal = settings
	return settings, nil
}

func (c *commandContext) logger() (*zap.Logger, error) {
	if c.loggerVal != nil {
		return c.loggerVal, nil
	}
	settings, err := c.settings()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{Level: settings.LogLevel, Verbose: c.flags.verbose})
	if err != nil {
		return nil, err
	}
	c.loggerVal = logger
	return logger, nil
}

func (c *commandContext) keys() (*sortkey.Builder, error) {
	settings, err := c.settings()
	if err != nil {
		return nil, err
	}
	return settings.KeyBuilder()
}

// manager builds a pipeline manager whose events go to the logger.
func (c *commandContext) manager() (*pipeline.Manager, error) {
	settings, err := c.settings()
	if err != nil {
		return nil, err
	}
	logger, err := c.logger()
	if err != nil {
		return nil, err
	}
	return pipeline.NewManager(settings, logger, logEvent(logger))
}

// catalog imports the catalog and merges the song info document.
func (c *commandContext) catalog(ctx context.Context) (*model.SongCatalog, error) {
	m, err := c.manager()
	if err != nil {
		return nil, err
	}
	if err := m.Initialize(ctx); err != nil {
		return nil, err
	}
	return m.Catalog(), nil
}

// run initializes a manager and executes steps.
func (c *commandContext) run(ctx context.Context, steps pipeline.Steps) (*pipeline.Manager, error) {
	m, err := c.manager()
	if err != nil {
		return nil, err
	}
	if err := m.Initialize(ctx); err != nil {
		return nil, err
	}
	return m, m.Run(ctx, steps)
}

func (c *commandContext) close() {
	if c.loggerVal != nil {
		_ = c.loggerVal.Sync()
	}
}

func logEvent(logger *zap.Logger) func(pipeline.ProgressEvent) {
	return func(e pipeline.ProgressEvent) {
		switch e.Level {
		case pipeline.LevelVerbose:
			logger.Debug(e.Message)
		case pipeline.LevelWarning:
			logger.Warn(e.Message)
		case pipeline.LevelError:
			logger.Error(e.Message)
		default:
			logger.Info(e.Message, zap.Stringer("level", e.Level))
		}
	}
}
