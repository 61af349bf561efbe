package app

import (
	"context"

	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/health"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/tools"
)

// App holds the application dependencies
type App struct {
	// Store persists the settings document; nil when settings were
	// supplied directly with WithSettings.
	Store *config.Store

	// Config is the immutable runtime configuration
	Config *config.Config

	// Toolkit serves the operations
	Toolkit *tools.Toolkit
}

type options struct {
	configPath   string
	settings     *config.Settings
	toolkitOpts  []tools.Option
	settingsHook func(*config.Settings)
}

// Option is a function that configures the App
type Option func(*options)

// WithConfigPath sets the settings file to load
func WithConfigPath(path string) Option {
	return func(o *options) {
		o.configPath = path
	}
}

// WithSettings uses s instead of loading a settings file
func WithSettings(s config.Settings) Option {
	return func(o *options) {
		o.settings = &s
	}
}

// WithOverrides adjusts the loaded settings before the Config is built.
// The settings file is not modified.
func WithOverrides(fn func(*config.Settings)) Option {
	return func(o *options) {
		o.settingsHook = fn
	}
}

// WithToolkitOptions passes options through to tools.New
func WithToolkitOptions(opts ...tools.Option) Option {
	return func(o *options) {
		o.toolkitOpts = append(o.toolkitOpts, opts...)
	}
}

// New loads the settings, builds the Config and the Toolkit. Any failure
// here is fatal for the caller: without a valid workspace no operation can
// be trusted.
func New(opts ...Option) (*App, error) {
	o := &options{configPath: config.DefaultPath()}
	for _, opt := range opts {
		opt(o)
	}

	a := &App{}

	var settings config.Settings
	if o.settings != nil {
		settings = *o.settings
	} else {
		store, err := config.Open(o.configPath)
		if err != nil {
			return nil, err
		}
		a.Store = store
		settings = store.Settings()
	}
	if o.settingsHook != nil {
		o.settingsHook(&settings)
	}

	cfg, err := config.New(settings)
	if err != nil {
		return nil, err
	}
	a.Config = cfg
	a.Toolkit = tools.New(cfg, o.toolkitOpts...)

	logging.Debug("toolkit ready",
		"workspace", cfg.Workspace(),
		"sandbox_enabled", cfg.SandboxEnabled(),
		"launcher", cfg.LauncherPath(),
	)
	return a, nil
}

// Doctor runs the health checks against the App's configuration.
func (a *App) Doctor(ctx context.Context) *health.CheckResult {
	return health.Check(ctx, a.Config)
}
