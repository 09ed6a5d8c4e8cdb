package gmconf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gmprocess/gmconf/config/registry"
	"github.com/gmprocess/gmconf/config/resolver"
	"github.com/gmprocess/gmconf/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// App is a configured starting point for tools that load project configuration.
// It wires the logger, the environment, the project registry and the resolver with Fx.
type App struct {
	app      *fx.App
	resolver *resolver.Resolver
	registry *registry.File
}

// NewApp creates a new instance of App with Fx configured.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	app := &App{}
	app.app = configure(&options, app)

	return app
}

func configure(options *Options, app *App) *fx.App {
	output := options.LogOutput
	if output == nil {
		output = os.Stderr
	}

	loggerConfig := logging.LoggerConfig{Level: options.LogLevel, Format: options.LogFormat}
	logger := createLogger(loggerConfig, output)
	slog.SetDefault(logger)

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(loggerConfig),
		fx.Supply(logger),
		fx.Supply(options.Environment),
		resolver.NewModule(),
		fx.Populate(&app.resolver, &app.registry),
		fx.Options(options.Modules...),
	)
}

func createLogger(config logging.LoggerConfig, w io.Writer) *slog.Logger {
	return logging.NewLogger(config, w)
}

// Err returns the error, if any, raised while building the dependency graph.
func (app *App) Err() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	err := app.app.Err()
	if err != nil {
		return fmt.Errorf("failed to build app: %w", err)
	}

	return nil
}

// Resolver returns the configuration resolver, or nil if the app failed to build.
func (app *App) Resolver() *resolver.Resolver {
	if app == nil {
		return nil
	}

	return app.resolver
}

// Registry returns the project registry selected for the environment, or nil if the app failed to build.
func (app *App) Registry() *registry.File {
	if app == nil {
		return nil
	}

	return app.registry
}

// Start starts the Fx application.
func (app *App) Start() error {
	if app != nil && app.app != nil {
		err := app.app.Start(context.Background())
		if err != nil {
			return fmt.Errorf("failed to start app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app != nil && app.app != nil {
		err := app.app.Stop(context.Background())
		if err != nil {
			return fmt.Errorf("failed to stop app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}
