package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/gmprocess/gmconf"
	"github.com/gmprocess/gmconf/config"
	yamlparser "github.com/gmprocess/gmconf/config/parser/yaml"

	"github.com/spf13/cobra"
)

var errNoFiles = errors.New("--no-defaults needs at least one file")

type cli struct {
	env       config.Environment
	logLevel  string
	logFormat string
}

func newRootCommand(environment config.Environment, cliSettings settings) *cobra.Command {
	c := &cli{env: environment}

	rootCmd := &cobra.Command{
		Use:   "gmconf",
		Short: "Inspect the layered configuration of the current project",
		Long: `gmconf resolves the configuration of the current project the same way the
processing tools do: an explicit file, the test fixture when GMCONF_TEST_MODE is
set, or config.yml in the conf_path of the current project in projects.conf.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", gmconf.Version, gmconf.Commit, gmconf.CompiledAt),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", cliSettings.LogLevel, "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&c.logFormat, "log-format", cliSettings.LogFormat, "log format: text or json")

	rootCmd.AddCommand(
		c.newShowCommand(),
		c.newMergeCommand(),
		c.newProjectCommand(),
	)

	return rootCmd
}

func (c *cli) run(cmd *cobra.Command, fn func(app *gmconf.App) error) error {
	app := gmconf.NewApp(
		gmconf.WithEnvironment(c.env),
		gmconf.WithLogLevel(c.logLevel),
		gmconf.WithLogFormat(c.logFormat),
		gmconf.WithLogOutput(cmd.ErrOrStderr()),
	)

	err := app.Start()
	if err != nil {
		return err
	}

	defer func() { _ = app.Stop() }()

	return fn(app)
}

func (c *cli) newShowCommand() *cobra.Command {
	var configFile, section string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(app *gmconf.App) error {
				value, err := app.Resolver().GetConfig(configFile, section)
				if err != nil {
					return err
				}

				return printValue(cmd.OutOrStdout(), value)
			})
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "configuration file (default: resolved from the project registry)")
	cmd.Flags().StringVarP(&section, "section", "s", "", "top-level section to print")

	return cmd
}

func (c *cli) newMergeCommand() *cobra.Command {
	var (
		section    string
		noDefaults bool
	)

	cmd := &cobra.Command{
		Use:   "merge [FILE...]",
		Short: "Print the packaged defaults merged with configuration files",
		Long: `merge layers the given files over the packaged defaults, later files taking
precedence. Without files the resolved project configuration is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(app *gmconf.App) error {
				var (
					value config.Value
					err   error
				)

				if noDefaults {
					value, err = mergeFiles(app, section, args)
				} else {
					value, err = app.Resolver().Layered(section, args...)
				}

				if err != nil {
					return err
				}

				return printValue(cmd.OutOrStdout(), value)
			})
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "top-level section to print")
	cmd.Flags().BoolVar(&noDefaults, "no-defaults", false, "do not start from the packaged defaults")

	return cmd
}

func mergeFiles(app *gmconf.App, section string, files []string) (config.Value, error) {
	if len(files) == 0 {
		return config.Value{}, errNoFiles
	}

	layers := make([]config.Value, 0, len(files))

	for _, file := range files {
		layer, err := app.Resolver().GetConfig(file, "")
		if err != nil {
			return config.Value{}, err
		}

		layers = append(layers, layer)
	}

	merged, err := config.MergeDicts(layers...)
	if err != nil {
		return config.Value{}, err
	}

	if section == "" {
		return merged, nil
	}

	return config.Section(merged, section)
}

func (c *cli) newProjectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "project",
		Short: "Print the current project from the project registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(app *gmconf.App) error {
				project, err := app.Registry().CurrentProject()
				if err != nil {
					return err
				}

				path, err := app.Registry().Path()
				if err != nil {
					return err
				}

				value := config.NewMapping()
				value.Set("registry", config.String(path))
				value.Set("project", config.String(project.Name))
				value.Set("conf_path", config.String(project.ConfPath))

				if project.DataPath != "" {
					value.Set("data_path", config.String(project.DataPath))
				}

				return printValue(cmd.OutOrStdout(), value)
			})
		},
	}
}

func printValue(w io.Writer, value config.Value) error {
	out, err := yamlparser.NewParser().Encode(value)
	if err != nil {
		return err
	}

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}
