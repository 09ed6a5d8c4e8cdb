package main

import (
	"fmt"
	"os"

	"github.com/gmprocess/gmconf/config"

	"github.com/caarlos0/env/v11"
)

// settings configures the command itself, not the loaded configuration.
type settings struct {
	LogLevel  string `env:"GMCONF_LOG_LEVEL"  envDefault:"warn"`
	LogFormat string `env:"GMCONF_LOG_FORMAT" envDefault:"text"`
}

func main() {
	environ := env.ToMap(os.Environ())

	environment, err := config.LoadEnvironment(environ, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	var cliSettings settings

	err = env.ParseWithOptions(&cliSettings, env.Options{Environment: environ})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	err = newRootCommand(environment, cliSettings).Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
