package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// TestModeVariable is the environment variable whose presence, with any value
// including the empty string, selects test mode.
const TestModeVariable = "GMCONF_TEST_MODE"

// Environment is the process context the resolver depends on. It is built once
// at the entry point and passed down explicitly, so the resolver itself never
// reads environment variables or the working directory.
type Environment struct {
	// TestMode makes the resolver load the test fixture instead of consulting the project registry.
	TestMode bool
	// WorkingDir is where the local project directory is looked up and relative paths are resolved.
	WorkingDir string
	// HomeDir holds the global project registry. It must be absolute for the
	// global registry to be located.
	HomeDir string `env:"HOME"`
	// TestFixture overrides the packaged test fixture in test mode.
	TestFixture string `env:"GMCONF_TEST_FIXTURE"`
}

// LoadEnvironment builds an Environment from environment variables and a working directory.
// A nil environ means the process environment, an empty workingDir means the current directory.
// When HOME is unset or empty, the home directory falls back to os.UserHomeDir and is left
// empty if that fails too.
func LoadEnvironment(environ map[string]string, workingDir string) (Environment, error) {
	if environ == nil {
		environ = env.ToMap(os.Environ())
	}

	var result Environment

	err := env.ParseWithOptions(&result, env.Options{Environment: environ})
	if err != nil {
		return Environment{}, fmt.Errorf("parsing environment: %w", err)
	}

	_, result.TestMode = environ[TestModeVariable]

	if result.HomeDir == "" {
		if home, homeErr := os.UserHomeDir(); homeErr == nil {
			result.HomeDir = home
		}
	}

	if workingDir == "" {
		workingDir, err = os.Getwd()
		if err != nil {
			return Environment{}, fmt.Errorf("getting working directory: %w", err)
		}
	}

	result.WorkingDir = workingDir

	return result, nil
}
