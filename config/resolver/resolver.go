package resolver

import (
	"embed"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gmprocess/gmconf/config"
	filefetcher "github.com/gmprocess/gmconf/config/fetcher/file"
)

const (
	// ConfigFileName is the configuration file inside a project configuration directory.
	ConfigFileName = "config.yml"

	testFixtureFile = "data/config_test.yml"
	defaultsFile    = "data/config_defaults.yml"
)

//go:embed data/config_test.yml data/config_defaults.yml
var packaged embed.FS

// Origin tells how the configuration file was chosen.
type Origin string

const (
	// OriginExplicit is a path given by the caller.
	OriginExplicit Origin = "explicit"
	// OriginTestFixture is the test-mode fixture.
	OriginTestFixture Origin = "test-fixture"
	// OriginRegistry is the current project's config.yml found through the registry.
	OriginRegistry Origin = "registry"
	// OriginDefaults is the packaged defaults.
	OriginDefaults Origin = "defaults"
)

// Resolver picks and loads configuration files. It holds no mutable state and
// is safe for concurrent use.
type Resolver struct {
	env      config.Environment
	registry config.Registry
	decoder  config.Decoder
	logger   *slog.Logger
}

// New creates a Resolver. A nil logger falls back to slog.Default().
func New(env config.Environment, registry config.Registry, decoder config.Decoder, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{
		env:      env,
		registry: registry,
		decoder:  decoder,
		logger:   logger,
	}
}

// GetConfig loads the configuration and optionally returns one of its top-level sections.
//
// With an empty configFile the file is chosen as follows: in test mode the test
// fixture is used and the registry is never consulted; otherwise it is config.yml
// in the configuration directory of the registry's current project. Relative
// paths are resolved against the environment's working directory.
//
// A *config.MissingConfigFileError names the path that was checked: configFile
// joined to the working directory when relative, then cleaned. An absolute,
// clean configFile is reported unchanged.
//
// Errors: *config.MissingConfigFileError, *config.ConfigParseError,
// *config.SectionNotFoundError and *config.RegistryLookupError.
func (r *Resolver) GetConfig(configFile, section string) (config.Value, error) {
	fetcher, err := r.fetcher(configFile)
	if err != nil {
		return config.Value{}, err
	}

	value, err := config.Load(fetcher, r.decoder, section)
	if err != nil {
		return config.Value{}, fmt.Errorf("loading config: %w", err)
	}

	return value, nil
}

// Defaults returns the packaged default configuration.
func (r *Resolver) Defaults() (config.Value, error) {
	fetcher, err := packagedFetcher(defaultsFile)
	if err != nil {
		return config.Value{}, err
	}

	r.logger.Debug("config file resolved", slog.String("path", fetcher.Source()), slog.String("origin", string(OriginDefaults)))

	value, err := config.Load(fetcher, r.decoder, "")
	if err != nil {
		return config.Value{}, fmt.Errorf("loading defaults: %w", err)
	}

	return value, nil
}

// Layered merges the packaged defaults with configFiles, later files taking
// precedence, and optionally returns one top-level section of the result.
// Without configFiles the file chosen by GetConfig is layered over the defaults.
func (r *Resolver) Layered(section string, configFiles ...string) (config.Value, error) {
	defaults, err := r.Defaults()
	if err != nil {
		return config.Value{}, err
	}

	if len(configFiles) == 0 {
		configFiles = []string{""}
	}

	layers := make([]config.Value, 0, len(configFiles)+1)
	layers = append(layers, defaults)

	for _, configFile := range configFiles {
		layer, err := r.GetConfig(configFile, "")
		if err != nil {
			return config.Value{}, err
		}

		layers = append(layers, layer)
	}

	merged, err := config.MergeDicts(layers...)
	if err != nil {
		return config.Value{}, fmt.Errorf("merging config layers: %w", err)
	}

	if section == "" {
		return merged, nil
	}

	result, err := config.Section(merged, section)
	if err != nil {
		return config.Value{}, fmt.Errorf("loading config: %w", err)
	}

	return result, nil
}

func (r *Resolver) fetcher(configFile string) (config.DataFetcher, error) {
	if configFile != "" {
		return r.fileFetcher(configFile, OriginExplicit)
	}

	if r.env.TestMode {
		if r.env.TestFixture != "" {
			return r.fileFetcher(r.env.TestFixture, OriginTestFixture)
		}

		fetcher, err := packagedFetcher(testFixtureFile)
		if err != nil {
			return nil, err
		}

		r.logger.Debug("config file resolved", slog.String("path", fetcher.Source()), slog.String("origin", string(OriginTestFixture)))

		return fetcher, nil
	}

	confDir, err := r.registry.CurrentProjectConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolving current project: %w", err)
	}

	return r.fileFetcher(filepath.Join(confDir, ConfigFileName), OriginRegistry)
}

func (r *Resolver) fileFetcher(path string, origin Origin) (config.DataFetcher, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.env.WorkingDir, path)
	}

	r.logger.Debug("config file resolved", slog.String("path", path), slog.String("origin", string(origin)))

	fetcher, err := filefetcher.NewFetcher(path)()
	if err != nil {
		return nil, err
	}

	return fetcher, nil
}

func packagedFetcher(name string) (*filefetcher.Static, error) {
	data, err := packaged.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading packaged %s: %w", name, err)
	}

	return &filefetcher.Static{Name: "embedded:" + name, Data: data}, nil
}
