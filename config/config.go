package config

import (
	"fmt"
	"log/slog"
)

// Decoder turns raw configuration bytes into a Value.
// See config/parser/yaml for the YAML implementation.
type Decoder interface {
	Decode(data []byte) (Value, error)
}

// DataFetcher defines an interface for reading configuration data.
// Source names where the data comes from and is used in error messages.
type DataFetcher interface {
	Fetch() ([]byte, error)
	Source() string
}

// Registry maps the current project to its configuration directory.
type Registry interface {
	CurrentProjectConfigDir() (string, error)
}

// Load reads, decodes and optionally narrows configuration data to one top-level section.
//
// The decoded document must be a mapping; an empty document is an empty mapping.
// Decoding failures are returned as *ConfigParseError, a missing section as
// *SectionNotFoundError.
func Load(fetcher DataFetcher, decoder Decoder, section string) (Value, error) {
	data, err := fetcher.Fetch()
	if err != nil {
		return Value{}, fmt.Errorf("reading data error: %w", err)
	}

	value, err := decoder.Decode(data)
	if err != nil {
		return Value{}, &ConfigParseError{Source: fetcher.Source(), Err: err}
	}

	switch {
	case value.IsNull():
		value = NewMapping()
	case !value.IsMapping():
		return Value{}, &ConfigParseError{
			Source: fetcher.Source(),
			Err:    fmt.Errorf("top level is a %s, not a mapping", value.Kind()),
		}
	}

	if section == "" {
		return value, nil
	}

	result, err := Section(value, section)
	if err != nil {
		return Value{}, err
	}

	slog.Debug("config section extracted", slog.String("source", fetcher.Source()), slog.String("section", section))

	return result, nil
}

// Section returns the value of a top-level key of value.
func Section(value Value, section string) (Value, error) {
	result, ok := value.Get(section)
	if !ok {
		return Value{}, &SectionNotFoundError{Section: section}
	}

	return result, nil
}
