package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a merge is called with no mappings or with non-mapping values.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMissingConfigFile matches any *MissingConfigFileError.
	ErrMissingConfigFile = errors.New("missing config file")
	// ErrConfigParse matches any *ConfigParseError.
	ErrConfigParse = errors.New("config parse error")
	// ErrSectionNotFound matches any *SectionNotFoundError.
	ErrSectionNotFound = errors.New("section not found")
	// ErrRegistryLookup matches any *RegistryLookupError.
	ErrRegistryLookup = errors.New("registry lookup failure")
)

// MissingConfigFileError reports a resolved configuration path that is not an existing file.
type MissingConfigFileError struct {
	Path string
	Err  error
}

func (e *MissingConfigFileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("missing config file %s: %v", e.Path, e.Err)
	}

	return "missing config file " + e.Path
}

// Is matches ErrMissingConfigFile.
func (e *MissingConfigFileError) Is(target error) bool {
	return target == ErrMissingConfigFile
}

func (e *MissingConfigFileError) Unwrap() error {
	return e.Err
}

// ConfigParseError reports a configuration file that is not a valid YAML mapping.
type ConfigParseError struct {
	Source string
	Err    error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("parsing config %s: %v", e.Source, e.Err)
}

// Is matches ErrConfigParse.
func (e *ConfigParseError) Is(target error) bool {
	return target == ErrConfigParse
}

func (e *ConfigParseError) Unwrap() error {
	return e.Err
}

// SectionNotFoundError reports a requested section absent from the top-level mapping.
type SectionNotFoundError struct {
	Section string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("section %q not found in config", e.Section)
}

// Is matches ErrSectionNotFound.
func (e *SectionNotFoundError) Is(target error) bool {
	return target == ErrSectionNotFound
}

// RegistryLookupError reports a project registry that is missing, malformed or incomplete.
// Key names the missing entry, if any.
type RegistryLookupError struct {
	Path string
	Key  string
	Err  error
}

func (e *RegistryLookupError) Error() string {
	msg := "project registry"

	if e.Path != "" {
		msg += " " + e.Path
	}

	if e.Key != "" {
		msg += fmt.Sprintf(": missing %q", e.Key)
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Is matches ErrRegistryLookup.
func (e *RegistryLookupError) Is(target error) bool {
	return target == ErrRegistryLookup
}

func (e *RegistryLookupError) Unwrap() error {
	return e.Err
}
