package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gmprocess/gmconf/config"
)

var (
	// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
	ErrPathIsDirectory = errors.New("path is a directory, not a file")
	// ErrNotRegularFile is returned for devices, pipes, sockets and other non-regular files.
	ErrNotRegularFile = errors.New("path is not a regular file")
)

// Fetcher implements config.DataFetcher interface for file-based configuration.
// It reads configuration data from a file at construction time and caches the contents.
type Fetcher struct {
	filepath string
	data     []byte
}

// NewFetcher returns a constructor function that creates a new file-based Fetcher
// with the specified filepath. The file is read at construction time and cached.
//
// A path that does not exist or is not a regular file yields a
// *config.MissingConfigFileError. Its Path is fpath after filepath.Clean, so
// "conf/./config.yml" is reported as "conf/config.yml"; no other rewriting
// happens, a relative fpath stays relative.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		cleanPath := filepath.Clean(fpath)

		stat, err := os.Stat(cleanPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, &config.MissingConfigFileError{Path: cleanPath}
			}

			return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
		}

		if stat.IsDir() {
			return nil, &config.MissingConfigFileError{Path: cleanPath, Err: ErrPathIsDirectory}
		}

		if !stat.Mode().IsRegular() {
			return nil, &config.MissingConfigFileError{Path: cleanPath, Err: ErrNotRegularFile}
		}

		data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and validated
		if err != nil {
			return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
		}

		return &Fetcher{
			filepath: cleanPath,
			data:     data,
		}, nil
	}
}

// Fetch returns a copy of the cached configuration data that was read at construction time.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}

// Source returns the cleaned path of the file.
func (f *Fetcher) Source() string {
	return f.filepath
}

// Static implements config.DataFetcher over in-memory data, such as files
// embedded into the binary.
type Static struct {
	Name string
	Data []byte
}

// Fetch returns a copy of the data.
func (s *Static) Fetch() ([]byte, error) {
	result := make([]byte, len(s.Data))
	copy(result, s.Data)

	return result, nil
}

// Source returns the name of the data.
func (s *Static) Source() string {
	return s.Name
}
