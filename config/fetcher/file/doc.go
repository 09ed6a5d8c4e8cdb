// Package file provides file-based DataFetcher implementations for the config package.
//
// The file is read at construction time and cached, meaning subsequent calls
// to Fetch() return the same data without re-reading the filesystem.
//
// Usage:
//
//	fetcher, err := file.NewFetcher("/path/to/config.yml")()
//	if err != nil {
//	    // errors.Is(err, config.ErrMissingConfigFile) when the file does not exist
//	}
//	data, err := fetcher.Fetch()
//
// Error Handling:
//   - A missing path or anything but a regular file yields *config.MissingConfigFileError
//   - errors.Is(err, file.ErrPathIsDirectory) or file.ErrNotRegularFile tells those cases apart
//   - Other stat and read errors are wrapped with the path
package file
