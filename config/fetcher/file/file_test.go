package file

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gmprocess/gmconf/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	return path
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content []byte
	}{
		{
			name: "project config",
			content: []byte(`fetchers:
  KNETFetcher:
    restrict_stations: false
pickers:
  p_arrival_shift: -1.0
`),
		},
		{name: "empty file", content: []byte{}},
		{name: "byte order mark kept", content: []byte("\ufeffread: {}\n")},
		{name: "large file", content: bytes.Repeat([]byte("station: ABC\n"), 64*1024)},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, "config.yml", testCase.content)

			fetcher, err := NewFetcher(path)()
			require.NoError(t, err)

			data, err := fetcher.Fetch()
			require.NoError(t, err)
			assert.Equal(t, testCase.content, data)
			assert.Equal(t, path, fetcher.Source())
		})
	}
}

func TestNewFetcher_Missing(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	testCases := []struct {
		name     string
		path     string
		wantPath string
		wantDir  bool
	}{
		{
			name:     "nonexistent file",
			path:     filepath.Join(tmpDir, "nope", "config.yml"),
			wantPath: filepath.Join(tmpDir, "nope", "config.yml"),
		},
		{
			name:     "unclean path is reported cleaned",
			path:     tmpDir + "/./conf/../config.yml",
			wantPath: filepath.Join(tmpDir, "config.yml"),
		},
		{
			name:     "directory",
			path:     tmpDir,
			wantPath: tmpDir,
			wantDir:  true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			fetcher, err := NewFetcher(testCase.path)()
			require.Error(t, err)
			assert.Nil(t, fetcher)
			require.ErrorIs(t, err, config.ErrMissingConfigFile)

			var missing *config.MissingConfigFileError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, testCase.wantPath, missing.Path)

			if testCase.wantDir {
				require.ErrorIs(t, err, ErrPathIsDirectory)
				assert.Contains(t, err.Error(), "is a directory")
			} else {
				assert.NotErrorIs(t, err, ErrPathIsDirectory)
			}
		})
	}
}

func TestNewFetcher_NotRegularFile(t *testing.T) {
	t.Parallel()

	stat, err := os.Stat(os.DevNull)
	if err != nil || stat.Mode().IsRegular() {
		t.Skipf("%s is not a device here", os.DevNull)
	}

	fetcher, err := NewFetcher(os.DevNull)()

	require.Error(t, err)
	assert.Nil(t, fetcher)
	require.ErrorIs(t, err, config.ErrMissingConfigFile)
	require.ErrorIs(t, err, ErrNotRegularFile)
	assert.NotErrorIs(t, err, ErrPathIsDirectory)
}

func TestNewFetcher_SourceIsCleanedPath(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "config.yml", []byte("read: {}"))
	dir := filepath.Dir(path)

	fetcher, err := NewFetcher(dir + "/./conf/../config.yml")()
	require.NoError(t, err)

	assert.Equal(t, path, fetcher.Source())
}

func TestFetcher_Fetch_CachedAtConstruction(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "config.yml", []byte("windows:\n  signal_end: velocity\n"))

	fetcher, err := NewFetcher(path)()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("windows: {}\n"), 0o600))

	data, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, "windows:\n  signal_end: velocity\n", string(data))
}

func TestFetchers_ReturnCopies(t *testing.T) {
	t.Parallel()

	content := []byte("metrics:\n  output_imts: [pga, pgv]\n")

	fromFile, err := NewFetcher(writeConfig(t, "config.yml", content))()
	require.NoError(t, err)

	testCases := map[string]config.DataFetcher{
		"file":   fromFile,
		"static": &Static{Name: "embedded:config_test.yml", Data: bytes.Clone(content)},
	}

	for name, fetcher := range testCases {
		fetcher := fetcher
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			first, err := fetcher.Fetch()
			require.NoError(t, err)

			first[0] = 'X'

			second, err := fetcher.Fetch()
			require.NoError(t, err)
			assert.Equal(t, content, second)
		})
	}
}

func TestStatic_Source(t *testing.T) {
	t.Parallel()

	static := &Static{Name: "embedded:config_defaults.yml"}

	assert.Equal(t, "embedded:config_defaults.yml", static.Source())

	data, err := static.Fetch()
	require.NoError(t, err)
	assert.Empty(t, data)
}
