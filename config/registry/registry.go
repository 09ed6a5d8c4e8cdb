package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gmprocess/gmconf/config"
)

const (
	// DirName is the project directory looked up in the working directory and in the home directory.
	DirName = ".gmprocess"
	// FileName is the registry file inside DirName.
	FileName = "projects.conf"

	keyProject  = "project"
	keyProjects = "projects"
	keyConfPath = "conf_path"
	keyDataPath = "data_path"
)

// Project is a registry record.
type Project struct {
	Name     string
	ConfPath string
	DataPath string
}

// ErrNoHomeDir is returned by Locate when the global registry is needed but the
// home directory is empty or relative.
var ErrNoHomeDir = errors.New("home directory is not set to an absolute path")

// Locate returns the registry file for env: the local one under the working
// directory when both its directory and file exist, the global one under the
// home directory otherwise. It never returns a relative global path: a
// missing home directory is a *config.RegistryLookupError.
func Locate(env config.Environment) (string, error) {
	localDir := filepath.Join(env.WorkingDir, DirName)
	localFile := filepath.Join(localDir, FileName)

	if isDir(localDir) && isFile(localFile) {
		return localFile, nil
	}

	if !filepath.IsAbs(env.HomeDir) {
		return "", &config.RegistryLookupError{Err: fmt.Errorf("%w: %q", ErrNoHomeDir, env.HomeDir)}
	}

	return filepath.Join(env.HomeDir, DirName, FileName), nil
}

// File is a registry backed by a projects.conf file. The file is read on every
// lookup, so a File never holds stale data.
type File struct {
	locate func() (string, error)
}

// NewFile returns a registry reading path.
func NewFile(path string) *File {
	return &File{locate: func() (string, error) { return path, nil }}
}

// FromEnvironment returns a registry located by Locate. The lookup is deferred
// until the registry is first read, so nothing touches the filesystem before that.
func FromEnvironment(env config.Environment) *File {
	return &File{locate: func() (string, error) { return Locate(env) }}
}

// Path returns the registry file path.
func (f *File) Path() (string, error) {
	return f.locate()
}

// CurrentProject returns the record of the project named by the top-level project key.
// Every failure is a *config.RegistryLookupError.
func (f *File) CurrentProject() (Project, error) {
	path, err := f.Path()
	if err != nil {
		return Project{}, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- registry location is fixed by Locate
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Project{}, &config.RegistryLookupError{Path: path, Err: fmt.Errorf("registry file not found: %w", err)}
		}

		return Project{}, &config.RegistryLookupError{Path: path, Err: err}
	}

	root, err := Parse(data)
	if err != nil {
		return Project{}, &config.RegistryLookupError{Path: path, Err: err}
	}

	name := root.Values[keyProject]
	if name == "" {
		return Project{}, &config.RegistryLookupError{Path: path, Key: keyProject}
	}

	projects, ok := root.Sections[keyProjects]
	if !ok {
		return Project{}, &config.RegistryLookupError{Path: path, Key: keyProjects}
	}

	record, ok := projects.Sections[name]
	if !ok {
		return Project{}, &config.RegistryLookupError{Path: path, Key: keyProjects + "." + name}
	}

	confPath := record.Values[keyConfPath]
	if confPath == "" {
		return Project{}, &config.RegistryLookupError{Path: path, Key: keyProjects + "." + name + "." + keyConfPath}
	}

	return Project{
		Name:     name,
		ConfPath: confPath,
		DataPath: record.Values[keyDataPath],
	}, nil
}

// CurrentProjectConfigDir implements config.Registry.
func (f *File) CurrentProjectConfigDir() (string, error) {
	project, err := f.CurrentProject()
	if err != nil {
		return "", err
	}

	return project.ConfPath, nil
}

func isDir(path string) bool {
	stat, err := os.Stat(path)

	return err == nil && stat.IsDir()
}

func isFile(path string) bool {
	stat, err := os.Stat(path)

	return err == nil && stat.Mode().IsRegular()
}
