package config

import (
	"os"
	"path/filepath"
)

// Loader finds and reads the configuration file.
type Loader struct {
	Version      string // Build version, "dev" enables the working directory file
	OverridePath string
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the first configuration file found, or returns defaults.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// DefaultPath is where `config save` writes when no override is given.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "designstudio", "config.rc")
}

// GetConfigPath returns the path to the configuration file, or "" if none
// exists.
func (l *Loader) GetConfigPath() string {
	var candidates []string
	if l.OverridePath != "" {
		candidates = append(candidates, l.OverridePath)
	}
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		candidates = append(candidates, filepath.Join(wd, ".designstudiorc"))
	}
	home, _ := os.UserHomeDir()
	candidates = append(candidates,
		DefaultPath(),
		filepath.Join(home, ".config", "designstudio", "designstudio.rc"),
	)
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
