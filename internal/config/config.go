// Package config loads OASIS's system configuration: the remote
// terminal listener's port and pre-shared key, the virtual
// filesystem's host root, the default skin, and feature flags.
// Adapts the find-upward/Load/applyDefaults/resolvePaths shape used
// across the retrieval pack's config loaders, but parses YAML instead
// of shelling out to an external interpreter.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oasis-os/oasis/internal/oerr"
	"github.com/oasis-os/oasis/internal/remoteterm"
)

// ConfigFilename is the name Load searches for walking upward from a
// starting directory.
const ConfigFilename = "oasis.yaml"

// Config is the top-level system configuration.
type Config struct {
	Remote   RemoteConfig   `yaml:"remote"`
	Vfs      VfsConfig      `yaml:"vfs"`
	Theme    ThemeConfig    `yaml:"theme"`
	Features FeaturesConfig `yaml:"features"`

	// Resolved paths, set by Load rather than read from YAML.
	ConfigPath string `yaml:"-"`
	RepoRoot   string `yaml:"-"`
	VfsRootAbs string `yaml:"-"`
}

// RemoteConfig configures the remote terminal listener.
type RemoteConfig struct {
	Port            int    `yaml:"port"`
	PSK             string `yaml:"psk"`
	MaxConnections  int    `yaml:"max_connections"`
	IdleTimeoutSecs int    `yaml:"idle_timeout_secs"`
}

// VfsConfig configures the virtual filesystem's host backing.
type VfsConfig struct {
	// Root is a host directory the VFS is rooted at. Empty means an
	// in-memory VFS with no host backing.
	Root string `yaml:"root"`
}

// ThemeConfig selects the default skin.
type ThemeConfig struct {
	// Variant is one of "dark", "light", "classic", "high-contrast".
	Variant string `yaml:"variant"`
	// SkinPath, if set, is a VFS path to a YAML skin file overriding
	// Variant's built-in palette.
	SkinPath string `yaml:"skin_path"`
}

// FeaturesConfig toggles optional subsystems.
type FeaturesConfig struct {
	ReaderMode     bool `yaml:"reader_mode"`
	RemoteTerminal bool `yaml:"remote_terminal"`
}

// FindConfig walks upward from startDir looking for ConfigFilename.
// Returns (configPath, repoRoot), both empty if not found.
func FindConfig(startDir string) (string, string) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", ""
	}

	for {
		candidate := filepath.Join(dir, ConfigFilename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // hit filesystem root
		}
		dir = parent
	}

	return "", ""
}

// Load finds and parses oasis.yaml starting from startDir, resolving
// defaults and paths. If no config file is found, Load returns a
// default Config rooted at startDir rather than an error: the system
// runs with in-memory VFS, no auth, and the dark theme out of the box.
func Load(startDir string) (*Config, error) {
	configPath, repoRoot := FindConfig(startDir)
	if configPath == "" {
		abs, err := filepath.Abs(startDir)
		if err != nil {
			abs = startDir
		}
		cfg := &Config{RepoRoot: abs}
		cfg.applyDefaults()
		cfg.resolvePaths()
		return cfg, nil
	}
	return LoadFromPath(configPath, repoRoot)
}

// LoadFromPath loads a specific config file with a known repo root.
func LoadFromPath(configPath, repoRoot string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, oerr.Wrap(oerr.KindIo, "read "+configPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, oerr.Wrap(oerr.KindIo, "parse "+configPath, err)
	}

	cfg.ConfigPath = configPath
	cfg.RepoRoot = repoRoot
	cfg.applyDefaults()
	cfg.resolvePaths()

	return &cfg, nil
}

// applyDefaults fills in fields not set in the config file.
func (c *Config) applyDefaults() {
	if c.Remote.Port == 0 {
		c.Remote.Port = remoteterm.DefaultPort
	}
	if c.Remote.MaxConnections == 0 {
		c.Remote.MaxConnections = remoteterm.DefaultMaxConnections
	}
	if c.Remote.IdleTimeoutSecs == 0 {
		c.Remote.IdleTimeoutSecs = remoteterm.IdleTimeoutSecs
	}
	if c.Theme.Variant == "" {
		c.Theme.Variant = "dark"
	}
}

// resolvePaths converts relative paths in the config to absolute paths.
func (c *Config) resolvePaths() {
	if c.Vfs.Root == "" {
		return
	}
	if filepath.IsAbs(c.Vfs.Root) {
		c.VfsRootAbs = c.Vfs.Root
		return
	}
	c.VfsRootAbs = filepath.Join(c.RepoRoot, c.Vfs.Root)
}

// ListenerConfig converts the loaded remote-terminal settings into the
// shape remoteterm.NewListener expects.
func (c *Config) ListenerConfig() remoteterm.Config {
	return remoteterm.Config{
		Port:            c.Remote.Port,
		PSK:             c.Remote.PSK,
		MaxConnections:  c.Remote.MaxConnections,
		IdleTimeoutSecs: c.Remote.IdleTimeoutSecs,
	}
}

// FeatureEnabled reports whether a named feature flag is set.
func (c *Config) FeatureEnabled(name string) bool {
	switch name {
	case "reader_mode":
		return c.Features.ReaderMode
	case "remote_terminal":
		return c.Features.RemoteTerminal
	default:
		return false
	}
}
