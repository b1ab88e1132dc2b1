package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Environment variables read by Load.
const (
	EnvConfigPath = "BRANCHWIPE_CONFIG"
	EnvGit        = "BRANCHWIPE_GIT"
)

// ListConfig holds settings for "branchwipe list"
type ListConfig struct {
	Format string `toml:"format" json:"format"` // "table" or "json"
}

// Config holds the branchwipe configuration
type Config struct {
	Git           string     `toml:"git" json:"git"`
	ConfirmDelete bool       `toml:"confirm_delete" json:"confirm_delete"`
	Theme         string     `toml:"theme" json:"theme"`
	List          ListConfig `toml:"list" json:"list"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Git:   "git",
		Theme: "default",
		List:  ListConfig{Format: "table"},
	}
}

type ctxKey struct{}

// WithConfig attaches a config to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext retrieves the config from context, or defaults if none is attached.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	cfg := Default()
	return &cfg
}

// ValidatePath checks that the path is absolute or starts with ~
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the config file location
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return expandPath(p)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "branchwipe", "config.toml"), nil
}

// Load reads the config from Path().
// Returns Default() if the file doesn't exist (no error).
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return applyEnv(Default())
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path and applies environment overrides.
// Returns error only if the file exists but is invalid; the returned
// config is then Default().
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(Default())
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.normalize(); err != nil {
		return Default(), fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return applyEnv(cfg)
}

func applyEnv(cfg Config) (Config, error) {
	if bin := os.Getenv(EnvGit); bin != "" {
		cfg.Git = bin
		if err := cfg.normalizeGit(); err != nil {
			return Default(), fmt.Errorf("invalid %s: %w", EnvGit, err)
		}
	}
	return cfg, nil
}

// normalize validates fields and fills in defaults for empty ones.
func (c *Config) normalize() error {
	if c.Git == "" {
		c.Git = "git"
	}
	if err := c.normalizeGit(); err != nil {
		return err
	}
	if c.Theme == "" {
		c.Theme = "default"
	}
	if err := validateEnum(c.Theme, "theme", ValidThemes); err != nil {
		return err
	}
	if c.List.Format == "" {
		c.List.Format = "table"
	}
	return validateEnum(c.List.Format, "list.format", ValidListFormats)
}

// normalizeGit accepts a bare executable name (looked up in PATH) or a path
// that is absolute or starts with ~.
func (c *Config) normalizeGit() error {
	if !strings.ContainsRune(c.Git, '/') && !strings.HasPrefix(c.Git, "~") {
		return nil
	}
	if err := ValidatePath(c.Git, "git"); err != nil {
		return err
	}
	expanded, err := expandPath(c.Git)
	if err != nil {
		return err
	}
	c.Git = expanded
	return nil
}

const defaultConfig = `# branchwipe configuration

# git executable: a name looked up in PATH, or an absolute path (~ allowed)
# Can be overridden with the BRANCHWIPE_GIT environment variable
git = "git"

# Ask for confirmation before deleting a branch.
# Branches are force-deleted (git branch -D), so unmerged work is lost.
confirm_delete = false

# Color theme for the interactive view: "default", "dracula", "nord", "none"
theme = "default"

[list]
# Output format for "branchwipe list": "table" or "json"
format = "table"
`

// DefaultFile returns the commented default config file content.
func DefaultFile() string {
	return defaultConfig
}

// Init creates a default config file at Path().
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	return path, InitAt(path, force)
}

// InitAt writes the default config file to path.
func InitAt(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfig), 0644)
}

// Encode writes cfg as TOML.
func Encode(cfg Config) (string, error) {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return "", err
	}
	return sb.String(), nil
}
