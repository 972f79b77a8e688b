// Package config loads the optional git-- settings file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/NicabarNimble/git-minus/internal/errors"
)

const (
	// AppName names the config directory and the log file.
	AppName = "git--"

	// DefaultAPIURL is the ignore template endpoint; tags are appended to it.
	DefaultAPIURL = "https://www.toptal.com/developers/gitignore/api"

	// DefaultGeneratorURL is credited in the first header line.
	DefaultGeneratorURL = "https://github.com/CalvinSprouse/Git--"

	// DefaultStripLines is the number of banner lines the service prepends.
	DefaultStripLines = 3

	DefaultLogFile = AppName + ".log"

	BackendExec  = "exec"
	BackendGoGit = "go-git"
)

// Backends lists the accepted values for Config.Backend.
var Backends = []string{BackendExec, BackendGoGit}

// Config holds the git-- settings
type Config struct {
	APIURL       string `toml:"api_url"`
	GeneratorURL string `toml:"generator_url"`
	StripLines   int    `toml:"strip_lines"`
	LogDir       string `toml:"log_dir,omitempty"` // empty means logs/ beside the executable
	LogFile      string `toml:"log_file"`
	Backend      string `toml:"backend"`
	Strict       bool   `toml:"strict"` // fail on a non-2xx template answer instead of writing its body
}

// DefaultConfig provides default configuration values
func DefaultConfig() *Config {
	return &Config{
		APIURL:       DefaultAPIURL,
		GeneratorURL: DefaultGeneratorURL,
		StripLines:   DefaultStripLines,
		LogFile:      DefaultLogFile,
		Backend:      BackendExec,
	}
}

// DefaultPath returns <user config dir>/git--/config.toml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.New(errors.OpConfig, fmt.Errorf("failed to get config directory: %w", err))
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}

// LoadConfig loads configuration from a TOML file. A missing file yields
// the defaults. Keys absent from the file keep their default value.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.New(errors.OpConfig, fmt.Errorf("failed to parse config file %s: %w", path, err))
	}

	cfg.MergeDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg to path, creating the parent directory.
func SaveConfig(cfg *Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.New(errors.OpConfig, fmt.Errorf("failed to create config directory: %w", err))
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.New(errors.OpConfig, fmt.Errorf("failed to write config file: %w", err))
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return errors.New(errors.OpConfig, fmt.Errorf("failed to encode config: %w", err))
	}
	return nil
}

// MergeDefaults fills empty string fields with their defaults
func (c *Config) MergeDefaults() {
	def := DefaultConfig()
	if c.APIURL == "" {
		c.APIURL = def.APIURL
	}
	if c.GeneratorURL == "" {
		c.GeneratorURL = def.GeneratorURL
	}
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	}
	if c.Backend == "" {
		c.Backend = def.Backend
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validateAPIURL(c.APIURL); err != nil {
		return errors.New(errors.OpConfig, fmt.Errorf("invalid api_url: %w", err))
	}
	if c.StripLines < 0 {
		return errors.New(errors.OpConfig, fmt.Errorf("strip_lines cannot be negative"))
	}
	if !slices.Contains(Backends, c.Backend) {
		return errors.New(errors.OpConfig, fmt.Errorf("unknown backend %q, expected one of %s",
			c.Backend, strings.Join(Backends, ", ")))
	}
	if c.LogFile == "" || strings.ContainsAny(c.LogFile, `/\`) {
		return errors.New(errors.OpConfig, fmt.Errorf("log_file must be a plain file name"))
	}
	return nil
}

func validateAPIURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
