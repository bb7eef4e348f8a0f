package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/conduit-lang/armgen/internal/apiversion"
	"github.com/conduit-lang/armgen/internal/compiler/errors"
)

// FileName is the base name of the project configuration file
const FileName = "armgen"

// Config represents the armgen project configuration
type Config struct {
	Module   string      `mapstructure:"module"`
	Output   string      `mapstructure:"output"`
	Versions []string    `mapstructure:"versions"`
	Formats  []string    `mapstructure:"formats"`
	LogLevel string      `mapstructure:"log_level"`
	Serve    ServeConfig `mapstructure:"serve"`

	// Dir is the directory relative paths are resolved against
	Dir string `mapstructure:"-"`
}

// ServeConfig represents configuration for the serve command
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Load loads the configuration from armgen.yml or armgen.yaml in dir.
// A missing file is not an error; defaults apply.
func Load(dir string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("module", "module.yaml")
	v.SetDefault("output", "specification")
	v.SetDefault("versions", []string{})
	v.SetDefault("formats", []string{"json"})
	v.SetDefault("log_level", "info")
	v.SetDefault("serve.addr", "localhost:8080")

	// Set config name and paths
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// ARMGEN_OUTPUT, ARMGEN_SERVE_ADDR, ...
	v.SetEnvPrefix("ARMGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Dir = dir

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ModulePath returns the module file path, resolved against Dir
func (c *Config) ModulePath() string {
	return c.resolve(c.Module)
}

// OutputDir returns the output root, resolved against Dir
func (c *Config) OutputDir() string {
	return c.resolve(c.Output)
}

// Targets parses the configured versions in order. At least one is required.
func (c *Config) Targets() ([]apiversion.Target, error) {
	if len(c.Versions) == 0 {
		return nil, fmt.Errorf("no target versions configured: set versions in %s.yaml or pass --version", FileName)
	}

	targets := make([]apiversion.Target, 0, len(c.Versions))
	for _, s := range c.Versions {
		t, err := apiversion.ParseTarget(s)
		if err != nil {
			return nil, errors.NewInvalidVersion(s).WithDetail(err.Error())
		}
		targets = append(targets, t)
	}
	return targets, nil
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) || c.Dir == "" {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// FilePath returns the armgen configuration file in dir, if there is one
func FilePath(dir string) (string, bool) {
	for _, ext := range []string{".yml", ".yaml"} {
		path := filepath.Join(dir, FileName+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// InProject checks if dir contains an armgen configuration file
func InProject(dir string) bool {
	_, ok := FilePath(dir)
	return ok
}

// GetProjectRoot walks up from the working directory to the first
// directory holding an armgen configuration file
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if InProject(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in an armgen project (no %s.yaml found)", FileName)
		}
		dir = parent
	}
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Module == "" {
		return fmt.Errorf("module must not be empty")
	}
	if cfg.Output == "" {
		return fmt.Errorf("output must not be empty")
	}
	if !logLevels[cfg.LogLevel] {
		return fmt.Errorf("log_level must be one of debug, info, warn or error, got: %s", cfg.LogLevel)
	}
	for _, f := range cfg.Formats {
		switch f {
		case "json", "yaml", "markdown":
		default:
			return fmt.Errorf("unsupported format %q (want json, yaml or markdown)", f)
		}
	}
	return nil
}
