package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config file location relative to the working directory.
const (
	ConfigDirName  = ".dotnet-test"
	ConfigFileName = "config.yaml"
)

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "DOTNET_TEST_CONFIG"

// Config represents dotnet-test configuration options
type Config struct {
	// DotnetPath is the build tool executable
	DotnetPath string `yaml:"dotnet_path"`

	// Solution is an explicit solution file; empty means search
	Solution string `yaml:"solution"`

	// SolutionSearchDepth limits the solution search (0 = unlimited, 1 = working directory only)
	SolutionSearchDepth int `yaml:"solution_search_depth"`

	// ProjectPattern selects test projects below the solution directory
	ProjectPattern string `yaml:"project_pattern"`

	// CoverageArgs are injected into test commands when --coverage is set
	CoverageArgs []string `yaml:"coverage_args"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables the plain-text run log when non-empty
	LogDir string `yaml:"log_dir"`

	// Lock takes the solution run lock for the duration of a run
	Lock bool `yaml:"lock"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		DotnetPath:          "dotnet",
		Solution:            "",
		SolutionSearchDepth: 3,
		ProjectPattern:      "**/*.Test*.csproj",
		CoverageArgs:        []string{"-p:CollectCoverage=true", "-p:CoverletOutputFormat=opencover"},
		LogLevel:            "info",
		LogDir:              "",
		Lock:                true,
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointer fields distinguish "absent" from zero values so defaults survive
	type yamlConfig struct {
		DotnetPath          string   `yaml:"dotnet_path"`
		Solution            string   `yaml:"solution"`
		SolutionSearchDepth *int     `yaml:"solution_search_depth"`
		ProjectPattern      string   `yaml:"project_pattern"`
		CoverageArgs        []string `yaml:"coverage_args"`
		LogLevel            string   `yaml:"log_level"`
		LogDir              string   `yaml:"log_dir"`
		Lock                *bool    `yaml:"lock"`
	}

	var yamlCfg yamlConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&yamlCfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.DotnetPath != "" {
		cfg.DotnetPath = yamlCfg.DotnetPath
	}
	if yamlCfg.Solution != "" {
		cfg.Solution = yamlCfg.Solution
	}
	if yamlCfg.SolutionSearchDepth != nil {
		cfg.SolutionSearchDepth = *yamlCfg.SolutionSearchDepth
	}
	if yamlCfg.ProjectPattern != "" {
		cfg.ProjectPattern = yamlCfg.ProjectPattern
	}
	if yamlCfg.CoverageArgs != nil {
		cfg.CoverageArgs = yamlCfg.CoverageArgs
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(yamlCfg.LogLevel))
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.Lock != nil {
		cfg.Lock = *yamlCfg.Lock
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .dotnet-test/config.yaml in the
// specified directory, or from $DOTNET_TEST_CONFIG when it is set.
// If the file doesn't exist, returns default configuration without error.
func LoadConfigFromDir(dir string) (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return LoadConfig(path)
	}
	return LoadConfig(filepath.Join(dir, ConfigDirName, ConfigFileName))
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(dotnetPath *string, solution *string, logLevel *string, logDir *string) {
	if dotnetPath != nil {
		c.DotnetPath = *dotnetPath
	}
	if solution != nil {
		c.Solution = *solution
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DotnetPath) == "" {
		return fmt.Errorf("dotnet_path cannot be empty")
	}

	if c.SolutionSearchDepth < 0 {
		return fmt.Errorf("solution_search_depth must be >= 0, got %d", c.SolutionSearchDepth)
	}

	if strings.TrimSpace(c.ProjectPattern) == "" {
		return fmt.Errorf("project_pattern cannot be empty")
	}
	if _, err := filepath.Match(strings.TrimPrefix(c.ProjectPattern, "**/"), ""); err != nil {
		return fmt.Errorf("invalid project_pattern %q: %w", c.ProjectPattern, err)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	for i, arg := range c.CoverageArgs {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf("coverage_args[%d] cannot be empty", i)
		}
	}

	return nil
}
