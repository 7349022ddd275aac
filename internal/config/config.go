package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/harrison/filekit/internal/logger"
	"gopkg.in/yaml.v3"
)

// Target is one output size produced by the resizer.
type Target struct {
	// Name is the output subdirectory, relative to the source directory
	Name string `yaml:"name"`

	// Width in pixels
	Width int `yaml:"width"`

	// Height in pixels
	Height int `yaml:"height"`
}

// ListDiffConfig configures the listdiff command
type ListDiffConfig struct {
	// BackupSuffix is appended to the target list path for the backup copy
	BackupSuffix string `yaml:"backup_suffix"`
}

// ListerConfig configures the lsreport command
type ListerConfig struct {
	// SimpleOutput is the default report name in simple mode
	SimpleOutput string `yaml:"simple_output"`

	// DetailedOutput is the default report name in detailed mode
	DetailedOutput string `yaml:"detailed_output"`
}

// ResizerConfig configures the resize command
type ResizerConfig struct {
	// Extension selects the source files, matched case-insensitively
	Extension string `yaml:"extension"`

	// Targets lists the output sizes, one subdirectory each
	Targets []Target `yaml:"targets"`
}

// Config represents filekit configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables a per-run log file when non-empty
	LogDir string `yaml:"log_dir"`

	// LockTimeout bounds how long a rewrite waits for a file lock (0 = wait forever)
	LockTimeout time.Duration `yaml:"lock_timeout"`

	ListDiff ListDiffConfig `yaml:"listdiff"`
	Lister   ListerConfig   `yaml:"lister"`
	Resizer  ResizerConfig  `yaml:"resizer"`
}

// DefaultConfig returns a Config with the stock values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:    "info",
		LogDir:      "",
		LockTimeout: 10 * time.Second,
		ListDiff: ListDiffConfig{
			BackupSuffix: ".backup",
		},
		Lister: ListerConfig{
			SimpleOutput:   "file_list.txt",
			DetailedOutput: "file_list_detailed.txt",
		},
		Resizer: ResizerConfig{
			Extension: ".tga",
			Targets: []Target{
				{Name: "small", Width: 10, Height: 7},
				{Name: "medium", Width: 41, Height: 26},
			},
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations arrive as strings like "30s"
	type yamlConfig struct {
		LogLevel    string         `yaml:"log_level"`
		LogDir      string         `yaml:"log_dir"`
		LockTimeout string         `yaml:"lock_timeout"`
		ListDiff    ListDiffConfig `yaml:"listdiff"`
		Lister      ListerConfig   `yaml:"lister"`
		Resizer     ResizerConfig  `yaml:"resizer"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(yamlCfg.LogLevel))
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.LockTimeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.LockTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid lock_timeout format %q: %w", yamlCfg.LockTimeout, err)
		}
		cfg.LockTimeout = timeout
	}
	if yamlCfg.ListDiff.BackupSuffix != "" {
		cfg.ListDiff.BackupSuffix = yamlCfg.ListDiff.BackupSuffix
	}
	if yamlCfg.Lister.SimpleOutput != "" {
		cfg.Lister.SimpleOutput = yamlCfg.Lister.SimpleOutput
	}
	if yamlCfg.Lister.DetailedOutput != "" {
		cfg.Lister.DetailedOutput = yamlCfg.Lister.DetailedOutput
	}
	if yamlCfg.Resizer.Extension != "" {
		cfg.Resizer.Extension = yamlCfg.Resizer.Extension
	}
	// A targets list replaces the defaults wholesale
	if len(yamlCfg.Resizer.Targets) > 0 {
		cfg.Resizer.Targets = yamlCfg.Resizer.Targets
	}

	return cfg, nil
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(logLevel *string, logDir *string, extension *string) {
	if logLevel != nil {
		c.LogLevel = strings.ToLower(strings.TrimSpace(*logLevel))
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if extension != nil {
		c.Resizer.Extension = *extension
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if !logger.IsValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.LockTimeout < 0 {
		return fmt.Errorf("lock_timeout must be >= 0, got %v", c.LockTimeout)
	}

	if strings.TrimSpace(c.ListDiff.BackupSuffix) == "" {
		return fmt.Errorf("listdiff.backup_suffix cannot be empty")
	}

	if c.Lister.SimpleOutput == "" || c.Lister.DetailedOutput == "" {
		return fmt.Errorf("lister output names cannot be empty")
	}

	ext := strings.TrimPrefix(c.Resizer.Extension, ".")
	if ext == "" || strings.ContainsAny(ext, `/\`) {
		return fmt.Errorf("invalid resizer.extension %q", c.Resizer.Extension)
	}

	if len(c.Resizer.Targets) == 0 {
		return fmt.Errorf("resizer.targets cannot be empty")
	}
	seen := make(map[string]bool)
	for i, target := range c.Resizer.Targets {
		if target.Name == "" || strings.ContainsAny(target.Name, `/\`) || target.Name == "." || target.Name == ".." {
			return fmt.Errorf("resizer.targets[%d]: invalid name %q", i, target.Name)
		}
		if target.Width <= 0 || target.Height <= 0 {
			return fmt.Errorf("resizer.targets[%d] (%s): width and height must be > 0, got %dx%d", i, target.Name, target.Width, target.Height)
		}
		if seen[target.Name] {
			return fmt.Errorf("resizer.targets: duplicate name %q", target.Name)
		}
		seen[target.Name] = true
	}

	return nil
}
