package globalconfig

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/jaspreet-dot-casa/ubuntu-ami/pkg/ami"
	"gopkg.in/yaml.v3"
)

// Version is the current config schema version.
const Version = "1.0"

// Output formats understood by the CLI.
const (
	OutputText = "text"
	OutputYAML = "yaml"
	OutputJSON = "json"
)

// OutputFormats lists the accepted values for Preferences.Output.
var OutputFormats = []string{OutputText, OutputYAML, OutputJSON}

var (
	// ErrNotInitialized is returned when the config file doesn't exist.
	ErrNotInitialized = errors.New("uami config not found")
	// ErrUnknownKey is returned by Set for keys it doesn't know.
	ErrUnknownKey = errors.New("unknown config key")
)

// Config represents the uami configuration.
type Config struct {
	Version     string      `yaml:"version"`
	Defaults    Defaults    `yaml:"defaults"`    // Lookup criteria used when flags are omitted
	Preferences Preferences `yaml:"preferences"` // Output preferences
}

// Defaults holds the default lookup criteria. Empty optional fields match everything.
type Defaults struct {
	Region        string `yaml:"region"`         // e.g., "us-east-1"
	ReleaseName   string `yaml:"release"`        // e.g., "noble"
	ReleaseNumber string `yaml:"release_number"` // e.g., "24.04 LTS"
	InstanceType  string `yaml:"instance_type"`  // e.g., "hvm:ebs-ssd"
	Architecture  string `yaml:"arch"`           // e.g., "amd64"
}

// Preferences represents user preferences.
type Preferences struct {
	Output          string `yaml:"output"` // text, yaml or json
	CopyToClipboard bool   `yaml:"copy"`   // Copy looked-up IDs to the clipboard
}

// NewConfig creates a new Config with defaults.
func NewConfig() *Config {
	return &Config{
		Version: Version,
		Defaults: Defaults{
			Region:       "us-east-1",
			InstanceType: "hvm:ebs-ssd",
			Architecture: "amd64",
		},
		Preferences: Preferences{
			Output: OutputText,
		},
	}
}

// Load loads the config from ~/.config/uami/config.yaml.
// Returns ErrNotInitialized if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the config from path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so missing keys keep their built-in values
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Version == "" {
		cfg.Version = Version
	}
	if cfg.Preferences.Output == "" {
		cfg.Preferences.Output = OutputText
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrCreate loads the config if it exists, or returns a new one.
// Unlike Load(), this doesn't require the config file to exist.
func LoadOrCreate() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		if errors.Is(err, ErrNotInitialized) {
			return NewConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Save saves the config to ~/.config/uami/config.yaml.
func (c *Config) Save() error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return c.SaveTo(configPath)
}

// SaveTo writes the config to path.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the config for values the CLI can't use.
func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats, c.Preferences.Output) {
		return fmt.Errorf("unsupported output format %q (want one of %s)",
			c.Preferences.Output, strings.Join(OutputFormats, ", "))
	}
	return nil
}

// Query converts the defaults into a lookup query.
func (c *Config) Query() ami.Query {
	return ami.Query{
		Region:        c.Defaults.Region,
		ReleaseName:   c.Defaults.ReleaseName,
		ReleaseNumber: c.Defaults.ReleaseNumber,
		InstanceType:  c.Defaults.InstanceType,
		Architecture:  c.Defaults.Architecture,
	}
}

// Keys lists the dotted keys accepted by Set and Get.
var Keys = []string{
	"defaults.region",
	"defaults.release",
	"defaults.release_number",
	"defaults.instance_type",
	"defaults.arch",
	"preferences.output",
	"preferences.copy",
}

// Set updates a single value addressed by a dotted key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "defaults.region":
		c.Defaults.Region = value
	case "defaults.release":
		c.Defaults.ReleaseName = value
	case "defaults.release_number":
		c.Defaults.ReleaseNumber = value
	case "defaults.instance_type":
		c.Defaults.InstanceType = value
	case "defaults.arch":
		c.Defaults.Architecture = value
	case "preferences.output":
		if !slices.Contains(OutputFormats, value) {
			return fmt.Errorf("unsupported output format %q (want one of %s)", value, strings.Join(OutputFormats, ", "))
		}
		c.Preferences.Output = value
	case "preferences.copy":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("preferences.copy: %w", err)
		}
		c.Preferences.CopyToClipboard = b
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// Get returns the value addressed by a dotted key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "defaults.region":
		return c.Defaults.Region, nil
	case "defaults.release":
		return c.Defaults.ReleaseName, nil
	case "defaults.release_number":
		return c.Defaults.ReleaseNumber, nil
	case "defaults.instance_type":
		return c.Defaults.InstanceType, nil
	case "defaults.arch":
		return c.Defaults.Architecture, nil
	case "preferences.output":
		return c.Preferences.Output, nil
	case "preferences.copy":
		return strconv.FormatBool(c.Preferences.CopyToClipboard), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}
