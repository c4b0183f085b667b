package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"hosline/internal/domain"
	"hosline/internal/hos"
)

// Config models hos.yml.
type Config struct {
	Driver struct {
		ID       string `yaml:"id"`
		Timezone string `yaml:"timezone"`
	} `yaml:"driver"`
	Rules struct {
		Cycle                string `yaml:"cycle"`
		OtherEmployerMinutes int    `yaml:"other_employer_minutes"`
		Break                struct {
			PriorDriving time.Duration `yaml:"prior_driving"`
		} `yaml:"break"`
	} `yaml:"rules"`
	Projection struct {
		Horizon time.Duration `yaml:"horizon"`
		Limit   string        `yaml:"limit"`
	} `yaml:"projection"`
}

// Load reads and validates config from workspace.
func Load(workspace string) (*Config, error) {
	path := Path(workspace)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config %s not found; create one with hos config init", path)
		}
		return nil, err
	}
	return FromYAML(data)
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := hos.ParseCycle(c.Rules.Cycle); err != nil {
		return fmt.Errorf("config.rules.cycle: %w", err)
	}
	if c.Rules.OtherEmployerMinutes < 0 {
		return fmt.Errorf("config.rules.other_employer_minutes must not be negative")
	}
	if c.Rules.Break.PriorDriving < 0 {
		return fmt.Errorf("config.rules.break.prior_driving must not be negative")
	}
	if c.Projection.Horizon < 0 {
		return fmt.Errorf("config.projection.horizon must not be negative")
	}
	if c.Projection.Limit != "" && !domain.ViolationType(c.Projection.Limit).IsValid() {
		return fmt.Errorf("config.projection.limit %q is not a violation type", c.Projection.Limit)
	}
	return nil
}

// Location resolves driver.timezone; empty means UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Driver.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Driver.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config.driver.timezone: %w", err)
	}
	return loc, nil
}

// Path returns the config file path for a workspace.
func Path(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, "hos.yml")
}

// GenerateDefault returns default config YAML.
func GenerateDefault(driverID string) string {
	return fmt.Sprintf(defaultTemplate, driverID)
}

// LoadOptional returns the default config if the file does not exist.
func LoadOptional(workspace string) (*Config, error) {
	path := Path(workspace)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(""), nil
		}
		return nil, err
	}
	return FromYAML(data)
}

// Default returns the default Config struct for a driver.
func Default(driverID string) *Config {
	var cfg Config
	_ = yaml.NewDecoder(bytes.NewBufferString(fmt.Sprintf(defaultTemplate, driverID))).Decode(&cfg)
	cfg.Driver.ID = driverID
	return &cfg
}

// FromYAML parses and validates config from raw YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Marshal renders the config as hos.yml YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Document returns the config as a generic map keyed like hos.yml, with
// durations in Go duration syntax.
func (c *Config) Document() (map[string]any, error) {
	data, err := c.Marshal()
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// FromFile reads YAML config from the given path.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromYAML(data)
}

const defaultTemplate = `driver:
  id: "%s"
  # IANA zone the 1am-5am restart windows are read in.
  timezone: UTC

rules:
  cycle: "60/7"
  other_employer_minutes: 0
  break:
    # Driving assumed before the first segment when no break is on record.
    prior_driving: 0s

projection:
  horizon: 168h
  limit: ""
`
