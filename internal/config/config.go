package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// minJWTKeyBytes is the smallest signing key accepted at startup.
// A shorter key is a deployment mistake, not a runtime condition.
const minJWTKeyBytes = 16

const defaultTokenDurationMinutes = 60

// Config holds the application's configuration.
type Config struct {
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	JWT struct {
		Key             string `yaml:"key"`
		Issuer          string `yaml:"issuer"`
		Audience        string `yaml:"audience"`
		DurationMinutes int    `yaml:"duration_minutes"`
	} `yaml:"jwt"`
	Uploads struct {
		Dir string `yaml:"dir"`
	} `yaml:"uploads"`
	Admin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
}

// LoadConfig reads configuration from the specified YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.applyDefaults()

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
	if c.JWT.DurationMinutes <= 0 {
		c.JWT.DurationMinutes = defaultTokenDurationMinutes
	}
	if c.Uploads.Dir == "" {
		c.Uploads.Dir = "uploads"
	}
}

// Validate checks the parts of the configuration that must be correct
// before the process is allowed to serve traffic.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("database.url is required")
	}
	if len(c.JWT.Key) < minJWTKeyBytes {
		return fmt.Errorf("jwt.key must be at least %d bytes", minJWTKeyBytes)
	}
	if c.JWT.Issuer == "" {
		return errors.New("jwt.issuer is required")
	}
	if c.JWT.Audience == "" {
		return errors.New("jwt.audience is required")
	}
	return nil
}
