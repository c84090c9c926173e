package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// Config holds the application configuration
type Config struct {
	Display DisplayConfig `json:"display"`
	Drag    DragConfig    `json:"drag"`
	Style   StyleConfig   `json:"style"`
	Preview PreviewConfig `json:"preview"`
}

// DisplayConfig controls the preview surface
type DisplayConfig struct {
	Width   int `json:"width"`
	Columns int `json:"columns"`
}

// DragConfig controls hit-testing
type DragConfig struct {
	Allowance float64 `json:"allowance"`
}

// StyleConfig holds overlay colours as #RRGGBB
type StyleConfig struct {
	Handle  string `json:"handle"`
	Outline string `json:"outline"`
}

// PreviewConfig controls preview fetching
type PreviewConfig struct {
	TimeoutSeconds int   `json:"timeout_seconds"`
	MaxBytes       int64 `json:"max_bytes"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Display: DisplayConfig{Width: 300, Columns: 60},
		Drag:    DragConfig{Allowance: 5},
		Style:   StyleConfig{Handle: "#FF0000", Outline: "#0064FF"},
		Preview: PreviewConfig{TimeoutSeconds: 30, MaxBytes: 32 << 20},
	}
}

// LoadFromFile loads configuration from a JSON file on top of the defaults
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Display.Width < 1 {
		return fmt.Errorf("display.width must be positive")
	}

	if c.Display.Columns < 10 || c.Display.Columns > c.Display.Width {
		return fmt.Errorf("display.columns must be between 10 and display.width")
	}

	if c.Drag.Allowance <= 0 {
		return fmt.Errorf("drag.allowance must be positive")
	}

	if !hexColor.MatchString(c.Style.Handle) {
		return fmt.Errorf("style.handle must be a #RRGGBB colour")
	}

	if !hexColor.MatchString(c.Style.Outline) {
		return fmt.Errorf("style.outline must be a #RRGGBB colour")
	}

	if c.Preview.TimeoutSeconds < 1 {
		return fmt.Errorf("preview.timeout_seconds must be positive")
	}

	if c.Preview.MaxBytes < 1 {
		return fmt.Errorf("preview.max_bytes must be positive")
	}

	return nil
}

// Timeout returns the preview fetch timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Preview.TimeoutSeconds) * time.Second
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "boundsel", "config.json")
}
