// Package config loads the inventory tool configuration.
package config

import (
	"fmt"
	"os"
	"strings"
)

type CatalogConfig struct {
	Path string `koanf:"path"`
}

// String returns a string representation of the catalog configuration.
func (c *CatalogConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Catalog ---\n")
	b.WriteString(fmt.Sprintf("  path: %s\n", c.Path))
	return b.String()
}

func (c *CatalogConfig) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return fmt.Errorf("catalog path is not configured")
	}
	if strings.HasSuffix(c.Path, "/") || strings.HasSuffix(c.Path, string(os.PathSeparator)) {
		return fmt.Errorf("catalog path must name a file: %s", c.Path)
	}
	if info, err := os.Stat(c.Path); err == nil && info.IsDir() {
		return fmt.Errorf("catalog path is a directory: %s", c.Path)
	}
	return nil
}

type LogConfig struct {
	Level string `koanf:"level"`
}

// String returns a string representation of the log configuration.
func (c *LogConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Log ---\n")
	b.WriteString(fmt.Sprintf("  level: %s\n", c.Level))
	return b.String()
}

func (c *LogConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("invalid log level: %q", c.Level)
	}
}

type Config struct {
	Catalog CatalogConfig `koanf:"catalog"`
	Log     LogConfig     `koanf:"log"`
}

func (c *Config) String() string {
	return c.Catalog.String() + c.Log.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.Catalog.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return nil
}
