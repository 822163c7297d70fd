package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fleetview/internal/category"

	"github.com/spf13/viper"
)

const (
	SourceMock   = "mock"
	SourceFile   = "file"
	SourceSerial = "serial"
)

// Config holds application configuration.
type Config struct {
	Debug      bool          `mapstructure:"debug"`
	NoTUI      bool          `mapstructure:"no-tui"`
	Source     string        `mapstructure:"source"`
	File       string        `mapstructure:"file"`
	Port       string        `mapstructure:"port"`
	Baud       int           `mapstructure:"baud"`
	Lang       string        `mapstructure:"lang"`
	Categories []string      `mapstructure:"category"`
	Refresh    time.Duration `mapstructure:"refresh"`
	LogFile    string        `mapstructure:"log-file"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("no-tui", false)
	v.SetDefault("source", SourceMock)
	v.SetDefault("file", "fleet.json")
	v.SetDefault("port", "")
	v.SetDefault("baud", 9600)
	v.SetDefault("lang", "en")
	v.SetDefault("category", []string{})
	v.SetDefault("refresh", 2*time.Second)
	v.SetDefault("log-file", filepath.Join(os.TempDir(), "fleetview.log"))
}

// Load reads the optional config file and env into v and decodes it. A
// missing file at the default location is not an error.
// Env var overrides use prefix FLEETVIEW_ (FLEETVIEW_LOG_FILE for log-file).
func Load(v *viper.Viper) (Config, error) {
	v.SetConfigType("yaml")
	if cfgPath := os.Getenv("FLEETVIEW_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "fleetview"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FLEETVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch c.Source {
	case SourceMock:
	case SourceFile:
		if c.File == "" {
			return errors.New("source file requires a file path")
		}
	case SourceSerial:
		if c.Baud <= 0 {
			return fmt.Errorf("invalid baud rate %d", c.Baud)
		}
	default:
		return fmt.Errorf("unknown source %q (want %s, %s or %s)", c.Source, SourceMock, SourceFile, SourceSerial)
	}
	if c.Refresh <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", c.Refresh)
	}
	if _, err := c.SelectedCategories(); err != nil {
		return err
	}
	return nil
}

// SelectedCategories parses the configured category names.
func (c Config) SelectedCategories() ([]category.VehicleCategory, error) {
	out := make([]category.VehicleCategory, 0, len(c.Categories))
	for _, name := range c.Categories {
		cat, err := category.Parse(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, nil
}
