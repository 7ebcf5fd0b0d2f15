// Package config loads the tunelist configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/tejashwikalptaru/tunelist/internal/domain"
	"github.com/tejashwikalptaru/tunelist/internal/logger"
	"github.com/tejashwikalptaru/tunelist/internal/songlist"
)

// EnvMPDAddress overrides MPD.Address when set.
const EnvMPDAddress = "TUNELIST_MPD_ADDR"

// DefaultSort is the key list applied to freshly loaded lists. The last key
// is the most significant.
const DefaultSort = "track disc album date albumartistsort"

// Config holds the application configuration.
type Config struct {
	IgnoreCase  bool   `yaml:"ignore_case"`
	RegexSearch bool   `yaml:"regex_search"`
	Wrap        bool   `yaml:"wrap"`
	Sort        string `yaml:"sort"`
	LibraryDir  string `yaml:"library_dir"`
	PageSize    int    `yaml:"page_size" validate:"gte=1"`
	MPD         MPD    `yaml:"mpd"`
	Log         Log    `yaml:"log"`
}

// MPD holds the music server connection.
type MPD struct {
	Enabled      bool          `yaml:"enabled"`
	Network      string        `yaml:"network" validate:"oneof=tcp unix"`
	Address      string        `yaml:"address" validate:"required_if=Enabled true"`
	Password     string        `yaml:"password"`
	PollInterval time.Duration `yaml:"poll_interval" validate:"gte=0"`
}

// Log holds the logging configuration.
type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=text json pretty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		IgnoreCase: true,
		Sort:       DefaultSort,
		PageSize:   20,
		MPD: MPD{
			Network:      "tcp",
			Address:      "localhost:6600",
			PollInterval: time.Second,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML file. A missing or empty file yields Default().
// Keys absent from the file keep their default values; unknown keys are
// rejected. Errors from decoding or validation wrap domain.ErrInvalidConfig.
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Debug("config file not found, using defaults", "path", path)
	case err != nil:
		return nil, fmt.Errorf("failed to open config: %w", err)
	default:
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, path, err)
		}
	}

	if addr := os.Getenv(EnvMPDAddress); addr != "" {
		cfg.MPD.Address = addr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	return nil
}

// YAML renders the configuration as it would be written to a file.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// ListOptions returns the list engine options.
func (c *Config) ListOptions() *songlist.Options {
	return &songlist.Options{
		IgnoreCase:  c.IgnoreCase,
		RegexSearch: c.RegexSearch,
		Wrap:        c.Wrap,
	}
}

// LoggerConfig maps the log section onto logger.Config.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:  logger.ParseLevel(c.Log.Level),
		Format: c.Log.Format,
	}
}

// SortKeys splits Sort on spaces and commas.
func (c *Config) SortKeys() []string {
	return strings.FieldsFunc(c.Sort, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
}
