// Package config loads the application configuration from YAML, applies
// defaults, validates it and watches it for changes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "uidemo.yaml"

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Config is the whole application configuration.
type Config struct {
	Name    string        `yaml:"name" json:"name" validate:"required"`
	Version string        `yaml:"version,omitempty" json:"version,omitempty"`
	Server  ServerConfig  `yaml:"server" json:"server"`
	Log     LogConfig     `yaml:"log" json:"log"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
	Session SessionConfig `yaml:"session" json:"session"`
	Theme   ThemeConfig   `yaml:"theme" json:"theme"`
	Action  ActionConfig  `yaml:"action" json:"action"`
}

type ServerConfig struct {
	Addr          string        `yaml:"addr" json:"addr" validate:"required"`
	ShutdownGrace time.Duration `yaml:"shutdown_grace" json:"shutdown_grace" validate:"gte=0"`
	// AllowedOrigins are extra origin patterns accepted by the counter
	// websocket besides the request host.
	AllowedOrigins []string `yaml:"allowed_origins,omitempty" json:"allowed_origins,omitempty"`
}

type LogConfig struct {
	Level  string `yaml:"level" json:"level" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" json:"format" validate:"oneof=auto console json"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" json:"driver" validate:"oneof=memory file sqlite"`
	Dir    string `yaml:"dir,omitempty" json:"dir,omitempty" validate:"required_if=Driver file"`
	DSN    string `yaml:"dsn,omitempty" json:"dsn,omitempty" validate:"required_if=Driver sqlite"`
}

type SessionConfig struct {
	Cookie string        `yaml:"cookie" json:"cookie" validate:"required"`
	MaxAge time.Duration `yaml:"max_age" json:"max_age" validate:"gt=0"`
	Secure bool          `yaml:"secure" json:"secure"`
}

type ThemeConfig struct {
	Name    string `yaml:"name" json:"name"`
	Variant string `yaml:"variant,omitempty" json:"variant,omitempty"`
}

type ActionConfig struct {
	Delay       time.Duration `yaml:"delay" json:"delay" validate:"gte=0"`
	ProjectFile string        `yaml:"project_file" json:"project_file" validate:"required"`
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		Name: "uidemo",
		Server: ServerConfig{
			Addr:          ":8080",
			ShutdownGrace: 10 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "auto"},
		Storage: StorageConfig{
			Driver: DriverMemory,
		},
		Session: SessionConfig{
			Cookie: "uidemo_session",
			MaxAge: 30 * 24 * time.Hour,
		},
		Theme: ThemeConfig{Name: "light"},
		Action: ActionConfig{
			Delay:       time.Second,
			ProjectFile: DefaultFile,
		},
	}
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validateInst
}

// Validate checks the struct tags and reports every failing field.
func (c *Config) Validate() error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: validate: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("config: invalid: %s", strings.Join(msgs, "; "))
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads path and parses it. An empty path returns the defaults. A
// missing DefaultFile also returns the defaults; any other missing file is
// an error.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultFile {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
