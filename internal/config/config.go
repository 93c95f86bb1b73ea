package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Postgres drivers
const (
	DriverPgx = "pgx"
	DriverPQ  = "postgres"
)

// Empty record id policies for the reviews component
const (
	PolicyRetainLast   = "retain"
	PolicyClearOnEmpty = "clear"
)

// StorageURLEnv overrides storage.url
const StorageURLEnv = "BOATYARD_STORAGE_URL"

// Config represents the application configuration
type Config struct {
	Version int           `toml:"version"`
	Storage StorageConfig `toml:"storage"`
	Reviews ReviewsConfig `toml:"reviews"`
	UI      UISettings    `toml:"ui"`
	Logging LoggingConfig `toml:"logging"`
	Tracing TracingConfig `toml:"tracing"`
}

// StorageConfig selects and locates the data service backend
type StorageConfig struct {
	Type   string `toml:"type"`   // "memory", "sqlite", "postgres"
	Path   string `toml:"path"`   // sqlite file, or memory snapshot file
	URL    string `toml:"url"`    // postgres connection URL
	Driver string `toml:"driver"` // "pgx" or "postgres"
	Seed   bool   `toml:"seed"`   // load demo data into an empty store
}

// ReviewsConfig holds settings for the reviews component
type ReviewsConfig struct {
	EmptyIDPolicy string `toml:"empty_id_policy"` // "retain" or "clear"
}

// UISettings represents UI-related configuration
type UISettings struct {
	ToastSeconds int  `toml:"toast_seconds"`
	PageSize     int  `toml:"page_size"`
	ShowPictures bool `toml:"show_pictures"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	File string `toml:"file"`
}

// TracingConfig holds OpenTelemetry settings
type TracingConfig struct {
	Enabled     bool   `toml:"enabled"`
	Endpoint    string `toml:"endpoint"`
	Insecure    bool   `toml:"insecure"`
	ServiceName string `toml:"service_name"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service for the default location
func NewConfigService() ConfigService {
	return NewConfigServiceAt(DefaultPath())
}

// NewConfigServiceAt creates a config service for a specific file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "boatyard", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path.
// Missing keys keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyEnv applies environment overrides
func (c *Config) ApplyEnv() {
	if url := os.Getenv(StorageURLEnv); url != "" {
		c.Storage.URL = url
	}
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if c.Storage.URL == "" {
			return fmt.Errorf("storage.url is required for %s storage", StoragePostgres)
		}
		switch c.Storage.Driver {
		case DriverPgx, DriverPQ:
		default:
			return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage.type %q", c.Storage.Type)
	}

	switch c.Reviews.EmptyIDPolicy {
	case PolicyRetainLast, PolicyClearOnEmpty:
	default:
		return fmt.Errorf("unknown reviews.empty_id_policy %q", c.Reviews.EmptyIDPolicy)
	}

	if c.UI.ToastSeconds < 0 {
		return fmt.Errorf("ui.toast_seconds must not be negative")
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Storage: StorageConfig{
			Type:   StorageMemory,
			Driver: DriverPgx,
			Seed:   true,
		},
		Reviews: ReviewsConfig{
			EmptyIDPolicy: PolicyRetainLast,
		},
		UI: UISettings{
			ToastSeconds: 4,
			PageSize:     0, // follow the terminal height
		},
		Logging: LoggingConfig{
			File: "boatyard.log",
		},
		Tracing: TracingConfig{
			ServiceName: "boatyard",
		},
	}
}
