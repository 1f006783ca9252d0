package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
// It is read-only after Load() returns and thread-safe for concurrent reads.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Worker   WorkerConfig   `yaml:"worker"`
	Log      LogConfig      `yaml:"log"`
	Export   ExportConfig   `yaml:"export"`
	Suggest  SuggestConfig  `yaml:"suggest"`
	Limits   LimitsConfig   `yaml:"limits"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig contains database settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	APIKey string `yaml:"-"` // env-only, never in YAML
}

// WorkerConfig contains background worker settings.
type WorkerConfig struct {
	FlushInterval  Duration `yaml:"flush_interval"`
	SyncInterval   Duration `yaml:"sync_interval"`
	ExportInterval Duration `yaml:"export_interval"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ExportConfig contains S3-compatible storage settings for curation exports.
// Export is disabled when Bucket is empty.
type ExportConfig struct {
	Bucket    string `yaml:"bucket"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Prefix    string `yaml:"prefix"`
	UseSSL    *bool  `yaml:"use_ssl"`
	AccessKey string `yaml:"-"` // env-only, never in YAML
	SecretKey string `yaml:"-"` // env-only, never in YAML
}

// Enabled reports whether a bucket is configured.
func (e ExportConfig) Enabled() bool {
	return e.Bucket != ""
}

// SuggestConfig contains curation suggestion settings. Embedding ranking is
// used only when APIKey is set.
type SuggestConfig struct {
	PhoneticThreshold   float64  `yaml:"phonetic_threshold"`
	EmbeddingThreshold  float64  `yaml:"embedding_threshold"`
	MaxSuggestions      int      `yaml:"max_suggestions"`
	CacheTTL            Duration `yaml:"cache_ttl"`
	EmbeddingModel      string   `yaml:"embedding_model"`
	EmbeddingDimensions int      `yaml:"embedding_dimensions"`
	APIKey              string   `yaml:"-"` // env-only, never in YAML
}

// LimitsConfig bounds request sizes and admin write rates.
type LimitsConfig struct {
	MaxTextLength   int     `yaml:"max_text_length"`
	MaxBulkMappings int     `yaml:"max_bulk_mappings"`
	AdminRate       float64 `yaml:"admin_rate"`
	AdminBurst      int     `yaml:"admin_burst"`
}

// Duration is a wrapper around time.Duration that supports YAML string parsing.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Load loads configuration with precedence: defaults → YAML file → env vars.
// Returns an immutable Config suitable for concurrent read access.
func Load() (*Config, error) {
	cfg := newDefaults()

	configPath := getEnv("BUYVIA_CONFIG_PATH", "config/buyvia.yaml")

	// Missing file is not an error
	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific path.
// Used for testing and explicit path specification.
func LoadFromFile(path string) (*Config, error) {
	cfg := newDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabaseConfig resolves only the database settings, without the
// validation Load applies to server settings. Used by offline CLI commands.
func LoadDatabaseConfig() (DatabaseConfig, error) {
	cfg := newDefaults()

	if err := loadYAMLFile(cfg, getEnv("BUYVIA_CONFIG_PATH", "config/buyvia.yaml")); err != nil {
		return DatabaseConfig{}, err
	}
	applyEnvOverrides(cfg)

	return cfg.Database, nil
}

// newDefaults returns a Config with all default values.
func newDefaults() *Config {
	useSSL := true
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			ReadTimeout:     Duration(30 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(15 * time.Second),
		},
		Database: DatabaseConfig{
			Path: "data/buyvia.db",
		},
		Worker: WorkerConfig{
			FlushInterval:  Duration(30 * time.Second),
			SyncInterval:   Duration(5 * time.Minute),
			ExportInterval: Duration(1 * time.Hour),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Export: ExportConfig{
			Region: "us-east-1",
			Prefix: "curation",
			UseSSL: &useSSL,
		},
		Suggest: SuggestConfig{
			PhoneticThreshold:   0.8,
			EmbeddingThreshold:  0.85,
			MaxSuggestions:      5,
			CacheTTL:            Duration(10 * time.Minute),
			EmbeddingModel:      "text-embedding-3-small",
			EmbeddingDimensions: 256,
		},
		Limits: LimitsConfig{
			MaxTextLength:   1000,
			MaxBulkMappings: 500,
			AdminRate:       5,
			AdminBurst:      10,
		},
	}
}

// loadYAMLFile loads configuration from a YAML file if it exists.
func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Only non-empty env vars override config values.
func applyEnvOverrides(cfg *Config) {
	// Server (PORT is the platform convention; BUYVIA_PORT wins when both are set)
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("BUYVIA_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	setDuration("BUYVIA_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	setDuration("BUYVIA_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	setDuration("BUYVIA_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)

	// Database
	if v := os.Getenv("BUYVIA_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// Auth
	if v := os.Getenv("BUYVIA_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}

	// Worker
	setDuration("BUYVIA_FLUSH_INTERVAL", &cfg.Worker.FlushInterval)
	setDuration("BUYVIA_SYNC_INTERVAL", &cfg.Worker.SyncInterval)
	setDuration("BUYVIA_EXPORT_INTERVAL", &cfg.Worker.ExportInterval)

	// Log
	if v := os.Getenv("BUYVIA_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("BUYVIA_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	// Export
	if v := os.Getenv("BUYVIA_EXPORT_BUCKET"); v != "" {
		cfg.Export.Bucket = v
	}
	if v := os.Getenv("BUYVIA_S3_ENDPOINT"); v != "" {
		cfg.Export.Endpoint = v
	}
	if v := os.Getenv("BUYVIA_S3_REGION"); v != "" {
		cfg.Export.Region = v
	}
	if v := os.Getenv("BUYVIA_S3_ACCESS_KEY"); v != "" {
		cfg.Export.AccessKey = v
	}
	if v := os.Getenv("BUYVIA_S3_SECRET_KEY"); v != "" {
		cfg.Export.SecretKey = v
	}
	if v := os.Getenv("BUYVIA_S3_USE_SSL"); v != "" {
		useSSL := v == "true" || v == "1"
		cfg.Export.UseSSL = &useSSL
	}

	// Suggest (OPENAI_API_KEY is industry convention)
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Suggest.APIKey = v
	}
	if v := os.Getenv("BUYVIA_EMBEDDING_MODEL"); v != "" {
		cfg.Suggest.EmbeddingModel = v
	}
	if v := os.Getenv("BUYVIA_PHONETIC_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Suggest.PhoneticThreshold = f
		}
	}
	setDuration("BUYVIA_SUGGEST_CACHE_TTL", &cfg.Suggest.CacheTTL)

	// Limits
	if v := os.Getenv("BUYVIA_MAX_TEXT_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Limits.MaxTextLength = n
		}
	}
	if v := os.Getenv("BUYVIA_ADMIN_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Limits.AdminRate = f
		}
	}
}

func setDuration(key string, dst *Duration) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = Duration(d)
		}
	}
}

// validate checks that required configuration values are set.
// In dev mode (BUYVIA_DEV_MODE=true), API key validation is skipped.
func (c *Config) validate() error {
	if c.Worker.FlushInterval <= 0 || c.Worker.SyncInterval <= 0 || c.Worker.ExportInterval <= 0 {
		return errors.New("worker intervals must be positive")
	}
	if c.Suggest.PhoneticThreshold < 0 || c.Suggest.PhoneticThreshold > 1 {
		return fmt.Errorf("suggest.phonetic_threshold must be between 0 and 1, got %v", c.Suggest.PhoneticThreshold)
	}
	if c.Suggest.EmbeddingThreshold < 0 || c.Suggest.EmbeddingThreshold > 1 {
		return fmt.Errorf("suggest.embedding_threshold must be between 0 and 1, got %v", c.Suggest.EmbeddingThreshold)
	}
	if c.Limits.MaxTextLength <= 0 || c.Limits.MaxBulkMappings <= 0 {
		return errors.New("limits must be positive")
	}

	if os.Getenv("BUYVIA_DEV_MODE") == "true" {
		return nil
	}

	if c.Auth.APIKey == "" {
		return errors.New("BUYVIA_API_KEY is required")
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
