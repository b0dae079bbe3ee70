// Package config loads application configuration from an optional YAML file
// and environment variables.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration. Zero values mean "not set";
// individual commands decide which fields they require.
type Config struct {
	DigitalOceanToken string `yaml:"digitalocean_token"`
	OpenAIAPIKey      string `yaml:"openai_api_key"`
	GeminiAPIKey      string `yaml:"gemini_api_key"`
	DiscordWebhook    string `yaml:"discord_webhook"`

	// DBPath enables the SQLite history and credential store when non-empty.
	DBPath string `yaml:"db_path"`
	// SecretKey is the 32-byte AES-256 key for credentials stored in SQLite.
	SecretKey []byte `yaml:"-"`
	// TokenDir holds OAuth token files when SQLite credentials are disabled.
	TokenDir string `yaml:"token_dir"`
	// ClientSecrets is the Google OAuth client secrets JSON file.
	ClientSecrets string `yaml:"client_secrets"`

	ExchangeRateURL   string `yaml:"exchange_rate_url"`
	TranslateParallel int    `yaml:"translate_parallel"`

	LogLevel  slog.Level `yaml:"-"`
	LogFormat string     `yaml:"log_format"`
}

// fileOnly carries YAML fields that need parsing before they land in Config.
type fileOnly struct {
	SecretKey string `yaml:"secret_key"`
	LogLevel  string `yaml:"log_level"`
}

// Defaults applied before the file and environment are read.
const (
	DefaultTokenDir          = "."
	DefaultClientSecrets     = "credentials.json"
	DefaultExchangeRateURL   = "https://open.er-api.com/v6/latest/USD"
	DefaultTranslateParallel = 3
	DefaultLogFormat         = "text"
	DefaultEnvFile           = ".env"
)

// HasHistory returns true when a database path is configured.
func (c *Config) HasHistory() bool {
	return c.DBPath != ""
}

// Load reads configuration and returns a validated Config.
// Variables from the dotenv file named by CHOREKIT_ENV_FILE (default .env,
// skipped when absent) are added to the environment without replacing ones
// already set. If CHOREKIT_CONFIG names a YAML file, its values are applied
// first; every CHOREKIT_* environment variable then overrides the matching
// file value.
// Recognized variables: CHOREKIT_DIGITALOCEAN_TOKEN, CHOREKIT_OPENAI_API_KEY,
// CHOREKIT_GEMINI_API_KEY, CHOREKIT_DISCORD_WEBHOOK, CHOREKIT_DB_PATH,
// CHOREKIT_SECRET_KEY (64 hex chars), CHOREKIT_TOKEN_DIR (.),
// CHOREKIT_CLIENT_SECRETS (credentials.json), CHOREKIT_EXCHANGE_RATE_URL,
// CHOREKIT_TRANSLATE_PARALLEL (3), CHOREKIT_LOG_LEVEL (info),
// CHOREKIT_LOG_FORMAT (text).
func Load() (*Config, error) {
	cfg := &Config{
		TokenDir:          DefaultTokenDir,
		ClientSecrets:     DefaultClientSecrets,
		ExchangeRateURL:   DefaultExchangeRateURL,
		TranslateParallel: DefaultTranslateParallel,
		LogLevel:          slog.LevelInfo,
		LogFormat:         DefaultLogFormat,
	}

	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	var extra fileOnly
	if path, ok := os.LookupEnv("CHOREKIT_CONFIG"); ok && path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("CHOREKIT_CONFIG: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("CHOREKIT_CONFIG: parse %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &extra); err != nil {
			return nil, fmt.Errorf("CHOREKIT_CONFIG: parse %s: %w", path, err)
		}
	}

	overrideString(&cfg.DigitalOceanToken, "CHOREKIT_DIGITALOCEAN_TOKEN")
	overrideString(&cfg.OpenAIAPIKey, "CHOREKIT_OPENAI_API_KEY")
	overrideString(&cfg.GeminiAPIKey, "CHOREKIT_GEMINI_API_KEY")
	overrideString(&cfg.DiscordWebhook, "CHOREKIT_DISCORD_WEBHOOK")
	overrideString(&cfg.DBPath, "CHOREKIT_DB_PATH")
	overrideString(&cfg.TokenDir, "CHOREKIT_TOKEN_DIR")
	overrideString(&cfg.ClientSecrets, "CHOREKIT_CLIENT_SECRETS")
	overrideString(&cfg.ExchangeRateURL, "CHOREKIT_EXCHANGE_RATE_URL")
	overrideString(&cfg.LogFormat, "CHOREKIT_LOG_FORMAT")
	overrideString(&extra.SecretKey, "CHOREKIT_SECRET_KEY")
	overrideString(&extra.LogLevel, "CHOREKIT_LOG_LEVEL")

	if v, ok := os.LookupEnv("CHOREKIT_TRANSLATE_PARALLEL"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("CHOREKIT_TRANSLATE_PARALLEL has invalid value %q: %w", v, err)
		}
		cfg.TranslateParallel = n
	}
	if cfg.TranslateParallel < 1 {
		return nil, fmt.Errorf("CHOREKIT_TRANSLATE_PARALLEL must be at least 1, got %d", cfg.TranslateParallel)
	}

	if extra.SecretKey != "" {
		key, err := hex.DecodeString(extra.SecretKey)
		if err != nil {
			return nil, fmt.Errorf("CHOREKIT_SECRET_KEY must be hex-encoded: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("CHOREKIT_SECRET_KEY must decode to 32 bytes, got %d", len(key))
		}
		cfg.SecretKey = key
	}

	if extra.LogLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(extra.LogLevel)); err != nil {
			return nil, fmt.Errorf("CHOREKIT_LOG_LEVEL has invalid level %q: %w", extra.LogLevel, err)
		}
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("CHOREKIT_LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

// ParseList splits a comma- or whitespace-separated list, dropping empty items.
func ParseList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if fields == nil {
		return []string{}
	}
	return fields
}

func loadEnvFile() error {
	path, explicit := os.LookupEnv("CHOREKIT_ENV_FILE")
	if !explicit {
		path = DefaultEnvFile
	}
	if path == "" {
		return nil
	}

	err := godotenv.Load(path)
	if err == nil {
		slog.Debug("loaded env file", "path", path)
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil
	}
	return fmt.Errorf("CHOREKIT_ENV_FILE: load %s: %w", path, err)
}

func overrideString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}
