package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// 环境变量覆盖配置文件中的凭证
const (
	EnvAPIKey    = "THREECOMMAS_API_KEY"
	EnvAPISecret = "THREECOMMAS_API_SECRET"
	EnvBaseURL   = "THREECOMMAS_BASE_URL"
)

type Config struct {
	API struct {
		BaseURL    string `toml:"base_url" yaml:"base_url"`
		APIKey     string `toml:"api_key" yaml:"api_key"`
		APISecret  string `toml:"api_secret" yaml:"api_secret"`
		TimeoutSec int    `toml:"timeout_sec" yaml:"timeout_sec"`
		// V2 routes the smart-trade v2 listing through /v2/smart_trades
		V2 bool `toml:"v2" yaml:"v2"`
	} `toml:"api" yaml:"api"`

	// Routes overrides endpoint paths by name, e.g. smart_trades_v2 = "/v2/smart_trades?"
	Routes map[string]string `toml:"routes" yaml:"routes"`

	Stream struct {
		WsURL       string `toml:"ws_url" yaml:"ws_url"`
		MetricsAddr string `toml:"metrics_addr" yaml:"metrics_addr"` // e.g. :9108, empty disables
	} `toml:"stream" yaml:"stream"`

	Log struct {
		Level string `toml:"level" yaml:"level"`
	} `toml:"log" yaml:"log"`

	Journal struct {
		SQLite struct {
			Enabled bool   `toml:"enabled" yaml:"enabled"`
			Path    string `toml:"path" yaml:"path"`
		} `toml:"sqlite" yaml:"sqlite"`

		Postgres struct {
			Enabled bool   `toml:"enabled" yaml:"enabled"`
			DSN     string `toml:"dsn" yaml:"dsn"`
		} `toml:"postgres" yaml:"postgres"`

		Redis struct {
			Enabled    bool   `toml:"enabled" yaml:"enabled"`
			Addr       string `toml:"addr" yaml:"addr"`
			Password   string `toml:"password" yaml:"password"`
			DB         int    `toml:"db" yaml:"db"`
			Prefix     string `toml:"prefix" yaml:"prefix"`
			Stream     string `toml:"stream" yaml:"stream"`
			Channel    string `toml:"channel" yaml:"channel"`
			MaxLen     int64  `toml:"max_len" yaml:"max_len"`
			TTLSeconds int    `toml:"ttl_seconds" yaml:"ttl_seconds"`
		} `toml:"redis" yaml:"redis"`
	} `toml:"journal" yaml:"journal"`
}

// Load 读取配置文件（.toml 或 .yaml/.yml），文件不存在时使用默认值
func Load(path string) (*Config, error) {
	var cfg Config
	if err := decodeFile(path, &cfg); err != nil {
		return nil, err
	}
	applyEnv(&cfg)
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default 不读文件，仅环境变量 + 默认值
func Default() *Config {
	var cfg Config
	applyEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg
}

func decodeFile(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return fmt.Errorf("decode yaml %s: %w", path, err)
		}
	default:
		if _, err := toml.Decode(string(b), cfg); err != nil {
			return fmt.Errorf("decode toml %s: %w", path, err)
		}
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		cfg.API.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPISecret)); v != "" {
		cfg.API.APISecret = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		cfg.API.BaseURL = v
	}
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		cfg.API.BaseURL = "https://api.3commas.io"
	}
	if cfg.API.TimeoutSec <= 0 {
		cfg.API.TimeoutSec = 30
	}
	if strings.TrimSpace(cfg.Stream.WsURL) == "" {
		cfg.Stream.WsURL = "wss://ws.3commas.io/websocket"
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Journal.SQLite.Path == "" {
		cfg.Journal.SQLite.Path = "data/threecommas.db"
	}
	if cfg.Journal.Redis.Prefix == "" {
		cfg.Journal.Redis.Prefix = "threecommas"
	}
	if cfg.Journal.Redis.MaxLen <= 0 {
		cfg.Journal.Redis.MaxLen = 10000
	}
}

func validate(cfg *Config) error {
	if !strings.HasPrefix(cfg.API.BaseURL, "http://") && !strings.HasPrefix(cfg.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must be http(s): %q", cfg.API.BaseURL)
	}
	if cfg.Journal.Postgres.Enabled && strings.TrimSpace(cfg.Journal.Postgres.DSN) == "" {
		return errors.New("journal.postgres.dsn empty but enabled")
	}
	if cfg.Journal.Redis.Enabled && strings.TrimSpace(cfg.Journal.Redis.Addr) == "" {
		return errors.New("journal.redis.addr empty but enabled")
	}
	for name, path := range cfg.Routes {
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("routes.%s must start with '/': %q", name, path)
		}
	}
	return nil
}

// HasCredentials reports whether both api key and secret are configured.
func (c *Config) HasCredentials() bool {
	return c.API.APIKey != "" && c.API.APISecret != ""
}
