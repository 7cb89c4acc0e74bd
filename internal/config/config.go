package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultJWTSecret = "dev-secret-change-in-production"

const (
	BackendFile  = "file"
	BackendMySQL = "mysql"
	BackendRedis = "redis"
)

var (
	ErrDefaultSecret  = errors.New("JWT_SECRET must be set in production environment")
	ErrUnknownBackend = errors.New("HISTORY_BACKEND must be one of file, mysql, redis")
)

// Config holds the settings for both binaries. Values come from, in order of
// precedence: environment variables, the YAML file named by CONFIG_FILE, defaults.
type Config struct {
	Port string `yaml:"port"`
	Env  string `yaml:"env"`

	DataDir        string `yaml:"data_dir"`
	SettingsPath   string `yaml:"settings_path"`
	HistoryPath    string `yaml:"history_path"`
	HistoryBackend string `yaml:"history_backend"`

	DatabaseDSN   string `yaml:"database_dsn"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	RedisKey      string `yaml:"redis_key"`

	JWTSecret           string        `yaml:"jwt_secret"`
	JWTExpiry           time.Duration `yaml:"jwt_expiry"`
	AdminPassphraseHash string        `yaml:"admin_passphrase_hash"`

	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Port:           "8080",
		Env:            "development",
		DataDir:        ".",
		HistoryBackend: BackendFile,
		DatabaseDSN:    "root:password@tcp(127.0.0.1:3306)/securepass?parseTime=true",
		RedisAddr:      "127.0.0.1:6379",
		RedisKey:       "securepass:history",
		JWTSecret:      defaultJWTSecret,
		JWTExpiry:      24 * time.Hour,
		RateLimitRPS:   5,
		RateLimitBurst: 10,
	}
}

// Load builds the configuration from CONFIG_FILE and the environment.
func Load() (Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.DataDir = getEnv("DATA_DIR", cfg.DataDir)
	cfg.SettingsPath = getEnv("SETTINGS_PATH", cfg.SettingsPath)
	cfg.HistoryPath = getEnv("HISTORY_PATH", cfg.HistoryPath)
	cfg.HistoryBackend = getEnv("HISTORY_BACKEND", cfg.HistoryBackend)
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", cfg.DatabaseDSN)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = getEnvInt("REDIS_DB", cfg.RedisDB)
	cfg.RedisKey = getEnv("REDIS_KEY", cfg.RedisKey)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTExpiry = getEnvDuration("JWT_EXPIRY", cfg.JWTExpiry)
	cfg.AdminPassphraseHash = getEnv("ADMIN_PASSPHRASE_HASH", cfg.AdminPassphraseHash)
	cfg.RateLimitRPS = getEnvFloat("RATE_LIMIT_RPS", cfg.RateLimitRPS)
	cfg.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", cfg.RateLimitBurst)

	if cfg.SettingsPath == "" {
		cfg.SettingsPath = filepath.Join(cfg.DataDir, "password_settings.json")
	}
	if cfg.HistoryPath == "" {
		cfg.HistoryPath = filepath.Join(cfg.DataDir, "password_history.json")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile decodes the YAML file at path over cfg. Keys absent from the file
// leave cfg unchanged.
func LoadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding config file %s: %w", path, err)
	}
	return nil
}

// Validate reports configuration that must not be started with.
func (c Config) Validate() error {
	if c.Env == "production" && c.JWTSecret == defaultJWTSecret {
		return ErrDefaultSecret
	}
	switch c.HistoryBackend {
	case BackendFile, BackendMySQL, BackendRedis:
	default:
		return fmt.Errorf("%w: got %q", ErrUnknownBackend, c.HistoryBackend)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring invalid integer in environment", "key", key, "value", v)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("ignoring invalid number in environment", "key", key, "value", v)
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("ignoring invalid duration in environment", "key", key, "value", v)
		return fallback
	}
	return d
}
