package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces environment overrides, e.g. INKWELL_SERVER_PORT.
const EnvPrefix = "INKWELL_"

type AppConfig struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	JWT       JWTConfig       `koanf:"jwt"`
	Staging   StagingConfig   `koanf:"staging"`
	Log       LogConfig       `koanf:"log"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
}

type ServerConfig struct {
	Port           int      `koanf:"port"`
	Mode           string   `koanf:"mode"` // debug, release, test
	MaxUploadBytes int64    `koanf:"max_upload_bytes"`
	AllowOrigins   []string `koanf:"allow_origins"`
}

type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`
	LogLevel string `koanf:"log_level"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig is optional; with an empty Addr previews stay in process memory.
type RedisConfig struct {
	Addr       string        `koanf:"addr"`
	Password   string        `koanf:"password"`
	DB         int           `koanf:"db"`
	PreviewTTL time.Duration `koanf:"preview_ttl"`
}

type StagingConfig struct {
	Root string `koanf:"root"`
}

type LogConfig struct {
	Level       string `koanf:"level"`
	Format      string `koanf:"format"` // json, text
	Environment string `koanf:"environment"`
}

type RateLimitConfig struct {
	UploadsPerMinute float64 `koanf:"uploads_per_minute"`
	Burst            int     `koanf:"burst"`
}

func defaults() map[string]any {
	return map[string]any{
		"server.port":                  8080,
		"server.mode":                  "release",
		"server.max_upload_bytes":      int64(20 << 20),
		"server.allow_origins":         []string{"*"},
		"database.host":                "localhost",
		"database.port":                5432,
		"database.user":                "postgres",
		"database.password":            "",
		"database.name":                "inkwell",
		"database.sslmode":             "disable",
		"database.log_level":           "warn",
		"redis.addr":                   "",
		"redis.db":                     0,
		"redis.preview_ttl":            "30m",
		"jwt.secret":                   "your-secret-key-change-this-in-production",
		"jwt.expiration":               "24h",
		"staging.root":                 os.TempDir(),
		"log.level":                    "info",
		"log.format":                   "",
		"log.environment":              "development",
		"ratelimit.uploads_per_minute": 10.0,
		"ratelimit.burst":              5,
	}
}

// Load layers defaults, an optional YAML file and INKWELL_* environment
// variables, in that order. A missing file at path is not an error.
func Load(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &AppConfig{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// MustLoad is Load for main; it exits on failure.
func MustLoad(path string) *AppConfig {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// envKey maps INKWELL_SERVER_MAX_UPLOAD_BYTES to server.max_upload_bytes: the
// first underscore separates the section, the rest belong to the key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, key, found := strings.Cut(s, "_")
	if !found {
		return s
	}
	return section + "." + key
}
