package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Storage backends.
const (
	StorageFile  = "file"
	StorageRedis = "redis"
)

// Config is the resolved streamcard configuration.
type Config struct {
	Storage      string
	DataDir      string
	Redis        Redis
	ExportDir    string
	LogFile      string
	LogLevel     string
	SaveDebounce time.Duration
	Spaces       Spaces
}

// Redis configures the redis storage backend.
type Redis struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
}

// Spaces configures uploads of exported images to an S3-compatible bucket.
type Spaces struct {
	Endpoint  string
	Region    string
	Bucket    string
	CDNURL    string
	AccessKey string
	SecretKey string
}

// Enabled reports whether enough is configured to upload.
func (s Spaces) Enabled() bool {
	return s.Endpoint != "" && s.Bucket != "" && s.AccessKey != "" && s.SecretKey != ""
}

const (
	defaultConfigPath   = "~/.config/streamcard/config.toml"
	defaultDataDir      = "~/.local/share/streamcard"
	defaultExportDir    = "~/.local/share/streamcard/exports"
	defaultLogFile      = "~/.local/share/streamcard/streamcard.log"
	defaultLogLevel     = "info"
	defaultRedisAddr    = "127.0.0.1:6379"
	defaultRedisPrefix  = "streamcard:"
	defaultSpacesRegion = "us-east-1"
	defaultSaveDebounce = 500 * time.Millisecond
)

const envPrefix = "STREAMCARD_"

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

type fileConfig struct {
	Storage        string `toml:"storage"`
	DataDir        string `toml:"data_dir"`
	RedisAddr      string `toml:"redis_addr"`
	RedisUsername  string `toml:"redis_username"`
	RedisPassword  string `toml:"redis_password"`
	RedisDB        int    `toml:"redis_db"`
	RedisPrefix    string `toml:"redis_prefix"`
	ExportDir      string `toml:"export_dir"`
	LogFile        string `toml:"log_file"`
	LogLevel       string `toml:"log_level"`
	SaveDebounceMS int    `toml:"save_debounce_ms"`
	Spaces         struct {
		Endpoint string `toml:"endpoint"`
		Region   string `toml:"region"`
		Bucket   string `toml:"bucket"`
		CDNURL   string `toml:"cdn_url"`
	} `toml:"spaces"`
}

// Load parses the config file, falling back to defaults when it is missing,
// then applies STREAMCARD_* environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw fileConfig
	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnv(&raw); err != nil {
		return Config{}, err
	}
	return resolve(raw)
}

// LoadEnvFile loads a .env file into the process environment. Variables that
// are already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func applyEnv(raw *fileConfig) error {
	str := map[string]*string{
		"STORAGE":         &raw.Storage,
		"DATA_DIR":        &raw.DataDir,
		"REDIS_ADDR":      &raw.RedisAddr,
		"REDIS_USERNAME":  &raw.RedisUsername,
		"REDIS_PASSWORD":  &raw.RedisPassword,
		"REDIS_PREFIX":    &raw.RedisPrefix,
		"EXPORT_DIR":      &raw.ExportDir,
		"LOG_FILE":        &raw.LogFile,
		"LOG_LEVEL":       &raw.LogLevel,
		"SPACES_ENDPOINT": &raw.Spaces.Endpoint,
		"SPACES_REGION":   &raw.Spaces.Region,
		"SPACES_BUCKET":   &raw.Spaces.Bucket,
		"SPACES_CDN_URL":  &raw.Spaces.CDNURL,
	}
	for name, dst := range str {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"REDIS_DB":         &raw.RedisDB,
		"SAVE_DEBOUNCE_MS": &raw.SaveDebounceMS,
	}
	for name, dst := range ints {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parse %s%s: %w", envPrefix, name, err)
		}
		*dst = n
	}
	return nil
}

func resolve(raw fileConfig) (Config, error) {
	cfg := Config{
		Storage:  strings.ToLower(strings.TrimSpace(raw.Storage)),
		LogLevel: strings.ToLower(strings.TrimSpace(raw.LogLevel)),
		Redis: Redis{
			Addr:     strings.TrimSpace(raw.RedisAddr),
			Username: strings.TrimSpace(raw.RedisUsername),
			Password: raw.RedisPassword,
			DB:       raw.RedisDB,
			Prefix:   raw.RedisPrefix,
		},
		Spaces: Spaces{
			Endpoint:  strings.TrimSpace(raw.Spaces.Endpoint),
			Region:    strings.TrimSpace(raw.Spaces.Region),
			Bucket:    strings.TrimSpace(raw.Spaces.Bucket),
			CDNURL:    strings.TrimRight(strings.TrimSpace(raw.Spaces.CDNURL), "/"),
			AccessKey: os.Getenv(envPrefix + "SPACES_ACCESS_KEY"),
			SecretKey: os.Getenv(envPrefix + "SPACES_SECRET_KEY"),
		},
	}

	if cfg.Storage == "" {
		cfg.Storage = StorageFile
	}
	if cfg.Storage != StorageFile && cfg.Storage != StorageRedis {
		return Config{}, fmt.Errorf("parse config: unknown storage %q (want file or redis)", raw.Storage)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = defaultRedisAddr
	}
	if cfg.Redis.Prefix == "" {
		cfg.Redis.Prefix = defaultRedisPrefix
	}
	if cfg.Redis.DB < 0 {
		return Config{}, fmt.Errorf("parse config: redis_db must be >= 0, got %d", cfg.Redis.DB)
	}
	if cfg.Spaces.Region == "" {
		cfg.Spaces.Region = defaultSpacesRegion
	}

	cfg.SaveDebounce = defaultSaveDebounce
	if raw.SaveDebounceMS > 0 {
		cfg.SaveDebounce = time.Duration(raw.SaveDebounceMS) * time.Millisecond
	}

	cfg.DataDir = mustExpand(orDefault(raw.DataDir, defaultDataDir))
	cfg.ExportDir = mustExpand(orDefault(raw.ExportDir, defaultExportDir))
	cfg.LogFile = mustExpand(orDefault(raw.LogFile, defaultLogFile))
	return cfg, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
