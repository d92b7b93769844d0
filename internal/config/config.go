package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load. A double
// underscore separates key levels: BOOKQUIZ_SERVER__BASE_URL sets server.base_url.
const EnvPrefix = "BOOKQUIZ_"

const (
	DefaultBaseURL       = "http://127.0.0.1:5000"
	DefaultQuestionsPath = "/static/json/questions.json"
	DefaultRecommendPath = "/recommend"
	DefaultTimeout       = 15 * time.Second
	DefaultServeAddr     = "127.0.0.1:5000"
)

// Config is the root configuration.
type Config struct {
	Server ServerConfig `koanf:"server" validate:"required"`
	Log    LogConfig    `koanf:"log"    validate:"required"`
	Serve  ServeConfig  `koanf:"serve"  validate:"required"`
}

// ServerConfig locates the quiz data source and recommendation service.
type ServerConfig struct {
	BaseURL       string        `koanf:"base_url"       validate:"required,url"`
	QuestionsPath string        `koanf:"questions_path" validate:"required,startswith=/"`
	RecommendPath string        `koanf:"recommend_path" validate:"required,startswith=/"`
	Timeout       time.Duration `koanf:"timeout"        validate:"required,min=100ms"`
}

// LogConfig configures the diagnostic log.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig configures the rolling log file used while the quiz UI owns the terminal.
type LogFileConfig struct {
	Path       string `koanf:"path"        validate:"required"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// ServeConfig configures the companion server.
type ServeConfig struct {
	Addr          string `koanf:"addr"           validate:"required,hostname_port"`
	QuestionsFile string `koanf:"questions_file"`
	BooksFile     string `koanf:"books_file"`

	// MaxScore is the top of the score range the catalogue scales against.
	// Zero derives it from the served question bank.
	MaxScore int `koanf:"max_score" validate:"min=0"`
}

func defaults() map[string]any {
	return map[string]any{
		"server.base_url":       DefaultBaseURL,
		"server.questions_path": DefaultQuestionsPath,
		"server.recommend_path": DefaultRecommendPath,
		"server.timeout":        DefaultTimeout.String(),

		"log.level":            "info",
		"log.format":           "json",
		"log.file.path":        defaultLogPath(),
		"log.file.max_size":    10,
		"log.file.max_backups": 3,
		"log.file.max_age":     28,
		"log.file.compress":    true,

		"serve.addr":           DefaultServeAddr,
		"serve.questions_file": "",
		"serve.books_file":     "",
		"serve.max_score":      0,
	}
}

// Load builds the configuration with the following precedence (highest first):
//  1. overrides (typically command-line flags)
//  2. environment variables with EnvPrefix
//  3. the YAML file at path, or DefaultPath() when path is empty
//  4. built-in defaults
//
// A missing file is not an error unless path was given explicitly.
func Load(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := loadFile(k, path, explicit); err != nil {
		return nil, fmt.Errorf("load config file %q: %w", path, err)
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("load overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string, required bool) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if required {
			return err
		}
		return nil
	}
	return k.Load(file.Provider(path), yaml.Parser())
}

// DefaultPath resolves the config file path:
// $XDG_CONFIG_HOME/bookquiz/config.yaml, else ~/.config/bookquiz/config.yaml.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "bookquiz.yaml")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "bookquiz", "config.yaml")
}

// defaultLogPath resolves $XDG_STATE_HOME/bookquiz/bookquiz.log, else
// ~/.local/state/bookquiz/bookquiz.log.
func defaultLogPath() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "bookquiz.log")
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "bookquiz", "bookquiz.log")
}
