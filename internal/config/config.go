package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the catalog API endpoint, credentials and local paths.
type Config struct {
	APIBase           string
	PublicKey         string
	PrivateKey        string
	LogFile           string
	RequestsPerSecond float64
}

const (
	defaultConfigPath        = "~/.config/cerebro/config.toml"
	defaultAPIBase           = "https://gateway.marvel.com"
	defaultLogFile           = "~/.local/state/cerebro/cerebro.log"
	defaultRequestsPerSecond = 2
)

// overrides are read from the environment and win over the file when set.
type overrides struct {
	APIBase    string `env:"MARVEL_API_BASE"`
	PublicKey  string `env:"MARVEL_PUBLIC_KEY"`
	PrivateKey string `env:"MARVEL_PRIVATE_KEY"`
	LogFile    string `env:"CEREBRO_LOG_FILE"`
}

// Load reads the config file, falling back to defaults when it is missing, and
// applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{RequestsPerSecond: defaultRequestsPerSecond}

	raw, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}

	var vars overrides
	if err := parseEnv(&vars); err != nil {
		return Config{}, err
	}

	cfg.APIBase = firstNonEmpty(vars.APIBase, raw.APIBase, defaultAPIBase)
	cfg.PublicKey = firstNonEmpty(vars.PublicKey, raw.PublicKey)
	cfg.PrivateKey = firstNonEmpty(vars.PrivateKey, raw.PrivateKey)
	cfg.LogFile = mustExpand(firstNonEmpty(vars.LogFile, raw.LogFile, defaultLogFile))
	if raw.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = raw.RequestsPerSecond
	}

	return cfg, nil
}

type fileConfig struct {
	APIBase           string  `toml:"api_base"`
	PublicKey         string  `toml:"public_key"`
	PrivateKey        string  `toml:"private_key"`
	LogFile           string  `toml:"log_file"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

func readFile(path string) (fileConfig, error) {
	var raw fileConfig
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return raw, nil
		}
		return raw, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return raw, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return raw, fmt.Errorf("parse config: %w", err)
	}
	return raw, nil
}

func parseEnv(dst *overrides) error {
	if err := env.Parse(dst); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// HasCredentials reports whether both API keys are set.
func (c Config) HasCredentials() bool {
	return c.PublicKey != "" && c.PrivateKey != ""
}

// Path returns the config file Load reads for path.
func Path(path string) string {
	resolved, err := resolvePath(path)
	if err != nil {
		return path
	}
	return resolved
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
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
