package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings Concepta needs before the UI starts.
type Config struct {
	BackendURL string
	APIURL     string
	Model      string
	DataDir    string
	LogFile    string
}

const (
	defaultConfigPath = "~/.config/concepta/config.toml"
	defaultDataDir    = "~/.local/share/concepta"
	defaultBackendURL = "http://localhost:8000"
	defaultAPIURL     = "http://localhost:11434"
	defaultModel      = "phi3:mini"
)

// Environment variables that override the config file.
const (
	EnvBackendURL = "CONCEPTA_BACKEND_URL"
	EnvAPIURL     = "CONCEPTA_API_URL"
	EnvModel      = "CONCEPTA_MODEL"
	EnvDataDir    = "CONCEPTA_DATA_DIR"
)

// Load locates and parses the config, falling back to defaults when missing.
// Values from a .env file in the working directory and CONCEPTA_* variables
// take precedence over the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BackendURL: defaultBackendURL,
		APIURL:     defaultAPIURL,
		Model:      defaultModel,
		DataDir:    defaultDataDir,
	}

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		if err := parseInto(file, &cfg); err != nil {
			return Config{}, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	// A missing .env is the common case.
	_ = godotenv.Load()
	applyEnv(&cfg)

	cfg.DataDir = mustExpand(cfg.DataDir)
	if strings.TrimSpace(cfg.LogFile) == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "concepta.log")
	}
	cfg.LogFile = mustExpand(cfg.LogFile)

	return cfg, nil
}

// DatabasePath returns the path of the local key/value database.
func (c Config) DatabasePath() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir + "/concepta.db")
	}
	return filepath.Join(c.DataDir, "concepta.db")
}

func parseInto(r io.Reader, cfg *Config) error {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BackendURL string `toml:"backend_url"`
		APIURL     string `toml:"api_url"`
		Model      string `toml:"model"`
		DataDir    string `toml:"data_dir"`
		LogFile    string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	setIfPresent(&cfg.BackendURL, raw.BackendURL)
	setIfPresent(&cfg.APIURL, raw.APIURL)
	setIfPresent(&cfg.Model, raw.Model)
	setIfPresent(&cfg.DataDir, raw.DataDir)
	setIfPresent(&cfg.LogFile, raw.LogFile)
	return nil
}

func applyEnv(cfg *Config) {
	setIfPresent(&cfg.BackendURL, os.Getenv(EnvBackendURL))
	setIfPresent(&cfg.APIURL, os.Getenv(EnvAPIURL))
	setIfPresent(&cfg.Model, os.Getenv(EnvModel))
	setIfPresent(&cfg.DataDir, os.Getenv(EnvDataDir))
}

func setIfPresent(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
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
