package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields butler needs to reach the assistant gateway.
type Config struct {
	APIBind     string
	PollSeconds int
	AgendaDays  int
}

const (
	defaultConfigPath  = "~/.config/butler/config.toml"
	defaultAPIBind     = "127.0.0.1:8000"
	defaultPollSeconds = 30
	defaultAgendaDays  = 7
)

// Load locates and parses the butler config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBind:     defaultAPIBind,
		PollSeconds: defaultPollSeconds,
		AgendaDays:  defaultAgendaDays,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBind     string `toml:"api_bind"`
		PollSeconds int    `toml:"poll_seconds"`
		AgendaDays  int    `toml:"agenda_days"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIBind = strings.TrimSpace(raw.APIBind)
	if cfg.APIBind == "" {
		cfg.APIBind = defaultAPIBind
	}
	if raw.PollSeconds > 0 {
		cfg.PollSeconds = raw.PollSeconds
	}
	if raw.AgendaDays > 0 {
		cfg.AgendaDays = raw.AgendaDays
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
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
