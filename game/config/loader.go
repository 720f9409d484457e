package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix         = "KNIGHT_"
	maxConfigFileSize = 1024 * 1024
)

// Keys read from unprefixed environment variables
var plainEnvKeys = map[string]string{
	"BOARD_API":        "board_api",
	"COMMANDS_API":     "commands_api",
	"NGROK_ENABLED":    "ngrok.enabled",
	"NGROK_AUTHTOKEN":  "ngrok.authtoken",
	"NGROK_AUTH_TOKEN": "ngrok.authtoken",
	"NGROK_DOMAIN":     "ngrok.domain",
}

// Load reads the YAML file at path (skipped when path is empty), then the
// environment, then applies overrides keyed by dotted config paths.
func Load(path string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply override %s: %w", key, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// envKey maps an environment variable name to a config key. An empty result
// tells koanf to skip the variable.
func envKey(name string) string {
	if key, ok := plainEnvKeys[name]; ok {
		return key
	}

	rest, ok := strings.CutPrefix(name, envPrefix)
	if !ok || rest == "" {
		return ""
	}

	lower := strings.ToLower(rest)
	if lower == "board_api" || lower == "commands_api" {
		return lower
	}

	section, field, found := strings.Cut(lower, "_")
	if !found {
		return lower
	}
	return section + "." + field
}

func readConfigFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %s not found: %w", path, err)
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidConfig, path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("%w: config file too large (%d bytes)", ErrInvalidConfig, info.Size())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}
