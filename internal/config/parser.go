package config

import (
	"encoding/json"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/griffithind/sysstatus/internal/errors"
	"github.com/griffithind/sysstatus/internal/util"
)

// Parse parses a config file from bytes. Fields missing from data keep
// their defaults.
func Parse(data []byte) (*Config, error) {
	// Strip comments and trailing commas
	stripped := jsonc.ToJSON(data)

	cfg := Default()
	if err := json.Unmarshal(stripped, cfg); err != nil {
		return nil, err
	}
	if cfg.CustomKey == "" {
		cfg.CustomKey = DefaultCustomKey
	}
	return cfg, nil
}

// ParseFile parses the config file at path.
func ParseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.FileRead(path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.ConfigParse(path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Load reads the configuration, applies environment overrides and
// validates the result.
//
// An empty path means DefaultPath; when that file does not exist the
// defaults are used. An explicit path that does not exist is an error.
func Load(path string) (*Config, error) {
	var cfg *Config
	switch {
	case path != "":
		c, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		cfg = c
	case util.IsFile(DefaultPath):
		c, err := ParseFile(DefaultPath)
		if err != nil {
			return nil, err
		}
		cfg = c
	default:
		util.Debug("no %s found, using defaults", DefaultPath)
		cfg = Default()
	}

	cfg.ApplyEnv()
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
