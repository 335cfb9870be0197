package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// EnvPath names the variable holding the config file path.
	EnvPath = "SPEAKMEANING_CONFIG"
	// DefaultPath is tried when neither -config nor $SPEAKMEANING_CONFIG is given.
	DefaultPath = "speakmeaning.yaml"
)

// Load builds the configuration. Environment variables win over the YAML file,
// which wins over the env-default tags. A file named by the caller or by
// $SPEAKMEANING_CONFIG must exist; the working-directory default is optional.
func Load(path string) (*Config, error) {
	path, required := resolvePath(path)

	var cfg Config
	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case required || !errors.Is(statErr, fs.ErrNotExist):
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// resolvePath picks the config file and reports whether it must exist.
func resolvePath(flagPath string) (string, bool) {
	if flagPath != "" {
		return flagPath, true
	}
	if p := os.Getenv(EnvPath); p != "" {
		return p, true
	}
	return DefaultPath, false
}
