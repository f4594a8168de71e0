package main

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration. The passphrase never lives in the file;
// it comes from SEALBOX_PASSPHRASE (optionally via a .env file).
type Config struct {
	KeystoreDir string `yaml:"keystoreDir"`
	Identity    string `yaml:"identity"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	dir := ".sealbox"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".sealbox")
	}
	return Config{
		KeystoreDir: dir,
		Identity:    "default",
	}
}

// LoadConfig reads the YAML config file, falling back to defaults when the
// file is absent or unreadable. Environment variables override both.
func LoadConfig(configPath string) Config {
	cfg := DefaultConfig()

	candidates := make([]string, 0, 2)
	if configPath != "" {
		candidates = append(candidates, configPath)
	} else {
		candidates = append(candidates, "sealbox.yaml")
		if home, err := os.UserHomeDir(); err == nil {
			candidates = append(candidates, filepath.Join(home, ".sealbox", "config.yaml"))
		}
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var parsed Config
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			continue
		}
		merge(&cfg, parsed)
		break
	}

	applyEnvOverrides(&cfg)
	return cfg
}

func merge(dst *Config, src Config) {
	if src.KeystoreDir != "" {
		dst.KeystoreDir = src.KeystoreDir
	}
	if src.Identity != "" {
		dst.Identity = src.Identity
	}
}

func applyEnvOverrides(cfg *Config) {
	if dir := strings.TrimSpace(os.Getenv("SEALBOX_KEYSTORE_DIR")); dir != "" {
		cfg.KeystoreDir = dir
	}
	if tag := strings.TrimSpace(os.Getenv("SEALBOX_IDENTITY")); tag != "" {
		cfg.Identity = tag
	}
}
