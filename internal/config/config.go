package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file location, relative to the working
// directory.
const ConfigPath = "config.yaml"

// Backend names for the document store.
const (
	BackendFirestore = "firestore"
	BackendMemory    = "memory"
)

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	Backend         string `yaml:"backend"`
	ProjectID       string `yaml:"projectID"`
	APIKey          string `yaml:"apiKey"`
	CredentialsFile string `yaml:"credentialsFile"`
	LogLevel        string `yaml:"logLevel"`
}

// Load reads config from path (defaults to config.yaml).
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	// Override with environment variables
	if v := os.Getenv("STUDIO_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("FIREBASE_PROJECT_ID"); v != "" {
		cfg.ProjectID = v
	}
	if v := os.Getenv("FIREBASE_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		cfg.CredentialsFile = v
	}
	if v := os.Getenv("STUDIO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	switch cfg.Backend {
	case BackendFirestore:
		if cfg.ProjectID == "" {
			return errors.New("config: projectID is required for the firestore backend (set in config.yaml or FIREBASE_PROJECT_ID)")
		}
		if cfg.APIKey == "" {
			return errors.New("config: apiKey is required for the firestore backend (set in config.yaml or FIREBASE_API_KEY)")
		}
	case BackendMemory:
	case "":
		return errors.New("config: backend is required (firestore or memory)")
	default:
		return fmt.Errorf("config: unknown backend %q (use firestore or memory)", cfg.Backend)
	}
	return nil
}
