package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STUDIO_BACKEND", "memory")
	t.Setenv("STUDIO_LOG_LEVEL", "debug")

	path := writeConfig(t, `
backend: "firestore"
projectID: "tripp-couch-prod"
apiKey: "web-api-key"
logLevel: "info"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Backend != BackendMemory {
		t.Fatalf("backend = %q, want memory", cfg.Backend)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("logLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.ProjectID != "tripp-couch-prod" {
		t.Fatalf("projectID = %q, want tripp-couch-prod", cfg.ProjectID)
	}
}

func TestValidateConfigRequiresFirestoreCredentials(t *testing.T) {
	cfg := FileConfig{Backend: BackendFirestore, ProjectID: "tripp-couch-prod"}
	if err := validateConfig(cfg); err == nil {
		t.Fatalf("validateConfig() expected error for missing apiKey")
	}
	cfg = FileConfig{Backend: BackendFirestore, APIKey: "web-api-key"}
	if err := validateConfig(cfg); err == nil {
		t.Fatalf("validateConfig() expected error for missing projectID")
	}
}

func TestValidateConfigRejectsUnknownBackend(t *testing.T) {
	if err := validateConfig(FileConfig{Backend: "dynamo"}); err == nil {
		t.Fatalf("validateConfig() expected error for unknown backend")
	}
	if err := validateConfig(FileConfig{}); err == nil {
		t.Fatalf("validateConfig() expected error for empty backend")
	}
}

func TestMemoryBackendNeedsNoCredentials(t *testing.T) {
	if err := validateConfig(FileConfig{Backend: BackendMemory}); err != nil {
		t.Fatalf("validateConfig() = %v, want nil", err)
	}
}
