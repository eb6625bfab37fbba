package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, path string, cfg Config) {
	t.Helper()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal test config: %v", err)
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvStoragePath, "")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	testConfig := Config{
		APIURL:         "https://api.example.com/api/v1/",
		TimeoutSeconds: 30,
		StoragePath:    filepath.Join(tmpDir, "storage.json"),
		Defaults: DefaultConfig{
			OutputDir: "./test-output",
		},
	}
	writeConfig(t, configPath, testConfig)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.APIURL != "https://api.example.com/api/v1" {
		t.Errorf("Expected trailing slash trimmed, got %s", cfg.APIURL)
	}

	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Expected timeout 30s, got %s", cfg.Timeout())
	}

	if cfg.StoragePath != testConfig.StoragePath {
		t.Errorf("Expected storage path %s, got %s", testConfig.StoragePath, cfg.StoragePath)
	}
}

func TestLoadYAML(t *testing.T) {
	t.Setenv(EnvAPIURL, "")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := "api_url: http://localhost:9000/api/v1\npandoc:\n  template_path: cv.latex\n"
	err := os.WriteFile(configPath, []byte(content), 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.APIURL != "http://localhost:9000/api/v1" {
		t.Errorf("Expected api url from yaml, got %s", cfg.APIURL)
	}

	if cfg.Pandoc.TemplatePath != "cv.latex" {
		t.Errorf("Expected template path cv.latex, got %s", cfg.Pandoc.TemplatePath)
	}

	if cfg.Timeout() != DefaultTimeout {
		t.Errorf("Expected default timeout, got %s", cfg.Timeout())
	}

	if cfg.Defaults.OutputDir != "." {
		t.Errorf("Expected default output dir '.', got %s", cfg.Defaults.OutputDir)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvAPIURL, "https://override.example.com")
	t.Setenv(EnvStoragePath, "/tmp/override-storage.json")

	configPath := filepath.Join(t.TempDir(), "config.json")
	writeConfig(t, configPath, Config{APIURL: "http://localhost:8000/api/v1"})

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.APIURL != "https://override.example.com" {
		t.Errorf("Expected env api url, got %s", cfg.APIURL)
	}

	if cfg.StoragePath != "/tmp/override-storage.json" {
		t.Errorf("Expected env storage path, got %s", cfg.StoragePath)
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	os.Unsetenv(EnvAPIURL)

	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte(EnvAPIURL+"=https://dotenv.example.com\n"), 0600)
	if err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}

	configPath := filepath.Join(tmpDir, "config.json")
	writeConfig(t, configPath, Config{APIURL: "http://localhost:8000/api/v1"})

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.APIURL != "https://dotenv.example.com" {
		t.Errorf("Expected api url from .env, got %s", cfg.APIURL)
	}
}

func TestLoadNonexistent(t *testing.T) {
	_, err := Load("/nonexistent/path/config.json")
	if err == nil {
		t.Error("Expected error loading nonexistent config, got nil")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(configPath, []byte("{not json"), 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err = Load(configPath)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("Expected parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantError string
	}{
		{
			name:   "valid config",
			config: Config{APIURL: "http://localhost:8000/api/v1"},
		},
		{
			name:      "missing api url",
			config:    Config{},
			wantError: "api_url failed 'required'",
		},
		{
			name:      "api url not a url",
			config:    Config{APIURL: "not a url"},
			wantError: "api_url failed 'url'",
		},
		{
			name:      "negative timeout",
			config:    Config{APIURL: "http://localhost:8000", TimeoutSeconds: -1},
			wantError: "timeout_seconds failed 'gte'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}

			if err == nil || !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("Expected error containing '%s', got %v", tt.wantError, err)
			}
		})
	}
}

func TestInitConfig(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvStoragePath, "")

	tmpDir := t.TempDir()

	for _, name := range []string{"config.json", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(tmpDir, "nested", name)

			err := InitConfig(configPath)
			if err != nil {
				t.Fatalf("Failed to init config: %v", err)
			}

			cfg, err := Load(configPath)
			if err != nil {
				t.Fatalf("Failed to load generated config: %v", err)
			}

			if cfg.APIURL != DefaultAPIURL {
				t.Errorf("Expected api url %s, got %s", DefaultAPIURL, cfg.APIURL)
			}

			err = InitConfig(configPath)
			if err == nil {
				t.Error("Expected error when config already exists, got nil")
			}
		})
	}
}
