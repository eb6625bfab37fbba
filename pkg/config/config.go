package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvAPIURL      = "PORTFOLIO_API_URL"
	EnvStoragePath = "PORTFOLIO_STORAGE_PATH"
)

// DefaultAPIURL is the backend address written by InitConfig.
const DefaultAPIURL = "http://localhost:8000/api/v1"

// DefaultTimeout applies when timeout_seconds is zero.
const DefaultTimeout = 120 * time.Second

// Config represents the application configuration.
type Config struct {
	APIURL         string        `json:"api_url" yaml:"api_url" validate:"required,url"`
	TimeoutSeconds int           `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"gte=0"`
	StoragePath    string        `json:"storage_path,omitempty" yaml:"storage_path,omitempty"`
	Pandoc         PandocConfig  `json:"pandoc" yaml:"pandoc"`
	Defaults       DefaultConfig `json:"defaults" yaml:"defaults"`
}

// PandocConfig holds optional pandoc settings for PDF export.
type PandocConfig struct {
	TemplatePath string `json:"template_path,omitempty" yaml:"template_path,omitempty"`
	ClassFile    string `json:"class_file,omitempty" yaml:"class_file,omitempty"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// Timeout returns the request timeout.
func (c *Config) Timeout() (timeout time.Duration) {
	if c.TimeoutSeconds > 0 {
		timeout = time.Duration(c.TimeoutSeconds) * time.Second
		return timeout
	}
	timeout = DefaultTimeout
	return timeout
}

// DefaultPath returns $HOME/.portfolio-admin/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".portfolio-admin", "config.json")
	return path, err
}

// Load reads configuration from file with .env and environment variable overrides.
// Files ending in .yaml or .yml are parsed as YAML, anything else as JSON.
func Load(configPath string) (cfg Config, err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	err = loadDotEnv(".env")
	if err != nil {
		return cfg, err
	}

	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Errorf("config file not found: %s (run 'portfolio-admin init' to create)", path)
			return cfg, err
		}
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}

	if apiURL := os.Getenv(EnvAPIURL); apiURL != "" {
		cfg.APIURL = apiURL
	}

	if storagePath := os.Getenv(EnvStoragePath); storagePath != "" {
		cfg.StoragePath = storagePath
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// loadDotEnv loads path into the environment when it exists. Variables already set win.
func loadDotEnv(path string) (err error) {
	_, err = os.Stat(path)
	if os.IsNotExist(err) {
		err = nil
		return err
	}

	err = godotenv.Load(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to load %s", path)
		return err
	}

	return err
}

func isYAML(path string) (ok bool) {
	ext := strings.ToLower(filepath.Ext(path))
	ok = ext == ".yaml" || ext == ".yml"
	return ok
}

// Validate checks the configuration and fills in defaults.
func (c *Config) Validate() (err error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	err = v.Struct(c)
	if err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			err = errors.Errorf("%s failed '%s' validation (value %q)", fe.Field(), fe.Tag(), fe.Value())
			return err
		}
		err = errors.Wrap(err, "invalid config")
		return err
	}

	c.APIURL = strings.TrimRight(c.APIURL, "/")

	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = "."
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return err
	}

	defaultConfig := Config{
		APIURL:         DefaultAPIURL,
		TimeoutSeconds: int(DefaultTimeout / time.Second),
		StoragePath:    filepath.Join(homeDir, ".portfolio-admin", "storage.json"),
		Defaults: DefaultConfig{
			OutputDir: filepath.Join(homeDir, "Documents", "Portfolio"),
		},
	}

	var data []byte
	if isYAML(path) {
		data, err = yaml.Marshal(defaultConfig)
	} else {
		data, err = json.MarshalIndent(defaultConfig, "", "  ")
	}
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
