// config.go holds the gateway config types, file lookup and layer merging.
package gatewaycli

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/contenox/testrail-mcp/testrailsdk"
	"gopkg.in/yaml.v3"
)

const configDir = ".testrail-mcp"

// Config is the resolved gateway configuration.
type Config struct {
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	APIKey   string `yaml:"api_key,omitempty"`
	// APIKeyFromEnv names an environment variable holding the API key.
	APIKeyFromEnv string        `yaml:"api_key_from_env,omitempty"`
	Timeout       time.Duration `yaml:"timeout"`
	LogLevel      string        `yaml:"log_level"`
	LogFormat     string        `yaml:"log_format"`
	Audit         AuditConfig   `yaml:"audit"`
}

// AuditConfig enables tool call events on NATS when NATSURL is set.
type AuditConfig struct {
	NATSURL      string `yaml:"nats_url"`
	NATSUser     string `yaml:"nats_user,omitempty"`
	NATSPassword string `yaml:"nats_password,omitempty"`
	Subject      string `yaml:"subject"`
}

func defaultConfig() Config {
	return Config{
		Timeout:   testrailsdk.DefaultTimeout,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// loadConfigFile reads path, or when path is empty tries ./.testrail-mcp/config.yaml
// then ~/.testrail-mcp/config.yaml. Returns (empty, "", nil) when no file exists.
func loadConfigFile(path string) (Config, string, error) {
	try := []string{path}
	if path == "" {
		try = nil
		if cwd, err := os.Getwd(); err == nil {
			try = append(try, filepath.Join(cwd, configDir, "config.yaml"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			try = append(try, filepath.Join(home, configDir, "config.yaml"))
		}
	}
	for _, p := range try {
		data, err := os.ReadFile(p)
		if err != nil {
			if os.IsNotExist(err) && path == "" {
				continue
			}
			return Config{}, "", err
		}
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, "", fmt.Errorf("%s: %w", p, err)
		}
		return cfg, p, nil
	}
	return Config{}, "", nil
}

// envConfig reads the TESTRAIL_* variables through getenv.
func envConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		URL:       getenv("TESTRAIL_URL"),
		Username:  getenv("TESTRAIL_USERNAME"),
		APIKey:    getenv("TESTRAIL_API_KEY"),
		LogLevel:  getenv("TESTRAIL_LOG_LEVEL"),
		LogFormat: getenv("TESTRAIL_LOG_FORMAT"),
		Audit: AuditConfig{
			NATSURL: getenv("TESTRAIL_AUDIT_NATS_URL"),
			Subject: getenv("TESTRAIL_AUDIT_SUBJECT"),
		},
	}
	if v := getenv("TESTRAIL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("TESTRAIL_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// resolveConfig merges defaults, file, env and flags; later layers win for
// every field they set.
func resolveConfig(file, env, flags Config, getenv func(string) string) (Config, error) {
	cfg := defaultConfig()
	for _, layer := range []Config{file, env, flags} {
		if err := mergo.Merge(&cfg, layer, mergo.WithOverride); err != nil {
			return Config{}, fmt.Errorf("merge config: %w", err)
		}
	}
	cfg.URL = strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	cfg.Username = strings.TrimSpace(cfg.Username)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" && cfg.APIKeyFromEnv != "" {
		cfg.APIKey = strings.TrimSpace(getenv(strings.TrimSpace(cfg.APIKeyFromEnv)))
	}
	return cfg, cfg.Validate()
}

// Validate reports every missing or malformed setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.URL == "" {
		errs = append(errs, errors.New("url is required (--url, TESTRAIL_URL or url in config)"))
	} else if u, err := url.Parse(c.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("url %q must be an http(s) URL", c.URL))
	}
	if c.Username == "" {
		errs = append(errs, errors.New("username is required (--username, TESTRAIL_USERNAME or username in config)"))
	}
	if c.APIKey == "" {
		errs = append(errs, errors.New("api key is required (--api-key, TESTRAIL_API_KEY, api_key or api_key_from_env in config)"))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// clientConfig maps c onto the upstream client settings.
func (c Config) clientConfig() testrailsdk.Config {
	return testrailsdk.Config{
		BaseURL:  c.URL,
		Username: c.Username,
		APIKey:   c.APIKey,
		Timeout:  c.Timeout,
	}
}
