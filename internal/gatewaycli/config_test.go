package gatewaycli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/contenox/testrail-mcp/testrailsdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapEnv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestUnit_ResolveConfig_Precedence(t *testing.T) {
	file := Config{
		URL:      "https://file.testrail.io/",
		Username: "file-user",
		APIKey:   "file-key",
		Timeout:  10 * time.Second,
		LogLevel: "debug",
		Audit:    AuditConfig{NATSURL: "nats://file:4222", Subject: "file.subject"},
	}
	env := Config{Username: "env-user", APIKey: "env-key"}
	flags := Config{APIKey: "flag-key"}

	cfg, err := resolveConfig(file, env, flags, mapEnv(nil))
	require.NoError(t, err)

	assert.Equal(t, "https://file.testrail.io", cfg.URL)
	assert.Equal(t, "env-user", cfg.Username)
	assert.Equal(t, "flag-key", cfg.APIKey)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "nats://file:4222", cfg.Audit.NATSURL)
	assert.Equal(t, "file.subject", cfg.Audit.Subject)
}

func TestUnit_ResolveConfig_Defaults(t *testing.T) {
	cfg, err := resolveConfig(Config{}, Config{URL: "http://localhost:8080", Username: "u", APIKey: "k"}, Config{}, mapEnv(nil))
	require.NoError(t, err)

	assert.Equal(t, testrailsdk.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.Audit.NATSURL)
}

func TestUnit_ResolveConfig_APIKeyFromEnv(t *testing.T) {
	file := Config{URL: "https://x.testrail.io", Username: "u", APIKeyFromEnv: "MY_TESTRAIL_KEY"}

	cfg, err := resolveConfig(file, Config{}, Config{}, mapEnv(map[string]string{"MY_TESTRAIL_KEY": " secret "}))
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.APIKey)

	cfg, err = resolveConfig(file, Config{}, Config{APIKey: "explicit"}, mapEnv(map[string]string{"MY_TESTRAIL_KEY": "secret"}))
	require.NoError(t, err)
	assert.Equal(t, "explicit", cfg.APIKey)
}

func TestUnit_ResolveConfig_ReportsAllMissingSettings(t *testing.T) {
	_, err := resolveConfig(Config{}, Config{}, Config{}, mapEnv(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "url is required")
	assert.Contains(t, err.Error(), "username is required")
	assert.Contains(t, err.Error(), "api key is required")
}

func TestUnit_Config_Validate(t *testing.T) {
	valid := Config{URL: "https://x.testrail.io", Username: "u", APIKey: "k", Timeout: time.Second, LogLevel: "warn", LogFormat: "json"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"relative url", func(c *Config) { c.URL = "x.testrail.io" }, "must be an http(s) URL"},
		{"ftp url", func(c *Config) { c.URL = "ftp://x.testrail.io" }, "must be an http(s) URL"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout must be positive"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestUnit_EnvConfig(t *testing.T) {
	cfg, err := envConfig(mapEnv(map[string]string{
		"TESTRAIL_URL":            "https://env.testrail.io",
		"TESTRAIL_USERNAME":       "env@example.com",
		"TESTRAIL_API_KEY":        "env-key",
		"TESTRAIL_TIMEOUT":        "45s",
		"TESTRAIL_LOG_LEVEL":      "debug",
		"TESTRAIL_AUDIT_NATS_URL": "nats://env:4222",
	}))
	require.NoError(t, err)
	assert.Equal(t, "https://env.testrail.io", cfg.URL)
	assert.Equal(t, "env@example.com", cfg.Username)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "nats://env:4222", cfg.Audit.NATSURL)

	_, err = envConfig(mapEnv(map[string]string{"TESTRAIL_TIMEOUT": "soon"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TESTRAIL_TIMEOUT")
}

func TestUnit_LoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
url: https://yaml.testrail.io
username: yaml@example.com
api_key_from_env: YAML_KEY
timeout: 1m30s
log_format: json
audit:
  nats_url: nats://localhost:4222
  subject: qa.tools
`), 0o600))

	cfg, got, err := loadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, "https://yaml.testrail.io", cfg.URL)
	assert.Equal(t, "yaml@example.com", cfg.Username)
	assert.Equal(t, "YAML_KEY", cfg.APIKeyFromEnv)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "nats://localhost:4222", cfg.Audit.NATSURL)
	assert.Equal(t, "qa.tools", cfg.Audit.Subject)
}

func TestUnit_LoadConfigFile_ExplicitPathMustExist(t *testing.T) {
	_, _, err := loadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestUnit_LoadConfigFile_InvalidYAMLNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("url: [unterminated"), 0o600))

	_, _, err := loadConfigFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}
