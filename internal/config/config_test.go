package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultLoginURL, cfg.API.LoginURL)
	assert.Equal(t, DefaultPoliciesURL, cfg.API.PoliciesURL)
	assert.Equal(t, 10, cfg.API.PageSize)
	assert.Zero(t, cfg.API.Timeout)
	assert.Equal(t, "markdown", cfg.Output.DefaultFormat)
	assert.Equal(t, "warn", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("missing file keeps defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("empty path keeps defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("overrides from yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `api:
  login_url: https://example.test/v1/login
  page_size: 50
  timeout: 30s
output:
  default_format: csv
logging:
  level: debug
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "https://example.test/v1/login", cfg.API.LoginURL)
		assert.Equal(t, DefaultPoliciesURL, cfg.API.PoliciesURL)
		assert.Equal(t, 50, cfg.API.PageSize)
		assert.Equal(t, 30*time.Second, cfg.API.Timeout)
		assert.Equal(t, "csv", cfg.Output.DefaultFormat)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0600))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing config")
	})
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLoginURL:     "http://localhost:8080/login",
		EnvPoliciesURL:  "http://localhost:8080/policies",
		EnvPageSize:     " 25 ",
		EnvTimeout:      "5s",
		EnvOutputFormat: "csv",
		EnvLogLevel:     "error",
		EnvLogFormat:    "json",
		EnvLogFile:      "/tmp/export.log",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	cfg.ApplyEnv(lookup)

	assert.Equal(t, "http://localhost:8080/login", cfg.API.LoginURL)
	assert.Equal(t, "http://localhost:8080/policies", cfg.API.PoliciesURL)
	assert.Equal(t, 25, cfg.API.PageSize)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "csv", cfg.Output.DefaultFormat)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/tmp/export.log", cfg.Logging.File)
}

func TestApplyEnv_IgnoresInvalidNumbers(t *testing.T) {
	lookup := func(k string) (string, bool) {
		switch k {
		case EnvPageSize:
			return "many", true
		case EnvTimeout:
			return "soon", true
		}
		return "", false
	}

	cfg := Default()
	cfg.ApplyEnv(lookup)
	assert.Equal(t, DefaultPageSize, cfg.API.PageSize)
	assert.Zero(t, cfg.API.Timeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty login url", mutate: func(c *Config) { c.API.LoginURL = "" }, wantErr: "api.login_url must be set"},
		{name: "ftp scheme", mutate: func(c *Config) { c.API.PoliciesURL = "ftp://x/y" }, wantErr: "http or https"},
		{name: "no host", mutate: func(c *Config) { c.API.PoliciesURL = "https:///path" }, wantErr: "has no host"},
		{name: "zero page size", mutate: func(c *Config) { c.API.PageSize = 0 }, wantErr: "api.page_size"},
		{name: "huge page size", mutate: func(c *Config) { c.API.PageSize = MaxPageSize + 1 }, wantErr: "api.page_size"},
		{name: "negative timeout", mutate: func(c *Config) { c.API.Timeout = -time.Second }, wantErr: "api.timeout"},
		{name: "csv default format", mutate: func(c *Config) { c.Output.DefaultFormat = "CSV" }},
		{name: "xml default format", mutate: func(c *Config) { c.Output.DefaultFormat = "xml" }, wantErr: "output.default_format"},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolvePath(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "/env/config.yaml")
		assert.Equal(t, "/flag/config.yaml", ResolvePath("/flag/config.yaml"))
	})

	t.Run("env path", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "/env/config.yaml")
		assert.Equal(t, "/env/config.yaml", ResolvePath(""))
	})

	t.Run("home override", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		t.Setenv(EnvHome, "/opt/pe")
		assert.Equal(t, filepath.Join("/opt/pe", "config.yaml"), ResolvePath(""))
	})
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.API.PageSize = 50
	cfg.API.Timeout = 30 * time.Second
	cfg.Output.DefaultFormat = "csv"
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSave_EmptyPath(t *testing.T) {
	assert.Error(t, Default().Save(""))
}
