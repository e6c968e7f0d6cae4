package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullYAML = `
server:
  host: "127.0.0.1"
  port: 8081
  shutdown_timeout: 5s
  max_upload_size_mb: 20
processing:
  top_n: 5
  cache_ttl: 30m
  cleanup_interval: 1m
  extra_stopwords_file: "extra.txt"
output:
  dir: "reports"
  font_path: "/fonts/Vazirmatn.ttf"
  render: false
  xlsx: true
  wordcloud:
    width: 640
    height: 480
logging:
  level: "debug"
  format: "json"
`

// partialYAML задает только часть полей, остальные берутся по умолчанию.
const partialYAML = `
processing:
  top_n: 3
`

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func TestLoadFromYAML(t *testing.T) {
	t.Run("success with full config", func(t *testing.T) {
		path := createTempConfigFile(t, fullYAML)
		cfg := defaultConfig()
		err := loadFromYAML(path, cfg)
		require.NoError(t, err)

		assert.Equal(t, "127.0.0.1", cfg.Server.Host)
		assert.Equal(t, 8081, cfg.Server.Port)
		assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, "127.0.0.1:8081", cfg.Address())
		assert.Equal(t, int64(20<<20), cfg.MaxUploadBytes())

		assert.Equal(t, 5, cfg.Processing.TopN)
		assert.Equal(t, 30*time.Minute, cfg.Processing.CacheTTL)
		assert.Equal(t, time.Minute, cfg.Processing.CleanupInterval)
		assert.Equal(t, "extra.txt", cfg.Processing.ExtraStopwordsFile)

		assert.Equal(t, "reports", cfg.Output.Dir)
		assert.Equal(t, "/fonts/Vazirmatn.ttf", cfg.Output.FontPath)
		assert.False(t, cfg.Output.Render)
		assert.True(t, cfg.Output.XLSX)
		assert.Equal(t, 640, cfg.Output.Wordcloud.Width)
		assert.Equal(t, DefaultWordcloudWords, cfg.Output.Wordcloud.MaxWords)

		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
	})

	t.Run("partial config keeps defaults", func(t *testing.T) {
		cfg := defaultConfig()
		require.NoError(t, loadFromYAML(createTempConfigFile(t, partialYAML), cfg))

		assert.Equal(t, 3, cfg.Processing.TopN)
		assert.Equal(t, DefaultCacheTTL, cfg.Processing.CacheTTL)
		assert.Equal(t, DefaultServerPort, cfg.Server.Port)
		assert.True(t, cfg.Output.Render)
	})

	t.Run("file not found is not an error", func(t *testing.T) {
		cfg := defaultConfig()
		err := loadFromYAML("non_existent_file.yml", cfg)
		assert.NoError(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := createTempConfigFile(t, "invalid yaml: {")
		cfg := defaultConfig()
		err := loadFromYAML(path, cfg)
		assert.Error(t, err)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("env overrides yaml", func(t *testing.T) {
		t.Chdir(t.TempDir())
		path := createTempConfigFile(t, fullYAML)
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("CHATSTATS_TOP_N", "7")
		t.Setenv("CHATSTATS_OUTPUT_DIR", "/tmp/out")
		t.Setenv("CHATSTATS_CACHE_TTL", "2h")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, 7, cfg.Processing.TopN)
		assert.Equal(t, "/tmp/out", cfg.Output.Dir)
		assert.Equal(t, 2*time.Hour, cfg.Processing.CacheTTL)
		assert.Equal(t, "127.0.0.1", cfg.Server.Host)
		require.NoError(t, cfg.Validate())
	})

	t.Run("dotenv file is loaded", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CHATSTATS_FONT_PATH=/fonts/from-env.ttf\n"), 0644))
		t.Cleanup(func() { os.Unsetenv("CHATSTATS_FONT_PATH") })

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "/fonts/from-env.ttf", cfg.Output.FontPath)
	})

	t.Run("invalid env value", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("CHATSTATS_TOP_N", "many")

		_, err := LoadConfig("")
		assert.Error(t, err)
	})

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, Default().Validate())
	})
}

func TestValidate(t *testing.T) {
	validConfig := func(t *testing.T) *Config {
		cfg := defaultConfig()
		err := loadFromYAML(createTempConfigFile(t, fullYAML), cfg)
		require.NoError(t, err)
		return cfg
	}

	testCases := []struct {
		name    string
		mutator func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"invalid port", func(c *Config) { c.Server.Port = 0 }, true},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, true},
		{"invalid shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, true},
		{"invalid upload size", func(c *Config) { c.Server.MaxUploadSizeMB = 0 }, true},
		{"invalid top_n", func(c *Config) { c.Processing.TopN = 0 }, true},
		{"invalid cache_ttl", func(c *Config) { c.Processing.CacheTTL = 0 }, true},
		{"invalid cleanup_interval", func(c *Config) { c.Processing.CleanupInterval = -time.Second }, true},
		{"empty output dir", func(c *Config) { c.Output.Dir = "" }, true},
		{"invalid wordcloud size", func(c *Config) { c.Output.Wordcloud.Height = 0 }, true},
		{"invalid logging level", func(c *Config) { c.Logging.Level = "wrong" }, true},
		{"invalid logging format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig(t)
			tc.mutator(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
