package initializers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "decorshop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
dbDriver: sqlite
sessionSecret: from-file
sessionTtl: 2h
corsAllowedOrigins: ["https://shop.example"]
`), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SESSION_SECRET", "from-env")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("WEBHOOK_TIMEOUT", "750ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "from-env", cfg.SessionSecret)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 750*time.Millisecond, cfg.WebhookTimeout)
	assert.Equal(t, []string{"https://shop.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "static/uploads", cfg.UploadDir)
}

func TestLoadConfigCORSList(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfigBadValues(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("SESSION_TTL", "forever")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "SESSION_TTL")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.SessionSecret = "s"
		return cfg
	}
	require.NoError(t, valid().Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing secret", func(c *Config) { c.SessionSecret = "" }, "SESSION_SECRET"},
		{"unknown db driver", func(c *Config) { c.DBDriver = "oracle" }, "DB_DRIVER"},
		{"unknown storage driver", func(c *Config) { c.StorageDriver = "ftp" }, "STORAGE_DRIVER"},
		{"s3 without bucket", func(c *Config) { c.StorageDriver = "s3" }, "S3_BUCKET"},
		{"zero upload cap", func(c *Config) { c.MaxUploadBytes = 0 }, "MAX_UPLOAD_BYTES"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.want)
		})
	}
}
