package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "docketApp", cfg.AppName)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "docket", cfg.DB.DBName)
	assert.Equal(t, logger.Warn, cfg.DB.LogLevel)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.Auth.Enabled)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRate)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_NAME", "registryApp")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_CONN_MAX_LIFETIME", "90s")
	t.Setenv("DB_LOG_LEVEL", "silent")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("JWT_SIGNING_KEY", "k")
	t.Setenv("TRACING_SAMPLE_RATE", "0.25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "registryApp", cfg.AppName)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 7, cfg.DB.MaxOpenConns)
	assert.Equal(t, 90*time.Second, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, logger.Silent, cfg.DB.LogLevel)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, 0.25, cfg.Tracing.SampleRate)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("DB_MAX_IDLE_CONNS", "many")
	t.Setenv("AUTH_ENABLED", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.DB.MaxIdleConns)
	assert.False(t, cfg.Auth.Enabled)
}

func TestLoad_AuthRequiresKey(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("JWT_SIGNING_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_GetDSN(t *testing.T) {
	c := DBConfig{Host: "h", Port: "1", User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=d sslmode=disable", c.GetDSN())
}

func TestLogConfig_OmitsSecrets(t *testing.T) {
	cfg := &Config{DB: DBConfig{Password: "hunter2"}, Auth: AuthConfig{SigningKey: "s3cret"}}
	for _, f := range cfg.LogConfig() {
		assert.NotEqual(t, "hunter2", f.String)
		assert.NotEqual(t, "s3cret", f.String)
	}
}

func TestLoad_ReportsMissingEnvFileWithoutPrinting(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.EnvFileLoaded)
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("METRICS_PREFIX=fromfile\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("METRICS_PREFIX", "")
	os.Unsetenv("METRICS_PREFIX")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.EnvFileLoaded)
	assert.Equal(t, "fromfile", cfg.Metrics.Prefix)
}
