package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthrokinetix/akx-engine/internal/config"
)

// validConfig returns a Config that passes Validate with all required fields set.
func validConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return cfg
}

func TestConfig_Validate_Defaults(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Log.Level = "verbose"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestConfig_Validate_InvalidLogFormat(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Log.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")
}

func TestConfig_Validate_DatabaseDisabledSkipsChecks(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Database.Enabled = false
	cfg.Database.Host = ""
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_DatabaseEnabledRequiresFields(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Database.Enabled = true
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.host")

	cfg.Database.Host = "localhost"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.user")

	cfg.Database.User = "akx"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.db_name")

	cfg.Database.DBName = "akx"
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_RedisEnabledRequiresAddr(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis.addr")
}

func TestConfig_Validate_StorageEnabledRequiresEndpoint(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Storage.Enabled = true
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.endpoint")
}

func TestApplyDefaults(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "english", cfg.Engine.DefaultLanguage)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Redis.DefaultTTL)
	assert.Equal(t, "akx:", cfg.Redis.KeyPrefix)
	assert.Equal(t, "akx-results", cfg.Storage.Bucket)
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{}
	cfg.Log.Level = "debug"
	cfg.Redis.KeyPrefix = "custom:"
	config.ApplyDefaults(cfg)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "custom:", cfg.Redis.KeyPrefix)
}

func TestLoad_ReadsYAMLFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "akx.yaml")
	yaml := []byte("log:\n  level: debug\nengine:\n  seed: 42\nredis:\n  enabled: true\n  addr: \"redis:6379\"\n")
	require.NoError(t, os.WriteFile(path, yaml, 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.EqualValues(t, 42, cfg.Engine.Seed)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	// Defaults filled in around explicit settings.
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "akx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: shouty\n"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromEnv_DefaultsOnly(t *testing.T) {
	cfg, err := config.LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestMustLoad_PanicsOnMissingFile(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		config.MustLoad(filepath.Join(t.TempDir(), "absent.yaml"))
	})
}
