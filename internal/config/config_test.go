package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://api.github.com", cfg.Remote.APIURL)
	assert.Equal(t, 900*1024, cfg.Sync.MaxFileBytes)
	assert.Equal(t, 5*time.Minute, cfg.Sync.Interval)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{name: "bad url", mutate: func(c *Config) { c.Remote.APIURL = "not a url" }, wantField: "remote.api_url"},
		{name: "empty db path", mutate: func(c *Config) { c.DBPath = "" }, wantField: "db_path"},
		{name: "zero batch", mutate: func(c *Config) { c.Remote.BatchSize = 0 }, wantField: "remote.batch_size"},
		{name: "tiny file limit", mutate: func(c *Config) { c.Sync.MaxFileBytes = 100 }, wantField: "sync.max_file_bytes"},
		{name: "unknown resolution", mutate: func(c *Config) { c.Sync.Resolution = "merge" }, wantField: "sync.resolution"},
		{name: "tolerance too large", mutate: func(c *Config) { c.Sync.VerifyTolerance = 1.5 }, wantField: "sync.verify_tolerance"},
		{name: "interval too short", mutate: func(c *Config) { c.Sync.Interval = time.Second }, wantField: "sync.interval"},
		{name: "unknown log level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantField: "log.level"},
		{name: "unknown log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantField: "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.NotEmpty(t, verr.Message)
		})
	}
}

func TestSaveAndLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Remote.Username = "reader"
	cfg.Sync.Compress = true
	cfg.Sync.Interval = 15 * time.Minute
	cfg.Token = "ghp_secret_must_not_be_saved"
	require.NoError(t, SaveToFile(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "ghp_secret")
	assert.Contains(t, string(data), "interval: 15m0s")

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "reader", loaded.Remote.Username)
	assert.True(t, loaded.Sync.Compress)
	assert.Equal(t, 15*time.Minute, loaded.Sync.Interval)
	assert.Empty(t, loaded.Token)
}

func TestLoadFromFile_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sync:\n  compress: true\n"), 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.Sync.Compress)
	assert.Equal(t, 10, cfg.Remote.BatchSize)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFromFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("remote: [unclosed"), 0o600))
	_, err = LoadFromFile(broken)
	require.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("log:\n  level: loud\n"), 0o600))
	_, err = LoadFromFile(invalid)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "log.level", verr.Field)
}

func TestLoad_EnvOverrides(t *testing.T) {
	// .env ищется в рабочем каталоге
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("remote:\n  username: from-file\n"), 0o600))

	t.Setenv(EnvToken, "ghp_from_env_0123456789")
	t.Setenv(EnvUser, "from-env")
	t.Setenv(EnvDB, "/tmp/novelsync-test.db")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvCompress, "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ghp_from_env_0123456789", cfg.Token)
	assert.Equal(t, "from-env", cfg.Remote.Username)
	assert.Equal(t, "/tmp/novelsync-test.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Sync.Compress)
}

func TestLoad_DotEnvAndMissingFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(".env", []byte("NOVELSYNC_PASSPHRASE=from-dotenv-file\n"), 0o600))
	t.Setenv(EnvPassphrase, "")
	// godotenv не перезаписывает заданные переменные, поэтому снимаем ее
	require.NoError(t, os.Unsetenv(EnvPassphrase))

	cfg, err := Load(filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv-file", cfg.Passphrase)
	assert.Equal(t, Default().Remote, cfg.Remote)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvCompress, "maybe")

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvCompress)
}
