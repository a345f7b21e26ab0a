package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ostafen/fileinfo/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fileinfo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	def := config.Default()
	require.Equal(t, &def, cfg)
	require.Equal(t, "127.0.0.1:8080", cfg.Addr)
	require.Empty(t, cfg.Root)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
addr: 127.0.0.1:9000
root: /srv/data
log_level: debug
timeout: 1500ms
parallelism: 8
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, &config.Config{
		Addr:        "127.0.0.1:9000",
		Root:        "/srv/data",
		LogLevel:    "debug",
		Timeout:     1500 * time.Millisecond,
		Parallelism: 8,
	}, cfg)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, ""))
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:8080", cfg.Addr)
}

func TestLoadPartialFile(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "root: /tmp\n"))
	require.NoError(t, err)
	require.Equal(t, "/tmp", cfg.Root)
	require.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "addr: \":7000\"\nparallelism: 2\n")

	t.Setenv("FILEINFO_ADDR", ":7001")
	t.Setenv("FILEINFO_TIMEOUT", "30s")
	t.Setenv("FILEINFO_PARALLELISM", "16")
	t.Setenv("FILEINFO_LOG_LEVEL", "WARN")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, ":7001", cfg.Addr)
	require.Equal(t, 30*time.Second, cfg.Timeout)
	require.Equal(t, 16, cfg.Parallelism)
	require.Equal(t, "WARN", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := config.Load(writeConfig(t, "adress: \":80\"\n"))
		require.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := config.Load(writeConfig(t, "timeout: soon\n"))
		require.Error(t, err)
	})

	t.Run("bad env", func(t *testing.T) {
		t.Setenv("FILEINFO_PARALLELISM", "many")

		_, err := config.Load("")
		require.ErrorContains(t, err, "FILEINFO_PARALLELISM")
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := config.Load(writeConfig(t, "parallelism: 0\n"))
		require.ErrorContains(t, err, "parallelism")

		_, err = config.Load(writeConfig(t, "timeout: -1s\n"))
		require.ErrorContains(t, err, "timeout")

		_, err = config.Load(writeConfig(t, "allow_origins: [example.com]\n"))
		require.ErrorContains(t, err, "invalid origin")
	})
}

func TestLoadAllowOrigins(t *testing.T) {
	path := writeConfig(t, "allow_origins:\n  - https://a.example\n  - \"*\"\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"https://a.example", "*"}, cfg.AllowOrigins)

	t.Setenv("FILEINFO_ALLOW_ORIGINS", " http://localhost:3000 ,, https://b.example")

	cfg, err = config.Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"http://localhost:3000", "https://b.example"}, cfg.AllowOrigins)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.env")
	require.NoError(t, os.WriteFile(path, []byte("FILEINFO_DOTENV_NEW=from-file\nFILEINFO_DOTENV_KEEP=from-file\n"), 0644))

	t.Setenv("FILEINFO_DOTENV_KEEP", "from-env")
	t.Cleanup(func() { os.Unsetenv("FILEINFO_DOTENV_NEW") })

	require.NoError(t, config.LoadDotEnv(path))
	require.Equal(t, "from-file", os.Getenv("FILEINFO_DOTENV_NEW"))
	require.Equal(t, "from-env", os.Getenv("FILEINFO_DOTENV_KEEP"))

	err := config.LoadDotEnv(filepath.Join(dir, "missing.env"))
	require.ErrorIs(t, err, os.ErrNotExist)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// no .env in dir
	require.NoError(t, config.LoadDotEnv(""))
}
