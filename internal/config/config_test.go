package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "wsecho.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(envConfigPath, "")

	logger := zerolog.Nop()
	cfg, path, err := Load(&logger, "")
	require.NoError(t, err)
	require.Equal(t, "wsecho.yaml", filepath.Base(path))
	require.Equal(t, Default(), cfg)
	require.Equal(t, DefaultReadLimit, cfg.Server.ReadLimit)
	require.NoError(t, cfg.Validate())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: "127.0.0.1:9000"
  shutdown_timeout: 2s
  label: "echo: "
client:
  greeting: "hi"
  timeout: 3s
`)
	t.Setenv("WSECHO_SERVER_ADDR", "127.0.0.1:9100")
	t.Setenv("WSECHO_LOG_LEVEL", "debug")

	cfg, _, err := Load(nil, path)
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9100", cfg.Server.Addr)
	require.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, "echo: ", cfg.Server.Label)
	require.Equal(t, "hi", cfg.Client.Greeting)
	require.Equal(t, 3*time.Second, cfg.Client.Timeout)
	require.Equal(t, DefaultClientURL, cfg.Client.URL)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, _, err := Load(nil, filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := writeConfig(t, "server: [unterminated")

	_, _, err := Load(nil, path)
	require.Error(t, err)
}

func TestUpdateFromOnlyNonZero(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{
		Server: ServerConfig{Addr: ":0"},
		Client: ClientConfig{Timeout: time.Second},
	})

	require.Equal(t, ":0", cfg.Server.Addr)
	require.Equal(t, time.Second, cfg.Client.Timeout)
	require.Equal(t, DefaultGreeting, cfg.Client.Greeting)
	require.Equal(t, Default().Server.Label, cfg.Server.Label)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Server.Addr = ""
	cfg.Client.Timeout = -time.Second

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "server.addr")
	require.Contains(t, err.Error(), "client.timeout")
}

func TestMarshalRoundTripsThroughLoad(t *testing.T) {
	cfg := Default()
	cfg.Server.Addr = "127.0.0.1:7000"

	data, err := Marshal(cfg)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))
	require.Contains(t, raw, "server")

	path := writeConfig(t, string(data))
	loaded, _, err := Load(nil, path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:7000", loaded.Server.Addr)
}
