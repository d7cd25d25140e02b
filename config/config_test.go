package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webasoo/specview/swagger"
)

func load(t *testing.T, args []string, configFile string) (Config, error) {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))

	v, err := NewViper(fs, configFile)
	require.NoError(t, err)
	return Load(v)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t, nil, "")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "./static/openapi.yaml", cfg.SpecFile)
	assert.True(t, cfg.WatchSpec)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, swagger.DefaultSpecPath, cfg.Viewer.SpecPath)
	assert.True(t, cfg.Viewer.DeepLinking)
	assert.Equal(t, "StandaloneLayout", cfg.Viewer.Layout)
	assert.Empty(t, cfg.Viewer.SpecURL)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "specview.yaml")
	content := `
listen_addr: ":7000"
log_level: warn
log_format: json
cors_origins:
  - https://a.example.com
  - https://b.example.com
viewer:
  title: From File
  layout: BaseLayout
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

	t.Setenv("SPECVIEW_LOG_LEVEL", "debug")
	t.Setenv("SPECVIEW_VIEWER_TITLE", "From Env")

	cfg, err := load(t, []string{"--listen", ":9000"}, configFile)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr, "flag wins over file")
	assert.Equal(t, "debug", cfg.LogLevel, "env wins over file")
	assert.Equal(t, "From Env", cfg.Viewer.Title, "env wins over nested file key")
	assert.Equal(t, "json", cfg.LogFormat, "file wins over default")
	assert.Equal(t, "BaseLayout", cfg.Viewer.Layout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}

func TestLoadTOMLFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "specview.toml")
	content := `
spec_file = "/srv/api/openapi.yaml"

[viewer]
spec_url = "https://cdn.example.com/openapi.yaml"
deep_linking = false
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

	cfg, err := load(t, nil, configFile)
	require.NoError(t, err)
	assert.Equal(t, "/srv/api/openapi.yaml", cfg.SpecFile)
	assert.Equal(t, "https://cdn.example.com/openapi.yaml", cfg.Viewer.SpecURL)
	assert.False(t, cfg.Viewer.DeepLinking)

	opts := cfg.Viewer.Options()
	require.NotNil(t, opts.DeepLinking)
	assert.False(t, *opts.DeepLinking)
}

func TestLoadCommaSeparatedOrigins(t *testing.T) {
	t.Setenv("SPECVIEW_CORS_ORIGINS", "https://a.example.com, https://b.example.com,")

	cfg, err := load(t, nil, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}

func TestLoadMissingConfigFile(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)

	_, err := NewViper(fs, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	_, err := load(t, []string{
		"--listen", "",
		"--log-format", "xml",
		"--spec-path", "static/openapi.yaml",
		"--spec-url", "/relative/openapi.yaml",
		"--layout", "",
	}, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))

	for _, want := range []string{"listen_addr", "log_format", "viewer.spec_path", "viewer.spec_url", "viewer.layout"} {
		assert.Contains(t, err.Error(), want)
	}
}
