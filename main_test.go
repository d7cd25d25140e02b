package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderToStdout(t *testing.T) {
	out, err := execute(t, "render", "--origin", "https://docs.example.com")
	require.NoError(t, err)

	assert.Contains(t, out, `var specUrl = "https://docs.example.com/static/openapi.yaml";`)
	assert.Contains(t, out, "deepLinking: true,")
	assert.Contains(t, out, `layout: "StandaloneLayout",`)
}

func TestRenderBrowserDerived(t *testing.T) {
	out, err := execute(t, "render", "--spec-path", "/api/openapi.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, `window.location.protocol + "//" + window.location.host + "/api/openapi.yaml"`)
}

func TestRenderToFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "swagger", "swagger-initializer.js")

	_, err := execute(t, "render", "--origin", "http://localhost:8080", "--out", dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"http://localhost:8080/static/openapi.yaml"`)
}

func TestRenderRejectsBadOrigin(t *testing.T) {
	_, err := execute(t, "render", "--origin", "docs.example.com")
	assert.Error(t, err)
}

func TestRenderSpecURL(t *testing.T) {
	out, err := execute(t, "render", "--spec-url", "https://cdn.example.com/openapi.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, `var specUrl = "https://cdn.example.com/openapi.yaml";`)
}

func TestRenderRejectsOriginWithSpecURL(t *testing.T) {
	out, err := execute(t, "render",
		"--origin", "https://docs.example.com",
		"--spec-url", "https://cdn.example.com/openapi.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--origin")
	assert.Empty(t, out)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}
