package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvFileFromArgs(t *testing.T) {
	assert.Equal(t, ".env", envFileFromArgs([]string{"serve"}))
	assert.Equal(t, "prod.env", envFileFromArgs([]string{"--env-file", "prod.env", "serve"}))
	assert.Equal(t, "ci.env", envFileFromArgs([]string{"serve", "--env-file=ci.env"}))
}

func TestLoadEnvKeepsExistingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LEADS_ADDR=:9999\nLEADS_TEST_ONLY=from-file\n"), 0o600))
	t.Setenv("LEADS_ADDR", ":7000")
	t.Setenv("LEADS_TEST_ONLY", "")
	require.NoError(t, os.Unsetenv("LEADS_TEST_ONLY"))

	loadEnv(path)
	loadEnv(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, ":7000", os.Getenv("LEADS_ADDR"))
	assert.Equal(t, "from-file", os.Getenv("LEADS_TEST_ONLY"))
}

func TestParseServeFlags(t *testing.T) {
	t.Setenv("LEADS_SESSION_TTL", "10m")
	t.Setenv("LEADS_ANALYTICS_URL", "")

	var app cli
	parser, err := kong.New(&app, kong.Name("leadsd"))
	require.NoError(t, err)
	kctx, err := parser.Parse([]string{"serve", "--transport", "fiber", "--addr", ":9090", "--fixtures", "leads.yaml"})
	require.NoError(t, err)

	assert.Equal(t, "serve", kctx.Command())
	assert.Equal(t, ":9090", app.Serve.Addr)
	assert.Equal(t, "fiber", app.Serve.Transport)
	assert.Equal(t, 10*time.Minute, app.Serve.SessionTTL)
	assert.Equal(t, time.Minute, app.Serve.SweepInterval)
	assert.Equal(t, "info", app.LogLevel)
	assert.True(t, filepath.IsAbs(app.Serve.Source.Fixtures))
}

func TestParseRejectsUnknownTransport(t *testing.T) {
	var app cli
	parser, err := kong.New(&app, kong.Name("leadsd"))
	require.NoError(t, err)
	_, err = parser.Parse([]string{"serve", "--transport", "grpc"})
	require.Error(t, err)
}
