package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/require"

	"github.com/rojifi/rojifi-docs/internal/docs"
)

const testConfig = `
http:
  addr: "127.0.0.1:0"
docs:
  env: production
runner:
  delay: 1ms
logging:
  level: error
  format: text
`

func writeTestConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))
	return path
}

func runCommand(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	args = append([]string{"--config", writeTestConfig(t)}, args...)
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestResolveCommand(t *testing.T) {
	code, stdout, stderr := runCommand(t, "", "resolve")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, `"version": "v1"`)
	require.Contains(t, stdout, `"id": "introduction"`)

	code, stdout, stderr = runCommand(t, "", "resolve", "/docs/v1/guides/authentication", "--markdown")
	require.Equal(t, 0, code, stderr)
	require.True(t, strings.HasPrefix(stdout, "# Authentication\n"))
	require.Contains(t, stdout, "```bash")
}

func TestResolveCommandErrors(t *testing.T) {
	code, _, stderr := runCommand(t, "", "resolve", "/docs/v1/guides/nonexistent-slug")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "page not found")

	code, _, stderr = runCommand(t, "", "resolve", "/blog")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "invalid docs path")
}

func TestSearchCommand(t *testing.T) {
	code, stdout, stderr := runCommand(t, "", "search", "wallet", "--limit", "1")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "1. Crypto Wallet (Guides > Stable OS)")
	require.Contains(t, stdout, "/docs/v1/guides/crypto-wallet")
	require.Contains(t, stdout, "more\n")

	code, stdout, _ = runCommand(t, "", "search", "virtual")
	require.Equal(t, 0, code)
	require.Equal(t, "No results\n", stdout)

	code, stdout, _ = runCommand(t, "", "--dev", "search", "virtual")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "Virtual Accounts [DEV]")
}

func TestExportCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "export", "content.json")

	code, _, stderr := runCommand(t, "", "export", "--out", out)
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	store, err := docs.LoadJSON(data)
	require.NoError(t, err)
	require.Equal(t, []string{"v1"}, store.Versions())
}

func TestBrowseCommand(t *testing.T) {
	input := strings.Join([]string{"help", "?wallet", "1", "ctrl+k", "menu", "bogus", "quit", "/docs/v1/sdks"}, "\n")

	code, stdout, stderr := runCommand(t, input, "browse")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "== Documentation (Guides > Introduction) ==")
	require.Contains(t, stdout, "== Crypto Wallet (Guides > Stable OS) ==")
	require.Contains(t, stdout, "Stable OS (")
	require.Contains(t, stdout, `Unknown command "bogus"`)
	require.NotContains(t, stdout, "Server-side SDKs")

	require.Contains(t, stdout, `"path": "/docs/v1/guides/crypto-wallet"`)
	require.Contains(t, stdout, `"sidebar_open": true`)
	require.Contains(t, stdout, `"search_open": true`)
	require.Contains(t, stdout, `"query": "wallet"`)
}

func TestBrowseNavigateAfterChordClosesSearch(t *testing.T) {
	input := strings.Join([]string{"ctrl+k", "/docs/v1/guides/authentication", "quit"}, "\n")

	for range 50 {
		code, stdout, stderr := runCommand(t, input, "browse")
		require.Equal(t, 0, code, stderr)
		require.Contains(t, stdout, `"path": "/docs/v1/guides/authentication"`)
		require.Contains(t, stdout, `"search_open": false`)
	}
}

func TestBrowseSearchAfterChordSeesToggle(t *testing.T) {
	input := strings.Join([]string{"ctrl+k", "ctrl+k", "?wallet", "esc", "quit"}, "\n")

	for range 50 {
		code, stdout, stderr := runCommand(t, input, "browse")
		require.Equal(t, 0, code, stderr)
		require.Contains(t, stdout, `"search_open": false`)
		require.Contains(t, stdout, `"query": "wallet"`)
	}
}

func TestMCPCommand(t *testing.T) {
	original := serveStdio
	t.Cleanup(func() { serveStdio = original })

	var served *server.MCPServer
	serveStdio = func(s *server.MCPServer, _ ...server.StdioOption) error {
		served = s
		return nil
	}

	code, _, stderr := runCommand(t, "", "mcp")
	require.Equal(t, 0, code, stderr)
	require.NotNil(t, served)
}

func TestInvalidConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "resolve"},
		strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "failed to read config")

	code, _, stderr2 := runCommand(t, "", "--log-level", "verbose", "resolve")
	require.Equal(t, 1, code)
	require.Contains(t, stderr2, "logging.level")
}

func TestServeHandler(t *testing.T) {
	a, err := loadApp(globalFlags{configPath: writeTestConfig(t)}, &bytes.Buffer{})
	require.NoError(t, err)

	h := a.newHTTPServer().Handler

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/mcp",
		strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	h.ServeHTTP(rr, req)
	require.NotEqual(t, http.StatusNotFound, rr.Code)
}

func TestServeStopsOnCancel(t *testing.T) {
	a, err := loadApp(globalFlags{configPath: writeTestConfig(t)}, &bytes.Buffer{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, a.serve(ctx))
}
