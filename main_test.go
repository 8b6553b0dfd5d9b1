package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	files := map[string]string{
		"/res/json/index.json": `{"server_name": "cli", "comment": "", "scenarios": [{"name": "Hugs", "lang": "en", "filename": "hugs.json"}]}`,
		"/res/json/hugs.json":  `{"scenes": [{"name": "Group hug", "messages": ["%1$s hugs %2$s"]}]}`,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGenerateCommand(t *testing.T) {
	upstream := newUpstream(t)
	t.Setenv("CATALOG_SERVER_URL", upstream.URL)
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"generate", "--lang", "en-US", "Alice", "Bob", "Alice", "Carol"})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Hugs - Group hug", lines[0])
	assert.Regexp(t, `^(Alice|Bob|Carol) hugs (Alice|Bob|Carol)$`, lines[1])
}

func TestGenerateCommand_CatalogDown(t *testing.T) {
	upstream := newUpstream(t)
	url := upstream.URL
	upstream.Close()
	t.Setenv("CATALOG_SERVER_URL", url)
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "error")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"generate", "A", "B"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load catalog")
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := createLoggingMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/names", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "/api/names", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
}
