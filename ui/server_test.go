package ui

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/ebnfpt/workspace"
)

func newTestServer(t *testing.T) (*Server, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/g/expr.ebnf", []byte("expr = term, {'+', term};\nterm = digit;\n"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/g/sub/bad.ebnf", []byte("broken = "), 0o644))

	ws := workspace.New(fsys, "/g")
	require.NoError(t, ws.ScanAll())

	s, err := NewServer(ws)
	require.NoError(t, err)
	return s, fsys
}

func get(t *testing.T, s *Server, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<title>/g - ebnfpt</title>")
	assert.Contains(t, body, "</html>")
	assert.Contains(t, body, `href="/f/expr.ebnf"`)
	assert.Contains(t, body, `href="/f/sub/bad.ebnf"`)
	assert.Contains(t, body, "did not expect EOF")
}

func TestFile(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name   string
		target string
		code   int
		want   []string
	}{
		{"complete", "/f/expr.ebnf", http.StatusOK, []string{`class="Product"`, "[1:1-1:26]", "&#34;expr&#34;"}},
		{"partial", "/f/sub/bad.ebnf", http.StatusOK, []string{`class="Root partial"`, "did not expect EOF"}},
		{"missing", "/f/nope.ebnf", http.StatusNotFound, []string{"file not found"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			assert.Equal(t, tt.code, rec.Code)
			for _, want := range tt.want {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}
}

func TestFileJSON(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/f/sub/bad.ebnf", "Accept", "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var doc struct {
		Partial bool `json:"partial"`
		Root    struct {
			Kind string `json:"kind"`
		} `json:"root"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.True(t, doc.Partial)
	assert.Equal(t, "Root", doc.Root.Kind)
}

func TestSidebar(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/sidebar?q=TER")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, ">term</a>")
	assert.NotContains(t, body, ">expr</a>")

	rec = get(t, s, "/sidebar?q=zzz")
	assert.Contains(t, rec.Body.String(), "no products found")
}

func TestScan(t *testing.T) {
	s, fsys := newTestServer(t)
	require.NoError(t, afero.WriteFile(fsys, "/g/new.ebnf", []byte("fresh = ;"), 0o644))

	req := httptest.NewRequest(http.MethodPost, "/scan", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	assert.Contains(t, get(t, s, "/").Body.String(), `href="/f/new.ebnf"`)
}

func TestEmbeddedTemplates(t *testing.T) {
	entries, err := fs.ReadDir(embeddedFS, "templates")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"_layout.html", "_sidebar.html", "file.html", "index.html"}, names)
}

func TestRenderFailure(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.render(rec, "missing.html", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "template error")
}
