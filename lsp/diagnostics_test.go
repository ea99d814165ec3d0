package lsp

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/ebnfpt/pt"
	"github.com/dhamidi/ebnfpt/workspace"
)

func file(content string) *workspace.File {
	return workspace.New(afero.NewMemMapFs(), "/").UpdateFile("/g.ebnf", []byte(content))
}

func pos(line, character int) protocol.Position {
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(character)}
}

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    protocol.Range
		code    string
	}{
		{
			name:    "undelimited",
			content: `a = b "c";`,
			want:    protocol.Range{Start: pos(0, 6), End: pos(0, 7)},
			code:    "MultipleTermPrimariesError",
		},
		{
			name:    "eof",
			content: "a = b",
			want:    protocol.Range{Start: pos(0, 5), End: pos(0, 5)},
			code:    "EOFError",
		},
		{
			name:    "second line",
			content: "a = b;\n) = c;",
			want:    protocol.Range{Start: pos(1, 0), End: pos(1, 1)},
			code:    "UnexpectedCharacterError",
		},
		{
			name:    "wide characters",
			content: "a = \"𝔸\" \"b\";",
			want:    protocol.Range{Start: pos(0, 9), End: pos(0, 10)},
			code:    "MultipleTermPrimariesError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := diagnostics(file(tt.content))
			require.Len(t, got, 1)

			d := got[0]
			assert.Equal(t, tt.want, d.Range)
			require.NotNil(t, d.Severity)
			assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
			require.NotNil(t, d.Source)
			assert.Equal(t, "ebnfpt", *d.Source)
			require.NotNil(t, d.Code)
			assert.Equal(t, tt.code, d.Code.Value)
			assert.NotEmpty(t, d.Message)
		})
	}
}

func TestDiagnosticsClean(t *testing.T) {
	assert.Empty(t, diagnostics(file("a = b;")))
	assert.NotNil(t, diagnostics(nil))

	other := &workspace.File{Path: "/g.ebnf", Err: errors.New("reading grammar: boom")}
	got := diagnostics(other)
	require.Len(t, got, 1)
	assert.Equal(t, "reading grammar: boom", got[0].Message)
	assert.Nil(t, got[0].Code)
}

func TestSymbols(t *testing.T) {
	got := symbols(file("(* c *)\nexpr = term;\nlong name = \"x\" ;\nbroken = "))
	require.Len(t, got, 3)

	assert.Equal(t, "expr", got[0].Name)
	assert.Equal(t, protocol.SymbolKindFunction, got[0].Kind)
	assert.Equal(t, protocol.Range{Start: pos(1, 0), End: pos(1, 12)}, got[0].Range)
	assert.Equal(t, protocol.Range{Start: pos(1, 0), End: pos(1, 4)}, got[0].SelectionRange)

	assert.Equal(t, "long name", got[1].Name)
	assert.Equal(t, "broken", got[2].Name)
}

func TestToPosition(t *testing.T) {
	content := []byte("ab\näé𝔸x")
	tests := []struct {
		pos  pt.Position
		want protocol.Position
	}{
		{pt.Start, pos(0, 0)},
		{pt.Position{Offset: 2, Line: 1, Column: 3}, pos(0, 2)},
		{pt.Position{Offset: 3, Line: 2, Column: 1}, pos(1, 0)},
		{pt.Position{Offset: 7, Line: 2, Column: 3}, pos(1, 2)},
		{pt.Position{Offset: 11, Line: 2, Column: 4}, pos(1, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.pos.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, toPosition(content, tt.pos))
		})
	}
}

func TestURIToPath(t *testing.T) {
	path, err := uriToPath("file:///tmp/my%20grammar.ebnf")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/my grammar.ebnf", path)

	path, err = uriToPath("/plain/path.ebnf")
	require.NoError(t, err)
	assert.Equal(t, "/plain/path.ebnf", path)

	assert.Equal(t, "file:///tmp/g.ebnf", pathToURI("/tmp/g.ebnf"))
}
