package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGrammar(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	color.NoColor = true
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCheckCmd(t *testing.T) {
	dir := t.TempDir()
	good := writeGrammar(t, dir, "good.ebnf", "a = b;\n")
	bad := writeGrammar(t, dir, "bad.ebnf", "a = b\n")

	stdout, stderr, err := run(t, newCheckCmd(), good, bad)
	assert.EqualError(t, err, "1 of 2 files failed")
	assert.Equal(t, good+": ok\n", stdout)
	assert.NotContains(t, stdout+stderr, "Usage:")
	assert.True(t, strings.HasPrefix(stderr, bad+":2:1: did not expect EOF at 2:1"), stderr)

	stdout, _, err = run(t, newCheckCmd(), "-q", good)
	assert.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestDumpCmd(t *testing.T) {
	dir := t.TempDir()
	path := writeGrammar(t, dir, "g.ebnf", "a = ;")

	stdout, _, err := run(t, newDumpCmd(), "--format", "line", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "EmptyString")

	partial := writeGrammar(t, dir, "p.ebnf", "a = b")
	stdout, stderr, err := run(t, newDumpCmd(), "-f", "text", partial)
	assert.EqualError(t, err, partial+": partial tree")
	assert.Contains(t, stdout, "Root!")
	assert.Contains(t, stderr, "did not expect EOF")

	_, _, err = run(t, newDumpCmd(), "-f", "xml", path)
	assert.ErrorContains(t, err, `unknown format "xml"`)
}

func TestUnparseCmd(t *testing.T) {
	input := "(* greeting *)\nhello = 'hi' | {\"x\"} ;\n"
	path := writeGrammar(t, t.TempDir(), "g.ebnf", input)

	stdout, _, err := run(t, newUnparseCmd(), path)
	require.NoError(t, err)
	assert.Equal(t, input, stdout)

	_, _, err = run(t, newUnparseCmd(), filepath.Join(t.TempDir(), "missing.ebnf"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStatsCmd(t *testing.T) {
	path := writeGrammar(t, t.TempDir(), "g.ebnf", "a = b;\nc = d;\n")

	stdout, _, err := run(t, newStatsCmd(), path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "PRODUCTS")
	assert.Regexp(t, `g\.ebnf\s+2\s+\d+\s+6\s+\d+\s+ok`, stdout)
}

func TestStatsCmdReportsEveryFile(t *testing.T) {
	dir := t.TempDir()
	good := writeGrammar(t, dir, "good.ebnf", "a = b;\n")
	missing := filepath.Join(dir, "missing.ebnf")

	stdout, _, err := run(t, newStatsCmd(), good, missing)
	assert.EqualError(t, err, "1 of 2 files failed")
	assert.Regexp(t, `good\.ebnf\s+1\s+\d+\s+6\s+\d+\s+ok`, stdout)
	assert.Regexp(t, `missing\.ebnf\s+-\s+-\s+-\s+-\s+open .*no such file or directory`, stdout)
}
