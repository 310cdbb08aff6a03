package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/tuxedo/lang"
)

func TestRender_Stdin(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	env := &Env{
		Vars:   map[string]any{"name": "teve"},
		Stdin:  strings.NewReader("Hello {{ name }}!"),
		Stdout: &out,
	}

	require.NoError(t, (&Render{Source: "-", Output: "-"}).Run(t.Context(), env))
	assert.Equal(t, "Hello teve!", out.String())
}

func TestRender_FileImport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "page.tmpl")
	dst := filepath.Join(dir, "page.txt")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "macros"),
		[]byte("{% macro twice(x) %}x * 2{% endmacro %}"), 0o600))
	require.NoError(t, os.WriteFile(src,
		[]byte("{% import 'macros' %}{{ twice(n) }}"), 0o600))

	env := &Env{Vars: map[string]any{"n": 21}}

	require.NoError(t, (&Render{Source: src, Output: dst}).Run(t.Context(), env))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "42", string(data))
}

func TestRender_StrictWritesNothing(t *testing.T) {
	t.Parallel()

	dst := filepath.Join(t.TempDir(), "out.txt")

	env := &Env{
		Engine: lang.New(lang.WithStrict(true)),
		Stdin:  strings.NewReader("a{{ nope(1) }}b"),
	}

	err := (&Render{Source: "-", Output: dst}).Run(t.Context(), env)
	require.ErrorIs(t, err, ErrRender)
	require.ErrorIs(t, err, lang.ErrUnknownMacro)
	assert.NoFileExists(t, dst)
}

func TestRender_MissingFile(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	env := &Env{Stdout: &out}

	err := (&Render{Source: filepath.Join(t.TempDir(), "missing"), Output: "-"}).
		Run(t.Context(), env)
	require.ErrorIs(t, err, ErrRender)
	assert.Empty(t, out.String())
}
