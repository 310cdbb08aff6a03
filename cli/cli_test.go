package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/tuxedo/store"
)

func TestCLIEnv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	db := filepath.Join(dir, "templates.db")

	s, err := store.Open(t.Context(), db)
	require.NoError(t, err)
	require.NoError(t, s.Put(t.Context(), "greet",
		"{% macro hi(who) %}'Hi ' + who{% endmacro %}"))
	require.NoError(t, s.Close())

	c := CLI{
		DB:      db,
		DBTable: store.DefaultTable,
		Var:     []string{`who="teve"`},
		Strict:  true,
	}

	env, closeEnv, err := c.env(t.Context())
	require.NoError(t, err)
	t.Cleanup(closeEnv)

	assert.Equal(t, map[string]any{"who": "teve"}, env.Vars)
	assert.True(t, env.Engine.Strict())

	out, err := env.Engine.Render(t.Context(), "{% import 'greet' %}{{ hi(who) }}", env.Vars)
	require.NoError(t, err)
	assert.Equal(t, "Hi teve", out)
}

func TestCLIEnv_BadVar(t *testing.T) {
	t.Parallel()

	_, _, err := (&CLI{Var: []string{"no-equals"}}).env(t.Context())
	require.Error(t, err)
}
