package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/tuxedo/lang"
)

func openTemp(t *testing.T, opts ...Option) *Store {
	t.Helper()

	s, err := Open(t.Context(), filepath.Join(t.TempDir(), "templates.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestStorePutLoad(t *testing.T) {
	t.Parallel()

	s := openTemp(t)
	ctx := t.Context()

	require.NoError(t, s.Put(ctx, "greet", "Hello {{ name }}!"))

	body, err := s.Load(ctx, "greet")
	require.NoError(t, err)
	assert.Equal(t, "Hello {{ name }}!", body)

	require.NoError(t, s.Put(ctx, "greet", "Hi {{ name }}"))

	body, err = s.Load(ctx, "greet")
	require.NoError(t, err)
	assert.Equal(t, "Hi {{ name }}", body, "Put replaces the previous body")

	_, err = s.Load(ctx, "missing")
	assert.ErrorIs(t, err, lang.ErrTemplateNotFound)
}

func TestStoreNamesDelete(t *testing.T) {
	t.Parallel()

	s := openTemp(t)
	ctx := t.Context()

	names, err := s.Names(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	for _, name := range []string{"b", "a", "c"} {
		require.NoError(t, s.Put(ctx, name, name))
	}

	names, err = s.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)

	require.NoError(t, s.Delete(ctx, "b"))
	assert.ErrorIs(t, s.Delete(ctx, "b"), lang.ErrTemplateNotFound)

	names, err = s.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, names)
}

func TestStoreTable(t *testing.T) {
	t.Parallel()

	s := openTemp(t, WithTable("partials"))
	assert.Equal(t, "partials", s.Table())

	_, err := Open(t.Context(), filepath.Join(t.TempDir(), "x.db"), WithTable("bad name; DROP"))
	assert.ErrorIs(t, err, ErrInvalidTable)
}

func TestStoreReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "persist.db")

	s, err := Open(t.Context(), path)
	require.NoError(t, err)
	require.NoError(t, s.Put(t.Context(), "kept", "value"))
	require.NoError(t, s.Close())

	s, err = Open(t.Context(), path)
	require.NoError(t, err)

	defer s.Close()

	body, err := s.Load(t.Context(), "kept")
	require.NoError(t, err)
	assert.Equal(t, "value", body)
}

func TestStoreImport(t *testing.T) {
	t.Parallel()

	s := openTemp(t)
	ctx := t.Context()

	require.NoError(t, s.Put(ctx, "macros", "{% macro shout(x) %}x.upper + '!'{% endmacro %}"))

	e := lang.New(lang.WithLoader(lang.SearchLoader{lang.MapLoader{}, s}), lang.WithStrict(true))

	out, err := e.Render(ctx, "{% import 'macros' %}{{ shout('hey') }}", nil)
	require.NoError(t, err)
	assert.Equal(t, "HEY!", out)
}

func TestStoreCanceled(t *testing.T) {
	t.Parallel()

	s := openTemp(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := s.Load(ctx, "any")
	require.Error(t, err)
	assert.NotErrorIs(t, err, lang.ErrTemplateNotFound)
}
