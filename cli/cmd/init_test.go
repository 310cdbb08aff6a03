package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type initCLI struct {
	Include []string `type:"path"`
	Table   string   `default:"templates"`
	Strict  bool
	Pprof   string `name:"pprof-mode"`
	Secret  string `hidden:""`

	Init Init `cmd:""`
}

func TestInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")

	run := func(args ...string) error {
		var cli initCLI

		parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: path})
		require.NoError(t, err)

		ktx, err := parser.Parse(args)
		require.NoError(t, err)

		return cli.Init.Run(WithContext(t.Context(), ktx))
	}

	require.NoError(t, run("--strict", "--secret=x", "--include=/tmp/a", "init"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))

	assert.Equal(t, map[string]any{
		"include": []any{"/tmp/a"},
		"table":   "templates",
		"strict":  true,
	}, got)

	require.ErrorIs(t, run("init"), ErrFileExists)
	require.NoError(t, run("init", "--force"))

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "strict: false")
}
