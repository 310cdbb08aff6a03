package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/tuxedo/value"
)

func TestEval_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr   string
		format string
		want   string
	}{
		{"1 + 2", "text", "3\n"},
		{"name.upper", "text", "TEVE\n"},
		{"['a', 'b']", "json", "[\"a\",\"b\"]\n"},
		{"['a', 'b']", "yaml", "- a\n- b\n"},
		{"name", "json", "\"teve\"\n"},
		{"true and false", "yaml", "false\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format+"/"+tt.expr, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			env := &Env{Vars: map[string]any{"name": "teve"}, Stdout: &out}

			require.NoError(t, (&Eval{Expr: tt.expr, Format: tt.format}).Run(t.Context(), env))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestEval_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := formatValue(t.Context(), mustEval(t, "1"), "toml")
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func mustEval(t *testing.T, expr string) value.Value {
	t.Helper()

	v, ok := (&Env{}).engine().Evaluate(t.Context(), expr, nil)
	require.True(t, ok, "evaluate %q", expr)

	return v
}
