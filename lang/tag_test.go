package lang

import (
	"testing"
)

func TestTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		vars map[string]any
		want string
	}{
		{
			name: "if else",
			text: "{% if x in [1,2,3] %}Hello{% else %}Bye{% endif %} {{ name }}!",
			vars: map[string]any{"x": 2, "name": "Teve"},
			want: "Hello Teve!",
		},
		{
			name: "if",
			text: "{% if true %}Hello{% endif %} {{ name }}!",
			vars: map[string]any{"name": "Teve"},
			want: "Hello Teve!",
		},
		{
			name: "if false",
			text: "[{% if false %}Hello{% endif %}]",
			want: "[]",
		},
		{
			name: "nested if",
			text: "Result: {% if x > 1 %}{% if x < 5 %}1<x<5{% endif %}{% endif %}",
			vars: map[string]any{"x": 2},
			want: "Result: 1<x<5",
		},
		{
			name: "nested if in then",
			text: "Result: {% if x > 1 %}{% if x < 5 %}1<x<5{% endif %}{% else %}x<=1{% endif %}",
			vars: map[string]any{"x": 2},
			want: "Result: 1<x<5",
		},
		{
			name: "nested if in else",
			text: "Result: {% if x >= 5 %}x>=5{% else %}{% if x > 1 %}1<x<5{% endif %}{% endif %}",
			vars: map[string]any{"x": 2},
			want: "Result: 1<x<5",
		},
		{
			name: "nested if else in then",
			text: "Result: {% if x > 1 %}{% if x < 5 %}1<x<5{% else %}x>=5{% endif %}{% else %}x<=1{% endif %}",
			vars: map[string]any{"x": 2},
			want: "Result: 1<x<5",
		},
		{
			name: "nested if else in else",
			text: "Result: {% if x >= 5 %}x>=5{% else %}{% if x > 1 %}1<x<5{% else %}x<=1{% endif %}{% endif %}",
			vars: map[string]any{"x": 2},
			want: "Result: 1<x<5",
		},
		{
			name: "non-boolean condition",
			text: "[{% if 1 %}Hello{% endif %}]",
			want: "[]",
		},
		{
			name: "exists",
			text: "Hello {% if name exists %}{{ name }}{% else %}Anonymus{% endif %}!",
			want: "Hello Anonymus!",
		},
		{
			name: "exists bound",
			text: "Hello {% if name exists %}{{ name }}{% else %}Anonymus{% endif %}!",
			vars: map[string]any{"name": "Teve"},
			want: "Hello Teve!",
		},
		{
			name: "for",
			text: "{% for i in [1,2,3] %}a{% endfor %}",
			want: "aaa",
		},
		{
			name: "for variable",
			text: "{% for i in x %}{{i*2}} {% endfor %}",
			vars: map[string]any{"x": []int{1, 2, 3}},
			want: "2 4 6 ",
		},
		{
			name: "for literal",
			text: "{% for i in [1,2,3] %}{{i * 2}} {% endfor %}",
			want: "2 4 6 ",
		},
		{
			name: "for empty",
			text: "[{% for i in [] %}{{i}}{% endfor %}]",
			want: "[]",
		},
		{
			name: "for not first",
			text: "{% for i in [1,2,3] %}{% if i is not first %}, {% endif %}{{i * 2}}{% endfor %}",
			want: "2, 4, 6",
		},
		{
			name: "for not last",
			text: "{% for i in [1,2,3] %}{{i * 2}}{% if i is not last %}, {% endif %}{% endfor %}",
			want: "2, 4, 6",
		},
		{
			name: "for first and last",
			text: "{% for i in [1,2,3] %}{% if i is first %}^{% endif %}{{i}}{% if i is last %}${% endif %}{% endfor %}",
			want: "^123$",
		},
		{
			name: "nested for",
			text: "{% for i in [1,2] %}{% for j in ['a','b'] %}{{i}}{{j}} {% endfor %}{% endfor %}",
			want: "1a 1b 2a 2b ",
		},
		{
			name: "for variable is scoped",
			text: "{% for i in [1] %}{% endfor %}{{ i }}",
			want: "null",
		},
		{
			name: "comment",
			text: "Personal {# random comment #}Computer",
			want: "Personal Computer",
		},
		{
			name: "macro",
			text: "{% macro double(value) %}value * 2{% endmacro %}{{ double(4) }}",
			want: "8",
		},
		{
			name: "macro two parameters",
			text: "{% macro concat(a, b) %}a + b{% endmacro %}{{ concat('Hello ', 'World!') }}",
			want: "Hello World!",
		},
		{
			name: "macro template body",
			text: "{% macro greet(who) %}Hi {{ who }}{% endmacro %}{{ greet('Bo') }}",
			want: "Hi Bo",
		},
		{
			name: "macro missing argument",
			text: "{% macro show(a) %}a.default('none'){% endmacro %}{{ show() }}",
			want: "none",
		},
		{
			name: "macro outlives loop",
			text: "{% for i in [1] %}{% macro m() %}7{% endmacro %}{% endfor %}{{ m() }}",
			want: "7",
		},
		{
			name: "set",
			text: "{% set x = 4.0 %}{{ x }}",
			want: "4",
		},
		{
			name: "set body",
			text: "{% set x %}this{% endset %}Check {{ x }} out",
			want: "Check this out",
		},
		{
			name: "set in loop is scoped",
			text: "{% for i in [1] %}{% set y = i %}{% endfor %}{{ y }}",
			want: "null",
		},
		{
			name: "set global in loop",
			text: "{% for i in [7] %}{% set global y = i %}{% endfor %}{{ y }}",
			want: "7",
		},
		{
			name: "spaceless",
			text: "{% spaceless %}   {% if true %}    Hello    {% endif %}    {% endspaceless %}",
			want: "Hello",
		},
		{
			name: "unmatched print",
			text: "a{{ 1 + }}b",
			want: "ab",
		},
		{
			name: "literal brace",
			text: "f(x) { return x }",
			want: "f(x) { return x }",
		},
		{
			name: "complex",
			text: "{% if greet %}Hello{% else %}Bye{% endif %} {{ name }}!\n" +
				"{% set works = true %}\n" +
				"{% for i in [1,3,2].sort.reverse %}{{ i }}, {% endfor %}go!\n" +
				"\n" +
				"This template engine {% if !works %}does not {% endif %}work{% if works %}s{% endif %}!",
			vars: map[string]any{"greet": true, "name": "Laszlo"},
			want: "Hello Laszlo!\n\n3, 2, 1, go!\n\nThis template engine works!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := renderString(t, tt.text, tt.vars); got != tt.want {
				t.Errorf("render(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		vars map[string]any
		want string
	}{
		{
			name: "single",
			text: "Title: {% block title %}Original{% endblock %}.",
			want: "Title: Original.",
		},
		{
			name: "override",
			text: "Title: {% block title %}Original{% endblock %}.{% block title %}Other{% endblock %}",
			want: "Title: Other.",
		},
		{
			name: "parent",
			text: "Title: {% block title %}Original{% endblock %}.{% block title %}{{ parent() }} 2{% endblock %}",
			want: "Title: Original 2.",
		},
		{
			name: "parent chain",
			text: "Title: {% block title %}Original{% endblock %}." +
				"{% block title %}{{ parent() }} 2{% endblock %}" +
				"{% block title %}{{ parent() }}.1{% endblock %}",
			want: "Title: Original 2.1.",
		},
		{
			name: "parent sees variables",
			text: "{% block title %}Hello {{name}}{% endblock %}{% block title %}{{ parent() }}!{% endblock %}",
			vars: map[string]any{"name": "George"},
			want: "Hello George!",
		},
		{
			name: "parent with arguments",
			text: "{% block title %}Hello {{name}}{% endblock %}{% block title %}{{ parent(name='Laszlo') }}!{% endblock %}",
			vars: map[string]any{"name": "Geroge"},
			want: "Hello Laszlo!",
		},
		{
			name: "first block has no parent",
			text: "[{% block title %}{{ parent() }}x{% endblock %}]",
			want: "[x]",
		},
		{
			name: "snapshot",
			text: "{% for i in [1] %}{% block b %}{{ i }}{% endblock %}{% endfor %}",
			want: "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := renderString(t, tt.text, tt.vars); got != tt.want {
				t.Errorf("render(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestRenderContextReuse(t *testing.T) {
	t.Parallel()

	e := New()
	c := e.NewContext(nil)

	steps := []struct {
		text string
		want string
	}{
		{"{% set x = 4.0 %}", ""},
		{"{{ x }}", "4"},
		{"{% set y %}this{% endset %}", ""},
		{"Check {{ y }} out", "Check this out"},
		{"{% macro inc(n) %}n + 1{% endmacro %}", ""},
		{"{{ inc(x) }}", "5"},
		{"{% block b %}one{% endblock %}", "one"},
		{"{% block b %}two{% endblock %}", "two"},
	}

	for _, s := range steps {
		got, err := e.RenderContext(t.Context(), s.text, c)
		if err != nil {
			t.Fatalf("render %q: %v", s.text, err)
		}

		if got != s.want {
			t.Errorf("render(%q) = %q, want %q", s.text, got, s.want)
		}
	}

	if c.Depth() != 0 {
		t.Errorf("Depth() = %d after renders, want 0", c.Depth())
	}

	if got := c.Macros(); len(got) != 1 || got[0] != "inc" {
		t.Errorf("Macros() = %v, want [inc]", got)
	}
}
