// Package lang renders Tuxedo templates: plain text with embedded
// expressions, control-flow tags, and formatting directives.
//
// # Pipeline
//
// A render runs in three stages:
//
//  1. Whitespace pre-pass. Every [TrimMarker] is deleted together with all
//     contiguous white space on both sides.
//  2. Tag interpretation. The text is scanned left to right; at each '{' the
//     tags are tried in declaration order and the first one that binds emits
//     its rendering. Blocks emit placeholders.
//  3. Block resolution. Each placeholder is replaced with the output of the
//     last renderer registered for its block.
//
// Nothing in a template aborts rendering. A region that no rule or tag can
// interpret renders as empty text, and diagnostics such as failed imports are
// logged and collected. An [Engine] built with [WithStrict] returns them.
//
// # Syntax
//
//	{{ expr }}                                 print
//	{# ... #}                                  comment
//	{% if c %}...{% else %}...{% endif %}      conditional
//	{% for v in seq %}...{% endfor %}          loop
//	{% set x = expr %}                         assign in the innermost scope
//	{% set global x = expr %}                  assign in the root scope
//	{% set x %}...{% endset %}                 assign rendered text
//	{% block name %}...{% endblock %}          overridable block
//	{% macro name(a, b) %}...{% endmacro %}    macro definition
//	{% import "file" %}                        render another template here
//	{% spaceless %}...{% endspaceless %}       remove all white space
//	{-}                                        trim surrounding white space
//
// # Expressions
//
// Expressions are reduced by an ordered rule table, lowest precedence first:
// ternary, or, and, not, equality, relational, membership (in, not in,
// starts with, ends with, contains, matches), predicates (is first, is last,
// is even, exists, ...), ranges (1...3), additive, multiplicative, power,
// step (++, --), member access, negation, and calls. Binary operators of one
// precedence group associate to the left.
//
// Members apply to the value on their left:
//
//	{{ name.upperFirst }}
//	{{ items.map { x => x * 2 }.join(', ') }}
//	{{ scores.filter { k, v => v > 10 }.keys }}
//	{{ missing.default('none') }}
//	{{ Date(2018, 12, 13).format('dd/MM/yy') }}
//
// # Blocks
//
// Defining a block a second time overrides it. The override may call parent()
// to render the previous definition, optionally with named arguments bound
// over the variables that definition captured:
//
//	{% block title %}Original {{ n }}{% endblock %}
//	{% block title %}{{ parent(n=2) }}.1{% endblock %}
package lang
