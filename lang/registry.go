package lang

import (
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/tuxedo/value"
)

// Macro is a named single-expression template fragment.
type Macro struct {
	Name   string
	Body   string
	Params []string
}

// DefineMacro registers m, replacing any macro of the same name.
func (c *Context) DefineMacro(m Macro) {
	c.macros[m.Name] = m
	c.touch()
}

// Macro returns the macro registered under name.
func (c *Context) Macro(name string) (Macro, bool) {
	m, ok := c.macros[name]

	return m, ok
}

// Macros returns the names of all registered macros in ascending order.
func (c *Context) Macros() []string {
	return slices.Sorted(maps.Keys(c.macros))
}

// blockRenderer is one entry of a block override chain: the body text and the
// variables that were visible where the block was defined.
type blockRenderer struct {
	vars map[string]value.Value
	body string
}

// addBlock appends a renderer to the chain for name and reports whether it is
// the first one.
func (c *Context) addBlock(name, body string) bool {
	chain := c.blocks[name]
	c.blocks[name] = append(chain, blockRenderer{body: body, vars: c.Snapshot()})
	c.touch()

	return len(chain) == 0
}

// blockChain returns the override chain registered for name.
func (c *Context) blockChain(name string) []blockRenderer {
	return c.blocks[name]
}

// Blocks returns the names of all registered blocks in ascending order.
func (c *Context) Blocks() []string {
	return slices.Sorted(maps.Keys(c.blocks))
}

func (c *Context) resetBlocks() {
	clear(c.blocks)
	c.touch()
}

// Block placeholders are emitted for the first definition of a block and
// replaced after the whole template has been interpreted.
const (
	placeholderOpen  = "\x00block:"
	placeholderClose = "\x00"
)

func placeholder(name string) string {
	return placeholderOpen + name + placeholderClose
}

// nextPlaceholder finds the first placeholder in s and returns its offsets and
// block name.
func nextPlaceholder(s string) (start, end int, name string, ok bool) {
	start = strings.Index(s, placeholderOpen)
	if start < 0 {
		return 0, 0, "", false
	}

	rest := s[start+len(placeholderOpen):]

	n := strings.Index(rest, placeholderClose)
	if n < 0 {
		return 0, 0, "", false
	}

	end = start + len(placeholderOpen) + n + len(placeholderClose)

	return start, end, rest[:n], true
}
