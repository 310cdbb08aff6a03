package lang

import (
	"maps"
	"slices"

	"github.com/ardnew/tuxedo/value"
)

// Context is the variable environment threaded through a render.
//
// It holds a stack of variable scopes together with two tables that are not
// scoped: the macro registry and the block-override registry. Macros persist
// for the lifetime of the Context; blocks are reset at the start of every
// top-level render.
//
// A Context is not safe for concurrent use. Concurrent renders each need their
// own Context.
type Context struct {
	macros map[string]Macro
	blocks map[string][]blockRenderer
	scopes []*scope
	gen    uint64
}

type scope struct {
	vars  map[string]value.Value
	loop  *loopState
	block *blockFrame
}

// loopState is the position of a for-loop iteration within its sequence.
type loopState struct {
	items []value.Value
	index int
}

func (l *loopState) first() bool { return l.index == 0 }

func (l *loopState) last() bool { return l.index == len(l.items)-1 }

// blockFrame records which renderer of a block override chain is running.
type blockFrame struct {
	name  string
	index int
}

// NewContext returns a Context whose root scope holds vars converted with
// [value.Of].
func NewContext(vars map[string]any) *Context {
	root := &scope{vars: value.OfMap(vars)}

	return &Context{
		macros: make(map[string]Macro),
		blocks: make(map[string][]blockRenderer),
		scopes: []*scope{root},
	}
}

// Push creates a new innermost scope.
func (c *Context) Push() {
	c.scopes = append(c.scopes, &scope{vars: make(map[string]value.Value)})
	c.gen++
}

// Pop discards the innermost scope and every binding created in it.
// The root scope is never popped.
func (c *Context) Pop() {
	if len(c.scopes) > 1 {
		c.scopes[len(c.scopes)-1] = nil
		c.scopes = c.scopes[:len(c.scopes)-1]
		c.gen++
	}
}

// Depth returns the number of scopes above the root scope.
func (c *Context) Depth() int { return len(c.scopes) - 1 }

func (c *Context) innermost() *scope { return c.scopes[len(c.scopes)-1] }

// touch records a change that may alter the result of an evaluation.
func (c *Context) touch() { c.gen++ }

// Get returns the value bound to name in the innermost scope that defines it.
func (c *Context) Get(name string) (value.Value, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if v, ok := c.scopes[i].vars[name]; ok {
			return v, true
		}
	}

	return value.Empty(), false
}

// Set binds name in the innermost scope.
func (c *Context) Set(name string, v value.Value) {
	c.innermost().vars[name] = v
	c.gen++
}

// SetGlobal binds name in the root scope.
func (c *Context) SetGlobal(name string, v value.Value) {
	c.scopes[0].vars[name] = v
	c.gen++
}

// Names returns every visible variable name in ascending order.
func (c *Context) Names() []string {
	return slices.Sorted(maps.Keys(c.Snapshot()))
}

// Snapshot returns the variables visible from the innermost scope, with inner
// bindings shadowing outer ones.
func (c *Context) Snapshot() map[string]value.Value {
	vars := make(map[string]value.Value)

	for _, s := range c.scopes {
		maps.Copy(vars, s.vars)
	}

	return vars
}

// loop returns the state of the innermost running for-loop.
func (c *Context) loop() (*loopState, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if l := c.scopes[i].loop; l != nil {
			return l, true
		}
	}

	return nil, false
}

// block returns the innermost running block renderer.
func (c *Context) block() (*blockFrame, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if b := c.scopes[i].block; b != nil {
			return b, true
		}
	}

	return nil, false
}
