// Package selector evaluates CSS selectors against a dom.Tree. The
// selector grammar and matching rules come from
// github.com/andybalholm/cascadia; this package only adapts the arena
// tree to the shape cascadia matches against and keeps results in
// document order.
package selector

import (
	"github.com/andybalholm/cascadia"
	"github.com/pkg/errors"

	"github.com/lestrrat-go/treedom/dom"
)

// Selector is a compiled selector. Compilation is separate from
// evaluation so callers can cache compiled selectors.
type Selector struct {
	group  cascadia.SelectorGroup
	source string
}

// Compile parses a selector group. Compilation failures are reported
// here, never mixed into parse diagnostics.
func Compile(src string) (*Selector, error) {
	group, err := cascadia.ParseGroup(src)
	if err != nil {
		return nil, errors.Wrapf(err, `failed to compile selector %q`, src)
	}
	return &Selector{group: group, source: src}, nil
}

// MustCompile is Compile for statically known selectors.
func MustCompile(src string) *Selector {
	sel, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return sel
}

func (s *Selector) String() string {
	return s.source
}

// Engine evaluates compiled selectors against one tree. It caches the
// mirror it matches against and rebuilds it when the tree's mutation
// generation moves. An Engine must not be used concurrently with
// writers of the underlying tree.
type Engine struct {
	tree *dom.Tree
	m    *mirror
}

func New(tree *dom.Tree) *Engine {
	return &Engine{tree: tree}
}

func (e *Engine) refresh() {
	if e.m == nil || e.m.gen != e.tree.Generation() {
		e.m = buildMirror(e.tree)
	}
}

// Select returns every element in the subtree rooted at root that
// matches sel, in document pre-order. root itself is a candidate.
func (e *Engine) Select(root dom.NodeID, sel *Selector) ([]dom.NodeID, error) {
	if e.tree.Data(root) == nil {
		return nil, dom.ErrInvalidNode
	}
	e.refresh()
	var out []dom.NodeID
	for id := range e.tree.Descendants(root) {
		n := e.m.nodes[id]
		if n == nil {
			continue
		}
		if e.m.match(sel, n) {
			out = append(out, id)
		}
	}
	return out, nil
}

// SelectOne returns the first match in document pre-order. The
// traversal short-circuits at the first hit; the full match set is
// never computed.
func (e *Engine) SelectOne(root dom.NodeID, sel *Selector) (dom.NodeID, bool, error) {
	if e.tree.Data(root) == nil {
		return 0, false, dom.ErrInvalidNode
	}
	e.refresh()
	for id := range e.tree.Descendants(root) {
		n := e.m.nodes[id]
		if n == nil {
			continue
		}
		if e.m.match(sel, n) {
			return id, true, nil
		}
	}
	return 0, false, nil
}

// Select compiles src and evaluates it against the subtree rooted at
// root in a single step.
func Select(tree *dom.Tree, root dom.NodeID, src string) ([]dom.NodeID, error) {
	sel, err := Compile(src)
	if err != nil {
		return nil, err
	}
	return New(tree).Select(root, sel)
}

// SelectOne compiles src and returns the first match.
func SelectOne(tree *dom.Tree, root dom.NodeID, src string) (dom.NodeID, bool, error) {
	sel, err := Compile(src)
	if err != nil {
		return 0, false, err
	}
	return New(tree).SelectOne(root, sel)
}
