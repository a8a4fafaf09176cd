package selector_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lestrrat-go/treedom"
	"github.com/lestrrat-go/treedom/dom"
	"github.com/lestrrat-go/treedom/selector"
)

func parse(t *testing.T, src string) *dom.Tree {
	t.Helper()
	tree, diags, err := treedom.ParseHTMLString(context.Background(), src,
		treedom.WithFullDocument(false))
	require.NoError(t, err, "parse should succeed")
	require.Empty(t, diags, "no diagnostics expected for %q", src)
	return tree
}

func textOf(t *testing.T, tree *dom.Tree, id dom.NodeID) string {
	t.Helper()
	var out string
	for c := range tree.Descendants(id) {
		if td, ok := tree.Data(c).(*dom.TextData); ok {
			out += td.Contents
		}
	}
	return out
}

func TestCompile(t *testing.T) {
	sel, err := selector.Compile("div.note > span")
	require.NoError(t, err)
	require.Equal(t, "div.note > span", sel.String())

	_, err = selector.Compile("div >")
	require.Error(t, err, "malformed selector fails at compile time")
}

func TestSelect(t *testing.T) {
	tree := parse(t, `<div class="note"><span>a</span><b>x</b><span>b</span></div>`+
		`<div><span>c</span></div>`)

	t.Run("by tag", func(t *testing.T) {
		got, err := selector.Select(tree, tree.Root(), "span")
		require.NoError(t, err)
		require.Len(t, got, 3)
		require.Equal(t, "a", textOf(t, tree, got[0]), "document order")
		require.Equal(t, "c", textOf(t, tree, got[2]))
	})

	t.Run("by class and combinator", func(t *testing.T) {
		got, err := selector.Select(tree, tree.Root(), "div.note > span")
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, "b", textOf(t, tree, got[1]))
	})

	t.Run("sibling axis", func(t *testing.T) {
		got, err := selector.Select(tree, tree.Root(), "span + b")
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "x", textOf(t, tree, got[0]))
	})

	t.Run("no match", func(t *testing.T) {
		got, err := selector.Select(tree, tree.Root(), "table")
		require.NoError(t, err)
		require.Empty(t, got)
	})
}

func TestSelectSubtreeRoot(t *testing.T) {
	tree := parse(t, `<div id="x"><span>a</span></div><span>b</span>`)

	div, ok, err := selector.SelectOne(tree, tree.Root(), "#x")
	require.NoError(t, err)
	require.True(t, ok)

	got, err := selector.Select(tree, div, "span")
	require.NoError(t, err)
	require.Len(t, got, 1, "matching is scoped to the subtree")
	require.Equal(t, "a", textOf(t, tree, got[0]))

	// the subtree root itself is a candidate
	got, err = selector.Select(tree, div, "div")
	require.NoError(t, err)
	require.Equal(t, []dom.NodeID{div}, got)
}

func TestSelectOne(t *testing.T) {
	tree := parse(t, `<p>one</p><p>two</p>`)

	id, ok, err := selector.SelectOne(tree, tree.Root(), "p")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "one", textOf(t, tree, id), "first match in document order")

	_, ok, err = selector.SelectOne(tree, tree.Root(), "table")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEngineRefresh(t *testing.T) {
	tree := parse(t, `<div><span class="a">x</span></div>`)
	eng := selector.New(tree)

	sel := selector.MustCompile("span.a")
	got, err := eng.Select(tree.Root(), sel)
	require.NoError(t, err)
	require.Len(t, got, 1)
	span := got[0]

	// mutate: the cached mirror is stale now
	data := tree.Data(span).(*dom.ElementData)
	data.Attrs[0].Value = "b"
	data.ResetClasses()
	require.NoError(t, tree.Detach(span), "structural mutation bumps the generation")
	div, _, err := selector.SelectOne(tree, tree.Root(), "div")
	require.NoError(t, err)
	require.NoError(t, tree.Append(div, span))

	got, err = eng.Select(tree.Root(), sel)
	require.NoError(t, err)
	require.Empty(t, got, "stale match must disappear after refresh")

	got, err = eng.Select(tree.Root(), selector.MustCompile("span.b"))
	require.NoError(t, err)
	require.Equal(t, []dom.NodeID{span}, got)
}

func TestPayloadMutationInvalidates(t *testing.T) {
	tree := parse(t, `<div><span class="a">x</span></div>`)
	eng := selector.New(tree)

	sel := selector.MustCompile("span.b")
	got, err := eng.Select(tree.Root(), sel)
	require.NoError(t, err)
	require.Empty(t, got)

	span, _, err := selector.SelectOne(tree, tree.Root(), "span")
	require.NoError(t, err)

	// in-place attribute edits do not touch the structure, so the
	// tree has to be told about them
	data := tree.Data(span).(*dom.ElementData)
	data.Attrs[0].Value = "b"
	data.ResetClasses()
	tree.MarkMutated()

	got, err = eng.Select(tree.Root(), sel)
	require.NoError(t, err)
	require.Equal(t, []dom.NodeID{span}, got, "mirror rebuilt after MarkMutated")
}

func TestSelectInvalidRoot(t *testing.T) {
	tree := parse(t, `<p>x</p>`)
	_, err := selector.Select(tree, 999, "p")
	require.Equal(t, dom.ErrInvalidNode, err)
}

func TestPseudoClasses(t *testing.T) {
	tree := parse(t, `<ul><li>a</li><li>b</li><li>c</li></ul>`)

	got, err := selector.Select(tree, tree.Root(), "li:nth-child(2)")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "b", textOf(t, tree, got[0]))

	got, err = selector.Select(tree, tree.Root(), "li:last-child")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "c", textOf(t, tree, got[0]))
}
