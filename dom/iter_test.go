package dom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildSample creates
//
//	root > div > (text, span > em, comment, b)
func buildSample(t *testing.T) (*Tree, map[string]NodeID) {
	t.Helper()
	tree := New()
	ids := make(map[string]NodeID)

	mk := func(name string, parent NodeID) NodeID {
		id, err := tree.CreateNode(NewElement(HTMLName(name), nil))
		require.NoError(t, err)
		require.NoError(t, tree.Append(parent, id))
		ids[name] = id
		return id
	}

	div := mk("div", tree.Root())
	require.NoError(t, tree.AppendText(div, "x"))
	ids["text"] = tree.FirstChild(div)
	span := mk("span", div)
	mk("em", span)
	comment, err := tree.CreateNode(NewComment("c"))
	require.NoError(t, err)
	require.NoError(t, tree.Append(div, comment))
	ids["comment"] = comment
	mk("b", div)
	return tree, ids
}

func collect(seq func(func(NodeID) bool)) []NodeID {
	var out []NodeID
	seq(func(id NodeID) bool {
		out = append(out, id)
		return true
	})
	return out
}

func TestChildren(t *testing.T) {
	tree, ids := buildSample(t)
	got := collect(tree.Children(ids["div"]))
	require.Equal(t, []NodeID{ids["text"], ids["span"], ids["comment"], ids["b"]}, got)

	require.Empty(t, collect(tree.Children(ids["em"])), "leaf element has no children")
	require.Empty(t, collect(tree.Children(0)), "invalid id yields nothing")
}

func TestChildElements(t *testing.T) {
	tree, ids := buildSample(t)
	got := collect(tree.ChildElements(ids["div"]))
	require.Equal(t, []NodeID{ids["span"], ids["b"]}, got, "non-elements are skipped")
}

func TestAncestors(t *testing.T) {
	tree, ids := buildSample(t)
	got := collect(tree.Ancestors(ids["em"]))
	require.Equal(t, []NodeID{ids["em"], ids["span"], ids["div"], tree.Root()}, got,
		"self first, root last")
}

func TestDescendants(t *testing.T) {
	tree, ids := buildSample(t)

	got := collect(tree.Descendants(ids["div"]))
	require.Equal(t, []NodeID{
		ids["div"], ids["text"], ids["span"], ids["em"], ids["comment"], ids["b"],
	}, got, "pre-order, starting at the subtree root")

	got = collect(tree.Descendants(tree.Root()))
	require.Equal(t, tree.Root(), got[0])
	require.Len(t, got, 7, "whole-tree walk covers every node")

	// early termination must not walk out of the subtree
	var seen []NodeID
	tree.Descendants(ids["span"])(func(id NodeID) bool {
		seen = append(seen, id)
		return len(seen) < 2
	})
	require.Equal(t, []NodeID{ids["span"], ids["em"]}, seen)
}

func TestSiblingElementAxis(t *testing.T) {
	tree, ids := buildSample(t)

	require.Equal(t, ids["span"], tree.PrevSiblingElement(ids["b"]),
		"comment between them is skipped")
	require.Equal(t, ids["b"], tree.NextSiblingElement(ids["span"]))
	require.Zero(t, tree.PrevSiblingElement(ids["span"]), "text before span is not an element")
	require.Zero(t, tree.NextSiblingElement(ids["b"]))
}
