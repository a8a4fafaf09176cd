package sink

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lestrrat-go/treedom/dom"
)

func TestCreateElementDeclaresNamespace(t *testing.T) {
	b := NewTreeBuilder(nil)

	name := dom.QualName{Local: "rect", Namespace: dom.NamespaceSVG, Prefix: "svg"}
	el, err := b.CreateElement(name, nil, ElementFlags{})
	require.NoError(t, err)
	require.NoError(t, b.Append(b.Document(), el))

	require.Equal(t, dom.NamespaceSVG, b.Tree().Namespaces()["svg"],
		"prefix binding recorded on the tree")
}

func TestAppendTextBeforeSibling(t *testing.T) {
	b := NewTreeBuilder(nil)
	tree := b.Tree()

	div, _ := b.CreateElement(dom.HTMLName("div"), nil, ElementFlags{})
	require.NoError(t, b.Append(b.Document(), div))
	table, _ := b.CreateElement(dom.HTMLName("table"), nil, ElementFlags{})
	require.NoError(t, b.Append(div, table))

	require.NoError(t, b.AppendTextBeforeSibling(table, "a"))
	require.NoError(t, b.AppendTextBeforeSibling(table, "b"),
		"second insert merges into the text node already there")

	txt := tree.FirstChild(div)
	require.Equal(t, "ab", tree.Data(txt).(*dom.TextData).Contents)
	require.Equal(t, table, tree.NextSibling(txt), "text sits right before the table")
	require.Equal(t, 2, len(collectChildren(tree, div)), "no adjacent text siblings")

	require.NoError(t, b.AppendTextBeforeSibling(table, ""), "empty text is a no-op")

	orphan, _ := b.CreateElement(dom.HTMLName("i"), nil, ElementFlags{})
	require.Equal(t, dom.ErrInvalidOperation, b.AppendTextBeforeSibling(orphan, "x"),
		"sibling must be attached")
}

func TestAddAttrsIfMissing(t *testing.T) {
	b := NewTreeBuilder(nil)

	el, _ := b.CreateElement(dom.HTMLName("html"), []dom.Attr{
		{Name: dom.Name("lang"), Value: "en"},
	}, ElementFlags{})
	require.NoError(t, b.Append(b.Document(), el))

	require.NoError(t, b.AddAttrsIfMissing(el, []dom.Attr{
		{Name: dom.Name("lang"), Value: "ja"},
		{Name: dom.Name("class"), Value: "page"},
	}))

	data := b.Tree().Data(el).(*dom.ElementData)
	require.Len(t, data.Attrs, 2)
	require.Equal(t, "en", data.Attrs[0].Value, "existing attribute wins")
	require.Equal(t, "class", data.Attrs[1].Name.Local, "missing attribute appended")
	require.True(t, data.HasClass("page"), "class cache was reset")
}

func TestTemplateContents(t *testing.T) {
	b := NewTreeBuilder(nil)

	tmpl, _ := b.CreateElement(dom.HTMLName("template"), nil, ElementFlags{Template: true})
	content, err := b.TemplateContents(tmpl)
	require.NoError(t, err)
	require.Equal(t, tmpl, content, "the template element is its own content root")

	plain, _ := b.CreateElement(dom.HTMLName("div"), nil, ElementFlags{})
	_, err = b.TemplateContents(plain)
	require.Equal(t, dom.ErrInvalidNode, err, "non-template elements have no contents")
}

func TestReparentChildren(t *testing.T) {
	b := NewTreeBuilder(nil)
	tree := b.Tree()

	from, _ := b.CreateElement(dom.HTMLName("div"), nil, ElementFlags{})
	to, _ := b.CreateElement(dom.HTMLName("section"), nil, ElementFlags{})
	require.NoError(t, b.Append(b.Document(), from))
	require.NoError(t, b.Append(b.Document(), to))

	a, _ := b.CreateElement(dom.HTMLName("a"), nil, ElementFlags{})
	require.NoError(t, b.Append(from, a))
	require.NoError(t, b.AppendText(from, "x"))
	c, _ := b.CreateElement(dom.HTMLName("c"), nil, ElementFlags{})
	require.NoError(t, b.Append(from, c))

	require.NoError(t, b.ReparentChildren(from, to))
	require.Zero(t, tree.FirstChild(from), "source is empty")
	require.Equal(t, []dom.NodeID{a, tree.PrevSibling(c), c}, collectChildren(tree, to),
		"order preserved")
}

func TestReparentChildrenIntoSelf(t *testing.T) {
	b := NewTreeBuilder(nil)

	p, _ := b.CreateElement(dom.HTMLName("div"), nil, ElementFlags{})
	require.NoError(t, b.Append(b.Document(), p))
	require.NoError(t, b.AppendText(p, "x"))

	require.Equal(t, dom.ErrInvalidOperation, b.ReparentChildren(p, p),
		"a parent cannot adopt its own children")
	require.Equal(t, 1, len(collectChildren(b.Tree(), p)), "children untouched")
}

func TestReparentChildrenMergesText(t *testing.T) {
	b := NewTreeBuilder(nil)
	tree := b.Tree()

	from, _ := b.CreateElement(dom.HTMLName("div"), nil, ElementFlags{})
	to, _ := b.CreateElement(dom.HTMLName("section"), nil, ElementFlags{})
	require.NoError(t, b.Append(b.Document(), from))
	require.NoError(t, b.Append(b.Document(), to))

	require.NoError(t, b.AppendText(to, "a"))
	require.NoError(t, b.AppendText(from, "b"))
	span, _ := b.CreateElement(dom.HTMLName("span"), nil, ElementFlags{})
	require.NoError(t, b.Append(from, span))
	require.NoError(t, b.AppendText(from, "c"))

	require.NoError(t, b.ReparentChildren(from, to))
	require.Zero(t, tree.FirstChild(from), "source is empty")

	children := collectChildren(tree, to)
	require.Len(t, children, 3, "no adjacent text siblings after the move")
	require.Equal(t, "ab", tree.Data(children[0]).(*dom.TextData).Contents,
		"leading text merged into the destination's trailing text")
	require.Equal(t, span, children[1])
	require.Equal(t, "c", tree.Data(children[2]).(*dom.TextData).Contents)
}

func TestAppendDoctypeToDocument(t *testing.T) {
	b := NewTreeBuilder(nil)

	dt, err := b.CreateDoctype("html", "", "")
	require.NoError(t, err)
	require.NoError(t, b.AppendDoctypeToDocument(dt))
	require.Equal(t, dt, b.Tree().FirstChild(b.Document()))

	div, _ := b.CreateElement(dom.HTMLName("div"), nil, ElementFlags{})
	require.Equal(t, dom.ErrInvalidNode, b.AppendDoctypeToDocument(div),
		"only doctype payloads are accepted")
}

func TestPopAndSameNode(t *testing.T) {
	b := NewTreeBuilder(nil)
	el, _ := b.CreateElement(dom.HTMLName("div"), nil, ElementFlags{})

	require.NoError(t, b.Pop(el))
	require.Equal(t, dom.ErrInvalidNode, b.Pop(0))
	require.True(t, b.SameNode(el, el))
	require.False(t, b.SameNode(el, b.Document()))

	name, err := b.ElemName(el)
	require.NoError(t, err)
	require.Equal(t, "div", name.Local)
}

func collectChildren(tree *dom.Tree, id dom.NodeID) []dom.NodeID {
	var out []dom.NodeID
	for c := range tree.Children(id) {
		out = append(out, c)
	}
	return out
}
