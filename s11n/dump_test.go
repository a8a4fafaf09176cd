package s11n

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lestrrat-go/treedom/dom"
)

func element(t *testing.T, tree *dom.Tree, parent dom.NodeID, name string, attrs ...dom.Attr) dom.NodeID {
	t.Helper()
	id, err := tree.CreateNode(dom.NewElement(dom.HTMLName(name), attrs))
	require.NoError(t, err)
	require.NoError(t, tree.Append(parent, id))
	return id
}

func TestDumpElementHTML(t *testing.T) {
	tree := dom.New()
	div := element(t, tree, tree.Root(), "div", dom.Attr{Name: dom.Name("class"), Value: "a b"})
	require.NoError(t, tree.AppendText(div, `x < y & "z"`))

	out, err := DumpString(tree, div, HTML)
	require.NoError(t, err)
	require.Equal(t, `<div class="a b">x &lt; y &amp; "z"</div>`, out,
		"quotes are not escaped in text content")
}

func TestDumpEscaping(t *testing.T) {
	tree := dom.New()
	div := element(t, tree, tree.Root(), "div",
		dom.Attr{Name: dom.Name("title"), Value: `a"b&c<d`})
	require.NoError(t, tree.AppendText(div, "1 > 0"))

	out, err := DumpString(tree, div, HTML)
	require.NoError(t, err)
	require.Equal(t, `<div title="a&quot;b&amp;c<d">1 &gt; 0</div>`, out,
		"text escapes angle brackets, attribute values only quotes and ampersands")
}

func TestDumpVoidElements(t *testing.T) {
	tree := dom.New()
	div := element(t, tree, tree.Root(), "div")
	element(t, tree, div, "br")
	element(t, tree, div, "img", dom.Attr{Name: dom.Name("src"), Value: "x.png"})

	out, err := DumpString(tree, div, HTML)
	require.NoError(t, err)
	require.Equal(t, `<div><br><img src="x.png"></div>`, out, "void elements have no close tag")

	out, err = DumpString(tree, div, XML)
	require.NoError(t, err)
	require.Equal(t, `<div><br/><img src="x.png"/></div>`, out,
		"XML self-closes childless elements instead")
}

func TestDumpRawText(t *testing.T) {
	tree := dom.New()
	script := element(t, tree, tree.Root(), "script")
	require.NoError(t, tree.AppendText(script, "if (a < b && c > d) {}"))

	out, err := DumpString(tree, script, HTML)
	require.NoError(t, err)
	require.Equal(t, "<script>if (a < b && c > d) {}</script>", out,
		"script contents are not escaped")

	style := element(t, tree, tree.Root(), "style")
	require.NoError(t, tree.AppendText(style, "a > b { color: red }"))
	out, err = DumpString(tree, style, HTML)
	require.NoError(t, err)
	require.Equal(t, "<style>a > b { color: red }</style>", out)
}

func TestDumpDoctype(t *testing.T) {
	tree := dom.New()
	dt, err := tree.CreateNode(dom.NewDoctype("html", "", ""))
	require.NoError(t, err)
	require.NoError(t, tree.Append(tree.Root(), dt))

	out, err := DumpString(tree, dt, HTML)
	require.NoError(t, err)
	require.Equal(t, "<!DOCTYPE html>", out)

	full, err := tree.CreateNode(dom.NewDoctype("html",
		"-//W3C//DTD XHTML 1.0 Strict//EN",
		"http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd"))
	require.NoError(t, err)
	require.NoError(t, tree.Append(tree.Root(), full))

	out, err = DumpString(tree, full, XML)
	require.NoError(t, err)
	require.Equal(t,
		`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">`,
		out, "XML doctypes keep public and system ids")

	out, err = DumpString(tree, full, HTML)
	require.NoError(t, err)
	require.Equal(t, "<!DOCTYPE html>", out, "HTML doctypes keep the name only")
}

func TestDumpCommentAndPI(t *testing.T) {
	tree := dom.New()
	c, err := tree.CreateNode(dom.NewComment(" hello "))
	require.NoError(t, err)
	require.NoError(t, tree.Append(tree.Root(), c))

	out, err := DumpString(tree, c, HTML)
	require.NoError(t, err)
	require.Equal(t, "<!-- hello -->", out)

	pi, err := tree.CreateNode(dom.NewProcessingInstruction("xml-stylesheet", `href="a.css"`))
	require.NoError(t, err)
	require.NoError(t, tree.Append(tree.Root(), pi))

	out, err = DumpString(tree, pi, XML)
	require.NoError(t, err)
	require.Equal(t, `<?xml-stylesheet href="a.css"?>`, out)

	out, err = DumpString(tree, pi, HTML)
	require.NoError(t, err)
	require.Equal(t, `<?xml-stylesheet href="a.css">`, out, "HTML drops the closing question mark")
}

func TestDumpTreeSkipsDocument(t *testing.T) {
	tree := dom.New()
	dt, _ := tree.CreateNode(dom.NewDoctype("html", "", ""))
	require.NoError(t, tree.Append(tree.Root(), dt))
	html := element(t, tree, tree.Root(), "html")
	element(t, tree, html, "body")

	var sb strings.Builder
	d := Dumper{Mode: HTML}
	require.NoError(t, d.DumpTree(&sb, tree))
	require.Equal(t, "<!DOCTYPE html><html><body></body></html>", sb.String())
}

func TestDumpPrefixedNames(t *testing.T) {
	tree := dom.New()
	rect, err := tree.CreateNode(dom.NewElement(
		dom.QualName{Local: "rect", Namespace: dom.NamespaceSVG, Prefix: "svg"},
		[]dom.Attr{{
			Name:  dom.QualName{Local: "href", Namespace: dom.NamespaceXLink, Prefix: "xlink"},
			Value: "#x",
		}},
	))
	require.NoError(t, err)
	require.NoError(t, tree.Append(tree.Root(), rect))

	out, err := DumpString(tree, rect, XML)
	require.NoError(t, err)
	require.Equal(t, `<svg:rect xlink:href="#x"/>`, out, "prefixes survive serialization")
}

func TestDumpInvalidNode(t *testing.T) {
	tree := dom.New()
	_, err := DumpString(tree, 999, HTML)
	require.Equal(t, dom.ErrInvalidNode, err)
}
