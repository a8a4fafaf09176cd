package selector

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/lestrrat-go/treedom/dom"
)

// mirror is a *html.Node projection of an arena tree at a fixed
// mutation generation. cascadia navigates the projection for
// combinators and structural pseudo-classes; matched nodes map back to
// arena ids through the nodes table.
type mirror struct {
	gen   uint64
	nodes map[dom.NodeID]*html.Node
}

func buildMirror(t *dom.Tree) *mirror {
	m := &mirror{
		gen:   t.Generation(),
		nodes: make(map[dom.NodeID]*html.Node, t.Len()),
	}
	root := &html.Node{Type: html.DocumentNode}
	m.build(t, t.Root(), root)
	return m
}

func (m *mirror) build(t *dom.Tree, id dom.NodeID, n *html.Node) {
	for c := range t.Children(id) {
		cn := m.convert(t, c)
		if cn == nil {
			continue
		}
		n.AppendChild(cn)
		m.build(t, c, cn)
	}
}

func (m *mirror) convert(t *dom.Tree, id dom.NodeID) *html.Node {
	switch data := t.Data(id).(type) {
	case *dom.TextData:
		return &html.Node{Type: html.TextNode, Data: data.Contents}
	case *dom.CommentData:
		return &html.Node{Type: html.CommentNode, Data: data.Contents}
	case *dom.ElementData:
		n := &html.Node{
			Type:     html.ElementNode,
			Data:     data.Name.Local,
			DataAtom: atom.Lookup([]byte(data.Name.Local)),
		}
		if data.Name.Namespace != "" && data.Name.Namespace != dom.NamespaceHTML {
			n.Namespace = data.Name.Namespace
		}
		for _, attr := range data.Attrs {
			n.Attr = append(n.Attr, html.Attribute{
				Namespace: attrNamespace(attr.Name),
				Key:       attr.Name.Local,
				Val:       attr.Value,
			})
		}
		m.nodes[id] = n
		return n
	}
	// doctype and processing-instruction nodes have no selector
	// surface and would confuse sibling-position pseudo classes
	return nil
}

func attrNamespace(name dom.QualName) string {
	if name.Namespace == "" || name.Namespace == dom.NamespaceHTML {
		return ""
	}
	return name.Namespace
}

func (m *mirror) match(sel *Selector, n *html.Node) bool {
	return sel.group.Match(n)
}
