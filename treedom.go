// Package treedom builds queryable in-memory markup trees from HTML
// and XML input, fed incrementally in chunks. A Parser applies every
// complete token to the tree as soon as it is available; the finished
// tree is serialized with the s11n package and queried with CSS
// selectors via the selector package. This package provides one-shot
// conveniences over those pieces.
package treedom

import (
	"context"
	"io"

	"github.com/lestrrat-go/treedom/dom"
	"github.com/lestrrat-go/treedom/s11n"
	"github.com/lestrrat-go/treedom/selector"
)

const Version = "0.1.0"

// ParseHTML parses src in one shot. Recoverable problems in the input
// come back as diagnostics next to a fully usable tree; the error
// return is reserved for misuse (bad options, canceled context).
func ParseHTML(ctx context.Context, src []byte, options ...HTMLOption) (*dom.Tree, []ParseError, error) {
	p, err := NewHTMLParser(options...)
	if err != nil {
		return nil, nil, err
	}
	if err := p.Feed(ctx, src); err != nil {
		return nil, nil, err
	}
	tree, err := p.Finish(ctx)
	if err != nil {
		return nil, nil, err
	}
	return tree, p.Errors(), nil
}

// ParseHTMLString is ParseHTML for string input.
func ParseHTMLString(ctx context.Context, src string, options ...HTMLOption) (*dom.Tree, []ParseError, error) {
	return ParseHTML(ctx, []byte(src), options...)
}

// ParseXML parses src as XML in one shot.
func ParseXML(ctx context.Context, src []byte, options ...XMLOption) (*dom.Tree, []ParseError, error) {
	p, err := NewXMLParser(options...)
	if err != nil {
		return nil, nil, err
	}
	if err := p.Feed(ctx, src); err != nil {
		return nil, nil, err
	}
	tree, err := p.Finish(ctx)
	if err != nil {
		return nil, nil, err
	}
	return tree, p.Errors(), nil
}

// ParseXMLString is ParseXML for string input.
func ParseXMLString(ctx context.Context, src string, options ...XMLOption) (*dom.Tree, []ParseError, error) {
	return ParseXML(ctx, []byte(src), options...)
}

// SerializeHTML writes the markup of the subtree rooted at id using
// HTML serialization rules. Pass tree.Root() for the whole document.
func SerializeHTML(w io.Writer, tree *dom.Tree, id dom.NodeID) error {
	d := s11n.Dumper{Mode: s11n.HTML}
	if id == tree.Root() {
		return d.DumpTree(w, tree)
	}
	return d.DumpNode(w, tree, id)
}

// SerializeXML writes the markup of the subtree rooted at id using
// XML serialization rules.
func SerializeXML(w io.Writer, tree *dom.Tree, id dom.NodeID) error {
	d := s11n.Dumper{Mode: s11n.XML}
	if id == tree.Root() {
		return d.DumpTree(w, tree)
	}
	return d.DumpNode(w, tree, id)
}

// Select returns the elements under the document root matching the
// CSS selector src, in document order.
func Select(tree *dom.Tree, src string) ([]dom.NodeID, error) {
	return selector.Select(tree, tree.Root(), src)
}

// SelectOne returns the first element matching src, if any.
func SelectOne(tree *dom.Tree, src string) (dom.NodeID, bool, error) {
	return selector.SelectOne(tree, tree.Root(), src)
}
