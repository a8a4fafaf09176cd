package treedom

import (
	"encoding/xml"
	"strings"

	"github.com/lestrrat-go/treedom/dom"
	"github.com/lestrrat-go/treedom/internal/stack"
	"github.com/lestrrat-go/treedom/sink"
)

type xmlFrame struct {
	id    dom.NodeID
	name  xml.Name
	decls int // prefix declarations scoped to this element
}

type prefixDecl struct {
	url    string
	prefix string
}

// xmlConstructor drives the construction bridge from decoder tokens.
// The decoder resolves namespace prefixes to URLs before we see them,
// so a scope stack of xmlns declarations maps URLs back to the
// prefixes the source used.
type xmlConstructor struct {
	sink   sink.Sink
	report func(msg string)

	open  stack.Stack[xmlFrame]
	decls []prefixDecl

	sawRoot    bool
	sawDoctype bool
}

func newXMLConstructor(s sink.Sink, report func(string)) *xmlConstructor {
	return &xmlConstructor{sink: s, report: report}
}

func (c *xmlConstructor) prefixFor(url string) string {
	if url == "" {
		return ""
	}
	if url == dom.NamespaceXML {
		return "xml"
	}
	for i := len(c.decls) - 1; i >= 0; i-- {
		if c.decls[i].url == url {
			return c.decls[i].prefix
		}
	}
	return ""
}

func (c *xmlConstructor) token(tok xml.Token) error {
	switch tok := tok.(type) {
	case xml.StartElement:
		return c.startElement(tok)
	case xml.EndElement:
		return c.endElement(tok)
	case xml.CharData:
		return c.charData(string(tok))
	case xml.Comment:
		return c.comment(string(tok))
	case xml.ProcInst:
		return c.procInst(tok)
	case xml.Directive:
		return c.directive(string(tok))
	}
	return nil
}

func (c *xmlConstructor) startElement(tok xml.StartElement) error {
	declared := 0
	for _, a := range tok.Attr {
		switch {
		case a.Name.Space == "xmlns":
			c.decls = append(c.decls, prefixDecl{url: a.Value, prefix: a.Name.Local})
			declared++
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			c.decls = append(c.decls, prefixDecl{url: a.Value, prefix: ""})
			declared++
		}
	}

	attrs := make([]dom.Attr, 0, len(tok.Attr))
	for _, a := range tok.Attr {
		attrs = append(attrs, dom.Attr{Name: c.attrName(a.Name), Value: a.Value})
	}

	qn := dom.QualName{
		Local:     tok.Name.Local,
		Namespace: tok.Name.Space,
		Prefix:    c.prefixFor(tok.Name.Space),
	}
	el, err := c.sink.CreateElement(qn, attrs, sink.ElementFlags{})
	if err != nil {
		return err
	}
	if top, ok := c.open.Top(); ok {
		if err := c.sink.Append(top.id, el); err != nil {
			return err
		}
	} else {
		if c.sawRoot {
			c.report("element <" + tok.Name.Local + "> after document root")
		}
		c.sawRoot = true
		if err := c.sink.Append(c.sink.Document(), el); err != nil {
			return err
		}
	}
	c.open.Push(xmlFrame{id: el, name: tok.Name, decls: declared})
	return nil
}

func (c *xmlConstructor) attrName(name xml.Name) dom.QualName {
	switch {
	case name.Space == "xmlns":
		return dom.QualName{Local: name.Local, Namespace: dom.NamespaceXMLNS, Prefix: "xmlns"}
	case name.Space == "" && name.Local == "xmlns":
		return dom.QualName{Local: "xmlns", Namespace: dom.NamespaceXMLNS}
	}
	return dom.QualName{
		Local:     name.Local,
		Namespace: name.Space,
		Prefix:    c.prefixFor(name.Space),
	}
}

func (c *xmlConstructor) endElement(tok xml.EndElement) error {
	idx := -1
	for i := c.open.Len() - 1; i >= 0; i-- {
		if c.open.At(i).name == tok.Name {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.report("unexpected end tag </" + tok.Name.Local + ">")
		return nil
	}
	for c.open.Len() > idx+1 {
		top, _ := c.open.Top()
		c.report("unclosed element <" + top.name.Local + ">")
		if err := c.popElement(); err != nil {
			return err
		}
	}
	return c.popElement()
}

func (c *xmlConstructor) popElement() error {
	top, ok := c.open.Top()
	if !ok {
		return nil
	}
	c.open.Pop()
	c.decls = c.decls[:len(c.decls)-top.decls]
	return c.sink.Pop(top.id)
}

func (c *xmlConstructor) charData(s string) error {
	if top, ok := c.open.Top(); ok {
		return c.sink.AppendText(top.id, s)
	}
	// character data outside the root element: whitespace is part of
	// the prolog or epilog, anything else is a well-formedness error
	if !isWhitespace(s) {
		c.report("text outside root element")
	}
	return nil
}

func (c *xmlConstructor) comment(text string) error {
	id, err := c.sink.CreateComment(text)
	if err != nil {
		return err
	}
	return c.appendTopLevel(id)
}

func (c *xmlConstructor) procInst(tok xml.ProcInst) error {
	if tok.Target == "xml" && !c.sawRoot && c.open.Len() == 0 {
		// the XML declaration is not part of the tree
		return nil
	}
	id, err := c.sink.CreatePI(tok.Target, string(tok.Inst))
	if err != nil {
		return err
	}
	return c.appendTopLevel(id)
}

func (c *xmlConstructor) appendTopLevel(id dom.NodeID) error {
	if top, ok := c.open.Top(); ok {
		return c.sink.Append(top.id, id)
	}
	return c.sink.Append(c.sink.Document(), id)
}

func (c *xmlConstructor) directive(text string) error {
	trimmed := strings.TrimSpace(text)
	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "DOCTYPE") {
		// entity and attlist declarations are not modeled
		return nil
	}
	if c.sawRoot || c.sawDoctype || c.open.Len() > 0 {
		c.report("unexpected doctype")
		return nil
	}
	c.sawDoctype = true

	rest := strings.TrimSpace(trimmed[len("DOCTYPE"):])
	name := rest
	if space := strings.IndexAny(rest, " \t\r\n"); space >= 0 {
		name = rest[:space]
		rest = strings.TrimSpace(rest[space:])
	} else {
		rest = ""
	}
	// internal subsets are skipped, not parsed
	if bracket := strings.IndexByte(rest, '['); bracket >= 0 {
		rest = strings.TrimSpace(rest[:bracket])
	}
	publicID, systemID := parseExternalID(rest)

	dt, err := c.sink.CreateDoctype(name, publicID, systemID)
	if err != nil {
		return err
	}
	return c.sink.AppendDoctypeToDocument(dt)
}

// finish closes any elements still open at end of input.
func (c *xmlConstructor) finish() error {
	for c.open.Len() > 0 {
		top, _ := c.open.Top()
		c.report("unclosed element <" + top.name.Local + "> at end of input")
		if err := c.popElement(); err != nil {
			return err
		}
	}
	if !c.sawRoot {
		c.report("missing root element")
	}
	return nil
}
