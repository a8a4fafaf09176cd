package dom

import (
	"errors"
	"strings"
)

// NodeType represents the kind of a node in the document tree
type NodeType int

const (
	DocumentNodeType NodeType = iota + 1
	DoctypeNodeType
	CommentNodeType
	TextNodeType
	ProcessingInstructionNodeType
	ElementNodeType
)

var (
	ErrInvalidNode      = errors.New("invalid node")
	ErrInvalidOperation = errors.New("invalid operation")
)

// Well-known namespace URIs. Initialized once, never mutated.
const (
	NamespaceHTML   = "http://www.w3.org/1999/xhtml"
	NamespaceSVG    = "http://www.w3.org/2000/svg"
	NamespaceMathML = "http://www.w3.org/1998/Math/MathML"
	NamespaceXML    = "http://www.w3.org/XML/1998/namespace"
	NamespaceXMLNS  = "http://www.w3.org/2000/xmlns/"
	NamespaceXLink  = "http://www.w3.org/1999/xlink"
)

// QualName is a qualified name: local name, namespace URI, and an
// optional prefix. The prefix is serialization metadata only; identity
// is defined over (local, namespace).
type QualName struct {
	Local     string
	Namespace string
	Prefix    string
}

// Name creates a QualName in the null namespace.
func Name(local string) QualName {
	return QualName{Local: local}
}

// HTMLName creates a QualName in the HTML namespace.
func HTMLName(local string) QualName {
	return QualName{Local: local, Namespace: NamespaceHTML}
}

// Eq reports whether two qualified names are identical. Prefixes are
// ignored.
func (q QualName) Eq(other QualName) bool {
	return q.Local == other.Local && q.Namespace == other.Namespace
}

func (q QualName) String() string {
	if q.Prefix != "" {
		return q.Prefix + ":" + q.Local
	}
	return q.Local
}

// Attr is a single attribute. Elements store attributes as an ordered
// list; duplicate names are permitted at the storage level.
type Attr struct {
	Name  QualName
	Value string
}

// NodeData is the payload of a node. Exactly one concrete payload type
// exists per node kind.
type NodeData interface {
	Type() NodeType

	clone() NodeData
}

type DocumentData struct{}

func (*DocumentData) Type() NodeType { return DocumentNodeType }
func (*DocumentData) clone() NodeData {
	return &DocumentData{}
}

type DoctypeData struct {
	Name     string
	PublicID string
	SystemID string
}

func NewDoctype(name, publicID, systemID string) *DoctypeData {
	return &DoctypeData{Name: name, PublicID: publicID, SystemID: systemID}
}

func (*DoctypeData) Type() NodeType { return DoctypeNodeType }
func (d *DoctypeData) clone() NodeData {
	c := *d
	return &c
}

type CommentData struct {
	Contents string
}

func NewComment(contents string) *CommentData {
	return &CommentData{Contents: contents}
}

func (*CommentData) Type() NodeType { return CommentNodeType }
func (c *CommentData) clone() NodeData {
	cp := *c
	return &cp
}

// TextData is mutable in place: AppendText extends the contents of a
// trailing text sibling instead of creating a new node.
type TextData struct {
	Contents string
}

func NewText(contents string) *TextData {
	return &TextData{Contents: contents}
}

func (*TextData) Type() NodeType { return TextNodeType }
func (t *TextData) clone() NodeData {
	cp := *t
	return &cp
}

type ProcessingInstructionData struct {
	Target string
	Data   string
}

func NewProcessingInstruction(target, data string) *ProcessingInstructionData {
	return &ProcessingInstructionData{Target: target, Data: data}
}

func (*ProcessingInstructionData) Type() NodeType { return ProcessingInstructionNodeType }
func (p *ProcessingInstructionData) clone() NodeData {
	cp := *p
	return &cp
}

type ElementData struct {
	Name     QualName
	Attrs    []Attr
	Template bool

	MathMLAnnotationXMLIntegrationPoint bool

	// Set via the construction bridge when the tree builder has
	// already started the element's script.
	ScriptAlreadyStarted bool

	classes   []string
	classesOK bool
}

// NewElement creates an orphaned element payload. Attributes keep
// their given order.
func NewElement(name QualName, attrs []Attr) *ElementData {
	return &ElementData{Name: name, Attrs: attrs}
}

func (*ElementData) Type() NodeType { return ElementNodeType }
func (e *ElementData) clone() NodeData {
	cp := &ElementData{
		Name:                                e.Name,
		Attrs:                               append([]Attr(nil), e.Attrs...),
		Template:                            e.Template,
		MathMLAnnotationXMLIntegrationPoint: e.MathMLAnnotationXMLIntegrationPoint,
		ScriptAlreadyStarted:                e.ScriptAlreadyStarted,
	}
	return cp
}

// Get returns the value of the first attribute with the given local
// name in the null or HTML namespace.
func (e *ElementData) Get(local string) (string, bool) {
	for _, attr := range e.Attrs {
		if attr.Name.Local != local {
			continue
		}
		if attr.Name.Namespace == "" || attr.Name.Namespace == NamespaceHTML {
			return attr.Value, true
		}
	}
	return "", false
}

// ID returns the value of the first "id" attribute.
func (e *ElementData) ID() string {
	v, _ := e.Get("id")
	return v
}

// Classes returns the first "class" attribute value split on ASCII
// whitespace. The result is cached; call ResetClasses after mutating
// the attribute list.
func (e *ElementData) Classes() []string {
	if !e.classesOK {
		if v, ok := e.Get("class"); ok {
			e.classes = strings.Fields(v)
		} else {
			e.classes = nil
		}
		e.classesOK = true
	}
	return e.classes
}

func (e *ElementData) ResetClasses() {
	e.classes = nil
	e.classesOK = false
}

// HasClass reports whether the element's class list contains name.
func (e *ElementData) HasClass(name string) bool {
	for _, c := range e.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// leafKind reports whether nodes of this payload kind can never have
// children.
func leafKind(data NodeData) bool {
	switch data.Type() {
	case TextNodeType, CommentNodeType, ProcessingInstructionNodeType, DoctypeNodeType:
		return true
	}
	return false
}
