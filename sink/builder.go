package sink

import (
	"github.com/lestrrat-go/pdebug"
	"github.com/lestrrat-go/treedom/dom"
)

// TreeBuilder applies bridge events to a dom.Tree.
type TreeBuilder struct {
	tree *dom.Tree
}

var _ Sink = (*TreeBuilder)(nil)

// NewTreeBuilder creates a builder writing into tree. If tree is nil a
// fresh one is allocated.
func NewTreeBuilder(tree *dom.Tree) *TreeBuilder {
	if tree == nil {
		tree = dom.New()
	}
	return &TreeBuilder{tree: tree}
}

// Tree returns the tree under construction.
func (b *TreeBuilder) Tree() *dom.Tree {
	return b.tree
}

func (b *TreeBuilder) Document() dom.NodeID {
	return b.tree.Root()
}

func (b *TreeBuilder) SetQuirksMode(mode dom.QuirksMode) {
	b.tree.SetQuirksMode(mode)
}

func (b *TreeBuilder) CreateDoctype(name, publicID, systemID string) (dom.NodeID, error) {
	return b.tree.CreateNode(dom.NewDoctype(name, publicID, systemID))
}

func (b *TreeBuilder) CreateElement(name dom.QualName, attrs []dom.Attr, flags ElementFlags) (dom.NodeID, error) {
	if pdebug.Enabled {
		g := pdebug.Marker("sink.CreateElement %s", name.String())
		defer g.End()
	}
	if name.Prefix != "" && name.Namespace != "" {
		b.tree.DeclareNamespace(name.Prefix, name.Namespace)
	}
	data := dom.NewElement(name, attrs)
	data.Template = flags.Template
	data.MathMLAnnotationXMLIntegrationPoint = flags.MathMLAnnotationXMLIntegrationPoint
	return b.tree.CreateNode(data)
}

func (b *TreeBuilder) CreateComment(text string) (dom.NodeID, error) {
	return b.tree.CreateNode(dom.NewComment(text))
}

func (b *TreeBuilder) CreatePI(target, data string) (dom.NodeID, error) {
	return b.tree.CreateNode(dom.NewProcessingInstruction(target, data))
}

func (b *TreeBuilder) Append(parent, child dom.NodeID) error {
	return b.tree.Append(parent, child)
}

func (b *TreeBuilder) AppendText(parent dom.NodeID, text string) error {
	return b.tree.AppendText(parent, text)
}

func (b *TreeBuilder) AppendBeforeSibling(sibling, newNode dom.NodeID) error {
	return b.tree.InsertBefore(sibling, newNode)
}

func (b *TreeBuilder) AppendTextBeforeSibling(sibling dom.NodeID, text string) error {
	if text == "" {
		return nil
	}
	if b.tree.Parent(sibling) == 0 {
		return dom.ErrInvalidOperation
	}
	// The merge check runs against the node preceding the insertion
	// point, not the insertion point itself.
	if prev := b.tree.PrevSibling(sibling); prev != 0 {
		if td, ok := b.tree.Data(prev).(*dom.TextData); ok {
			td.Contents += text
			b.tree.MarkMutated()
			return nil
		}
	}
	id, err := b.tree.CreateNode(dom.NewText(text))
	if err != nil {
		return err
	}
	return b.tree.InsertBefore(sibling, id)
}

func (b *TreeBuilder) AppendDoctypeToDocument(doctype dom.NodeID) error {
	if _, ok := b.tree.Data(doctype).(*dom.DoctypeData); !ok {
		return dom.ErrInvalidNode
	}
	return b.tree.Append(b.tree.Root(), doctype)
}

func (b *TreeBuilder) AddAttrsIfMissing(elem dom.NodeID, attrs []dom.Attr) error {
	data, ok := b.tree.Data(elem).(*dom.ElementData)
	if !ok {
		return dom.ErrInvalidNode
	}
	for _, attr := range attrs {
		present := false
		for _, have := range data.Attrs {
			if have.Name.Eq(attr.Name) {
				present = true
				break
			}
		}
		if !present {
			data.Attrs = append(data.Attrs, attr)
		}
	}
	data.ResetClasses()
	b.tree.MarkMutated()
	return nil
}

func (b *TreeBuilder) TemplateContents(elem dom.NodeID) (dom.NodeID, error) {
	data, ok := b.tree.Data(elem).(*dom.ElementData)
	if !ok || !data.Template {
		return 0, dom.ErrInvalidNode
	}
	// The template element doubles as its own content root; a
	// synthetic fragment node would leak into serialization.
	return elem, nil
}

func (b *TreeBuilder) ReparentChildren(oldParent, newParent dom.NodeID) error {
	if pdebug.Enabled {
		g := pdebug.Marker("sink.ReparentChildren %d -> %d", oldParent, newParent)
		defer g.End()
	}
	if b.tree.Data(newParent) == nil {
		return dom.ErrInvalidNode
	}
	if oldParent == newParent {
		return dom.ErrInvalidOperation
	}
	for child := b.tree.FirstChild(oldParent); child != 0; child = b.tree.FirstChild(oldParent) {
		// a moved Text child merges into a trailing Text child of the
		// destination rather than becoming its adjacent sibling
		if td, ok := b.tree.Data(child).(*dom.TextData); ok {
			if last := b.tree.LastChild(newParent); last != 0 {
				if dst, ok := b.tree.Data(last).(*dom.TextData); ok {
					dst.Contents += td.Contents
					if err := b.tree.Detach(child); err != nil {
						return err
					}
					continue
				}
			}
		}
		if err := b.tree.Append(newParent, child); err != nil {
			return err
		}
	}
	return nil
}

func (b *TreeBuilder) RemoveFromParent(target dom.NodeID) error {
	return b.tree.Detach(target)
}

func (b *TreeBuilder) SameNode(a, c dom.NodeID) bool {
	return a == c
}

func (b *TreeBuilder) ElemName(elem dom.NodeID) (dom.QualName, error) {
	data, ok := b.tree.Data(elem).(*dom.ElementData)
	if !ok {
		return dom.QualName{}, dom.ErrInvalidNode
	}
	return data.Name, nil
}

func (b *TreeBuilder) MarkScriptAlreadyStarted(elem dom.NodeID) error {
	data, ok := b.tree.Data(elem).(*dom.ElementData)
	if !ok {
		return dom.ErrInvalidNode
	}
	data.ScriptAlreadyStarted = true
	b.tree.MarkMutated()
	return nil
}

func (b *TreeBuilder) Pop(elem dom.NodeID) error {
	if b.tree.Data(elem) == nil {
		return dom.ErrInvalidNode
	}
	return nil
}
