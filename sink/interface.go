// Package sink defines the construction bridge: the narrow event
// interface a tokenizer/tree-construction engine drives to build a
// document tree, and a TreeBuilder that applies those events to a
// dom.Tree.
//
// The bridge is infallible with respect to document content. Any event
// order a conforming engine can emit, including sequences produced
// while recovering from malformed markup, is absorbed without
// corrupting the tree invariants. Errors are returned only for calls
// that violate the bridge's own preconditions (a handle the tree never
// issued, a structurally impossible reparent); those indicate a defect
// in the calling engine, not in the document.
package sink

import "github.com/lestrrat-go/treedom/dom"

// ElementFlags carries the per-element construction flags an engine
// resolves while creating an element.
type ElementFlags struct {
	Template bool

	MathMLAnnotationXMLIntegrationPoint bool
}

// Sink is the event set emitted by the construction engine, one event
// per primitive decision of the construction algorithm.
type Sink interface {
	// Document returns the handle of the Document root.
	Document() dom.NodeID

	// SetQuirksMode records the document compatibility mode. No tree
	// effect.
	SetQuirksMode(mode dom.QuirksMode)

	CreateDoctype(name, publicID, systemID string) (dom.NodeID, error)
	CreateElement(name dom.QualName, attrs []dom.Attr, flags ElementFlags) (dom.NodeID, error)
	CreateComment(text string) (dom.NodeID, error)
	CreatePI(target, data string) (dom.NodeID, error)

	Append(parent, child dom.NodeID) error
	AppendText(parent dom.NodeID, text string) error
	AppendBeforeSibling(sibling, newNode dom.NodeID) error
	// AppendTextBeforeSibling inserts text immediately before sibling,
	// merging into the previous sibling when that is a Text node.
	AppendTextBeforeSibling(sibling dom.NodeID, text string) error
	AppendDoctypeToDocument(doctype dom.NodeID) error

	// AddAttrsIfMissing extends an element's attribute list with the
	// attributes whose names are not present yet. Emitted by HTML
	// engines for duplicate <html> and <body> tags.
	AddAttrsIfMissing(elem dom.NodeID, attrs []dom.Attr) error

	// TemplateContents returns the content root of a template element.
	TemplateContents(elem dom.NodeID) (dom.NodeID, error)

	// ReparentChildren moves every child of oldParent to newParent,
	// preserving order.
	ReparentChildren(oldParent, newParent dom.NodeID) error

	RemoveFromParent(target dom.NodeID) error

	// SameNode is an identity comparison on handles. No mutation.
	SameNode(a, b dom.NodeID) bool

	// ElemName returns the qualified name of an element handle.
	ElemName(elem dom.NodeID) (dom.QualName, error)

	MarkScriptAlreadyStarted(elem dom.NodeID) error

	// Pop signals that end-tag processing for elem has completed. No
	// tree effect; exists for engine-side bookkeeping.
	Pop(elem dom.NodeID) error
}
