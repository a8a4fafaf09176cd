package dom

import "iter"

// Children returns a lazy sequence over the direct children of id, in
// order. The sequence is finite and restartable; mutating the tree
// while a sequence is being consumed is undefined behavior.
func (t *Tree) Children(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for c := t.FirstChild(id); c != 0; c = t.NextSibling(c) {
			if !yield(c) {
				return
			}
		}
	}
}

// Ancestors returns a lazy sequence starting at id itself and walking
// up to the Document root.
func (t *Tree) Ancestors(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		if _, err := t.node(id); err != nil {
			return
		}
		for cur := id; cur != 0; cur = t.Parent(cur) {
			if !yield(cur) {
				return
			}
		}
	}
}

// Descendants returns a lazy pre-order traversal of the subtree rooted
// at id, starting with id itself.
func (t *Tree) Descendants(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		if _, err := t.node(id); err != nil {
			return
		}
		cur := id
		for {
			if !yield(cur) {
				return
			}
			if fc := t.FirstChild(cur); fc != 0 {
				cur = fc
				continue
			}
			for {
				if cur == id {
					return
				}
				if next := t.NextSibling(cur); next != 0 {
					cur = next
					break
				}
				cur = t.Parent(cur)
				if cur == 0 {
					return
				}
			}
		}
	}
}

// ChildElements returns the element-kind children of id, in order.
// Text, comment, and other non-element nodes are skipped; this is the
// sibling axis the selector adapter navigates.
func (t *Tree) ChildElements(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for c := range t.Children(id) {
			if data := t.Data(c); data != nil && data.Type() == ElementNodeType {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// PrevSiblingElement returns the closest preceding sibling that is an
// element, or zero.
func (t *Tree) PrevSiblingElement(id NodeID) NodeID {
	for cur := t.PrevSibling(id); cur != 0; cur = t.PrevSibling(cur) {
		if data := t.Data(cur); data != nil && data.Type() == ElementNodeType {
			return cur
		}
	}
	return 0
}

// NextSiblingElement returns the closest following sibling that is an
// element, or zero.
func (t *Tree) NextSiblingElement(id NodeID) NodeID {
	for cur := t.NextSibling(id); cur != 0; cur = t.NextSibling(cur) {
		if data := t.Data(cur); data != nil && data.Type() == ElementNodeType {
			return cur
		}
	}
	return 0
}
