package dom

// DataEqual compares two payloads for structural equality. Qualified
// names compare on (local, namespace); prefixes and cached values are
// ignored.
func DataEqual(a, b NodeData) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type() != b.Type() {
		return false
	}
	switch x := a.(type) {
	case *DocumentData:
		return true
	case *DoctypeData:
		y := b.(*DoctypeData)
		return x.Name == y.Name && x.PublicID == y.PublicID && x.SystemID == y.SystemID
	case *CommentData:
		return x.Contents == b.(*CommentData).Contents
	case *TextData:
		return x.Contents == b.(*TextData).Contents
	case *ProcessingInstructionData:
		y := b.(*ProcessingInstructionData)
		return x.Target == y.Target && x.Data == y.Data
	case *ElementData:
		y := b.(*ElementData)
		if !x.Name.Eq(y.Name) || x.Template != y.Template ||
			x.MathMLAnnotationXMLIntegrationPoint != y.MathMLAnnotationXMLIntegrationPoint {
			return false
		}
		if len(x.Attrs) != len(y.Attrs) {
			return false
		}
		for i := range x.Attrs {
			if !x.Attrs[i].Name.Eq(y.Attrs[i].Name) || x.Attrs[i].Value != y.Attrs[i].Value {
				return false
			}
		}
		return true
	}
	return false
}

// Equal reports whether the subtrees rooted at (a, aid) and (b, bid)
// are structurally identical, ignoring node ids.
func Equal(a *Tree, aid NodeID, b *Tree, bid NodeID) bool {
	if !DataEqual(a.Data(aid), b.Data(bid)) {
		return false
	}
	ac := a.FirstChild(aid)
	bc := b.FirstChild(bid)
	for ac != 0 && bc != 0 {
		if !Equal(a, ac, b, bc) {
			return false
		}
		ac = a.NextSibling(ac)
		bc = b.NextSibling(bc)
	}
	return ac == 0 && bc == 0
}
