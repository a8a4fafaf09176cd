// Package dom implements the arena-owned document tree. All nodes live
// in a single Tree; they are addressed by opaque NodeIDs and linked by
// parent/child/sibling ids rather than mutual pointers. Node slots are
// only reclaimed when the tree itself becomes unreachable, so ids held
// by callers (for example, cached selector matches) stay valid for the
// lifetime of the tree.
package dom

// QuirksMode is the document-wide rendering compatibility flag. It is
// recorded on the tree but never interpreted by this library.
type QuirksMode int

const (
	NoQuirks QuirksMode = iota
	LimitedQuirks
	Quirks
)

// NodeID is an opaque, stable handle into a Tree. The zero NodeID is
// never a valid node. Ids are only meaningful for the tree that issued
// them; using a NodeID with a different tree is a contract violation.
type NodeID uint32

type node struct {
	parent     NodeID
	firstChild NodeID
	lastChild  NodeID
	prev       NodeID
	next       NodeID
	data       NodeData
}

// Tree is the arena store. It owns every node and all structural
// links. A Tree supports unsynchronized concurrent reads only while no
// mutation is in flight; callers must serialize writers against
// readers.
type Tree struct {
	nodes      []node
	gen        uint64
	quirks     QuirksMode
	namespaces map[string]string
}

// New creates a tree holding a single Document root.
func New() *Tree {
	return NewWithCapacity(8)
}

// NewWithCapacity creates a tree with room for n nodes before the
// arena reallocates.
func NewWithCapacity(n int) *Tree {
	if n < 1 {
		n = 1
	}
	t := &Tree{
		nodes:      make([]node, 0, n),
		namespaces: make(map[string]string),
	}
	t.nodes = append(t.nodes, node{data: &DocumentData{}})
	return t
}

// Root returns the Document node. It always exists, has no parent, and
// is never removed.
func (t *Tree) Root() NodeID {
	return 1
}

// Len returns the number of nodes allocated in the arena, including
// detached ones.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Generation returns a counter that increases with every mutation.
// Read-side caches (the selector mirror) use it to detect staleness.
func (t *Tree) Generation() uint64 {
	return t.gen
}

// MarkMutated records a payload-only mutation, such as editing an
// ElementData's attributes through Data. Structural operations bump
// the generation themselves; in-place payload edits are invisible to
// the tree and need this explicit touch.
func (t *Tree) MarkMutated() {
	t.gen++
}

func (t *Tree) QuirksMode() QuirksMode {
	return t.quirks
}

func (t *Tree) SetQuirksMode(mode QuirksMode) {
	t.quirks = mode
}

// Namespaces returns the prefix to namespace-URI map accumulated while
// building the tree. The map is live; treat it as read-only.
func (t *Tree) Namespaces() map[string]string {
	return t.namespaces
}

// DeclareNamespace records a prefix binding observed during parsing.
func (t *Tree) DeclareNamespace(prefix, uri string) {
	t.namespaces[prefix] = uri
}

func (t *Tree) node(id NodeID) (*node, error) {
	if id == 0 || int(id) > len(t.nodes) {
		return nil, ErrInvalidNode
	}
	return &t.nodes[id-1], nil
}

// Data returns the payload of a node, or nil for an invalid id. The
// returned value is the live payload: mutating a *TextData or
// *ElementData obtained here changes the tree. Callers editing a
// payload in place must follow up with MarkMutated so read-side caches
// notice the change.
func (t *Tree) Data(id NodeID) NodeData {
	n, err := t.node(id)
	if err != nil {
		return nil
	}
	return n.data
}

// CreateNode allocates an orphaned node holding data. Creating a
// second Document is rejected; the root is the only Document node.
func (t *Tree) CreateNode(data NodeData) (NodeID, error) {
	if data == nil {
		return 0, ErrInvalidOperation
	}
	if data.Type() == DocumentNodeType {
		return 0, ErrInvalidOperation
	}
	t.nodes = append(t.nodes, node{data: data})
	t.gen++
	return NodeID(len(t.nodes)), nil
}

// Parent returns the parent id, or zero for the root, detached nodes,
// and invalid ids.
func (t *Tree) Parent(id NodeID) NodeID {
	n, err := t.node(id)
	if err != nil {
		return 0
	}
	return n.parent
}

func (t *Tree) FirstChild(id NodeID) NodeID {
	n, err := t.node(id)
	if err != nil {
		return 0
	}
	return n.firstChild
}

func (t *Tree) LastChild(id NodeID) NodeID {
	n, err := t.node(id)
	if err != nil {
		return 0
	}
	return n.lastChild
}

func (t *Tree) PrevSibling(id NodeID) NodeID {
	n, err := t.node(id)
	if err != nil {
		return 0
	}
	return n.prev
}

func (t *Tree) NextSibling(id NodeID) NodeID {
	n, err := t.node(id)
	if err != nil {
		return 0
	}
	return n.next
}

// checkAttach validates the common preconditions for linking child
// under parent: both ids belong to this tree, the parent kind may have
// children, the child is not the Document, and the parent is not
// inside the child's subtree.
func (t *Tree) checkAttach(parent, child NodeID) error {
	p, err := t.node(parent)
	if err != nil {
		return err
	}
	c, err := t.node(child)
	if err != nil {
		return err
	}
	if leafKind(p.data) {
		return ErrInvalidOperation
	}
	if c.data.Type() == DocumentNodeType {
		return ErrInvalidOperation
	}
	// walk up from parent; hitting child would create a cycle
	for cur := parent; cur != 0; cur = t.Parent(cur) {
		if cur == child {
			return ErrInvalidOperation
		}
	}
	return nil
}

// detach unlinks id from its parent without touching the subtree below
// it. No-op for nodes that are already orphaned.
func (t *Tree) detach(id NodeID) {
	n, err := t.node(id)
	if err != nil {
		return
	}
	if n.parent == 0 {
		return
	}
	parent := &t.nodes[n.parent-1]
	if n.prev != 0 {
		t.nodes[n.prev-1].next = n.next
	} else {
		parent.firstChild = n.next
	}
	if n.next != 0 {
		t.nodes[n.next-1].prev = n.prev
	} else {
		parent.lastChild = n.prev
	}
	n.parent = 0
	n.prev = 0
	n.next = 0
}

// Detach removes a node (and implicitly its whole subtree) from its
// parent. The node becomes orphaned; its descendants are untouched and
// the subtree may be re-attached later.
func (t *Tree) Detach(id NodeID) error {
	n, err := t.node(id)
	if err != nil {
		return err
	}
	if n.data.Type() == DocumentNodeType {
		return ErrInvalidOperation
	}
	t.detach(id)
	t.gen++
	return nil
}

// Append moves child to the end of parent's child list. A child that
// is already attached somewhere is detached first; the mutation is a
// move, never a copy.
func (t *Tree) Append(parent, child NodeID) error {
	if err := t.checkAttach(parent, child); err != nil {
		return err
	}
	t.detach(child)

	p := &t.nodes[parent-1]
	c := &t.nodes[child-1]
	c.parent = parent
	c.prev = p.lastChild
	if p.lastChild != 0 {
		t.nodes[p.lastChild-1].next = child
	} else {
		p.firstChild = child
	}
	p.lastChild = child
	t.gen++
	return nil
}

// InsertBefore moves newNode immediately before sibling, under
// sibling's parent. sibling must be attached.
func (t *Tree) InsertBefore(sibling, newNode NodeID) error {
	s, err := t.node(sibling)
	if err != nil {
		return err
	}
	if s.parent == 0 || sibling == newNode {
		return ErrInvalidOperation
	}
	parent := s.parent
	if err := t.checkAttach(parent, newNode); err != nil {
		return err
	}
	t.detach(newNode)

	s = &t.nodes[sibling-1] // re-fetch: detach may have shifted links
	n := &t.nodes[newNode-1]
	n.parent = parent
	n.next = sibling
	n.prev = s.prev
	if s.prev != 0 {
		t.nodes[s.prev-1].next = newNode
	} else {
		t.nodes[parent-1].firstChild = newNode
	}
	s.prev = newNode
	t.gen++
	return nil
}

// AppendText appends text content to parent. If the parent's last
// child is a Text node the contents are extended in place; otherwise a
// new Text node is created and appended. This is the sole mechanism
// that keeps adjacent text siblings merged.
func (t *Tree) AppendText(parent NodeID, text string) error {
	p, err := t.node(parent)
	if err != nil {
		return err
	}
	if leafKind(p.data) {
		return ErrInvalidOperation
	}
	if text == "" {
		return nil
	}
	if last := p.lastChild; last != 0 {
		if td, ok := t.nodes[last-1].data.(*TextData); ok {
			td.Contents += text
			t.gen++
			return nil
		}
	}
	id, err := t.CreateNode(NewText(text))
	if err != nil {
		return err
	}
	return t.Append(parent, id)
}

// CloneSubtree deep-copies a node and its descendants into fresh ids
// in the same tree. The copy is orphaned; sibling and parent links of
// the source are not carried over. The Document root cannot be cloned.
func (t *Tree) CloneSubtree(id NodeID) (NodeID, error) {
	n, err := t.node(id)
	if err != nil {
		return 0, err
	}
	if n.data.Type() == DocumentNodeType {
		return 0, ErrInvalidOperation
	}
	return t.cloneRec(id)
}

func (t *Tree) cloneRec(id NodeID) (NodeID, error) {
	src, err := t.node(id)
	if err != nil {
		return 0, err
	}
	cp, err := t.CreateNode(src.data.clone())
	if err != nil {
		return 0, err
	}
	for child := t.FirstChild(id); child != 0; child = t.NextSibling(child) {
		cc, err := t.cloneRec(child)
		if err != nil {
			return 0, err
		}
		if err := t.Append(cp, cc); err != nil {
			return 0, err
		}
	}
	return cp, nil
}
