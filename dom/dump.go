package dom

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Dump renders the subtree rooted at id as an indented tree, one line
// per node. Intended for debugging and the lint tool's --tree flag.
func Dump(t *Tree, id NodeID) string {
	root := treeprint.New()
	root.SetValue(dumpLabel(t, id))
	dumpInto(root, t, id)
	return root.String()
}

func dumpInto(branch treeprint.Tree, t *Tree, id NodeID) {
	for c := range t.Children(id) {
		if t.FirstChild(c) != 0 {
			dumpInto(branch.AddBranch(dumpLabel(t, c)), t, c)
		} else {
			branch.AddNode(dumpLabel(t, c))
		}
	}
}

func dumpLabel(t *Tree, id NodeID) string {
	switch data := t.Data(id).(type) {
	case *DocumentData:
		return "#document"
	case *DoctypeData:
		return fmt.Sprintf("<!DOCTYPE %s>", data.Name)
	case *CommentData:
		return fmt.Sprintf("#comment %q", data.Contents)
	case *TextData:
		return fmt.Sprintf("#text %q", data.Contents)
	case *ProcessingInstructionData:
		return fmt.Sprintf("<?%s %s?>", data.Target, data.Data)
	case *ElementData:
		label := "<" + data.Name.String()
		for _, attr := range data.Attrs {
			label += fmt.Sprintf(" %s=%q", attr.Name.String(), attr.Value)
		}
		return label + ">"
	}
	return "#invalid"
}
