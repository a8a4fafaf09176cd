// Package s11n serializes a dom.Tree back to markup text.
package s11n

import (
	"io"
	"strings"

	"github.com/lestrrat-go/treedom/dom"
)

// Mode selects the output dialect.
type Mode int

const (
	HTML Mode = iota
	XML
)

// Void elements never carry children and serialize without a closing
// tag (HTML mode only).
var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {},
	"hr": {}, "img": {}, "input": {}, "link": {}, "meta": {},
	"param": {}, "source": {}, "track": {}, "wbr": {},
}

// Raw-text elements emit their text children unescaped (HTML mode
// only).
var rawTextElements = map[string]struct{}{
	"script": {}, "style": {},
}

// Dumper walks a subtree in pre-order and writes it as markup.
type Dumper struct {
	Mode Mode
}

func (d *Dumper) writeString(out io.Writer, content string) error {
	_, err := io.WriteString(out, content)
	return err
}

// DumpTree serializes the children of the Document root; the Document
// node itself produces no output.
func (d *Dumper) DumpTree(out io.Writer, t *dom.Tree) error {
	for e := t.FirstChild(t.Root()); e != 0; e = t.NextSibling(e) {
		if err := d.DumpNode(out, t, e); err != nil {
			return err
		}
	}
	return nil
}

// DumpNode serializes the subtree rooted at id.
func (d *Dumper) DumpNode(out io.Writer, t *dom.Tree, id dom.NodeID) error {
	return d.dumpNode(out, t, id, false)
}

func (d *Dumper) dumpNode(out io.Writer, t *dom.Tree, id dom.NodeID, raw bool) error {
	switch data := t.Data(id).(type) {
	case nil:
		return dom.ErrInvalidNode
	case *dom.DocumentData:
		for e := t.FirstChild(id); e != 0; e = t.NextSibling(e) {
			if err := d.dumpNode(out, t, e, false); err != nil {
				return err
			}
		}
		return nil
	case *dom.TextData:
		if raw {
			return d.writeString(out, data.Contents)
		}
		return EscapeText(out, data.Contents)
	case *dom.CommentData:
		if err := d.writeString(out, "<!--"); err != nil {
			return err
		}
		if err := d.writeString(out, data.Contents); err != nil {
			return err
		}
		return d.writeString(out, "-->")
	case *dom.DoctypeData:
		return d.dumpDoctype(out, data)
	case *dom.ProcessingInstructionData:
		if err := d.writeString(out, "<?"+data.Target); err != nil {
			return err
		}
		if data.Data != "" {
			if err := d.writeString(out, " "+data.Data); err != nil {
				return err
			}
		}
		if d.Mode == XML {
			return d.writeString(out, "?>")
		}
		return d.writeString(out, ">")
	case *dom.ElementData:
		return d.dumpElement(out, t, id, data)
	}
	return dom.ErrInvalidOperation
}

func (d *Dumper) dumpDoctype(out io.Writer, data *dom.DoctypeData) error {
	// HTML output keeps only the name; public and system ids matter
	// for XML doctypes.
	if d.Mode == HTML {
		return d.writeString(out, "<!DOCTYPE "+data.Name+">")
	}
	if err := d.writeString(out, "<!DOCTYPE "+data.Name); err != nil {
		return err
	}
	if data.PublicID != "" {
		if err := d.writeString(out, ` PUBLIC "`+data.PublicID+`"`); err != nil {
			return err
		}
		if data.SystemID != "" {
			q := string(quoteSystemLiteral(data.SystemID))
			if err := d.writeString(out, " "+q+data.SystemID+q); err != nil {
				return err
			}
		}
	} else if data.SystemID != "" {
		q := string(quoteSystemLiteral(data.SystemID))
		if err := d.writeString(out, " SYSTEM "+q+data.SystemID+q); err != nil {
			return err
		}
	}
	return d.writeString(out, ">")
}

func (d *Dumper) dumpElement(out io.Writer, t *dom.Tree, id dom.NodeID, data *dom.ElementData) error {
	name := data.Name.String()

	if err := d.writeString(out, "<"+name); err != nil {
		return err
	}
	for _, attr := range data.Attrs {
		if err := d.writeString(out, " "+attr.Name.String()+`="`); err != nil {
			return err
		}
		if err := EscapeAttrValue(out, attr.Value); err != nil {
			return err
		}
		if err := d.writeString(out, `"`); err != nil {
			return err
		}
	}

	if d.Mode == HTML {
		local := strings.ToLower(data.Name.Local)
		htmlish := data.Name.Namespace == "" || data.Name.Namespace == dom.NamespaceHTML
		if _, void := voidElements[local]; void && htmlish {
			// no closing tag, and children are not serialized even
			// if the tree carries any
			return d.writeString(out, ">")
		}
		if err := d.writeString(out, ">"); err != nil {
			return err
		}
		_, raw := rawTextElements[local]
		raw = raw && htmlish
		for e := t.FirstChild(id); e != 0; e = t.NextSibling(e) {
			if err := d.dumpNode(out, t, e, raw); err != nil {
				return err
			}
		}
		return d.writeString(out, "</"+name+">")
	}

	if t.FirstChild(id) == 0 {
		return d.writeString(out, "/>")
	}
	if err := d.writeString(out, ">"); err != nil {
		return err
	}
	for e := t.FirstChild(id); e != 0; e = t.NextSibling(e) {
		if err := d.dumpNode(out, t, e, false); err != nil {
			return err
		}
	}
	return d.writeString(out, "</"+name+">")
}

// DumpString is a convenience wrapper returning the serialized subtree
// as a string.
func DumpString(t *dom.Tree, id dom.NodeID, mode Mode) (string, error) {
	var sb strings.Builder
	d := Dumper{Mode: mode}
	if err := d.DumpNode(&sb, t, id); err != nil {
		return "", err
	}
	return sb.String(), nil
}
