package s11n

import (
	"io"
	"strings"
)

var (
	escQuot = []byte("&quot;")
	escAmp  = []byte("&amp;")
	escLt   = []byte("&lt;")
	escGt   = []byte("&gt;")
)

// EscapeText writes s with text-content escaping applied: '&', '<'
// and '>' are replaced with entity references.
func EscapeText(w io.Writer, s string) error {
	last := 0
	for i := 0; i < len(s); i++ {
		var esc []byte
		switch s[i] {
		case '&':
			esc = escAmp
		case '<':
			esc = escLt
		case '>':
			esc = escGt
		default:
			continue
		}
		if _, err := io.WriteString(w, s[last:i]); err != nil {
			return err
		}
		if _, err := w.Write(esc); err != nil {
			return err
		}
		last = i + 1
	}
	_, err := io.WriteString(w, s[last:])
	return err
}

// EscapeAttrValue writes s with attribute-value escaping applied: '&'
// and '"' are replaced with entity references.
func EscapeAttrValue(w io.Writer, s string) error {
	last := 0
	for i := 0; i < len(s); i++ {
		var esc []byte
		switch s[i] {
		case '&':
			esc = escAmp
		case '"':
			esc = escQuot
		default:
			continue
		}
		if _, err := io.WriteString(w, s[last:i]); err != nil {
			return err
		}
		if _, err := w.Write(esc); err != nil {
			return err
		}
		last = i + 1
	}
	_, err := io.WriteString(w, s[last:])
	return err
}

// quoteSystemLiteral picks the quote character for a doctype system
// literal; system ids may legally contain double quotes.
func quoteSystemLiteral(s string) byte {
	if strings.IndexByte(s, '"') >= 0 {
		return '\''
	}
	return '"'
}
