package treedom

import (
	"github.com/lestrrat-go/option"

	"github.com/lestrrat-go/treedom/dom"
)

type Option = option.Interface

type identFullDocument struct{}
type identExactErrors struct{}
type identDiscardBOM struct{}
type identIframeSrcdoc struct{}
type identDropDoctype struct{}
type identQuirksMode struct{}
type identEncoding struct{}
type identFragmentContext struct{}

// HTMLOption configures an HTML parser.
type HTMLOption interface {
	Option
	htmlOption()
}

type htmlOption struct{ Option }

func (*htmlOption) htmlOption() {}

// XMLOption configures an XML parser.
type XMLOption interface {
	Option
	xmlOption()
}

type xmlOption struct{ Option }

func (*xmlOption) xmlOption() {}

// ParseOption configures either parser kind.
type ParseOption interface {
	Option
	htmlOption()
	xmlOption()
}

type parseOption struct{ Option }

func (*parseOption) htmlOption() {}
func (*parseOption) xmlOption() {}

// WithFullDocument controls whether the input is a complete document:
// implied html, head and body elements are created even when the tags
// are absent. Disabled, the input is parsed as a fragment whose nodes
// attach directly under the Document root. Default: true.
func WithFullDocument(v bool) HTMLOption {
	return &htmlOption{option.New(identFullDocument{}, v)}
}

// WithFragmentContext parses the input as a fragment in the context of
// the named element ("body" when empty). Implies WithFullDocument(false).
func WithFragmentContext(tag string) HTMLOption {
	return &htmlOption{option.New(identFragmentContext{}, tag)}
}

// WithExactErrors enables column tracking on parse diagnostics, at
// some bookkeeping cost. Default: false (line numbers only).
func WithExactErrors(v bool) ParseOption {
	return &parseOption{option.New(identExactErrors{}, v)}
}

// WithDiscardBOM controls whether a byte order mark at the beginning
// of the stream is consumed (UTF-16 input is transcoded accordingly).
// Default: true.
func WithDiscardBOM(v bool) ParseOption {
	return &parseOption{option.New(identDiscardBOM{}, v)}
}

// WithIframeSrcdoc marks the input as an iframe srcdoc document: a
// missing doctype does not trigger quirks mode.
func WithIframeSrcdoc(v bool) HTMLOption {
	return &htmlOption{option.New(identIframeSrcdoc{}, v)}
}

// WithDropDoctype drops any doctype from the tree instead of
// appending it to the Document.
func WithDropDoctype(v bool) HTMLOption {
	return &htmlOption{option.New(identDropDoctype{}, v)}
}

// WithQuirksMode sets the initial quirks mode. A doctype in the input
// may still change it.
func WithQuirksMode(v dom.QuirksMode) HTMLOption {
	return &htmlOption{option.New(identQuirksMode{}, v)}
}

// WithEncoding forces a source character encoding by label (for
// example "shift_jis"). Unknown labels are rejected when the parser is
// constructed. Default: UTF-8.
func WithEncoding(name string) ParseOption {
	return &parseOption{option.New(identEncoding{}, name)}
}
