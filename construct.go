package treedom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/lestrrat-go/treedom/dom"
	"github.com/lestrrat-go/treedom/internal/stack"
	"github.com/lestrrat-go/treedom/sink"
)

type htmlConfig struct {
	fullDocument bool
	exactErrors  bool
	discardBOM   bool
	iframeSrcdoc bool
	dropDoctype  bool
	quirks       dom.QuirksMode
	encoding     string
	context      string
}

type xmlConfig struct {
	exactErrors bool
	discardBOM  bool
	encoding    string
}

// openElement is one frame of the open element stack. contentNS is the
// namespace children of this element are created in; it differs from
// ns at HTML integration points inside foreign content.
type openElement struct {
	id        dom.NodeID
	name      string
	ns        string
	contentNS string
}

type docPhase int

const (
	phaseInitial docPhase = iota
	phaseInHead
	phaseInBody
)

// htmlConstructor drives the construction bridge from the token stream
// of the external HTML tokenizer. It is deliberately tolerant: any
// token order results in bridge events that keep the tree invariants
// intact, and deviations surface as diagnostics, never as failures.
type htmlConstructor struct {
	sink   sink.Sink
	cfg    htmlConfig
	report func(msg string)

	open  stack.Stack[openElement]
	phase docPhase

	htmlID dom.NodeID
	headID dom.NodeID
	bodyID dom.NodeID

	sawDoctype    bool
	quirksDecided bool
}

func newHTMLConstructor(s sink.Sink, cfg htmlConfig, report func(string)) *htmlConstructor {
	c := &htmlConstructor{sink: s, cfg: cfg, report: report}
	s.SetQuirksMode(cfg.quirks)
	return c
}

var headElements = map[string]bool{
	"base": true, "basefont": true, "bgsound": true, "link": true,
	"meta": true, "title": true, "style": true, "script": true,
	"noscript": true, "noframes": true, "template": true,
}

var htmlVoidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// Elements whose start tag implicitly closes an open p element.
var closesP = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"details": true, "div": true, "dl": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "main": true, "menu": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"ul": true,
}

// Start tags that implicitly close the listed elements while one of
// them is the current node.
var autoclose = map[string][]string{
	"li":       {"li"},
	"dt":       {"dt", "dd"},
	"dd":       {"dt", "dd"},
	"tr":       {"tr", "td", "th"},
	"td":       {"td", "th"},
	"th":       {"td", "th"},
	"tbody":    {"td", "th", "tr", "caption", "colgroup", "thead", "tbody", "tfoot"},
	"thead":    {"td", "th", "tr", "caption", "colgroup", "thead", "tbody", "tfoot"},
	"tfoot":    {"td", "th", "tr", "caption", "colgroup", "thead", "tbody", "tfoot"},
	"caption":  {"td", "th", "tr", "tbody", "thead", "tfoot"},
	"colgroup": {"td", "th", "tr", "tbody", "thead", "tfoot"},
	"option":   {"option"},
	"optgroup": {"option", "optgroup"},
}

func (c *htmlConstructor) token(tok html.Token) error {
	switch tok.Type {
	case html.DoctypeToken:
		return c.doctype(tok.Data)
	case html.CommentToken:
		return c.comment(tok.Data)
	case html.TextToken:
		return c.text(tok.Data)
	case html.StartTagToken:
		return c.startTag(tok, false)
	case html.SelfClosingTagToken:
		return c.startTag(tok, true)
	case html.EndTagToken:
		return c.endTag(tok.Data)
	}
	return nil
}

func (c *htmlConstructor) doctype(text string) error {
	name, publicID, systemID := parseDoctype(text)
	if !c.cfg.fullDocument {
		c.report("unexpected doctype in fragment")
		return nil
	}
	if c.sawDoctype || c.htmlID != 0 || c.open.Len() > 0 {
		c.report("unexpected doctype")
		return nil
	}
	c.sawDoctype = true
	c.setQuirksFromDoctype(name, publicID, systemID)
	if c.cfg.dropDoctype {
		return nil
	}
	dt, err := c.sink.CreateDoctype(name, publicID, systemID)
	if err != nil {
		return err
	}
	return c.sink.AppendDoctypeToDocument(dt)
}

func (c *htmlConstructor) setQuirksFromDoctype(name, publicID, systemID string) {
	c.quirksDecided = true
	if c.cfg.iframeSrcdoc {
		return
	}
	mode := dom.NoQuirks
	public := strings.ToLower(publicID)
	switch {
	case strings.ToLower(name) != "html":
		mode = dom.Quirks
	case strings.HasPrefix(public, "-//w3c//dtd html 4.01 frameset//"),
		strings.HasPrefix(public, "-//w3c//dtd html 4.01 transitional//"):
		if systemID == "" {
			mode = dom.Quirks
		} else {
			mode = dom.LimitedQuirks
		}
	case strings.HasPrefix(public, "-//w3c//dtd xhtml 1.0 frameset//"),
		strings.HasPrefix(public, "-//w3c//dtd xhtml 1.0 transitional//"):
		mode = dom.LimitedQuirks
	case publicID != "" || (systemID != "" && strings.ToLower(systemID) != "about:legacy-compat"):
		mode = dom.Quirks
	}
	c.sink.SetQuirksMode(mode)
}

// decideQuirksOnContent runs once when the first non-doctype content
// arrives: a full document without a doctype is a quirks document.
func (c *htmlConstructor) decideQuirksOnContent() {
	if c.quirksDecided {
		return
	}
	c.quirksDecided = true
	if c.cfg.fullDocument && !c.cfg.iframeSrcdoc && !c.sawDoctype {
		c.report("missing doctype")
		if c.cfg.quirks == dom.NoQuirks {
			c.sink.SetQuirksMode(dom.Quirks)
		}
	}
}

func (c *htmlConstructor) ensureHTML() error {
	if !c.cfg.fullDocument || c.htmlID != 0 {
		return nil
	}
	c.decideQuirksOnContent()
	el, err := c.sink.CreateElement(dom.HTMLName("html"), nil, sink.ElementFlags{})
	if err != nil {
		return err
	}
	if err := c.sink.Append(c.sink.Document(), el); err != nil {
		return err
	}
	c.htmlID = el
	return nil
}

func (c *htmlConstructor) ensureHead() error {
	if !c.cfg.fullDocument || c.headID != 0 {
		return nil
	}
	if err := c.ensureHTML(); err != nil {
		return err
	}
	el, err := c.sink.CreateElement(dom.HTMLName("head"), nil, sink.ElementFlags{})
	if err != nil {
		return err
	}
	if err := c.sink.Append(c.htmlID, el); err != nil {
		return err
	}
	c.headID = el
	if c.phase == phaseInitial {
		c.phase = phaseInHead
	}
	return nil
}

func (c *htmlConstructor) ensureBody() error {
	if !c.cfg.fullDocument || c.bodyID != 0 {
		return nil
	}
	if err := c.ensureHead(); err != nil {
		return err
	}
	el, err := c.sink.CreateElement(dom.HTMLName("body"), nil, sink.ElementFlags{})
	if err != nil {
		return err
	}
	if err := c.sink.Append(c.htmlID, el); err != nil {
		return err
	}
	c.bodyID = el
	c.phase = phaseInBody
	return nil
}

func (c *htmlConstructor) mergeAttrs(elem dom.NodeID, in []html.Attribute) error {
	if len(in) == 0 {
		return nil
	}
	attrs, dup := convertAttrs(in, dom.NamespaceHTML)
	if dup {
		c.report("duplicate attribute")
	}
	return c.sink.AddAttrsIfMissing(elem, attrs)
}

// currentNS is the namespace new elements are created in.
func (c *htmlConstructor) currentNS() string {
	if top, ok := c.open.Top(); ok {
		return top.contentNS
	}
	return dom.NamespaceHTML
}

func contentNamespace(name, ns string, integration bool) string {
	if integration {
		return dom.NamespaceHTML
	}
	if ns == dom.NamespaceSVG {
		switch name {
		case "foreignObject", "desc", "title":
			return dom.NamespaceHTML
		}
	}
	if ns == dom.NamespaceMathML {
		switch name {
		case "mi", "mo", "mn", "ms", "mtext":
			return dom.NamespaceHTML
		}
	}
	return ns
}

func (c *htmlConstructor) startTag(tok html.Token, selfClosing bool) error {
	name := tok.Data
	ns := c.currentNS()
	if ns == dom.NamespaceHTML {
		switch name {
		case "svg":
			ns = dom.NamespaceSVG
		case "math":
			ns = dom.NamespaceMathML
		}
	}
	if ns == dom.NamespaceSVG {
		name = adjustSVGTagName(name)
	}

	if ns == dom.NamespaceHTML {
		switch name {
		case "html", "head", "body":
			if !c.cfg.fullDocument {
				c.report("unexpected start tag <" + name + "> in fragment")
				return nil
			}
			if c.open.Len() > 0 {
				c.report("unexpected start tag <" + name + ">")
				return nil
			}
			switch name {
			case "html":
				if err := c.ensureHTML(); err != nil {
					return err
				}
				return c.mergeAttrs(c.htmlID, tok.Attr)
			case "head":
				if err := c.ensureHead(); err != nil {
					return err
				}
				return c.mergeAttrs(c.headID, tok.Attr)
			default:
				if err := c.ensureBody(); err != nil {
					return err
				}
				return c.mergeAttrs(c.bodyID, tok.Attr)
			}
		}
		c.applyAutoclose(name)
	}

	attrs, dup := convertAttrs(tok.Attr, ns)
	if dup {
		c.report("duplicate attribute")
	}

	flags := sink.ElementFlags{
		Template: ns == dom.NamespaceHTML && name == "template",
	}
	if ns == dom.NamespaceMathML && name == "annotation-xml" {
		for _, attr := range attrs {
			if attr.Name.Local == "encoding" {
				enc := strings.ToLower(attr.Value)
				if enc == "text/html" || enc == "application/xhtml+xml" {
					flags.MathMLAnnotationXMLIntegrationPoint = true
				}
			}
		}
	}

	qn := dom.QualName{Local: name, Namespace: ns}
	el, err := c.sink.CreateElement(qn, attrs, flags)
	if err != nil {
		return err
	}
	if name == "script" && ns == dom.NamespaceHTML && !c.cfg.fullDocument {
		// scripts created by fragment parsing never run
		if err := c.sink.MarkScriptAlreadyStarted(el); err != nil {
			return err
		}
	}

	target := el
	if flags.Template {
		target, err = c.sink.TemplateContents(el)
		if err != nil {
			return err
		}
	}

	if err := c.insertNode(el, name, ns); err != nil {
		return err
	}

	if selfClosing || (ns == dom.NamespaceHTML && htmlVoidElements[name]) {
		return c.sink.Pop(el)
	}
	c.open.Push(openElement{
		id:        target,
		name:      name,
		ns:        ns,
		contentNS: contentNamespace(name, ns, flags.MathMLAnnotationXMLIntegrationPoint),
	})
	return nil
}

func (c *htmlConstructor) applyAutoclose(name string) {
	for {
		top, ok := c.open.Top()
		if !ok || top.ns != dom.NamespaceHTML {
			return
		}
		closed := false
		if closesP[name] && top.name == "p" {
			closed = true
		}
		for _, victim := range autoclose[name] {
			if top.name == victim {
				closed = true
				break
			}
		}
		if !closed {
			return
		}
		c.popElement()
	}
}

// tableScope reports whether elem is a table container whose content
// model restricts what may appear inside it.
func tableScope(name string) bool {
	switch name {
	case "table", "thead", "tbody", "tfoot", "tr", "colgroup":
		return true
	}
	return false
}

func tableLegalChild(parent, child string) bool {
	switch child {
	case "script", "style", "template", "form":
		return true
	}
	switch parent {
	case "table":
		switch child {
		case "caption", "colgroup", "col", "thead", "tbody", "tfoot", "tr":
			return true
		}
	case "thead", "tbody", "tfoot":
		return child == "tr"
	case "tr":
		return child == "td" || child == "th"
	case "colgroup":
		return child == "col"
	}
	return false
}

// nearestTable returns the innermost open table element, or zero.
func (c *htmlConstructor) nearestTable() dom.NodeID {
	for i := c.open.Len() - 1; i >= 0; i-- {
		f := c.open.At(i)
		if f.name == "table" && f.ns == dom.NamespaceHTML {
			return f.id
		}
	}
	return 0
}

// insertNode places a new node at the current insertion point,
// foster-parenting content that is illegal inside an open table.
func (c *htmlConstructor) insertNode(id dom.NodeID, name, ns string) error {
	if top, ok := c.open.Top(); ok {
		if top.ns == dom.NamespaceHTML && tableScope(top.name) &&
			!(ns == dom.NamespaceHTML && tableLegalChild(top.name, name)) {
			if table := c.nearestTable(); table != 0 {
				c.report("foster-parenting misplaced <" + name + ">")
				if err := c.sink.AppendBeforeSibling(table, id); err == nil {
					return nil
				}
				// table may be the fragment root with no parent;
				// fall through to a plain append
			}
		}
		return c.sink.Append(top.id, id)
	}
	parent, err := c.topLevelParent(name)
	if err != nil {
		return err
	}
	return c.sink.Append(parent, id)
}

// topLevelParent resolves the insertion parent when no element is
// open: the head while head-phase metadata arrives, the body after,
// and the Document itself for fragments.
func (c *htmlConstructor) topLevelParent(name string) (dom.NodeID, error) {
	if !c.cfg.fullDocument {
		return c.sink.Document(), nil
	}
	if c.phase != phaseInBody && headElements[name] {
		if err := c.ensureHead(); err != nil {
			return 0, err
		}
		return c.headID, nil
	}
	if err := c.ensureBody(); err != nil {
		return 0, err
	}
	return c.bodyID, nil
}

func (c *htmlConstructor) text(s string) error {
	if s == "" {
		return nil
	}
	if top, ok := c.open.Top(); ok {
		if top.ns == dom.NamespaceHTML && tableScope(top.name) && !isWhitespace(s) {
			if table := c.nearestTable(); table != 0 {
				c.report("foster-parenting text inside table")
				if err := c.sink.AppendTextBeforeSibling(table, s); err == nil {
					return nil
				}
			}
		}
		return c.sink.AppendText(top.id, s)
	}
	if !c.cfg.fullDocument {
		return c.sink.AppendText(c.sink.Document(), s)
	}
	if isWhitespace(s) {
		// whitespace between skeleton tags carries no content
		if c.phase == phaseInBody {
			return c.sink.AppendText(c.bodyID, s)
		}
		return nil
	}
	if err := c.ensureBody(); err != nil {
		return err
	}
	return c.sink.AppendText(c.bodyID, s)
}

func (c *htmlConstructor) comment(text string) error {
	if top, ok := c.open.Top(); ok {
		id, err := c.sink.CreateComment(text)
		if err != nil {
			return err
		}
		return c.sink.Append(top.id, id)
	}
	id, err := c.sink.CreateComment(text)
	if err != nil {
		return err
	}
	if !c.cfg.fullDocument {
		return c.sink.Append(c.sink.Document(), id)
	}
	switch {
	case c.htmlID == 0:
		return c.sink.Append(c.sink.Document(), id)
	case c.bodyID == 0:
		return c.sink.Append(c.htmlID, id)
	default:
		return c.sink.Append(c.bodyID, id)
	}
}

func (c *htmlConstructor) endTag(name string) error {
	// the tokenizer lowercases tag names, so svg frames are matched
	// through the same case adjustment applied at creation
	adjusted := adjustSVGTagName(name)
	idx := -1
	for i := c.open.Len() - 1; i >= 0; i-- {
		f := c.open.At(i)
		if f.name == name || (f.ns == dom.NamespaceSVG && f.name == adjusted) {
			idx = i
			break
		}
	}
	if idx < 0 {
		switch {
		case c.cfg.fullDocument && (name == "html" || name == "head" || name == "body"):
			// closing the implied skeleton is never an error
		case htmlVoidElements[name]:
			c.report("end tag </" + name + "> for void element")
		default:
			c.report("unexpected end tag </" + name + ">")
		}
		return nil
	}
	for c.open.Len() > idx+1 {
		top, _ := c.open.Top()
		if !impliedEndTag(top.name) {
			c.report("unclosed element <" + top.name + ">")
		}
		if err := c.popElement(); err != nil {
			return err
		}
	}
	return c.popElement()
}

// impliedEndTag reports whether an element may be closed implicitly
// without a diagnostic.
func impliedEndTag(name string) bool {
	switch name {
	case "p", "li", "dt", "dd", "option", "optgroup", "td", "th", "tr",
		"tbody", "thead", "tfoot", "caption", "colgroup", "rb", "rp", "rt", "rtc":
		return true
	}
	return false
}

func (c *htmlConstructor) popElement() error {
	top, ok := c.open.Top()
	if !ok {
		return nil
	}
	c.open.Pop()
	return c.sink.Pop(top.id)
}

// finish applies the end-of-file steps: every still-open element is
// closed, and a full document grows its implied skeleton even for
// empty input.
func (c *htmlConstructor) finish() error {
	for c.open.Len() > 0 {
		if err := c.popElement(); err != nil {
			return err
		}
	}
	if c.cfg.fullDocument {
		if err := c.ensureBody(); err != nil {
			return err
		}
	}
	return nil
}

func isWhitespace(s string) bool {
	return strings.TrimLeft(s, " \t\r\n\f") == ""
}

// parseDoctype splits the text of a doctype token into name, public
// id and system id.
func parseDoctype(s string) (name, publicID, systemID string) {
	s = strings.TrimSpace(s)
	space := strings.IndexAny(s, " \t\r\n\f")
	if space < 0 {
		return strings.ToLower(s), "", ""
	}
	name = strings.ToLower(s[:space])
	publicID, systemID = parseExternalID(strings.TrimSpace(s[space:]))
	return name, publicID, systemID
}

// parseExternalID reads the PUBLIC/SYSTEM clause of a doctype.
func parseExternalID(rest string) (publicID, systemID string) {
	upper := strings.ToUpper(rest)
	switch {
	case strings.HasPrefix(upper, "PUBLIC"):
		rest = strings.TrimSpace(rest[len("PUBLIC"):])
		publicID, rest = readQuotedLiteral(rest)
		systemID, _ = readQuotedLiteral(rest)
	case strings.HasPrefix(upper, "SYSTEM"):
		rest = strings.TrimSpace(rest[len("SYSTEM"):])
		systemID, _ = readQuotedLiteral(rest)
	}
	return publicID, systemID
}

func readQuotedLiteral(in string) (string, string) {
	if in == "" {
		return "", ""
	}
	quote := in[0]
	if quote != '"' && quote != '\'' {
		return "", in
	}
	in = in[1:]
	if end := strings.IndexByte(in, quote); end >= 0 {
		return in[:end], strings.TrimSpace(in[end+1:])
	}
	return in, ""
}

var svgTagAdjustments = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":         "altGlyphDef",
	"altglyphitem":        "altGlyphItem",
	"animatecolor":        "animateColor",
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"glyphref":            "glyphRef",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

func adjustSVGTagName(name string) string {
	if adjusted, ok := svgTagAdjustments[name]; ok {
		return adjusted
	}
	return name
}

var svgAttrAdjustments = map[string]string{
	"attributename":       "attributeName",
	"attributetype":       "attributeType",
	"basefrequency":       "baseFrequency",
	"baseprofile":         "baseProfile",
	"calcmode":            "calcMode",
	"clippathunits":       "clipPathUnits",
	"diffuseconstant":     "diffuseConstant",
	"edgemode":            "edgeMode",
	"filterunits":         "filterUnits",
	"glyphref":            "glyphRef",
	"gradienttransform":   "gradientTransform",
	"gradientunits":       "gradientUnits",
	"kernelmatrix":        "kernelMatrix",
	"kernelunitlength":    "kernelUnitLength",
	"keypoints":           "keyPoints",
	"keysplines":          "keySplines",
	"keytimes":            "keyTimes",
	"lengthadjust":        "lengthAdjust",
	"limitingconeangle":   "limitingConeAngle",
	"markerheight":        "markerHeight",
	"markerunits":         "markerUnits",
	"markerwidth":         "markerWidth",
	"maskcontentunits":    "maskContentUnits",
	"maskunits":           "maskUnits",
	"numoctaves":          "numOctaves",
	"pathlength":          "pathLength",
	"patterncontentunits": "patternContentUnits",
	"patterntransform":    "patternTransform",
	"patternunits":        "patternUnits",
	"pointsatx":           "pointsAtX",
	"pointsaty":           "pointsAtY",
	"pointsatz":           "pointsAtZ",
	"preservealpha":       "preserveAlpha",
	"preserveaspectratio": "preserveAspectRatio",
	"primitiveunits":      "primitiveUnits",
	"refx":                "refX",
	"refy":                "refY",
	"repeatcount":         "repeatCount",
	"repeatdur":           "repeatDur",
	"requiredextensions":  "requiredExtensions",
	"requiredfeatures":    "requiredFeatures",
	"specularconstant":    "specularConstant",
	"specularexponent":    "specularExponent",
	"spreadmethod":        "spreadMethod",
	"startoffset":         "startOffset",
	"stddeviation":        "stdDeviation",
	"stitchtiles":         "stitchTiles",
	"surfacescale":        "surfaceScale",
	"systemlanguage":      "systemLanguage",
	"tablevalues":         "tableValues",
	"targetx":             "targetX",
	"targety":             "targetY",
	"textlength":          "textLength",
	"viewbox":             "viewBox",
	"viewtarget":          "viewTarget",
	"xchannelselector":    "xChannelSelector",
	"ychannelselector":    "yChannelSelector",
	"zoomandpan":          "zoomAndPan",
}

// convertAttrs maps tokenizer attributes into ordered dom attributes.
// Duplicate names are dropped (first occurrence wins) and reported via
// the second return value. Foreign content gets xlink/xml/xmlns and
// camel-case adjustments.
func convertAttrs(in []html.Attribute, ns string) ([]dom.Attr, bool) {
	if len(in) == 0 {
		return nil, false
	}
	attrs := make([]dom.Attr, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	dup := false
	for _, a := range in {
		if _, ok := seen[a.Key]; ok {
			dup = true
			continue
		}
		seen[a.Key] = struct{}{}
		attrs = append(attrs, dom.Attr{Name: adjustAttrName(a.Key, ns), Value: a.Val})
	}
	return attrs, dup
}

func adjustAttrName(key, ns string) dom.QualName {
	if ns == dom.NamespaceHTML {
		return dom.QualName{Local: key}
	}
	switch {
	case strings.HasPrefix(key, "xlink:"):
		return dom.QualName{Local: key[len("xlink:"):], Namespace: dom.NamespaceXLink, Prefix: "xlink"}
	case strings.HasPrefix(key, "xml:"):
		return dom.QualName{Local: key[len("xml:"):], Namespace: dom.NamespaceXML, Prefix: "xml"}
	case key == "xmlns":
		return dom.QualName{Local: "xmlns", Namespace: dom.NamespaceXMLNS}
	case strings.HasPrefix(key, "xmlns:"):
		return dom.QualName{Local: key[len("xmlns:"):], Namespace: dom.NamespaceXMLNS, Prefix: "xmlns"}
	}
	if ns == dom.NamespaceSVG {
		if adjusted, ok := svgAttrAdjustments[key]; ok {
			return dom.QualName{Local: adjusted}
		}
	}
	if ns == dom.NamespaceMathML && key == "definitionurl" {
		return dom.QualName{Local: "definitionURL"}
	}
	return dom.QualName{Local: key}
}
