package treedom

import (
	"context"
	"encoding/xml"
	"io"
	"log/slog"
	"sort"

	"github.com/lestrrat-go/pdebug"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/lestrrat-go/treedom/dom"
	tdencoding "github.com/lestrrat-go/treedom/encoding"
	"github.com/lestrrat-go/treedom/sink"
)

type parserMode int

const (
	modeHTML parserMode = iota
	modeXML
)

type parserState int

const (
	stateIdle parserState = iota
	stateFeeding
	stateConsumed
	stateClosed
)

// engineEvent is one unit of work produced by the engine goroutine.
// Exactly one of htmlTok/xmlTok/fatal/done is meaningful.
type engineEvent struct {
	htmlTok *html.Token
	raw     []byte // raw bytes of the html token, for position tracking

	xmlTok xml.Token
	line   int // token start position, xml only
	col    int
	lines  int // total lines consumed so far, xml only

	fatal error
	done  bool
}

// Parser builds a Tree incrementally from chunks of markup. It is not
// safe for concurrent use. The tokenizer runs on its own goroutine in
// lock step with Feed: the goroutine only makes progress while a
// Feed or Finish call is blocked on it, so no parsing happens between
// calls.
type Parser struct {
	mode  parserMode
	state parserState

	tree    *dom.Tree
	builder *sink.TreeBuilder
	feeder  *feeder
	events  chan engineEvent

	hc *htmlConstructor
	xc *xmlConstructor

	exactErrors bool
	encLabel    string
	discardBOM  bool

	diags []ParseError

	// set when the construction bridge itself failed; the parser is
	// unusable from then on
	broken error

	started    bool
	engineDone bool

	// position of the event currently being applied, and total lines
	// consumed; maintained from raw token bytes for HTML and from
	// engine-reported offsets for XML
	curLine int
	curCol  int
	evLine  int
	evCol   int
}

// NewHTMLParser creates a parser for HTML input. By default the input
// is treated as a full document; use WithFragmentContext or
// WithFullDocument(false) for fragments.
func NewHTMLParser(options ...HTMLOption) (*Parser, error) {
	cfg := htmlConfig{
		fullDocument: true,
		discardBOM:   true,
		quirks:       dom.NoQuirks,
	}
	for _, o := range options {
		switch o.Ident().(type) {
		case identFullDocument:
			cfg.fullDocument = o.Value().(bool)
		case identFragmentContext:
			cfg.fullDocument = false
			cfg.context = o.Value().(string)
		case identExactErrors:
			cfg.exactErrors = o.Value().(bool)
		case identDiscardBOM:
			cfg.discardBOM = o.Value().(bool)
		case identIframeSrcdoc:
			cfg.iframeSrcdoc = o.Value().(bool)
		case identDropDoctype:
			cfg.dropDoctype = o.Value().(bool)
		case identQuirksMode:
			cfg.quirks = o.Value().(dom.QuirksMode)
		case identEncoding:
			cfg.encoding = o.Value().(string)
		}
	}
	if cfg.context == "" {
		cfg.context = "body"
	}
	if err := checkEncodingLabel(cfg.encoding); err != nil {
		return nil, err
	}

	tree := dom.New()
	builder := sink.NewTreeBuilder(tree)
	p := &Parser{
		mode:        modeHTML,
		tree:        tree,
		builder:     builder,
		feeder:      newFeeder(),
		events:      make(chan engineEvent),
		exactErrors: cfg.exactErrors,
		encLabel:    cfg.encoding,
		discardBOM:  cfg.discardBOM,
		curLine:     1,
		curCol:      1,
	}
	p.hc = newHTMLConstructor(builder, cfg, p.reportDiag)
	return p, nil
}

// NewXMLParser creates a parser for XML input.
func NewXMLParser(options ...XMLOption) (*Parser, error) {
	cfg := xmlConfig{discardBOM: true}
	for _, o := range options {
		switch o.Ident().(type) {
		case identExactErrors:
			cfg.exactErrors = o.Value().(bool)
		case identDiscardBOM:
			cfg.discardBOM = o.Value().(bool)
		case identEncoding:
			cfg.encoding = o.Value().(string)
		}
	}
	if err := checkEncodingLabel(cfg.encoding); err != nil {
		return nil, err
	}

	tree := dom.New()
	builder := sink.NewTreeBuilder(tree)
	p := &Parser{
		mode:        modeXML,
		tree:        tree,
		builder:     builder,
		feeder:      newFeeder(),
		events:      make(chan engineEvent),
		exactErrors: cfg.exactErrors,
		encLabel:    cfg.encoding,
		discardBOM:  cfg.discardBOM,
		curLine:     1,
		curCol:      1,
	}
	p.xc = newXMLConstructor(builder, p.reportDiag)
	return p, nil
}

func checkEncodingLabel(label string) error {
	if label == "" {
		return nil
	}
	if tdencoding.Load(label) == nil {
		return errors.Errorf(`unknown encoding label %q`, label)
	}
	return nil
}

func (p *Parser) reportDiag(msg string) {
	pe := ParseError{Message: msg, Line: p.evLine}
	if p.exactErrors {
		pe.Column = p.evCol
	}
	p.diags = append(p.diags, pe)
}

// sourceReader layers the configured decoding transforms over the
// feeder. A byte order mark, when honored, overrides the label.
func (p *Parser) sourceReader() io.Reader {
	var t transform.Transformer
	switch {
	case p.encLabel != "" && p.discardBOM:
		t = unicode.BOMOverride(tdencoding.Load(p.encLabel).NewDecoder())
	case p.encLabel != "":
		t = tdencoding.Load(p.encLabel).NewDecoder()
	case p.discardBOM:
		t = unicode.BOMOverride(unicode.UTF8.NewDecoder())
	default:
		return p.feeder
	}
	return transform.NewReader(p.feeder, t)
}

// start spawns the engine goroutine and waits for it to park on the
// feeder. From here on the engine is always blocked waiting for input
// whenever control is outside Feed/Finish.
func (p *Parser) start() {
	p.started = true
	r := p.sourceReader()
	if p.mode == modeHTML {
		go p.runHTML(r)
	} else {
		go p.runXML(r)
	}
	<-p.feeder.requests
}

func (p *Parser) runHTML(r io.Reader) {
	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				p.events <- engineEvent{fatal: err}
			} else {
				p.events <- engineEvent{done: true}
			}
			return
		}
		raw := append([]byte(nil), z.Raw()...)
		tok := z.Token()
		p.events <- engineEvent{htmlTok: &tok, raw: raw}
	}
}

func (p *Parser) runXML(r io.Reader) {
	counter := &lineCounter{r: r}
	d := xml.NewDecoder(counter)
	d.Strict = false
	for {
		start := d.InputOffset()
		tok, err := d.Token()
		if err != nil {
			if err == io.EOF {
				p.events <- engineEvent{done: true, lines: counter.count()}
			} else {
				p.events <- engineEvent{fatal: err}
			}
			return
		}
		line, col := counter.position(start)
		p.events <- engineEvent{
			xmlTok: xml.CopyToken(tok),
			line:   line,
			col:    col,
			lines:  counter.count(),
		}
	}
}

// Feed hands the parser the next chunk of input. All complete tokens
// in the accumulated input are applied to the tree before Feed
// returns; a token split across chunk boundaries is held until the
// rest arrives. Splitting the input differently never changes the
// resulting tree.
func (p *Parser) Feed(ctx context.Context, chunk []byte) error {
	if pdebug.Enabled {
		g := pdebug.Marker("treedom.Parser.Feed")
		defer g.End()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	switch p.state {
	case stateConsumed:
		return ErrConsumed
	case stateClosed:
		return ErrClosed
	}
	if p.broken != nil {
		return p.broken
	}
	p.state = stateFeeding

	tlog := getTraceLogFromContext(ctx)
	tlog.Debug("feed", slog.Int("bytes", len(chunk)))

	if len(chunk) == 0 {
		return nil
	}
	if !p.started {
		p.start()
	}
	if p.engineDone {
		// the engine stopped on a fatal error; input after that point
		// is not parsed
		return nil
	}

	// the engine may retain the buffer across calls
	buf := append([]byte(nil), chunk...)
	p.feeder.in <- buf

	for {
		select {
		case <-p.feeder.requests:
			// every complete token has been consumed
			return nil
		case ev := <-p.events:
			if err := p.apply(ev); err != nil {
				p.broken = err
				return err
			}
			if p.engineDone {
				return nil
			}
		}
	}
}

// FeedString is Feed for string input.
func (p *Parser) FeedString(ctx context.Context, chunk string) error {
	return p.Feed(ctx, []byte(chunk))
}

// Finish signals end of input, applies everything still pending and
// returns the completed tree. The parser is consumed afterwards:
// further Feed or Finish calls fail with ErrConsumed.
func (p *Parser) Finish(ctx context.Context) (*dom.Tree, error) {
	if pdebug.Enabled {
		g := pdebug.Marker("treedom.Parser.Finish")
		defer g.End()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch p.state {
	case stateConsumed:
		return nil, ErrConsumed
	case stateClosed:
		return nil, ErrClosed
	}
	if p.broken != nil {
		return nil, p.broken
	}

	tlog := getTraceLogFromContext(ctx)
	tlog.Debug("finish")

	if !p.started {
		p.start()
	}
	if !p.engineDone {
		close(p.feeder.in)
		for !p.engineDone {
			if err := p.apply(<-p.events); err != nil {
				p.broken = err
				return nil, err
			}
		}
	}
	p.state = stateConsumed
	return p.tree, nil
}

// apply runs one engine event against the construction driver on the
// caller's goroutine, so the tree is only ever mutated from Feed and
// Finish.
func (p *Parser) apply(ev engineEvent) error {
	switch {
	case ev.done:
		p.engineDone = true
		p.evLine, p.evCol = p.curLine, p.curCol
		var err error
		if p.mode == modeHTML {
			err = p.hc.finish()
		} else {
			if ev.lines > 0 {
				p.curLine = ev.lines
			}
			err = p.xc.finish()
		}
		if err != nil {
			return errors.Wrap(err, "finalizing tree")
		}
		return nil

	case ev.fatal != nil:
		p.engineDone = true
		pe := ParseError{Message: ev.fatal.Error(), Line: p.curLine}
		if syn, ok := ev.fatal.(*xml.SyntaxError); ok {
			pe.Message = syn.Msg
			pe.Line = syn.Line
		}
		p.diags = append(p.diags, pe)
		return nil

	case ev.htmlTok != nil:
		p.evLine, p.evCol = p.curLine, p.curCol
		if err := p.hc.token(*ev.htmlTok); err != nil {
			return errors.Wrap(err, "applying token")
		}
		p.advance(ev.raw)
		return nil

	default:
		p.evLine, p.evCol = ev.line, ev.col
		p.curLine = ev.lines
		if err := p.xc.token(ev.xmlTok); err != nil {
			return errors.Wrap(err, "applying token")
		}
		return nil
	}
}

func (p *Parser) advance(raw []byte) {
	for _, b := range raw {
		if b == '\n' {
			p.curLine++
			p.curCol = 1
		} else {
			p.curCol++
		}
	}
}

// Errors returns the diagnostics recorded so far, in source order.
// Diagnostics never invalidate the tree.
func (p *Parser) Errors() []ParseError {
	out := make([]ParseError, len(p.diags))
	copy(out, p.diags)
	return out
}

// LineCount returns the number of source lines consumed so far.
func (p *Parser) LineCount() int {
	return p.curLine
}

// Close releases the parser. It is safe to call at any point,
// including after Finish, and the tree returned by a prior Finish
// stays valid.
func (p *Parser) Close() error {
	if p.state == stateClosed {
		return nil
	}
	if p.started && !p.engineDone {
		close(p.feeder.in)
		for !p.engineDone {
			ev := <-p.events
			p.engineDone = ev.done || ev.fatal != nil
		}
	}
	p.state = stateClosed
	return nil
}

// lineCounter records newline offsets of everything the engine has
// read, mapping byte offsets to line/column positions. It is owned by
// the engine goroutine.
type lineCounter struct {
	r        io.Reader
	total    int64
	newlines []int64
}

func (l *lineCounter) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	for i := 0; i < n; i++ {
		if p[i] == '\n' {
			l.newlines = append(l.newlines, l.total+int64(i))
		}
	}
	l.total += int64(n)
	return n, err
}

func (l *lineCounter) position(offset int64) (line, col int) {
	i := sort.Search(len(l.newlines), func(i int) bool {
		return l.newlines[i] >= offset
	})
	line = i + 1
	if i == 0 {
		col = int(offset) + 1
	} else {
		col = int(offset-l.newlines[i-1]-1) + 1
	}
	return line, col
}

func (l *lineCounter) count() int {
	return len(l.newlines) + 1
}
