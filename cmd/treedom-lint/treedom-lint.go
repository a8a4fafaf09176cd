package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/lestrrat-go/treedom"
	"github.com/lestrrat-go/treedom/dom"
	"github.com/lestrrat-go/treedom/internal/cliutil"
)

type cmdopts struct {
	XML      bool   `long:"xml" description:"parse input as XML instead of HTML"`
	Fragment bool   `long:"fragment" description:"parse HTML input as a fragment"`
	Select   string `long:"select" description:"only emit subtrees matching the CSS selector"`
	Tree     bool   `long:"tree" description:"print the node tree instead of markup"`
	NoBlanks bool   `long:"noblanks" description:"drop whitespace-only text nodes"`
	Version  bool   `long:"version"`
}

func main() {
	os.Exit(_main())
}

func showVersion() {
	fmt.Printf("treedom-lint: using treedom version %s\n", treedom.Version)
}

func showUsage() {
	fmt.Printf(`Usage : treedom-lint [options] files ...
	Parse the markup files and output the result of the parsing
	--version : display the version of the library used
`)
}

func _main() int {
	opts := cmdopts{}
	args, err := flags.ParseArgs(&opts, os.Args[1:])
	if err != nil {
		showUsage()
		return 1
	}

	if opts.Version {
		showVersion()
		return 0
	}

	inputCh := make(chan io.Reader)
	errCh := make(chan error)
	switch {
	case len(args) > 0: // filename present
		go func() {
			defer close(inputCh)
			for _, f := range args {
				fh, err := os.Open(f)
				if err != nil {
					errCh <- err
					return
				}
				inputCh <- fh
			}
		}()
	case !cliutil.IsTty(os.Stdin.Fd()):
		go func() {
			defer close(inputCh)
			inputCh <- os.Stdin
		}()
	default:
		showUsage()
		return 1
	}

	for in := range inputCh {
		if err := process(&opts, in, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
		if c, ok := in.(io.Closer); ok && in != os.Stdin {
			c.Close()
		}
	}

	select {
	case err := <-errCh:
		fmt.Fprintf(os.Stderr, "%s", err)
		return 1
	default:
	}

	return 0
}

func process(opts *cmdopts, in io.Reader, out io.Writer) error {
	ctx := context.Background()

	var p *treedom.Parser
	var err error
	if opts.XML {
		p, err = treedom.NewXMLParser()
	} else {
		var hopts []treedom.HTMLOption
		if opts.Fragment {
			hopts = append(hopts, treedom.WithFullDocument(false))
		}
		p, err = treedom.NewHTMLParser(hopts...)
	}
	if err != nil {
		return err
	}

	buf := make([]byte, 4096)
	for {
		n, rerr := in.Read(buf)
		if n > 0 {
			if err := p.Feed(ctx, buf[:n]); err != nil {
				return err
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
	}

	tree, err := p.Finish(ctx)
	if err != nil {
		return err
	}
	for _, diag := range p.Errors() {
		fmt.Fprintf(os.Stderr, "%s\n", diag.Error())
	}

	if opts.NoBlanks {
		stripBlanks(tree)
	}

	roots := []dom.NodeID{tree.Root()}
	if opts.Select != "" {
		roots, err = treedom.Select(tree, opts.Select)
		if err != nil {
			return err
		}
	}

	for _, root := range roots {
		if opts.Tree {
			fmt.Fprint(out, dom.Dump(tree, root))
			continue
		}
		if opts.XML {
			err = treedom.SerializeXML(out, tree, root)
		} else {
			err = treedom.SerializeHTML(out, tree, root)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
	return nil
}

// stripBlanks removes text nodes that contain only whitespace.
func stripBlanks(tree *dom.Tree) {
	var blanks []dom.NodeID
	for id := range tree.Descendants(tree.Root()) {
		if txt, ok := tree.Data(id).(*dom.TextData); ok {
			if isBlank(txt.Contents) {
				blanks = append(blanks, id)
			}
		}
	}
	for _, id := range blanks {
		tree.Detach(id)
	}
}

func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n', '\f':
		default:
			return false
		}
	}
	return true
}
