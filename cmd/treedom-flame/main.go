package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime/pprof"

	"github.com/lestrrat-go/treedom"
	"github.com/lestrrat-go/treedom/dom"
)

const usage = `treedom-flame - Profile the parser and view the result

Usage:
  treedom-flame [options] <file>

Options:
  -iterations int    Number of parsing iterations (default: 2000)
  -port int          HTTP server port for the pprof UI (default: 8080)
  -profile string    Profile type: cpu, mem (default: cpu)
  -xml               Parse the input as XML instead of HTML
  -help              Show this help message

This command parses the input file repeatedly under a profiler, then
launches the pprof web interface on the generated profile.
`

func main() {
	var (
		iterations = flag.Int("iterations", 2000, "Number of parsing iterations")
		port       = flag.Int("port", 8080, "HTTP server port")
		profile    = flag.String("profile", "cpu", "Profile type: cpu, mem")
		asXML      = flag.Bool("xml", false, "Parse input as XML")
		help       = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	if *help {
		fmt.Print(usage)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: input file argument required\n\n")
		fmt.Print(usage)
		os.Exit(1)
	}

	if *profile != "cpu" && *profile != "mem" {
		fmt.Fprintf(os.Stderr, "Error: profile must be 'cpu' or 'mem'\n")
		os.Exit(1)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	profileFile := fmt.Sprintf("treedom_%s.prof", *profile)
	if err := generateProfile(data, *iterations, *profile, profileFile, *asXML); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Profile generated: %s\n", profileFile)

	if err := startPprofServer(profileFile, *port); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseOnce runs the full workload: chunked feeding, finishing, and
// serializing, so the profile covers the whole pipeline.
func parseOnce(ctx context.Context, data []byte, asXML bool) (*dom.Tree, error) {
	var p *treedom.Parser
	var err error
	if asXML {
		p, err = treedom.NewXMLParser()
	} else {
		p, err = treedom.NewHTMLParser()
	}
	if err != nil {
		return nil, err
	}
	const chunkSize = 4096
	for off := 0; off < len(data); off += chunkSize {
		end := min(off+chunkSize, len(data))
		if err := p.Feed(ctx, data[off:end]); err != nil {
			return nil, err
		}
	}
	tree, err := p.Finish(ctx)
	if err != nil {
		return nil, err
	}
	if asXML {
		err = treedom.SerializeXML(io.Discard, tree, tree.Root())
	} else {
		err = treedom.SerializeHTML(io.Discard, tree, tree.Root())
	}
	return tree, err
}

func generateProfile(data []byte, iterations int, profileType, profileFile string, asXML bool) error {
	ctx := context.Background()
	f, err := os.Create(profileFile)
	if err != nil {
		return err
	}
	defer f.Close()

	switch profileType {
	case "cpu":
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
		for i := range iterations {
			if _, err := parseOnce(ctx, data, asXML); err != nil {
				return fmt.Errorf("parse failed at iteration %d: %w", i, err)
			}
		}
		return nil
	case "mem":
		// keep the trees alive so the heap profile sees them
		trees := make([]*dom.Tree, 0, iterations)
		for i := range iterations {
			tree, err := parseOnce(ctx, data, asXML)
			if err != nil {
				return fmt.Errorf("parse failed at iteration %d: %w", i, err)
			}
			trees = append(trees, tree)
		}
		_ = len(trees)
		return pprof.WriteHeapProfile(f)
	default:
		return fmt.Errorf("unsupported profile type: %s", profileType)
	}
}

func startPprofServer(profileFile string, port int) error {
	fmt.Printf("Starting pprof server at http://localhost:%d/ui/ (Ctrl+C to stop)\n", port)
	cmd := exec.Command("go", "tool", "pprof", "-http", fmt.Sprintf(":%d", port), profileFile)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start pprof server: %w", err)
	}
	return cmd.Wait()
}
