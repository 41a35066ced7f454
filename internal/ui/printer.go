package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"github.com/g5becks/docsect/internal/manifest"
)

type styles struct {
	green  *color.Color
	red    *color.Color
	yellow *color.Color
	dim    *color.Color
	bold   *color.Color
}

func newStyles() styles {
	return styles{
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		dim:    color.New(color.Faint),
		bold:   color.New(color.Bold),
	}
}

// Printer renders generation events and docstring diagnostics with colored
// output. It is safe for concurrent use.
type Printer struct {
	w       io.Writer
	verbose bool
	mu      sync.Mutex
	s       styles
}

// NewPrinter creates a Printer that writes to stderr.
func NewPrinter(verbose bool) *Printer {
	return NewPrinterWithWriter(os.Stderr, verbose)
}

// NewPrinterWithWriter creates a Printer that writes to the given writer.
func NewPrinterWithWriter(w io.Writer, verbose bool) *Printer {
	return &Printer{
		w:       w,
		verbose: verbose,
		s:       newStyles(),
	}
}

// HandleEvent is the callback wired into manifest.Options.OnEvent. Clean
// files are only reported in verbose mode.
func (p *Printer) HandleEvent(e manifest.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch e.Kind {
	case manifest.EventSourceStart:
		fmt.Fprintf(p.w, "%s parsing %s %s\n",
			p.s.dim.Sprint("⟳"),
			p.s.bold.Sprint(e.Source),
			p.s.dim.Sprintf("(%d files)", e.Files),
		)

	case manifest.EventFileFailed:
		fmt.Fprintf(p.w, "%s %s: %s\n",
			p.s.red.Sprint("✗"),
			p.s.bold.Sprint(e.Path),
			e.Err,
		)

	case manifest.EventFileDone:
		switch {
		case e.Diagnostics > 0:
			fmt.Fprintf(p.w, "%s %s %s\n",
				p.s.yellow.Sprint("!"),
				p.s.bold.Sprint(e.Path),
				p.s.dim.Sprint(formatCounts(e.Symbols, e.Diagnostics)),
			)
		case p.verbose:
			fmt.Fprintf(p.w, "%s %s %s\n",
				p.s.green.Sprint("✓"),
				p.s.bold.Sprint(e.Path),
				p.s.dim.Sprint(formatCounts(e.Symbols, 0)),
			)
		}
	}
}

func formatCounts(symbols int, diagnostics int) string {
	if diagnostics > 0 {
		return fmt.Sprintf("(%d symbols, %d diagnostics)", symbols, diagnostics)
	}
	return fmt.Sprintf("(%d symbols)", symbols)
}

// Diagnostics prints the parse errors of one symbol, one per line.
func (p *Printer) Diagnostics(symbol string, line int, errs []string) {
	if len(errs) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	location := symbol
	if line > 0 {
		location = fmt.Sprintf("%s:%d", symbol, line)
	}

	for _, msg := range errs {
		fmt.Fprintf(p.w, "%s %s %s\n",
			p.s.yellow.Sprint("warning"),
			p.s.bold.Sprint(location),
			msg,
		)
	}
}

// PrintSummary renders a final summary line after generation completes.
func (p *Printer) PrintSummary(s *manifest.Summary) {
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.w)

	parts := fmt.Sprintf("generate complete: %d source(s), %d file(s), %d symbol(s)",
		s.Sources,
		s.Files,
		s.Symbols,
	)

	if s.Diagnostics > 0 {
		parts += ", " + p.s.yellow.Sprintf("%d diagnostic(s)", s.Diagnostics)
	}

	if s.Failed > 0 {
		parts += ", " + p.s.red.Sprintf("%d failed", s.Failed)
	}

	fmt.Fprintln(p.w, parts)
}
