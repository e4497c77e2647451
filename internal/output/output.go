// Package output carries the stdout printer for git-side commands.
//
// Stdout holds what the user asked for: tracked paths, deltas, log output,
// store locations. Diagnostics go through the log package to stderr, so
// `git side log | less` and `$(git side info ...)` stay clean.
package output

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"

	"github.com/Solexma/git-side/internal/ui/styles"
)

type ctxKey struct{}

// Printer writes command output.
type Printer struct {
	w        io.Writer
	sections int
}

// New creates a new Printer writing to the given writer.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Terminal wraps w so styled output is downsampled to what the destination
// supports. ANSI sequences are stripped entirely when w is not a terminal
// or NO_COLOR is set.
func Terminal(w io.Writer) io.Writer {
	return colorprofile.NewWriter(w, os.Environ())
}

// WithPrinter attaches a Printer writing to w to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, New(w))
}

// FromContext retrieves the Printer from context.
// Falls back to a terminal-aware stdout printer.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(Terminal(os.Stdout))
}

// Print writes output without a newline.
func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.w, a...)
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Section writes a styled heading. Every heading after the first is
// preceded by a blank line.
func (p *Printer) Section(title string) {
	if p.sections > 0 {
		fmt.Fprintln(p.w)
	}
	p.sections++
	fmt.Fprintln(p.w, styles.TitleStyle.Render(title))
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}
