// Package output provides styled terminal output for popper.
//
// The [Printer] renders run headers, warnings, dry-run previews, and
// success/failure messages with lipgloss styling. All output goes through a
// single injectable writer so tests can capture it with a buffer.
//
// The printer only covers popper's own orchestration messages; output
// produced by the execution engine is streamed through untouched.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes styled orchestration messages to a single writer.
//
// Use [NewPrinter] for stdout or [NewPrinterWithWriter] to capture output
// in tests.
type Printer struct {
	w io.Writer

	headerStyle  lipgloss.Style
	successStyle lipgloss.Style
	failureStyle lipgloss.Style
	warningStyle lipgloss.Style
	dryRunStyle  lipgloss.Style
	detailStyle  lipgloss.Style
}

// NewPrinter creates a [Printer] writing to stdout.
func NewPrinter() *Printer {
	return NewPrinterWithWriter(os.Stdout)
}

// NewPrinterWithWriter creates a [Printer] writing to w.
func NewPrinterWithWriter(w io.Writer) *Printer {
	return &Printer{
		w:            w,
		headerStyle:  lipgloss.NewStyle().Bold(true),
		successStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		failureStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		warningStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		dryRunStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		detailStyle:  lipgloss.NewStyle().Faint(true),
	}
}

// RunHeader prints a header for one run in a multi-run plan.
func (p *Printer) RunHeader(index, total int, description string) {
	header := fmt.Sprintf("[%d/%d] %s", index, total, description)
	fmt.Fprintln(p.w, p.headerStyle.Render(header))
}

// Info prints a plain informational message.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.w, fmt.Sprintf(format, args...))
}

// Success prints a success message.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.w, p.successStyle.Render("✓ ")+fmt.Sprintf(format, args...))
}

// Failure prints a failure message.
func (p *Printer) Failure(format string, args ...any) {
	fmt.Fprintln(p.w, p.failureStyle.Render("✗ ")+fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprintln(p.w, p.warningStyle.Render("! ")+fmt.Sprintf(format, args...))
}

// DryRun prints an execution preview line for dry-run mode.
func (p *Printer) DryRun(format string, args ...any) {
	fmt.Fprintln(p.w, p.dryRunStyle.Render("→ ")+fmt.Sprintf(format, args...))
}

// Detail prints a dimmed detail block, such as a rendered plan.
func (p *Printer) Detail(text string) {
	fmt.Fprintln(p.w, p.detailStyle.Render(text))
}
