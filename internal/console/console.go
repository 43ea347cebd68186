// Package console prints the styled status lines shown to the user.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Status icons.
const (
	IconBuild   = "🔨"
	IconOK      = "✅"
	IconWarn    = "⚠️ "
	IconFail    = "❌"
	IconDone    = "✨"
	IconWatch   = "👀"
	IconChange  = "📝"
	IconRebuild = "♻️ "
	IconStyle   = "🎨"
	IconNew     = "🆕"
)

// Palette.
var (
	green  = lipgloss.Color("#5FD787")
	yellow = lipgloss.Color("#FFD787")
	red    = lipgloss.Color("#FF8787")
	blue   = lipgloss.Color("#5FAFFF")
	gray   = lipgloss.Color("#888888")
)

// Printer writes status lines. Colours are dropped automatically when the
// writer is not a terminal. Safe for concurrent use.
type Printer struct {
	mu  sync.Mutex
	out io.Writer

	ok     lipgloss.Style
	warn   lipgloss.Style
	fail   lipgloss.Style
	accent lipgloss.Style
	muted  lipgloss.Style
}

// New creates a printer on out.
func New(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:    out,
		ok:     r.NewStyle().Foreground(green),
		warn:   r.NewStyle().Foreground(yellow),
		fail:   r.NewStyle().Foreground(red).Bold(true),
		accent: r.NewStyle().Foreground(blue).Bold(true),
		muted:  r.NewStyle().Foreground(gray),
	}
}

// Discard returns a printer that writes nothing.
func Discard() *Printer {
	return New(io.Discard)
}

func (p *Printer) line(icon string, style lipgloss.Style, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.mu.Lock()
	defer p.mu.Unlock()
	if icon != "" {
		fmt.Fprintf(p.out, "%s %s\n", icon, style.Render(msg))
		return
	}
	fmt.Fprintln(p.out, style.Render(msg))
}

// Successf prints a success line.
func (p *Printer) Successf(format string, args ...any) { p.line(IconOK, p.ok, format, args...) }

// Warnf prints a warning line.
func (p *Printer) Warnf(format string, args ...any) { p.line(IconWarn, p.warn, format, args...) }

// Failf prints an error line.
func (p *Printer) Failf(format string, args ...any) { p.line(IconFail, p.fail, format, args...) }

// Headerf prints an emphasised line with the given icon.
func (p *Printer) Headerf(icon, format string, args ...any) { p.line(icon, p.accent, format, args...) }

// Infof prints a plain line with the given icon.
func (p *Printer) Infof(icon, format string, args ...any) {
	p.line(icon, lipgloss.NewStyle(), format, args...)
}

// Mutedf prints a de-emphasised line without an icon.
func (p *Printer) Mutedf(format string, args ...any) { p.line("", p.muted, format, args...) }

// Blank prints an empty line.
func (p *Printer) Blank() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out)
}

// Size formats a byte count ("1.2 kB").
func Size(n int) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// Age formats a past time relative to now ("3 days ago").
func Age(t time.Time) string {
	if t.IsZero() {
		return "at an unknown time"
	}
	return humanize.Time(t)
}

// List joins names the way status lines show them: "[a] - [b]".
func List(names []string) string {
	if len(names) == 0 {
		return "[]"
	}
	return "[" + strings.Join(names, "] - [") + "]"
}
