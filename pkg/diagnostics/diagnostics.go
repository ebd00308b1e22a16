// Package diagnostics carries non-fatal notices from the metadata host to
// whoever runs it. The host never writes to a stream on its own; it reports
// to the Sink it was constructed with.
package diagnostics

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
)

// Severity grades a diagnostic.
type Severity string

const (
	Info    Severity = "info"
	Warning Severity = "warning"
)

// Code classifies a diagnostic.
type Code string

const (
	UnresolvedReference Code = "unresolved-reference"
	UnreadableModule    Code = "unreadable-module"
	UnresolvedForward   Code = "unresolved-forward"
)

// Diagnostic is one non-fatal notice.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Source   string
	Message  string
}

func (d Diagnostic) String() string {
	if d.Source != "" {
		return fmt.Sprintf("%s: %s", d.Source, d.Message)
	}
	return d.Message
}

// Sink receives diagnostics.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Diagnostic)

func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// Collector records diagnostics in memory.
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, d)
}

// Diagnostics returns a copy of everything reported so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Diagnostic(nil), c.items...)
}

// Console writes one informational line per diagnostic. Lines are styled
// only when the destination is a terminal.
type Console struct {
	out    io.Writer
	styled bool
	info   lipgloss.Style
	warn   lipgloss.Style
}

// NewConsole returns a console sink writing to out.
func NewConsole(out io.Writer) *Console {
	c := &Console{out: out}
	if f, ok := out.(*os.File); ok {
		c.styled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	if c.styled {
		r := lipgloss.NewRenderer(out)
		if r.ColorProfile() == termenv.Ascii {
			c.styled = false
		}
		c.info = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"})
		c.warn = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFD75F"}).Bold(true)
	}
	return c
}

func (c *Console) Report(d Diagnostic) {
	prefix := string(d.Severity)
	if c.styled {
		if d.Severity == Warning {
			prefix = c.warn.Render(prefix)
		} else {
			prefix = c.info.Render(prefix)
		}
	}
	_, _ = fmt.Fprintf(c.out, "%s: %s\n", prefix, d)
}

// Logger forwards diagnostics to a zerolog logger.
type Logger struct {
	logger zerolog.Logger
}

// NewLogger returns a sink logging through logger.
func NewLogger(logger zerolog.Logger) *Logger {
	return &Logger{logger: logger}
}

func (l *Logger) Report(d Diagnostic) {
	ev := l.logger.Info()
	if d.Severity == Warning {
		ev = l.logger.Warn()
	}
	ev.Str("code", string(d.Code)).Str("source", d.Source).Msg(d.Message)
}

// Tee fans a diagnostic out to several sinks in order.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(d Diagnostic) {
		for _, s := range sinks {
			s.Report(d)
		}
	})
}
