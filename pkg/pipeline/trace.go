package pipeline

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tracer receives a line for every program a ProcessCommand is about to start.
type Tracer interface {
	Trace(program string, args []string)
}

// ConsoleTracer prints the program name highlighted, followed by its arguments.
type ConsoleTracer struct {
	w       io.Writer
	program lipgloss.Style
}

// NewConsoleTracer creates a tracer writing to w. Colours are dropped when w is not a terminal.
func NewConsoleTracer(w io.Writer) *ConsoleTracer {
	renderer := lipgloss.NewRenderer(w)

	return &ConsoleTracer{
		w:       w,
		program: renderer.NewStyle().Foreground(lipgloss.Color("39")),
	}
}

// Trace writes the trace line.
func (t *ConsoleTracer) Trace(program string, args []string) {
	fmt.Fprintln(t.w, t.program.Render(program), strings.Join(args, " "))
}

type discardTracer struct{}

func (discardTracer) Trace(string, []string) {}

// DiscardTracer drops every trace line.
var DiscardTracer Tracer = discardTracer{}

var defaultTracer Tracer = NewConsoleTracer(os.Stdout)
