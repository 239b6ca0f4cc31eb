package pipeline

import (
	"context"
	"fmt"
)

// Command is a single step of a pipeline.
type Command interface {
	// Invoke consumes the output of the previous step and returns the input of the next one.
	Invoke(ctx context.Context, in Value) (Value, error)
}

// CommandFunc adapts an ordinary function to the Command interface.
type CommandFunc func(ctx context.Context, in Value) (Value, error)

// Invoke calls f(ctx, in).
func (f CommandFunc) Invoke(ctx context.Context, in Value) (Value, error) {
	return f(ctx, in)
}

// Typed is implemented by commands declaring which kinds of value they accept and produce.
// The pipeline checks typed neighbours before running.
type Typed interface {
	Accepts(k Kind) bool
	Produces() Kind
}

// Describer is implemented by commands that can name themselves.
type Describer interface {
	Describe() string
}

func describe(cmd Command) string {
	if d, ok := cmd.(Describer); ok {
		return d.Describe()
	}

	return fmt.Sprintf("%T", cmd)
}

var (
	_ Command = CommandFunc(nil)
	_ Command = (*ProcessCommand)(nil)
	_ Command = (*FileWriteCommand)(nil)
	_ Typed   = (*ProcessCommand)(nil)
	_ Typed   = (*FileWriteCommand)(nil)
)
