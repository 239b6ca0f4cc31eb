package pipeline

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/pkg/errors"
)

// ProcessCommand runs an external program to completion and returns its standard output.
type ProcessCommand struct {
	commandLine      string
	asBytes          bool
	pipeStdin        bool
	ignoreExitStatus bool
	dir              string
	env              []string
	tracer           Tracer
}

// NewProcessCommand creates a command running commandLine.
// The command line is only split when the command is invoked.
func NewProcessCommand(commandLine string, opts ...ProcessOption) *ProcessCommand {
	cmd := &ProcessCommand{
		commandLine: commandLine,
		tracer:      defaultTracer,
	}
	for _, opt := range opts {
		opt(cmd)
	}

	return cmd
}

// CommandLine returns the command line the command was built with.
func (c *ProcessCommand) CommandLine() string {
	return c.commandLine
}

// Describe returns the program name, or "process" when the command line cannot be split.
func (c *ProcessCommand) Describe() string {
	program, _, err := SplitCommandLine(c.commandLine)
	if err != nil {
		return "process"
	}

	return program
}

// Accepts reports whether the command can receive a value of kind k.
func (c *ProcessCommand) Accepts(Kind) bool {
	return true
}

// Produces returns the kind of value returned by Invoke.
func (c *ProcessCommand) Produces() Kind {
	if c.asBytes {
		return KindBytes
	}

	return KindText
}

// Invoke runs the program and waits for it to exit.
func (c *ProcessCommand) Invoke(ctx context.Context, in Value) (Value, error) {
	program, args, err := SplitCommandLine(c.commandLine)
	if err != nil {
		return Unit(), err
	}

	c.tracer.Trace(program, args)

	var stdout, stderr bytes.Buffer

	proc := exec.CommandContext(ctx, program, args...)
	proc.Dir = c.dir
	proc.Env = c.env
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	if input := in.Encode(); c.pipeStdin && len(input) > 0 {
		proc.Stdin = bytes.NewReader(input)
	}

	err = proc.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Unit(), errors.Wrapf(ctxErr, "%s interrupted", program)
		}

		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Unit(), &ProcessError{
				Program:  program,
				Args:     args,
				ExitCode: -1,
				Stderr:   stderr.Bytes(),
				Err:      err,
			}
		}
		if !c.ignoreExitStatus {
			return Unit(), &ProcessError{
				Program:  program,
				Args:     args,
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.Bytes(),
				Err:      exitErr,
			}
		}
	}

	if c.asBytes {
		return Bytes(stdout.Bytes()), nil
	}

	return Text(stdout.String()), nil
}
