package pipeline

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrCommandMustBeSet is returned by Pipe when a nil command was added.
	ErrCommandMustBeSet = errors.New("command must be set")
	// ErrEmptyCommandLine is returned for a command line without a program.
	ErrEmptyCommandLine = errors.New("command line is empty")
	// ErrKindMismatch is returned by Pipe, before anything runs, when a step cannot receive the previous output.
	ErrKindMismatch = errors.New("step does not accept value kind")
)

// UnsupportedTypeError is returned by a command receiving a kind of value it cannot handle.
type UnsupportedTypeError struct {
	Kind Kind
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("only text or bytes are accepted, got %s", e.Kind)
}

// ProcessError describes an external program that could not be started or exited with a non-zero status.
type ProcessError struct {
	Program  string
	Args     []string
	ExitCode int
	Stderr   []byte
	Err      error
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Program, e.ExitCode)
	if e.ExitCode < 0 {
		msg = fmt.Sprintf("unable to run %s", e.Program)
	}
	if stderr := strings.TrimSpace(string(e.Stderr)); stderr != "" {
		msg += ": " + lastLine(stderr)
	}
	if e.ExitCode < 0 && e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

func lastLine(s string) string {
	if idx := strings.LastIndexByte(s, '\n'); idx >= 0 {
		return s[idx+1:]
	}

	return s
}
