package pipeline

import (
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
)

// SplitCommandLine splits a command line into the program and its arguments.
// Quoting follows POSIX shell rules, so a quoted argument containing spaces stays a single token. No globbing,
// piping, comments or variable expansion are handled: `#` and `$` reach the program as written.
func SplitCommandLine(line string) (string, []string, error) {
	tokens, err := shellquote.Split(line)
	if err != nil {
		return "", nil, errors.Wrapf(err, "unable to split command line %q", line)
	}
	if len(tokens) == 0 {
		return "", nil, ErrEmptyCommandLine
	}

	return tokens[0], tokens[1:], nil
}

// Quote returns arg quoted for SplitCommandLine when it contains characters the tokenizer would interpret.
func Quote(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, " \t\n'\"\\") {
		return arg
	}

	return "'" + strings.ReplaceAll(arg, "'", `'"'"'`) + "'"
}
