package pipeline

// ProcessOption configures a ProcessCommand.
type ProcessOption func(c *ProcessCommand)

// ProcessOutputBytes returns the standard output as raw bytes instead of text.
func ProcessOutputBytes() ProcessOption {
	return func(c *ProcessCommand) {
		c.asBytes = true
	}
}

// ProcessPipeStdin writes the received value to the standard input of the program.
func ProcessPipeStdin() ProcessOption {
	return func(c *ProcessCommand) {
		c.pipeStdin = true
	}
}

// ProcessIgnoreExitStatus forwards the standard output even when the program exits with a non-zero status.
func ProcessIgnoreExitStatus() ProcessOption {
	return func(c *ProcessCommand) {
		c.ignoreExitStatus = true
	}
}

// ProcessTracer replaces the tracer printing the program before it starts.
func ProcessTracer(tracer Tracer) ProcessOption {
	return func(c *ProcessCommand) {
		c.tracer = tracer
	}
}

// ProcessDir sets the working directory of the program.
func ProcessDir(dir string) ProcessOption {
	return func(c *ProcessCommand) {
		c.dir = dir
	}
}

// ProcessEnv sets the environment of the program. The parent environment is used when env is nil.
func ProcessEnv(env []string) ProcessOption {
	return func(c *ProcessCommand) {
		c.env = env
	}
}
