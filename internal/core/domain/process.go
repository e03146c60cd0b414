package domain

// Invocation is a single external process to launch.
type Invocation struct {
	// Tokens is the command line; Tokens[0] is the executable.
	Tokens []string
	// Dir is the working directory of the process.
	Dir string
}

// ProcessResult describes a process that was launched and has terminated.
type ProcessResult struct {
	ExitCode int
}

// Success reports whether the process exited with status zero.
func (r ProcessResult) Success() bool {
	return r.ExitCode == 0
}
