package git

import "errors"

// ExitInvalidRepository is the status git exits with when the repository
// reference cannot be used (fatal: repository not found, not a git
// repository, destination exists).
const ExitInvalidRepository = 128

// exitCoder is satisfied by *exec.ExitError
type exitCoder interface {
	ExitCode() int
}

// ExitCode returns the process exit code carried by err, 0 for nil and -1
// when err carries none (git missing, context cancelled before start).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var ec exitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}

	return -1
}
