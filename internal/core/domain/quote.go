package domain

import "github.com/kballard/go-shellquote"

// QuoteCommand renders argv as a single POSIX shell command line.
// It is for display only; processes are always started from the argument list.
func QuoteCommand(argv []string) string {
	return shellquote.Join(argv...)
}
