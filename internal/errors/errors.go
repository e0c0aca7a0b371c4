// Package errors formats errors for the terminal and terminates the process
// on unrecoverable command failures.
package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/habitlog/internal/logger"
)

const prefix = "Error: "

// Format prefixes err with "Error: ". A nil error formats as "".
func Format(err error) string {
	if err == nil {
		return ""
	}
	return prefix + err.Error()
}

// Formatf is Format for a message built from a format string.
func Formatf(format string, args ...interface{}) string {
	return prefix + fmt.Sprintf(format, args...)
}

// Report writes the formatted error, and any hint lines, to w.
func Report(w io.Writer, err error, hints ...string) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, Format(err))
	for _, h := range hints {
		if h = strings.TrimSpace(h); h != "" {
			fmt.Fprintf(w, "       %s\n", h)
		}
	}
}

// Fatal logs err, prints it to stderr and exits with status 1. It does nothing for nil.
func Fatal(err error, hints ...string) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	Report(os.Stderr, err, hints...)
	os.Exit(1)
}

// Fatalf is Fatal for a formatted message.
func Fatalf(format string, args ...interface{}) {
	Fatal(fmt.Errorf(format, args...))
}
