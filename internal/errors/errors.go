// Package errors holds the sentinel errors shared across commands and the
// helpers that print them to the user.
package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/timecompass/internal/logger"
)

var (
	// ErrNotInitialized is returned when the settings store has no schema or record yet
	ErrNotInitialized = stderrors.New("timecompass is not initialized, run 'timecompass init'")

	// ErrInvalidSettings wraps validation failures at the settings boundary
	ErrInvalidSettings = stderrors.New("invalid settings")
)

// stderr is swapped in tests
var stderr io.Writer = os.Stderr

// New, Is, As and Join forward to the standard library so callers only need
// one errors import.
func New(text string) error { return stderrors.New(text) }

func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }

func Join(errs ...error) error { return stderrors.Join(errs...) }

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns a follow-up suggestion for well-known errors, or "".
func Hint(err error) string {
	switch {
	case Is(err, ErrNotInitialized):
		return "Run 'timecompass init' to create the settings store."
	case Is(err, ErrInvalidSettings):
		return "Run 'timecompass settings --list' to review the current values."
	default:
		return ""
	}
}

// Fatal logs an error, prints it with any hint, and exits with code 1
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(stderr, Format(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintln(stderr, hint)
	}
	os.Exit(1)
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...any) {
	logger.Error("Command execution failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(stderr, Formatf(format, args...))
	os.Exit(1)
}
