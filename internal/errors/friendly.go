package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Kind classifies failures that callers are expected to branch on.
type Kind int

const (
	KindUnknown Kind = iota
	// KindConfigParse marks a configuration document that could not be parsed.
	KindConfigParse
	// KindIO marks a filesystem failure (directory creation, file write).
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindConfigParse:
		return "config_parse"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks against a UserFriendlyError of that kind.
var (
	ErrConfigParse = &kindError{KindConfigParse}
	ErrIO          = &kindError{KindIO}
)

type kindError struct{ kind Kind }

func (k *kindError) Error() string { return k.kind.String() + " error" }

// UserFriendlyError provides actionable error messages for end users
type UserFriendlyError struct {
	Kind       Kind   // Taxonomy class, see ErrConfigParse and ErrIO
	Message    string // User-facing message explaining what went wrong
	Suggestion string // Actionable steps to fix the issue
	Details    error  // Original error for debugging/logs
}

func (e *UserFriendlyError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.Details != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Details.Error())
	}
	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString("How to fix:\n")
		sb.WriteString(e.Suggestion)
	}
	return sb.String()
}

func (e *UserFriendlyError) Unwrap() error {
	return e.Details
}

// Is matches the kind sentinels so callers can write errors.Is(err, ErrIO).
func (e *UserFriendlyError) Is(target error) bool {
	var k *kindError
	if stderrors.As(target, &k) {
		return k.kind == e.Kind && e.Kind != KindUnknown
	}
	return false
}

// NewFriendlyError creates a user-friendly error
func NewFriendlyError(message, suggestion string) *UserFriendlyError {
	return &UserFriendlyError{
		Message:    message,
		Suggestion: suggestion,
	}
}

// WithDetails adds the underlying error details
func (e *UserFriendlyError) WithDetails(err error) *UserFriendlyError {
	e.Details = err
	return e
}

// ConfigParseError reports a configuration document that failed to parse.
// A build carrying such a document cannot start.
func ConfigParseError(doc string, err error) *UserFriendlyError {
	return &UserFriendlyError{
		Kind:       KindConfigParse,
		Message:    fmt.Sprintf("Failed to parse %s", doc),
		Suggestion: fmt.Sprintf("Check that %s is valid JSON and matches the packaged build", doc),
		Details:    err,
	}
}

// IOError returns file/directory related errors for the operation op on path.
func IOError(op, path string, err error) *UserFriendlyError {
	msg := fmt.Sprintf("%s %s", op, path)
	suggestion := "Check that the path exists and you have permission to access it"

	if err != nil {
		errStr := err.Error()

		if strings.Contains(errStr, "permission denied") {
			suggestion = fmt.Sprintf("Ensure you have write permission:\n  chmod u+w %s", path)
		}

		if strings.Contains(errStr, "no such file or directory") {
			suggestion = "The parent directory does not exist; the per-user config root must be created first"
		}

		if strings.Contains(errStr, "not a directory") {
			suggestion = "A file is in the way of the directory; remove it or choose a different product name"
		}
	}

	return &UserFriendlyError{
		Kind:       KindIO,
		Message:    msg,
		Suggestion: suggestion,
		Details:    err,
	}
}

// DatabaseError returns journal database errors with recovery suggestions
func DatabaseError(err error) *UserFriendlyError {
	msg := "Download journal error"
	suggestion := "Try running: pakeshell doctor"

	if err != nil {
		errStr := err.Error()

		if strings.Contains(errStr, "locked") {
			msg = "Download journal is locked by another process"
			suggestion = "Close other instances of the application and try again"
		}

		if strings.Contains(errStr, "corrupt") || strings.Contains(errStr, "malformed") {
			msg = "Download journal is corrupted"
			suggestion = "Remove state.db from the data directory; it only holds history and is recreated on demand"
		}
	}

	return &UserFriendlyError{
		Kind:       KindIO,
		Message:    msg,
		Suggestion: suggestion,
		Details:    err,
	}
}
