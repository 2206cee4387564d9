package parser

import "fmt"

// ErrorCode describes why a pattern failed to compile. Codes are errors
// themselves so they can be matched with errors.Is.
type ErrorCode string

const (
	ErrEmptyPattern           ErrorCode = "empty pattern"
	ErrDanglingQuantifier     ErrorCode = "missing argument to repetition operator"
	ErrEmptyAlternationBranch ErrorCode = "empty alternation branch"
	// ErrUnexpectedCharacter reports a byte sequence that is not valid UTF-8.
	ErrUnexpectedCharacter ErrorCode = "unexpected character"
)

func (c ErrorCode) Error() string {
	return string(c)
}

// Error is a compile error for a pattern. Pos is the rune offset of the
// offending token; for errors at the end of the pattern it equals the
// pattern's rune length.
type Error struct {
	Code    ErrorCode
	Pattern string
	Pos     int
}

func (e *Error) Error() string {
	return fmt.Sprintf("error parsing pattern: %s at position %d: `%s`", e.Code, e.Pos, e.Pattern)
}

// Unwrap returns the error code.
func (e *Error) Unwrap() error {
	return e.Code
}
