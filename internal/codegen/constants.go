// Package codegen provides code generation helpers and constants.
package codegen

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Variable names used in generated code
const (
	InputName   = "input"
	CurrentName = "current"
	NextName    = "next"
	CharName    = "c"
	SizeName    = "size"
	SetName     = "set"
)

// Suffixes of the package-level helpers generated for a matcher type.
const (
	StartSuffix      = "Start"
	AcceptSuffix     = "Accept"
	StepSuffix       = "Step"
	AcceptsSuffix    = "Accepts"
	TestInputsSuffix = "TestInputs"
)

// StateName returns the name used for a state in generated comments.
func StateName(id int) string {
	return fmt.Sprintf("s%d", id)
}

// HelperName returns the unexported name of a helper generated for the
// matcher type name, e.g. HelperName("Email", "Step") is "emailStep".
func HelperName(name, suffix string) string {
	return LowerFirst(name) + suffix
}

// LowerFirst converts the first character of a string to lowercase.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
