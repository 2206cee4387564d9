package tinyre

import (
	"fmt"
	"go/token"

	"github.com/KromDaniel/tinyre/internal/compiler"
	"github.com/KromDaniel/tinyre/internal/parser"
)

// Options configures Go code generation for a pattern.
type Options struct {
	// Pattern is the pattern to compile
	Pattern string

	// Name is the generated type name (e.g., "Greeting" generates type Greeting with MatchString)
	Name string

	// OutputFile is the path where generated code will be written
	OutputFile string

	// Package is the Go package name for the generated code
	Package string

	// Verbose logs parsing and generation decisions to stderr
	Verbose bool

	// GenerateTestFile writes <OutputFile without .go>_test.go checking the generated matcher against the standard regexp package
	GenerateTestFile bool

	// TestFileInputs are the inputs used by the generated test. If empty and GenerateTestFile is set, the pattern itself is used
	TestFileInputs []string
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.Pattern == "" {
		return fmt.Errorf("pattern cannot be empty")
	}
	if o.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if !token.IsIdentifier(o.Name) {
		return fmt.Errorf("name %q is not a valid Go identifier", o.Name)
	}
	if o.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	if !token.IsIdentifier(o.Package) {
		return fmt.Errorf("package %q is not a valid Go identifier", o.Package)
	}
	return nil
}

// Generate compiles the pattern and writes a Go file implementing a matcher
// for it. It returns an error if the options or the pattern are invalid, or
// if writing fails.
func Generate(opts Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	c := compiler.New(compiler.Config{
		Pattern:          opts.Pattern,
		Name:             opts.Name,
		OutputFile:       opts.OutputFile,
		Package:          opts.Package,
		Verbose:          opts.Verbose,
		GenerateTestFile: opts.GenerateTestFile || len(opts.TestFileInputs) > 0,
		TestFileInputs:   opts.TestFileInputs,
	})

	a, err := parser.Parse(opts.Pattern, c.Logger())
	if err != nil {
		return fmt.Errorf("failed to compile pattern: %w", err)
	}

	if err := c.Generate(a); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	return nil
}
