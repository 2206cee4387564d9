// Package compiler generates Go source implementing a matcher for a compiled
// automaton.
package compiler

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"strings"

	"github.com/KromDaniel/tinyre/internal/codegen"
	"github.com/KromDaniel/tinyre/internal/logger"
	"github.com/KromDaniel/tinyre/internal/nfa"
	"github.com/dave/jennifer/jen"
)

// Config holds the configuration for code generation.
type Config struct {
	Pattern          string
	Name             string
	OutputFile       string
	Package          string
	GenerateTestFile bool     // Generate test file checking against the standard regexp package
	TestFileInputs   []string // Test inputs for generated test file
	Verbose          bool     // Enable verbose logging of generation decisions
}

// Compiler generates Go code from automata.
type Compiler struct {
	config Config
	logger *logger.Logger
}

// New creates a new compiler instance.
func New(config Config) *Compiler {
	return &Compiler{
		config: config,
		logger: logger.New(config.Verbose),
	}
}

// Logger returns the compiler's logger so that parsing can share it.
func (c *Compiler) Logger() *logger.Logger {
	return c.logger
}

// TestFilePath returns the path of the generated test file.
func (c *Compiler) TestFilePath() string {
	return strings.TrimSuffix(c.config.OutputFile, ".go") + "_test.go"
}

// method returns a jen.Statement for declaring a method on the generated struct.
func (c *Compiler) method(f *jen.File, name string) *jen.Statement {
	return f.Func().
		Params(jen.Id(c.config.Name)).
		Id(name)
}

// Render returns the formatted source of the matcher for a.
func (c *Compiler) Render(a *nfa.Automaton) ([]byte, error) {
	f := jen.NewFile(c.config.Package)
	f.HeaderComment(fmt.Sprintf("Code generated by tinyre for pattern %q. DO NOT EDIT.", c.config.Pattern))

	gen := newSimulation(a, c.logger)

	// Generate the main struct type
	f.Type().Id(c.config.Name).Struct()
	f.Line()

	// Generate convenience variable for direct usage
	f.Var().Id(fmt.Sprintf("Compiled%s", c.config.Name)).Op("=").Id(c.config.Name).Values()
	f.Line()

	gen.generateTables(f, c.config.Name)
	gen.generateStep(f, c.config.Name)
	gen.generateAccepts(f, c.config.Name)

	c.method(f, "MatchString").
		Params(jen.Id(codegen.InputName).String()).
		Params(jen.Bool()).
		Block(gen.matchStringBody(c.config.Name)...)
	f.Line()

	c.method(f, "MatchBytes").
		Params(jen.Id(codegen.InputName).Index().Byte()).
		Params(jen.Bool()).
		Block(gen.matchBytesBody(c.config.Name)...)

	return renderFile(f)
}

// Generate generates the Go code for a and writes it to the output file.
func (c *Compiler) Generate(a *nfa.Automaton) error {
	c.logger.Section("Code Generation")
	c.logger.Log("Output: %s (package %s, type %s)", c.config.OutputFile, c.config.Package, c.config.Name)

	src, err := c.Render(a)
	if err != nil {
		return fmt.Errorf("failed to render matcher: %w", err)
	}

	if err := os.WriteFile(c.config.OutputFile, src, 0644); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	// Generate test file if requested
	if c.config.GenerateTestFile {
		if err := c.generateTestFile(); err != nil {
			return fmt.Errorf("failed to generate test file: %w", err)
		}
	}

	return nil
}

// renderFile renders f and formats the result with go/format.
func renderFile(f *jen.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, err
	}
	return format.Source(buf.Bytes())
}
