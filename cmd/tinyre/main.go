// Command tinyre matches lines against a pattern, dumps its automaton, or
// generates a Go matcher for it.
//
// Usage:
//
//	tinyre -pattern 'ab*c' [file ...]          print lines matching the whole pattern
//	tinyre -pattern 'ab*c' -dump               print the automaton's states
//	tinyre -pattern 'ab*c' -name ABC -output abc.go -package gen
//
// Exit status is 0 when a line matched (or generation succeeded), 1 when no
// line matched and 2 on errors.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	isatty "github.com/mattn/go-isatty"

	"github.com/KromDaniel/tinyre/pkg/tinyre"
	"github.com/KromDaniel/tinyre/stream"
)

const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

// arrayFlags collects the values of a repeatable flag.
type arrayFlags []string

func (a *arrayFlags) String() string {
	return strings.Join(*a, ", ")
}

func (a *arrayFlags) Set(value string) error {
	*a = append(*a, value)
	return nil
}

type options struct {
	pattern    string
	dump       bool
	output     string
	name       string
	pkg        string
	testInputs arrayFlags
	verbose    bool
	count      bool
	lineNumber bool
	bufferSize int
	files      []string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("tinyre", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.pattern, "pattern", "", "pattern to compile (required)")
	fs.BoolVar(&opts.dump, "dump", false, "print the compiled automaton and exit")
	fs.StringVar(&opts.output, "output", "", "write a generated Go matcher to this file")
	fs.StringVar(&opts.name, "name", "Pattern", "type name of the generated matcher")
	fs.StringVar(&opts.pkg, "package", "main", "package of the generated matcher")
	fs.Var(&opts.testInputs, "test-input", "input for the generated test file (repeatable)")
	fs.BoolVar(&opts.verbose, "v", false, "log compilation details to stderr")
	fs.BoolVar(&opts.count, "count", false, "print only the number of matching lines")
	fs.BoolVar(&opts.lineNumber, "n", false, "prefix matching lines with their line number")
	fs.IntVar(&opts.bufferSize, "buffer", stream.DefaultBufferSize, "maximum line length in bytes")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.pattern == "" {
		fs.Usage()
		return nil, fmt.Errorf("-pattern is required")
	}
	opts.files = fs.Args()
	return opts, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	if opts.output != "" {
		return generate(opts, stdout, stderr)
	}

	re, err := tinyre.Compile(opts.pattern)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	if opts.dump {
		fmt.Fprintf(stdout, "pattern: %s\nstates: %d\nalphabet: %s\n", re, re.NumStates(), re.Alphabet())
		fmt.Fprint(stdout, re.Dump())
		return exitMatch
	}

	return matchInputs(re, opts, stdin, stdout, stderr)
}

func generate(opts *options, stdout, stderr io.Writer) int {
	err := tinyre.Generate(tinyre.Options{
		Pattern:        opts.pattern,
		Name:           opts.name,
		OutputFile:     opts.output,
		Package:        opts.pkg,
		Verbose:        opts.verbose,
		TestFileInputs: opts.testInputs,
	})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	fmt.Fprintf(stdout, "wrote %s\n", opts.output)
	return exitMatch
}

func matchInputs(re *tinyre.Regexp, opts *options, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg := stream.Config{BufferSize: opts.bufferSize}
	total := 0

	matchReader := func(r io.Reader, name string) error {
		if !opts.count && !opts.lineNumber && name == "" {
			// Plain output copies matching lines with their original terminators.
			f := stream.NewFilter(r, cfg, re.Match)
			_, err := io.Copy(stdout, f)
			total += f.Matched()
			return err
		}

		n, err := stream.MatchLines(r, cfg, re.Match, func(l stream.Line) bool {
			if opts.count {
				return true
			}
			if name != "" {
				fmt.Fprintf(stdout, "%s:", name)
			}
			if opts.lineNumber {
				fmt.Fprintf(stdout, "%d:", l.Number)
			}
			fmt.Fprintf(stdout, "%s\n", l.Text)
			return true
		})
		total += n
		return err
	}

	if len(opts.files) == 0 {
		if f, ok := stdin.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			fmt.Fprintln(stderr, "reading lines from the terminal, end with Ctrl-D")
		}
		if err := matchReader(stdin, ""); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitError
		}
	}

	prefix := len(opts.files) > 1
	for _, path := range opts.files {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitError
		}
		name := ""
		if prefix {
			name = path
		}
		err = matchReader(f, name)
		f.Close()
		if err != nil {
			fmt.Fprintf(stderr, "error: %s: %v\n", path, err)
			return exitError
		}
	}

	if opts.count {
		fmt.Fprintf(stdout, "%d\n", total)
	}
	if total == 0 {
		return exitNoMatch
	}
	return exitMatch
}
