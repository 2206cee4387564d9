package stream

import (
	"bytes"
	"fmt"
	"io"
)

// Filter is an io.Reader that outputs only the lines of its source accepted
// by a matcher. Lines keep their original terminators, so copying a Filter
// reproduces the matching lines byte for byte.
//
// Example - keep only lines that are exactly a log level:
//
//	re := tinyre.MustCompile("ERROR|WARN")
//	f := stream.NewFilter(input, stream.DefaultConfig(), re.Match)
//	io.Copy(os.Stdout, f)
type Filter struct {
	source  io.Reader
	match   func(line []byte) bool
	maxLine int
	maxRaw  int

	// Input buffer
	buf       []byte
	bufStart  int
	sourceEOF bool

	// Lines that passed the matcher, not yet read
	output      []byte
	outputStart int

	number  int
	matched int
	err     error
}

// NewFilter returns a Filter reading from r. match receives each line
// without its "\n" or "\r\n" terminator. A line whose content is longer than
// cfg.BufferSize fails the read with ErrLineTooLong.
func NewFilter(r io.Reader, cfg Config, match func(line []byte) bool) *Filter {
	f := &Filter{source: r, match: match}
	if err := cfg.Validate(); err != nil {
		f.err = err
		return f
	}
	cfg = cfg.ApplyDefaults()
	f.maxLine = cfg.BufferSize
	f.maxRaw = maxRawLine(cfg.BufferSize)
	f.buf = make([]byte, 0, min(f.maxRaw, 4096))
	return f
}

// Matched returns the number of lines that passed the matcher so far.
func (f *Filter) Matched() int {
	return f.matched
}

func (f *Filter) Read(p []byte) (n int, err error) {
	for f.outputStart == len(f.output) {
		f.output = f.output[:0]
		f.outputStart = 0
		if f.err != nil {
			return 0, f.err
		}
		f.err = f.fill()
	}

	n = copy(p, f.output[f.outputStart:])
	f.outputStart += n
	return n, nil
}

// fill reads from the source and filters every complete line it finds. It
// returns io.EOF once the source is drained.
func (f *Filter) fill() error {
	if f.bufStart > 0 {
		remaining := copy(f.buf, f.buf[f.bufStart:])
		f.buf = f.buf[:remaining]
		f.bufStart = 0
	}

	var readErr error
	if !f.sourceEOF {
		if len(f.buf) == cap(f.buf) {
			// Only a partial line is left after compaction. Filling the
			// whole buffer without a newline leaves too much content even
			// after trimming a trailing "\r".
			if len(f.buf) >= f.maxRaw {
				return ErrLineTooLong{Line: f.number + 1, BufferSize: f.maxLine}
			}
			grown := make([]byte, len(f.buf), min(2*cap(f.buf), f.maxRaw))
			copy(grown, f.buf)
			f.buf = grown
		}

		n, err := f.source.Read(f.buf[len(f.buf):cap(f.buf)])
		f.buf = f.buf[:len(f.buf)+n]
		if err == io.EOF {
			f.sourceEOF = true
		} else if err != nil {
			readErr = fmt.Errorf("stream: read failed: %w", err)
		}
	}

	data := f.buf[f.bufStart:]
	for len(data) > 0 {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 && !f.sourceEOF {
			break
		}
		line := data
		if idx >= 0 {
			line = data[:idx+1]
		}
		f.number++

		text := lineText(line)
		if len(text) > f.maxLine {
			return ErrLineTooLong{Line: f.number, BufferSize: f.maxLine}
		}
		if f.match(text) {
			f.matched++
			f.output = append(f.output, line...)
		}
		data = data[len(line):]
		f.bufStart += len(line)
	}

	if readErr != nil {
		return readErr
	}
	if f.sourceEOF && f.bufStart == len(f.buf) {
		return io.EOF
	}
	return nil
}
