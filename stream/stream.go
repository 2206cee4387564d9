// Package stream matches compiled patterns against the lines of an io.Reader.
//
// Matching is whole-line: a line matches when the pattern accepts its full
// content, without the trailing newline.
//
// Example usage:
//
//	re := tinyre.MustCompile("ERROR|WARN")
//	file, _ := os.Open("levels.txt")
//	defer file.Close()
//
//	n, err := stream.MatchLines(file, stream.DefaultConfig(), re.Match, func(l stream.Line) bool {
//	    fmt.Printf("%d: %s\n", l.Number, l.Text)
//	    return true // continue
//	})
package stream

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// DefaultBufferSize is the default maximum line length, 64KB.
const DefaultBufferSize = 64 * 1024

// Config configures line matching.
type Config struct {
	// BufferSize is the longest line, in bytes, that can be matched. The
	// "\n" or "\r\n" terminator does not count toward it.
	// Default: 64KB (65536). Longer lines fail with ErrLineTooLong.
	BufferSize int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BufferSize: DefaultBufferSize,
	}
}

// ErrInvalidBufferSize is returned by Validate for a negative BufferSize.
type ErrInvalidBufferSize struct {
	Requested int
}

func (e ErrInvalidBufferSize) Error() string {
	return fmt.Sprintf("stream: invalid buffer size %d", e.Requested)
}

// ErrLineTooLong is returned when a line does not fit in the buffer.
type ErrLineTooLong struct {
	Line       int
	BufferSize int
}

func (e ErrLineTooLong) Error() string {
	return fmt.Sprintf("stream: line %d exceeds buffer size %d", e.Line, e.BufferSize)
}

// Validate validates the Config and returns an error if invalid.
func (c Config) Validate() error {
	if c.BufferSize < 0 {
		return ErrInvalidBufferSize{Requested: c.BufferSize}
	}
	return nil
}

// ApplyDefaults returns a Config with defaults applied for any zero values.
func (c Config) ApplyDefaults() Config {
	result := c
	if result.BufferSize == 0 {
		result.BufferSize = DefaultBufferSize
	}
	return result
}

// Line is a matching line.
//
// WARNING: Text points into an internal buffer that is reused after the
// callback returns. Copy it if you need to keep it.
type Line struct {
	// Number is the 1-based line number.
	Number int

	// Offset is the byte position of the start of the line within the stream.
	Offset int64

	// Text is the line without its trailing "\n" or "\r\n".
	Text []byte
}

// MatchLines calls fn for every line of r accepted by match, in order. It
// stops early when fn returns false. It returns the number of matching
// lines passed to fn.
func MatchLines(r io.Reader, cfg Config, match func([]byte) bool, fn func(Line) bool) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	cfg = cfg.ApplyDefaults()

	sc := bufio.NewScanner(r)
	maxRaw := maxRawLine(cfg.BufferSize)
	sc.Buffer(make([]byte, 0, min(maxRaw, 4096)), maxRaw)
	sc.Split(scanLines)

	var (
		matched int
		number  int
		offset  int64
	)
	for sc.Scan() {
		number++
		raw := sc.Bytes()
		start := offset
		offset += int64(len(raw))

		text := lineText(raw)
		if len(text) > cfg.BufferSize {
			return matched, ErrLineTooLong{Line: number, BufferSize: cfg.BufferSize}
		}
		if !match(text) {
			continue
		}

		matched++
		if !fn(Line{Number: number, Offset: start, Text: text}) {
			return matched, nil
		}
	}

	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return matched, ErrLineTooLong{Line: number + 1, BufferSize: cfg.BufferSize}
		}
		return matched, fmt.Errorf("stream: read failed: %w", err)
	}
	return matched, nil
}

// scanLines is bufio.ScanLines keeping the line terminator, so offsets can
// be tracked exactly.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// maxRawLine is the largest line, terminator included, that a buffer of
// bufferSize content bytes has to hold.
func maxRawLine(bufferSize int) int {
	return bufferSize + len("\r\n")
}

// lineText strips the "\n" or "\r\n" terminator from a raw line.
func lineText(raw []byte) []byte {
	return bytes.TrimSuffix(bytes.TrimSuffix(raw, []byte{'\n'}), []byte{'\r'})
}
