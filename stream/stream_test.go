package stream

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func equals(want string) func([]byte) bool {
	return func(line []byte) bool { return string(line) == want }
}

func collect(t *testing.T, input string, cfg Config, match func([]byte) bool) ([]Line, int) {
	t.Helper()
	var lines []Line
	n, err := MatchLines(strings.NewReader(input), cfg, match, func(l Line) bool {
		l.Text = append([]byte(nil), l.Text...)
		lines = append(lines, l)
		return true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return lines, n
}

func TestMatchLines(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		match   func([]byte) bool
		numbers []int
		offsets []int64
		texts   []string
	}{
		{
			name:    "keep matching lines",
			input:   "ok\nERROR\nok\nERROR\n",
			match:   equals("ERROR"),
			numbers: []int{2, 4},
			offsets: []int64{3, 12},
			texts:   []string{"ERROR", "ERROR"},
		},
		{
			name:    "last line without newline",
			input:   "a\nb",
			match:   equals("b"),
			numbers: []int{2},
			offsets: []int64{2},
			texts:   []string{"b"},
		},
		{
			name:    "crlf line endings",
			input:   "a\r\nb\r\n",
			match:   equals("b"),
			numbers: []int{2},
			offsets: []int64{3},
			texts:   []string{"b"},
		},
		{
			name:    "empty lines",
			input:   "\n\nx\n",
			match:   equals(""),
			numbers: []int{1, 2},
			offsets: []int64{0, 1},
			texts:   []string{"", ""},
		},
		{
			name:  "empty input",
			input: "",
			match: func([]byte) bool { return true },
		},
		{
			name:  "no matches",
			input: "a\nb\n",
			match: func([]byte) bool { return false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, n := collect(t, tt.input, DefaultConfig(), tt.match)
			if n != len(tt.numbers) || len(lines) != len(tt.numbers) {
				t.Fatalf("got %d lines (n=%d), want %d", len(lines), n, len(tt.numbers))
			}
			for i, l := range lines {
				if l.Number != tt.numbers[i] || l.Offset != tt.offsets[i] || string(l.Text) != tt.texts[i] {
					t.Errorf("line %d = {%d %d %q}, want {%d %d %q}",
						i, l.Number, l.Offset, l.Text, tt.numbers[i], tt.offsets[i], tt.texts[i])
				}
			}
		})
	}
}

func TestMatchLinesStopsEarly(t *testing.T) {
	calls := 0
	n, err := MatchLines(strings.NewReader("x\nx\nx\n"), Config{}, equals("x"), func(Line) bool {
		calls++
		return false
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 || calls != 1 {
		t.Errorf("n = %d, calls = %d, want 1 and 1", n, calls)
	}
}

func TestMatchLinesTooLong(t *testing.T) {
	input := "short\n" + strings.Repeat("x", 100) + "\n"
	_, err := MatchLines(strings.NewReader(input), Config{BufferSize: 16}, equals("short"), func(Line) bool { return true })

	var tooLong ErrLineTooLong
	if !errors.As(err, &tooLong) {
		t.Fatalf("error = %v, want ErrLineTooLong", err)
	}
	if tooLong.Line != 2 || tooLong.BufferSize != 16 {
		t.Errorf("ErrLineTooLong = %+v, want line 2, buffer 16", tooLong)
	}
}

func TestMatchLinesReadError(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(strings.NewReader("a\n"), iotest.ErrReader(boom))
	n, err := MatchLines(r, DefaultConfig(), equals("a"), func(Line) bool { return true })
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped boom", err)
	}
	if n != 1 {
		t.Errorf("n = %d, want 1", n)
	}
}

func TestConfig(t *testing.T) {
	if err := (Config{BufferSize: -1}).Validate(); err == nil {
		t.Error("negative buffer size should be invalid")
	}
	if err := (Config{}).Validate(); err != nil {
		t.Errorf("zero config should be valid: %v", err)
	}
	if got := (Config{}).ApplyDefaults().BufferSize; got != DefaultBufferSize {
		t.Errorf("ApplyDefaults().BufferSize = %d, want %d", got, DefaultBufferSize)
	}
	if got := (Config{BufferSize: 10}).ApplyDefaults().BufferSize; got != 10 {
		t.Errorf("ApplyDefaults() changed an explicit size to %d", got)
	}

	_, err := MatchLines(bytes.NewReader(nil), Config{BufferSize: -5}, equals(""), func(Line) bool { return true })
	var invalid ErrInvalidBufferSize
	if !errors.As(err, &invalid) || invalid.Requested != -5 {
		t.Errorf("error = %v, want ErrInvalidBufferSize{-5}", err)
	}
}
