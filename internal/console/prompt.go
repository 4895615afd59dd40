package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// cancelAnswer cancels a prompt.
const cancelAnswer = "-"

// LineIO prompts and alerts over a line-oriented terminal.
type LineIO struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewLineIO reads answers from in and writes prompts to out.
func NewLineIO(in io.Reader, out io.Writer) *LineIO {
	return &LineIO{in: bufio.NewScanner(in), out: out}
}

// Prompt prints msg and reads one line. End of input and "-" cancel.
func (l *LineIO) Prompt(msg string) (string, bool) {
	fmt.Fprint(l.out, msg+" ")
	line, ok := l.ReadLine()
	if !ok || strings.TrimSpace(line) == cancelAnswer {
		return "", false
	}
	return line, true
}

// Alert prints msg on its own line.
func (l *LineIO) Alert(msg string) {
	fmt.Fprintln(l.out, "! "+msg)
}

// ReadLine returns the next input line without its newline.
func (l *LineIO) ReadLine() (string, bool) {
	if !l.in.Scan() {
		return "", false
	}
	return l.in.Text(), true
}

// splitArgs splits a command line on spaces, keeping double-quoted runs
// together.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		quoted  bool
		hasWord bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			hasWord = true
		case (r == ' ' || r == '\t') && !quoted:
			if hasWord {
				args = append(args, cur.String())
				cur.Reset()
				hasWord = false
			}
		default:
			cur.WriteRune(r)
			hasWord = true
		}
	}
	if quoted {
		return nil, fmt.Errorf("unterminated quote in %q", line)
	}
	if hasWord {
		args = append(args, cur.String())
	}
	return args, nil
}
