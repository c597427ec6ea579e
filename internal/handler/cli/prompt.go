// Package cli is the interactive terminal front end. It reads lines from an
// io.Reader and writes prompts and results to an io.Writer.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse errors returned by the prompt parsers. Prompt loops turn them into
// re-prompts.
var (
	ErrNotANumber = errors.New("not a number")
	ErrOutOfRange = errors.New("number out of range")
	ErrNotYesNo   = errors.New("not Y or N")
)

const leadingSpace = " \t\n\v\f\r"

// ParseInt parses a whole line as a base-10 integer within [min, max].
// Leading whitespace and a sign are accepted; any trailing character, or a
// value that does not fit in 32 bits, makes the line not a number.
func ParseInt(input string, min, max int) (int, error) {
	s := strings.TrimLeft(input, leadingSpace)
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, ErrNotANumber
	}
	if int(n) < min || int(n) > max {
		return int(n), ErrOutOfRange
	}
	return int(n), nil
}

// ParseYesNo accepts exactly Y, y, N or n.
func ParseYesNo(input string) (bool, error) {
	switch input {
	case "Y", "y":
		return true, nil
	case "N", "n":
		return false, nil
	default:
		return false, ErrNotYesNo
	}
}

// Prompter reads answers line by line. Every method returns io.EOF once the
// input is exhausted.
type Prompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewPrompter creates a prompter reading from r and writing prompts to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{r: bufio.NewReader(r), w: w}
}

// ReadLine returns the next line without its line ending. A final line
// with no newline is still returned.
func (p *Prompter) ReadLine() (string, error) {
	line, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return trimEOL(line), nil
		}
		return "", err
	}
	return trimEOL(line), nil
}

// Line writes message and reads one raw line.
func (p *Prompter) Line(message string) (string, error) {
	fmt.Fprint(p.w, message)
	return p.ReadLine()
}

// Text writes message and reads the next non-blank line with its leading
// whitespace removed.
func (p *Prompter) Text(message string) (string, error) {
	fmt.Fprint(p.w, message)
	for {
		line, err := p.ReadLine()
		if err != nil {
			return "", err
		}
		if s := strings.TrimLeft(line, leadingSpace); s != "" {
			return s, nil
		}
	}
}

// Number writes message once and reads lines until one parses as an
// integer in [min, max].
func (p *Prompter) Number(message string, min, max int) (int, error) {
	fmt.Fprint(p.w, message)
	for {
		line, err := p.ReadLine()
		if err != nil {
			return 0, err
		}

		n, err := ParseInt(line, min, max)
		switch {
		case err == nil:
			return n, nil
		case errors.Is(err, ErrOutOfRange):
			fmt.Fprintf(p.w, "Please enter a number between %d and %d: ", min, max)
		default:
			fmt.Fprint(p.w, "Invalid input. Please enter a number: ")
		}
	}
}

// YesNo writes message and reads until the answer is Y, y, N or n.
func (p *Prompter) YesNo(message string) (bool, error) {
	for {
		fmt.Fprint(p.w, message)
		line, err := p.ReadLine()
		if err != nil {
			return false, err
		}

		yes, err := ParseYesNo(line)
		if err == nil {
			return yes, nil
		}
		fmt.Fprint(p.w, "Invalid input. Please enter Y or N.\n")
	}
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
