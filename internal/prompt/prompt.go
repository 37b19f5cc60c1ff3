// Package prompt reads line-based answers from an interactive terminal.
// Every helper re-asks until it gets a usable answer; the only error it returns is io.EOF
// (or a read error) once input runs out.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Prompter asks questions on out and reads answers from in, one line each.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// New returns a Prompter reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Out is the writer prompts and messages go to.
func (p *Prompter) Out() io.Writer {
	return p.out
}

// Printf writes a formatted message to the output.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a message followed by a newline.
func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Line prints prompt and returns the next input line without surrounding whitespace.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Raw is Line without trimming, for passwords where every character counts.
func (p *Prompter) Raw(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(p.in.Text(), "\r"), nil
}

// BoundedInt asks until the answer is an integer in [low, highExclusive).
func (p *Prompter) BoundedInt(prompt string, low, highExclusive int) (int, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			p.Println("Invalid input. Please enter a number")
			continue
		}
		if n < low || n >= highExclusive {
			p.Printf("Please enter a number between %d and %d.\n", low, highExclusive-1)
			continue
		}
		return n, nil
	}
}

// Float asks until the answer is a finite, non-negative number.
func (p *Prompter) Float(prompt string) (float64, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(line, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			p.Println("Invalid Input. Please Enter numeric values.")
			continue
		}
		if f < 0 {
			p.Println("Value cannot be negative.")
			continue
		}
		return f, nil
	}
}

// Confirm asks a y/n question. Only "y" (any case) counts as yes.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	line, err := p.Line(prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(line, "y"), nil
}
