// Package console runs the interactive slot machine session on a terminal
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// Prompter writes prompts and reads answers one line at a time
type Prompter struct {
	out   io.Writer
	lines chan string
	err   error // scanner error, set before lines is closed
}

// NewPrompter starts reading lines from in. Reads happen on a separate
// goroutine so that a pending prompt can be abandoned when the context ends.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		out:   out,
		lines: make(chan string),
	}
	go p.readPump(in)
	return p
}

func (p *Prompter) readPump(in io.Reader) {
	defer close(p.lines)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		p.lines <- scanner.Text()
	}
	p.err = scanner.Err()
}

// Ask prints prompt without a newline and waits for the next line of input.
// It returns io.EOF once input is exhausted.
func (p *Prompter) Ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			if p.err != nil {
				return "", p.err
			}
			return "", io.EOF
		}
		return line, nil
	}
}

// Println writes a line of output
func (p *Prompter) Println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

// Printf writes formatted output
func (p *Prompter) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format, a...)
}
