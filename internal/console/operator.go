// Package console runs a game session over line-oriented text I/O
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/KirkDiggler/cyber-pit/internal/errors"
	"github.com/KirkDiggler/cyber-pit/internal/orchestrators/fight"
)

// PromptMarker is printed after every prompt
const PromptMarker = "> "

// Operator reads answers line by line from an input stream and writes
// prompts and commentary to an output stream
type Operator struct {
	out   io.Writer
	lines chan string
	err   error
}

var _ fight.Operator = (*Operator)(nil)

// NewOperator starts reading in. The reader goroutine lives until in is
// exhausted.
func NewOperator(in io.Reader, out io.Writer) *Operator {
	o := &Operator{
		out:   out,
		lines: make(chan string),
	}
	go o.read(in)
	return o
}

func (o *Operator) read(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		o.lines <- scanner.Text()
	}
	o.err = scanner.Err()
	close(o.lines)
}

// Prompt shows text and waits for the next line.
// Returns errors.Canceled when input ends or ctx is done
func (o *Operator) Prompt(ctx context.Context, text string) (string, error) {
	fmt.Fprintf(o.out, "%s\n%s", text, PromptMarker)

	select {
	case <-ctx.Done():
		return "", errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "prompt abandoned")
	case line, ok := <-o.lines:
		if ok {
			return line, nil
		}
		if o.err != nil {
			return "", errors.Wrap(o.err, "failed to read input")
		}
		return "", errors.Canceled("input closed")
	}
}

// Say writes text on its own line
func (o *Operator) Say(text string) {
	fmt.Fprintln(o.out, text)
}
