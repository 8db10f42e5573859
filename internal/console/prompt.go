package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/mrsobakin/seabattle/internal/game"
)

var (
	ErrPromptClosed = errors.New("prompt is closed")

	errNotNumbers = errors.New("enter numbers")
)

type line struct {
	text string
	err  error
}

// Reads human moves line by line. Malformed input is reported back
// to the user and asked again, so only well-formed moves leave.
//
// Implements game.MoveSource.
type Prompt struct {
	out   io.Writer
	lines <-chan line

	done      chan struct{}
	closeOnce sync.Once
}

// The reader goroutine lives until the input ends or Close is called.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	lines := make(chan line)
	done := make(chan struct{})

	send := func(l line) bool {
		select {
		case lines <- l:
			return true
		case <-done:
			return false
		}
	}

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if !send(line{text: scanner.Text()}) {
				return
			}
		}

		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		send(line{err: err})
	}()

	return &Prompt{
		out:   out,
		lines: lines,
		done:  done,
	}
}

// Releases the reader goroutine. A goroutine blocked reading the
// input exits as soon as the read returns.
func (p *Prompt) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
}

func (p *Prompt) next(ctx context.Context) (string, error) {
	select {
	case <-p.done:
		return "", ErrPromptClosed
	default:
	}

	select {
	case <-ctx.Done():
		return "", context.Cause(ctx)
	case <-p.done:
		return "", ErrPromptClosed
	case l, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

func (p *Prompt) ReadMove(ctx context.Context) (int, int, error) {
	for {
		fmt.Fprint(p.out, "Your move (column row): ")

		text, err := p.next(ctx)
		if err != nil {
			return 0, 0, err
		}

		col, row, err := ParseMove(text)
		if errors.Is(err, game.ErrForfeit) {
			return 0, 0, err
		}
		if err != nil {
			fmt.Fprintln(p.out, err)
			continue
		}

		return col, row, nil
	}
}

// Parses `<col> <row>`. Returns game.ErrForfeit on "q" or "quit".
func ParseMove(text string) (int, int, error) {
	fields := strings.Fields(text)

	if len(fields) == 1 && (fields[0] == "q" || fields[0] == "quit") {
		return 0, 0, game.ErrForfeit
	}

	if len(fields) != 2 {
		return 0, 0, errors.New("enter two coordinates")
	}

	col, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, errNotNumbers
	}

	row, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, errNotNumbers
	}

	return col, row, nil
}
