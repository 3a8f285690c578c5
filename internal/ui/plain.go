package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/nibzard/daycal/internal/render"
	"github.com/nibzard/daycal/internal/session"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\x1b[H\x1b[2J"

// PlainOptions configures the line-mode front end.
type PlainOptions struct {
	// ClearScreen clears the terminal before every screen.
	ClearScreen bool
}

// maxLineLength bounds a single line of input.
const maxLineLength = 1 << 20

// RunPlain drives the session one line at a time: it writes the current
// screen and prompt to out, reads a line from in and hands it to the
// session. The end of input is treated like q. A read error, including a
// line longer than maxLineLength, is returned.
//
// Reading happens on a separate goroutine. When RunPlain returns before the
// end of input, that goroutine stays blocked in Read until in delivers
// another line or is closed.
func RunPlain(ctx context.Context, s *session.CalendarSession, r *render.Renderer, in io.Reader, out io.Writer, opts PlainOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, readErr := readLines(ctx, in)

	for {
		screen, err := s.Screen()
		if err != nil {
			return err
		}
		if screen == nil {
			return nil
		}

		if opts.ClearScreen {
			io.WriteString(out, clearScreen)
		}
		if _, err := fmt.Fprint(out, r.Render(screen), "\n", render.Prompt(screen)); err != nil {
			return err
		}

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				fmt.Fprintln(out)
				return nil
			}
			line = l
		}

		if err := s.Handle(line); err != nil {
			return err
		}
	}
}

// readLines feeds the lines of in to the returned channel, which is closed
// at the end of input or when ctx is done. The error channel receives
// exactly one value before the line channel closes.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	ch := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
		for scanner.Scan() {
			select {
			case ch <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()
	return ch, errc
}
