// Package prompt runs the interactive mood prompt on a terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/justestif/go-spotify-mood-recommender/internal/pipeline"
)

const (
	promptText   = "Describe your current mood in a sentence (or type 'quit' to exit): "
	quitCommand  = "quit"
	goodbyeText  = "Goodbye!"
	thankYouText = "Thank you for using the mood-based song recommendation!"
	retryText    = "No song recommendation found. Try a different input."
)

// ErrTurnsExhausted is returned when MaxTurns prompts pass without a recommendation.
var ErrTurnsExhausted = errors.New("no recommendation within the allowed number of turns")

// Runner runs the pipeline for one mood description.
type Runner interface {
	Run(ctx context.Context, text string) pipeline.Outcome
}

// Loop prompts for moods until a recommendation is found or the user quits.
type Loop struct {
	In       io.Reader
	Out      io.Writer
	Pipeline Runner
	MaxTurns int // 0 means unlimited
}

// Run executes the loop. It returns the successful outcome, or nil when the
// user quit, input ended or ctx was cancelled.
func (l *Loop) Run(ctx context.Context) (*pipeline.Outcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines, readErr := l.readLines(ctx)

	for turn := 0; l.MaxTurns <= 0 || turn < l.MaxTurns; turn++ {
		if ctx.Err() != nil {
			l.goodbye(true)
			return nil, nil
		}

		fmt.Fprint(l.Out, promptText)

		var text string
		select {
		case <-ctx.Done():
			l.goodbye(true)
			return nil, nil
		case line, ok := <-lines:
			if !ok {
				if ctx.Err() == nil {
					if err := <-readErr; err != nil {
						return nil, fmt.Errorf("reading input: %w", err)
					}
				}
				l.goodbye(true)
				return nil, nil
			}
			text = strings.TrimSpace(line)
		}

		if strings.EqualFold(text, quitCommand) {
			l.goodbye(false)
			return nil, nil
		}

		out := l.Pipeline.Run(ctx, text)
		if ctx.Err() != nil {
			l.goodbye(true)
			return nil, nil
		}
		if out.OK() {
			fmt.Fprintln(l.Out, out.Message())
			fmt.Fprintln(l.Out, thankYouText)
			return &out, nil
		}

		fmt.Fprintln(l.Out, out.Message())
		fmt.Fprintln(l.Out, retryText)
	}

	return nil, ErrTurnsExhausted
}

// readLines scans l.In on its own goroutine so a blocked read never holds up
// cancellation. The error channel receives the scanner error once input ends;
// nothing is sent when the goroutine stops because ctx was cancelled.
func (l *Loop) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(l.In)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()

	return lines, errc
}

func (l *Loop) goodbye(newline bool) {
	if newline {
		fmt.Fprintln(l.Out)
	}
	fmt.Fprintln(l.Out, goodbyeText)
}
