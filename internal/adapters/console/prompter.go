// Package console contains the terminal implementation of the operator
// prompter used at suspension points.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/applypilot/internal/models"
	"github.com/example/applypilot/internal/ports/secondary"
)

// Prompter implements secondary.OperatorPrompter over an input/output pair,
// normally stdin/stdout. Prompts block until the operator responds; the
// only way out is context cancellation.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

var _ secondary.OperatorPrompter = (*Prompter)(nil)

// AskQuestion presents an unresolved screening question and blocks for an
// answer.
func (p *Prompter) AskQuestion(ctx context.Context, q models.Question) (string, error) {
	color.New(color.FgYellow).Fprintln(p.out, "⏸  Unresolved screening question:")
	fmt.Fprintf(p.out, "   %s\n", q.Text)
	if len(q.Options) > 0 {
		fmt.Fprintf(p.out, "   Options: %s\n", strings.Join(q.Options, " / "))
	}
	fmt.Fprint(p.out, "Answer: ")

	return p.readLine(ctx)
}

// ConfirmSubmit presents the final-confirmation prompt before submission.
func (p *Prompter) ConfirmSubmit(ctx context.Context, listing models.Listing) (bool, error) {
	color.New(color.FgYellow).Fprintln(p.out, "⏸  Review pending:")
	fmt.Fprintf(p.out, "   %s at %s (%s)\n", listing.Title, listing.Company, listing.ID)
	fmt.Fprint(p.out, "Submit application? [y/N]: ")

	line, err := p.readLine(ctx)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// readLine reads one line, honoring context cancellation while blocked. A
// cancelled prompt leaves its reader goroutine parked in ReadString until the
// process exits; the prompter only ever runs in the foreground of a CLI that
// is about to exit when its context is cancelled.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	type result struct {
		line string
		err  error
	}

	ch := make(chan result, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		ch <- result{strings.TrimSpace(line), err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.err != nil && r.line == "" {
			return "", fmt.Errorf("failed to read operator input: %w", r.err)
		}
		return r.line, nil
	}
}
