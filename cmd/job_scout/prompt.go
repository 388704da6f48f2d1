package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jonathan/job-scout/internal/dialogue"
	"github.com/jonathan/job-scout/internal/types"
)

// promptAsker asks clarifying questions on a terminal. Options are numbered;
// an answer made only of option numbers ("2" or "1, 3") selects those options,
// anything else is taken verbatim.
type promptAsker struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptAsker(in *bufio.Reader, out io.Writer) *promptAsker {
	return &promptAsker{in: in, out: out}
}

// Ask implements dialogue.Asker.
//
//nolint:errcheck // writing prompts to the terminal
func (a *promptAsker) Ask(ctx context.Context, turn types.AskTurn) (string, error) {
	fmt.Fprintf(a.out, "\n[%s] %s\n", dialogue.FieldLabel(turn.Field), turn.Ask)
	for i, opt := range turn.Options {
		fmt.Fprintf(a.out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprint(a.out, "> ")

	line, err := readLine(ctx, a.in)
	if err != nil {
		return "", err
	}
	return resolveChoice(line, turn.Options), nil
}

// readLine reads one line. EOF ends the line without an error so that piped
// input with fewer answers than questions leaves the rest blank.
func readLine(ctx context.Context, in *bufio.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func resolveChoice(answer string, options []string) string {
	parts := dialogue.SplitAnswer(answer)
	if len(parts) == 0 || len(options) == 0 {
		return answer
	}

	picked := make([]string, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > len(options) {
			return answer
		}
		picked = append(picked, options[n-1])
	}
	return strings.Join(picked, ", ")
}

// profileText returns text when set, otherwise prompts for one line on in.
//
//nolint:errcheck // writing prompts to the terminal
func profileText(ctx context.Context, text string, in *bufio.Reader, out io.Writer) (string, error) {
	if strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text), nil
	}
	fmt.Fprint(out, "원하는 일자리를 자유롭게 설명해 주세요.\n> ")
	line, err := readLine(ctx, in)
	if err != nil {
		return "", err
	}
	if line == "" {
		return "", fmt.Errorf("profile text is required (use --text or type it at the prompt)")
	}
	return line, nil
}
