// Package prompt implements the sequential ask/validate/retry protocol
// used by the interactive flow.
//
// An Asker reads answers from any io.Reader and writes questions to any
// io.Writer, so the flow can be driven by a terminal in production and
// by canned answer sequences in tests. A question carries a validator
// predicate; invalid input prints the validator's message and asks
// again, it never aborts the run.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ErrAborted is returned when input ends before a question is
// answered (e.g. the user closed stdin). Callers treat it as a clean
// cancellation of the flow.
var ErrAborted = errors.New("input aborted")

// Validator checks a trimmed answer and returns an error describing
// what to fix when the answer is not acceptable.
type Validator func(string) error

// Asker asks questions and collects validated answers.
type Asker struct {
	in  *bufio.Scanner
	out io.Writer
}

// New returns an Asker reading answers from r and printing to w.
func New(r io.Reader, w io.Writer) *Asker {
	return &Asker{
		in:  bufio.NewScanner(r),
		out: w,
	}
}

// Printf writes flow output (headings, summaries) to the prompt writer.
func (a *Asker) Printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *Asker) readLine() (string, error) {
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", err
		}
		return "", ErrAborted
	}
	return strings.TrimSpace(a.in.Text()), nil
}

// Ask poses the question until the validator accepts the answer. A nil
// validator accepts anything, including an empty answer.
func (a *Asker) Ask(question string, validate Validator) (string, error) {
	for {
		fmt.Fprint(a.out, question)
		answer, err := a.readLine()
		if err != nil {
			return "", err
		}
		if validate == nil {
			return answer, nil
		}
		if err := validate(answer); err != nil {
			fmt.Fprintf(a.out, "  %v\n", err)
			continue
		}
		return answer, nil
	}
}

// AskYesNo poses a yes/no question; an empty answer takes the default.
func (a *Asker) AskYesNo(question string, def bool) (bool, error) {
	fmt.Fprint(a.out, question)
	answer, err := a.readLine()
	if err != nil {
		return false, err
	}
	if answer == "" {
		return def, nil
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// NotEmpty returns a validator rejecting blank answers with msg.
func NotEmpty(msg string) Validator {
	return func(s string) error {
		if s == "" {
			return errors.New(msg)
		}
		return nil
	}
}

// Matches returns a validator requiring the answer to match re.
func Matches(re *regexp.Regexp, msg string) Validator {
	return func(s string) error {
		if !re.MatchString(s) {
			return errors.New(msg)
		}
		return nil
	}
}
