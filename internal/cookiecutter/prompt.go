package cookiecutter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// Prompter asks the user for the values of a context's user variables.
// With noInput set it must return ctx unchanged without reading input.
type Prompter interface {
	Prompt(ctx *Context, noInput bool) (*Context, error)
}

// PassThrough is a Prompter that never asks anything.
type PassThrough struct{}

func (PassThrough) Prompt(ctx *Context, _ bool) (*Context, error) {
	return ctx, nil
}

// LinePrompter prompts line by line on a text stream, in declaration
// order. Engine variables and mappings are kept as declared. An empty
// answer, or end of input, accepts the default.
type LinePrompter struct {
	In  io.Reader
	Out io.Writer
}

// NewLinePrompter returns a LinePrompter on stdin and stdout.
func NewLinePrompter() *LinePrompter {
	return &LinePrompter{In: os.Stdin, Out: os.Stdout}
}

func (p *LinePrompter) Prompt(ctx *Context, noInput bool) (*Context, error) {
	if noInput {
		return ctx, nil
	}
	in := p.In
	if in == nil {
		in = os.Stdin
	}
	w := p.Out
	if w == nil {
		w = os.Stdout
	}
	s := &promptSession{
		r:   bufio.NewReader(in),
		w:   w,
		out: termenv.NewOutput(w),
	}

	answered := NewContext()
	for _, k := range ctx.Keys() {
		v, _ := ctx.Get(k)
		if IsEngineKey(k) {
			answered.Set(k, v)
			continue
		}
		got, err := s.ask(k, v)
		if err != nil {
			return nil, fmt.Errorf("prompting for %s: %w", k, err)
		}
		answered.Set(k, got)
	}
	return answered, nil
}

type promptSession struct {
	r   *bufio.Reader
	w   io.Writer
	out *termenv.Output
	eof bool
}

func (s *promptSession) ask(name string, def any) (any, error) {
	switch d := def.(type) {
	case []any:
		return s.choose(name, d)
	case map[string]any, *Context:
		return d, nil
	case bool:
		return s.yesNo(name, d)
	default:
		answer, err := s.line(fmt.Sprintf("%s [%v]: ", s.label(name), displayValue(def)))
		if err != nil || answer == "" {
			return def, err
		}
		return answer, nil
	}
}

func (s *promptSession) choose(name string, choices []any) (any, error) {
	if len(choices) == 0 {
		return choices, nil
	}
	fmt.Fprintf(s.w, "Select %s:\n", s.label(name))
	for i, c := range choices {
		fmt.Fprintf(s.w, "%d - %v\n", i+1, c)
	}
	for {
		answer, err := s.line(fmt.Sprintf("Choose from 1-%d [1]: ", len(choices)))
		if err != nil {
			return nil, err
		}
		if answer == "" {
			return choices[0], nil
		}
		n, convErr := strconv.Atoi(answer)
		if convErr == nil && n >= 1 && n <= len(choices) {
			return choices[n-1], nil
		}
		fmt.Fprintf(s.w, "%q is not a valid choice\n", answer)
	}
}

func (s *promptSession) yesNo(name string, def bool) (any, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		answer, err := s.line(fmt.Sprintf("%s [%s]: ", s.label(name), hint))
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes", "true", "1", "on":
			return true, nil
		case "n", "no", "false", "0", "off":
			return false, nil
		}
		fmt.Fprintf(s.w, "%q is not a yes/no answer\n", answer)
	}
}

// line prints prompt and reads one trimmed line. After end of input it
// returns "" so every remaining variable keeps its default.
func (s *promptSession) line(prompt string) (string, error) {
	if s.eof {
		return "", nil
	}
	fmt.Fprint(s.w, prompt)
	text, err := s.r.ReadString('\n')
	if errors.Is(err, io.EOF) {
		s.eof = true
		fmt.Fprintln(s.w)
		return strings.TrimSpace(text), nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (s *promptSession) label(name string) string {
	return s.out.String(name).Bold().String()
}

func displayValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
