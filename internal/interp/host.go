// Host ports: the three abstract collaborators spec §1/§6 describe the
// evaluator interacting with (output sink, input source, symbol observer)
// without prescribing a concrete shell. cmd/lolcode wires NewWriterOutput
// and NewReaderInput over stdout/stdin for interactive runs; tests wire
// ScriptedInput to replay recorded GIMMEH answers deterministically.
package interp

import (
	"bufio"
	"fmt"
	"io"
)

// Output is the write(text) -> void port (spec §6).
type Output interface {
	Write(text string)
}

// Input is the read(prompt) -> string port (spec §6). On dismissal
// (EOF, no more scripted answers) it returns the empty string.
type Input interface {
	Read(prompt string) string
}

// Host bundles the three ports an Interp needs.
type Host struct {
	Output   Output
	Input    Input
	Observer SymbolObserver
}

// writerOutput adapts an io.Writer to Output, never failing from the
// core's perspective (spec §6) — a write error is swallowed, matching the
// teacher CLI's own fire-and-forget fmt.Fprintf(os.Stdout, ...) calls.
type writerOutput struct{ w io.Writer }

// NewWriterOutput builds an Output that writes to w.
func NewWriterOutput(w io.Writer) Output {
	return writerOutput{w: w}
}

func (o writerOutput) Write(text string) {
	fmt.Fprint(o.w, text)
}

// readerInput adapts a buffered reader to Input, prompting on prompt's
// writer before reading one line from r.
type readerInput struct {
	r      *bufio.Reader
	prompt Output
}

// NewReaderInput builds an Input that prompts on out and reads lines from in.
func NewReaderInput(in io.Reader, out io.Writer) Input {
	return readerInput{r: bufio.NewReader(in), prompt: NewWriterOutput(out)}
}

func (r readerInput) Read(prompt string) string {
	r.prompt.Write(prompt + " ")
	line, err := r.r.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}

// ScriptedInput replays pre-recorded answers in order, ignoring the GIMMEH
// prompt text, for deterministic, non-interactive runs of programs that
// read input. cmd/lolcode loads the answers from a plain-text file, one
// answer per line (config.GimmehSource).
type ScriptedInput struct {
	order []string
	next  int
}

// NewScriptedInput builds a ScriptedInput that answers GIMMEH calls from
// answers, in order, regardless of prompt text — matching spec §5's
// guarantee that input is requested exactly once per GIMMEH in statement
// order.
func NewScriptedInput(answers []string) *ScriptedInput {
	return &ScriptedInput{order: answers}
}

func (s *ScriptedInput) Read(prompt string) string {
	if s.next >= len(s.order) {
		return ""
	}
	v := s.order[s.next]
	s.next++
	return v
}
