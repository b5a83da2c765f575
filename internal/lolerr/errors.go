// Package lolerr implements the three structured error kinds LOLCODE
// programs can raise (spec §7): syntax, name, and value errors. Every error
// is fatal to the running program and carries enough context to print a
// source-line-and-caret diagnostic, the way the teacher's
// internal/errors.CompilerError and internal/interp/errors.InterpreterError
// do (CWBudde/go-dws) — collapsed here to the single closed three-kind set
// this spec calls for, instead of the teacher's five open-ended categories.
package lolerr

import (
	"fmt"
	"strings"

	"github.com/lolcode-go/lolcode/internal/token"
)

// Kind is the closed set of LOLCODE error categories.
type Kind string

const (
	// Syntax is raised when the token stream does not match the grammar
	// at the current cursor.
	Syntax Kind = "Syntax"
	// Name is raised on reference to, or assignment to, an undeclared
	// identifier, or a call to an undefined function.
	Name Kind = "Name"
	// Value is raised on function-call argument arity mismatch.
	Value Kind = "Value"
)

// Error is the single structured error type surfaced to the host (spec
// §6): a kind tag, a position, and a message, with no stack trace.
type Error struct {
	Kind    Kind
	Pos     token.Position
	Message string
	source  string
	file    string
}

// New constructs an Error. source and file are optional and only affect
// Format's source-context rendering; they do not change Error() or Kind.
func New(kind Kind, pos token.Position, message string) *Error {
	return &Error{Kind: kind, Pos: pos, Message: message}
}

// WithSource attaches the original program text and a display filename so
// Format can render a source line and caret under the error location.
func (e *Error) WithSource(source, file string) *Error {
	e.source = source
	e.file = file
	return e
}

// Error implements the error interface with a single-line summary.
func (e *Error) Error() string {
	return fmt.Sprintf("%s error at %s: %s", e.Kind, e.Pos, e.Message)
}

// Format renders the error with a source line and caret indicator, in the
// style of the teacher's CompilerError.Format(color bool).
func (e *Error) Format(color bool) string {
	var sb strings.Builder

	if e.file != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.file, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	fmt.Fprintf(&sb, "%s error: %s", e.Kind, e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *Error) sourceLine(lineNum int) string {
	if e.source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(e.source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// Syntaxf builds a Syntax error with a formatted message.
func Syntaxf(pos token.Position, format string, args ...any) *Error {
	return New(Syntax, pos, fmt.Sprintf(format, args...))
}

// Namef builds a Name error with a formatted message.
func Namef(pos token.Position, format string, args ...any) *Error {
	return New(Name, pos, fmt.Sprintf(format, args...))
}

// Valuef builds a Value error with a formatted message.
func Valuef(pos token.Position, format string, args ...any) *Error {
	return New(Value, pos, fmt.Sprintf(format, args...))
}
