package interp

import "github.com/lolcode-go/lolcode/internal/value"

// SignalKind is the non-local exit a statement's execution can produce
// (spec §9: "model as an explicit result variant returned from the
// statement executor"), used in place of exceptions so loop and function
// frames consume it by ordinary control flow.
type SignalKind int

const (
	// Normal means the statement completed; execution continues with the
	// next statement.
	Normal SignalKind = iota
	// Break unwinds to the innermost enclosing loop or switch (GTFO).
	Break
	// Return unwinds to the enclosing function invocation, carrying a
	// value (FOUND YR).
	Return
)

// StepResult is what every statement-executing method returns: which
// signal fired, and the carried value for Return.
type StepResult struct {
	Kind  SignalKind
	Value value.Value
}

// normalResult is the StepResult returned by statements that do not unwind.
var normalResult = StepResult{Kind: Normal}
