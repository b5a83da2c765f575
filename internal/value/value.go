// Package value implements LOLCODE's dynamic value model: the five-arm
// tagged variant (NUMBR/NUMBAR/YARN/TROOF/NOOB), truthiness, coercions, and
// explicit casts (spec §4.3).
//
// The Value interface and its concrete arms are grounded on the teacher's
// tagged-value pattern (CWBudde/go-dws internal/interp/value.go:
// IntegerValue/FloatValue/StringValue/BooleanValue/NilValue, each a small
// struct implementing a Value interface with Type()/String()).
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind names a value's runtime tag for diagnostics and equality checks.
type Kind string

const (
	KindNumbr  Kind = "NUMBR"
	KindNumbar Kind = "NUMBAR"
	KindYarn   Kind = "YARN"
	KindTroof  Kind = "TROOF"
	KindNoob   Kind = "NOOB"
)

// Value is the common interface implemented by every LOLCODE runtime value.
type Value interface {
	Kind() Kind
	String() string
}

// Numbr is a LOLCODE integer value.
type Numbr struct{ V int64 }

func (Numbr) Kind() Kind          { return KindNumbr }
func (n Numbr) String() string    { return strconv.FormatInt(n.V, 10) }

// Numbar is a LOLCODE floating-point value.
type Numbar struct{ V float64 }

func (Numbar) Kind() Kind { return KindNumbar }
func (n Numbar) String() string {
	return strconv.FormatFloat(n.V, 'f', -1, 64)
}

// Yarn is a LOLCODE string value. It stores content only, never the
// surrounding quotes (spec §3).
type Yarn struct{ V string }

func (Yarn) Kind() Kind       { return KindYarn }
func (y Yarn) String() string { return y.V }

// Troof is a LOLCODE boolean value, rendered WIN/FAIL in user-facing output.
type Troof struct{ V bool }

func (Troof) Kind() Kind { return KindTroof }
func (t Troof) String() string {
	if t.V {
		return "WIN"
	}
	return "FAIL"
}

// Noob is the LOLCODE null value.
type Noob struct{}

func (Noob) Kind() Kind     { return KindNoob }
func (Noob) String() string { return "" }

// Truthy implements spec §4.3's truthiness projection.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Noob:
		return false
	case Troof:
		return x.V
	case Numbr:
		return x.V != 0
	case Numbar:
		return x.V != 0
	case Yarn:
		return x.V != ""
	default:
		return true
	}
}

// ToNumber implements spec §4.3's "to number" coercion, returning the
// float64 used by arithmetic. Callers that need a NUMBR or NUMBAR Value
// back use ToNumberValue instead.
func ToNumber(v Value) float64 {
	switch x := v.(type) {
	case Numbr:
		return float64(x.V)
	case Numbar:
		return x.V
	case Yarn:
		return parseNumericString(x.V)
	case Troof:
		if x.V {
			return 1
		}
		return 0
	case Noob:
		return 0
	default:
		return 0
	}
}

func parseNumericString(s string) float64 {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return 0
}

// IsIntegral reports whether v should be treated as NUMBR (vs NUMBAR) when
// participating in a left-fold arithmetic operator (spec §4.2.3: "integer
// if both operands integer, else floating-point").
func IsIntegral(v Value) bool {
	switch x := v.(type) {
	case Numbr:
		return true
	case Numbar:
		return false
	case Troof, Noob:
		return true
	case Yarn:
		return !strings.Contains(x.V, ".")
	default:
		return true
	}
}

// ToNumberValue coerces v to a numeric Value, choosing NUMBR or NUMBAR by
// the same integral/float rule arithmetic operators use.
func ToNumberValue(v Value) Value {
	if IsIntegral(v) {
		return Numbr{V: int64(ToNumber(v))}
	}
	return Numbar{V: ToNumber(v)}
}

// ToString implements spec §4.3's "to string" coercion.
func ToString(v Value) string {
	return v.String()
}

// Cast implements the explicit casts driven by IS NOW A / MAEK (spec §4.3).
// typeName is the lexeme of the target-type token: NUMBR, NUMBAR, YARN, or
// TROOF.
func Cast(v Value, typeName string) (Value, error) {
	switch typeName {
	case "NUMBR":
		return Numbr{V: int64(ToNumber(v))}, nil
	case "NUMBAR":
		return Numbar{V: ToNumber(v)}, nil
	case "YARN":
		return Yarn{V: ToString(v)}, nil
	case "TROOF":
		return Troof{V: Truthy(v)}, nil
	default:
		return nil, fmt.Errorf("unknown cast target type %q", typeName)
	}
}

// Equal implements BOTH SAEM / DIFFRINT's strict equality: identical tag
// and identical content, with no coercion across tags (spec §4.3).
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Numbr:
		return x.V == b.(Numbr).V
	case Numbar:
		return x.V == b.(Numbar).V
	case Yarn:
		return x.V == b.(Yarn).V
	case Troof:
		return x.V == b.(Troof).V
	case Noob:
		return true
	default:
		return false
	}
}
