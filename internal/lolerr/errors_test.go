package lolerr

import (
	"strings"
	"testing"

	"github.com/lolcode-go/lolcode/internal/token"
)

func TestErrorSummary(t *testing.T) {
	err := Namef(token.Position{Line: 3, Column: 5}, "undeclared identifier %q", "X")
	if got := err.Error(); got != `Name error at 3:5: undeclared identifier "X"` {
		t.Errorf("got %q", got)
	}
}

func TestFormatIncludesSourceLineAndCaret(t *testing.T) {
	err := Syntaxf(token.Position{Line: 2, Column: 3}, "unexpected token").
		WithSource("HAI\nBAD\nKTHXBYE", "prog.lol")
	out := err.Format(false)
	if !strings.Contains(out, "prog.lol:2:3") {
		t.Errorf("missing file:line:col header: %s", out)
	}
	if !strings.Contains(out, "BAD") {
		t.Errorf("missing source line: %s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("missing caret: %s", out)
	}
}
