package interp

import (
	"strings"
	"testing"

	"github.com/lolcode-go/lolcode/internal/lexer"
	"github.com/lolcode-go/lolcode/internal/value"
)

func run(t *testing.T, source string, answers []string) (string, *Interp) {
	t.Helper()
	toks, errs := lexer.Tokenize(source)
	if len(errs) > 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	var out strings.Builder
	host := Host{
		Output: NewWriterOutput(&out),
		Input:  NewScriptedInput(answers),
	}
	ip := New(toks, host, source, "test.lol")
	if err := ip.Run(); err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	return out.String(), ip
}

func TestHelloWorld(t *testing.T) {
	out, _ := run(t, `HAI 1.2
VISIBLE "HAI WORLD!"
KTHXBYE`, nil)
	if out != "HAI WORLD!\n" {
		t.Fatalf("got %q", out)
	}
}

func TestDeclarationAndVisible(t *testing.T) {
	out, _ := run(t, `HAI 1.2
I HAS A NAME ITZ "WORLD"
VISIBLE "HAI " AN NAME AN "!"
KTHXBYE`, nil)
	if out != "HAI WORLD!\n" {
		t.Fatalf("got %q", out)
	}
}

func TestVisibleBangSuppressesNewline(t *testing.T) {
	out, _ := run(t, `HAI 1.2
VISIBLE "NO NEWLINE"!
VISIBLE "NEXT"
KTHXBYE`, nil)
	if out != "NO NEWLINENEXT\n" {
		t.Fatalf("got %q", out)
	}
}

func TestBranchOnIT(t *testing.T) {
	out, _ := run(t, `HAI 1.2
I HAS A AGE ITZ 20
BOTH SAEM AGE AN 20
O RLY?
	YA RLY
		VISIBLE "ADULT"
	NO WAI
		VISIBLE "MINOR"
OIC
KTHXBYE`, nil)
	if out != "ADULT\n" {
		t.Fatalf("got %q", out)
	}
}

func TestCountUpLoop(t *testing.T) {
	out, _ := run(t, `HAI 1.2
I HAS A COUNTER ITZ 0
IM IN YR LOOP UPPIN YR COUNTER TIL BOTH SAEM COUNTER AN 3
	VISIBLE COUNTER
IM OUTTA YR LOOP
KTHXBYE`, nil)
	if out != "0\n1\n2\n" {
		t.Fatalf("got %q", out)
	}
}

func TestFunctionWithReturn(t *testing.T) {
	out, _ := run(t, `HAI 1.2
HOW IZ I DOUBLE YR N
	FOUND YR SUM OF N AN N
IF U SAY SO
I IZ DOUBLE YR 21 MKAY
VISIBLE IT
KTHXBYE`, nil)
	if out != "42\n" {
		t.Fatalf("got %q", out)
	}
}

func TestSwitchFallthroughThenBreak(t *testing.T) {
	out, _ := run(t, `HAI 1.2
I HAS A X ITZ 1
X
WTF?
	OMG 1
		VISIBLE "ONE"
	OMG 2
		VISIBLE "TWO"
		GTFO
	OMG 3
		VISIBLE "THREE"
	OMGWTF
		VISIBLE "OTHER"
OIC
KTHXBYE`, nil)
	if out != "ONE\nTWO\n" {
		t.Fatalf("got %q", out)
	}
}

func TestGimmehReadsScriptedInput(t *testing.T) {
	out, _ := run(t, `HAI 1.2
I HAS A NAME
GIMMEH NAME
VISIBLE "HAI " AN NAME
KTHXBYE`, []string{"BOB"})
	if out != "HAI BOB\n" {
		t.Fatalf("got %q", out)
	}
}

func TestQuoshuntOfIntegerTruncates(t *testing.T) {
	out, _ := run(t, `HAI 1.2
VISIBLE QUOSHUNT OF 7 AN 2
KTHXBYE`, nil)
	if out != "3\n" {
		t.Fatalf("got %q", out)
	}
}

func TestQuoshuntOfAlwaysTruncatesEvenForFloats(t *testing.T) {
	out, _ := run(t, `HAI 1.2
VISIBLE QUOSHUNT OF 7.5 AN 2
KTHXBYE`, nil)
	if out != "3\n" {
		t.Fatalf("got %q", out)
	}
}

func TestShortCircuitSkipsSideEffects(t *testing.T) {
	out, _ := run(t, `HAI 1.2
HOW IZ I NOISY
	VISIBLE "CALLED"
	FOUND YR WIN
IF U SAY SO
EITHER OF WIN AN I IZ NOISY MKAY
VISIBLE IT
KTHXBYE`, nil)
	if out != "WIN\n" {
		t.Fatalf("EITHER OF should short-circuit and skip the call, got %q", out)
	}
}

func TestSymbolObserverFiresOnDeclareAndAssign(t *testing.T) {
	source := `HAI 1.2
I HAS A X ITZ 1
X R 2
KTHXBYE`
	toks, errs := lexer.Tokenize(source)
	if len(errs) > 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	var seen []string
	host := Host{
		Output: NewWriterOutput(new(strings.Builder)),
		Input:  NewScriptedInput(nil),
		Observer: func(name string, v value.Value) {
			seen = append(seen, name+"="+v.String())
		},
	}
	ip := New(toks, host, source, "test.lol")
	if err := ip.Run(); err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	for _, want := range []string{"X=1", "X=2"} {
		found := false
		for _, s := range seen {
			if s == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected observer to report %q, saw %v", want, seen)
		}
	}
}

func TestUndeclaredVariableIsNameError(t *testing.T) {
	source := `HAI 1.2
VISIBLE UNKNOWN
KTHXBYE`
	toks, _ := lexer.Tokenize(source)
	host := Host{Output: NewWriterOutput(new(strings.Builder)), Input: NewScriptedInput(nil)}
	ip := New(toks, host, source, "test.lol")
	err := ip.Run()
	if err == nil {
		t.Fatal("expected a name error")
	}
	if !strings.Contains(err.Error(), "Name error") {
		t.Fatalf("expected a Name error, got %v", err)
	}
}
