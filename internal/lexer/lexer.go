// Package lexer converts LOLCODE source text into a token stream.
//
// Scanning is line-oriented (spec §4.1): blank lines and BTW/OBTW..TLDR
// comments are dropped before any intra-line scanning happens, then each
// remaining line is scanned left to right, trying the longest-first
// multi-word keyword candidates before falling back to single-word
// classification. The overall shape — a pure function from source text to
// a token slice plus an accumulated error slice — mirrors the teacher's
// Lexer (CWBudde/go-dws internal/lexer/lexer.go), adapted from a rune-at-a-
// time free-form scanner to a line-batched one, since LOLCODE's grammar is
// line-sensitive in a way Pascal-family source is not.
package lexer

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/lolcode-go/lolcode/internal/token"
)

// Error is a single lexical error: an unterminated string literal, for
// example. It does not halt scanning; the caller decides whether to treat
// it as fatal (the CLI's run and symbols commands do, per spec §7; Interp
// only receives the token stream and never sees lexical errors).
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex error at %s: %s", e.Pos, e.Message)
}

// candidate pairs a multi-word keyword's surface spelling with its Kind.
type candidate struct {
	words string
	kind  token.Kind
}

// multiWord is the fixed candidate set from spec §4.1 rule 3, ordered so
// that no candidate is a prefix of another it should not shadow.
var multiWord = []candidate{
	{"I HAS A", token.IHASA},
	{"SUM OF", token.SUMOF},
	{"DIFF OF", token.DIFFOF},
	{"PRODUKT OF", token.PRODUKTOF},
	{"QUOSHUNT OF", token.QUOSHUNTOF},
	{"MOD OF", token.MODOF},
	{"BIGGR OF", token.BIGGROF},
	{"SMALLR OF", token.SMALLROF},
	{"BOTH OF", token.BOTHOF},
	{"EITHER OF", token.EITHEROF},
	{"WON OF", token.WONOF},
	{"ANY OF", token.ANYOF},
	{"ALL OF", token.ALLOF},
	{"BOTH SAEM", token.BOTHSAEM},
	{"IS NOW A", token.ISNOWA},
	{"O RLY?", token.ORLY},
	{"YA RLY", token.YARLY},
	{"NO WAI", token.NOWAI},
	{"WTF?", token.WTF},
	{"IM IN YR", token.IMINYR},
	{"IM OUTTA YR", token.IMOUTTAYR},
	{"HOW IZ I", token.HOWIZI},
	{"IF U SAY SO", token.IFUSAYSO},
	{"FOUND YR", token.FOUNDYR},
	{"I IZ", token.IIZ},
}

var singleWord = map[string]token.Kind{
	"HAI": token.HAI, "KTHXBYE": token.KTHXBYE,
	"WAZZUP": token.WAZZUP, "BUHBYE": token.BUHBYE,
	"ITZ": token.ITZ, "R": token.R, "MAEK": token.MAEK, "A": token.A,
	"NOT": token.NOT, "SMOOSH": token.SMOOSH,
	"VISIBLE": token.VISIBLE, "GIMMEH": token.GIMMEH,
	"MEBBE": token.MEBBE, "OIC": token.OIC,
	"OMG": token.OMG, "OMGWTF": token.OMGWTF,
	"UPPIN": token.UPPIN, "NERFIN": token.NERFIN, "YR": token.YR,
	"TIL": token.TIL, "WILE": token.WILE,
	"MKAY": token.MKAY, "GTFO": token.GTFO, "AN": token.AN,
	"DIFFRINT": token.DIFFRINT, "NOOB": token.NOOB,
	// Cast target-type names (IS NOW A / MAEK ... A <type>). These words
	// never arise from literal-value parsing: NUMBR/NUMBAR literals are
	// classified by their numeric surface text, YARN by quoting, and TROOF
	// by WIN/FAIL, so mapping the bare type-name words here is unambiguous.
	"NUMBR": token.NUMBR, "NUMBAR": token.NUMBAR, "YARN": token.YARN, "TROOF": token.TROOF,
}

const terminators = ",;)(."

// Tokenize scans source into a token stream plus any lexical errors
// encountered. The returned stream is always terminated by an EOF token.
func Tokenize(source string) ([]token.Token, []error) {
	var toks []token.Token
	var errs []error

	lines := strings.Split(source, "\n")
	inBlockComment := false

	for lineNo, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		lineNum := lineNo + 1
		upper := strings.ToUpper(trimmed)

		if inBlockComment {
			if strings.HasPrefix(upper, "TLDR") {
				inBlockComment = false
			}
			continue
		}
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(upper, "OBTW") {
			inBlockComment = true
			continue
		}
		if strings.HasPrefix(upper, "BTW") {
			continue
		}

		lineToks, lineErrs := scanLine(line, lineNum)
		toks = append(toks, lineToks...)
		errs = append(errs, lineErrs...)
	}

	toks = append(toks, token.Token{Kind: token.EOF, Pos: token.Position{Line: len(lines) + 1, Column: 1}})
	return toks, errs
}

// scanLine performs the intra-line scanning described by spec §4.1.
func scanLine(line string, lineNum int) ([]token.Token, []error) {
	var toks []token.Token
	var errs []error

	i := 0
	col := 1

	for i < len(line) {
		if line[i] == ' ' || line[i] == '\t' {
			i++
			col++
			continue
		}

		if line[i] == '"' {
			j := i + 1
			for j < len(line) && line[j] != '"' {
				j++
			}
			if j >= len(line) {
				errs = append(errs, &Error{
					Pos:     token.Position{Line: lineNum, Column: col},
					Message: "unterminated string literal",
				})
				word, consumed := splitWord(line[i:])
				toks = append(toks, classifyWord(word, lineNum, col))
				i += consumed
				col += len(word)
				continue
			}
			lexeme := line[i : j+1]
			toks = append(toks, token.Token{
				Kind:   token.YARN,
				Lexeme: normalizeYarn(lexeme),
				Pos:    token.Position{Line: lineNum, Column: col},
			})
			col += len(lexeme)
			i = j + 1
			continue
		}

		if line[i] == '!' {
			toks = append(toks, token.Token{Kind: token.BANG, Lexeme: "!", Pos: token.Position{Line: lineNum, Column: col}})
			i++
			col++
			continue
		}

		if kw, ok := matchMultiWord(line[i:]); ok {
			toks = append(toks, token.Token{Kind: kw.kind, Lexeme: kw.words, Pos: token.Position{Line: lineNum, Column: col}})
			i += len(kw.words)
			col += len(kw.words)
			continue
		}

		word, consumed := splitWord(line[i:])
		toks = append(toks, classifyWord(word, lineNum, col))
		i += consumed
		col += len(word)
	}

	return toks, errs
}

// splitWord consumes up to the next whitespace, returning the word and how
// many bytes of s were consumed (word length, or the whole remainder if no
// whitespace follows).
func splitWord(s string) (word string, consumed int) {
	idx := strings.IndexAny(s, " \t")
	if idx < 0 {
		return s, len(s)
	}
	return s[:idx], idx
}

// matchMultiWord tries every candidate against the head of s (spec §4.1
// rule 3): case-insensitive equality followed by end-of-line, whitespace,
// or a terminator character.
func matchMultiWord(s string) (candidate, bool) {
	upper := strings.ToUpper(s)
	for _, c := range multiWord {
		if !strings.HasPrefix(upper, c.words) {
			continue
		}
		n := len(c.words)
		if n == len(s) {
			return c, true
		}
		next := s[n]
		if next == ' ' || next == '\t' || strings.IndexByte(terminators, next) >= 0 {
			return c, true
		}
	}
	return candidate{}, false
}

// classifyWord applies spec §4.1 rule 4's classification order to a single
// whitespace-delimited word.
func classifyWord(word string, line, col int) token.Token {
	pos := token.Position{Line: line, Column: col}
	upper := strings.ToUpper(word)

	if kind, ok := singleWord[upper]; ok {
		return token.Token{Kind: kind, Lexeme: upper, Pos: pos}
	}
	if isSignedInt(word) {
		return token.Token{Kind: token.NUMBR, Lexeme: word, Pos: pos}
	}
	if isSignedFloat(word) {
		return token.Token{Kind: token.NUMBAR, Lexeme: word, Pos: pos}
	}
	if upper == "WIN" || upper == "FAIL" {
		return token.Token{Kind: token.TROOF, Lexeme: upper, Pos: pos}
	}
	return token.Token{Kind: token.IDENT, Lexeme: word, Pos: pos}
}

func isSignedInt(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isSignedFloat(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
	}
	if strings.Count(s, ".") != 1 {
		return false
	}
	if s == "" || s[0] == '.' || s[len(s)-1] == '.' {
		return false
	}
	for _, r := range s {
		if r == '.' {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// normalizeYarn applies Unicode NFC normalization to string-literal content
// so BOTH SAEM's strict content equality (spec §4.3) is not fooled by
// visually identical but differently-composed input, mirroring the
// teacher's use of golang.org/x/text/unicode/norm ahead of string
// comparisons (internal/interp/string_helpers.go in CWBudde/go-dws).
func normalizeYarn(lexeme string) string {
	return norm.NFC.String(lexeme)
}
