// Package diag builds the JSON diagnostic payloads behind `lolcode lex
// --json` and `lolcode symbols --json`: token and symbol-table dumps
// assembled with tidwall/sjson (so callers never hand-roll JSON string
// concatenation) and queryable with tidwall/gjson, pretty-printed with
// tidwall/pretty. These three are promoted here from transitive
// (go-snaps) dependencies to direct ones, enriching the CLI's
// observability surface the way the teacher's --show-type/--show-pos
// lex flags do, but as structured data instead of aligned text columns.
package diag

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/lolcode-go/lolcode/internal/token"
	"github.com/lolcode-go/lolcode/internal/value"
)

// TokensJSON renders a token stream as a JSON array of
// {kind, lexeme, line, column} objects.
func TokensJSON(toks []token.Token) ([]byte, error) {
	doc := "[]"
	var err error
	for i, t := range toks {
		prefix := fmt.Sprintf("%d", i)
		doc, err = sjson.Set(doc, prefix+".kind", t.Kind.String())
		if err != nil {
			return nil, err
		}
		doc, err = sjson.Set(doc, prefix+".lexeme", t.Lexeme)
		if err != nil {
			return nil, err
		}
		doc, err = sjson.Set(doc, prefix+".line", t.Pos.Line)
		if err != nil {
			return nil, err
		}
		doc, err = sjson.Set(doc, prefix+".column", t.Pos.Column)
		if err != nil {
			return nil, err
		}
	}
	return pretty.Pretty([]byte(doc)), nil
}

// SymbolDump is a single entry in a symbol-table snapshot.
type SymbolDump struct {
	Name  string
	Kind  value.Kind
	Value string
}

// SymbolsJSON renders a set of symbol bindings as a JSON object keyed by
// name, each holding its runtime kind and string value.
func SymbolsJSON(symbols []SymbolDump) ([]byte, error) {
	doc := "{}"
	var err error
	for _, s := range symbols {
		doc, err = sjson.Set(doc, s.Name+".kind", string(s.Kind))
		if err != nil {
			return nil, err
		}
		doc, err = sjson.Set(doc, s.Name+".value", s.Value)
		if err != nil {
			return nil, err
		}
	}
	return pretty.Pretty([]byte(doc)), nil
}

// Query runs a gjson path expression against a previously rendered JSON
// document, for `lolcode symbols --json --query`.
func Query(jsonDoc []byte, path string) (string, error) {
	result := gjson.GetBytes(jsonDoc, path)
	if !result.Exists() {
		return "", fmt.Errorf("no match for query %q", path)
	}
	return result.String(), nil
}
