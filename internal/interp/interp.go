// Package interp implements the LOLCODE parser/executor: a single pass
// over the token stream that both validates grammar and evaluates the
// program, resolving loop bodies and function bodies as token-index spans
// it saves and restores a cursor into, rather than building a conventional
// AST (spec §4.2). Non-local exits (break, return) are modeled as an
// explicit StepResult threaded back up through the statement executor
// (spec §9), mirroring the teacher's preference for explicit result/error
// values over panics (CWBudde/go-dws's InterpreterError is an ordinary
// error, never a panic).
package interp

import (
	"fmt"
	"strconv"

	"github.com/lolcode-go/lolcode/internal/lolerr"
	"github.com/lolcode-go/lolcode/internal/token"
	"github.com/lolcode-go/lolcode/internal/value"
)

// Interp holds the token stream, a cursor into it, the current
// environment, the registered function table, and the host ports.
type Interp struct {
	toks           []token.Token
	pos            int
	env            *Environment
	functions      map[string]*Function
	host           Host
	source         string
	file           string
	trace          func(format string, args ...any)
	defaultNewline bool
}

// New constructs an Interp over tokens, ready to Run a program.
func New(tokens []token.Token, host Host, source, file string) *Interp {
	return &Interp{
		toks:           tokens,
		env:            NewEnvironment(host.Observer),
		functions:      make(map[string]*Function),
		host:           host,
		source:         source,
		file:           file,
		defaultNewline: true,
	}
}

// SetTrace installs a callback invoked before every top-level statement
// when non-nil (lolcode run --trace).
func (ip *Interp) SetTrace(fn func(format string, args ...any)) {
	ip.trace = fn
}

// Symbols returns a snapshot of the top-level environment's bindings,
// used by `lolcode symbols` to report final variable state.
func (ip *Interp) Symbols() map[string]value.Value {
	return ip.env.All()
}

// SetDefaultNewline controls whether a bare VISIBLE (no trailing "!")
// appends a newline, per the config file's visibleNewline setting.
func (ip *Interp) SetDefaultNewline(on bool) {
	ip.defaultNewline = on
}

func (ip *Interp) cur() token.Token {
	if ip.pos >= len(ip.toks) {
		return token.Token{Kind: token.EOF}
	}
	return ip.toks[ip.pos]
}

func (ip *Interp) peek(n int) token.Token {
	idx := ip.pos + n
	if idx >= len(ip.toks) {
		return token.Token{Kind: token.EOF}
	}
	return ip.toks[idx]
}

func (ip *Interp) advance() token.Token {
	t := ip.cur()
	if ip.pos < len(ip.toks) {
		ip.pos++
	}
	return t
}

func (ip *Interp) syntaxErr(format string, args ...any) error {
	return lolerr.Syntaxf(ip.cur().Pos, format, args...).WithSource(ip.source, ip.file)
}

func (ip *Interp) expect(kind token.Kind) (token.Token, error) {
	t := ip.cur()
	if t.Kind != kind {
		return t, ip.syntaxErr("expected %s, got %s %q", kind, t.Kind, t.Lexeme)
	}
	return ip.advance(), nil
}

// Run executes a full program: HAI [version] [WAZZUP ... BUHBYE] { stmt } KTHXBYE.
func (ip *Interp) Run() error {
	if _, err := ip.expect(token.HAI); err != nil {
		return err
	}
	if ip.cur().Kind == token.NUMBR || ip.cur().Kind == token.NUMBAR {
		ip.advance() // version literal, discarded
	}

	if ip.cur().Kind == token.WAZZUP {
		ip.advance()
		for ip.cur().Kind == token.IHASA {
			if _, err := ip.execStatement(); err != nil {
				return err
			}
		}
		if _, err := ip.expect(token.BUHBYE); err != nil {
			return err
		}
	}

	for ip.cur().Kind != token.KTHXBYE {
		if ip.cur().Kind == token.EOF {
			return ip.syntaxErr("unexpected end of program: missing KTHXBYE")
		}
		if ip.trace != nil {
			ip.trace("%s", ip.cur())
		}
		if ip.cur().Kind == token.HOWIZI {
			if _, err := ip.execFunctionDef(); err != nil {
				return err
			}
			continue
		}
		res, err := ip.execStatement()
		if err != nil {
			return err
		}
		if res.Kind == Return {
			return ip.syntaxErr("FOUND YR used outside any function body")
		}
		if res.Kind == Break {
			// No enclosing loop/switch/function at program scope: treat
			// as ending the program's statement stream, same as reaching
			// KTHXBYE (spec §4.2.6 extends this fallback only inside a
			// function; at top level there is nothing left to unwind to).
			break
		}
	}

	// Skip to KTHXBYE if a top-level GTFO ended the statement loop early.
	for ip.cur().Kind != token.KTHXBYE && ip.cur().Kind != token.EOF {
		ip.advance()
	}
	_, err := ip.expect(token.KTHXBYE)
	return err
}

// execBlockUntil executes statements (and nested function definitions)
// until the cursor reaches endIdx, returning the first non-Normal signal
// encountered.
func (ip *Interp) execBlockUntil(endIdx int) (StepResult, error) {
	for ip.pos < endIdx {
		if ip.cur().Kind == token.HOWIZI {
			if _, err := ip.execFunctionDef(); err != nil {
				return normalResult, err
			}
			continue
		}
		res, err := ip.execStatement()
		if err != nil {
			return normalResult, err
		}
		if res.Kind != Normal {
			return res, nil
		}
	}
	return normalResult, nil
}

func (ip *Interp) execStatement() (StepResult, error) {
	t := ip.cur()
	switch t.Kind {
	case token.IHASA:
		return ip.execDecl()
	case token.VISIBLE:
		return ip.execVisible()
	case token.GIMMEH:
		return ip.execGimmeh()
	case token.ORLY:
		return ip.execBranch()
	case token.WTF:
		return ip.execSwitch()
	case token.IMINYR:
		return ip.execLoop()
	case token.HOWIZI:
		return ip.execFunctionDef()
	case token.GTFO:
		ip.advance()
		return StepResult{Kind: Break}, nil
	case token.FOUNDYR:
		ip.advance()
		v, err := ip.evalExpression()
		if err != nil {
			return normalResult, err
		}
		return StepResult{Kind: Return, Value: v}, nil
	case token.IIZ:
		v, err := ip.execFunctionCall()
		if err != nil {
			return normalResult, err
		}
		ip.env.Assign("IT", v)
		return normalResult, nil
	case token.IDENT:
		if ip.peek(1).Kind == token.R {
			return ip.execAssignment()
		}
		if ip.peek(1).Kind == token.ISNOWA {
			return ip.execCast()
		}
		return ip.execBareExpression()
	default:
		return ip.execBareExpression()
	}
}

func (ip *Interp) execBareExpression() (StepResult, error) {
	v, err := ip.evalExpression()
	if err != nil {
		return normalResult, err
	}
	ip.env.Assign("IT", v)
	return normalResult, nil
}

func (ip *Interp) execDecl() (StepResult, error) {
	ip.advance() // I HAS A
	nameTok, err := ip.expect(token.IDENT)
	if err != nil {
		return normalResult, err
	}
	var v value.Value = value.Noob{}
	if ip.cur().Kind == token.ITZ {
		ip.advance()
		v, err = ip.evalExpression()
		if err != nil {
			return normalResult, err
		}
	}
	ip.env.Declare(nameTok.Lexeme, v)
	return normalResult, nil
}

func (ip *Interp) execAssignment() (StepResult, error) {
	nameTok, _ := ip.expect(token.IDENT)
	if _, err := ip.expect(token.R); err != nil {
		return normalResult, err
	}
	v, err := ip.evalExpression()
	if err != nil {
		return normalResult, err
	}
	if !ip.env.Assign(nameTok.Lexeme, v) {
		return normalResult, lolerr.Namef(nameTok.Pos, "assignment to undeclared variable %q", nameTok.Lexeme).WithSource(ip.source, ip.file)
	}
	ip.env.Assign("IT", v)
	return normalResult, nil
}

func (ip *Interp) execCast() (StepResult, error) {
	nameTok, _ := ip.expect(token.IDENT)
	if _, err := ip.expect(token.ISNOWA); err != nil {
		return normalResult, err
	}
	typeTok := ip.advance()
	cur, ok := ip.env.Get(nameTok.Lexeme)
	if !ok {
		return normalResult, lolerr.Namef(nameTok.Pos, "cast of undeclared variable %q", nameTok.Lexeme).WithSource(ip.source, ip.file)
	}
	casted, err := value.Cast(cur, typeTok.Lexeme)
	if err != nil {
		return normalResult, lolerr.Syntaxf(typeTok.Pos, "%s", err).WithSource(ip.source, ip.file)
	}
	ip.env.Assign(nameTok.Lexeme, casted)
	return normalResult, nil
}

// visibleStops are the token kinds that begin another statement, at which
// VISIBLE must stop consuming expressions (spec §4.2.2).
var visibleStops = map[token.Kind]bool{
	token.IHASA: true, token.VISIBLE: true, token.GIMMEH: true,
	token.ORLY: true, token.YARLY: true, token.NOWAI: true, token.MEBBE: true, token.OIC: true,
	token.WTF: true, token.OMG: true, token.OMGWTF: true,
	token.IMINYR: true, token.IMOUTTAYR: true,
	token.HOWIZI: true, token.IFUSAYSO: true, token.FOUNDYR: true, token.GTFO: true,
	token.WAZZUP: true, token.BUHBYE: true, token.KTHXBYE: true, token.EOF: true,
}

// execVisible never assigns IT (see DESIGN.md's Open Questions entry on
// spec.md §8 scenario 2): neither the VISIBLE grammar row (§4.2.2) nor
// original_source/project/parser.py's parse_visible gives VISIBLE an IT
// side effect.
func (ip *Interp) execVisible() (StepResult, error) {
	ip.advance() // VISIBLE
	var out string
	newline := ip.defaultNewline

	for {
		t := ip.cur()
		if t.Kind == token.BANG {
			ip.advance()
			newline = false
			break
		}
		if visibleStops[t.Kind] {
			break
		}
		if t.Kind == token.IDENT && ip.peek(1).Kind == token.R {
			break
		}
		if t.Kind == token.AN {
			ip.advance()
			continue
		}
		v, err := ip.evalExpression()
		if err != nil {
			return normalResult, err
		}
		out += value.ToString(v)
	}

	if newline {
		out += "\n"
	}
	ip.host.Output.Write(out)
	return normalResult, nil
}

func (ip *Interp) execGimmeh() (StepResult, error) {
	ip.advance() // GIMMEH
	nameTok, err := ip.expect(token.IDENT)
	if err != nil {
		return normalResult, err
	}
	if !ip.env.Has(nameTok.Lexeme) {
		return normalResult, lolerr.Namef(nameTok.Pos, "input to undeclared variable %q", nameTok.Lexeme).WithSource(ip.source, ip.file)
	}
	answer := ip.host.Input.Read(fmt.Sprintf("Enter value for %s:", nameTok.Lexeme))
	ip.env.Assign(nameTok.Lexeme, value.Yarn{V: answer})
	return normalResult, nil
}

// execBranch implements O RLY? / YA RLY / NO WAI / OIC (spec §4.2.2). The
// condition is IT's current value at the moment O RLY? is seen; MEBBE
// clauses are never evaluated, only skipped (spec explicitly does not
// require else-if evaluation).
func (ip *Interp) execBranch() (StepResult, error) {
	ip.advance() // O RLY?
	itVal, _ := ip.env.Get("IT")
	condition := value.Truthy(itVal)

	if _, err := ip.expect(token.YARLY); err != nil {
		return normalResult, err
	}

	var res StepResult
	var err error
	if condition {
		res, err = ip.execBlockUntilStop(token.NOWAI, token.MEBBE, token.OIC)
		if err != nil {
			return normalResult, err
		}
		if serr := ip.skipToStop(token.OIC); serr != nil {
			return normalResult, serr
		}
	} else {
		if serr := ip.skipToStop(token.NOWAI, token.MEBBE, token.OIC); serr != nil {
			return normalResult, serr
		}
		switch ip.cur().Kind {
		case token.MEBBE:
			// No MEBBE evaluation required: skip everything up to OIC.
			if serr := ip.skipToStop(token.OIC); serr != nil {
				return normalResult, serr
			}
		case token.NOWAI:
			ip.advance()
			res, err = ip.execBlockUntilStop(token.OIC)
			if err != nil {
				return normalResult, err
			}
		}
	}

	if _, err := ip.expect(token.OIC); err != nil {
		return normalResult, err
	}
	return res, nil
}

// execSwitch implements WTF? / OMG / OMGWTF / OIC with fallthrough (spec
// §4.2.2): once a case matches, every subsequent case body also runs
// until a break or OIC. OMGWTF's default body runs only if no case
// matched by the time it is reached.
func (ip *Interp) execSwitch() (StepResult, error) {
	ip.advance() // WTF?
	switchVal, _ := ip.env.Get("IT")
	matched := false

	for ip.cur().Kind != token.OIC {
		if ip.cur().Kind == token.EOF {
			return normalResult, ip.syntaxErr("unterminated WTF? switch")
		}
		switch ip.cur().Kind {
		case token.OMG:
			ip.advance()
			caseVal, err := ip.evalExpression()
			if err != nil {
				return normalResult, err
			}
			if !matched && value.Equal(switchVal, caseVal) {
				matched = true
			}
			if matched {
				res, err := ip.execBlockUntilStop(token.OMG, token.OMGWTF, token.OIC)
				if err != nil {
					return normalResult, err
				}
				if res.Kind == Break {
					if serr := ip.skipToStop(token.OIC); serr != nil {
						return normalResult, serr
					}
					ip.advance() // OIC
					return normalResult, nil
				}
				if res.Kind == Return {
					return res, nil
				}
			} else {
				if serr := ip.skipToStop(token.OMG, token.OMGWTF, token.OIC); serr != nil {
					return normalResult, serr
				}
			}
		case token.OMGWTF:
			ip.advance()
			if !matched {
				matched = true
				res, err := ip.execBlockUntilStop(token.OIC)
				if err != nil {
					return normalResult, err
				}
				if res.Kind == Break {
					if serr := ip.skipToStop(token.OIC); serr != nil {
						return normalResult, serr
					}
					ip.advance()
					return normalResult, nil
				}
				if res.Kind == Return {
					return res, nil
				}
			} else {
				if serr := ip.skipToStop(token.OIC); serr != nil {
					return normalResult, serr
				}
			}
		default:
			ip.advance()
		}
	}

	ip.advance() // OIC
	return normalResult, nil
}

// execLoop implements IM IN YR ... IM OUTTA YR (spec §4.2.4).
func (ip *Interp) execLoop() (StepResult, error) {
	ip.advance() // IM IN YR
	nameTok, err := ip.expect(token.IDENT)
	if err != nil {
		return normalResult, err
	}
	loopName := nameTok.Lexeme

	var op token.Kind
	var loopVar string
	if ip.cur().Kind == token.UPPIN || ip.cur().Kind == token.NERFIN {
		op = ip.advance().Kind
		if _, err := ip.expect(token.YR); err != nil {
			return normalResult, err
		}
		varTok, err := ip.expect(token.IDENT)
		if err != nil {
			return normalResult, err
		}
		loopVar = varTok.Lexeme
		if !ip.env.Has(loopVar) {
			return normalResult, lolerr.Namef(varTok.Pos, "loop step variable %q not declared", loopVar).WithSource(ip.source, ip.file)
		}
	}

	var condKind token.Kind
	condStart := -1
	if ip.cur().Kind == token.TIL || ip.cur().Kind == token.WILE {
		condKind = ip.advance().Kind
		condStart = ip.pos
		ip.skipExpression()
	}

	bodyStart := ip.pos
	bodyEnd, err := ip.findSpanEnd(token.IMINYR, token.IMOUTTAYR, bodyStart)
	if err != nil {
		return normalResult, err
	}

	for {
		if condKind != 0 {
			saved := ip.pos
			ip.pos = condStart
			condVal, err := ip.evalExpression()
			ip.pos = saved
			if err != nil {
				return normalResult, err
			}
			truthy := value.Truthy(condVal)
			if condKind == token.TIL && truthy {
				break
			}
			if condKind == token.WILE && !truthy {
				break
			}
		}

		ip.pos = bodyStart
		res, err := ip.execBlockUntil(bodyEnd)
		if err != nil {
			return normalResult, err
		}
		if res.Kind == Return {
			ip.pos = bodyEnd
			if serr := ip.finishLoopHeader(loopName); serr != nil {
				return normalResult, serr
			}
			return res, nil
		}
		if res.Kind == Break {
			break
		}

		if loopVar != "" {
			cur, _ := ip.env.Get(loopVar)
			n := value.ToNumber(cur)
			if op == token.UPPIN {
				n++
			} else {
				n--
			}
			if value.IsIntegral(cur) {
				ip.env.Assign(loopVar, value.Numbr{V: int64(n)})
			} else {
				ip.env.Assign(loopVar, value.Numbar{V: n})
			}
		}
	}

	ip.pos = bodyEnd
	if err := ip.finishLoopHeader(loopName); err != nil {
		return normalResult, err
	}
	return normalResult, nil
}

func (ip *Interp) finishLoopHeader(loopName string) error {
	if _, err := ip.expect(token.IMOUTTAYR); err != nil {
		return err
	}
	endNameTok, err := ip.expect(token.IDENT)
	if err != nil {
		return err
	}
	if endNameTok.Lexeme != loopName {
		return lolerr.Syntaxf(endNameTok.Pos, "loop name mismatch: expected %q, got %q", loopName, endNameTok.Lexeme).WithSource(ip.source, ip.file)
	}
	return nil
}

// execFunctionDef registers a Function record by scanning its body span
// without executing it (spec §4.2.5). Definitions are available only once
// textual execution reaches them.
func (ip *Interp) execFunctionDef() (StepResult, error) {
	ip.advance() // HOW IZ I
	nameTok, err := ip.expect(token.IDENT)
	if err != nil {
		return normalResult, err
	}

	var params []string
	for ip.cur().Kind == token.YR {
		ip.advance()
		paramTok, err := ip.expect(token.IDENT)
		if err != nil {
			return normalResult, err
		}
		params = append(params, paramTok.Lexeme)
		if ip.cur().Kind == token.AN {
			ip.advance()
		}
	}

	bodyStart := ip.pos
	bodyEnd, err := ip.findSpanEnd(token.HOWIZI, token.IFUSAYSO, bodyStart)
	if err != nil {
		return normalResult, err
	}

	ip.functions[nameTok.Lexeme] = &Function{
		Name:      nameTok.Lexeme,
		Params:    params,
		BodyStart: bodyStart,
		BodyEnd:   bodyEnd,
	}

	ip.pos = bodyEnd
	if _, err := ip.expect(token.IFUSAYSO); err != nil {
		return normalResult, err
	}
	return normalResult, nil
}

// execFunctionCall implements I IZ <name> [YR <expr> {AN YR <expr>}] [MKAY]
// (spec §4.2.5): arguments are evaluated in the caller's scope, then the
// call runs in a fresh environment holding only the parameters and IT.
func (ip *Interp) execFunctionCall() (value.Value, error) {
	callTok := ip.advance() // I IZ
	nameTok, err := ip.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	fn, ok := ip.functions[nameTok.Lexeme]
	if !ok {
		return nil, lolerr.Namef(nameTok.Pos, "undefined function %q", nameTok.Lexeme).WithSource(ip.source, ip.file)
	}

	var args []value.Value
	if ip.cur().Kind == token.YR {
		ip.advance()
		v, err := ip.evalExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		for ip.cur().Kind == token.AN {
			ip.advance()
			if _, err := ip.expect(token.YR); err != nil {
				return nil, err
			}
			v, err := ip.evalExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
	}
	if ip.cur().Kind == token.MKAY {
		ip.advance()
	}

	if len(args) != len(fn.Params) {
		return nil, lolerr.Valuef(callTok.Pos, "wrong number of arguments for %q: expected %d, got %d", fn.Name, len(fn.Params), len(args)).WithSource(ip.source, ip.file)
	}

	savedPos, savedEnv := ip.pos, ip.env
	newEnv := NewEnvironment(ip.host.Observer)
	for i, p := range fn.Params {
		newEnv.Declare(p, args[i])
	}
	ip.env = newEnv
	ip.pos = fn.BodyStart

	res, err := ip.execBlockUntil(fn.BodyEnd)

	ip.env = savedEnv
	ip.pos = savedPos
	if err != nil {
		return nil, err
	}

	switch res.Kind {
	case Return:
		return res.Value, nil
	default:
		// A bare GTFO not caught by any enclosing loop/switch, or falling
		// off the end of the body, both return NOOB (spec §4.2.5, §4.2.6).
		return value.Noob{}, nil
	}
}

// execBlockUntilStop executes statements until the cursor sits on one of
// stops (not consumed), returning the first non-Normal signal seen.
func (ip *Interp) execBlockUntilStop(stops ...token.Kind) (StepResult, error) {
	stopSet := make(map[token.Kind]bool, len(stops))
	for _, s := range stops {
		stopSet[s] = true
	}
	for !stopSet[ip.cur().Kind] {
		if ip.cur().Kind == token.EOF {
			return normalResult, ip.syntaxErr("unexpected end of program inside block")
		}
		if ip.cur().Kind == token.HOWIZI {
			if _, err := ip.execFunctionDef(); err != nil {
				return normalResult, err
			}
			continue
		}
		res, err := ip.execStatement()
		if err != nil {
			return normalResult, err
		}
		if res.Kind != Normal {
			return res, nil
		}
	}
	return normalResult, nil
}

// skipToStop advances the cursor without executing, past any fully nested
// constructs, until it sits on one of stops at depth zero.
func (ip *Interp) skipToStop(stops ...token.Kind) error {
	stopSet := make(map[token.Kind]bool, len(stops))
	for _, s := range stops {
		stopSet[s] = true
	}
	depth := 0
	for {
		k := ip.cur().Kind
		if k == token.EOF {
			return ip.syntaxErr("unexpected end of program while skipping a block")
		}
		if depth == 0 && stopSet[k] {
			return nil
		}
		switch k {
		case token.ORLY, token.WTF, token.IMINYR, token.HOWIZI:
			depth++
		case token.OIC, token.IMOUTTAYR, token.IFUSAYSO:
			depth--
		}
		ip.advance()
	}
}

// findSpanEnd scans forward from start, counting nested open/close pairs,
// and returns the index of the matching close token (not consumed). Used
// to discover loop-body and function-body spans (spec §4.2.4, §4.2.5).
func (ip *Interp) findSpanEnd(open, close token.Kind, start int) (int, error) {
	depth := 1
	i := start
	for i < len(ip.toks) {
		switch ip.toks[i].Kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
		i++
	}
	return 0, lolerr.Syntaxf(ip.toks[start].Pos, "no matching %s for %s", close, open).WithSource(ip.source, ip.file)
}

// skipExpression advances the cursor past one expression's tokens without
// evaluating it, so loop conditions can be structurally located before
// their first real evaluation (spec §4.2.4's "stored by token index, not
// evaluated at parse time").
func (ip *Interp) skipExpression() {
	t := ip.cur()
	switch t.Kind {
	case token.NUMBR, token.NUMBAR, token.YARN, token.TROOF, token.NOOB, token.IDENT:
		ip.advance()
	case token.NOT:
		ip.advance()
		ip.skipExpression()
	case token.SUMOF, token.DIFFOF, token.PRODUKTOF, token.QUOSHUNTOF, token.MODOF,
		token.BIGGROF, token.SMALLROF, token.BOTHOF, token.EITHEROF, token.WONOF,
		token.ANYOF, token.ALLOF, token.SMOOSH:
		ip.advance()
		ip.skipExpression()
		for ip.cur().Kind == token.AN {
			ip.advance()
			ip.skipExpression()
		}
		if ip.cur().Kind == token.MKAY {
			ip.advance()
		}
	case token.BOTHSAEM, token.DIFFRINT:
		ip.advance()
		ip.skipExpression()
		if ip.cur().Kind == token.AN {
			ip.advance()
			ip.skipExpression()
		}
		if ip.cur().Kind == token.MKAY {
			ip.advance()
		}
	case token.MAEK:
		ip.advance()
		ip.skipExpression()
		if ip.cur().Kind == token.A {
			ip.advance()
		}
		ip.advance() // type name
	case token.IIZ:
		ip.advance() // I IZ
		ip.advance() // function name
		if ip.cur().Kind == token.YR {
			ip.advance()
			ip.skipExpression()
			for ip.cur().Kind == token.AN {
				ip.advance()
				if ip.cur().Kind == token.YR {
					ip.advance()
				}
				ip.skipExpression()
			}
		}
		if ip.cur().Kind == token.MKAY {
			ip.advance()
		}
	default:
		ip.advance()
	}
}

// evalExpression evaluates one expression and returns its value (spec
// §4.2.3).
func (ip *Interp) evalExpression() (value.Value, error) {
	t := ip.cur()
	switch t.Kind {
	case token.NUMBR:
		ip.advance()
		n, err := strconv.ParseInt(t.Lexeme, 10, 64)
		if err != nil {
			return nil, ip.syntaxErr("malformed NUMBR literal %q", t.Lexeme)
		}
		return value.Numbr{V: n}, nil
	case token.NUMBAR:
		ip.advance()
		f, err := strconv.ParseFloat(t.Lexeme, 64)
		if err != nil {
			return nil, ip.syntaxErr("malformed NUMBAR literal %q", t.Lexeme)
		}
		return value.Numbar{V: f}, nil
	case token.YARN:
		ip.advance()
		content := t.Lexeme
		if len(content) >= 2 {
			content = content[1 : len(content)-1]
		}
		return value.Yarn{V: content}, nil
	case token.TROOF:
		ip.advance()
		return value.Troof{V: t.Lexeme == "WIN"}, nil
	case token.NOOB:
		ip.advance()
		return value.Noob{}, nil
	case token.IDENT:
		ip.advance()
		v, ok := ip.env.Get(t.Lexeme)
		if !ok {
			return nil, lolerr.Namef(t.Pos, "undeclared variable %q", t.Lexeme).WithSource(ip.source, ip.file)
		}
		return v, nil
	case token.SUMOF:
		return ip.evalArithFold(func(a, b float64) float64 { return a + b }, false)
	case token.DIFFOF:
		return ip.evalArithFold(func(a, b float64) float64 { return a - b }, false)
	case token.PRODUKTOF:
		return ip.evalArithFold(func(a, b float64) float64 { return a * b }, false)
	case token.QUOSHUNTOF:
		return ip.evalQuoshunt()
	case token.MODOF:
		return ip.evalArithFold(modFloat, true)
	case token.BIGGROF:
		return ip.evalArithFold(func(a, b float64) float64 {
			if a >= b {
				return a
			}
			return b
		}, false)
	case token.SMALLROF:
		return ip.evalArithFold(func(a, b float64) float64 {
			if a <= b {
				return a
			}
			return b
		}, false)
	case token.BOTHOF, token.ALLOF:
		return ip.evalBoolFold(true)
	case token.EITHEROF, token.ANYOF:
		return ip.evalBoolFold(false)
	case token.WONOF:
		return ip.evalXor()
	case token.NOT:
		ip.advance()
		v, err := ip.evalExpression()
		if err != nil {
			return nil, err
		}
		return value.Troof{V: !value.Truthy(v)}, nil
	case token.BOTHSAEM:
		return ip.evalEquality(false)
	case token.DIFFRINT:
		return ip.evalEquality(true)
	case token.SMOOSH:
		return ip.evalSmoosh()
	case token.MAEK:
		return ip.evalMaek()
	case token.IIZ:
		return ip.execFunctionCall()
	default:
		return nil, ip.syntaxErr("unexpected token %s %q in expression", t.Kind, t.Lexeme)
	}
}

func modFloat(a, b float64) float64 {
	r := a - b*float64(int64(a/b))
	return r
}

// evalQuoshunt implements QUOSHUNT OF (spec §4.2.3): a left fold that
// always performs truncated integer division of the running accumulator
// by each operand, except that a step whose operand coerces to zero
// yields zero for that step rather than dividing. Unlike SUM OF/DIFF OF/
// PRODUKT OF, there is no floating-point variant: the spec's wording
// ("integer division of the current accumulator by the operand") is
// unconditional, not gated on operand type.
func (ip *Interp) evalQuoshunt() (value.Value, error) {
	ip.advance() // QUOSHUNT OF
	firstVal, err := ip.evalExpression()
	if err != nil {
		return nil, err
	}
	acc := int64(value.ToNumber(firstVal))

	for ip.cur().Kind == token.AN {
		ip.advance()
		operandVal, err := ip.evalExpression()
		if err != nil {
			return nil, err
		}
		operand := int64(value.ToNumber(operandVal))
		if operand == 0 {
			acc = 0
			continue
		}
		acc /= operand
	}
	if ip.cur().Kind == token.MKAY {
		ip.advance()
	}
	return value.Numbr{V: acc}, nil
}

// evalArithFold implements the left-fold arithmetic operators (spec
// §4.2.3): SUM OF/DIFF OF/PRODUKT OF/BIGGR OF/SMALLR OF/MOD OF. zeroGuard
// treats a zero operand as yielding zero for that fold step instead of
// invoking op (MOD OF's zero-divisor rule). The accumulator's result type
// is NUMBR only if every operand folded so far is integral, else NUMBAR.
func (ip *Interp) evalArithFold(op func(a, b float64) float64, zeroGuard bool) (value.Value, error) {
	ip.advance() // operator keyword
	firstVal, err := ip.evalExpression()
	if err != nil {
		return nil, err
	}
	acc := value.ToNumber(firstVal)
	integral := value.IsIntegral(firstVal)

	for ip.cur().Kind == token.AN {
		ip.advance()
		operandVal, err := ip.evalExpression()
		if err != nil {
			return nil, err
		}
		operand := value.ToNumber(operandVal)
		operandIntegral := value.IsIntegral(operandVal)

		if zeroGuard && operand == 0 {
			acc = 0
		} else {
			acc = op(acc, operand)
		}
		integral = integral && operandIntegral
	}
	if ip.cur().Kind == token.MKAY {
		ip.advance()
	}

	if integral {
		return value.Numbr{V: int64(acc)}, nil
	}
	return value.Numbar{V: acc}, nil
}

// evalBoolFold implements BOTH OF/ALL OF (and=true) and EITHER OF/ANY OF
// (and=false) with short-circuit evaluation: once the outcome is decided,
// remaining operands are skipped structurally (not evaluated), so their
// side effects (e.g. function calls) do not run.
func (ip *Interp) evalBoolFold(and bool) (value.Value, error) {
	ip.advance()
	firstVal, err := ip.evalExpression()
	if err != nil {
		return nil, err
	}
	acc := value.Truthy(firstVal)
	decided := and && !acc || !and && acc

	for ip.cur().Kind == token.AN {
		ip.advance()
		if decided {
			ip.skipExpression()
			continue
		}
		operandVal, err := ip.evalExpression()
		if err != nil {
			return nil, err
		}
		t := value.Truthy(operandVal)
		if and {
			acc = acc && t
		} else {
			acc = acc || t
		}
		decided = and && !acc || !and && acc
	}
	if ip.cur().Kind == token.MKAY {
		ip.advance()
	}
	return value.Troof{V: acc}, nil
}

// evalXor implements WON OF: true iff an odd number of arguments are
// truthy. Every argument is evaluated (no short circuit is possible).
func (ip *Interp) evalXor() (value.Value, error) {
	ip.advance()
	firstVal, err := ip.evalExpression()
	if err != nil {
		return nil, err
	}
	count := 0
	if value.Truthy(firstVal) {
		count++
	}
	for ip.cur().Kind == token.AN {
		ip.advance()
		v, err := ip.evalExpression()
		if err != nil {
			return nil, err
		}
		if value.Truthy(v) {
			count++
		}
	}
	if ip.cur().Kind == token.MKAY {
		ip.advance()
	}
	return value.Troof{V: count%2 == 1}, nil
}

// evalEquality implements BOTH SAEM (negate=false) and DIFFRINT
// (negate=true): strict equality, no cross-tag coercion.
func (ip *Interp) evalEquality(negate bool) (value.Value, error) {
	ip.advance()
	a, err := ip.evalExpression()
	if err != nil {
		return nil, err
	}
	if _, err := ip.expect(token.AN); err != nil {
		return nil, err
	}
	b, err := ip.evalExpression()
	if err != nil {
		return nil, err
	}
	if ip.cur().Kind == token.MKAY {
		ip.advance()
	}
	eq := value.Equal(a, b)
	if negate {
		eq = !eq
	}
	return value.Troof{V: eq}, nil
}

func (ip *Interp) evalSmoosh() (value.Value, error) {
	ip.advance()
	first, err := ip.evalExpression()
	if err != nil {
		return nil, err
	}
	out := value.ToString(first)
	for ip.cur().Kind == token.AN {
		ip.advance()
		v, err := ip.evalExpression()
		if err != nil {
			return nil, err
		}
		out += value.ToString(v)
	}
	if ip.cur().Kind == token.MKAY {
		ip.advance()
	}
	return value.Yarn{V: out}, nil
}

// evalMaek implements MAEK <expr> [A] <type>, the expression-form cast
// (spec §4.2.3's "A" / "MAEK" cast row).
func (ip *Interp) evalMaek() (value.Value, error) {
	ip.advance() // MAEK
	v, err := ip.evalExpression()
	if err != nil {
		return nil, err
	}
	if ip.cur().Kind == token.A {
		ip.advance()
	}
	typeTok := ip.advance()
	casted, err := value.Cast(v, typeTok.Lexeme)
	if err != nil {
		return nil, ip.syntaxErr("%s", err)
	}
	return casted, nil
}
