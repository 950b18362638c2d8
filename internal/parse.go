package internal

/*
This file converts lexer tokens into a syntax tree. Statements are parsed by
keyword; expressions by precedence climbing, from assignment (loosest) down to
postfix calls and member accesses (tightest).
*/

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// keywords are the identifiers which cannot name variables.
var keywords = map[string]bool{
	"fun": true, "scope": true, "if": true, "elif": true, "else": true,
	"while": true, "end": true, "return": true, "break": true, "continue": true,
	"nil": true, "refl": true,
}

// Parse converts refl source code into a program. The label names the source
// in positions, typically a file name.
func (vm *VM) Parse(source io.Reader, label string) (prog *Program, err error) {
	src := bufio.NewReader(source)
	tokens := make(chan token)
	go lex(src, tokens)
	p := parser{tokens: tokens, label: label}
	defer func() {
		// Let the lexer finish if we stopped early.
		go func() {
			for range tokens {
			}
		}()
		if r := recover(); r != nil {
			perr, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			prog, err = nil, perr
		}
	}()
	p.advance()
	body := p.block(true)
	if p.tok.Kind != eofToken {
		p.fail("unexpected %s", p.describe())
	}
	return &Program{Label: label, Body: body}, nil
}

// parser holds the state of one parse. Parse errors are raised as panics with
// a *ParseError and recovered by Parse.
type parser struct {
	tokens <-chan token
	label  string

	tok  token
	next *token

	// nest counts open brackets; newlines inside brackets are ignored.
	nest int
	// loops counts enclosing loops in the current function body.
	loops int
}

// read takes the next meaningful token from the lexer.
func (p *parser) read() token {
	for tok := range p.tokens {
		switch {
		case tok.Kind == commentToken:
			continue
		case tok.Kind == semiToken && tok.Value == "\n" && p.nest > 0:
			continue
		}
		return tok
	}
	return token{Kind: eofToken, Line: p.tok.Line, Col: p.tok.Col}
}

// advance moves to the next token.
func (p *parser) advance() {
	if p.next != nil {
		p.tok, p.next = *p.next, nil
	} else {
		p.tok = p.read()
	}
	if p.tok.Kind == badToken {
		perr := &ParseError{Pos: p.pos(), Msg: p.tok.Err.Error()}
		perr.incomplete = p.tok.Err == io.ErrUnexpectedEOF
		panic(perr)
	}
}

// peek returns the token after the current one without consuming anything.
func (p *parser) peek() token {
	if p.next == nil {
		t := p.read()
		p.next = &t
	}
	return *p.next
}

func (p *parser) pos() Pos {
	return Pos{Label: p.label, Line: p.tok.Line, Col: p.tok.Col}
}

// fail raises a parse error at the current token. Errors at the end of input
// are incomplete.
func (p *parser) fail(format string, args ...interface{}) {
	panic(&ParseError{
		Pos:        p.pos(),
		Msg:        fmt.Sprintf(format, args...),
		incomplete: p.tok.Kind == eofToken,
	})
}

func (p *parser) describe() string {
	switch p.tok.Kind {
	case eofToken:
		return "end of input"
	case semiToken:
		if p.tok.Value == "\n" {
			return "newline"
		}
	}
	return strconv.Quote(p.tok.Value)
}

// is reports whether the current token is the given operator or keyword.
func (p *parser) is(kind tokenKind, value string) bool {
	return p.tok.Kind == kind && p.tok.Value == value
}

func (p *parser) isKeyword(words ...string) bool {
	if p.tok.Kind != identToken {
		return false
	}
	for _, w := range words {
		if p.tok.Value == w {
			return true
		}
	}
	return false
}

// expect consumes the given token or fails.
func (p *parser) expect(kind tokenKind, value string) {
	if !p.is(kind, value) {
		p.fail("expected %q, got %s", value, p.describe())
	}
	p.advance()
}

func (p *parser) skipSemis() {
	for p.tok.Kind == semiToken {
		p.advance()
	}
}

// block parses statements until end, elif, else, or the end of input. At top
// level, only the end of input ends the block.
func (p *parser) block(top bool) *Block {
	b := &Block{At: p.pos()}
	for {
		p.skipSemis()
		if p.tok.Kind == eofToken {
			if !top {
				p.fail("expected \"end\", got end of input")
			}
			return b
		}
		if p.isKeyword("end", "elif", "else") {
			if top {
				p.fail("unexpected %s", p.describe())
			}
			return b
		}
		b.Stmts = append(b.Stmts, p.statement())
		switch {
		case p.tok.Kind == semiToken, p.tok.Kind == eofToken:
		case p.isKeyword("end", "elif", "else"):
		default:
			p.fail("expected end of statement, got %s", p.describe())
		}
	}
}

// header consumes the optional colon after a block header.
func (p *parser) header() {
	if p.is(opToken, ":") {
		p.advance()
	}
}

func (p *parser) name(what string) string {
	if p.tok.Kind != identToken || keywords[p.tok.Value] {
		p.fail("expected %s name, got %s", what, p.describe())
	}
	s := p.tok.Value
	p.advance()
	return s
}

func (p *parser) statement() Node {
	at := p.pos()
	if p.is(opToken, "<<") {
		p.advance()
		return p.ret(at)
	}
	if p.tok.Kind != identToken {
		return p.expr()
	}
	switch p.tok.Value {
	case "fun":
		p.advance()
		name := p.name("function")
		p.header()
		loops := p.loops
		p.loops = 0
		body := p.block(false)
		p.loops = loops
		p.expect(identToken, "end")
		return &FuncDecl{At: at, Name: name, Body: body}
	case "scope":
		p.advance()
		name := p.name("scope")
		p.header()
		body := p.block(false)
		p.expect(identToken, "end")
		return &ScopeDecl{At: at, Name: name, Body: body}
	case "if":
		return p.ifStatement(at)
	case "while":
		p.advance()
		cond := p.expr()
		p.header()
		p.loops++
		body := p.block(false)
		p.loops--
		p.expect(identToken, "end")
		return &While{At: at, Cond: cond, Body: body}
	case "return":
		p.advance()
		return p.ret(at)
	case "break", "continue":
		if p.loops == 0 {
			p.fail("%s outside of a loop", p.tok.Value)
		}
		stop := BreakStop
		if p.tok.Value == "continue" {
			stop = ContinueStop
		}
		p.advance()
		return &LoopControl{At: at, Stop: stop}
	}
	return p.expr()
}

func (p *parser) ret(at Pos) Node {
	if p.tok.Kind == semiToken || p.tok.Kind == eofToken || p.isKeyword("end", "elif", "else") {
		return &Return{At: at}
	}
	return &Return{At: at, X: p.expr()}
}

func (p *parser) ifStatement(at Pos) Node {
	n := &If{At: at}
	for p.isKeyword("if", "elif") {
		p.advance()
		cond := p.expr()
		p.header()
		n.Branches = append(n.Branches, Branch{Cond: cond, Body: p.block(false)})
	}
	if p.isKeyword("else") {
		p.advance()
		p.header()
		n.Branches = append(n.Branches, Branch{Body: p.block(false)})
	}
	p.expect(identToken, "end")
	return n
}

// assignOps maps assignment operators to the operator they combine with.
var assignOps = map[string]Op{
	"=": OpAssign, "+=": OpAdd, "-=": OpSub, "*=": OpMul, "/=": OpDiv,
	"%=": OpMod, "&=": OpAnd, "|=": OpOr,
}

func (p *parser) expr() Node {
	at := p.pos()
	left := p.or()
	if p.tok.Kind == opToken {
		if op, ok := assignOps[p.tok.Value]; ok {
			p.advance()
			return &Assign{At: at, Op: op, Target: left, X: p.expr()}
		}
	}
	return left
}

func (p *parser) or() Node {
	left := p.and()
	for {
		at := p.pos()
		switch {
		case p.is(opToken, "|"):
			p.advance()
			left = &Logic{At: at, Op: OpOr, Left: left, Right: p.and()}
		case p.is(opToken, "??"):
			p.advance()
			left = &Elvis{At: at, Left: left, Right: p.and()}
		default:
			return left
		}
	}
}

func (p *parser) and() Node {
	left := p.comparison()
	for p.is(opToken, "&") {
		at := p.pos()
		p.advance()
		left = &Logic{At: at, Op: OpAnd, Left: left, Right: p.comparison()}
	}
	return left
}

var compareOps = map[string]Op{
	"==": OpEq, "!=": OpNe, "<": OpLt, "<=": OpLe, ">": OpGt, ">=": OpGe,
}

func (p *parser) comparison() Node {
	left := p.additive()
	for p.tok.Kind == opToken {
		op, ok := compareOps[p.tok.Value]
		if !ok {
			break
		}
		at := p.pos()
		p.advance()
		left = &Comparison{At: at, Op: op, Left: left, Right: p.additive()}
	}
	return left
}

func (p *parser) additive() Node {
	left := p.multiplicative()
	for p.is(opToken, "+") || p.is(opToken, "-") {
		at := p.pos()
		op := OpAdd
		if p.tok.Value == "-" {
			op = OpSub
		}
		p.advance()
		left = &Binary{At: at, Op: op, Left: left, Right: p.multiplicative()}
	}
	return left
}

var mulOps = map[string]Op{"*": OpMul, "/": OpDiv, "%": OpMod}

func (p *parser) multiplicative() Node {
	left := p.unary()
	for p.tok.Kind == opToken {
		op, ok := mulOps[p.tok.Value]
		if !ok {
			break
		}
		at := p.pos()
		p.advance()
		left = &Binary{At: at, Op: op, Left: left, Right: p.unary()}
	}
	return left
}

func (p *parser) unary() Node {
	at := p.pos()
	if p.tok.Kind == opToken {
		switch p.tok.Value {
		case "-":
			p.advance()
			return &Unary{At: at, Op: OpSub, X: p.unary()}
		case "+":
			p.advance()
			return &Unary{At: at, Op: OpAdd, X: p.unary()}
		case "!":
			p.advance()
			return &Unary{At: at, Op: OpNot, X: p.unary()}
		case "++", "--":
			dec := p.tok.Value == "--"
			p.advance()
			return &IncDec{At: at, Target: p.unary(), Dec: dec}
		}
	}
	return p.postfix()
}

func (p *parser) postfix() Node {
	x := p.primary()
	for {
		at := p.pos()
		switch {
		case p.is(openToken, "("):
			x = p.call(at, x)
		case p.is(openToken, "["):
			p.nest++
			p.advance()
			key := p.expr()
			p.nest--
			p.expect(closeToken, "]")
			x = &Index{At: at, Left: x, Key: key}
		case p.is(opToken, "."):
			p.advance()
			if p.tok.Kind != identToken {
				p.fail("expected field name, got %s", p.describe())
			}
			x = &Member{At: at, Left: x, Name: p.tok.Value}
			p.advance()
		case p.is(opToken, "++"), p.is(opToken, "--"):
			dec := p.tok.Value == "--"
			p.advance()
			x = &IncDec{At: at, Target: x, Dec: dec, Postfix: true}
		default:
			return x
		}
	}
}

// call parses an argument list. Named arguments are written name ~ value and
// follow all positional arguments.
func (p *parser) call(at Pos, callee Node) Node {
	n := &CallExpr{At: at, Callee: callee}
	p.nest++
	p.advance()
	for !p.is(closeToken, ")") {
		if name, ok := p.argName(); ok {
			n.Named = append(n.Named, NamedExpr{Name: name, X: p.expr()})
		} else if len(n.Named) > 0 {
			p.fail("positional argument after named argument")
		} else {
			n.Args = append(n.Args, p.expr())
		}
		if p.tok.Kind != commaToken {
			break
		}
		p.advance()
	}
	p.nest--
	p.expect(closeToken, ")")
	return n
}

// argName consumes name ~ if it begins the current argument.
func (p *parser) argName() (string, bool) {
	if p.tok.Kind != identToken || keywords[p.tok.Value] {
		return "", false
	}
	if nt := p.peek(); nt.Kind != opToken || nt.Value != "~" {
		return "", false
	}
	name := p.tok.Value
	p.advance()
	p.advance()
	return name, true
}

func (p *parser) primary() Node {
	at := p.pos()
	switch p.tok.Kind {
	case numberToken:
		f, err := strconv.ParseFloat(p.tok.Value, 64)
		if err != nil && err.(*strconv.NumError).Err != strconv.ErrRange {
			p.fail("invalid number %q", p.tok.Value)
		}
		p.advance()
		return &Const{At: at, Value: Number(f)}
	case stringToken:
		s := p.tok.Value
		p.advance()
		return &Const{At: at, Value: String(s)}
	case identToken:
		switch p.tok.Value {
		case "nil":
			p.advance()
			return &Const{At: at, Value: Nil}
		case "refl":
			p.advance()
			return &Const{At: at, Value: Refl}
		}
		if keywords[p.tok.Value] {
			p.fail("unexpected %s", p.describe())
		}
		name := p.tok.Value
		p.advance()
		return &Ident{At: at, Name: name}
	case openToken:
		if p.tok.Value == "(" {
			p.nest++
			p.advance()
			x := p.expr()
			p.nest--
			p.expect(closeToken, ")")
			return x
		}
	}
	p.fail("unexpected %s", p.describe())
	panic("unreachable")
}
