package internal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// A token is a single lexical element.
type token struct {
	Kind  tokenKind
	Value string
	Err   error

	Line, Col int
}

type tokenKind int

const (
	badToken tokenKind = iota

	semiToken    // semicolon and newline
	identToken   // identifier or keyword
	opToken      // operator or punctuation: + . : ~ etc.
	openToken    // open bracket: (, [
	closeToken   // close bracket: ), ]
	commaToken   // comma
	numberToken  // number
	stringToken  // 'string' or "string", with escapes already decoded
	commentToken // // or #

	eofToken // end of input; never sent by the lexer
)

var tokenNames = [...]string{"bad token", "end of statement", "identifier", "operator", "open bracket", "close bracket", "comma", "number", "string", "comment", "end of input"}

func (k tokenKind) String() string {
	if k < badToken || k > eofToken {
		return fmt.Sprintf("tokenKind(%d)", int(k))
	}
	return tokenNames[k]
}

// opChars are the runes which begin operators.
const opChars = "+-*/%&|!?=<>~:."

// twoCharOps are the operators two runes long.
var twoCharOps = map[string]bool{
	"<<": true, "??": true, "==": true, "!=": true, "<=": true, ">=": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true, "&=": true, "|=": true,
	"++": true, "--": true,
}

// lexFn is a lexer state function. Each lexFn lexes a token, sends it on the
// supplied channel, and returns the next lexFn to use.
type lexFn func(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int)

// lex converts a source into a stream of tokens.
func lex(src *bufio.Reader, tokens chan<- token) {
	state := eatSpace
	line, col := 1, 1
	for state != nil {
		state, line, col = state(src, tokens, line, col)
	}
	close(tokens)
}

// accept appends the next run of characters in src which satisfy the predicate
// to b. Returns b after appending, the first rune which did not satisfy the
// predicate, and any error that occurred. If there was no such error, the
// last rune is unread.
func accept(src *bufio.Reader, predicate func(rune) bool, b []byte) ([]byte, rune, error) {
	r, _, err := src.ReadRune()
	for {
		if err != nil {
			return b, r, err
		}
		if !predicate(r) {
			break
		}
		b = append(b, string(r)...)
		r, _, err = src.ReadRune()
	}
	src.UnreadRune()
	return b, r, nil
}

// lexsend is a shortcut for sending a token with error checking. It returns
// eatSpace as the default lexing function.
func lexsend(err error, tokens chan<- token, good token) lexFn {
	if err != nil && err != io.EOF {
		good.Kind = badToken
		good.Err = err
	}
	tokens <- good
	if err != nil {
		return nil
	}
	return eatSpace
}

func isIdentStart(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_' || r >= 0x80
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// eatSpace consumes space and decides the next lexFn to use.
func eatSpace(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	eaten, r, err := accept(src, func(r rune) bool { return strings.ContainsRune(" \r\f\t\v", r) }, nil)
	col += len(eaten)
	if err != nil {
		if err != io.EOF {
			tokens <- token{
				Kind:  badToken,
				Value: string(r),
				Err:   err,
				Line:  line,
				Col:   col,
			}
		}
		return nil, line, col
	}
	switch {
	case r == ';', r == '\n':
		src.ReadRune()
		tokens <- token{
			Kind:  semiToken,
			Value: string(r),
			Line:  line,
			Col:   col,
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		return eatSpace, line, col
	case isIdentStart(r):
		return lexIdent, line, col
	case isDigit(r):
		return lexNumber, line, col
	case r == '#':
		return lexComment, line, col
	case r == '/':
		peek, _ := src.Peek(2)
		if len(peek) > 1 && peek[1] == '/' {
			return lexComment, line, col
		}
		return lexOp, line, col
	case r == '.':
		peek, _ := src.Peek(2)
		if len(peek) > 1 && isDigit(rune(peek[1])) {
			return lexNumber, line, col
		}
		return lexOp, line, col
	case strings.ContainsRune(opChars, r):
		return lexOp, line, col
	case r == '(', r == '[':
		src.ReadRune()
		tokens <- token{
			Kind:  openToken,
			Value: string(r),
			Line:  line,
			Col:   col,
		}
		col++
		return eatSpace, line, col
	case r == ')', r == ']':
		src.ReadRune()
		tokens <- token{
			Kind:  closeToken,
			Value: string(r),
			Line:  line,
			Col:   col,
		}
		col++
		return eatSpace, line, col
	case r == ',':
		src.ReadRune()
		tokens <- token{
			Kind:  commaToken,
			Value: ",",
			Line:  line,
			Col:   col,
		}
		col++
		return eatSpace, line, col
	case r == '"', r == '\'':
		return lexString, line, col
	}
	tokens <- token{
		Kind:  badToken,
		Value: string(r),
		Err:   fmt.Errorf("lexer encountered invalid character %q", r),
		Line:  line,
		Col:   col,
	}
	return nil, line, col
}

// lexIdent lexes an identifier, which consists of a-z, A-Z, 0-9, _, and all
// runes greater than 0x80.
func lexIdent(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	b, _, err := accept(src, func(r rune) bool {
		return isIdentStart(r) || isDigit(r)
	}, nil)
	ncol := col + len([]rune(string(b)))
	return lexsend(err, tokens, token{Kind: identToken, Value: string(b), Line: line, Col: col}), line, ncol
}

// lexOp lexes an operator. The longest known operator wins.
func lexOp(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	r, _, err := src.ReadRune()
	if err != nil {
		return lexsend(err, tokens, token{Kind: badToken, Err: err, Line: line, Col: col}), line, col
	}
	op := string(r)
	if peek, _ := src.Peek(1); len(peek) == 1 && twoCharOps[op+string(peek)] {
		src.ReadByte()
		op += string(peek)
	}
	return lexsend(nil, tokens, token{Kind: opToken, Value: op, Line: line, Col: col}), line, col + len(op)
}

// lexComment lexes a // or # comment.
func lexComment(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	b, _, err := accept(src, func(r rune) bool { return r != '\n' }, nil)
	ncol := col + len(b)
	return lexsend(err, tokens, token{Kind: commentToken, Value: string(b), Line: line, Col: col}), line, ncol
}

// lexNumber lexes a decimal number with an optional fraction and exponent.
func lexNumber(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	b, r, err := accept(src, isDigit, nil)
	if err == nil && r == '.' {
		// Only take the dot if a digit follows, so that 1.foo stays a member
		// access on 1.
		peek, _ := src.Peek(2)
		if len(peek) > 1 && isDigit(rune(peek[1])) {
			src.ReadRune()
			b, r, err = accept(src, isDigit, append(b, '.'))
		}
	}
	if err == nil && (r == 'e' || r == 'E') {
		peek, _ := src.Peek(3)
		i := 1
		if len(peek) > 1 && (peek[1] == '+' || peek[1] == '-') {
			i = 2
		}
		if len(peek) > i && isDigit(rune(peek[i])) {
			b = append(b, peek[:i]...)
			src.Discard(i)
			b, _, err = accept(src, isDigit, b)
		}
	}
	return lexsend(err, tokens, token{Kind: numberToken, Value: string(b), Line: line, Col: col}), line, col + len(b)
}

// escapes maps escape sequence letters to the runes they denote.
var escapes = map[rune]rune{
	'n': '\n', 't': '\t', 'r': '\r', '0': 0,
	'\\': '\\', '\'': '\'', '"': '"',
}

// lexString lexes a string quoted by ' or ". The token value is the decoded
// text.
func lexString(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	quote, _, _ := src.ReadRune()
	var b strings.Builder
	nline, ncol := line, col+1
	for {
		r, _, err := src.ReadRune()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			tokens <- token{
				Kind:  badToken,
				Value: b.String(),
				Err:   err,
				Line:  line,
				Col:   col,
			}
			return nil, nline, ncol
		}
		ncol++
		switch r {
		case quote:
			tokens <- token{Kind: stringToken, Value: b.String(), Line: line, Col: col}
			return eatSpace, nline, ncol
		case '\n':
			nline++
			ncol = 1
		case '\\':
			e, _, err := src.ReadRune()
			if err != nil {
				continue
			}
			ncol++
			if x, ok := escapes[e]; ok {
				r = x
			} else {
				tokens <- token{
					Kind:  badToken,
					Value: b.String(),
					Err:   fmt.Errorf("unknown escape sequence \\%c", e),
					Line:  nline,
					Col:   ncol - 2,
				}
				return nil, nline, ncol
			}
		}
		b.WriteRune(r)
	}
}
