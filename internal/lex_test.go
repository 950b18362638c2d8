package internal

import (
	"bufio"
	"io"
	"strings"
	"testing"
)

// TestLexSingles tests that individual tokens have the correct kinds and
// values.
func TestLexSingles(t *testing.T) {
	cases := map[string]struct {
		text string
		kind tokenKind
		val  string
	}{
		"Semi-;":              {";", semiToken, ";"},
		"Semi-\\n":            {"\n", semiToken, "\n"},
		"Ident-alpha":         {"abcd", identToken, "abcd"},
		"Ident-alnum":         {"a123", identToken, "a123"},
		"Ident-underscore":    {"_a_b", identToken, "_a_b"},
		"Ident-unicode":       {"число", identToken, "число"},
		"Op-+":                {"+", opToken, "+"},
		"Op-.":                {".", opToken, "."},
		"Op-~":                {"~", opToken, "~"},
		"Op-:":                {":", opToken, ":"},
		"Op-!":                {"!", opToken, "!"},
		"Op-<<":               {"<<", opToken, "<<"},
		"Op-??":               {"??", opToken, "??"},
		"Op-==":               {"==", opToken, "=="},
		"Op-!=":               {"!=", opToken, "!="},
		"Op-<=":               {"<=", opToken, "<="},
		"Op->=":               {">=", opToken, ">="},
		"Op-+=":               {"+=", opToken, "+="},
		"Op-%=":               {"%=", opToken, "%="},
		"Op-|=":               {"|=", opToken, "|="},
		"Op-++":               {"++", opToken, "++"},
		"Op---":               {"--", opToken, "--"},
		"Open-(":              {"(", openToken, "("},
		"Open-[":              {"[", openToken, "["},
		"Close-)":             {")", closeToken, ")"},
		"Close-]":             {"]", closeToken, "]"},
		"Comma":               {",", commaToken, ","},
		"Number-num":          {"1234", numberToken, "1234"},
		"Number-num.num":      {"1234.567", numberToken, "1234.567"},
		"Number-.num":         {".567", numberToken, ".567"},
		"Number-numE":         {"1234e9", numberToken, "1234e9"},
		"Number-num.numE":     {"1234.567e9", numberToken, "1234.567e9"},
		"Number-numEp":        {"1234e+9", numberToken, "1234e+9"},
		"Number-numEm":        {"1234e-9", numberToken, "1234e-9"},
		"String-double":       {`"abcd"`, stringToken, "abcd"},
		"String-single":       {`'abcd'`, stringToken, "abcd"},
		"String-empty":        {`""`, stringToken, ""},
		"String-other-quote":  {`"a'b"`, stringToken, "a'b"},
		"String-escapes":      {`"a\n\t\\\"b"`, stringToken, "a\n\t\\\"b"},
		"String-escaped-nul":  {`'\0'`, stringToken, "\x00"},
		"String-newline":      {"'a\nb'", stringToken, "a\nb"},
		"Comment-#":           {"# comment goes here", commentToken, "# comment goes here"},
		"Comment-//":          {"// comment goes here", commentToken, "// comment goes here"},
		"Error-`":             {"`", badToken, "`"},
		"Error-unclosed":      {`"abcd`, badToken, "abcd"},
		"Error-unknown-escap": {`"a\qb"`, badToken, "a"},
		"Space":               {"   abcd   ", identToken, "abcd"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			ch := make(chan token, 100) // large buffer so failures complete
			lex(bufio.NewReader(strings.NewReader(c.text)), ch)
			tok, ok := <-ch
			if !ok {
				t.Fatal("no token lexed")
			}
			if tok.Kind != c.kind {
				t.Errorf("%q lexed as wrong kind: wanted %v, got %v", c.text, c.kind, tok.Kind)
			}
			if tok.Value != c.val {
				t.Errorf("%q lexed with wrong text: wanted %q, got %q", c.text, c.val, tok.Value)
			}
			tok, ok = <-ch
			if ok {
				t.Errorf("lexed extra token %v", tok)
			}
		})
	}
}

// TestLexMulti tests that the lexer obtains the correct sequences of token
// kinds.
func TestLexMulti(t *testing.T) {
	cases := map[string]struct {
		text  string
		kinds []tokenKind
	}{
		"Idents":        {"a b c", []tokenKind{identToken, identToken, identToken}},
		"Semis":         {";;\n\n;", []tokenKind{semiToken, semiToken, semiToken, semiToken, semiToken}},
		"Assign":        {"x += 1", []tokenKind{identToken, opToken, numberToken}},
		"Member":        {"a.b", []tokenKind{identToken, opToken, identToken}},
		"NumberMember":  {"1.foo", []tokenKind{numberToken, opToken, identToken}},
		"Call":          {"f(a, b ~ 2)", []tokenKind{identToken, openToken, identToken, commaToken, identToken, opToken, numberToken, closeToken}},
		"Index":         {`s["k"]`, []tokenKind{identToken, openToken, stringToken, closeToken}},
		"Return":        {"<<x", []tokenKind{opToken, identToken}},
		"ShiftThenLess": {"<<<", []tokenKind{opToken, opToken}},
		"Divide":        {"a/b", []tokenKind{identToken, opToken, identToken}},
		"Comment":       {"x # y\nz", []tokenKind{identToken, commentToken, semiToken, identToken}},
		"Exponentless":  {"1e", []tokenKind{numberToken, identToken}},
		"Spaces":        {" \t ", []tokenKind{}},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			ch := make(chan token)
			go lex(bufio.NewReader(strings.NewReader(c.text)), ch)
			i := 0
			for tok := range ch {
				if i >= len(c.kinds) {
					t.Errorf("extra token %d: %v", i, tok)
				} else if tok.Kind != c.kinds[i] {
					t.Errorf("incorrect token %d: wanted %v, got %v", i, c.kinds[i], tok.Kind)
				}
				i++
			}
			if i < len(c.kinds) {
				t.Errorf("too few tokens: wanted %d, got %d", len(c.kinds), i)
			}
		})
	}
}

// TestLexPositions tests that tokens carry their line and column.
func TestLexPositions(t *testing.T) {
	ch := make(chan token, 100)
	lex(bufio.NewReader(strings.NewReader("ab = 'x'\n  c")), ch)
	want := []struct{ line, col int }{{1, 1}, {1, 4}, {1, 6}, {1, 9}, {2, 3}}
	i := 0
	for tok := range ch {
		if i >= len(want) {
			t.Fatalf("extra token %v", tok)
		}
		if tok.Line != want[i].line || tok.Col != want[i].col {
			t.Errorf("token %d (%q) at wrong position: wanted %d:%d, got %d:%d", i, tok.Value, want[i].line, want[i].col, tok.Line, tok.Col)
		}
		i++
	}
}

// TestLexUnclosedIsEOF tests that an unclosed string reports an unexpected
// end of input.
func TestLexUnclosedIsEOF(t *testing.T) {
	ch := make(chan token, 100)
	lex(bufio.NewReader(strings.NewReader(`"abc`)), ch)
	tok := <-ch
	if tok.Err != io.ErrUnexpectedEOF {
		t.Errorf("wrong error: wanted %v, got %v", io.ErrUnexpectedEOF, tok.Err)
	}
}
