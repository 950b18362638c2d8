// Package text provides language-aware string functions.
package text

import (
	"fmt"

	"github.com/rofleksey/refl"
	"github.com/rofleksey/refl/internal"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

func init() {
	internal.Register(initText)
}

func initText(vm *refl.VM) {
	vm.SetFunction("upper", caser(cases.Upper))
	vm.SetFunction("lower", caser(cases.Lower))
	vm.SetFunction("title", caser(cases.Title))
	vm.SetFunction("format", format)
}

// Lang returns the language named by the lang argument of a call, or
// language.Und if there is none.
func Lang(call *refl.Call) (language.Tag, error) {
	v, ok := call.NamedArg("lang")
	if !ok || v.IsNil() {
		return language.Und, nil
	}
	s, ok := v.Str()
	if !ok {
		return language.Und, fmt.Errorf("lang must be a string, not %s", v.Kind())
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("bad lang %q: %w", s, err)
	}
	return tag, nil
}

// caser creates a builtin mapping the case of its string argument.
//
// upper, lower, and title convert the case of their argument according to the
// rules of the language given by lang, as in upper("i", lang ~ "tr").
// Arguments which are not strings are converted first.
func caser(mk func(language.Tag, ...cases.Option) cases.Caser) refl.Fn {
	return func(vm *refl.VM, call *refl.Call) (refl.Value, refl.Stop, error) {
		tag, err := Lang(call)
		if err != nil {
			return refl.Nil, refl.NoStop, err
		}
		return refl.String(mk(tag).String(call.ArgAt(0).AsString())), refl.NoStop, nil
	}
}

// format is a builtin.
//
// format formats a number with the digit grouping and decimal separator of
// the language given by lang, English by default. digits limits the number
// of fraction digits.
func format(vm *refl.VM, call *refl.Call) (refl.Value, refl.Stop, error) {
	x, err := call.NumberArgAt(0)
	if err != nil {
		return refl.Nil, refl.NoStop, fmt.Errorf("format: %w", err)
	}
	tag, err := Lang(call)
	if err != nil {
		return refl.Nil, refl.NoStop, fmt.Errorf("format: %w", err)
	}
	if tag == language.Und {
		tag = language.English
	}
	var opts []number.Option
	if d, ok := call.NamedArg("digits"); ok {
		n, ok := d.Num()
		if !ok || n < 0 {
			return refl.Nil, refl.NoStop, fmt.Errorf("format: digits must be a non-negative number, not %v", d)
		}
		opts = append(opts, number.MaxFractionDigits(int(n)))
	}
	p := message.NewPrinter(tag)
	return refl.String(p.Sprint(number.Decimal(x, opts...))), refl.NoStop, nil
}
