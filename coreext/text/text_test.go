package text_test

import (
	"testing"

	"github.com/rofleksey/refl"
	_ "github.com/rofleksey/refl/coreext/text" // side effects
	"github.com/rofleksey/refl/testutils"
)

func TestCase(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Upper":        {Source: `upper("hello")`, Pass: testutils.PassEqual(refl.String("HELLO"))},
		"Lower":        {Source: `lower("HeLLo")`, Pass: testutils.PassEqual(refl.String("hello"))},
		"Title":        {Source: `title("hello world")`, Pass: testutils.PassEqual(refl.String("Hello World"))},
		"UpperTurkish": {Source: `upper("i", lang ~ "tr")`, Pass: testutils.PassEqual(refl.String("İ"))},
		"UpperNumber":  {Source: `upper(12)`, Pass: testutils.PassEqual(refl.String("12"))},
		"BadLang":      {Source: `upper("x", lang ~ "not a language")`, Pass: testutils.PassFailure()},
		"LangType":     {Source: `lower("x", lang ~ 1)`, Pass: testutils.PassFailure()},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestCase/"+name))
	}
}

func TestFormat(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"English":   {Source: `format(1234567)`, Pass: testutils.PassEqual(refl.String("1,234,567"))},
		"German":    {Source: `format(1234567, lang ~ "de")`, Pass: testutils.PassEqual(refl.String("1.234.567"))},
		"Fraction":  {Source: `format(1234.5)`, Pass: testutils.PassEqual(refl.String("1,234.5"))},
		"Digits":    {Source: `format(2.71828, digits ~ 2)`, Pass: testutils.PassEqual(refl.String("2.72"))},
		"BadDigits": {Source: `format(1, digits ~ "x")`, Pass: testutils.PassFailure()},
		"NotNumber": {Source: `format("x")`, Pass: testutils.PassFailure()},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestFormat/"+name))
	}
}
