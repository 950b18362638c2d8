package date_test

import (
	"testing"
	"time"

	"github.com/rofleksey/refl"
	"github.com/rofleksey/refl/coreext/date"
	"github.com/rofleksey/refl/testutils"
)

func TestRegister(t *testing.T) {
	vm := testutils.TestingVM()
	for _, name := range []string{"time", "clock", "date", "parsedate"} {
		t.Run(name, func(t *testing.T) {
			v, ok := vm.Root.Lookup(name)
			if !ok || v.Kind() != refl.FunctionKind {
				t.Errorf("%s is %v, not a function", name, v)
			}
		})
	}
}

func TestSeconds(t *testing.T) {
	d := time.Date(2020, time.January, 2, 0, 0, 0, 0, time.UTC)
	s := date.Seconds(d)
	if s != 1577923200 {
		t.Errorf("wrong seconds for %v: want 1577923200, got %v", d, s)
	}
	if r := date.FromSeconds(s); !r.Equal(d) {
		t.Errorf("wrong time from %v: want %v, got %v", s, d, r)
	}
}

func TestDate(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Year":        {Source: `date("%Y", 0, utc ~ 1)`, Pass: testutils.PassEqual(refl.String("1970"))},
		"Format":      {Source: `date("%Y-%m-%d", 1577923200, utc ~ 1)`, Pass: testutils.PassEqual(refl.String("2020-01-02"))},
		"DefaultFmt":  {Source: `len(date())`, Pass: testutils.PassEqual(refl.Number(19))},
		"BadFormat":   {Source: `date(1)`, Pass: testutils.PassFailure()},
		"BadTime":     {Source: `date("%Y", "x")`, Pass: testutils.PassFailure()},
		"Parse":       {Source: `parsedate("2020-01-02", "%Y-%m-%d")`, Pass: testutils.PassEqual(refl.Number(1577923200))},
		"ParseNil":    {Source: `parsedate("yesterday", "%Y-%m-%d")`, Pass: testutils.PassIdentical(refl.Nil)},
		"ParseBadArg": {Source: `parsedate(1)`, Pass: testutils.PassFailure()},
		"Time":        {Source: `time() > 1577923200`, Pass: testutils.PassEqual(refl.True)},
		"Clock":       {Source: `clock() >= 0`, Pass: testutils.PassEqual(refl.True)},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestDate/"+name))
	}
}
