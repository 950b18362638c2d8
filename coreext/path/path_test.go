package path_test

import (
	"testing"

	"github.com/rofleksey/refl"
	_ "github.com/rofleksey/refl/coreext/path" // side effects
	"github.com/rofleksey/refl/testutils"
)

func TestPath(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Join":        {Source: `joinpath("a", "b/", "../c", "d")`, Pass: testutils.PassEqual(refl.String("a/c/d"))},
		"JoinNone":    {Source: `joinpath()`, Pass: testutils.PassEqual(refl.String(""))},
		"JoinBad":     {Source: `joinpath("a", 1)`, Pass: testutils.PassFailure()},
		"Abs":         {Source: `isabs(abspath("x"))`, Pass: testutils.PassEqual(refl.True)},
		"AbsBad":      {Source: `abspath()`, Pass: testutils.PassFailure()},
		"NotAbs":      {Source: `isabs("x/y")`, Pass: testutils.PassEqual(refl.False)},
		"SeparatorOK": {Source: `len(separator())`, Pass: testutils.PassEqual(refl.Number(1))},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestPath/"+name))
	}
}
