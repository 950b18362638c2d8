package internal

import (
	"errors"
	"math"
	"testing"
)

// TestTruthiness tests which values count as true.
func TestTruthiness(t *testing.T) {
	obj := NewObject()
	obj.Set(String("x"), Number(1))
	cases := map[string]struct {
		v    Value
		want bool
	}{
		"Nil":         {Nil, false},
		"Refl":        {Refl, false},
		"Zero":        {Number(0), false},
		"Negative":    {Number(-1), false},
		"Positive":    {Number(0.5), true},
		"NaN":         {Number(math.NaN()), false},
		"EmptyString": {String(""), false},
		"String":      {String("0"), true},
		"EmptyObject": {ObjectValue(NewObject()), false},
		"Object":      {ObjectValue(obj), true},
		"Function":    {FunctionValue(NewFunction("f", BuiltinType)), true},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if c.v.IsTruthy() != c.want {
				t.Errorf("%v has wrong truthiness: want %v", c.v, c.want)
			}
			// Double negation preserves truthiness.
			if c.v.Not().Not().IsTruthy() != c.want {
				t.Errorf("!!%v has wrong truthiness: want %v", c.v, c.want)
			}
		})
	}
}

// TestCoercion tests AsNumber and AsString.
func TestCoercion(t *testing.T) {
	cases := map[string]struct {
		v   Value
		num float64
		str string
	}{
		"Nil":          {Nil, 0, "nil"},
		"Refl":         {Refl, 0, "refl"},
		"Integer":      {Number(42), 42, "42"},
		"Negative":     {Number(-3), -3, "-3"},
		"Fraction":     {Number(2.5), 2.5, "2.5"},
		"Million":      {Number(1e6), 1e6, "1000000"},
		"Huge":         {Number(1e21), 1e21, "1e+21"},
		"Small":        {Number(1e-7), 1e-7, "1e-07"},
		"Inf":          {Number(math.Inf(1)), math.Inf(1), "+Inf"},
		"NegInf":       {Number(math.Inf(-1)), math.Inf(-1), "-Inf"},
		"NumberString": {String(" 12.5 "), 12.5, " 12.5 "},
		"WordString":   {String("abc"), 1, "abc"},
		"EmptyString":  {String(""), 0, ""},
		"EmptyObject":  {ObjectValue(NewObject()), 0, "{}"},
		"Function":     {FunctionValue(NewFunction("f", BuiltinType)), 1, "function f"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if n := c.v.AsNumber(); n != c.num {
				t.Errorf("wrong number for %v: want %v, got %v", c.v, c.num, n)
			}
			if s := c.v.AsString(); s != c.str {
				t.Errorf("wrong string for %v: want %q, got %q", c.v, c.str, s)
			}
		})
	}
}

// TestArithmetic tests the arithmetic operators on every combination that
// matters.
func TestArithmetic(t *testing.T) {
	type binop func(Value, Value) (Value, error)
	add := Value.Add
	sub := Value.Subtract
	mul := Value.Multiply
	div := Value.Divide
	mod := Value.Mod
	cases := map[string]struct {
		op   binop
		l, r Value
		want Value
		err  error
	}{
		"AddNumbers":       {add, Number(1), Number(2), Number(3), nil},
		"AddStrings":       {add, String("a"), String("b"), String("ab"), nil},
		"AddStringNumber":  {add, String("a"), Number(1), String("a1"), nil},
		"AddStringNil":     {add, String("a"), Nil, String("anil"), nil},
		"AddNumberString":  {add, Number(1), String("a"), Refl, nil},
		"AddNils":          {add, Nil, Nil, Refl, nil},
		"SubNumbers":       {sub, Number(5), Number(7), Number(-2), nil},
		"SubStrings":       {sub, String("a"), String("b"), Refl, nil},
		"MulNumbers":       {mul, Number(6), Number(7), Number(42), nil},
		"MulStringNumber":  {mul, String("a"), Number(3), Refl, nil},
		"DivNumbers":       {div, Number(7), Number(2), Number(3.5), nil},
		"DivZero":          {div, Number(1), Number(0), Nil, ErrDivisionByZero},
		"DivNil":           {div, Number(1), Nil, Nil, ErrDivisionByZero},
		"DivEmptyString":   {div, Number(1), String(""), Nil, ErrDivisionByZero},
		"DivNumericString": {div, Number(1), String("2"), Refl, nil},
		"DivString":        {div, String("a"), Number(0), Refl, nil},
		"ModNumbers":       {mod, Number(7), Number(3), Number(1), nil},
		"ModNegative":      {mod, Number(-7), Number(3), Number(-1), nil},
		"ModFraction":      {mod, Number(5.5), Number(2), Number(1.5), nil},
		"ModZero":          {mod, Number(1), Number(0), Nil, ErrDivisionByZero},
		"ModNil":           {mod, Nil, Number(2), Refl, nil},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := c.op(c.l, c.r)
			if !errors.Is(err, c.err) {
				t.Errorf("wrong error: want %v, got %v", c.err, err)
			}
			if c.err == nil && r != c.want {
				t.Errorf("wrong result: want %v, got %v", c.want, r)
			}
		})
	}
}

// TestDivideRoundTrip tests that division undoes multiplication.
func TestDivideRoundTrip(t *testing.T) {
	nums := []float64{1, -1, 3, 0.1, 1e10, -7.25, 1e-10}
	for _, a := range nums {
		for _, b := range nums {
			q, err := Number(a).Divide(Number(b))
			if err != nil {
				t.Fatal(err)
			}
			p, _ := q.Multiply(Number(b))
			n, _ := p.Num()
			if math.Abs(n-a) > 1e-9*math.Max(1, math.Abs(a)) {
				t.Errorf("(%v/%v)*%v = %v", a, b, b, n)
			}
		}
	}
}

// TestLogic tests the non-short-circuiting logical operators.
func TestLogic(t *testing.T) {
	cases := []struct {
		l, r    Value
		and, or Value
	}{
		{Number(1), Number(1), True, True},
		{Number(1), Number(0), False, True},
		{Nil, String("x"), False, True},
		{String(""), Refl, False, False},
	}
	for _, c := range cases {
		if r := c.l.And(c.r); r != c.and {
			t.Errorf("%v & %v: want %v, got %v", c.l, c.r, c.and, r)
		}
		if r := c.l.Or(c.r); r != c.or {
			t.Errorf("%v | %v: want %v, got %v", c.l, c.r, c.or, r)
		}
	}
}

// TestCompare tests ordering and equality across kinds.
func TestCompare(t *testing.T) {
	f := FunctionValue(NewFunction("f", BuiltinType))
	g := FunctionValue(NewFunction("f", BuiltinType))
	a, b := NewObject(), NewObject()
	a.Set(String("x"), Number(1))
	b.Set(String("x"), Number(1))
	c := NewObject()
	c.Set(String("x"), Number(2))
	cases := map[string]struct {
		l, r Value
		want Value
	}{
		"NumLess":      {Number(1), Number(2), Number(-1)},
		"NumGreater":   {Number(2), Number(1), Number(1)},
		"NumEqual":     {Number(2), Number(2), Number(0)},
		"NaN":          {Number(math.NaN()), Number(1), Nil},
		"StrLess":      {String("a"), String("b"), Number(-1)},
		"StrEqual":     {String("a"), String("a"), Number(0)},
		"Mixed":        {Number(1), String("1"), Nil},
		"NilNil":       {Nil, Nil, Number(0)},
		"ReflRefl":     {Refl, Refl, Number(0)},
		"NilRefl":      {Nil, Refl, Nil},
		"SameFunction": {f, f, Number(0)},
		"DiffFunction": {f, g, Number(1)},
		"EqualObjects": {ObjectValue(a), ObjectValue(b), Number(0)},
		"DiffObjects":  {ObjectValue(a), ObjectValue(c), Number(1)},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if r := c.l.Compare(c.r); r != c.want {
				t.Errorf("compare %v with %v: want %v, got %v", c.l, c.r, c.want, r)
			}
		})
	}
}

// TestAccess tests GetVar and SetVar on each kind.
func TestAccess(t *testing.T) {
	obj := ObjectValue(NewObject())
	if err := obj.SetVar(String("k"), Number(1)); err != nil {
		t.Fatal(err)
	}
	if v, err := obj.GetVar(String("k")); err != nil || v != Number(1) {
		t.Errorf("object field: got %v, %v", v, err)
	}
	if v, err := obj.GetVar(String("missing")); err != nil || v != Nil {
		t.Errorf("missing object field: got %v, %v", v, err)
	}
	s := String("héllo")
	if v, err := s.GetVar(Number(1)); err != nil || v != String("é") {
		t.Errorf("string index: got %v, %v", v, err)
	}
	if v, err := s.GetVar(String("x")); err != nil || v != Nil {
		t.Errorf("string non-number index: got %v, %v", v, err)
	}
	if v, err := s.GetVar(Number(-0.5)); err != nil || v != String("h") {
		t.Errorf("string index -0.5: got %v, %v", v, err)
	}
	if v, err := s.GetVar(Number(4.9)); err != nil || v != String("o") {
		t.Errorf("string index 4.9: got %v, %v", v, err)
	}
	for _, k := range []float64{-1, 5, math.NaN(), math.Inf(1)} {
		if _, err := s.GetVar(Number(k)); !errors.Is(err, ErrIndexOutOfBounds) {
			t.Errorf("string index %v: wrong error %v", k, err)
		}
	}
	if err := s.SetVar(Number(0), String("x")); !errors.Is(err, ErrImmutable) {
		t.Errorf("string set: wrong error %v", err)
	}
	for _, v := range []Value{Nil, Number(1), Refl, FunctionValue(NewFunction("f", BuiltinType))} {
		if _, err := v.GetVar(String("k")); !errors.Is(err, ErrNotReferencable) {
			t.Errorf("get on %v: wrong error %v", v, err)
		}
		if err := v.SetVar(String("k"), Nil); !errors.Is(err, ErrNotReferencable) {
			t.Errorf("set on %v: wrong error %v", v, err)
		}
	}
	if _, _, err := Number(1).Call(nil, &Call{}); !errors.Is(err, ErrNotCallable) {
		t.Errorf("call on number: wrong error %v", err)
	}
}

// TestValueKey tests that values work as map keys.
func TestValueKey(t *testing.T) {
	m := map[Value]int{}
	m[Number(1)] = 1
	m[String("1")] = 2
	m[Nil] = 3
	if m[Number(1)] != 1 || m[String("1")] != 2 || m[Nil] != 3 || len(m) != 3 {
		t.Errorf("wrong map %v", m)
	}
	if Number(1) != True || Bool(false) != Number(0) {
		t.Error("booleans are not canonical numbers")
	}
}
