package internal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the type indicator of a Value.
type Kind int

// Value kinds. The set is closed; every operator switches over all of them.
const (
	NilKind Kind = iota
	NumberKind
	StringKind
	ObjectKind
	FunctionKind
	// ReflKind is the kind of the neutral result of operators which have no
	// meaning for their operands.
	ReflKind
)

var kindNames = [...]string{"nil", "number", "string", "object", "function", "refl"}

// String returns the name of the kind as scripts see it.
func (k Kind) String() string {
	if k < NilKind || k > ReflKind {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Value is a refl value. The zero Value is nil.
//
// Values are comparable with == and usable as map keys. Two Numbers are equal
// when their floats are, two Strings when their text is, and Objects and
// Functions by identity.
type Value struct {
	kind Kind
	num  float64
	str  string
	obj  *Object
	fn   *Function
}

// Singletons and canonical booleans.
var (
	Nil   = Value{}
	Refl  = Value{kind: ReflKind}
	True  = Number(1)
	False = Number(0)
)

// Number creates a Number value.
func Number(n float64) Value {
	return Value{kind: NumberKind, num: n}
}

// String creates a String value.
func String(s string) Value {
	return Value{kind: StringKind, str: s}
}

// Bool converts a Go bool to the canonical 1 or 0.
func Bool(c bool) Value {
	if c {
		return True
	}
	return False
}

// ObjectValue wraps an Object as a Value. A nil Object gives Nil.
func ObjectValue(o *Object) Value {
	if o == nil {
		return Nil
	}
	return Value{kind: ObjectKind, obj: o}
}

// FunctionValue wraps a Function as a Value. A nil Function gives Nil.
func FunctionValue(f *Function) Value {
	if f == nil {
		return Nil
	}
	return Value{kind: FunctionKind, fn: f}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNil returns true if v is nil.
func (v Value) IsNil() bool {
	return v.kind == NilKind
}

// Num returns the float of a Number. ok is false for other kinds.
func (v Value) Num() (n float64, ok bool) {
	return v.num, v.kind == NumberKind
}

// Str returns the text of a String. ok is false for other kinds.
func (v Value) Str() (s string, ok bool) {
	return v.str, v.kind == StringKind
}

// Object returns the Object of an Object value, or nil.
func (v Value) Object() *Object {
	return v.obj
}

// Function returns the Function of a Function value, or nil.
func (v Value) Function() *Function {
	return v.fn
}

// IsTruthy reports whether the value counts as true in conditions.
func (v Value) IsTruthy() bool {
	switch v.kind {
	case NumberKind:
		return v.num > 0
	case StringKind:
		return v.str != ""
	case ObjectKind:
		return v.obj.Len() > 0
	case FunctionKind:
		return true
	default:
		return false
	}
}

// AsNumber coerces the value to a float. Strings which do not parse as
// numbers fall back to their truthiness.
func (v Value) AsNumber() float64 {
	switch v.kind {
	case NumberKind:
		return v.num
	case StringKind:
		if n, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64); err == nil {
			return n
		}
	case NilKind, ReflKind:
		return 0
	}
	if v.IsTruthy() {
		return 1
	}
	return 0
}

// AsString coerces the value to text.
func (v Value) AsString() string {
	switch v.kind {
	case NumberKind:
		return formatNumber(v.num)
	case StringKind:
		return v.str
	case ObjectKind:
		return v.obj.String()
	case FunctionKind:
		return "function " + v.fn.Name
	case ReflKind:
		return "refl"
	default:
		return "nil"
	}
}

// String implements fmt.Stringer. Strings are quoted so that they can be told
// apart from other kinds, e.g. in REPL output.
func (v Value) String() string {
	if v.kind == StringKind {
		return strconv.Quote(v.str)
	}
	return v.AsString()
}

func formatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "+Inf"
	case math.IsInf(n, -1):
		return "-Inf"
	case n == math.Trunc(n) && math.Abs(n) < 1e21:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
