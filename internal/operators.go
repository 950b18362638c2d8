package internal

import (
	"fmt"
	"math"
	"strings"
)

// Add returns v + w. Strings concatenate with anything; Numbers add to
// Numbers.
func (v Value) Add(w Value) (Value, error) {
	switch {
	case v.kind == StringKind:
		return String(v.str + w.AsString()), nil
	case v.kind == NumberKind && w.kind == NumberKind:
		return Number(v.num + w.num), nil
	}
	return Refl, nil
}

// Subtract returns v - w.
func (v Value) Subtract(w Value) (Value, error) {
	if v.kind == NumberKind && w.kind == NumberKind {
		return Number(v.num - w.num), nil
	}
	return Refl, nil
}

// Multiply returns v * w.
func (v Value) Multiply(w Value) (Value, error) {
	if v.kind == NumberKind && w.kind == NumberKind {
		return Number(v.num * w.num), nil
	}
	return Refl, nil
}

// Divide returns v / w. A Number divided by anything that coerces to zero
// raises ErrDivisionByZero.
func (v Value) Divide(w Value) (Value, error) {
	if v.kind != NumberKind {
		return Refl, nil
	}
	if w.AsNumber() == 0 {
		return Nil, fmt.Errorf("%s / %s: %w", v, w, ErrDivisionByZero)
	}
	if w.kind != NumberKind {
		return Refl, nil
	}
	return Number(v.num / w.num), nil
}

// Mod returns the floating-point remainder of v / w, with the sign of v.
func (v Value) Mod(w Value) (Value, error) {
	if v.kind != NumberKind {
		return Refl, nil
	}
	if w.AsNumber() == 0 {
		return Nil, fmt.Errorf("%s %% %s: %w", v, w, ErrDivisionByZero)
	}
	if w.kind != NumberKind {
		return Refl, nil
	}
	return Number(math.Mod(v.num, w.num)), nil
}

// And combines two evaluated values by truthiness.
func (v Value) And(w Value) Value {
	return Bool(v.IsTruthy() && w.IsTruthy())
}

// Or combines two evaluated values by truthiness.
func (v Value) Or(w Value) Value {
	return Bool(v.IsTruthy() || w.IsTruthy())
}

// Not returns the complement of v's truthiness.
func (v Value) Not() Value {
	return Bool(!v.IsTruthy())
}

// Negate returns -v, computed as v * -1.
func (v Value) Negate() (Value, error) {
	return v.Multiply(Number(-1))
}

// Compare orders v against w. The result is Nil when the kinds differ.
// Otherwise it is a Number which is negative, zero, or positive as v is less
// than, equal to, or greater than w. Objects, functions, and the singletons
// only distinguish equal (0) from unequal (1).
func (v Value) Compare(w Value) Value {
	if v.kind != w.kind {
		return Nil
	}
	switch v.kind {
	case NumberKind:
		switch {
		case v.num < w.num:
			return Number(-1)
		case v.num > w.num:
			return Number(1)
		case v.num == w.num:
			return Number(0)
		}
		// NaN is unordered.
		return Nil
	case StringKind:
		return Number(float64(strings.Compare(v.str, w.str)))
	case ObjectKind:
		return Bool(!v.obj.Equal(w.obj))
	case FunctionKind:
		return Bool(v.fn != w.fn)
	default:
		return Number(0)
	}
}

// Call calls v. Only Functions are callable.
func (v Value) Call(vm *VM, call *Call) (Value, Stop, error) {
	if v.kind != FunctionKind {
		return Nil, NoStop, fmt.Errorf("%s is a %s: %w", v, v.kind, ErrNotCallable)
	}
	return v.fn.Call(vm, call)
}

// GetVar reads a field of v. Missing fields of Objects and non-Number indices
// of Strings are nil. String indices truncate toward zero.
func (v Value) GetVar(key Value) (Value, error) {
	switch v.kind {
	case ObjectKind:
		r, _ := v.obj.Get(key)
		return r, nil
	case StringKind:
		if key.kind != NumberKind {
			return Nil, nil
		}
		s := []rune(v.str)
		i := math.Trunc(key.num)
		if !(i >= 0 && i < float64(len(s))) {
			return Nil, fmt.Errorf("%s[%s]: length is %d: %w", v, key, len(s), ErrIndexOutOfBounds)
		}
		return String(string(s[int(i)])), nil
	}
	return Nil, fmt.Errorf("cannot get %s of %s: %w", key, v.kind, ErrNotReferencable)
}

// SetVar sets a field of v. Only Objects are mutable.
func (v Value) SetVar(key, value Value) error {
	switch v.kind {
	case ObjectKind:
		v.obj.Set(key, value)
		return nil
	case StringKind:
		return fmt.Errorf("cannot set %s of %s: %w", key, v, ErrImmutable)
	}
	return fmt.Errorf("cannot set %s of %s: %w", key, v.kind, ErrNotReferencable)
}
