package internal

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// An Fn is a Go function which can be called from refl code.
type Fn func(vm *VM, call *Call) (Value, Stop, error)

// Call contains the arguments of a function call.
type Call struct {
	// Sender is the scope from which the call is made.
	Sender *Scope
	// This is the receiver of a method-style call, or nil.
	This Value
	// Args are the positional arguments.
	Args []Value
	// Named are the named arguments in source order.
	Named []NamedArg
}

// NamedArg is a named argument, as in f(x ~ 1).
type NamedArg struct {
	Name  string
	Value Value
}

// ArgAt returns the nth positional argument, or nil if there is none.
func (c *Call) ArgAt(n int) Value {
	if n < 0 || n >= len(c.Args) {
		return Nil
	}
	return c.Args[n]
}

// NamedArg returns the named argument with the given name. If it was passed
// more than once, the last value wins.
func (c *Call) NamedArg(name string) (Value, bool) {
	for i := len(c.Named) - 1; i >= 0; i-- {
		if c.Named[i].Name == name {
			return c.Named[i].Value, true
		}
	}
	return Nil, false
}

// NumberArgAt returns the nth positional argument as a float. If the
// argument is not a Number, the result is an error.
func (c *Call) NumberArgAt(n int) (float64, error) {
	v := c.ArgAt(n)
	if x, ok := v.Num(); ok {
		return x, nil
	}
	return 0, fmt.Errorf("argument %d must be a number, not %s", n, v.Kind())
}

// Function is a callable refl value. It is either a Go function or a closure
// over the scope in which it was declared.
type Function struct {
	// Name is the name the function was declared or registered with.
	Name string

	native  Fn
	body    Node
	closure *Scope
}

// NewFunction creates a Function wrapping a Go function. If name is empty,
// the name of the Go function is used.
func NewFunction(name string, f Fn) *Function {
	if name == "" {
		u := reflect.ValueOf(f).Pointer()
		name = runtime.FuncForPC(u).Name()
		name = name[strings.LastIndexByte(name, '.')+1:]
	}
	return &Function{Name: name, native: f}
}

// NewClosure creates a Function which evaluates body in a copy of scope.
func NewClosure(name string, body Node, scope *Scope) *Function {
	return &Function{Name: name, body: body, closure: scope}
}

// IsNative returns whether the function is implemented in Go.
func (f *Function) IsNative() bool {
	return f.native != nil
}

// Call calls the function. A return inside a closure ends the call with the
// returned value; exits continue to propagate.
func (f *Function) Call(vm *VM, call *Call) (Value, Stop, error) {
	if f.native != nil {
		return f.native(vm, call)
	}
	if vm.depth >= vm.MaxDepth && vm.MaxDepth > 0 {
		return Nil, NoStop, fmt.Errorf("calling %s at depth %d: %w", f.Name, vm.depth, ErrStackOverflow)
	}
	vm.depth++
	defer func() { vm.depth-- }()
	frame := f.closure.ShallowClone()
	frame.Define("args", ObjectValue(argsObject(call)))
	frame.Define("it", call.ArgAt(0))
	frame.Define("this", call.This)
	result, stop, err := f.body.Eval(vm, frame)
	if stop == ReturnStop {
		stop = NoStop
	}
	return result, stop, err
}

// argsObject creates the args object of a call: positional arguments at
// 0..n-1, named arguments at their names, and length.
func argsObject(call *Call) *Object {
	args := NewObject()
	for i, v := range call.Args {
		args.Set(Number(float64(i)), v)
	}
	for _, a := range call.Named {
		args.Set(String(a.Name), a.Value)
	}
	args.Set(String("length"), Number(float64(len(call.Args))))
	return args
}
