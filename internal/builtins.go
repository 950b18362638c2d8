package internal

import (
	"fmt"
	"math"
	"math/rand"
	"time"
	"unicode/utf8"
)

// initBuiltins binds the functions every VM has.
func (vm *VM) initBuiltins() {
	fns := map[string]Fn{
		"exit":   BuiltinExit,
		"wait":   BuiltinWait,
		"notify": BuiltinNotify,
		"sleep":  BuiltinSleep,
		"string": BuiltinString,
		"number": BuiltinNumber,
		"floor":  mathFn(math.Floor),
		"ceil":   mathFn(math.Ceil),
		"round":  mathFn(math.Round),
		"abs":    mathFn(math.Abs),
		"random": BuiltinRandom,
		"object": BuiltinObject,
		"len":    BuiltinLen,
		"type":   BuiltinType,
	}
	for name, f := range fns {
		vm.SetFunction(name, f)
	}
}

// BuiltinExit is a builtin.
//
// exit ends the program. Its argument, nil if absent, becomes the result of
// the program.
func BuiltinExit(vm *VM, call *Call) (Value, Stop, error) {
	return call.ArgAt(0), ExitStop, nil
}

// BuiltinWait is a builtin.
//
// wait blocks until another goroutine notifies the VM, then returns the value
// it sent. If the execution is cancelled first, wait raises an error.
func BuiltinWait(vm *VM, call *Call) (Value, Stop, error) {
	v, err := call.Sender.Channel().Read(vm.Context())
	return v, NoStop, err
}

// BuiltinNotify is a builtin.
//
// notify hands its argument to a program blocked in wait on the same root
// scope. It never blocks; the result is 1 if a waiter received the value and
// 0 if there was none and the value was dropped.
func BuiltinNotify(vm *VM, call *Call) (Value, Stop, error) {
	return Bool(call.Sender.Channel().Write(call.ArgAt(0))), NoStop, nil
}

// BuiltinSleep is a builtin.
//
// sleep pauses for the given number of milliseconds.
func BuiltinSleep(vm *VM, call *Call) (Value, Stop, error) {
	ms, err := call.NumberArgAt(0)
	if err != nil {
		return Nil, NoStop, fmt.Errorf("sleep: %w", err)
	}
	t := time.NewTimer(time.Duration(ms * float64(time.Millisecond)))
	defer t.Stop()
	select {
	case <-t.C:
		return Refl, NoStop, nil
	case <-vm.Context().Done():
		return Nil, NoStop, fmt.Errorf("sleep: %w: %w", ErrExecutionInterrupted, vm.Context().Err())
	}
}

// BuiltinString is a builtin.
//
// string converts its argument to a string. With no argument, the result is
// the empty string.
func BuiltinString(vm *VM, call *Call) (Value, Stop, error) {
	if len(call.Args) == 0 {
		return String(""), NoStop, nil
	}
	return String(call.Args[0].AsString()), NoStop, nil
}

// BuiltinNumber is a builtin.
//
// number converts its argument to a number. With no argument, the result is
// 0.
func BuiltinNumber(vm *VM, call *Call) (Value, Stop, error) {
	return Number(call.ArgAt(0).AsNumber()), NoStop, nil
}

// mathFn creates a builtin applying f to a single Number. With no argument,
// the result is nil.
func mathFn(f func(float64) float64) Fn {
	return func(vm *VM, call *Call) (Value, Stop, error) {
		if len(call.Args) == 0 {
			return Nil, NoStop, nil
		}
		x, err := call.NumberArgAt(0)
		if err != nil {
			return Nil, NoStop, err
		}
		return Number(f(x)), NoStop, nil
	}
}

// BuiltinRandom is a builtin.
//
// random returns a uniformly distributed number in [0, 1).
func BuiltinRandom(vm *VM, call *Call) (Value, Stop, error) {
	return Number(rand.Float64()), NoStop, nil
}

// BuiltinObject is a builtin.
//
// object creates an empty object. Named arguments become its fields.
func BuiltinObject(vm *VM, call *Call) (Value, Stop, error) {
	obj := NewObject()
	for _, a := range call.Named {
		obj.Set(String(a.Name), a.Value)
	}
	return ObjectValue(obj), NoStop, nil
}

// BuiltinLen is a builtin.
//
// len returns the number of characters in a string or fields in an object.
// Other values have length 0.
func BuiltinLen(vm *VM, call *Call) (Value, Stop, error) {
	v := call.ArgAt(0)
	switch v.Kind() {
	case StringKind:
		s, _ := v.Str()
		return Number(float64(utf8.RuneCountInString(s))), NoStop, nil
	case ObjectKind:
		return Number(float64(v.Object().Len())), NoStop, nil
	}
	return Number(0), NoStop, nil
}

// BuiltinType is a builtin.
//
// type returns the name of its argument's kind.
func BuiltinType(vm *VM, call *Call) (Value, Stop, error) {
	return String(call.ArgAt(0).Kind().String()), NoStop, nil
}
