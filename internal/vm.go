package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Version is the interpreter version.
const Version = "1"

// DefaultMaxDepth is the default limit on nested calls to refl functions.
const DefaultMaxDepth = 10000

// VM is an object for processing refl programs. A VM runs one program at a
// time; concurrent calls to Execute on the same VM are not allowed. Notify is
// the exception and may be called from any goroutine.
type VM struct {
	// Root is the default scope in which programs execute. It is seeded with
	// the builtins and all registered extensions.
	Root *Scope

	// Stdout and Stdin are the streams used by input and output functions.
	Stdout io.Writer
	Stdin  io.Reader

	// StartTime is the time at which VM initialization began.
	StartTime time.Time

	// MaxDepth is the limit on nested calls to refl functions. Zero means no
	// limit.
	MaxDepth int

	// Debug is an atomic flag controlling whether each statement is reported
	// to Tracer before it is evaluated.
	Debug uint32
	// Tracer receives statements while Debug is set.
	Tracer Tracer

	// ctx is the context of the current execution.
	ctx context.Context
	// depth is the current number of nested calls.
	depth int
}

// NewVM prepares a new VM to interpret refl code.
func NewVM() *VM {
	haveVM = true

	vm := VM{
		Root:      NewScope(),
		Stdout:    os.Stdout,
		Stdin:     os.Stdin,
		StartTime: time.Now(),
		MaxDepth:  DefaultMaxDepth,
		ctx:       context.Background(),
	}
	vm.initBuiltins()
	for _, ext := range coreExt {
		ext(&vm)
	}
	return &vm
}

// Register registers a core extension. Each function is called in the order it
// is registered; extensions that depend on other extensions need only import
// them. Register should be called from within init funcs. Panics if NewVM has
// been called.
func Register(f func(*VM)) {
	if haveVM {
		panic("refl/internal: Register must be called before any VM is created")
	}
	coreExt = append(coreExt, f)
}

// coreExt is a list of core extensions that have been registered.
var coreExt = make([]func(*VM), 0, 4)

// haveVM becomes true once NewVM has been called.
var haveVM = false

// SetFunction binds a Go function in the VM's root scope.
func (vm *VM) SetFunction(name string, f Fn) {
	vm.Root.Define(name, FunctionValue(NewFunction(name, f)))
}

// NewRoot creates a root scope holding copies of the bindings of the VM's
// root scope and its own Rendezvous. Programs executed in it cannot change
// the VM's root. Notify does not reach it; write to its Channel instead.
func (vm *VM) NewRoot() *Scope {
	s := NewScope()
	for k, v := range vm.Root.vars {
		s.vars[k] = v
	}
	return s
}

// Context returns the context of the current execution. Functions which block
// should stop when it is done.
func (vm *VM) Context() context.Context {
	return vm.ctx
}

// interrupted returns an error if the current execution's context is done.
func (vm *VM) interrupted() error {
	if err := vm.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutionInterrupted, err)
	}
	return nil
}

// Notify delivers v to a goroutine blocked in wait on the VM's root scope.
// If none is waiting, v is dropped and the result is false.
func (vm *VM) Notify(v Value) bool {
	return vm.Root.Channel().Write(v)
}

// Program is a parsed source.
type Program struct {
	Label string
	Body  *Block
}

// Execute evaluates a program in scope. The result is the value of the last
// top-level statement, or the value passed to exit or returned at top level.
// Evaluation stops at the first error, which is a *RuntimeError locating the
// statement that raised it. Statements already evaluated keep their effects.
func (vm *VM) Execute(ctx context.Context, prog *Program, scope *Scope) (Value, error) {
	prev := vm.ctx
	vm.ctx = ctx
	defer func() { vm.ctx = prev }()
	result := Nil
	for _, s := range prog.Body.Stmts {
		r, stop, err := vm.step(s, scope)
		if err != nil {
			return Nil, err
		}
		if stop != NoStop {
			return r, nil
		}
		result = r
	}
	return result, nil
}

// ExecuteEach evaluates a program in scope one top-level statement at a time,
// passing each statement's result or error to report. An error ends only the
// statement which raised it. Exit, a top-level return, and interruption end
// the program; the error result is non-nil only for interruption.
func (vm *VM) ExecuteEach(ctx context.Context, prog *Program, scope *Scope, report func(Value, error)) error {
	prev := vm.ctx
	vm.ctx = ctx
	defer func() { vm.ctx = prev }()
	for _, s := range prog.Body.Stmts {
		r, stop, err := vm.step(s, scope)
		if err != nil {
			if errors.Is(err, ErrExecutionInterrupted) {
				return err
			}
			report(Nil, err)
			continue
		}
		report(r, nil)
		if stop != NoStop {
			return nil
		}
	}
	return nil
}

// step evaluates one top-level statement. The resulting Stop is NoStop,
// ReturnStop, or ExitStop.
func (vm *VM) step(s Node, scope *Scope) (Value, Stop, error) {
	if err := vm.interrupted(); err != nil {
		return Nil, NoStop, atPos(err, s.Pos())
	}
	vm.trace(s, scope)
	r, stop, err := s.Eval(vm, scope)
	if err != nil {
		return Nil, NoStop, atPos(err, s.Pos())
	}
	switch stop {
	case NoStop, ReturnStop, ExitStop:
		return r, stop, nil
	}
	return Nil, NoStop, atPos(fmt.Errorf("unexpected %w outside of a loop", stop.Err()), s.Pos())
}

// DoString parses and executes src in the VM's root scope.
func (vm *VM) DoString(ctx context.Context, src, label string) (Value, error) {
	return vm.DoReader(ctx, strings.NewReader(src), label)
}

// DoReader parses and executes a source in the VM's root scope.
func (vm *VM) DoReader(ctx context.Context, src io.Reader, label string) (Value, error) {
	prog, err := vm.Parse(src, label)
	if err != nil {
		return Nil, err
	}
	return vm.Execute(ctx, prog, vm.Root)
}

// MustDoString parses and executes src in the VM's root scope and panics if
// either fails.
func (vm *VM) MustDoString(src string) Value {
	v, err := vm.DoString(context.Background(), src, "<string>")
	if err != nil {
		panic(err)
	}
	return v
}
