package refl

import (
	"github.com/rofleksey/refl/internal"
)

// Version is the interpreter version.
const Version = internal.Version

// VM is an object for processing refl programs.
type VM = internal.VM

// Value is a refl value: nil, a number, a string, an object, a function, or
// the refl sentinel.
type Value = internal.Value

// Kind is the type indicator of a Value.
type Kind = internal.Kind

// Object is the mutable record type of refl.
type Object = internal.Object

// Function is a callable refl value.
type Function = internal.Function

// Fn is the signature of Go functions callable from refl.
type Fn = internal.Fn

// Call holds the arguments of a function call.
type Call = internal.Call

// NamedArg is a named argument of a call.
type NamedArg = internal.NamedArg

// Scope is a lexical environment.
type Scope = internal.Scope

// Rendezvous is the handshake used by wait and notify.
type Rendezvous = internal.Rendezvous

// Stop represents the reason for flow control.
type Stop = internal.Stop

// Program is a parsed source.
type Program = internal.Program

// Node is an element of a parsed program.
type Node = internal.Node

// Pos is a location in source code.
type Pos = internal.Pos

// RuntimeError is an error raised during evaluation, with its position.
type RuntimeError = internal.RuntimeError

// ParseError is an error in source code.
type ParseError = internal.ParseError

// Tracer observes evaluation while a VM's Debug flag is set.
type Tracer = internal.Tracer

// TracerFunc adapts a function to Tracer.
type TracerFunc = internal.TracerFunc

// Value kinds.
const (
	NilKind      = internal.NilKind
	NumberKind   = internal.NumberKind
	StringKind   = internal.StringKind
	ObjectKind   = internal.ObjectKind
	FunctionKind = internal.FunctionKind
	ReflKind     = internal.ReflKind
)

// Control flow reasons.
const (
	NoStop       = internal.NoStop
	ContinueStop = internal.ContinueStop
	BreakStop    = internal.BreakStop
	ReturnStop   = internal.ReturnStop
	ExitStop     = internal.ExitStop
)

// Singletons and canonical booleans.
var (
	Nil   = internal.Nil
	Refl  = internal.Refl
	True  = internal.True
	False = internal.False
)

// Runtime error kinds, for use with errors.Is.
var (
	ErrVarUndefined         = internal.ErrVarUndefined
	ErrNotCallable          = internal.ErrNotCallable
	ErrNotReferencable      = internal.ErrNotReferencable
	ErrImmutable            = internal.ErrImmutable
	ErrIndexOutOfBounds     = internal.ErrIndexOutOfBounds
	ErrDivisionByZero       = internal.ErrDivisionByZero
	ErrNoObjectContext      = internal.ErrNoObjectContext
	ErrExecutionInterrupted = internal.ErrExecutionInterrupted
	ErrStackOverflow        = internal.ErrStackOverflow
)

// NewVM creates a new VM with the builtins and every registered extension.
// Import github.com/rofleksey/refl/coreext to register the standard library.
func NewVM() *VM {
	return internal.NewVM()
}

// Register registers a core extension. It must be called from an init func.
func Register(f func(*VM)) {
	internal.Register(f)
}

// NewScope creates a root scope with its own Rendezvous.
func NewScope() *Scope {
	return internal.NewScope()
}

// NewObject creates an empty object.
func NewObject() *Object {
	return internal.NewObject()
}

// NewFunction wraps a Go function as a refl function.
func NewFunction(name string, f Fn) *Function {
	return internal.NewFunction(name, f)
}

// Number creates a Number value.
func Number(n float64) Value {
	return internal.Number(n)
}

// String creates a String value.
func String(s string) Value {
	return internal.String(s)
}

// Bool converts a bool to the canonical 1 or 0.
func Bool(c bool) Value {
	return internal.Bool(c)
}

// ObjectValue wraps an Object as a Value.
func ObjectValue(o *Object) Value {
	return internal.ObjectValue(o)
}

// FunctionValue wraps a Function as a Value.
func FunctionValue(f *Function) Value {
	return internal.FunctionValue(f)
}

// IsIncomplete returns true if err is a parse error caused by source ending
// inside an unfinished construct.
func IsIncomplete(err error) bool {
	return internal.IsIncomplete(err)
}
