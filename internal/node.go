package internal

import (
	"fmt"
)

// Node is an element of a parsed program. Evaluating a node yields a value,
// a control flow signal, and an error; when err is non-nil the other results
// are meaningless. A Stop other than NoStop must be passed upward until a
// node which handles it.
type Node interface {
	Eval(vm *VM, scope *Scope) (result Value, control Stop, err error)
	Pos() Pos
}

// Target is something which holds variables: a Value or a Scope.
type Target interface {
	GetVar(key Value) (Value, error)
	SetVar(key, value Value) error
}

// member is implemented by nodes which read a field of another value. It
// evaluates the receiver and the key without reading the field, so that
// assignment and method calls can reuse it.
type member interface {
	Node
	resolve(vm *VM, scope *Scope) (recv, key Value, control Stop, err error)
}

// address finds the holder and key which an assignment to n modifies.
// Expressions other than variables and member accesses cannot be assigned.
func address(vm *VM, scope *Scope, n Node) (Target, Value, Stop, error) {
	switch n := n.(type) {
	case *Ident:
		return scope, String(n.Name), NoStop, nil
	case member:
		recv, key, stop, err := n.resolve(vm, scope)
		return recv, key, stop, err
	}
	return nil, Nil, NoStop, fmt.Errorf("cannot assign to %s: %w: %w", describe(n), ErrNotReferencable, ErrNoObjectContext)
}

// describe names a node's syntax for error messages.
func describe(n Node) string {
	switch n := n.(type) {
	case *Const:
		return "literal " + n.Value.String()
	case *Unary, *Binary, *Logic, *Elvis, *Comparison:
		return "operator result"
	case *CallExpr:
		return "call result"
	case *Assign, *IncDec:
		return "assignment result"
	}
	return "expression"
}

// Const is a literal.
type Const struct {
	At    Pos
	Value Value
}

func (n *Const) Pos() Pos { return n.At }

// Eval returns the literal value.
func (n *Const) Eval(vm *VM, scope *Scope) (Value, Stop, error) {
	return n.Value, NoStop, nil
}

// Ident is a variable read.
type Ident struct {
	At   Pos
	Name string
}

func (n *Ident) Pos() Pos { return n.At }

// Eval looks up the variable.
func (n *Ident) Eval(vm *VM, scope *Scope) (Value, Stop, error) {
	v, err := scope.Get(n.Name)
	return v, NoStop, err
}

// Member is a field access with a constant name, a.b.
type Member struct {
	At   Pos
	Left Node
	Name string
}

func (n *Member) Pos() Pos { return n.At }

func (n *Member) resolve(vm *VM, scope *Scope) (Value, Value, Stop, error) {
	recv, stop, err := n.Left.Eval(vm, scope)
	return recv, String(n.Name), stop, err
}

// Eval reads the field.
func (n *Member) Eval(vm *VM, scope *Scope) (Value, Stop, error) {
	return getMember(vm, scope, n)
}

// Index is a field access with a computed key, a[b].
type Index struct {
	At   Pos
	Left Node
	Key  Node
}

func (n *Index) Pos() Pos { return n.At }

func (n *Index) resolve(vm *VM, scope *Scope) (Value, Value, Stop, error) {
	recv, stop, err := n.Left.Eval(vm, scope)
	if err != nil || stop != NoStop {
		return recv, Nil, stop, err
	}
	key, stop, err := n.Key.Eval(vm, scope)
	return recv, key, stop, err
}

// Eval reads the field.
func (n *Index) Eval(vm *VM, scope *Scope) (Value, Stop, error) {
	return getMember(vm, scope, n)
}

func getMember(vm *VM, scope *Scope, n member) (Value, Stop, error) {
	recv, key, stop, err := n.resolve(vm, scope)
	if err != nil || stop != NoStop {
		return recv, stop, err
	}
	v, err := recv.GetVar(key)
	return v, NoStop, err
}

// Op is an operator.
type Op int

// Operators.
const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAnd
	OpOr
	OpNot
	OpElvis
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAssign
)

var opNames = [...]string{"+", "-", "*", "/", "%", "&", "|", "!", "??", "==", "!=", "<", "<=", ">", ">=", "="}

func (op Op) String() string {
	if op < OpAdd || op > OpAssign {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opNames[op]
}

// apply combines two evaluated values with a binary operator.
func (op Op) apply(l, r Value) (Value, error) {
	switch op {
	case OpAdd:
		return l.Add(r)
	case OpSub:
		return l.Subtract(r)
	case OpMul:
		return l.Multiply(r)
	case OpDiv:
		return l.Divide(r)
	case OpMod:
		return l.Mod(r)
	case OpAnd:
		return l.And(r), nil
	case OpOr:
		return l.Or(r), nil
	case OpAssign:
		return r, nil
	}
	panic(fmt.Sprintf("refl: %v is not a binary operator", op))
}

// Unary is a prefix operator: -x, +x, or !x.
type Unary struct {
	At Pos
	Op Op
	X  Node
}

func (n *Unary) Pos() Pos { return n.At }

// Eval applies the operator.
func (n *Unary) Eval(vm *VM, scope *Scope) (Value, Stop, error) {
	x, stop, err := n.X.Eval(vm, scope)
	if err != nil || stop != NoStop {
		return x, stop, err
	}
	switch n.Op {
	case OpSub:
		x, err = x.Negate()
		return x, NoStop, err
	case OpAdd:
		return Number(x.AsNumber()), NoStop, nil
	case OpNot:
		return x.Not(), NoStop, nil
	}
	panic(fmt.Sprintf("refl: %v is not a unary operator", n.Op))
}

// Binary is an arithmetic operator which evaluates both operands.
type Binary struct {
	At    Pos
	Op    Op
	Left  Node
	Right Node
}

func (n *Binary) Pos() Pos { return n.At }

// Eval evaluates the operands left to right and combines them.
func (n *Binary) Eval(vm *VM, scope *Scope) (Value, Stop, error) {
	l, stop, err := n.Left.Eval(vm, scope)
	if err != nil || stop != NoStop {
		return l, stop, err
	}
	r, stop, err := n.Right.Eval(vm, scope)
	if err != nil || stop != NoStop {
		return r, stop, err
	}
	v, err := n.Op.apply(l, r)
	return v, NoStop, err
}

// Logic is & or |. The right operand is evaluated only when the left does not
// decide the result.
type Logic struct {
	At    Pos
	Op    Op
	Left  Node
	Right Node
}

func (n *Logic) Pos() Pos { return n.At }

// Eval evaluates the operator with short-circuiting.
func (n *Logic) Eval(vm *VM, scope *Scope) (Value, Stop, error) {
	l, stop, err := n.Left.Eval(vm, scope)
	if err != nil || stop != NoStop {
		return l, stop, err
	}
	t := l.IsTruthy()
	if n.Op == OpAnd && !t {
		return False, NoStop, nil
	}
	if n.Op == OpOr && t {
		return True, NoStop, nil
	}
	r, stop, err := n.Right.Eval(vm, scope)
	if err != nil || stop != NoStop {
		return r, stop, err
	}
	return Bool(r.IsTruthy()), NoStop, nil
}

// Elvis is a ?? b, which is a unless a is nil.
type Elvis struct {
	At    Pos
	Left  Node
	Right Node
}

func (n *Elvis) Pos() Pos { return n.At }

// Eval evaluates b only if a is nil.
func (n *Elvis) Eval(vm *VM, scope *Scope) (Value, Stop, error) {
	l, stop, err := n.Left.Eval(vm, scope)
	if err != nil || stop != NoStop || !l.IsNil() {
		return l, stop, err
	}
	return n.Right.Eval(vm, scope)
}

// Comparison is a relational operator. Operands that cannot be compared make
// every comparison false, including !=.
type Comparison struct {
	At    Pos
	Op    Op
	Left  Node
	Right Node
}

func (n *Comparison) Pos() Pos { return n.At }

// Eval compares the operands.
func (n *Comparison) Eval(vm *VM, scope *Scope) (Value, Stop, error) {
	l, stop, err := n.Left.Eval(vm, scope)
	if err != nil || stop != NoStop {
		return l, stop, err
	}
	r, stop, err := n.Right.Eval(vm, scope)
	if err != nil || stop != NoStop {
		return r, stop, err
	}
	c, ok := l.Compare(r).Num()
	if !ok {
		return False, NoStop, nil
	}
	switch n.Op {
	case OpEq:
		return Bool(c == 0), NoStop, nil
	case OpNe:
		return Bool(c != 0), NoStop, nil
	case OpLt:
		return Bool(c < 0), NoStop, nil
	case OpLe:
		return Bool(c <= 0), NoStop, nil
	case OpGt:
		return Bool(c > 0), NoStop, nil
	case OpGe:
		return Bool(c >= 0), NoStop, nil
	}
	panic(fmt.Sprintf("refl: %v is not a comparison", n.Op))
}
