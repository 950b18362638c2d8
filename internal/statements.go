package internal

// Assign is an assignment, either simple (Op is OpAssign) or compound, e.g.
// x += 1 with Op OpAdd.
type Assign struct {
	At     Pos
	Op     Op
	Target Node
	X      Node
}

func (n *Assign) Pos() Pos { return n.At }

// Eval assigns and returns the new value.
func (n *Assign) Eval(vm *VM, scope *Scope) (Value, Stop, error) {
	target, key, stop, err := address(vm, scope, n.Target)
	if err != nil || stop != NoStop {
		return Nil, stop, err
	}
	x, stop, err := n.X.Eval(vm, scope)
	if err != nil || stop != NoStop {
		return x, stop, err
	}
	if n.Op != OpAssign {
		old, err := target.GetVar(key)
		if err != nil {
			return Nil, NoStop, err
		}
		if x, err = n.Op.apply(old, x); err != nil {
			return Nil, NoStop, err
		}
	}
	return x, NoStop, target.SetVar(key, x)
}

// IncDec is ++ or --, before or after its operand.
type IncDec struct {
	At     Pos
	Target Node
	// Dec is true for --.
	Dec bool
	// Postfix is true when the operator follows the operand. A postfix
	// operator evaluates to the old value.
	Postfix bool
}

func (n *IncDec) Pos() Pos { return n.At }

// Eval updates the target.
func (n *IncDec) Eval(vm *VM, scope *Scope) (Value, Stop, error) {
	target, key, stop, err := address(vm, scope, n.Target)
	if err != nil || stop != NoStop {
		return Nil, stop, err
	}
	old, err := target.GetVar(key)
	if err != nil {
		return Nil, NoStop, err
	}
	var r Value
	if n.Dec {
		r, err = old.Subtract(Number(1))
	} else {
		r, err = old.Add(Number(1))
	}
	if err != nil {
		return Nil, NoStop, err
	}
	if err := target.SetVar(key, r); err != nil {
		return Nil, NoStop, err
	}
	if n.Postfix {
		return old, NoStop, nil
	}
	return r, NoStop, nil
}

// Branch is one arm of an If. A nil Cond is the else arm.
type Branch struct {
	Cond Node
	Body *Block
}

// If is an if/elif/else chain.
type If struct {
	At       Pos
	Branches []Branch
}

func (n *If) Pos() Pos { return n.At }

// Eval runs the body of the first branch whose condition is true in a new
// child scope. The result is nil if no branch runs.
func (n *If) Eval(vm *VM, scope *Scope) (Value, Stop, error) {
	for _, b := range n.Branches {
		if b.Cond != nil {
			c, stop, err := b.Cond.Eval(vm, scope)
			if err != nil || stop != NoStop {
				return c, stop, err
			}
			if !c.IsTruthy() {
				continue
			}
		}
		return b.Body.Eval(vm, scope.Child())
	}
	return Nil, NoStop, nil
}

// While is a loop.
type While struct {
	At   Pos
	Cond Node
	Body *Block
}

func (n *While) Pos() Pos { return n.At }

// Eval runs the body in a fresh child scope for each iteration. The result
// is the value of the last iteration's body, or nil if there were none.
func (n *While) Eval(vm *VM, scope *Scope) (Value, Stop, error) {
	result := Nil
	for {
		if err := vm.interrupted(); err != nil {
			return Nil, NoStop, err
		}
		c, stop, err := n.Cond.Eval(vm, scope)
		if err != nil || stop != NoStop {
			return c, stop, err
		}
		if !c.IsTruthy() {
			return result, NoStop, nil
		}
		r, stop, err := n.Body.Eval(vm, scope.Child())
		if err != nil {
			return r, NoStop, err
		}
		switch stop {
		case NoStop:
			result = r
		case ContinueStop: // do nothing
		case BreakStop:
			return result, NoStop, nil
		default:
			return r, stop, nil
		}
	}
}

// FuncDecl declares a function.
type FuncDecl struct {
	At   Pos
	Name string
	Body *Block
}

func (n *FuncDecl) Pos() Pos { return n.At }

// Eval creates a closure over scope and binds it to its name in scope.
func (n *FuncDecl) Eval(vm *VM, scope *Scope) (Value, Stop, error) {
	f := FunctionValue(NewClosure(n.Name, n.Body, scope))
	scope.Define(n.Name, f)
	return f, NoStop, nil
}

// CallExpr is a function call. If Callee is a member access, the call is a
// method call and the receiver becomes this.
type CallExpr struct {
	At     Pos
	Callee Node
	Args   []Node
	Named  []NamedExpr
}

// NamedExpr is a named argument expression, name ~ x.
type NamedExpr struct {
	Name string
	X    Node
}

func (n *CallExpr) Pos() Pos { return n.At }

// Eval evaluates the callee, then positional arguments, then named arguments,
// all left to right, then calls.
func (n *CallExpr) Eval(vm *VM, scope *Scope) (Value, Stop, error) {
	var (
		f, this Value
		stop    Stop
		err     error
	)
	if m, ok := n.Callee.(member); ok {
		var key Value
		this, key, stop, err = m.resolve(vm, scope)
		if err != nil || stop != NoStop {
			return this, stop, err
		}
		if f, err = this.GetVar(key); err != nil {
			return Nil, NoStop, err
		}
	} else {
		f, stop, err = n.Callee.Eval(vm, scope)
		if err != nil || stop != NoStop {
			return f, stop, err
		}
	}
	call := Call{Sender: scope, This: this, Args: make([]Value, len(n.Args))}
	for i, a := range n.Args {
		v, stop, err := a.Eval(vm, scope)
		if err != nil || stop != NoStop {
			return v, stop, err
		}
		call.Args[i] = v
	}
	if len(n.Named) > 0 {
		call.Named = make([]NamedArg, len(n.Named))
		for i, a := range n.Named {
			v, stop, err := a.X.Eval(vm, scope)
			if err != nil || stop != NoStop {
				return v, stop, err
			}
			call.Named[i] = NamedArg{Name: a.Name, Value: v}
		}
	}
	return f.Call(vm, &call)
}

// Return ends the innermost function call.
type Return struct {
	At Pos
	// X is the returned expression. If nil, the function returns nil.
	X Node
}

func (n *Return) Pos() Pos { return n.At }

// Eval evaluates the operand and signals ReturnStop.
func (n *Return) Eval(vm *VM, scope *Scope) (Value, Stop, error) {
	if n.X == nil {
		return Nil, ReturnStop, nil
	}
	v, stop, err := n.X.Eval(vm, scope)
	if err != nil || stop != NoStop {
		return v, stop, err
	}
	return v, ReturnStop, nil
}

// LoopControl is break or continue.
type LoopControl struct {
	At   Pos
	Stop Stop
}

func (n *LoopControl) Pos() Pos { return n.At }

// Eval signals the loop.
func (n *LoopControl) Eval(vm *VM, scope *Scope) (Value, Stop, error) {
	return Nil, n.Stop, nil
}

// ScopeDecl declares a namespace: an object whose fields are the variables
// bound by Body.
type ScopeDecl struct {
	At   Pos
	Name string
	Body *Block
}

func (n *ScopeDecl) Pos() Pos { return n.At }

// Eval evaluates the body in a scope redirecting to a new object, then binds
// the object to its name in scope.
func (n *ScopeDecl) Eval(vm *VM, scope *Scope) (Value, Stop, error) {
	obj := NewObject()
	r, stop, err := n.Body.Eval(vm, NewRedirectScope(scope, obj))
	if err != nil || stop != NoStop {
		return r, stop, err
	}
	v := ObjectValue(obj)
	scope.Define(n.Name, v)
	return v, NoStop, nil
}

// Block is a sequence of statements.
type Block struct {
	At    Pos
	Stmts []Node
}

func (n *Block) Pos() Pos { return n.At }

// Eval evaluates each statement in order in scope. The result is the value of
// the last statement, or nil if there are none. Errors are annotated with the
// position of the statement which raised them.
func (n *Block) Eval(vm *VM, scope *Scope) (Value, Stop, error) {
	result := Nil
	for _, s := range n.Stmts {
		vm.trace(s, scope)
		r, stop, err := s.Eval(vm, scope)
		if err != nil {
			return r, NoStop, atPos(err, s.Pos())
		}
		if stop != NoStop {
			return r, stop, nil
		}
		result = r
	}
	return result, NoStop, nil
}
