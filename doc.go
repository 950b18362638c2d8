/*
Package refl implements refl, a small embeddable scripting language.

refl is dynamically typed and evaluated directly from its syntax tree. Values
are numbers, strings, nil, objects (mutable maps from values to values), and
functions. There is no boolean type; conditions and logical operators treat
positive numbers, non-empty strings, non-empty objects, and functions as true,
and produce 1 for true and 0 for false.

The interpreter is meant to be embedded. Create a VM with NewVM, bind Go
functions with its SetFunction method, and run code with DoString or with Parse
and Execute. A blank import of github.com/rofleksey/refl/coreext adds the
standard library of text, date, and system functions.

	vm := refl.NewVM()
	vm.SetFunction("greet", func(vm *refl.VM, call *refl.Call) (refl.Value, refl.Stop, error) {
		return refl.String("hello " + call.ArgAt(0).AsString()), refl.NoStop, nil
	})
	v, err := vm.DoString(ctx, `greet("world")`, "example")

refl Primer

Statements are separated by newlines or semicolons. Assignment creates a
variable in the current scope unless an enclosing scope already has one, in
which case that variable changes:

	x = 1
	if x > 0
		x = 2    # changes the outer x
		y = 3    # local to the if body
	end

Blocks open with a keyword and close with end. A colon after the header allows
the body to follow on the same line:

	while x < 10: x += 1; end

Functions are declared with fun. Arguments are not named in the declaration;
instead each call sees args, an object holding positional arguments at 0, 1,
..., named arguments by name, and the count of positional arguments as length.
it is the first argument and this is the receiver of a method call. << returns
from the function.

	fun fact
		if it <= 1: << 1; end
		<< it * fact(it - 1)
	end
	fact(6)    # 720

	fun greet
		<< (args.greeting ?? "hello") + " " + it
	end
	greet("you", greeting ~ "hi")    # "hi you"

A function sees the variables of the scope where it was declared. Each call
works on its own copy of that scope's variables, except for the top level,
whose variables are shared by every call.

scope declares a namespace. Variables assigned in its body become fields of
an object bound to the given name. Functions in a namespace see the scope
around the declaration and a copy of the namespace's fields, so they can call
themselves and each other by name. Changing a field needs this:

	scope Math
		pi = 3.14159
		fun area: << this.pi * it * it; end
	end
	Math.area(2)

Operators, loosest to tightest: assignment (= += -= *= /= %= &= |=), | and ??,
&, comparisons (== != < <= > >=), + and -, * / and %, prefix - + ! ++ --, and
postfix calls, .field, [index], ++ and --. & and | skip their right operand
when the left decides the result. a ?? b is a unless a is nil.

Operators which have no meaning for their operands, like subtracting strings,
produce the special value refl rather than failing. Dividing by zero, reading
an undefined variable, calling a non-function, and indexing a string out of
range are errors.

Concurrency

A script may call wait() to block until the host calls VM.Notify with a value,
which wait then returns. Notify does not block and does not queue; if no
script is waiting, the value is dropped and Notify returns false. Scripts
running in the same root scope on different goroutines can do the same with
notify(v), which returns 1 if a waiter took the value and 0 otherwise.
Cancelling the context passed to Execute interrupts wait.
*/
package refl
