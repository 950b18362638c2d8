// Package system provides functions for interacting with the host.
package system

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/rofleksey/refl"
	"github.com/rofleksey/refl/internal"
)

func init() {
	internal.Register(initSystem)
}

func initSystem(vm *refl.VM) {
	vm.SetFunction("print", Print)
	vm.SetFunction("platform", platform)
	vm.SetFunction("env", env)
}

// Print is a builtin.
//
// print writes its arguments to the VM's standard output, separated by sep
// and preceded by prefix, then ends the line. By default sep is a single
// space and prefix is empty.
func Print(vm *refl.VM, call *refl.Call) (refl.Value, refl.Stop, error) {
	prefix, sep := "", " "
	if v, ok := call.NamedArg("prefix"); ok {
		prefix = v.AsString()
	}
	if v, ok := call.NamedArg("sep"); ok {
		sep = v.AsString()
	}
	if err := write(vm.Stdout, prefix, sep, call.Args); err != nil {
		return refl.Nil, refl.NoStop, fmt.Errorf("print: %w", err)
	}
	return refl.Nil, refl.NoStop, nil
}

func write(w io.Writer, prefix, sep string, args []refl.Value) error {
	b := make([]byte, 0, 64)
	b = append(b, prefix...)
	for i, v := range args {
		if i > 0 {
			b = append(b, sep...)
		}
		b = append(b, v.AsString()...)
	}
	b = append(b, '\n')
	_, err := w.Write(b)
	return err
}

// platform is a builtin.
//
// platform returns an object describing the host, with fields os and arch
// and, where the operating system reports them, release, version, and
// machine.
func platform(vm *refl.VM, call *refl.Call) (refl.Value, refl.Stop, error) {
	obj := refl.NewObject()
	obj.Set(refl.String("os"), refl.String(runtime.GOOS))
	obj.Set(refl.String("arch"), refl.String(runtime.GOARCH))
	for k, v := range uname() {
		obj.Set(refl.String(k), refl.String(v))
	}
	return refl.ObjectValue(obj), refl.NoStop, nil
}

// env is a builtin.
//
// env returns the value of an environment variable, or nil if it is unset.
func env(vm *refl.VM, call *refl.Call) (refl.Value, refl.Stop, error) {
	name, ok := call.ArgAt(0).Str()
	if !ok {
		return refl.Nil, refl.NoStop, fmt.Errorf("env: argument 0 must be a string, not %s", call.ArgAt(0).Kind())
	}
	v, ok := os.LookupEnv(name)
	if !ok {
		return refl.Nil, refl.NoStop, nil
	}
	return refl.String(v), refl.NoStop, nil
}
