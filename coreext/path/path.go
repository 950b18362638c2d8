package path

import (
	"fmt"
	"path/filepath"

	"github.com/rofleksey/refl"
	"github.com/rofleksey/refl/internal"
)

func init() {
	internal.Register(initPath)
}

func initPath(vm *refl.VM) {
	vm.SetFunction("abspath", absolute)
	vm.SetFunction("isabs", isPathAbsolute)
	vm.SetFunction("joinpath", join)
	vm.SetFunction("separator", separator)
}

func stringArgAt(call *refl.Call, n int) (string, error) {
	v := call.ArgAt(n)
	s, ok := v.Str()
	if !ok {
		return "", fmt.Errorf("argument %d must be a string, not %s", n, v.Kind())
	}
	return s, nil
}

// absolute is a builtin.
//
// abspath returns an absolute version of the argument path.
func absolute(vm *refl.VM, call *refl.Call) (refl.Value, refl.Stop, error) {
	s, err := stringArgAt(call, 0)
	if err != nil {
		return refl.Nil, refl.NoStop, fmt.Errorf("abspath: %w", err)
	}
	abs, err := filepath.Abs(filepath.FromSlash(s))
	if err != nil {
		return refl.Nil, refl.NoStop, fmt.Errorf("abspath: %w", err)
	}
	return refl.String(filepath.ToSlash(abs)), refl.NoStop, nil
}

// isPathAbsolute is a builtin.
//
// isabs returns whether the argument is an absolute path. The path may be
// operating system- or slash-style.
func isPathAbsolute(vm *refl.VM, call *refl.Call) (refl.Value, refl.Stop, error) {
	s, err := stringArgAt(call, 0)
	if err != nil {
		return refl.Nil, refl.NoStop, fmt.Errorf("isabs: %w", err)
	}
	return refl.Bool(filepath.IsAbs(filepath.FromSlash(s))), refl.NoStop, nil
}

// join is a builtin.
//
// joinpath joins its arguments into a single cleaned path.
func join(vm *refl.VM, call *refl.Call) (refl.Value, refl.Stop, error) {
	parts := make([]string, len(call.Args))
	for i := range call.Args {
		s, err := stringArgAt(call, i)
		if err != nil {
			return refl.Nil, refl.NoStop, fmt.Errorf("joinpath: %w", err)
		}
		parts[i] = filepath.FromSlash(s)
	}
	return refl.String(filepath.ToSlash(filepath.Join(parts...))), refl.NoStop, nil
}

// separator is a builtin.
//
// separator returns the operating system's path separator.
func separator(vm *refl.VM, call *refl.Call) (refl.Value, refl.Stop, error) {
	return refl.String(string(filepath.Separator)), refl.NoStop, nil
}
