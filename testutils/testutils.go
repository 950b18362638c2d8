// Package testutils provides utilities for testing refl code in Go.
package testutils

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rofleksey/refl"
)

// testVM is the VM used for all tests.
var testVM *refl.VM

var testVMInit sync.Once

// TestingVM returns a VM for testing refl. The VM is shared by all tests that
// use this package.
func TestingVM() *refl.VM {
	testVMInit.Do(ResetTestingVM)
	return testVM
}

// ResetTestingVM reinitializes the VM returned by TestingVM. It is not safe to
// call this in parallel tests.
func ResetTestingVM() {
	testVM = refl.NewVM()
}

// Timeout bounds the execution of each SourceTestCase.
var Timeout = 5 * time.Second

// A SourceTestCase is a test case containing refl source code and a predicate
// to check the result.
type SourceTestCase struct {
	// Source is the refl source code to execute.
	Source string
	// Pass is a predicate taking the result of executing Source. If Pass
	// returns false, then the test fails.
	Pass func(result refl.Value, err error) bool
}

// TestFunc returns a test function for the test case. This uses TestingVM to
// parse the code and executes it in a fresh root scope, so variables assigned
// by the source do not leak between cases.
func (c SourceTestCase) TestFunc(name string) func(*testing.T) {
	return func(t *testing.T) {
		vm := TestingVM()
		prog, err := vm.Parse(strings.NewReader(c.Source), name)
		if err != nil {
			t.Fatalf("could not parse %q: %v", c.Source, err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), Timeout)
		defer cancel()
		r, err := vm.Execute(ctx, prog, vm.NewRoot())
		if !c.Pass(r, err) {
			if err != nil {
				t.Errorf("%q produced wrong result; an error occurred: %v", c.Source, err)
			} else {
				t.Errorf("%q produced wrong result; got %v (%v)", c.Source, r, r.Kind())
			}
		}
	}
}

// PassEqual returns a Pass function for a SourceTestCase that predicates on
// equality. Equality means identical values or a comparison result of 0. If
// an error occurred, the predicate returns false.
func PassEqual(want refl.Value) func(refl.Value, error) bool {
	return func(result refl.Value, err error) bool {
		if err != nil {
			return false
		}
		if want == result {
			return true
		}
		n, ok := want.Compare(result).Num()
		return ok && n == 0
	}
}

// PassIdentical returns a Pass function for a SourceTestCase that predicates
// on identity, i.e. the result must be exactly the given value. If an error
// occurred, the predicate returns false.
func PassIdentical(want refl.Value) func(refl.Value, error) bool {
	return func(result refl.Value, err error) bool {
		return err == nil && want == result
	}
}

// PassKind returns a Pass function for a SourceTestCase that predicates on
// the kind of the result. If an error occurred, the predicate returns false.
func PassKind(want refl.Kind) func(refl.Value, error) bool {
	return func(result refl.Value, err error) bool {
		return err == nil && result.Kind() == want
	}
}

// PassError returns a Pass function for a SourceTestCase that returns true
// iff the execution failed with an error matching target under errors.Is.
func PassError(target error) func(refl.Value, error) bool {
	return func(result refl.Value, err error) bool {
		return errors.Is(err, target)
	}
}

// PassFailure returns a Pass function for a SourceTestCase that returns true
// iff the execution failed.
func PassFailure() func(refl.Value, error) bool {
	// This doesn't need to be a function returning a function, but it's nice to
	// stay consistent with the other predicate generators.
	return func(result refl.Value, err error) bool {
		return err != nil
	}
}

// PassSuccess returns a Pass function for a SourceTestCase that returns true
// iff the execution succeeded.
func PassSuccess() func(refl.Value, error) bool {
	return func(result refl.Value, err error) bool {
		return err == nil
	}
}

// PassTruthy returns a Pass function for a SourceTestCase that returns true
// iff the execution succeeded with a result whose truthiness is want.
func PassTruthy(want bool) func(refl.Value, error) bool {
	return func(result refl.Value, err error) bool {
		return err == nil && result.IsTruthy() == want
	}
}

// PassFields returns a Pass function for a SourceTestCase that returns true
// iff the result is an object with exactly the given string-keyed fields and
// the fields compare equal.
func PassFields(want map[string]refl.Value) func(refl.Value, error) bool {
	return func(result refl.Value, err error) bool {
		obj := result.Object()
		if err != nil || obj == nil || obj.Len() != len(want) {
			return false
		}
		for k, w := range want {
			v, ok := obj.Get(refl.String(k))
			if !ok {
				return false
			}
			if n, ok := w.Compare(v).Num(); !ok || n != 0 {
				return false
			}
		}
		return true
	}
}

// CheckNames is a testing helper to check whether a scope binds exactly the
// names we expect.
func CheckNames(t *testing.T, scope *refl.Scope, names []string) {
	t.Helper()
	checked := make(map[string]bool, len(names))
	for _, name := range names {
		checked[name] = true
		t.Run("Have_"+name, func(t *testing.T) {
			if !scope.HasLocal(name) {
				t.Fatal("no variable", name)
			}
		})
	}
	for _, name := range scope.Names() {
		t.Run("Want_"+name, func(t *testing.T) {
			if !checked[name] {
				t.Fatal("unexpected variable", name)
			}
		})
	}
}
