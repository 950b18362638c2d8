package internal

import (
	"fmt"
	"sort"
)

// Scope is a lexical environment. Scopes form a tree through their parents;
// the root of the tree owns the Rendezvous used by wait and notify.
//
// A Scope may instead redirect to an Object, in which case every variable it
// reads or writes is a field of that object. Namespaces are evaluated in
// redirecting scopes.
//
// Scopes are not synchronized.
type Scope struct {
	vars   map[string]Value
	parent *Scope
	root   *Scope
	// object is the redirect target, if any.
	object *Object
	// channel is non-nil only on root scopes.
	channel *Rendezvous
}

// NewScope creates a root scope with its own Rendezvous.
func NewScope() *Scope {
	s := &Scope{vars: map[string]Value{}, channel: NewRendezvous()}
	s.root = s
	return s
}

// NewRedirectScope creates a scope whose variables are the fields of obj.
// parent is the scope in which the redirection was made; it shares the
// parent's root but lookups never reach it.
func NewRedirectScope(parent *Scope, obj *Object) *Scope {
	s := &Scope{parent: parent, object: obj}
	if parent != nil {
		s.root = parent.root
	} else {
		s.root = s
		s.channel = NewRendezvous()
	}
	return s
}

// Child creates a new scope whose parent is s.
func (s *Scope) Child() *Scope {
	return &Scope{vars: map[string]Value{}, parent: s, root: s.root}
}

// ShallowClone creates a scope with a copy of s's own bindings and the same
// parent. Cloning a root scope gives a child of the root instead, so globals
// stay shared. Cloning a redirecting scope gives a plain scope holding a
// snapshot of the object's string-keyed fields, chained to the redirecting
// scope's parent.
func (s *Scope) ShallowClone() *Scope {
	if s.object != nil {
		vars := make(map[string]Value, s.object.Len())
		s.object.Foreach(func(key, value Value) bool {
			if name, ok := key.Str(); ok {
				vars[name] = value
			}
			return true
		})
		return &Scope{vars: vars, parent: s.parent, root: s.root}
	}
	if s.parent == nil {
		return s.Child()
	}
	vars := make(map[string]Value, len(s.vars))
	for k, v := range s.vars {
		vars[k] = v
	}
	return &Scope{vars: vars, parent: s.parent, root: s.root}
}

// Parent returns the scope's parent, or nil if s is a root.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Root returns the root of the scope's tree.
func (s *Scope) Root() *Scope {
	return s.root
}

// Channel returns the Rendezvous owned by the scope's root.
func (s *Scope) Channel() *Rendezvous {
	return s.root.channel
}

// Redirect returns the Object to which the scope redirects, or nil.
func (s *Scope) Redirect() *Object {
	return s.object
}

// Lookup finds a variable in s or its ancestors. Lookups stop at the first
// redirecting scope.
func (s *Scope) Lookup(name string) (Value, bool) {
	for c := s; c != nil; c = c.parent {
		if c.object != nil {
			return c.object.Get(String(name))
		}
		if v, ok := c.vars[name]; ok {
			return v, true
		}
	}
	return Nil, false
}

// Get finds a variable in s or its ancestors, returning an error wrapping
// ErrVarUndefined if it is absent.
func (s *Scope) Get(name string) (Value, error) {
	if v, ok := s.Lookup(name); ok {
		return v, nil
	}
	return Nil, fmt.Errorf("%s: %w", name, ErrVarUndefined)
}

// Set assigns a variable. The nearest scope which already has the variable
// receives the assignment; if none does, it is created in s.
func (s *Scope) Set(name string, v Value) {
	for c := s; c != nil; c = c.parent {
		if c.object != nil {
			c.object.Set(String(name), v)
			return
		}
		if _, ok := c.vars[name]; ok {
			c.vars[name] = v
			return
		}
	}
	s.Define(name, v)
}

// Define creates or replaces a variable in s itself.
func (s *Scope) Define(name string, v Value) {
	if s.object != nil {
		s.object.Set(String(name), v)
		return
	}
	s.vars[name] = v
}

// HasLocal reports whether s itself binds name.
func (s *Scope) HasLocal(name string) bool {
	if s.object != nil {
		return s.object.Has(String(name))
	}
	_, ok := s.vars[name]
	return ok
}

// Names returns the names bound in s itself, sorted.
func (s *Scope) Names() []string {
	var r []string
	if s.object != nil {
		s.object.Foreach(func(key, value Value) bool {
			r = append(r, key.AsString())
			return true
		})
	} else {
		r = make([]string, 0, len(s.vars))
		for k := range s.vars {
			r = append(r, k)
		}
	}
	sort.Strings(r)
	return r
}

// GetVar reads a variable named by key's string form. It lets a scope stand
// as the receiver of a plain variable assignment.
func (s *Scope) GetVar(key Value) (Value, error) {
	return s.Get(key.AsString())
}

// SetVar assigns a variable named by key's string form.
func (s *Scope) SetVar(key, value Value) error {
	s.Set(key.AsString(), value)
	return nil
}
