package internal

import (
	"strings"
	"sync/atomic"
	"unsafe"

	"github.com/zephyrtronium/contains"
)

// Object is the mutable record type of refl. It maps Value keys to Values and
// remembers the order in which keys were first set.
//
// Objects are not synchronized. Sharing an Object between goroutines other
// than through wait and notify is the caller's responsibility.
type Object struct {
	// fields maps keys to their index in entries. NaN never equals itself,
	// so all NaN keys share the single field at nan-1 instead.
	fields map[Value]int
	nan    int
	// entries holds the fields in insertion order. Deleted fields are not
	// supported, so the slice only grows.
	entries []field

	// id is the object's unique ID.
	id uintptr
}

type field struct {
	key, value Value
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{fields: map[Value]int{}, id: nextObject()}
}

// objcounter is the source of object IDs.
var objcounter uintptr

// nextObject returns a new object ID.
func nextObject() uintptr {
	return atomic.AddUintptr(&objcounter, 1)
}

// UniqueID returns the object's unique ID.
func (o *Object) UniqueID() uintptr {
	return o.id
}

// Len returns the number of fields in the object.
func (o *Object) Len() int {
	return len(o.entries)
}

func isNaN(key Value) bool {
	return key.kind == NumberKind && key.num != key.num
}

// index finds the entry holding key.
func (o *Object) index(key Value) (int, bool) {
	if isNaN(key) {
		return o.nan - 1, o.nan != 0
	}
	i, ok := o.fields[key]
	return i, ok
}

// Get returns the value of a field and whether the object has it.
func (o *Object) Get(key Value) (Value, bool) {
	i, ok := o.index(key)
	if !ok {
		return Nil, false
	}
	return o.entries[i].value, true
}

// Set sets the value of a field, creating it if needed.
func (o *Object) Set(key, value Value) {
	if i, ok := o.index(key); ok {
		o.entries[i].value = value
		return
	}
	if isNaN(key) {
		o.nan = len(o.entries) + 1
	} else {
		o.fields[key] = len(o.entries)
	}
	o.entries = append(o.entries, field{key, value})
}

// Has returns whether the object has a field.
func (o *Object) Has(key Value) bool {
	_, ok := o.index(key)
	return ok
}

// Keys returns the object's keys in insertion order.
func (o *Object) Keys() []Value {
	r := make([]Value, len(o.entries))
	for i, e := range o.entries {
		r[i] = e.key
	}
	return r
}

// Foreach calls f for each field in insertion order until f returns false.
func (o *Object) Foreach(f func(key, value Value) bool) {
	for _, e := range o.entries {
		if !f(e.key, e.value) {
			return
		}
	}
}

// String returns a representation of the object like {a: 1, b: "x"}. Objects
// which contain themselves print the inner reference as {...}.
func (o *Object) String() string {
	var b strings.Builder
	o.write(&b, nil)
	return b.String()
}

// write prints o. path holds the objects enclosing o, so only true cycles
// are cut short.
func (o *Object) write(b *strings.Builder, path []*Object) {
	for _, p := range path {
		if p == o {
			b.WriteString("{...}")
			return
		}
	}
	path = append(path, o)
	b.WriteByte('{')
	for i, e := range o.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.key.AsString())
		b.WriteString(": ")
		if e.value.kind == ObjectKind {
			e.value.obj.write(b, path)
		} else {
			b.WriteString(e.value.String())
		}
	}
	b.WriteByte('}')
}

// Equal reports whether two objects have the same keys mapped to equal
// values. Nested objects are compared recursively. A pair of objects that is
// already being compared further up is assumed equal.
func (o *Object) Equal(other *Object) bool {
	return o.equal(other, &contains.Set{})
}

func (o *Object) equal(other *Object, seen *contains.Set) bool {
	if o == other {
		return true
	}
	if o.Len() != other.Len() {
		return false
	}
	if !seen.Add(pairID(o.id, other.id)) {
		return true
	}
	for _, e := range o.entries {
		w, ok := other.Get(e.key)
		if !ok || !valuesEqual(e.value, w, seen) {
			return false
		}
	}
	return true
}

// pairID packs two object IDs into one set key.
func pairID(a, b uintptr) uintptr {
	return a<<(4*unsafe.Sizeof(a)) ^ b
}

func valuesEqual(a, b Value, seen *contains.Set) bool {
	if a.kind == ObjectKind && b.kind == ObjectKind {
		return a.obj.equal(b.obj, seen)
	}
	return a == b
}
