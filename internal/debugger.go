package internal

import "sync/atomic"

// Tracer observes evaluation. Trace is called with each statement before it
// is evaluated, while the VM's Debug flag is set.
type Tracer interface {
	Trace(node Node, scope *Scope)
}

// TracerFunc adapts a function to Tracer.
type TracerFunc func(node Node, scope *Scope)

// Trace calls f.
func (f TracerFunc) Trace(node Node, scope *Scope) {
	f(node, scope)
}

// SetDebug turns tracing on or off.
func (vm *VM) SetDebug(on bool) {
	var v uint32
	if on {
		v = 1
	}
	atomic.StoreUint32(&vm.Debug, v)
}

// trace does nothing if debugging is disabled for the VM; otherwise, it
// reports the statement to the tracer.
func (vm *VM) trace(node Node, scope *Scope) {
	if atomic.LoadUint32(&vm.Debug) != 0 {
		vm.traceSlow(node, scope)
	}
}

// traceSlow is an outlined path of trace.
func (vm *VM) traceSlow(node Node, scope *Scope) {
	if vm.Tracer != nil {
		vm.Tracer.Trace(node, scope)
	}
}
