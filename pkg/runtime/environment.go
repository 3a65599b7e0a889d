package runtime

import (
	"fmt"
	"sort"
	"sync"
)

// Frame is one scope on the environment stack. An overlay frame (a function
// call frame) also reads from the global frame it was built over.
type Frame struct {
	values map[string]Value
	global *Frame
	mu     sync.RWMutex
}

// NewFrame creates an empty frame with no underlying global frame.
func NewFrame() *Frame {
	return &Frame{values: make(map[string]Value)}
}

// NewOverlayFrame creates a call frame layered over global.
func NewOverlayFrame(global *Frame) *Frame {
	return &Frame{values: make(map[string]Value), global: global}
}

// Get reads a local binding, then the global frame of an overlay.
func (f *Frame) Get(name string) (Value, bool) {
	f.mu.RLock()
	v, ok := f.values[name]
	global := f.global
	f.mu.RUnlock()
	if ok {
		return v, true
	}
	if global != nil {
		return global.Get(name)
	}
	return nil, false
}

// Set writes a local binding when the name is local. In an overlay frame a
// name that only exists globally rebinds the global; anything else becomes a
// new local.
func (f *Frame) Set(name string, value Value) {
	f.mu.Lock()
	if _, ok := f.values[name]; ok || f.global == nil {
		f.values[name] = value
		f.mu.Unlock()
		return
	}
	global := f.global
	f.mu.Unlock()
	if global.HasLocal(name) {
		global.Set(name, value)
		return
	}
	f.mu.Lock()
	f.values[name] = value
	f.mu.Unlock()
}

// Define binds name in this frame, shadowing any global.
func (f *Frame) Define(name string, value Value) {
	f.mu.Lock()
	f.values[name] = value
	f.mu.Unlock()
}

// HasLocal reports whether name is bound in this frame itself.
func (f *Frame) HasLocal(name string) bool {
	f.mu.RLock()
	_, ok := f.values[name]
	f.mu.RUnlock()
	return ok
}

// Snapshot returns a copy of the frame's own bindings.
func (f *Frame) Snapshot() map[string]Value {
	f.mu.RLock()
	out := make(map[string]Value, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	f.mu.RUnlock()
	return out
}

// Keys returns the frame's own bindings in sorted order (useful for determinism in tests).
func (f *Frame) Keys() []string {
	f.mu.RLock()
	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	f.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// ReturnExit identifies the function invocation a return statement leaves.
type ReturnExit struct {
	Function string
}

// CallState is the caller context saved by EnterCall.
type CallState struct {
	frames []*Frame
	exit   *ReturnExit
}

// Environment is the frame stack plus the active return exit. Lookup and
// update only ever consult the top frame.
type Environment struct {
	frames []*Frame
	exit   *ReturnExit
	mu     sync.RWMutex
}

// NewEnvironment creates an environment holding only the global frame.
func NewEnvironment() *Environment {
	return &Environment{frames: []*Frame{NewFrame()}}
}

func (e *Environment) top() *Frame {
	e.mu.RLock()
	frame := e.frames[len(e.frames)-1]
	e.mu.RUnlock()
	return frame
}

// Global exposes the bottom frame shared by all top-level code.
func (e *Environment) Global() *Frame {
	e.mu.RLock()
	frame := e.frames[0]
	e.mu.RUnlock()
	return frame
}

// Top exposes the current frame.
func (e *Environment) Top() *Frame {
	return e.top()
}

// Depth reports how many frames are stacked.
func (e *Environment) Depth() int {
	e.mu.RLock()
	n := len(e.frames)
	e.mu.RUnlock()
	return n
}

// Lookup resolves name in the top frame.
func (e *Environment) Lookup(name string) (Value, error) {
	if v, ok := e.top().Get(name); ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: name '%s' is not defined", ErrUnknownSymbol, name)
}

// Update binds name in the top frame.
func (e *Environment) Update(name string, value Value) {
	e.top().Set(name, value)
}

// PushFrame stacks a fresh frame that sees nothing below it.
func (e *Environment) PushFrame() {
	e.mu.Lock()
	e.frames = append(e.frames, NewFrame())
	e.mu.Unlock()
}

// PopFrame removes the top frame and hands back its bindings as a new
// attribute store. The global frame is never popped.
func (e *Environment) PopFrame() (*AttributeStore, error) {
	e.mu.Lock()
	if len(e.frames) <= 1 {
		e.mu.Unlock()
		return nil, ErrFrameStackUnderflow
	}
	frame := e.frames[len(e.frames)-1]
	e.frames[len(e.frames)-1] = nil
	e.frames = e.frames[:len(e.frames)-1]
	e.mu.Unlock()
	return NewAttributeStoreFrom(frame.Snapshot()), nil
}

// ReturnExit reports the active function's exit point; false at top level.
func (e *Environment) ReturnExit() (*ReturnExit, bool) {
	e.mu.RLock()
	exit := e.exit
	e.mu.RUnlock()
	return exit, exit != nil
}

// EnterCall saves the caller's frames and return exit, then installs frame as
// the top frame and exit as the active return exit.
func (e *Environment) EnterCall(frame *Frame, exit *ReturnExit) CallState {
	e.mu.Lock()
	saved := CallState{frames: append([]*Frame(nil), e.frames...), exit: e.exit}
	e.frames = append(e.frames, frame)
	e.exit = exit
	e.mu.Unlock()
	return saved
}

// Restore reinstates the exact frame stack and return exit saved by EnterCall.
func (e *Environment) Restore(saved CallState) {
	e.mu.Lock()
	e.frames = saved.frames
	e.exit = saved.exit
	e.mu.Unlock()
}
