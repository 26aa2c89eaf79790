// Package hooking lets observers attach to the points where the mapper makes
// decisions, such as choosing a realization or merging two memories.
package hooking

import "reflect"

// HookPos names a point where hooks are invoked.
type HookPos struct {
	Name string
}

// HookCtx describes one hook invocation.
type HookCtx struct {
	// Domain is the object that invoked the hook.
	Domain Hookable

	// Pos is the point of the invocation.
	Pos *HookPos

	// Item is the object the decision is about.
	Item interface{}

	// Detail carries position-specific extra information.
	Detail interface{}
}

// Hookable is an object that invokes hooks.
type Hookable interface {
	// AcceptHook registers a hook.
	AcceptHook(hook Hook)

	// NumHooks returns the number of registered hooks.
	NumHooks() int

	// Hooks returns the registered hooks.
	Hooks() []Hook
}

// Hook observes the decisions of a Hookable.
type Hook interface {
	// Func is called at every hook position of the domain.
	Func(ctx HookCtx)
}

// HookFunc adapts a plain function to the Hook interface.
type HookFunc func(ctx HookCtx)

// Func calls f.
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// HookableBase implements Hookable. Embed it and call InvokeHook.
type HookableBase struct {
	hookList []Hook
}

// NumHooks returns the number of registered hooks.
func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

// Hooks returns the registered hooks.
func (h *HookableBase) Hooks() []Hook {
	return h.hookList
}

// AcceptHook registers a hook. Registering the same pointer hook twice
// panics. Other hooks, such as HookFunc values or struct values, are never
// treated as duplicates since they may not be comparable.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.mustNotHaveDuplicatedHook(hook)
	h.hookList = append(h.hookList, hook)
}

func (h *HookableBase) mustNotHaveDuplicatedHook(hook Hook) {
	if reflect.TypeOf(hook).Kind() != reflect.Pointer {
		return
	}

	for _, registered := range h.hookList {
		if registered == hook {
			panic("duplicated hook")
		}
	}
}

// InvokeHook calls every registered hook in registration order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}
