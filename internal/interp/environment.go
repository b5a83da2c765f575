package interp

import "github.com/lolcode-go/lolcode/internal/value"

// SymbolObserver is notified after every binding mutation, including IT
// (spec §6's "symbol observer" port).
type SymbolObserver func(name string, v value.Value)

// Environment is a flat mapping from identifier name to value, plus the
// distinguished IT binding (spec §3). Function calls run against a fresh
// Environment holding only their parameters and IT — there is no lexical
// capture of an outer scope, a deliberate choice preserved from the
// original implementation (spec §9 "Environment scoping").
type Environment struct {
	vars     map[string]value.Value
	observer SymbolObserver
}

// NewEnvironment creates an Environment with IT pre-declared as NOOB.
func NewEnvironment(observer SymbolObserver) *Environment {
	env := &Environment{vars: make(map[string]value.Value), observer: observer}
	env.vars["IT"] = value.Noob{}
	return env
}

// Declare binds name to v, overwriting any prior binding (spec §4.2.2:
// "re-declaration is not explicitly checked; last-write-wins") and fires
// the symbol observer.
func (e *Environment) Declare(name string, v value.Value) {
	e.vars[name] = v
	e.notify(name, v)
}

// Has reports whether name is currently bound.
func (e *Environment) Has(name string) bool {
	_, ok := e.vars[name]
	return ok
}

// Get returns name's current binding and whether it exists.
func (e *Environment) Get(name string) (value.Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Assign updates an already-declared binding and fires the symbol
// observer. It reports false if name was never declared.
func (e *Environment) Assign(name string, v value.Value) bool {
	if _, ok := e.vars[name]; !ok {
		return false
	}
	e.vars[name] = v
	e.notify(name, v)
	return true
}

// All returns a snapshot copy of every current binding, for end-of-run
// symbol-table dumps (lolcode symbols).
func (e *Environment) All() map[string]value.Value {
	out := make(map[string]value.Value, len(e.vars))
	for k, v := range e.vars {
		out[k] = v
	}
	return out
}

func (e *Environment) notify(name string, v value.Value) {
	if e.observer != nil {
		e.observer(name, v)
	}
}
