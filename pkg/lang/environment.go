// environment.go - WebBubble per-request variable store
//
// A linear association list of (name, value) from innermost (most
// recently set) to outermost insertion, matching spec.md §3. Set
// updates an existing binding in place; otherwise it prepends. Get
// returns the first match. An Environment's lifetime is exactly one
// HTTP request: created before route execution, discarded after the
// response is sent — this is what guarantees request isolation.
//
// CORE LANGUAGE COMPONENT.
package lang

type binding struct {
	name  string
	value Value
}

type Environment struct {
	bindings []binding
}

func NewEnvironment() *Environment {
	return &Environment{}
}

// Set binds name to value, replacing an existing binding in place or
// prepending a new one so it is seen before outer bindings of the same
// name would be (there are none in this language, but the ordering
// matches the C original's linked-list semantics).
func (e *Environment) Set(name string, value Value) {
	for i := range e.bindings {
		if e.bindings[i].name == name {
			e.bindings[i].value = value
			return
		}
	}
	e.bindings = append([]binding{{name: name, value: value}}, e.bindings...)
}

// Get returns the bound value and true, or (NewNil(), false) if name is
// unbound.
func (e *Environment) Get(name string) (Value, bool) {
	for _, b := range e.bindings {
		if b.name == name {
			return b.value, true
		}
	}
	return NewNil(), false
}
