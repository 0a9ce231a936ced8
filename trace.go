package bindings

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Trace captures how a node's key path fares against every scope in its
// chain, in precedence order. Unlike resolution it does not stop at the
// first answer, which makes it useful for debugging shadowed scopes.
type Trace struct {
	KeyPath string `json:"key_path"`
	Steps   []Step `json:"steps"`
}

// Step details one consulted scope.
type Step struct {
	Scope    string `json:"scope"`
	Answered bool   `json:"answered"`
	Value    any    `json:"value,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ToJSON serialises the trace for logging or transport.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a payload previously generated via ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}

// Explain evaluates node's key path against each scope in its chain and
// reports the outcome per scope. The engine state is not touched: no records
// are created, replaced or invalidated.
func (e *Engine) Explain(node *Node) (Trace, error) {
	if node == nil {
		return Trace{}, fmt.Errorf("bindings: node must not be nil")
	}
	if node.keyPath == "" {
		return Trace{}, fmt.Errorf("bindings: node %q declares no key path", node.label())
	}
	chain, err := buildChain(node, e.effectiveBound(node), e.cfg.maxDepth)
	if err != nil {
		return Trace{}, err
	}
	compiled, err := e.evaluator().Compile(node.keyPath)
	if err != nil {
		return Trace{}, err
	}
	trace := Trace{KeyPath: node.keyPath}
	for _, entry := range chain {
		step := Step{Scope: entry.label}
		value, evalErr := compiled.Evaluate(entry.owner)
		switch {
		case evalErr == nil:
			step.Answered = true
			step.Value = value
		case errors.Is(evalErr, ErrUnknownPath):
		default:
			step.Answered = true
			step.Error = evalErr.Error()
		}
		trace.Steps = append(trace.Steps, step)
	}
	return trace, nil
}
