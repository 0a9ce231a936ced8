package bindings

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"

	"github.com/goliatone/go-bindings/internal/pathref"
)

// CELEvaluatorOption configures the CEL evaluator.
type CELEvaluatorOption func(*celEvaluator)

// CELWithProgramCache wires a ProgramCache into the CEL evaluator.
func CELWithProgramCache(cache ProgramCache) CELEvaluatorOption {
	return func(e *celEvaluator) {
		e.cache = cache
	}
}

type celEvaluator struct {
	cache ProgramCache
}

// NewCELEvaluator constructs a key-path evaluator backed by cel-go. Scopes
// are flattened into a string-keyed activation, so key paths address exported
// struct fields and map keys but not methods.
func NewCELEvaluator(opts ...CELEvaluatorOption) Evaluator {
	e := &celEvaluator{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *celEvaluator) Evaluate(scope any, keyPath string) (any, error) {
	compiled, err := e.Compile(keyPath)
	if err != nil {
		return nil, err
	}
	return compiled.Evaluate(scope)
}

func (e *celEvaluator) Compile(keyPath string) (CompiledPath, error) {
	if keyPath == "" {
		return nil, fmt.Errorf("bindings: key path must not be empty")
	}
	return &celCompiledPath{
		evaluator: e,
		keyPath:   keyPath,
		head:      pathref.Head(keyPath),
	}, nil
}

type celCompiledPath struct {
	evaluator *celEvaluator
	keyPath   string
	head      string
}

func (p *celCompiledPath) Evaluate(scope any) (any, error) {
	if !pathref.Answers(scope, p.head) {
		return nil, fmt.Errorf("%w: %q has no %q", ErrUnknownPath, pathref.TypeName(scope), p.head)
	}
	activation := pathref.AsMap(scope)
	program, err := p.evaluator.loadOrCompile(p.keyPath, activation)
	if err != nil {
		return nil, err
	}
	out, _, err := program.Eval(activation)
	if err != nil {
		return nil, fmt.Errorf("bindings: cel eval %q: %w", p.keyPath, err)
	}
	return out.Value(), nil
}

// loadOrCompile compiles keyPath against an environment declaring each top
// level activation key as a dynamic variable. Programs are cached per key
// path; activations with the same head shape reuse them.
func (e *celEvaluator) loadOrCompile(keyPath string, activation map[string]any) (celgo.Program, error) {
	if e.cache != nil {
		if cached, ok := e.cache.Get(keyPath); ok {
			if program, ok := cached.(celgo.Program); ok {
				return program, nil
			}
		}
	}
	envOpts := make([]celgo.EnvOption, 0, len(activation))
	for name := range activation {
		envOpts = append(envOpts, celgo.Variable(name, celgo.DynType))
	}
	env, err := celgo.NewEnv(envOpts...)
	if err != nil {
		return nil, fmt.Errorf("bindings: cel env: %w", err)
	}
	ast, issues := env.Compile(keyPath)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("bindings: cel compile %q: %w", keyPath, issues.Err())
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("bindings: cel program %q: %w", keyPath, err)
	}
	if e.cache != nil {
		e.cache.Set(keyPath, program)
	}
	return program, nil
}
