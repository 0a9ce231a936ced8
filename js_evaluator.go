//go:build js_eval

package bindings

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/goliatone/go-bindings/internal/pathref"
)

type jsEvaluator struct {
	cache ProgramCache
}

// NewJSEvaluator constructs a key-path evaluator backed by goja. Each top
// level scope entry is installed as a global before the key path runs as a JS
// expression.
func NewJSEvaluator(opts ...JSEvaluatorOption) Evaluator {
	cfg := applyJSEvaluatorOptions(opts)
	return &jsEvaluator{cache: cfg.cache}
}

func (e *jsEvaluator) Evaluate(scope any, keyPath string) (any, error) {
	compiled, err := e.Compile(keyPath)
	if err != nil {
		return nil, err
	}
	return compiled.Evaluate(scope)
}

func (e *jsEvaluator) Compile(keyPath string) (CompiledPath, error) {
	if keyPath == "" {
		return nil, fmt.Errorf("bindings: key path must not be empty")
	}
	program, err := e.loadOrCompile(keyPath)
	if err != nil {
		return nil, err
	}
	return &jsCompiledPath{
		program: program,
		keyPath: keyPath,
		head:    pathref.Head(keyPath),
	}, nil
}

func (e *jsEvaluator) loadOrCompile(keyPath string) (*goja.Program, error) {
	if e.cache != nil {
		if cached, ok := e.cache.Get(keyPath); ok {
			if program, ok := cached.(*goja.Program); ok {
				return program, nil
			}
		}
	}
	program, err := goja.Compile("keypath", keyPath, true)
	if err != nil {
		return nil, fmt.Errorf("bindings: js compile %q: %w", keyPath, err)
	}
	if e.cache != nil {
		e.cache.Set(keyPath, program)
	}
	return program, nil
}

type jsCompiledPath struct {
	program *goja.Program
	keyPath string
	head    string
}

func (p *jsCompiledPath) Evaluate(scope any) (any, error) {
	if !pathref.Answers(scope, p.head) {
		return nil, fmt.Errorf("%w: %q has no %q", ErrUnknownPath, pathref.TypeName(scope), p.head)
	}
	vm := goja.New()
	for name, value := range pathref.AsMap(scope) {
		if err := vm.Set(name, value); err != nil {
			return nil, fmt.Errorf("bindings: js env %q: %w", name, err)
		}
	}
	result, err := vm.RunProgram(p.program)
	if err != nil {
		return nil, fmt.Errorf("bindings: js eval %q: %w", p.keyPath, err)
	}
	return result.Export(), nil
}

func jsEvaluatorAvailable() bool {
	return true
}
