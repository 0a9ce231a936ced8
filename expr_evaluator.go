package bindings

import (
	"fmt"
	"reflect"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	"github.com/goliatone/go-bindings/internal/pathref"
)

// ExprEvaluatorOption configures an expr evaluator instance.
type ExprEvaluatorOption func(*exprEvaluator)

// ExprWithProgramCache wires a ProgramCache into the expr evaluator.
func ExprWithProgramCache(cache ProgramCache) ExprEvaluatorOption {
	return func(e *exprEvaluator) {
		e.cache = cache
	}
}

// exprEvaluator evaluates key paths using github.com/expr-lang/expr.
type exprEvaluator struct {
	cache ProgramCache
}

// NewExprEvaluator constructs the default key-path evaluator, backed by
// expr-lang/expr. It handles dotted paths, indexing and the library's
// aggregate operators over structs and string-keyed maps.
func NewExprEvaluator(opts ...ExprEvaluatorOption) Evaluator {
	e := &exprEvaluator{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Evaluate compiles and runs keyPath against scope.
func (e *exprEvaluator) Evaluate(scope any, keyPath string) (any, error) {
	compiled, err := e.Compile(keyPath)
	if err != nil {
		return nil, err
	}
	return compiled.Evaluate(scope)
}

// Compile returns a reusable program for keyPath. Programs are compiled
// without a typed environment so one program serves every scope shape.
func (e *exprEvaluator) Compile(keyPath string) (CompiledPath, error) {
	if keyPath == "" {
		return nil, fmt.Errorf("bindings: key path must not be empty")
	}
	program, err := e.loadOrCompile(keyPath)
	if err != nil {
		return nil, err
	}
	return &exprCompiledPath{
		program: program,
		keyPath: keyPath,
		head:    pathref.Head(keyPath),
	}, nil
}

func (e *exprEvaluator) loadOrCompile(keyPath string) (*exprvm.Program, error) {
	if e.cache != nil {
		if cached, ok := e.cache.Get(keyPath); ok {
			if program, ok := cached.(*exprvm.Program); ok {
				return program, nil
			}
		}
	}
	program, err := exprlang.Compile(keyPath,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("bindings: expr compile %q: %w", keyPath, err)
	}
	if e.cache != nil {
		e.cache.Set(keyPath, program)
	}
	return program, nil
}

type exprCompiledPath struct {
	program *exprvm.Program
	keyPath string
	head    string
}

func (p *exprCompiledPath) Evaluate(scope any) (any, error) {
	if !pathref.Answers(scope, p.head) {
		return nil, fmt.Errorf("%w: %q has no %q", ErrUnknownPath, pathref.TypeName(scope), p.head)
	}
	// expr runs against maps and structs directly; flattening keeps methods
	// out but covers the remaining shapes.
	env := scope
	if !exprEnvCompatible(scope) {
		env = pathref.AsMap(scope)
	}
	result, err := exprlang.Run(p.program, env)
	if err != nil {
		return nil, fmt.Errorf("bindings: expr eval %q: %w", p.keyPath, err)
	}
	return result, nil
}

func exprEnvCompatible(scope any) bool {
	rv := reflect.ValueOf(scope)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		return true
	case reflect.Map:
		return rv.Type().Key().Kind() == reflect.String
	default:
		return false
	}
}
