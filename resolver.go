package bindings

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-bindings/internal/pathref"
)

// resolvePath evaluates keyPath against each scope in chain order. The first
// scope that does not report an unknown path wins. An evaluation failure on a
// scope that did recognize the path is final: the value is genuinely absent
// or invalid there, so no further scope is tried.
func resolvePath(evaluator Evaluator, chain []scopeEntry, keyPath string) (any, scopeEntry, CompiledPath, error) {
	compiled, err := evaluator.Compile(keyPath)
	if err != nil {
		return nil, scopeEntry{}, nil, err
	}
	for _, candidate := range chain {
		value, evalErr := compiled.Evaluate(candidate.owner)
		if evalErr == nil {
			return value, candidate, compiled, nil
		}
		if errors.Is(evalErr, ErrUnknownPath) {
			continue
		}
		return nil, candidate, nil, evalErr
	}
	return nil, scopeEntry{}, nil, fmt.Errorf("%w: %q", ErrPathNotFound, keyPath)
}

// resolveFormatter turns a formatter reference into a handle. Qualified
// "Type.Method" names hit the registry directly and never consult the chain.
// Bare names walk the chain, trying at each scope the instance level first
// (the FormatterProvider capability, then reflected methods) and the type
// level second (registry entry keyed by the scope's type name).
func resolveFormatter(registry *FormatterRegistry, chain []scopeEntry, name string) (Formatter, error) {
	if name == "" {
		return nil, nil
	}
	if typeName, method, ok := splitQualified(name); ok {
		if formatter, ok := registry.Lookup(typeName, method); ok {
			return formatter, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrFormatterNotFound, name)
	}
	for _, entry := range chain {
		if provider, ok := entry.owner.(FormatterProvider); ok {
			if formatter, ok := provider.BindingFormatter(name); ok {
				return formatter, nil
			}
		}
		if formatter, ok := methodFormatter(entry.owner, name); ok {
			return formatter, nil
		}
		if formatter, ok := registry.Lookup(pathref.TypeName(entry.owner), name); ok {
			return formatter, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrFormatterNotFound, name)
}
