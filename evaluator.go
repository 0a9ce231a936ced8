package bindings

// Evaluator evaluates key paths against candidate scopes. Implementations
// must return an error wrapping ErrUnknownPath when the scope does not answer
// the leading identifier of the path; any other error is treated as the final
// outcome of the resolution and is not retried against further scopes.
type Evaluator interface {
	Evaluate(scope any, keyPath string) (any, error)
	Compile(keyPath string) (CompiledPath, error)
}

// CompiledPath is a reusable key-path program. Binding records hold one
// together with the winning scope, so non-forced refreshes can re-read the
// current raw value without re-entering the resolvers.
type CompiledPath interface {
	Evaluate(scope any) (any, error)
}
