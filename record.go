package bindings

// Record is the cached outcome of resolving a node's key path and formatter:
// the compiled key-path program, the scope that won the chain walk, the
// normalized formatter handle (nil when the reference was absent), the kinds
// the element accepts and the last value successfully applied. A record only
// exists for nodes whose resolution succeeded; failures leave the cache empty
// for that node.
type Record struct {
	keyPath       string
	formatterName string
	path          CompiledPath
	scope         any
	scopeLabel    string
	formatter     Formatter
	kinds         []Kind

	lastValue any
	hasLast   bool
}

// KeyPath returns the key path the record was resolved for.
func (r *Record) KeyPath() string { return r.keyPath }

// ScopeLabel names the scope that answered the key path.
func (r *Record) ScopeLabel() string { return r.scopeLabel }

// FormatterName returns the raw formatter reference, empty when none.
func (r *Record) FormatterName() string { return r.formatterName }

// LastValue returns the value most recently applied through this record.
func (r *Record) LastValue() (any, bool) {
	return r.lastValue, r.hasLast
}

// Read re-evaluates the cached program against the cached winning scope,
// producing the current raw value without consulting the resolvers. This is
// the whole of what a non-forced refresh may do before re-applying.
func (r *Record) Read() (any, error) {
	return r.path.Evaluate(r.scope)
}

func (r *Record) accepts(kind Kind) bool {
	for _, k := range r.kinds {
		if k == kind {
			return true
		}
	}
	return false
}
