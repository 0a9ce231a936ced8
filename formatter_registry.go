package bindings

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// FormatterRegistry stores formatters under qualified "Type.Method" names.
// Qualified formatter references bypass the scope chain and hit the registry
// directly; bare references fall back to it for type-level lookups, keyed by
// the scope's type name. Names are case-insensitive.
type FormatterRegistry struct {
	mu         sync.RWMutex
	formatters map[string]Formatter
}

// NewFormatterRegistry constructs an empty registry.
func NewFormatterRegistry() *FormatterRegistry {
	return &FormatterRegistry{
		formatters: make(map[string]Formatter),
	}
}

// Register stores a formatter under the qualified name "Type.Method",
// guarding against duplicates. The formatter may be a Formatter, a
// func(any) (any, error) or a func(any) any.
func (r *FormatterRegistry) Register(name string, formatter any) error {
	typeName, method, ok := splitQualified(name)
	if !ok {
		return fmt.Errorf("bindings: formatter name %q must be qualified as Type.Method", name)
	}
	normalized, err := normalizeFormatter(formatter)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.formatters == nil {
		r.formatters = make(map[string]Formatter)
	}
	key := registryKey(typeName, method)
	if _, exists := r.formatters[key]; exists {
		return fmt.Errorf("bindings: formatter %q already registered", name)
	}
	r.formatters[key] = normalized
	return nil
}

// Lookup returns the formatter registered for typeName and method.
func (r *FormatterRegistry) Lookup(typeName, method string) (Formatter, bool) {
	if r == nil || typeName == "" || method == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	formatter, ok := r.formatters[registryKey(typeName, method)]
	return formatter, ok
}

// Clone returns a shallow copy of the registry.
func (r *FormatterRegistry) Clone() *FormatterRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FormatterRegistry{
		formatters: make(map[string]Formatter, len(r.formatters)),
	}
	for name, formatter := range r.formatters {
		clone.formatters[name] = formatter
	}
	return clone
}

// Names returns registered qualified names sorted alphabetically.
func (r *FormatterRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func registryKey(typeName, method string) string {
	return strings.ToLower(typeName) + "." + strings.ToLower(method)
}

// splitQualified splits "Type.Method" formatter references. Bare references
// contain no dot and report ok=false.
func splitQualified(name string) (typeName, method string, ok bool) {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || idx == len(name)-1 {
		return "", "", false
	}
	return name[:idx], name[idx+1:], true
}
