package bindings

import (
	"fmt"
	"reflect"
)

// defaultMaxDepth bounds ancestor walks. A UI tree deeper than this is
// treated as corrupted rather than traversed forever.
const defaultMaxDepth = 512

// scopeEntry is one candidate context a key path or formatter name can be
// resolved against. node is nil for the bound object entry.
type scopeEntry struct {
	owner any
	node  *Node
	label string
}

// buildChain produces the ordered candidate scopes for node: the bound object
// first (at most once), then the node's own element, then each ancestor
// element up to and including the first boundary node. Nodes without an
// element are skipped; they cannot answer anything. Parent cycles and walks
// past maxDepth abort with invariant errors.
func buildChain(node *Node, bound any, maxDepth int) ([]scopeEntry, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: chain requested for nil node", ErrTreeCorrupted)
	}
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	var chain []scopeEntry
	if bound != nil {
		chain = append(chain, scopeEntry{owner: bound, label: "bound"})
	}

	seen := make(map[*Node]struct{})
	depth := 0
	for current := node; current != nil; current = current.parent {
		if _, ok := seen[current]; ok {
			return nil, fmt.Errorf("%w: parent cycle through %q", ErrTreeCorrupted, current.label())
		}
		seen[current] = struct{}{}
		if depth++; depth > maxDepth {
			return nil, fmt.Errorf("%w: no boundary within %d ancestors of %q", ErrBoundaryUnreachable, maxDepth, node.label())
		}
		if current.element != nil && !sameScope(current.element, bound) {
			chain = append(chain, scopeEntry{
				owner: current.element,
				node:  current,
				label: current.label(),
			})
		}
		if current.boundary {
			break
		}
	}
	return chain, nil
}

// sameScope reports identity between two scope values without panicking on
// uncomparable types such as maps.
func sameScope(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	}
	if !ra.Type().Comparable() {
		return false
	}
	return a == b
}
