package bindings

import (
	"fmt"

	"github.com/google/uuid"
)

// Node is a single element in a UI tree. It carries the two declarative
// binding attributes (key path and formatter reference), the boundary flag of
// container-like nodes, and the element value that actually renders. Setting
// attributes never triggers resolution; resolution happens only inside bind
// and forced refresh traversals once the whole chain is known.
type Node struct {
	id            uuid.UUID
	name          string
	keyPath       string
	formatterName string
	inputChecked  bool
	boundary      bool
	element       any
	parent        *Node
	children      []*Node

	// object bound at this node via BindToObject; hasBound distinguishes a
	// nil bind (cleared) from a node never bound at all.
	bound    any
	hasBound bool
}

// NodeOption configures a Node at construction time.
type NodeOption func(*Node)

// WithName sets a human-friendly label used in logs and the debug surface.
func WithName(name string) NodeOption {
	return func(n *Node) {
		n.name = name
	}
}

// WithKeyPath sets the key path selecting the bound value.
func WithKeyPath(keyPath string) NodeOption {
	return func(n *Node) {
		n.keyPath = keyPath
	}
}

// WithFormatterName sets the formatter reference, either a bare method name
// resolved along the scope chain or a qualified "Type.Method" name resolved
// against the registry.
func WithFormatterName(name string) NodeOption {
	return func(n *Node) {
		n.formatterName = name
	}
}

// WithBoundary marks the node as a scope boundary. Chain construction for
// descendants stops at (and includes) the nearest boundary ancestor.
func WithBoundary() NodeOption {
	return func(n *Node) {
		n.boundary = true
	}
}

// WithInputChecked governs whether editable elements validate and echo input.
// Read and exposed only; the engine attaches no semantics to it.
func WithInputChecked(checked bool) NodeOption {
	return func(n *Node) {
		n.inputChecked = checked
	}
}

// NewNode constructs a tree node wrapping element. A nil element is a
// transparent container: it cannot answer key paths and receives no values.
func NewNode(element any, opts ...NodeOption) *Node {
	n := &Node{
		id:           uuid.New(),
		element:      element,
		inputChecked: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	return n
}

// ID returns the node identity used as cache key and debug identity.
func (n *Node) ID() uuid.UUID { return n.id }

// Name returns the configured label, empty when none was set.
func (n *Node) Name() string { return n.name }

// KeyPath returns the raw key-path attribute.
func (n *Node) KeyPath() string { return n.keyPath }

// SetKeyPath replaces the key-path attribute. Takes effect on the next bind
// or forced refresh.
func (n *Node) SetKeyPath(keyPath string) { n.keyPath = keyPath }

// FormatterName returns the raw formatter reference.
func (n *Node) FormatterName() string { return n.formatterName }

// SetFormatterName replaces the formatter reference. Takes effect on the next
// bind or forced refresh.
func (n *Node) SetFormatterName(name string) { n.formatterName = name }

// InputChecked reports the bindInputChecked attribute.
func (n *Node) InputChecked() bool { return n.inputChecked }

// Boundary reports whether the node clips upward chain construction.
func (n *Node) Boundary() bool { return n.boundary }

// Element returns the wrapped element value.
func (n *Node) Element() any { return n.element }

// Parent returns the parent node, nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list in insertion order.
func (n *Node) Children() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// AttachChild appends child to the node's children. A child may have at most
// one parent, and attaching an ancestor would create a cycle; both are
// rejected.
func (n *Node) AttachChild(child *Node) error {
	if child == nil {
		return fmt.Errorf("bindings: child must not be nil")
	}
	if child.parent != nil {
		return fmt.Errorf("bindings: node %q already has a parent", child.label())
	}
	for anc := n; anc != nil; anc = anc.parent {
		if anc == child {
			return fmt.Errorf("%w: attaching %q creates a cycle", ErrTreeCorrupted, child.label())
		}
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// Detach removes the node from its parent. Structural only; use
// Engine.Detach to also discard cached binding records for the subtree.
func (n *Node) Detach() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, sibling := range siblings {
		if sibling == n {
			n.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// label is the identity used in errors, logs and traces.
func (n *Node) label() string {
	if n == nil {
		return "<nil>"
	}
	if n.name != "" {
		return n.name
	}
	if n.element != nil {
		return fmt.Sprintf("%T", n.element)
	}
	return n.id.String()[:8]
}

// recursive reports whether the traversal descends into children, honoring
// the element's RecursionControl capability.
func (n *Node) recursive() bool {
	if rc, ok := n.element.(RecursionControl); ok {
		return rc.BindsRecursively()
	}
	return true
}

// acceptedKinds returns the element's declared kinds, defaulting to text.
func (n *Node) acceptedKinds() []Kind {
	if kd, ok := n.element.(KindDeclarer); ok {
		if kinds := kd.AcceptedKinds(); len(kinds) > 0 {
			return kinds
		}
	}
	return []Kind{KindText}
}
