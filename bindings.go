// Package bindings implements declarative model-to-view bindings for element
// trees. A node carries a key path selecting a value out of a model object
// and an optional formatter reference converting it into something the
// element can render. Resolution happens as late as possible, on bind or
// forced refresh, against an ordered scope chain: the bound object first,
// then the node's own element and its ancestors up to the nearest boundary.
// Successful resolutions are cached per node; a non-forced refresh re-reads
// and re-applies the current raw value without resolving anything again.
package bindings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-bindings/pkg/events"
)

// Engine performs bind and refresh traversals over node trees. All
// traversals are synchronous and single-threaded; callers must serialize
// structural tree changes with bind and refresh calls.
type Engine struct {
	cfg   engineConfig
	cache *Cache
}

// New constructs an Engine. Without options it uses the expr-lang key-path
// evaluator, an in-memory record store and an empty formatter registry.
func New(opts ...Option) *Engine {
	cfg := applyOptions(opts)
	if cfg.logger == nil {
		cfg.logger = noopBindingLogger{}
	}
	if cfg.formatters == nil {
		cfg.formatters = NewFormatterRegistry()
	}
	if cfg.evaluator == nil {
		var exprOpts []ExprEvaluatorOption
		if cfg.programCache != nil {
			exprOpts = append(exprOpts, ExprWithProgramCache(cfg.programCache))
		}
		cfg.evaluator = NewExprEvaluator(exprOpts...)
	}
	return &Engine{
		cfg:   cfg,
		cache: NewCache(cfg.store),
	}
}

// Formatters exposes the engine's registry so hosts can register qualified
// and type-level formatters.
func (e *Engine) Formatters() *FormatterRegistry {
	return e.cfg.formatters
}

// BindToObject binds the tree rooted at root to object and performs a forced
// traversal. A nil object clears the binding and invalidates every record in
// the subtree before the traversal re-resolves what the chain alone can
// still answer. Node-local failures are silent; only invariant violations
// return an error.
func (e *Engine) BindToObject(root *Node, object any) error {
	if root == nil {
		return fmt.Errorf("bindings: root must not be nil")
	}
	root.bound = object
	root.hasBound = true
	verb := "bind"
	if object == nil {
		verb = "unbind"
		e.cache.InvalidateSubtree(root)
	}
	err := e.propagate(root, object, true)
	e.emit(verb, root, err)
	return err
}

// RefreshBindings re-applies values for the tree rooted at root, reusing the
// object bound to the nearest bound ancestor. When forced, every record is
// discarded and resolved again even if the attributes did not change; when
// not forced, only cached records are re-read and re-applied.
func (e *Engine) RefreshBindings(root *Node, forced bool) error {
	if root == nil {
		return fmt.Errorf("bindings: root must not be nil")
	}
	err := e.propagate(root, e.effectiveBound(root), forced)
	e.emit("refresh", root, err)
	return err
}

// Detach removes node from its parent and discards all cached records and
// outcomes for its subtree.
func (e *Engine) Detach(node *Node) {
	if node == nil {
		return
	}
	e.cache.InvalidateSubtree(node)
	node.Detach()
}

// BindingInfo is one row of the debug surface: what a node is bound to and
// how its last resolution or application went.
type BindingInfo struct {
	NodeID    uuid.UUID
	Node      string
	KeyPath   string
	Formatter string
	Scope     string
	Status    Status
	Err       error
	LastValue any
	HasValue  bool
}

// ActiveBindings lists the binding state of every node in the tree rooted at
// root that declares a key path, in traversal order. Read-only; consumers
// such as debug overlays never mutate engine state through it.
func (e *Engine) ActiveBindings(root *Node) []BindingInfo {
	var infos []BindingInfo
	e.collectBindings(root, &infos)
	return infos
}

func (e *Engine) collectBindings(node *Node, infos *[]BindingInfo) {
	if node == nil {
		return
	}
	if node.keyPath != "" {
		info := BindingInfo{
			NodeID:    node.id,
			Node:      node.label(),
			KeyPath:   node.keyPath,
			Formatter: node.formatterName,
		}
		outcome := e.cache.OutcomeOf(node)
		info.Status = outcome.Status()
		info.Err = outcome.Err
		if record, ok := e.cache.Get(node); ok {
			info.Scope = record.ScopeLabel()
			info.LastValue, info.HasValue = record.LastValue()
		}
		*infos = append(*infos, info)
	}
	for _, child := range node.children {
		e.collectBindings(child, infos)
	}
}

func (e *Engine) evaluator() Evaluator {
	return e.cfg.evaluator
}

// effectiveBound returns the object bound to the nearest bound ancestor of
// node, including node itself.
func (e *Engine) effectiveBound(node *Node) any {
	maxDepth := e.cfg.maxDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	depth := 0
	for current := node; current != nil; current = current.parent {
		if current.hasBound {
			return current.bound
		}
		if depth++; depth > maxDepth {
			return nil
		}
	}
	return nil
}

func (e *Engine) log(node *Node, stage string, duration time.Duration, err error) {
	e.cfg.logger.LogBinding(BindingLogEvent{
		NodeID:   node.id.String(),
		Node:     node.label(),
		KeyPath:  node.keyPath,
		Stage:    stage,
		Duration: duration,
		Err:      err,
	})
}

func (e *Engine) emit(verb string, root *Node, err error) {
	if !e.cfg.hooks.Enabled() {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	_ = e.cfg.hooks.Notify(context.Background(), events.Event{
		Verb:       verb,
		NodeID:     root.id.String(),
		Node:       root.label(),
		KeyPath:    root.keyPath,
		Status:     status,
		OccurredAt: time.Now(),
	})
}
