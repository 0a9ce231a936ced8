package bindings

import "time"

// propagate visits node and, unless the node opts out of recursion, each
// child in insertion order. A node that declares a bound object switches the
// bound object for its whole subtree; boundary nodes clip only the upward
// chain walk, never the downward propagation of the bound object. Node-local
// failures are recorded and swallowed; only invariant violations surface.
func (e *Engine) propagate(node *Node, bound any, forced bool) error {
	if node == nil {
		return nil
	}
	if node.hasBound {
		bound = node.bound
	}
	if err := e.visit(node, bound, forced); err != nil {
		return err
	}
	if !node.recursive() {
		return nil
	}
	for _, child := range node.children {
		if err := e.propagate(child, bound, forced); err != nil {
			return err
		}
	}
	return nil
}

// visit performs resolution and application for a single node. Nodes without
// a key path, or whose element cannot receive values, are transparent
// containers and resolve nothing.
func (e *Engine) visit(node *Node, bound any, forced bool) error {
	if node.keyPath == "" {
		return nil
	}
	updater, ok := node.element.(Updater)
	if !ok {
		return nil
	}
	if !forced {
		e.refreshNode(node, updater)
		return nil
	}
	return e.resolveNode(node, updater, bound)
}

// refreshNode re-applies the current raw value through the cached record. It
// never re-enters the resolvers: an unresolved node stays unresolved until
// the next forced traversal.
func (e *Engine) refreshNode(node *Node, updater Updater) {
	record, ok := e.cache.Get(node)
	if !ok {
		return
	}
	start := time.Now()
	raw, err := record.Read()
	if err != nil {
		berr := newBindingError(failureKindOf(err), node, err)
		e.cache.SetOutcome(node, berr)
		e.log(node, stageRefresh, time.Since(start), berr)
		return
	}
	e.applyRecord(node, updater, record, raw)
}

// resolveNode discards any cached record and performs full resolution: chain
// construction, key-path resolution, formatter resolution, application.
func (e *Engine) resolveNode(node *Node, updater Updater, bound any) error {
	e.cache.Invalidate(node)

	start := time.Now()
	chain, err := buildChain(node, bound, e.cfg.maxDepth)
	if err != nil {
		// tree corruption or unreachable boundary aborts the traversal
		return err
	}

	value, winner, compiled, err := resolvePath(e.evaluator(), chain, node.keyPath)
	if err != nil {
		berr := newBindingError(failureKindOf(err), node, err)
		e.cache.SetOutcome(node, berr)
		e.log(node, stageResolve, time.Since(start), berr)
		return nil
	}

	formatter, err := resolveFormatter(e.cfg.formatters, chain, node.formatterName)
	if err != nil {
		berr := newBindingError(failureKindOf(err), node, err)
		e.cache.SetOutcome(node, berr)
		e.log(node, stageResolve, time.Since(start), berr)
		return nil
	}

	record := &Record{
		keyPath:       node.keyPath,
		formatterName: node.formatterName,
		path:          compiled,
		scope:         winner.owner,
		scopeLabel:    winner.label,
		formatter:     formatter,
		kinds:         node.acceptedKinds(),
	}
	e.cache.Put(node, record)
	e.log(node, stageResolve, time.Since(start), nil)

	e.applyRecord(node, updater, record, value)
	return nil
}
