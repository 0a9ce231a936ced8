package bindings

import (
	"fmt"
	"time"
)

// applyRecord runs the value application step: formatter, kind check,
// delivery. Delivery always happens when the checks pass, even for a value
// identical to the last applied one; elements are expected to be idempotent.
// On failure the element keeps displaying its previous value.
func (e *Engine) applyRecord(node *Node, updater Updater, record *Record, raw any) {
	start := time.Now()

	value := raw
	if record.formatter != nil {
		formatted, err := record.formatter.Apply(raw)
		if err != nil {
			berr := newBindingError(FailureEvaluation, node, err)
			e.cache.SetOutcome(node, berr)
			e.log(node, stageApply, time.Since(start), berr)
			return
		}
		value = formatted
	}

	kind := KindOf(value)
	if !record.accepts(kind) {
		err := fmt.Errorf("%w: %s value %v for node %q", ErrUnsupportedValue, kind, value, node.label())
		berr := newBindingError(FailureUnsupportedValue, node, err)
		e.cache.SetOutcome(node, berr)
		e.log(node, stageApply, time.Since(start), berr)
		return
	}

	updater.UpdateValue(value)
	record.lastValue = value
	record.hasLast = true
	e.cache.SetOutcome(node, nil)
	e.log(node, stageApply, time.Since(start), nil)
}
