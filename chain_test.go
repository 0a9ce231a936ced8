package bindings

import (
	"errors"
	"testing"
)

func chainLabels(chain []scopeEntry) []string {
	labels := make([]string, 0, len(chain))
	for _, entry := range chain {
		labels = append(labels, entry.label)
	}
	return labels
}

func TestBuildChainOrderAndBoundaryClipping(t *testing.T) {
	beyond := NewNode(map[string]any{"x": 1}, WithName("beyond"))
	boundary := NewNode(map[string]any{"x": 2}, WithName("screen"), WithBoundary())
	section := NewNode(map[string]any{"x": 3}, WithName("section"))
	leaf := NewNode(map[string]any{"x": 4}, WithName("leaf"))
	if err := beyond.AttachChild(boundary); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := boundary.AttachChild(section); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := section.AttachChild(leaf); err != nil {
		t.Fatalf("attach: %v", err)
	}

	bound := map[string]any{"x": 0}
	chain, err := buildChain(leaf, bound, 0)
	if err != nil {
		t.Fatalf("buildChain failed: %v", err)
	}

	want := []string{"bound", "leaf", "section", "screen"}
	got := chainLabels(chain)
	if len(got) != len(want) {
		t.Fatalf("chain %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chain %v, want %v", got, want)
		}
	}
	// nothing above the boundary participates
	for _, entry := range chain {
		if entry.node == beyond {
			t.Fatal("boundary must clip ancestors above it")
		}
	}
}

func TestBuildChainSkipsNilElements(t *testing.T) {
	root := NewNode(nil, WithName("root"), WithBoundary())
	leaf := NewNode(map[string]any{"x": 1}, WithName("leaf"))
	if err := root.AttachChild(leaf); err != nil {
		t.Fatalf("attach: %v", err)
	}

	chain, err := buildChain(leaf, nil, 0)
	if err != nil {
		t.Fatalf("buildChain failed: %v", err)
	}
	if len(chain) != 1 || chain[0].label != "leaf" {
		t.Fatalf("expected only the leaf element, got %v", chainLabels(chain))
	}
}

func TestBuildChainBoundObjectAppearsOnce(t *testing.T) {
	model := map[string]any{"name": "Ann"}
	root := NewNode(model, WithName("root"), WithBoundary())
	leaf := NewNode(map[string]any{"x": 1}, WithName("leaf"))
	if err := root.AttachChild(leaf); err != nil {
		t.Fatalf("attach: %v", err)
	}

	chain, err := buildChain(leaf, model, 0)
	if err != nil {
		t.Fatalf("buildChain failed: %v", err)
	}
	count := 0
	for _, entry := range chain {
		if sameScope(entry.owner, model) {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("bound object must appear exactly once, saw %d in %v", count, chainLabels(chain))
	}
}

func TestBuildChainDetectsParentCycle(t *testing.T) {
	a := NewNode(map[string]any{}, WithName("a"))
	b := NewNode(map[string]any{}, WithName("b"))
	if err := a.AttachChild(b); err != nil {
		t.Fatalf("attach: %v", err)
	}
	a.parent = b

	if _, err := buildChain(b, nil, 0); !errors.Is(err, ErrTreeCorrupted) {
		t.Fatalf("expected ErrTreeCorrupted, got %v", err)
	}
}

func TestBuildChainDepthGuard(t *testing.T) {
	leaf := NewNode(map[string]any{}, WithName("leaf"))
	current := leaf
	for i := 0; i < 5; i++ {
		parent := NewNode(map[string]any{})
		if err := parent.AttachChild(current); err != nil {
			t.Fatalf("attach: %v", err)
		}
		current = parent
	}

	if _, err := buildChain(leaf, nil, 3); !errors.Is(err, ErrBoundaryUnreachable) {
		t.Fatalf("expected ErrBoundaryUnreachable, got %v", err)
	}
}

func TestAttachChildRejectsSecondParent(t *testing.T) {
	a := NewNode(nil, WithName("a"))
	b := NewNode(nil, WithName("b"))
	child := NewNode(nil, WithName("child"))
	if err := a.AttachChild(child); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := b.AttachChild(child); err == nil {
		t.Fatal("expected rejection of a second parent")
	}
}

func TestAttachChildRejectsCycle(t *testing.T) {
	a := NewNode(nil, WithName("a"))
	b := NewNode(nil, WithName("b"))
	if err := a.AttachChild(b); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := b.AttachChild(a); !errors.Is(err, ErrTreeCorrupted) {
		t.Fatalf("expected ErrTreeCorrupted, got %v", err)
	}
}
