package bindings

import (
	"fmt"
	"testing"
)

func benchTree(width int) (*Node, map[string]any) {
	root := NewNode(nil, WithName("root"), WithBoundary())
	model := map[string]any{}
	for i := 0; i < width; i++ {
		key := fmt.Sprintf("field%d", i)
		model[key] = fmt.Sprintf("value-%d", i)
		child := NewNode(&fakeView{}, WithName(key), WithKeyPath(key))
		if err := root.AttachChild(child); err != nil {
			panic(err)
		}
	}
	return root, model
}

func BenchmarkBind(b *testing.B) {
	root, model := benchTree(32)
	engine := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := engine.BindToObject(root, model); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRefresh(b *testing.B) {
	root, model := benchTree(32)
	engine := New()
	if err := engine.BindToObject(root, model); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := engine.RefreshBindings(root, false); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkForcedRefresh(b *testing.B) {
	root, model := benchTree(32)
	engine := New(WithProgramCache(NewProgramCache()))
	if err := engine.BindToObject(root, model); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := engine.RefreshBindings(root, true); err != nil {
			b.Fatal(err)
		}
	}
}
