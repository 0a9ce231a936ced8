package bindings

import (
	"errors"
	"testing"
)

type account struct {
	Owner   person
	Balance float64
}

type person struct {
	Name string
}

func TestExprEvaluatorMapScope(t *testing.T) {
	evaluator := NewExprEvaluator()
	scope := map[string]any{
		"user": map[string]any{"name": "Ann"},
		"n":    3,
	}

	value, err := evaluator.Evaluate(scope, "user.name")
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if value != "Ann" {
		t.Fatalf("got %v", value)
	}

	value, err = evaluator.Evaluate(scope, "n")
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if value != 3 {
		t.Fatalf("got %v", value)
	}
}

func TestExprEvaluatorStructScope(t *testing.T) {
	evaluator := NewExprEvaluator()
	scope := account{Owner: person{Name: "Ann"}, Balance: 12.5}

	value, err := evaluator.Evaluate(scope, "Owner.Name")
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if value != "Ann" {
		t.Fatalf("got %v", value)
	}

	// pointer scopes behave like their element
	value, err = evaluator.Evaluate(&scope, "Balance")
	if err != nil {
		t.Fatalf("evaluate on pointer failed: %v", err)
	}
	if value != 12.5 {
		t.Fatalf("got %v", value)
	}
}

func TestExprEvaluatorUnknownHead(t *testing.T) {
	evaluator := NewExprEvaluator()
	_, err := evaluator.Evaluate(account{}, "missing")
	if !errors.Is(err, ErrUnknownPath) {
		t.Fatalf("expected ErrUnknownPath, got %v", err)
	}
	_, err = evaluator.Evaluate(map[string]any{"a": 1}, "b")
	if !errors.Is(err, ErrUnknownPath) {
		t.Fatalf("expected ErrUnknownPath for missing map key, got %v", err)
	}
}

func TestExprEvaluatorKnownHeadFailureIsNotUnknown(t *testing.T) {
	evaluator := NewExprEvaluator()
	_, err := evaluator.Evaluate(map[string]any{"user": nil}, "user.name")
	if err == nil {
		t.Fatal("expected an evaluation error")
	}
	if errors.Is(err, ErrUnknownPath) {
		t.Fatalf("a recognized head must not report unknown, got %v", err)
	}
}

func TestExprEvaluatorEmptyKeyPath(t *testing.T) {
	if _, err := NewExprEvaluator().Compile(""); err == nil {
		t.Fatal("empty key paths must not compile")
	}
}

func TestExprEvaluatorProgramCache(t *testing.T) {
	cache := NewProgramCache()
	evaluator := NewExprEvaluator(ExprWithProgramCache(cache))

	scope := map[string]any{"name": "Ann"}
	if _, err := evaluator.Evaluate(scope, "name"); err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	cached, ok := cache.Get("name")
	if !ok || cached == nil {
		t.Fatal("compiled program should land in the cache")
	}

	// second evaluation reuses the cached program
	value, err := evaluator.Evaluate(scope, "name")
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if value != "Ann" {
		t.Fatalf("got %v", value)
	}
}

func TestCompiledPathIsReusableAcrossScopes(t *testing.T) {
	compiled, err := NewExprEvaluator().Compile("Owner.Name")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	for _, name := range []string{"Ann", "Bea"} {
		value, err := compiled.Evaluate(account{Owner: person{Name: name}})
		if err != nil {
			t.Fatalf("evaluate failed: %v", err)
		}
		if value != name {
			t.Fatalf("got %v, want %v", value, name)
		}
	}
}
