package bindings

import (
	"fmt"
	"reflect"

	"github.com/goliatone/go-bindings/internal/pathref"
)

// Formatter converts a raw resolved value into a display-compatible value.
// Both routine shapes a scope can expose (direct converter and converter
// factory) are normalized into this handle before being cached.
type Formatter interface {
	Apply(value any) (any, error)
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(value any) (any, error)

// Apply implements Formatter.
func (f FormatterFunc) Apply(value any) (any, error) {
	if f == nil {
		return value, nil
	}
	return f(value)
}

// normalizeFormatter widens the accepted registration shapes into a
// Formatter handle.
func normalizeFormatter(v any) (Formatter, error) {
	switch fn := v.(type) {
	case nil:
		return nil, fmt.Errorf("bindings: formatter is nil")
	case Formatter:
		return fn, nil
	case func(any) (any, error):
		return FormatterFunc(fn), nil
	case func(any) any:
		return FormatterFunc(func(value any) (any, error) {
			return fn(value), nil
		}), nil
	default:
		return nil, fmt.Errorf("bindings: unsupported formatter shape %T", v)
	}
}

var formatterType = reflect.TypeOf((*Formatter)(nil)).Elem()
var errorType = reflect.TypeOf((*error)(nil)).Elem()

// methodFormatter looks up a method named name on scope and normalizes it
// into a Formatter. Supported shapes:
//
//	func() Formatter          converter factory
//	func(in) out              direct conversion
//	func(in) (out, error)     direct conversion with error
func methodFormatter(scope any, name string) (Formatter, bool) {
	method, ok := pathref.Method(scope, name)
	if !ok {
		return nil, false
	}
	t := method.Type()
	switch {
	case t.NumIn() == 0 && t.NumOut() == 1 && t.Out(0).Implements(formatterType):
		result := method.Call(nil)[0]
		formatter, ok := result.Interface().(Formatter)
		if !ok || formatter == nil {
			return nil, false
		}
		return formatter, true
	case t.NumIn() == 1 && t.NumOut() == 1 && !t.Out(0).Implements(errorType):
		return callFormatter(method, name, false), true
	case t.NumIn() == 1 && t.NumOut() == 2 && t.Out(1) == errorType:
		return callFormatter(method, name, true), true
	default:
		return nil, false
	}
}

func callFormatter(method reflect.Value, name string, withError bool) Formatter {
	return FormatterFunc(func(value any) (any, error) {
		in := reflect.ValueOf(value)
		paramType := method.Type().In(0)
		if !in.IsValid() {
			in = reflect.Zero(paramType)
		} else if !in.Type().AssignableTo(paramType) {
			if !in.Type().ConvertibleTo(paramType) {
				return nil, fmt.Errorf("bindings: formatter %q cannot take %T", name, value)
			}
			in = in.Convert(paramType)
		}
		out := method.Call([]reflect.Value{in})
		if withError {
			if err, _ := out[1].Interface().(error); err != nil {
				return nil, fmt.Errorf("bindings: formatter %q: %w", name, err)
			}
		}
		return out[0].Interface(), nil
	})
}
