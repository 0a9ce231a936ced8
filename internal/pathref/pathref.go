// Package pathref contains the reflection helpers shared by the key-path
// evaluators. A scope "answers" a key path when the leading identifier of the
// path names something the scope can produce: a map key, an exported struct
// field, or a method. Evaluators use this to distinguish "this scope does not
// know this name" (keep searching the chain) from genuine evaluation failures.
package pathref

import (
	"reflect"
	"strings"
	"unicode"
)

// Head extracts the leading identifier of a key path. For "account.owner.name"
// it returns "account", for "items[0].label" it returns "items". An empty
// string means the path has no identifier head (e.g. a literal expression).
func Head(keyPath string) string {
	keyPath = strings.TrimSpace(keyPath)
	for i, r := range keyPath {
		if unicode.IsLetter(r) || r == '_' || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return keyPath[:i]
	}
	return keyPath
}

// Answers reports whether scope can produce a value for the identifier head.
func Answers(scope any, head string) bool {
	if scope == nil || head == "" {
		return false
	}
	rv := reflect.ValueOf(scope)
	if hasMethod(rv, head) {
		return true
	}
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return false
		}
		key := reflect.ValueOf(head).Convert(rv.Type().Key())
		return rv.MapIndex(key).IsValid()
	case reflect.Struct:
		field, ok := rv.Type().FieldByName(head)
		return ok && field.IsExported()
	default:
		return false
	}
}

// Method returns the method named name on scope, trying the value itself and
// then a pointer to it when the value is addressable through a copy.
func Method(scope any, name string) (reflect.Value, bool) {
	if scope == nil || name == "" {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(scope)
	if m := rv.MethodByName(name); m.IsValid() {
		return m, true
	}
	if rv.Kind() != reflect.Pointer {
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		if m := ptr.MethodByName(name); m.IsValid() {
			return m, true
		}
	}
	return reflect.Value{}, false
}

func hasMethod(rv reflect.Value, name string) bool {
	if !rv.IsValid() {
		return false
	}
	if rv.MethodByName(name).IsValid() {
		return true
	}
	if rv.Kind() != reflect.Pointer {
		_, ok := reflect.PointerTo(rv.Type()).MethodByName(name)
		return ok
	}
	return false
}

// TypeName returns the bare type name of scope with pointers stripped, used to
// key type-level formatter lookups. Anonymous and nil scopes yield "".
func TypeName(scope any) string {
	if scope == nil {
		return ""
	}
	t := reflect.TypeOf(scope)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// AsMap flattens scope into a string-keyed map for evaluators that require a
// variable activation (CEL, JS). Maps pass through, structs expose their
// exported fields. Other kinds yield an empty map.
func AsMap(scope any) map[string]any {
	out := map[string]any{}
	if scope == nil {
		return out
	}
	rv := reflect.ValueOf(scope)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return out
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return out
		}
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			out[field.Name] = rv.Field(i).Interface()
		}
	}
	return out
}
