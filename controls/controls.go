// Package controls provides ready-made leaf elements for binding trees:
// terminal-rendered widgets that implement the capability set the engine
// asserts on node elements. Each control accepts the value kinds it can
// render and keeps displaying its previous value when a binding fails.
package controls

import "time"

// asFloat widens any numeric binding value to float64. Controls accepting
// KindNumber receive whichever numeric type the key path produced.
func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func asInt(value any) (int, bool) {
	f, ok := asFloat(value)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func asTime(value any) (time.Time, bool) {
	t, ok := value.(time.Time)
	return t, ok
}
