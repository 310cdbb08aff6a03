package value

import (
	"fmt"
	"reflect"
	"time"
)

// Of converts a Go value into a [Value].
//
// Every integer and floating-point kind becomes a number, so templates never
// distinguish between them. Slices and arrays become sequences, maps with
// string keys become mappings, and nil becomes [Empty]. Values that implement
// [fmt.Stringer] and have no other conversion become text.
func Of(x any) Value {
	switch x := x.(type) {
	case nil:
		return Empty()
	case Value:
		return x
	case *Mapping:
		return FromMapping(x)
	case string:
		return FromText(x)
	case bool:
		return FromBool(x)
	case float64:
		return FromNumber(x)
	case float32:
		return FromNumber(float64(x))
	case int:
		return FromNumber(float64(x))
	case int64:
		return FromNumber(float64(x))
	case uint64:
		return FromNumber(float64(x))
	case time.Time:
		return FromDate(x)
	case []any:
		seq := make([]Value, len(x))
		for i, e := range x {
			seq[i] = Of(e)
		}

		return FromSequence(seq)
	case map[string]any:
		m := NewMapping(len(x))
		for _, key := range sortedKeys(x) {
			m.Set(key, Of(x[key]))
		}

		return FromMapping(m)
	}

	return ofReflect(reflect.ValueOf(x))
}

func ofReflect(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Empty()
		}

		return Of(rv.Elem().Interface())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromNumber(float64(rv.Int()))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return FromNumber(float64(rv.Uint()))

	case reflect.Float32, reflect.Float64:
		return FromNumber(rv.Float())

	case reflect.Bool:
		return FromBool(rv.Bool())

	case reflect.String:
		return FromText(rv.String())

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return FromSequence(nil)
		}

		seq := make([]Value, rv.Len())
		for i := range seq {
			seq[i] = Of(rv.Index(i).Interface())
		}

		return FromSequence(seq)

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}

		keys := make(map[string]any, rv.Len())
		for iter := rv.MapRange(); iter.Next(); {
			keys[iter.Key().String()] = iter.Value().Interface()
		}

		return Of(keys)
	}

	if s, ok := rv.Interface().(fmt.Stringer); ok {
		return FromText(s.String())
	}

	return FromText(fmt.Sprint(rv.Interface()))
}

// OfMap converts every entry of vars with [Of].
func OfMap(vars map[string]any) map[string]Value {
	out := make(map[string]Value, len(vars))
	for key, x := range vars {
		out[key] = Of(x)
	}

	return out
}

// Native converts v into plain Go values suitable for encoding: float64,
// string, bool, time.Time, []any, map[string]any, or nil.
func (v Value) Native() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindText:
		return v.str
	case KindBool:
		return v.b
	case KindDate:
		return v.t
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, e := range v.seq {
			out[i] = e.Native()
		}

		return out
	case KindMapping:
		out := make(map[string]any, v.m.Len())
		for key, e := range v.m.All() {
			out[key] = e.Native()
		}

		return out
	}

	return nil
}
