package postgres

import (
	"reflect"
)

// toConcreteSlice casts []any to a typed slice when every element shares one
// concrete type, e.g. []any{"a", "b"} to []string{"a", "b"}.
//
// pgx encodes typed slices as array parameters directly; mixed-type slices are
// returned unchanged and encoded element by element.
func toConcreteSlice(values []any) any {
	if len(values) == 0 {
		return values
	}

	var commonType reflect.Type
	for _, v := range values {
		if v == nil {
			continue
		}
		t := reflect.TypeOf(v)
		if commonType == nil {
			commonType = t
		} else if commonType != t {
			return values
		}
	}
	if commonType == nil {
		return values
	}

	out := reflect.MakeSlice(reflect.SliceOf(commonType), 0, len(values))
	for _, v := range values {
		if v == nil {
			out = reflect.Append(out, reflect.Zero(commonType))
		} else {
			out = reflect.Append(out, reflect.ValueOf(v))
		}
	}
	return out.Interface()
}
