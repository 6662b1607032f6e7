package filtering

import "reflect"

/*
IsAbsent reports whether a filter value means "no constraint".

Absent scalars are nil, the empty string, -1 and "-1". A list is absent when
every element is absent, after ignoring a trailing operator token: a list
carrying only an operator plus empty values still produces no predicate and,
critically, no join. The zero-operand operators ("empty", "not_empty") are the
exception; a list selecting one of those is always a real constraint.
*/
func IsAbsent(value any) bool {
	if value == nil {
		return true
	}

	switch v := value.(type) {
	case string:
		return v == "" || v == "-1"
	case int:
		return v == -1
	case int8:
		return v == -1
	case int16:
		return v == -1
	case int32:
		return v == -1
	case int64:
		return v == -1
	case float32:
		return v == -1
	case float64:
		return v == -1
	}

	values, ok := toSlice(value)
	if !ok {
		return false
	}
	op, operands := ExtractOperator(values)
	if op == OperatorEmpty || op == OperatorNotEmpty {
		return false
	}
	for _, v := range operands {
		if !IsAbsent(v) {
			return false
		}
	}
	return true
}

// toSlice normalizes any slice or array value to []any.
func toSlice(value any) ([]any, bool) {
	if vs, ok := value.([]any); ok {
		return vs, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		// []byte is a scalar, not an operand list.
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
