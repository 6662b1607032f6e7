package filtering

import (
	"go.alis.build/utils"
)

// Comparators accepted as the trailing token of a computed filter value.
var computedComparators = map[string]CmpOp{
	"equal":        CmpEq,
	"after":        CmpGt,
	"after_equal":  CmpGe,
	"before":       CmpLt,
	"before_equal": CmpLe,
}

/*
buildComputed handles the _fields_diff and _fields_sum virtual filters.

The value is a list whose leading elements name fields on the root entity and
whose trailing elements are threshold(s), optionally followed by a comparator
token (after, after_equal, before, before_equal, range, equal; default equal).
The derived expression (fieldA - fieldB, or the sum of the fields) is compared
against the coerced threshold(s).
*/
func (c *Compiler) buildComputed(entity, key string, value any) (Predicate, error) {
	if IsAbsent(value) {
		return nil, nil
	}
	values, ok := toSlice(value)
	if !ok {
		return nil, ErrInvalidComputed{Key: key, Reason: "expected a list of fields and thresholds"}
	}

	// Trailing comparator token, defaulting to equality.
	isRange := false
	cmpOp := CmpEq
	if last, ok := values[len(values)-1].(string); ok {
		if last == "range" {
			isRange = true
			values = values[:len(values)-1]
		} else if op, ok := computedComparators[last]; ok {
			cmpOp = op
			values = values[:len(values)-1]
		}
	}

	// Leading elements naming fields on the entity form the derived expression;
	// everything after the first non-field element is a threshold.
	var cols []Column
	var thresholds []any
	for _, v := range values {
		name, isString := v.(string)
		if isString && len(thresholds) == 0 {
			if _, err := c.Schema.FieldType(entity, name); err == nil {
				cols = append(cols, Column{Name: name})
				continue
			}
		}
		thresholds = append(thresholds, v)
	}

	if len(cols) < 2 {
		return nil, ErrInvalidComputed{Key: key, Reason: "expected at least two field names"}
	}
	if key == KeyFieldsDiff && len(cols) != 2 {
		return nil, ErrInvalidComputed{Key: key, Reason: "expected exactly two field names"}
	}
	if len(thresholds) == 0 {
		return nil, ErrInvalidComputed{Key: key, Reason: "expected a threshold value"}
	}
	if isRange && len(thresholds) < 2 {
		return nil, ErrInvalidComputed{Key: key, Reason: "range expects two thresholds"}
	}

	// Thresholds share the type of the first field.
	t, err := c.Schema.FieldType(entity, cols[0].Name)
	if err != nil {
		return nil, err
	}
	coerced := utils.Transform(thresholds, func(v any) any { return Coerce(t, v, c.timezone()) })

	var expr Expr
	if key == KeyFieldsDiff {
		expr = Diff{A: cols[0], B: cols[1]}
	} else {
		expr = Sum{Columns: cols}
	}

	if isRange {
		return Between{Left: expr, Lo: coerced[0], Hi: AdjustUpperBound(t, coerced[1])}, nil
	}
	return Cmp{Left: expr, Op: cmpOp, Value: coerced[0]}, nil
}
