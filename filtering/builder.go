package filtering

import (
	"time"

	"go.alis.build/utils"

	"github.com/RisPNG/searchkit/schema"
)

/*
build is the central dispatcher: given a field's type, operator and raw operand
values, it produces one predicate node.

It is only called for non-absent values. Operands are coerced here; a coercion
failure yields a nil operand and therefore a null comparison, never an error.
*/
func build(col Column, t schema.Type, op Operator, values []any, loc *time.Location, useOr bool) Predicate {
	// Zero-operand operators skip coercion entirely.
	switch op {
	case OperatorEmpty:
		return emptyPred(col, t)
	case OperatorNotEmpty:
		return Not{Pred: emptyPred(col, t)}
	}

	if t.Kind == schema.Array {
		return buildArray(col, t, op, values, loc, useOr)
	}

	coerced := utils.Transform(values, func(v any) any { return Coerce(t, v, loc) })

	switch op {
	case OperatorNone:
		return matchAll(col, t, coerced, false, useOr)
	case OperatorAnd:
		return matchAll(col, t, coerced, false, false)
	case OperatorOr:
		return matchAll(col, t, coerced, false, true)
	case OperatorExact, OperatorExactAnd:
		return matchAll(col, t, coerced, true, false)
	case OperatorExactOr:
		return matchAll(col, t, coerced, true, true)
	case OperatorExactNot:
		if t.Exact() {
			return Not{Pred: In{Col: col, Values: coerced}}
		}
		preds := utils.Transform(coerced, func(v any) Predicate {
			return Cmp{Left: col, Op: CmpNe, Value: v}
		})
		return combine(preds, false)
	case OperatorNot:
		// Unlike exact_not, rows with a NULL value are kept.
		var inner Predicate
		if t.Exact() {
			inner = Not{Pred: In{Col: col, Values: coerced}}
		} else {
			preds := utils.Transform(coerced, func(v any) Predicate {
				return Not{Pred: likePred(col, v)}
			})
			inner = combine(preds, false)
		}
		return Or{Preds: []Predicate{IsNull{Col: col}, inner}}
	case OperatorRange, OperatorNotRange:
		var lo, hi any
		if len(coerced) > 0 {
			lo = coerced[0]
		}
		if len(coerced) > 1 {
			hi = AdjustUpperBound(t, coerced[1])
		}
		between := Between{Left: col, Lo: lo, Hi: hi}
		if op == OperatorNotRange {
			return Not{Pred: between}
		}
		return between
	case OperatorAfter:
		return Cmp{Left: col, Op: CmpGt, Value: first(coerced)}
	case OperatorAfterEqual:
		return Cmp{Left: col, Op: CmpGe, Value: first(coerced)}
	case OperatorBefore:
		return Cmp{Left: col, Op: CmpLt, Value: AdjustUpperBound(t, first(coerced))}
	case OperatorBeforeEqual:
		return Cmp{Left: col, Op: CmpLe, Value: AdjustUpperBound(t, first(coerced))}
	}

	return matchAll(col, t, coerced, false, useOr)
}

// matchAll builds the default per-value predicates and combines them.
// Exact types (and forced-exact operators) compare by equality; plain strings
// match by case-insensitive substring.
func matchAll(col Column, t schema.Type, values []any, forceExact, useOr bool) Predicate {
	preds := utils.Transform(values, func(v any) Predicate {
		if t.Exact() || forceExact {
			return Cmp{Left: col, Op: CmpEq, Value: v}
		}
		return likePred(col, v)
	})
	return combine(preds, useOr)
}

func likePred(col Column, value any) Predicate {
	s, ok := value.(string)
	if !ok {
		// A failed string coercion degrades to a null comparison.
		return Cmp{Left: col, Op: CmpEq, Value: nil}
	}
	return Like{Col: col, Value: s}
}

// emptyPred matches NULL values; for textual types the empty string counts
// as empty too.
func emptyPred(col Column, t schema.Type) Predicate {
	if t.Textual() {
		return Or{Preds: []Predicate{
			IsNull{Col: col},
			Cmp{Left: col, Op: CmpEq, Value: ""},
		}}
	}
	return IsNull{Col: col}
}

// buildArray dispatches for array-typed fields: OR semantics use set overlap,
// AND semantics use containment.
func buildArray(col Column, t schema.Type, op Operator, values []any, loc *time.Location, useOr bool) Predicate {
	elems := make([]any, 0, len(values))
	for _, v := range values {
		coerced := Coerce(t, v, loc)
		if vs, ok := coerced.([]any); ok {
			elems = append(elems, vs...)
		} else {
			elems = append(elems, coerced)
		}
	}

	switch op {
	case OperatorOr, OperatorExactOr:
		return ArrayOverlap{Col: col, Values: elems}
	case OperatorNot, OperatorExactNot:
		return Not{Pred: ArrayOverlap{Col: col, Values: elems}}
	case OperatorAnd, OperatorExact, OperatorExactAnd:
		return ArrayContains{Col: col, Values: elems}
	}
	if useOr {
		return ArrayOverlap{Col: col, Values: elems}
	}
	return ArrayContains{Col: col, Values: elems}
}

func first(values []any) any {
	if len(values) == 0 {
		return nil
	}
	return values[0]
}
