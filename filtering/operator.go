package filtering

// Operator selects non-default comparison semantics for a filter value.
// It is supplied by callers as the trailing string element of a list value,
// e.g. ["100", "500", "range"].
type Operator int

const (
	// OperatorNone is the default: equality for exact types, case-insensitive
	// substring for strings, lists combined with AND.
	OperatorNone Operator = iota
	// OperatorRange matches values between the first and second operand, inclusive.
	OperatorRange
	// OperatorNotRange is the negation of OperatorRange.
	OperatorNotRange
	// OperatorAfter matches values strictly greater than the operand.
	OperatorAfter
	// OperatorAfterEqual matches values greater than or equal to the operand.
	OperatorAfterEqual
	// OperatorBefore matches values strictly less than the operand.
	OperatorBefore
	// OperatorBeforeEqual matches values less than or equal to the operand.
	OperatorBeforeEqual
	// OperatorAnd combines the per-operand predicates with AND.
	OperatorAnd
	// OperatorOr combines the per-operand predicates with OR.
	OperatorOr
	// OperatorExact forces equality matching, even for string fields.
	OperatorExact
	// OperatorExactAnd forces equality matching, combined with AND.
	OperatorExactAnd
	// OperatorExactOr forces equality matching, combined with OR.
	OperatorExactOr
	// OperatorExactNot excludes rows equal to any operand.
	OperatorExactNot
	// OperatorNot excludes rows matching any operand, keeping NULL rows.
	OperatorNot
	// OperatorNotEmpty matches rows whose value is neither NULL nor empty.
	// It takes no operands.
	OperatorNotEmpty
	// OperatorEmpty matches rows whose value is NULL or empty. It takes no operands.
	OperatorEmpty
)

var operatorTokens = map[string]Operator{
	"range":        OperatorRange,
	"not_range":    OperatorNotRange,
	"after":        OperatorAfter,
	"after_equal":  OperatorAfterEqual,
	"before":       OperatorBefore,
	"before_equal": OperatorBeforeEqual,
	"and":          OperatorAnd,
	"or":           OperatorOr,
	"exact":        OperatorExact,
	"exact_and":    OperatorExactAnd,
	"exact_or":     OperatorExactOr,
	"exact_not":    OperatorExactNot,
	"not":          OperatorNot,
	"not_empty":    OperatorNotEmpty,
	"empty":        OperatorEmpty,
}

// String returns the operator token, or "" for OperatorNone.
func (o Operator) String() string {
	for token, op := range operatorTokens {
		if op == o {
			return token
		}
	}
	return ""
}

// ParseOperator looks up an operator token. The token vocabulary is closed;
// unrecognized strings are not operators and must be treated as literal values.
func ParseOperator(s string) (Operator, bool) {
	op, ok := operatorTokens[s]
	return op, ok
}

/*
ExtractOperator strips a trailing operator token off a list value.

If the last element is a string matching one of the closed operator tokens it is
removed and returned separately; otherwise the whole list is the operand set and
the operator is OperatorNone. A trailing string outside the closed set is a
literal operand, not a malformed operator.
*/
func ExtractOperator(values []any) (Operator, []any) {
	if len(values) == 0 {
		return OperatorNone, values
	}
	last, ok := values[len(values)-1].(string)
	if !ok {
		return OperatorNone, values
	}
	op, ok := ParseOperator(last)
	if !ok {
		return OperatorNone, values
	}
	return op, values[:len(values)-1]
}
