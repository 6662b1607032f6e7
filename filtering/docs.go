/*
Package filtering compiles declarative filter specs into backend-neutral query plans.

A filter spec maps field keys to values. A key is a bare field name, or
"<field>@<relation>" for a field one hop away. A value is a scalar, or a list of
scalars whose last element may be an operator token:

	range, not_range, after, after_equal, before, before_equal,
	and, or, exact, exact_and, exact_or, exact_not, not, not_empty, empty

The compiler classifies absent values (nil, "", -1, "-1", all-absent lists) and
skips them without joining anything, coerces the remaining operands to the
field's semantic type, and builds one predicate per entry. Entries combine with
AND by default; the reserved _or key nests an OR group, and _multi_or a list of
AND groups ORed together. The result is a [Plan]: a predicate tree plus the
deduplicated joins it needs, ready for a backend compiler to lower.

	compiler := filtering.Compiler{Schema: intr}
	plan, err := compiler.Compile("Order", map[string]any{
	    "status": "open",
	    "amount": []any{100, 500, "range"},
	    "name@customer": "acme",
	})

Coercion failures never raise: an unparseable date or number becomes a null
comparison, so a filter that can never match behaves as "no results" rather
than an error. Unknown fields and relations, by contrast, fail immediately.
*/
package filtering
