/*
Package searchkit turns declarative filter maps into paginated, ordered
database queries.

A caller describes what it wants as a plain map, typically forwarded
verbatim from a UI filter form, and Search compiles it into a parameterized
query plan, runs it, and returns one page of results:

	client := searchkit.NewClient(intr, postgres.NewExecutor(pool, intr))

	page, err := client.Search(ctx, "order", searchkit.Filters{
	    "state":          []any{"paid", "shipped"},
	    "name@customer":  []any{"ali", "or"},
	    "created_at":     []any{"2024-01-01 00:00", "2024-06-30 23:59", "range"},
	},
	    searchkit.WithPagination(1, 25),
	    searchkit.WithOrder("created_at desc"),
	    searchkit.WithPreload("customer"),
	)

# Filter values

A value may be a scalar or a list. By default every list element must match
(AND); the "or" token, or the [WithUseOr] option, switches a list to
any-element matching. Values that are absent (nil, the empty
string, -1 or "-1", or lists containing only such values) contribute
nothing, so form state can be passed through without cleanup.

String matching is case-insensitive substring by default; use an exact
operator for equality. Datetime strings are parsed in the timezone given by
[WithTimezone].

# Operator tokens

The last element of a list value may be one of these tokens, which sets how
the remaining elements match:

	or            Any element matches.
	and           Every element matches (default).
	exact         Equality instead of substring matching.
	exact_or      Equality, any element.
	exact_and     Equality, every element.
	not           No element matches; includes rows where the field is null.
	exact_not     Equality-based exclusion; null rows do not match.
	range         Two elements: an inclusive lower and upper bound.
	not_range     Two elements: outside the inclusive bounds.
	after         Strictly greater than the element.
	after_equal   Greater than or equal to the element.
	before        Strictly less than the element.
	before_equal  Less than or equal to the element.
	empty         Field is null (or the empty string for text). No operands.
	not_empty     Field is present and non-empty. No operands.

For inclusive upper bounds on datetime fields (range, before, before_equal),
a bound given to minute precision is widened to the last second of that
minute, so "until 23:59" means through 23:59:59.

# Related entities

A key "field@relation" filters on a field of a one-hop related entity; the
relation is joined at most once no matter how many keys reference it.
Ordering paths use the same qualification. [WithDistinct] collapses the row
multiplication that joins to has-many relations introduce.

Reserved keys group filters: "_or" holds a filter map whose entries are
ORed together, and "_multi_or" holds a list of filter maps, each ANDed
internally, with the groups ORed. Both combine with the rest of the filters
by AND. "_fields_diff" and "_fields_sum" compare an arithmetic combination
of numeric fields against thresholds.

# Errors

Unknown fields, relations and malformed groups fail with typed errors that
implement the gRPC status interface, returning codes.InvalidArgument. A
value that cannot be coerced to its field's type is not an error; it
compiles to a null comparison that matches nothing, and is logged.
*/
package searchkit
