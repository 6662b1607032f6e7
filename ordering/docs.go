/*
Package ordering converts order-by expressions into structured sort clauses.

	order, _ := ordering.NewOrder("total desc, name@customer")
	clauses := order.Clauses()
	// []Clause{{Path: "total", Order: SortOrderDesc}, {Path: "name@customer", Order: SortOrderAsc}}

Paths use the same "<field>@<relation>" qualification as filter keys; a path
referencing a relation the filters did not join will join it exactly once.
*/
package ordering
