package filtering

// OrderClause sorts the result set by a column, ascending unless Desc is set.
type OrderClause struct {
	Col  Column
	Desc bool
}

/*
Plan is the compiled form of a filter spec: the predicate tree, the deduplicated
one-hop joins it needs, ordering and distinctness.

A Plan is immutable once handed to a backend. It carries no SQL; lowering to the
target query builder is the backend's job.
*/
type Plan struct {
	// Entity is the root entity being queried.
	Entity string
	// Where is the root of the predicate tree, nil when no filter applies.
	Where Predicate
	// Joins lists each joined relation exactly once, in first-use order.
	Joins []Join
	// Order lists the sort clauses in priority order.
	Order []OrderClause
	// Distinct requests de-duplicated rows at the root.
	Distinct bool
}

// joinSet rebuilds the join accumulator from the materialized joins, so
// ordering can reuse relations the filters already attached.
func (p *Plan) joinSet() JoinSet {
	return JoinSet{joins: p.Joins}
}
