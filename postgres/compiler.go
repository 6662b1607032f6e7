package postgres

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/RisPNG/searchkit/filtering"
	"github.com/RisPNG/searchkit/schema"
)

// statementBuilder uses PostgreSQL placeholders.
var statementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

/*
Compiler lowers a filtering.Plan to PostgreSQL via squirrel.

It is one of the swappable backend compilers the plan was designed for: the
filter semantics live in the IR, this type only translates them.
*/
type Compiler struct {
	Schema schema.Introspector
}

// Select builds the row query: joins, predicate tree, ordering and
// distinctness, without limit or offset.
func (c *Compiler) Select(plan *filtering.Plan) (sq.SelectBuilder, error) {
	r, err := newResolver(c.Schema, plan)
	if err != nil {
		return sq.SelectBuilder{}, err
	}

	b := statementBuilder.Select(r.rootTable + ".*").From(r.rootTable)
	if plan.Distinct {
		b = b.Distinct()
	}

	b, err = c.withJoins(b, plan, r)
	if err != nil {
		return sq.SelectBuilder{}, err
	}
	b, err = c.withWhere(b, plan, r)
	if err != nil {
		return sq.SelectBuilder{}, err
	}

	for _, oc := range plan.Order {
		col, err := r.columnSQL(oc.Col)
		if err != nil {
			return sq.SelectBuilder{}, err
		}
		dir := "ASC"
		if oc.Desc {
			dir = "DESC"
		}
		b = b.OrderBy(col + " " + dir)
	}

	return b, nil
}

/*
Count builds the parallel count query: same joins and predicate, no ordering.

Whenever the plan joins a relation or requests distinct rows, the count is a
distinct count on the root primary key, keeping totals correct when a
one-to-many join multiplies rows.
*/
func (c *Compiler) Count(plan *filtering.Plan) (sq.SelectBuilder, error) {
	r, err := newResolver(c.Schema, plan)
	if err != nil {
		return sq.SelectBuilder{}, err
	}

	countExpr := "COUNT(*)"
	if plan.Distinct || len(plan.Joins) > 0 {
		pk, err := c.Schema.PrimaryKey(plan.Entity)
		if err != nil {
			return sq.SelectBuilder{}, err
		}
		countExpr = fmt.Sprintf("COUNT(DISTINCT %s.%s)", r.rootTable, pk)
	}

	b := statementBuilder.Select(countExpr).From(r.rootTable)
	b, err = c.withJoins(b, plan, r)
	if err != nil {
		return sq.SelectBuilder{}, err
	}
	return c.withWhere(b, plan, r)
}

func (c *Compiler) withJoins(b sq.SelectBuilder, plan *filtering.Plan, r *resolver) (sq.SelectBuilder, error) {
	for _, j := range plan.Joins {
		relTable, err := c.Schema.Table(j.Rel.Entity)
		if err != nil {
			return sq.SelectBuilder{}, err
		}
		b = b.Join(fmt.Sprintf("%s AS %s ON %s.%s = %s.%s",
			relTable, j.Relation, j.Relation, j.Rel.Column, r.rootTable, j.Rel.References))
	}
	return b, nil
}

func (c *Compiler) withWhere(b sq.SelectBuilder, plan *filtering.Plan, r *resolver) (sq.SelectBuilder, error) {
	if plan.Where == nil {
		return b, nil
	}
	where, err := r.lower(plan.Where)
	if err != nil {
		return sq.SelectBuilder{}, err
	}
	return b.Where(where), nil
}
