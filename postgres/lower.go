package postgres

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/RisPNG/searchkit/filtering"
	"github.com/RisPNG/searchkit/schema"
)

// resolver qualifies IR columns with their table or join alias.
type resolver struct {
	intr      schema.Introspector
	entity    string
	rootTable string
	rels      map[string]schema.Relation
}

func newResolver(intr schema.Introspector, plan *filtering.Plan) (*resolver, error) {
	table, err := intr.Table(plan.Entity)
	if err != nil {
		return nil, err
	}
	rels := make(map[string]schema.Relation, len(plan.Joins))
	for _, j := range plan.Joins {
		rels[j.Relation] = j.Rel
	}
	return &resolver{
		intr:      intr,
		entity:    plan.Entity,
		rootTable: table,
		rels:      rels,
	}, nil
}

// columnSQL returns the fully qualified SQL name of an IR column. Joined
// relations are aliased by their relation name.
func (r *resolver) columnSQL(c filtering.Column) (string, error) {
	if c.Relation == "" {
		col, err := r.intr.Column(r.entity, c.Name)
		if err != nil {
			return "", err
		}
		return r.rootTable + "." + col, nil
	}
	rel, ok := r.rels[c.Relation]
	if !ok {
		return "", fmt.Errorf("column references relation (%s) missing from the plan", c.Relation)
	}
	col, err := r.intr.Column(rel.Entity, c.Name)
	if err != nil {
		return "", err
	}
	return c.Relation + "." + col, nil
}

func (r *resolver) exprSQL(e filtering.Expr) (string, error) {
	switch expr := e.(type) {
	case filtering.Column:
		return r.columnSQL(expr)
	case filtering.Diff:
		a, err := r.columnSQL(expr.A)
		if err != nil {
			return "", err
		}
		b, err := r.columnSQL(expr.B)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s - %s)", a, b), nil
	case filtering.Sum:
		cols := make([]string, 0, len(expr.Columns))
		for _, c := range expr.Columns {
			col, err := r.columnSQL(c)
			if err != nil {
				return "", err
			}
			cols = append(cols, col)
		}
		return "(" + strings.Join(cols, " + ") + ")", nil
	default:
		return "", fmt.Errorf("unsupported expression %T", e)
	}
}

// lower converts a predicate IR node into a squirrel Sqlizer.
func (r *resolver) lower(p filtering.Predicate) (sq.Sqlizer, error) {
	switch pred := p.(type) {
	case filtering.Cmp:
		left, err := r.exprSQL(pred.Left)
		if err != nil {
			return nil, err
		}
		if pred.Value == nil {
			// A null comparison: matches nothing for equality, everything
			// but NULL for inequality.
			if pred.Op == filtering.CmpNe {
				return sq.NotEq{left: nil}, nil
			}
			return sq.Eq{left: nil}, nil
		}
		return sq.Expr(fmt.Sprintf("%s %s ?", left, pred.Op), pred.Value), nil
	case filtering.Like:
		col, err := r.columnSQL(pred.Col)
		if err != nil {
			return nil, err
		}
		return sq.ILike{col: "%" + pred.Value + "%"}, nil
	case filtering.Between:
		left, err := r.exprSQL(pred.Left)
		if err != nil {
			return nil, err
		}
		return sq.Expr(left+" BETWEEN ? AND ?", pred.Lo, pred.Hi), nil
	case filtering.In:
		col, err := r.columnSQL(pred.Col)
		if err != nil {
			return nil, err
		}
		return sq.Eq{col: toConcreteSlice(pred.Values)}, nil
	case filtering.IsNull:
		col, err := r.columnSQL(pred.Col)
		if err != nil {
			return nil, err
		}
		return sq.Eq{col: nil}, nil
	case filtering.Not:
		return r.lowerNot(pred.Pred)
	case filtering.And:
		conj := make(sq.And, 0, len(pred.Preds))
		for _, sub := range pred.Preds {
			s, err := r.lower(sub)
			if err != nil {
				return nil, err
			}
			conj = append(conj, s)
		}
		return conj, nil
	case filtering.Or:
		disj := make(sq.Or, 0, len(pred.Preds))
		for _, sub := range pred.Preds {
			s, err := r.lower(sub)
			if err != nil {
				return nil, err
			}
			disj = append(disj, s)
		}
		return disj, nil
	case filtering.ArrayOverlap:
		col, err := r.columnSQL(pred.Col)
		if err != nil {
			return nil, err
		}
		return sq.Expr(col+" && ?", toConcreteSlice(pred.Values)), nil
	case filtering.ArrayContains:
		col, err := r.columnSQL(pred.Col)
		if err != nil {
			return nil, err
		}
		return sq.Expr(col+" @> ?", toConcreteSlice(pred.Values)), nil
	default:
		return nil, fmt.Errorf("unsupported predicate %T", p)
	}
}

// lowerNot negates the inner predicate, taking the dedicated SQL form where
// one exists instead of wrapping in NOT (...).
func (r *resolver) lowerNot(inner filtering.Predicate) (sq.Sqlizer, error) {
	switch pred := inner.(type) {
	case filtering.In:
		col, err := r.columnSQL(pred.Col)
		if err != nil {
			return nil, err
		}
		return sq.NotEq{col: toConcreteSlice(pred.Values)}, nil
	case filtering.Like:
		col, err := r.columnSQL(pred.Col)
		if err != nil {
			return nil, err
		}
		return sq.NotILike{col: "%" + pred.Value + "%"}, nil
	case filtering.IsNull:
		col, err := r.columnSQL(pred.Col)
		if err != nil {
			return nil, err
		}
		return sq.NotEq{col: nil}, nil
	}

	lowered, err := r.lower(inner)
	if err != nil {
		return nil, err
	}
	sqlStr, args, err := lowered.ToSql()
	if err != nil {
		return nil, err
	}
	return sq.Expr("NOT ("+sqlStr+")", args...), nil
}
