package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/RisPNG/searchkit/filtering"
	"github.com/RisPNG/searchkit/schema"
)

// Querier is the subset of a pgx connection pool the executor needs.
// *pgxpool.Pool satisfies it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

/*
Executor runs compiled query plans against PostgreSQL.

It performs no compilation logic of its own: the plan's semantics were fixed by
the filter compiler, and any cancellation or timeout travels in the context
handed to the underlying pool.
*/
type Executor struct {
	db       Querier
	compiler *Compiler
	schema   schema.Introspector
}

// NewExecutor creates an Executor on the given connection pool and schema.
func NewExecutor(db Querier, intr schema.Introspector) *Executor {
	return &Executor{
		db:       db,
		compiler: &Compiler{Schema: intr},
		schema:   intr,
	}
}

// Select runs the row query. A limit of 0 or less returns all matching rows.
func (e *Executor) Select(ctx context.Context, plan *filtering.Plan, limit, offset int64) ([]map[string]any, error) {
	b, err := e.compiler.Select(plan)
	if err != nil {
		return nil, err
	}
	if limit > 0 {
		b = b.Limit(uint64(limit)).Offset(uint64(offset))
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := e.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRows(rows)
}

// Count runs the parallel count query.
func (e *Executor) Count(ctx context.Context, plan *filtering.Plan) (int64, error) {
	b, err := e.compiler.Count(plan)
	if err != nil {
		return 0, err
	}
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	rows, err := e.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, err
		}
	}
	return count, rows.Err()
}

// collectRows scans every row into a column-keyed map.
func collectRows(rows pgx.Rows) ([]map[string]any, error) {
	var entries []map[string]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		entry := make(map[string]any, len(values))
		for i, fd := range rows.FieldDescriptions() {
			entry[fd.Name] = values[i]
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
