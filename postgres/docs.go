/*
Package postgres lowers query plans into PostgreSQL statements and runs them.

It is the database-facing half of the module: the filtering package produces
an engine-neutral [filtering.Plan], and this package turns that plan into
parameterized SQL (via squirrel, using $N placeholders) and executes it
through a pgx connection.

# Compiling

A [Compiler] converts a plan into SELECT and COUNT statements:

	pc := &postgres.Compiler{Schema: intr}

	b, err := pc.Select(plan)
	if err != nil {
	    return err
	}
	sql, args, err := b.ToSql()
	// sql: SELECT orders.* FROM orders
	//      JOIN customers AS customer ON customer.id = orders.customer_id
	//      WHERE (orders.state = $1 AND customer.name ILIKE $2)
	//      ORDER BY orders.created_at DESC

The count statement has no ordering, and switches to
COUNT(DISTINCT <root primary key>) whenever the plan carries joins, so that
row multiplication from one-to-many joins never inflates totals.

# Executing

An [Executor] binds a compiler to a [Querier] (satisfied by *pgxpool.Pool):

	exec := postgres.NewExecutor(pool, intr)
	entries, err := exec.Select(ctx, plan, 25, 0)
	total, err := exec.Count(ctx, plan)

Rows come back as []map[string]any keyed by column name, the shape the rest
of the module works with.

[Executor.Preload] attaches related entities to fetched rows. Each relation
is loaded with a single batched IN query, grouped by foreign key, and
attached under the relation name. Has-many relations attach a slice,
to-one relations attach a single map (or nil when no related row exists).
Recursive preloading walks the related entities' own relations, skipping
entity types already visited so cyclic schemas terminate.
*/
package postgres
