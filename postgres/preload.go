package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
)

/*
Preload expands relations on a fetched result set.

For each relation a single batch query fetches the related rows by join key and
attaches them under the relation's name: a slice for to-many relations, the
single related entry (or nil) otherwise. A nil relations list expands every
relation declared on the entity; recursive mode walks into the related entities
too, visiting each entity type at most once so relation cycles terminate.
*/
func (e *Executor) Preload(ctx context.Context, entity string, entries []map[string]any, relations []string, recursive bool) error {
	visited := map[string]bool{entity: true}
	return e.preload(ctx, entity, entries, relations, recursive, visited)
}

func (e *Executor) preload(ctx context.Context, entity string, entries []map[string]any, relations []string, recursive bool, visited map[string]bool) error {
	if len(entries) == 0 {
		return nil
	}
	if relations == nil {
		var err error
		relations, err = e.schema.Relations(entity)
		if err != nil {
			return err
		}
	}

	for _, name := range relations {
		rel, err := e.schema.Relation(entity, name)
		if err != nil {
			return err
		}

		keys := make([]any, 0, len(entries))
		seen := make(map[any]bool, len(entries))
		for _, entry := range entries {
			k := entry[rel.References]
			if k == nil || seen[k] {
				continue
			}
			seen[k] = true
			keys = append(keys, k)
		}

		children, err := e.fetchRelated(ctx, rel.Entity, rel.Column, keys)
		if err != nil {
			return err
		}

		grouped := make(map[any][]map[string]any, len(children))
		for _, child := range children {
			k := child[rel.Column]
			grouped[k] = append(grouped[k], child)
		}

		for _, entry := range entries {
			group := grouped[entry[rel.References]]
			if rel.HasMany {
				entry[name] = group
			} else if len(group) > 0 {
				entry[name] = group[0]
			} else {
				entry[name] = nil
			}
		}

		if recursive && !visited[rel.Entity] {
			visited[rel.Entity] = true
			if err := e.preload(ctx, rel.Entity, children, nil, true, visited); err != nil {
				return err
			}
		}
	}

	return nil
}

// fetchRelated runs the batch IN query for one relation.
func (e *Executor) fetchRelated(ctx context.Context, entity, column string, keys []any) ([]map[string]any, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	table, err := e.schema.Table(entity)
	if err != nil {
		return nil, err
	}

	b := statementBuilder.Select(table + ".*").From(table).
		Where(sq.Eq{table + "." + column: toConcreteSlice(keys)})
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
