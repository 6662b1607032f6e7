package filtering

import (
	"strings"

	"github.com/RisPNG/searchkit/schema"
)

// FieldKey is a parsed filter or order key: a bare field on the root entity,
// or a field on the entity reached via a one-hop relation.
type FieldKey struct {
	Field    string
	Relation string
}

// ParseKey splits a "<field>@<relation>" key. A key without the qualifier
// resolves to the root entity.
func ParseKey(key string) FieldKey {
	field, relation, found := strings.Cut(key, "@")
	if !found {
		return FieldKey{Field: key}
	}
	return FieldKey{Field: field, Relation: relation}
}

// Join is a one-hop join emitted during compilation.
type Join struct {
	// Relation is the relation name; it doubles as the join alias.
	Relation string
	// Rel is the relation metadata resolved from the schema.
	Rel schema.Relation
}

/*
JoinSet tracks the relations already attached to the compiling query.

It is an immutable value: Add returns a new set and never mutates the receiver,
so compilation can thread it through a left-to-right reduction over the filter
entries. No relation is ever joined twice.
*/
type JoinSet struct {
	joins []Join
}

// Has reports whether the relation is already joined.
func (s JoinSet) Has(relation string) bool {
	for _, j := range s.joins {
		if j.Relation == relation {
			return true
		}
	}
	return false
}

// Add returns a set that includes the relation. Adding an already-joined
// relation is a no-op.
func (s JoinSet) Add(relation string, rel schema.Relation) JoinSet {
	if s.Has(relation) {
		return s
	}
	joins := make([]Join, len(s.joins), len(s.joins)+1)
	copy(joins, s.joins)
	return JoinSet{joins: append(joins, Join{Relation: relation, Rel: rel})}
}

// Joins returns the joins in the order they were first added.
func (s JoinSet) Joins() []Join {
	return s.joins
}

// binding locates a field during compilation: the entity owning it and the
// relation alias the backend should qualify it with ("" for the root).
type binding struct {
	entity   string
	relation string
}

/*
resolve maps a FieldKey to its binding, joining the relation on first use.

Resolution is eager: an unknown relation or field fails immediately even when
the filter value turns out to be absent. Absent values are classified before
resolve is called, so they still never cause a join.
*/
func resolve(intr schema.Introspector, entity string, key FieldKey, set JoinSet) (binding, JoinSet, error) {
	if key.Relation == "" {
		if _, err := intr.FieldType(entity, key.Field); err != nil {
			return binding{}, set, err
		}
		return binding{entity: entity}, set, nil
	}

	rel, err := intr.Relation(entity, key.Relation)
	if err != nil {
		return binding{}, set, err
	}
	if _, err := intr.FieldType(rel.Entity, key.Field); err != nil {
		return binding{}, set, err
	}
	return binding{entity: rel.Entity, relation: key.Relation}, set.Add(key.Relation, rel), nil
}
