package schema

import (
	"sort"

	"github.com/iancoleman/strcase"
)

/*
Entity declares the metadata of a single entity for the [Static] introspector.

Field and relation names are the names callers use in filter and order keys.
Column names default to the snake_case form of the field name; Columns overrides
individual fields where the two differ.
*/
type Entity struct {
	// Table is the backing table name. Defaults to the snake_case entity name.
	Table string
	// PrimaryKey is the primary key column. Defaults to "id".
	PrimaryKey string
	// Fields maps field names to their semantic types.
	Fields map[string]Type
	// Columns overrides the derived column name for specific fields.
	Columns map[string]string
	// Relations maps relation names to their join metadata.
	Relations map[string]Relation
}

// Static is a map-backed Introspector built from entity declarations.
type Static struct {
	entities map[string]Entity
}

// NewStatic creates a Static introspector from the given entity declarations.
func NewStatic(entities map[string]Entity) *Static {
	return &Static{entities: entities}
}

func (s *Static) entity(name string) (Entity, error) {
	e, ok := s.entities[name]
	if !ok {
		return Entity{}, ErrUnknownEntity{Entity: name}
	}
	return e, nil
}

// Table returns the table name backing the entity.
func (s *Static) Table(entity string) (string, error) {
	e, err := s.entity(entity)
	if err != nil {
		return "", err
	}
	if e.Table != "" {
		return e.Table, nil
	}
	return strcase.ToSnake(entity), nil
}

// PrimaryKey returns the primary key column of the entity's table.
func (s *Static) PrimaryKey(entity string) (string, error) {
	e, err := s.entity(entity)
	if err != nil {
		return "", err
	}
	if e.PrimaryKey != "" {
		return e.PrimaryKey, nil
	}
	return "id", nil
}

// FieldType returns the semantic type of a field on the entity.
func (s *Static) FieldType(entity, field string) (Type, error) {
	e, err := s.entity(entity)
	if err != nil {
		return Type{}, err
	}
	t, ok := e.Fields[field]
	if !ok {
		return Type{}, ErrUnknownField{Entity: entity, Field: field}
	}
	return t, nil
}

// Column returns the column name backing a field on the entity.
func (s *Static) Column(entity, field string) (string, error) {
	e, err := s.entity(entity)
	if err != nil {
		return "", err
	}
	if _, ok := e.Fields[field]; !ok {
		return "", ErrUnknownField{Entity: entity, Field: field}
	}
	if col, ok := e.Columns[field]; ok {
		return col, nil
	}
	return strcase.ToSnake(field), nil
}

// Relation returns the one-hop relation metadata for the named relation.
func (s *Static) Relation(entity, relation string) (Relation, error) {
	e, err := s.entity(entity)
	if err != nil {
		return Relation{}, err
	}
	r, ok := e.Relations[relation]
	if !ok {
		return Relation{}, ErrUnknownRelation{Entity: entity, Relation: relation}
	}
	return r, nil
}

// Relations returns the sorted names of all relations declared on the entity.
func (s *Static) Relations(entity string) ([]string, error) {
	e, err := s.entity(entity)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(e.Relations))
	for name := range e.Relations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
