package schema

import (
	"errors"
	"fmt"
)

// ErrUnknownEntity is returned when no entity with the given name is declared.
type ErrUnknownEntity struct {
	Entity string
}

func (e ErrUnknownEntity) Error() string {
	return fmt.Sprintf("unknown entity (%s)", e.Entity)
}
func (e ErrUnknownEntity) Is(target error) bool {
	var errUnknownEntity ErrUnknownEntity
	return errors.As(target, &errUnknownEntity)
}

// ErrUnknownField is returned when the entity has no field with the given name.
// Referencing an unknown field in a filter or order key is a programming error,
// not bad user input, and is surfaced immediately.
type ErrUnknownField struct {
	Entity string
	Field  string
}

func (e ErrUnknownField) Error() string {
	return fmt.Sprintf("unknown field (%s) on entity (%s)", e.Field, e.Entity)
}
func (e ErrUnknownField) Is(target error) bool {
	var errUnknownField ErrUnknownField
	return errors.As(target, &errUnknownField)
}

// ErrUnknownRelation is returned when the entity has no relation with the given
// name. Like ErrUnknownField this indicates a programming mistake and is never
// silently dropped.
type ErrUnknownRelation struct {
	Entity   string
	Relation string
}

func (e ErrUnknownRelation) Error() string {
	return fmt.Sprintf("unknown relation (%s) on entity (%s)", e.Relation, e.Entity)
}
func (e ErrUnknownRelation) Is(target error) bool {
	var errUnknownRelation ErrUnknownRelation
	return errors.As(target, &errUnknownRelation)
}
