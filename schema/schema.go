package schema

// Kind is the semantic type of a field. It drives value coercion and decides
// whether a scalar filter matches by equality or by case-insensitive substring.
type Kind int

const (
	// String matches by case-insensitive substring unless an exact operator is used.
	String Kind = iota
	// Integer matches by equality.
	Integer
	// Float matches by equality.
	Float
	// Decimal matches by equality. Values are coerced to decimal.Decimal.
	Decimal
	// Boolean matches by equality.
	Boolean
	// Date matches by equality. Values are coerced to a date-truncated time.Time.
	Date
	// DateTime is a timezone-aware timestamp, stored and compared in UTC.
	DateTime
	// NaiveDateTime is a timestamp without timezone. No timezone conversion is applied.
	NaiveDateTime
	// Time is a time of day without a date component.
	Time
	// Binary matches by equality.
	Binary
	// Map matches by equality.
	Map
	// Array is a list column. Matching uses set overlap or containment
	// instead of the equality/substring split.
	Array
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	names := [...]string{
		"string", "integer", "float", "decimal", "boolean",
		"date", "datetime", "naive_datetime", "time", "binary", "map", "array",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// Type is the full semantic type of a field. Elem is only set for Array kinds
// and describes the element type.
type Type struct {
	Kind Kind
	Elem Kind
}

// ArrayOf returns an array type with the given element kind.
func ArrayOf(elem Kind) Type {
	return Type{Kind: Array, Elem: elem}
}

// Exact reports whether scalar values of this type match by equality.
// Only plain strings match by substring.
func (t Type) Exact() bool {
	return t.Kind != String
}

// Temporal reports whether the type carries a date or time component.
func (t Type) Temporal() bool {
	switch t.Kind {
	case Date, DateTime, NaiveDateTime, Time:
		return true
	}
	return false
}

// Textual reports whether empty-string comparisons are meaningful for the type.
func (t Type) Textual() bool {
	return t.Kind == String || t.Kind == Binary
}

/*
Relation describes a one-hop association between two entities.

The generated join is:

	JOIN <related table> ON <related>.<Column> = <root>.<References>

For a belongs-to association Column is the related entity's primary key and
References is the foreign key on the root. For a has-many association Column is
the foreign key on the related entity and References is the root's primary key.
*/
type Relation struct {
	// Entity is the name of the related entity.
	Entity string
	// Column is the join column on the related entity.
	Column string
	// References is the join column on the parent entity.
	References string
	// HasMany indicates a to-many association. Preloading attaches a slice
	// for to-many relations and a single entry (or nil) otherwise.
	HasMany bool
}

/*
Introspector resolves entity metadata for the filter compiler.

Implementations are expected to be safe for concurrent use. The compiler makes
no assumption about where the metadata comes from; [Static] serves a schema
declared in code and doubles as the test fixture mechanism.
*/
type Introspector interface {
	// Table returns the table name backing the entity.
	Table(entity string) (string, error)
	// PrimaryKey returns the primary key column of the entity's table.
	PrimaryKey(entity string) (string, error)
	// FieldType returns the semantic type of a field on the entity.
	FieldType(entity, field string) (Type, error)
	// Column returns the column name backing a field on the entity.
	Column(entity, field string) (string, error)
	// Relation returns the one-hop relation metadata for the named relation.
	Relation(entity, relation string) (Relation, error)
	// Relations returns the names of all relations declared on the entity.
	Relations(entity string) ([]string, error)
}
