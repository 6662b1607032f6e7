package filtering

// CmpOp is a scalar comparison operator in the predicate tree.
type CmpOp int

const (
	CmpEq CmpOp = iota
	CmpNe
	CmpGt
	CmpGe
	CmpLt
	CmpLe
)

// String returns the SQL operator symbol.
func (o CmpOp) String() string {
	return [...]string{"=", "!=", ">", ">=", "<", "<="}[o]
}

/*
Expr is the left-hand side of a comparison: a plain column, or a derived
arithmetic expression over columns for the virtual computed filters.
*/
type Expr interface {
	isExpr()
}

// Column references a field, either on the root entity (Relation == "") or on
// a one-hop related entity that the plan joins under the relation's name.
type Column struct {
	Relation string
	Name     string
}

// Diff is the difference A - B between two columns.
type Diff struct {
	A, B Column
}

// Sum is the sum of two or more columns.
type Sum struct {
	Columns []Column
}

func (Column) isExpr() {}
func (Diff) isExpr()   {}
func (Sum) isExpr()    {}

/*
Predicate is a boolean condition node in the compiled query's expression tree.

The tree is an intermediate representation: it carries no SQL. A backend
compiler lowers it to the target query builder, keeping the filter semantics
testable in isolation from storage specifics.
*/
type Predicate interface {
	isPredicate()
}

// Cmp compares an expression against a single value. A nil value lowers to a
// null comparison, which matches nothing for CmpEq.
type Cmp struct {
	Left  Expr
	Op    CmpOp
	Value any
}

// Like is a case-insensitive substring match on a string column.
type Like struct {
	Col   Column
	Value string
}

// Between matches values in the closed interval [Lo, Hi].
type Between struct {
	Left Expr
	Lo   any
	Hi   any
}

// In matches rows whose column equals any of the values.
type In struct {
	Col    Column
	Values []any
}

// IsNull matches rows whose column is NULL.
type IsNull struct {
	Col Column
}

// Not negates a predicate.
type Not struct {
	Pred Predicate
}

// And is the conjunction of its sub-predicates.
type And struct {
	Preds []Predicate
}

// Or is the disjunction of its sub-predicates.
type Or struct {
	Preds []Predicate
}

// ArrayOverlap matches array columns sharing at least one element with Values.
type ArrayOverlap struct {
	Col    Column
	Values []any
}

// ArrayContains matches array columns containing every element of Values.
type ArrayContains struct {
	Col    Column
	Values []any
}

func (Cmp) isPredicate()           {}
func (Like) isPredicate()          {}
func (Between) isPredicate()       {}
func (In) isPredicate()            {}
func (IsNull) isPredicate()        {}
func (Not) isPredicate()           {}
func (And) isPredicate()           {}
func (Or) isPredicate()            {}
func (ArrayOverlap) isPredicate()  {}
func (ArrayContains) isPredicate() {}

// combine folds predicates into a single node, avoiding one-element wrappers.
func combine(preds []Predicate, useOr bool) Predicate {
	switch len(preds) {
	case 0:
		return nil
	case 1:
		return preds[0]
	}
	if useOr {
		return Or{Preds: preds}
	}
	return And{Preds: preds}
}
