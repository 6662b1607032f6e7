package ordering

import (
	"fmt"
	"regexp"
	"strings"
)

// SortOrder represents the order of sorting.
type SortOrder int

const (
	// SortOrderAsc sorts values in ascending order.
	SortOrderAsc SortOrder = iota
	// SortOrderDesc sorts values in descending order.
	SortOrderDesc
)

// String returns the string representation of the SortOrder.
func (s SortOrder) String() string {
	return [...]string{"ASC", "DESC"}[s]
}

// Options for the NewOrder method.
type Options struct {
	// Default sort order
	DefaultOrder SortOrder
}

// Option is a functional option for the NewOrder method.
type Option func(*Options)

// WithDefaultOrder sets the default sort order.
// If an order path does not specify a sort order, the default sort order will be used.
//
// The default sort order is SortOrderAsc.
func WithDefaultOrder(order SortOrder) Option {
	return func(opts *Options) {
		opts.DefaultOrder = order
	}
}

// Clause is a single resolved sort instruction. Path uses the same
// "<field>@<relation>" qualification as filter keys.
type Clause struct {
	Path  string
	Order SortOrder
}

// Order represents a parsed sort order expression.
type Order struct {
	order        string
	defaultOrder SortOrder
}

var orderRegex = regexp.MustCompile(`^\s*([a-zA-Z_][a-zA-Z0-9_]*(@[a-zA-Z_][a-zA-Z0-9_]*)?)(\s(asc|desc))?(\s*,\s*([a-zA-Z_][a-zA-Z0-9_]*(@[a-zA-Z_][a-zA-Z0-9_]*)?)(\s(asc|desc))?)*\s*$`)

/*
NewOrder creates a new Order instance from an expression like
"total desc, name@customer asc".

Paths may reference a field on a one-hop related entity with the @relation
qualifier, exactly as filter keys do.
*/
func NewOrder(order string, opts ...Option) (*Order, error) {
	if order != "" && !orderRegex.MatchString(order) {
		return nil, ErrInvalidOrder{
			order: order,
			err:   fmt.Errorf("expected format: \"<path> [asc|desc],<path> [asc|desc]\""),
		}
	}

	options := &Options{
		DefaultOrder: SortOrderAsc,
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Order{
		order:        order,
		defaultOrder: options.DefaultOrder,
	}, nil
}

// Clauses returns the sort clauses in priority order.
func (o *Order) Clauses() []Clause {
	if o.order == "" {
		return nil
	}

	var clauses []Clause
	for _, orderPath := range strings.Split(strings.TrimSpace(o.order), ",") {
		orderParts := strings.Fields(orderPath)

		switch len(orderParts) {
		case 0:
			continue
		case 1:
			clauses = append(clauses, Clause{Path: orderParts[0], Order: o.defaultOrder})
		case 2:
			switch orderParts[1] {
			case "asc", "ASC":
				clauses = append(clauses, Clause{Path: orderParts[0], Order: SortOrderAsc})
			case "desc", "DESC":
				clauses = append(clauses, Clause{Path: orderParts[0], Order: SortOrderDesc})
			}
		}
	}

	return clauses
}
