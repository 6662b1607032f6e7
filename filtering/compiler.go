package filtering

import (
	"reflect"
	"sort"
	"time"

	"go.alis.build/utils"

	"github.com/RisPNG/searchkit/schema"
)

// Reserved filter keys. They never name fields.
const (
	// KeyOr nests a group whose entries are ORed together; the group is then
	// ANDed with the rest of the query.
	KeyOr = "_or"
	// KeyMultiOr nests a list of groups. Each group's entries are ANDed, the
	// groups are ORed together, and the disjunction is ANDed with the rest.
	KeyMultiOr = "_multi_or"
	// KeyFieldsDiff compares the difference of two fields against thresholds.
	KeyFieldsDiff = "_fields_diff"
	// KeyFieldsSum compares the sum of two or more fields against thresholds.
	KeyFieldsSum = "_fields_sum"
)

/*
Compiler turns a filter spec into a [Plan].

The compiler is purely functional: each call threads an immutable [JoinSet] and
predicate list through a reduction over the (sorted) filter entries, so a single
Compiler is safe for concurrent use.
*/
type Compiler struct {
	// Schema resolves field types and relations.
	Schema schema.Introspector
	// Timezone is the caller's timezone for parsing datetime strings.
	// Defaults to UTC.
	Timezone *time.Location
	// UseOr combines top-level filters (and unspecified-operator lists)
	// with OR instead of AND.
	UseOr bool
	// DroppedFields are always stripped from the filter map before compilation,
	// regardless of caller intent.
	DroppedFields []string
}

// Compile consumes a filter spec and produces the query plan. Absent values
// produce no predicate and no join; unknown fields and relations fail
// immediately, even for absent values.
func (c *Compiler) Compile(entity string, filters map[string]any) (*Plan, error) {
	var set JoinSet
	var preds []Predicate
	var orPred, multiOrPred Predicate

	for _, key := range sortedKeys(filters) {
		if utils.Contains(c.DroppedFields, key) {
			continue
		}
		value := filters[key]

		switch key {
		case KeyOr:
			if IsAbsent(value) {
				continue
			}
			group, ok := asFilters(value)
			if !ok {
				return nil, ErrInvalidGroup{Key: key, Reason: "expected a filter map"}
			}
			p, updated, err := c.compileGroup(entity, group, set, true)
			if err != nil {
				return nil, err
			}
			set = updated
			orPred = p
		case KeyMultiOr:
			if IsAbsent(value) {
				continue
			}
			groups, ok := asFilterList(value)
			if !ok {
				return nil, ErrInvalidGroup{Key: key, Reason: "expected a list of filter maps"}
			}
			var groupPreds []Predicate
			for _, group := range groups {
				p, updated, err := c.compileGroup(entity, group, set, false)
				if err != nil {
					return nil, err
				}
				set = updated
				if p != nil {
					groupPreds = append(groupPreds, p)
				}
			}
			multiOrPred = combine(groupPreds, true)
		case KeyFieldsDiff, KeyFieldsSum:
			p, err := c.buildComputed(entity, key, value)
			if err != nil {
				return nil, err
			}
			if p != nil {
				preds = append(preds, p)
			}
		default:
			p, updated, err := c.compileEntry(entity, key, value, set)
			if err != nil {
				return nil, err
			}
			set = updated
			if p != nil {
				preds = append(preds, p)
			}
		}
	}

	where := combine(preds, c.UseOr)
	where = andWith(where, orPred)
	where = andWith(where, multiOrPred)

	return &Plan{Entity: entity, Where: where, Joins: set.Joins()}, nil
}

/*
Order resolves order-by paths onto the plan, joining relations exactly as
filters do: a relation referenced only by ordering is joined once, and one the
filters already joined is reused.
*/
func (c *Compiler) Order(plan *Plan, paths []OrderPath) error {
	set := plan.joinSet()
	for _, path := range paths {
		key := ParseKey(path.Path)
		b, updated, err := resolve(c.Schema, plan.Entity, key, set)
		if err != nil {
			return err
		}
		set = updated
		plan.Order = append(plan.Order, OrderClause{
			Col:  Column{Relation: b.relation, Name: key.Field},
			Desc: path.Desc,
		})
	}
	plan.Joins = set.Joins()
	return nil
}

// OrderPath is a raw order-by entry: a filter-style key plus a direction.
type OrderPath struct {
	Path string
	Desc bool
}

// compileGroup compiles a nested filter map, dropping absent entries before any
// join bookkeeping so that a group contributing nothing performs no join.
func (c *Compiler) compileGroup(entity string, filters map[string]any, set JoinSet, orCombine bool) (Predicate, JoinSet, error) {
	var preds []Predicate
	for _, key := range sortedKeys(filters) {
		if utils.Contains(c.DroppedFields, key) {
			continue
		}
		switch key {
		case KeyFieldsDiff, KeyFieldsSum:
			p, err := c.buildComputed(entity, key, filters[key])
			if err != nil {
				return nil, set, err
			}
			if p != nil {
				preds = append(preds, p)
			}
		default:
			p, updated, err := c.compileEntry(entity, key, filters[key], set)
			if err != nil {
				return nil, set, err
			}
			set = updated
			if p != nil {
				preds = append(preds, p)
			}
		}
	}
	return combine(preds, orCombine), set, nil
}

// compileEntry compiles a single key/value pair into a predicate, skipping
// absent values after the key has been validated.
func (c *Compiler) compileEntry(entity, key string, value any, set JoinSet) (Predicate, JoinSet, error) {
	fk := ParseKey(key)
	if err := c.validateKey(entity, fk); err != nil {
		return nil, set, err
	}
	if IsAbsent(value) {
		return nil, set, nil
	}

	op := OperatorNone
	operands := []any{value}
	if vs, ok := toSlice(value); ok {
		op, operands = ExtractOperator(vs)
	}

	b, set, err := resolve(c.Schema, entity, fk, set)
	if err != nil {
		return nil, set, err
	}
	t, err := c.Schema.FieldType(b.entity, fk.Field)
	if err != nil {
		return nil, set, err
	}

	col := Column{Relation: b.relation, Name: fk.Field}
	return build(col, t, op, operands, c.timezone(), c.UseOr), set, nil
}

// validateKey checks key existence without joining. A bad field or relation
// name fails even when its value is absent.
func (c *Compiler) validateKey(entity string, key FieldKey) error {
	target := entity
	if key.Relation != "" {
		rel, err := c.Schema.Relation(entity, key.Relation)
		if err != nil {
			return err
		}
		target = rel.Entity
	}
	_, err := c.Schema.FieldType(target, key.Field)
	return err
}

func (c *Compiler) timezone() *time.Location {
	if c.Timezone == nil {
		return time.UTC
	}
	return c.Timezone
}

func andWith(where, pred Predicate) Predicate {
	if pred == nil {
		return where
	}
	if where == nil {
		return pred
	}
	return And{Preds: []Predicate{where, pred}}
}

// sortedKeys fixes the reduction order. Insertion order of the filter map is
// irrelevant, and a stable order keeps the emitted SQL deterministic.
func sortedKeys(filters map[string]any) []string {
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// asFilters normalizes nested filter maps, including named map types such as
// the root package's Filters.
func asFilters(value any) (map[string]any, bool) {
	if m, ok := value.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	for _, k := range rv.MapKeys() {
		out[k.String()] = rv.MapIndex(k).Interface()
	}
	return out, true
}

func asFilterList(value any) ([]map[string]any, bool) {
	items, ok := toSlice(value)
	if !ok {
		return nil, false
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		// Absent list entries contribute no group.
		if IsAbsent(item) {
			continue
		}
		m, ok := asFilters(item)
		if !ok {
			return nil, false
		}
		out = append(out, m)
	}
	return out, true
}
