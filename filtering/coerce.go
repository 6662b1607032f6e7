package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.alis.build/alog"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/RisPNG/searchkit/schema"
)

// Layouts accepted for temporal string values, most specific first.
var (
	dateTimeLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	timeLayouts = []string{"15:04:05", "15:04"}
)

/*
Coerce converts a raw filter value into the field's semantic type.

Coercion failures are non-fatal: the result is nil, which lowers to a null
comparison that matches nothing. Datetime strings are parsed in the caller's
timezone and converted to UTC; already-typed time.Time and timestamppb.Timestamp
values pass through (normalized to UTC for timezone-aware fields). Array types
coerce each element to the element type, wrapping scalars into a one-element
slice.
*/
func Coerce(t schema.Type, value any, loc *time.Location) any {
	if value == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	switch t.Kind {
	case schema.Date:
		return coerceDate(value)
	case schema.DateTime:
		if v := coerceDateTime(value, loc); v != nil {
			return v.(time.Time).UTC()
		}
		return nil
	case schema.NaiveDateTime:
		return coerceDateTime(value, loc)
	case schema.Time:
		return coerceTime(value)
	case schema.Integer:
		return coerceInteger(value)
	case schema.Float:
		return coerceFloat(value)
	case schema.Decimal:
		return coerceDecimal(value)
	case schema.Boolean:
		return coerceBoolean(value)
	case schema.Binary:
		if b, ok := value.([]byte); ok {
			return b
		}
		return []byte(stringify(value))
	case schema.Map:
		return value
	case schema.Array:
		elems, ok := toSlice(value)
		if !ok {
			elems = []any{value}
		}
		out := make([]any, 0, len(elems))
		for _, e := range elems {
			out = append(out, Coerce(schema.Type{Kind: t.Elem}, e, loc))
		}
		return out
	default:
		return stringify(value)
	}
}

/*
AdjustUpperBound widens a closed upper bound to the last second of its minute
for timezone-aware and naive datetime fields.

A caller filtering "before_equal 2024-01-01 10:00" means the whole minute, not
its first instant; the adjusted bound makes 10:00:59 match. Other types pass
through unchanged.
*/
func AdjustUpperBound(t schema.Type, value any) any {
	if t.Kind != schema.DateTime && t.Kind != schema.NaiveDateTime {
		return value
	}
	ts, ok := value.(time.Time)
	if !ok {
		return value
	}
	return ts.Truncate(time.Minute).Add(59 * time.Second)
}

func coerceDateTime(value any, loc *time.Location) any {
	switch v := value.(type) {
	case time.Time:
		return v
	case *timestamppb.Timestamp:
		return v.AsTime()
	case string:
		for _, layout := range dateTimeLayouts {
			if ts, err := time.ParseInLocation(layout, v, loc); err == nil {
				return ts
			}
		}
	}
	return coercionFailed("datetime", value)
}

func coerceDate(value any) any {
	switch v := value.(type) {
	case time.Time:
		// Keep the calendar day as observed in the value's own zone.
		return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
	case string:
		if ts, err := time.ParseInLocation("2006-01-02", v, time.UTC); err == nil {
			return ts
		}
	}
	return coercionFailed("date", value)
}

func coerceTime(value any) any {
	switch v := value.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, v); err == nil {
				return ts
			}
		}
	}
	return coercionFailed("time", value)
}

func coerceInteger(value any) any {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case float32:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n
		}
	}
	return coercionFailed("integer", value)
}

func coerceFloat(value any) any {
	switch v := value.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return coercionFailed("float", value)
}

func coerceDecimal(value any) any {
	switch v := value.(type) {
	case decimal.Decimal:
		return v
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return coercionFailed("decimal", value)
}

func coerceBoolean(value any) any {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		if strings.EqualFold(v, "true") {
			return true
		}
		if strings.EqualFold(v, "false") {
			return false
		}
	}
	return coercionFailed("boolean", value)
}

func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

// coercionFailed records the failure and yields nil, turning the filter into a
// null comparison instead of an error.
func coercionFailed(kind string, value any) any {
	alog.Warnf(context.Background(), "cannot coerce %v to %s, treating as null", value, kind)
	return nil
}
