package filtering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/RisPNG/searchkit/schema"
)

func TestBuild(t *testing.T) {
	col := Column{Name: "state"}
	str := schema.Type{Kind: schema.String}
	num := schema.Type{Kind: schema.Integer}

	tests := []struct {
		name   string
		typ    schema.Type
		op     Operator
		values []any
		useOr  bool
		want   Predicate
	}{
		{
			name:   "TestBuild_StringSubstring",
			typ:    str,
			op:     OperatorNone,
			values: []any{"ali"},
			want:   Like{Col: col, Value: "ali"},
		},
		{
			name:   "TestBuild_StringListDefaultAnd",
			typ:    str,
			op:     OperatorNone,
			values: []any{"a", "b"},
			want:   And{Preds: []Predicate{Like{Col: col, Value: "a"}, Like{Col: col, Value: "b"}}},
		},
		{
			name:   "TestBuild_StringListUseOr",
			typ:    str,
			op:     OperatorNone,
			values: []any{"a", "b"},
			useOr:  true,
			want:   Or{Preds: []Predicate{Like{Col: col, Value: "a"}, Like{Col: col, Value: "b"}}},
		},
		{
			name:   "TestBuild_OrToken",
			typ:    str,
			op:     OperatorOr,
			values: []any{"a", "b"},
			want:   Or{Preds: []Predicate{Like{Col: col, Value: "a"}, Like{Col: col, Value: "b"}}},
		},
		{
			name:   "TestBuild_ExactForcesEquality",
			typ:    str,
			op:     OperatorExact,
			values: []any{"Ali"},
			want:   Cmp{Left: col, Op: CmpEq, Value: "Ali"},
		},
		{
			name:   "TestBuild_ExactTypeEquality",
			typ:    num,
			op:     OperatorNone,
			values: []any{5},
			want:   Cmp{Left: col, Op: CmpEq, Value: int64(5)},
		},
		{
			name:   "TestBuild_ExactNotExactType",
			typ:    num,
			op:     OperatorExactNot,
			values: []any{1, 2},
			want:   Not{Pred: In{Col: col, Values: []any{int64(1), int64(2)}}},
		},
		{
			name:   "TestBuild_ExactNotString",
			typ:    str,
			op:     OperatorExactNot,
			values: []any{"a", "b"},
			want: And{Preds: []Predicate{
				Cmp{Left: col, Op: CmpNe, Value: "a"},
				Cmp{Left: col, Op: CmpNe, Value: "b"},
			}},
		},
		{
			name:   "TestBuild_NotKeepsNullRows",
			typ:    num,
			op:     OperatorNot,
			values: []any{1},
			want: Or{Preds: []Predicate{
				IsNull{Col: col},
				Not{Pred: In{Col: col, Values: []any{int64(1)}}},
			}},
		},
		{
			name:   "TestBuild_NotString",
			typ:    str,
			op:     OperatorNot,
			values: []any{"a"},
			want: Or{Preds: []Predicate{
				IsNull{Col: col},
				Not{Pred: Like{Col: col, Value: "a"}},
			}},
		},
		{
			name:   "TestBuild_Range",
			typ:    num,
			op:     OperatorRange,
			values: []any{"100", "500"},
			want:   Between{Left: col, Lo: int64(100), Hi: int64(500)},
		},
		{
			name:   "TestBuild_NotRange",
			typ:    num,
			op:     OperatorNotRange,
			values: []any{1, 2},
			want:   Not{Pred: Between{Left: col, Lo: int64(1), Hi: int64(2)}},
		},
		{
			name:   "TestBuild_After",
			typ:    num,
			op:     OperatorAfter,
			values: []any{10},
			want:   Cmp{Left: col, Op: CmpGt, Value: int64(10)},
		},
		{
			name:   "TestBuild_BeforeEqual",
			typ:    num,
			op:     OperatorBeforeEqual,
			values: []any{10},
			want:   Cmp{Left: col, Op: CmpLe, Value: int64(10)},
		},
		{
			name:   "TestBuild_EmptyTextual",
			typ:    str,
			op:     OperatorEmpty,
			values: nil,
			want: Or{Preds: []Predicate{
				IsNull{Col: col},
				Cmp{Left: col, Op: CmpEq, Value: ""},
			}},
		},
		{
			name:   "TestBuild_EmptyNumeric",
			typ:    num,
			op:     OperatorEmpty,
			values: nil,
			want:   IsNull{Col: col},
		},
		{
			name:   "TestBuild_NotEmpty",
			typ:    str,
			op:     OperatorNotEmpty,
			values: nil,
			want: Not{Pred: Or{Preds: []Predicate{
				IsNull{Col: col},
				Cmp{Left: col, Op: CmpEq, Value: ""},
			}}},
		},
		{
			name:   "TestBuild_CoercionFailureIsNullComparison",
			typ:    num,
			op:     OperatorNone,
			values: []any{"abc"},
			want:   Cmp{Left: col, Op: CmpEq, Value: nil},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := build(col, tt.typ, tt.op, tt.values, time.UTC, tt.useOr)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildDateTimeUpperBounds(t *testing.T) {
	col := Column{Name: "created_at"}
	typ := schema.Type{Kind: schema.DateTime}

	t.Run("TestBuild_RangeUpperBoundWidened", func(t *testing.T) {
		got := build(col, typ, OperatorRange,
			[]any{"2024-01-01 00:00", "2024-06-30 23:59"}, time.UTC, false)
		between, ok := got.(Between)
		assert.True(t, ok)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), between.Lo)
		// The closed upper bound covers the whole final minute.
		assert.Equal(t, time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC), between.Hi)
	})

	t.Run("TestBuild_BeforeEqualWidened", func(t *testing.T) {
		got := build(col, typ, OperatorBeforeEqual, []any{"2024-01-01 10:00"}, time.UTC, false)
		assert.Equal(t, Cmp{Left: col, Op: CmpLe,
			Value: time.Date(2024, 1, 1, 10, 0, 59, 0, time.UTC)}, got)
	})

	t.Run("TestBuild_AfterNotWidened", func(t *testing.T) {
		got := build(col, typ, OperatorAfter, []any{"2024-01-01 10:00"}, time.UTC, false)
		assert.Equal(t, Cmp{Left: col, Op: CmpGt,
			Value: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)}, got)
	})
}

func TestBuildArray(t *testing.T) {
	col := Column{Name: "tags"}
	typ := schema.ArrayOf(schema.String)

	tests := []struct {
		name   string
		op     Operator
		values []any
		useOr  bool
		want   Predicate
	}{
		{
			name:   "TestBuildArray_OrOverlap",
			op:     OperatorOr,
			values: []any{"a", "b"},
			want:   ArrayOverlap{Col: col, Values: []any{"a", "b"}},
		},
		{
			name:   "TestBuildArray_DefaultContains",
			op:     OperatorNone,
			values: []any{"a", "b"},
			want:   ArrayContains{Col: col, Values: []any{"a", "b"}},
		},
		{
			name:   "TestBuildArray_DefaultUseOrOverlap",
			op:     OperatorNone,
			values: []any{"a"},
			useOr:  true,
			want:   ArrayOverlap{Col: col, Values: []any{"a"}},
		},
		{
			name:   "TestBuildArray_NotOverlap",
			op:     OperatorNot,
			values: []any{"a"},
			want:   Not{Pred: ArrayOverlap{Col: col, Values: []any{"a"}}},
		},
		{
			name:   "TestBuildArray_ExactAndContains",
			op:     OperatorExactAnd,
			values: []any{"a"},
			want:   ArrayContains{Col: col, Values: []any{"a"}},
		},
		{
			name:   "TestBuildArray_NestedListFlattened",
			op:     OperatorOr,
			values: []any{[]any{"a", "b"}, "c"},
			want:   ArrayOverlap{Col: col, Values: []any{"a", "b", "c"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := build(col, typ, tt.op, tt.values, time.UTC, tt.useOr)
			assert.Equal(t, tt.want, got)
		})
	}
}
